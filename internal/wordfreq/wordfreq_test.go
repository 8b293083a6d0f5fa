package wordfreq

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/vmihailenco/msgpack/v5"
)

var cbHeader = map[string]any{"format": "cB", "version": 1}

func encodeBuckets(t *testing.T, buckets ...[]string) []byte {
	t.Helper()
	items := []any{cbHeader}
	for _, b := range buckets {
		items = append(items, b)
	}
	data, err := msgpack.Marshal(items)
	if err != nil {
		t.Fatalf("marshal buckets: %v", err)
	}
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if _, err := gz.Write(data); err != nil {
		t.Fatalf("gzip buckets: %v", err)
	}
	if err := gz.Close(); err != nil {
		t.Fatalf("close gzip: %v", err)
	}
	return buf.Bytes()
}

func writeTestWheel(t *testing.T, files map[string][]byte) string {
	t.Helper()

	tmpFile, err := os.CreateTemp(t.TempDir(), "wordfreq-*.whl")
	if err != nil {
		t.Fatalf("failed to create temp wheel: %v", err)
	}
	defer func() {
		_ = tmpFile.Close()
	}()

	zw := zip.NewWriter(tmpFile)
	for name, data := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("failed to create zip entry: %v", err)
		}
		if _, err := w.Write(data); err != nil {
			t.Fatalf("failed to write zip entry: %v", err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("failed to close zip: %v", err)
	}
	return tmpFile.Name()
}

func TestTopNKeepsBucketOrder(t *testing.T) {
	wheelPath := writeTestWheel(t, map[string][]byte{
		"wordfreq/data/large_en.msgpack.gz": encodeBuckets(t,
			[]string{"the", "of"},
			nil,
			[]string{"about", "Apple", "go-1"},
			[]string{"crane"},
		),
	})

	words, err := TopN(wheelPath, "en", "large", 4)
	if err != nil {
		t.Fatalf("TopN failed: %v", err)
	}
	if diff := cmp.Diff([]string{"the", "of", "about", "Apple"}, words); diff != "" {
		t.Fatalf("unexpected words (-want +got):\n%s", diff)
	}

	all, err := TopN(wheelPath, "EN", "large", 100)
	if err != nil {
		t.Fatalf("TopN failed: %v", err)
	}
	if len(all) != 6 {
		t.Fatalf("expected 6 words, got %d: %v", len(all), all)
	}
}

func TestTopNErrors(t *testing.T) {
	wheelPath := writeTestWheel(t, map[string][]byte{
		"wordfreq/data/small_fr.msgpack.gz": encodeBuckets(t, []string{"le"}),
		"wordfreq/data/large_xx.msgpack.gz": []byte("not gzip"),
	})
	cases := []struct {
		name     string
		path     string
		lang     string
		listType string
		n        int
	}{
		{name: "no wheel", path: "", lang: "fr", listType: "small", n: 1},
		{name: "no lang", path: wheelPath, lang: " ", listType: "small", n: 1},
		{name: "no type", path: wheelPath, lang: "fr", listType: "", n: 1},
		{name: "zero limit", path: wheelPath, lang: "fr", listType: "small", n: 0},
		{name: "missing list", path: wheelPath, lang: "fr", listType: "large", n: 1},
		{name: "corrupt list", path: wheelPath, lang: "xx", listType: "large", n: 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := TopN(tc.path, tc.lang, tc.listType, tc.n); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestDecodeBucketsRejectsUnknownFormat(t *testing.T) {
	data, err := msgpack.Marshal([]any{map[string]any{"format": "zipf"}, []string{"a"}})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if _, err := decodeBuckets(bytes.NewReader(data)); err == nil {
		t.Fatalf("expected format error")
	}
}

func TestListLanguages(t *testing.T) {
	files := map[string][]byte{
		"wordfreq/data/large_en.msgpack.gz":         []byte("x"),
		"wordfreq/data/small_en.msgpack.gz":         []byte("x"),
		"wordfreq/data/large_pt-br.msgpack.gz":      []byte("x"),
		"wordfreq/data/small_zh-cn.msgpack.gz":      []byte("x"),
		"wordfreq/data/_chinese_mapping.msgpack.gz": []byte("x"),
		"wordfreq/data/jieba_zh.txt":                []byte("x"),
	}
	wheelPath := writeTestWheel(t, files)

	types, err := ListLanguageTypes(wheelPath)
	if err != nil {
		t.Fatalf("ListLanguageTypes failed: %v", err)
	}
	if diff := cmp.Diff([]string{"en", "pt-br", "zh-cn"}, LanguagesFromTypes(types)); diff != "" {
		t.Fatalf("unexpected languages (-want +got):\n%s", diff)
	}
	if len(types["en"]) != 2 {
		t.Fatalf("expected large and small for en, got %v", types["en"])
	}
}

func TestResolveListType(t *testing.T) {
	both := map[string]struct{}{"large": {}, "small": {}}
	small := map[string]struct{}{"small": {}}
	cases := []struct {
		name      string
		available map[string]struct{}
		desired   string
		want      string
		ok        bool
	}{
		{name: "best prefers large", available: both, desired: "best", want: "large", ok: true},
		{name: "empty means best", available: small, desired: "", want: "small", ok: true},
		{name: "explicit small", available: both, desired: "small", want: "small", ok: true},
		{name: "explicit large missing", available: small, desired: "large", ok: false},
		{name: "nothing available", available: nil, desired: "best", ok: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ResolveListType(tc.available, tc.desired)
			if ok != tc.ok || got != tc.want {
				t.Fatalf("expected (%q, %v), got (%q, %v)", tc.want, tc.ok, got, ok)
			}
		})
	}
}

func TestProviderCorpus(t *testing.T) {
	wheelPath := writeTestWheel(t, map[string][]byte{
		"wordfreq/data/small_en.msgpack.gz": encodeBuckets(t, []string{"the", "apple"}, []string{"crane"}),
	})
	p := &Provider{WheelPath: wheelPath, ListType: "best"}
	ctx := context.Background()

	words, err := p.Corpus(ctx, "en", 50000)
	if err != nil {
		t.Fatalf("Corpus failed: %v", err)
	}
	if diff := cmp.Diff([]string{"the", "apple", "crane"}, words); diff != "" {
		t.Fatalf("unexpected corpus (-want +got):\n%s", diff)
	}

	if _, err := p.Corpus(ctx, "qq", 10); err == nil {
		t.Fatalf("expected unknown language error")
	}
}

func TestDownloadLatestWheel(t *testing.T) {
	wheelBytes := []byte("wheel-bytes")
	downloads := 0
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/pypi":
			payload := pypiResponse{}
			payload.Info.Version = "3.1.1"
			payload.URLs = []pypiURL{
				{URL: server.URL + "/src.tar.gz", Filename: "wordfreq-3.1.1.tar.gz", Packagetype: "sdist"},
				{URL: server.URL + "/wheel", Filename: "wordfreq-3.1.1-py3-none-any.whl", Packagetype: "bdist_wheel"},
			}
			_ = json.NewEncoder(w).Encode(payload)
		case "/wheel":
			downloads++
			_, _ = w.Write(wheelBytes)
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	prev := pypiEndpoint
	pypiEndpoint = server.URL + "/pypi"
	t.Cleanup(func() { pypiEndpoint = prev })

	cacheDir := filepath.Join(t.TempDir(), "cache")
	ctx := context.Background()
	wheel, err := DownloadLatestWheel(ctx, cacheDir)
	if err != nil {
		t.Fatalf("DownloadLatestWheel failed: %v", err)
	}
	if wheel.Cached || wheel.Version != "3.1.1" || wheel.Filename != "wordfreq-3.1.1-py3-none-any.whl" {
		t.Fatalf("unexpected wheel: %+v", wheel)
	}
	data, err := os.ReadFile(wheel.Path)
	if err != nil {
		t.Fatalf("read wheel: %v", err)
	}
	if !bytes.Equal(data, wheelBytes) {
		t.Fatalf("unexpected wheel contents %q", data)
	}

	again, err := DownloadLatestWheel(ctx, cacheDir)
	if err != nil {
		t.Fatalf("second DownloadLatestWheel failed: %v", err)
	}
	if !again.Cached || downloads != 1 {
		t.Fatalf("expected cached wheel and one download, got %+v after %d downloads", again, downloads)
	}
}

func TestWriteAttribution(t *testing.T) {
	wheelPath := writeTestWheel(t, map[string][]byte{
		"wordfreq-1.0.0.dist-info/LICENSE": []byte("Apache License"),
	})

	outDir := t.TempDir()
	if err := WriteAttribution(wheelPath, outDir); err != nil {
		t.Fatalf("WriteAttribution failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(outDir, "ATTRIBUTION.txt")); err != nil {
		t.Fatalf("expected ATTRIBUTION.txt: %v", err)
	}
	license, err := os.ReadFile(filepath.Join(outDir, "LICENSE.txt"))
	if err != nil {
		t.Fatalf("expected LICENSE.txt: %v", err)
	}
	if string(license) != "Apache License" {
		t.Fatalf("unexpected license contents: %s", string(license))
	}
}
