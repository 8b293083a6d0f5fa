package wordfreq

import (
	"archive/zip"
	"compress/gzip"
	"fmt"
	"io"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

// bucketHeader is the first element of a wordfreq msgpack list.
type bucketHeader struct {
	Format  string `msgpack:"format"`
	Version int    `msgpack:"version"`
}

// TopN returns the n most frequent words of a language list in rank order.
// Words come bucket by bucket (one bucket per centibel of frequency) and keep
// their stored order inside a bucket. Fewer than n words are returned when the
// list is shorter.
func TopN(wheelPath, lang, listType string, n int) ([]string, error) {
	if wheelPath == "" {
		return nil, fmt.Errorf("wheel path is required")
	}
	lang = strings.ToLower(strings.TrimSpace(lang))
	if lang == "" {
		return nil, fmt.Errorf("language is required")
	}
	if listType == "" {
		return nil, fmt.Errorf("word list type is required")
	}
	if n <= 0 {
		return nil, fmt.Errorf("limit must be greater than 0")
	}

	buckets, err := readBuckets(wheelPath, lang, listType)
	if err != nil {
		return nil, err
	}
	words := make([]string, 0, n)
	for _, bucket := range buckets {
		for _, word := range bucket {
			words = append(words, word)
			if len(words) == n {
				return words, nil
			}
		}
	}
	return words, nil
}

func readBuckets(wheelPath, lang, listType string) ([][]string, error) {
	reader, err := zip.OpenReader(wheelPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open wheel: %w", err)
	}
	defer func() {
		_ = reader.Close()
	}()

	dataFile := findDataFile(reader.File, lang, listType)
	if dataFile == nil {
		return nil, fmt.Errorf("no %s word list for language %q", listType, lang)
	}
	rc, err := dataFile.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open data file: %w", err)
	}
	defer func() {
		_ = rc.Close()
	}()

	var r io.Reader = rc
	if strings.HasSuffix(dataFile.Name, ".gz") {
		gz, err := gzip.NewReader(rc)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer func() {
			_ = gz.Close()
		}()
		r = gz
	}
	buckets, err := decodeBuckets(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", dataFile.Name, err)
	}
	return buckets, nil
}

func findDataFile(files []*zip.File, lang, listType string) *zip.File {
	var plain *zip.File
	for _, file := range files {
		l, t := parseLanguageAndType(file.Name)
		if l != lang || t != listType {
			continue
		}
		if strings.HasSuffix(file.Name, ".gz") {
			return file
		}
		plain = file
	}
	return plain
}

func decodeBuckets(r io.Reader) ([][]string, error) {
	dec := msgpack.NewDecoder(r)
	n, err := dec.DecodeArrayLen()
	if err != nil {
		return nil, err
	}
	if n < 1 {
		return nil, fmt.Errorf("empty frequency list")
	}
	var header bucketHeader
	if err := dec.Decode(&header); err != nil {
		return nil, fmt.Errorf("bad header: %w", err)
	}
	if header.Format != "cB" {
		return nil, fmt.Errorf("unsupported list format %q", header.Format)
	}
	buckets := make([][]string, 0, n-1)
	for i := 1; i < n; i++ {
		var bucket []string
		if err := dec.Decode(&bucket); err != nil {
			return nil, fmt.Errorf("bucket %d: %w", i, err)
		}
		buckets = append(buckets, bucket)
	}
	return buckets, nil
}
