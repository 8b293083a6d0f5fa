package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Build.Lang != nil || cfg.Play.Words != nil {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadConfigValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := `
[build]
lang = "de"
size = 80000
ascii-only = true

[play]
max-guesses = 8
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Build.Lang == nil || *cfg.Build.Lang != "de" {
		t.Fatalf("unexpected lang: %v", cfg.Build.Lang)
	}
	if cfg.Build.Size == nil || *cfg.Build.Size != 80000 {
		t.Fatalf("unexpected size: %v", cfg.Build.Size)
	}
	if cfg.Build.AsciiOnly == nil || !*cfg.Build.AsciiOnly {
		t.Fatalf("expected ascii-only to be set")
	}
	if cfg.Build.Length != nil {
		t.Fatalf("expected length to be unset")
	}
	if cfg.Play.MaxGuesses == nil || *cfg.Play.MaxGuesses != 8 {
		t.Fatalf("unexpected max-guesses: %v", cfg.Play.MaxGuesses)
	}
}

func TestLoadConfigRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[build]\nlanguage = \"en\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	_, err := LoadConfig(path)
	if err == nil || !strings.Contains(err.Error(), "build.language") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
}

func TestDefaultPathsFollowXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/cfg")
	t.Setenv("XDG_DATA_HOME", "/tmp/data")
	if got := DefaultConfigPath(); got != filepath.Join("/tmp/cfg", "fivewords", "config.toml") {
		t.Fatalf("unexpected config path %q", got)
	}
	if got := DefaultDBPath(); got != filepath.Join("/tmp/data", "fivewords", "fivewords.db") {
		t.Fatalf("unexpected db path %q", got)
	}
	if got := DefaultWordfreqCacheDir(); got != filepath.Join("/tmp/data", "fivewords", "wordfreq") {
		t.Fatalf("unexpected cache dir %q", got)
	}
}
