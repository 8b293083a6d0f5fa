// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Build BuildConfig `toml:"build"`
	Play  PlayConfig  `toml:"play"`
}

// BuildConfig maps word list build settings. Nil fields were not set in the file.
type BuildConfig struct {
	Lang        *string `toml:"lang"`
	Size        *int    `toml:"size"`
	Length      *int    `toml:"length"`
	Output      *string `toml:"output"`
	Source      *string `toml:"source"`
	Corpus      *string `toml:"corpus"`
	AsciiOnly   *bool   `toml:"ascii-only"`
	Attribution *bool   `toml:"attribution"`
}

// PlayConfig maps game settings.
type PlayConfig struct {
	Words      *string `toml:"words"`
	Length     *int    `toml:"length"`
	MaxGuesses *int    `toml:"max-guesses"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}
