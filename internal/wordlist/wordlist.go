// Package wordlist reads ranked corpora and generated word lists from disk.
package wordlist

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"
)

// FileProvider serves a ranked corpus from a local file with one word per line,
// most frequent first. The language code is not used.
type FileProvider struct {
	Path string
}

// Corpus returns up to size words from the file in file order.
func (p FileProvider) Corpus(_ context.Context, _ string, size int) ([]string, error) {
	if size <= 0 {
		return nil, fmt.Errorf("size must be greater than 0")
	}
	words, err := LoadWords(p.Path)
	if err != nil {
		return nil, err
	}
	if len(words) > size {
		words = words[:size]
	}
	return words, nil
}

// LoadWords reads one word per line from the provided file path.
// Blank lines are skipped; an empty file yields an empty list.
func LoadWords(path string) ([]string, error) {
	if path == "" {
		return nil, fmt.Errorf("corpus path is required")
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open corpus: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	words := []string{}
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read corpus: %w", err)
	}
	return words, nil
}

// LoadJSON reads a generated JSON word list and returns the lowercased words
// of the given length, in file order.
func LoadJSON(path string, length int) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read word list: %w", err)
	}
	var raw []string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode word list: %w", err)
	}
	words := make([]string, 0, len(raw))
	for _, w := range raw {
		w = strings.ToLower(strings.TrimSpace(w))
		if utf8.RuneCountInString(w) != length {
			continue
		}
		words = append(words, w)
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("word list %s has no %d-letter words", path, length)
	}
	return words, nil
}
