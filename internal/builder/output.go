package builder

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

const defaultFileMode fs.FileMode = 0o644

// WriteJSON writes words as an indented JSON array to path, replacing any
// existing file. Non-ASCII and HTML characters are written unescaped.
// The parent directory must exist. A symlinked path is written through.
func WriteJSON(path string, words []string) error {
	if words == nil {
		words = []string{}
	}
	if err := writeJSON(path, words); err != nil {
		return &FileWriteError{Path: path, Err: err}
	}
	return nil
}

func writeJSON(path string, words []string) error {
	target, mode, err := resolveTarget(path)
	if err != nil {
		return err
	}
	tmpFile, err := os.CreateTemp(filepath.Dir(target), ".wordlist-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	writer := bufio.NewWriter(tmpFile)
	enc := json.NewEncoder(writer)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(words); err != nil {
		return fmt.Errorf("failed to encode word list: %w", err)
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush word list: %w", err)
	}
	if err := tmpFile.Chmod(mode); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close word list: %w", err)
	}
	if err := os.Rename(tmpPath, target); err != nil {
		return fmt.Errorf("failed to move word list into place: %w", err)
	}
	return nil
}

// resolveTarget returns the file a write to path lands in, following
// symlinks, and the permissions to give it.
func resolveTarget(path string) (string, fs.FileMode, error) {
	resolved, err := filepath.EvalSymlinks(path)
	if errors.Is(err, fs.ErrNotExist) {
		dest, lerr := os.Readlink(path)
		if lerr != nil {
			return path, defaultFileMode, nil
		}
		if !filepath.IsAbs(dest) {
			dest = filepath.Join(filepath.Dir(path), dest)
		}
		return dest, defaultFileMode, nil
	}
	if err != nil {
		return "", 0, fmt.Errorf("failed to resolve output path: %w", err)
	}
	info, err := os.Stat(resolved)
	if err != nil {
		return "", 0, fmt.Errorf("failed to stat output: %w", err)
	}
	if info.IsDir() {
		return "", 0, fmt.Errorf("output path %s is a directory", resolved)
	}
	return resolved, info.Mode().Perm(), nil
}

// Report prints the number of qualifying words.
func Report(w io.Writer, length, count int) error {
	_, err := fmt.Fprintf(w, "Total %d-letter words: %d\n", length, count)
	return err
}
