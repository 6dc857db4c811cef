package cache

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Store writes r to the cache path for rawURL and returns that path. The
// body is written to a temporary file first so a failed download never
// leaves a partial entry behind.
func (m *Manager) Store(rawURL string, r io.Reader) (string, error) {
	fl, err := m.lock()
	if err != nil {
		return "", err
	}
	defer fl.Unlock() //nolint:errcheck

	if err := m.EnsureDir(rawURL); err != nil {
		return "", fmt.Errorf("create cache dir: %w", err)
	}

	destPath := m.Path(rawURL)
	tmpPath := destPath + ".tmp"

	f, err := os.Create(tmpPath)
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("writing to cache: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		_ = os.Remove(tmpPath)
		return "", err
	}
	return destPath, nil
}

// Open returns the cached body for rawURL.
func (m *Manager) Open(rawURL string) (io.ReadCloser, error) {
	return os.Open(m.Path(rawURL))
}

// Clear removes every cached entry and returns how many were removed.
// Leftover temporary files are removed but not counted.
func (m *Manager) Clear() (int, error) {
	if _, err := os.Stat(m.baseDir); os.IsNotExist(err) {
		return 0, nil
	}
	fl, err := m.lock()
	if err != nil {
		return 0, err
	}
	defer fl.Unlock() //nolint:errcheck

	removed := 0
	err = filepath.WalkDir(m.baseDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || p == fl.Path() {
			return nil
		}
		if err := os.Remove(p); err != nil {
			return err
		}
		if !strings.HasSuffix(p, ".tmp") {
			removed++
		}
		return nil
	})
	if err != nil {
		return removed, fmt.Errorf("clearing cache: %w", err)
	}

	// Drop the now empty shard directories.
	entries, err := os.ReadDir(m.baseDir)
	if err != nil {
		return removed, err
	}
	for _, e := range entries {
		if e.IsDir() {
			_ = os.Remove(filepath.Join(m.baseDir, e.Name()))
		}
	}
	return removed, nil
}
