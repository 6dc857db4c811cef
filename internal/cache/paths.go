package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// lockName is the file guarding the cache against concurrent writers.
const lockName = ".lock"

// Manager handles the on-disk cache of fetched resources.
type Manager struct {
	baseDir string
}

// New creates a cache Manager rooted at baseDir.
func New(baseDir string) *Manager {
	return &Manager{baseDir: baseDir}
}

// Dir returns the cache root.
func (m *Manager) Dir() string { return m.baseDir }

// Key is the hex sha256 of a resource URL.
func Key(rawURL string) string {
	sum := sha256.Sum256([]byte(rawURL))
	return hex.EncodeToString(sum[:])
}

// Path returns the cache path for a URL.
// Layout: <baseDir>/<key[:2]>/<key>
func (m *Manager) Path(rawURL string) string {
	key := Key(rawURL)
	return filepath.Join(m.baseDir, key[:2], key)
}

// Exists reports whether the URL has been cached.
func (m *Manager) Exists(rawURL string) bool {
	fi, err := os.Stat(m.Path(rawURL))
	return err == nil && fi.Mode().IsRegular()
}

// EnsureDir creates the shard directory for a URL.
func (m *Manager) EnsureDir(rawURL string) error {
	return os.MkdirAll(filepath.Dir(m.Path(rawURL)), 0750)
}

// Remove deletes the cached copy of a URL if it exists.
func (m *Manager) Remove(rawURL string) error {
	err := os.Remove(m.Path(rawURL))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// lock takes the exclusive cache lock, creating the cache root if needed.
// Builds sharing a cache serialise their writes on it.
func (m *Manager) lock() (*flock.Flock, error) {
	if err := os.MkdirAll(m.baseDir, 0750); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	fl := flock.New(filepath.Join(m.baseDir, lockName))
	if err := fl.Lock(); err != nil {
		return nil, fmt.Errorf("acquire cache lock: %w", err)
	}
	return fl, nil
}
