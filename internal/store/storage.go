// Package store owns the canonical, ordered listing collection and its
// persisted snapshot. Persistence is a narrow key-value contract so the
// backing medium (local file, remote service) can change without touching
// the store's callers.
package store

import (
	"os"
	"path/filepath"
)

// Storage is a minimal key-value persistence capability: one string value
// per logical key.
type Storage interface {
	// Get returns the stored value and whether the key exists.
	Get(key string) (string, bool, error)
	// Set overwrites the full value for the key.
	Set(key, value string) error
}

// fileStorage keeps one file per key under a directory, surviving across
// program invocations.
type fileStorage struct {
	dir string
}

// NewFileStorage returns file-backed key-value storage rooted at dir. The
// directory is created lazily on first write.
func NewFileStorage(dir string) Storage {
	return &fileStorage{dir: dir}
}

func (s *fileStorage) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

func (s *fileStorage) Get(key string) (string, bool, error) {
	b, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, err
	}
	return string(b), true, nil
}

func (s *fileStorage) Set(key, value string) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return err
	}
	return os.WriteFile(s.path(key), []byte(value), 0644)
}
