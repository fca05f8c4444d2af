// Package filestore implements store.Store on the local filesystem: one JSON
// file per key under a state directory. This is the default backend and gives
// the cart the durability of browser-local storage: per install, surviving
// restarts, not shared across machines.
package filestore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	apperrors "github.com/velostore/storefront/pkg/errors"
)

// FileStore persists each key as a file under dir.
type FileStore struct {
	dir string
}

var unsafeKeyChars = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

// New creates a file store rooted at dir, creating the directory if needed.
func New(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Get reads the value stored for key. Returns apperrors.ErrNotFound when the
// key has never been written.
func (s *FileStore) Get(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.NotFound("storage key", key)
		}
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	return data, nil
}

// Set writes the value for key atomically: the value lands in a temp file
// that is renamed over the target, so a crash mid-write never leaves a
// truncated snapshot behind.
func (s *FileStore) Set(_ context.Context, key string, value []byte) error {
	target := s.path(key)

	tmp, err := os.CreateTemp(s.dir, "."+s.fileName(key)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file for %s: %w", key, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(value); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close temp file for %s: %w", key, err)
	}

	if err := os.Rename(tmpName, target); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("rename %s: %w", key, err)
	}
	return nil
}

// Delete removes the value for key. Deleting an absent key is not an error.
func (s *FileStore) Delete(_ context.Context, key string) error {
	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, s.fileName(key))
}

func (s *FileStore) fileName(key string) string {
	return unsafeKeyChars.ReplaceAllString(key, "_") + ".json"
}
