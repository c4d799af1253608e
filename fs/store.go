// Package fs provides file-based storage for link collections.
package fs

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/dosTaiyaki/linklist"
)

// Ensure Store implements linklist.KeyValue at compile time.
var _ linklist.KeyValue = (*Store)(nil)

// Store implements linklist.KeyValue with one JSON file per key.
// Values are written to a temporary file and renamed into place.
type Store struct {
	dir string
}

// NewStore creates a Store keeping files in dir. The directory is created
// on the first Set.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Path returns the file that holds key.
func (s *Store) Path(key string) (string, error) {
	if err := validateKey(key); err != nil {
		return "", err
	}
	return filepath.Join(s.dir, key+".json"), nil
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, err := s.Path(key)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, linklist.Errorf(linklist.ENOTFOUND, "key %q not found", key)
	} else if err != nil {
		return nil, err
	}
	return data, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := s.Path(key)
	if err != nil {
		return err
	}
	return WriteFile(path, value)
}

// Close is a no-op; Store holds no open handles.
func (s *Store) Close() error {
	return nil
}

func validateKey(key string) error {
	switch {
	case key == "":
		return linklist.Errorf(linklist.EINVALID, "key required")
	case key == "." || key == "..":
		return linklist.Errorf(linklist.EINVALID, "key %q is not a valid file name", key)
	case strings.ContainsAny(key, `/\`+"\x00"):
		return linklist.Errorf(linklist.EINVALID, "key %q must not contain path separators", key)
	}
	return nil
}

// WriteFile atomically replaces the file at path with data. The content
// is written to a temporary file in the same directory, synced, then
// renamed over path, so readers see either the old or the new content.
func WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmp := f.Name()

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Chmod(tmp, 0644); err != nil {
		os.Remove(tmp)
		return err
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
