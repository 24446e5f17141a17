package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/nikolayk812/cupcakeria/internal/port"
)

// FileStorage keeps each key as a JSON file under a data directory,
// the local-only equivalent of a browser's localStorage. Writes go
// through a temp file and a rename so a crash mid-write leaves the
// previous value intact.
type FileStorage struct {
	dir string
}

func NewFile(dir string) (*FileStorage, error) {
	if dir == "" {
		return nil, fmt.Errorf("dir is empty")
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("os.MkdirAll: %w", err)
	}

	return &FileStorage{dir: dir}, nil
}

func (s *FileStorage) Save(_ context.Context, key string, value []byte) error {
	if err := validateKey(key); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, key+".tmp.*")
	if err != nil {
		return fmt.Errorf("os.CreateTemp: %w", err)
	}

	if _, err := tmp.Write(value); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("tmp.Write: %w", err)
	}

	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("tmp.Close: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path(key)); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("os.Rename: %w", err)
	}

	return nil
}

func (s *FileStorage) Load(_ context.Context, key string) ([]byte, bool, error) {
	if err := validateKey(key); err != nil {
		return nil, false, err
	}

	data, err := os.ReadFile(s.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("os.ReadFile: %w", err)
	}

	return data, true, nil
}

func (s *FileStorage) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

func validateKey(key string) error {
	if key == "" {
		return fmt.Errorf("key is empty")
	}

	if strings.ContainsAny(key, `/\`) || key != filepath.Base(key) {
		return fmt.Errorf("key[%s] is not valid", key)
	}

	return nil
}

var _ port.Storage = (*FileStorage)(nil)
