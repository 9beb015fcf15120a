package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/etnz/fintrack/logger"
)

// FileBackend stores each key as a JSON file in a directory.
type FileBackend struct {
	dir string
}

// NewFileBackend returns a backend storing files in dir, created if needed.
func NewFileBackend(dir string) (*FileBackend, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &FileBackend{dir: dir}, nil
}

func (b *FileBackend) path(key string) string { return filepath.Join(b.dir, key+".json") }

func (b *FileBackend) Get(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(b.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("key %q: %w", key, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", key, err)
	}
	return data, nil
}

// Set writes to a temporary file renamed over the previous one, so that a
// crash never leaves a truncated document.
func (b *FileBackend) Set(_ context.Context, key string, data []byte) error {
	f, err := os.CreateTemp(b.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("write %q: %w", key, err)
	}
	tmp := f.Name()
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("write %q: %w", key, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("write %q: %w", key, err)
	}
	if err := os.Rename(tmp, b.path(key)); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("write %q: %w", key, err)
	}
	logger.Get().Debugw("document saved", "backend", "file", "path", b.path(key), "bytes", len(data))
	return nil
}

func (b *FileBackend) Delete(_ context.Context, key string) error {
	if err := os.Remove(b.path(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}

func (b *FileBackend) Close() error { return nil }
