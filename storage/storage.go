// Package storage persists a fintrack ledger under a namespace key, in JSON
// files or in a SQLite database.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/etnz/fintrack/config"
)

// ErrNotFound is returned when nothing is stored under a key.
var ErrNotFound = errors.New("not found")

// Backend stores opaque documents by key.
type Backend interface {
	// Get returns the document stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores data under key, replacing any previous document.
	Set(ctx context.Context, key string, data []byte) error
	// Delete removes the document stored under key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	Close() error
}

// Open returns the backend selected by cfg.
func Open(ctx context.Context, cfg *config.Config) (Backend, error) {
	switch cfg.Backend {
	case config.BackendFile:
		return NewFileBackend(cfg.DataDir)
	case config.BackendSQLite:
		return NewSQLiteBackend(ctx, cfg.DBPath())
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
