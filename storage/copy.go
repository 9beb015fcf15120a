package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/etnz/fintrack"
	"github.com/etnz/fintrack/logger"
)

// ErrExists is returned by Copy when the destination already holds a ledger.
var ErrExists = errors.New("already exists")

// Copy copies the ledger stored under key from src to dst and returns it.
//
// The ledger is checked before being written. An existing ledger in dst is
// only replaced when overwrite is set.
func Copy(ctx context.Context, src, dst Backend, key string, overwrite bool) (fintrack.Snapshot, error) {
	snap, ok, err := NewStore(src, key).Load(ctx)
	if err != nil {
		return fintrack.Snapshot{}, err
	}
	if !ok {
		return fintrack.Snapshot{}, fmt.Errorf("ledger %q: %w", key, ErrNotFound)
	}
	if err := fintrack.NewLedger().Restore(snap); err != nil {
		return fintrack.Snapshot{}, fmt.Errorf("ledger %q: %w", key, err)
	}

	if !overwrite {
		_, err := dst.Get(ctx, key)
		switch {
		case err == nil:
			return fintrack.Snapshot{}, fmt.Errorf("ledger %q: %w", key, ErrExists)
		case !errors.Is(err, ErrNotFound):
			return fintrack.Snapshot{}, err
		}
	}
	if err := NewStore(dst, key).Save(ctx, snap); err != nil {
		return fintrack.Snapshot{}, err
	}
	logger.Get().Infow("ledger copied", "key", key, "incomes", len(snap.Incomes), "expenses", len(snap.Expenses))
	return snap, nil
}
