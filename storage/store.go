package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/fintrack"
	"github.com/etnz/fintrack/logger"
)

// Version is the version of the envelope written by Save.
const Version = 0

// envelope wraps the stored snapshot.
type envelope struct {
	State   fintrack.Snapshot `json:"state"`
	Version int               `json:"version"`
}

// Store saves and loads a ledger snapshot under one key of a backend.
type Store struct {
	backend Backend
	key     string
}

// NewStore returns a store of the snapshot under key.
func NewStore(b Backend, key string) *Store { return &Store{backend: b, key: key} }

// Load returns the stored snapshot. ok is false when nothing is stored yet.
func (s *Store) Load(ctx context.Context) (snap fintrack.Snapshot, ok bool, err error) {
	data, err := s.backend.Get(ctx, s.key)
	if errors.Is(err, ErrNotFound) {
		logger.Get().Debugw("no stored ledger", "key", s.key)
		return fintrack.Snapshot{}, false, nil
	}
	if err != nil {
		return fintrack.Snapshot{}, false, err
	}
	state, err := unwrap(data)
	if err != nil {
		return fintrack.Snapshot{}, false, fmt.Errorf("stored ledger %q: %w", s.key, err)
	}
	snap, err = fintrack.DecodeSnapshot(state)
	if err != nil {
		return fintrack.Snapshot{}, false, fmt.Errorf("stored ledger %q: %w", s.key, err)
	}
	logger.Get().Debugw("ledger loaded", "key", s.key,
		"incomes", len(snap.Incomes), "expenses", len(snap.Expenses), "wallets", len(snap.Wallets))
	return snap, true, nil
}

// Save stores snap, replacing the previous one.
func (s *Store) Save(ctx context.Context, snap fintrack.Snapshot) error {
	data, err := json.Marshal(envelope{State: snap, Version: Version})
	if err != nil {
		return fmt.Errorf("encode ledger: %w", err)
	}
	return s.backend.Set(ctx, s.key, data)
}

// Clear removes the stored snapshot.
func (s *Store) Clear(ctx context.Context) error { return s.backend.Delete(ctx, s.key) }

// Hook returns a ledger change hook saving every new state.
func (s *Store) Hook(ctx context.Context) fintrack.ChangeFunc {
	return func(snap fintrack.Snapshot) error { return s.Save(ctx, snap) }
}

// unwrap returns the raw state of an envelope, rejecting versions it cannot read.
func unwrap(data []byte) (json.RawMessage, error) {
	var jobj any
	if err := json.Unmarshal(data, &jobj); err != nil {
		return nil, fmt.Errorf("invalid envelope: %w", err)
	}
	if v, err := jsonpath.Get("$.version", jobj); err == nil {
		if n, ok := v.(float64); !ok || n != Version {
			return nil, fmt.Errorf("unsupported envelope version %v", v)
		}
	}
	var env struct {
		State json.RawMessage `json:"state"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("invalid envelope: %w", err)
	}
	if len(env.State) == 0 || string(env.State) == "null" {
		return nil, errors.New("invalid envelope: missing state")
	}
	return env.State, nil
}
