package fintrack

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/PaesslerAG/jsonpath"
)

// backupKeys are the top level keys every backup must hold.
var backupKeys = []string{"incomes", "expenses", "categories", "wallets", "transfers"}

// EncodeBackup writes s as an indented JSON backup.
func EncodeBackup(w io.Writer, s Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s.clone()); err != nil {
		return fmt.Errorf("cannot encode backup: %w", err)
	}
	return nil
}

// DecodeBackup reads a backup written by EncodeBackup.
//
// Unlike DecodeSnapshot it is strict: every collection must be present and
// not null, even when empty.
func DecodeBackup(r io.Reader) (Snapshot, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Snapshot{}, fmt.Errorf("cannot read backup: %w", err)
	}
	var jobj any
	if err := json.Unmarshal(data, &jobj); err != nil {
		return Snapshot{}, Wrap(ErrInvalidBackup, err)
	}
	for _, key := range backupKeys {
		jval, err := jsonpath.Get("$."+key, jobj)
		if err != nil || jval == nil {
			return Snapshot{}, WithMessage(ErrInvalidBackup, fmt.Sprintf("invalid backup: missing %q", key))
		}
		if _, ok := jval.([]any); !ok {
			return Snapshot{}, WithMessage(ErrInvalidBackup, fmt.Sprintf("invalid backup: %q is not a list", key))
		}
	}
	return DecodeSnapshot(data)
}

// DecodeSnapshot reads a snapshot, missing collections are left nil.
func DecodeSnapshot(data []byte) (Snapshot, error) {
	var s Snapshot
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&s); err != nil {
		return Snapshot{}, Wrap(ErrInvalidBackup, err)
	}
	return s, nil
}
