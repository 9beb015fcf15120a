// Package config loads the settings of the fin tool from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/joho/godotenv"
)

// Storage backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Backends lists the valid storage backends.
var Backends = []string{BackendFile, BackendSQLite}

// DefaultEnv is the logging environment when FINTRACK_ENV is not set: the
// tool logs nothing unless asked to.
const DefaultEnv = "quiet"

// DefaultStorageKey is the namespace the ledger is stored under.
const DefaultStorageKey = "financial-storage"

// Config holds the settings of the fin tool.
type Config struct {
	Env        string // development, production or quiet
	DataDir    string // directory holding the stored ledger
	Backend    string // file or sqlite
	StorageKey string
	Currency   string // ISO 4217 code used to format amounts
}

// Load reads an optional .env file from the working directory, then the
// FINTRACK_* environment variables, falling back to defaults.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}
	cfg := &Config{
		Env:        getEnv("FINTRACK_ENV", DefaultEnv),
		DataDir:    getEnv("FINTRACK_DATA_DIR", defaultDataDir()),
		Backend:    getEnv("FINTRACK_BACKEND", BackendFile),
		StorageKey: getEnv("FINTRACK_STORAGE_KEY", DefaultStorageKey),
		Currency:   strings.ToUpper(getEnv("FINTRACK_CURRENCY", "BRL")),
	}
	return cfg, nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error
	if !slices.Contains(Backends, c.Backend) {
		errs = append(errs, fmt.Errorf("invalid backend %q: must be one of %v", c.Backend, Backends))
	}
	if strings.TrimSpace(c.StorageKey) == "" {
		errs = append(errs, errors.New("storage key cannot be empty"))
	} else if strings.ContainsAny(c.StorageKey, `/\`) {
		errs = append(errs, fmt.Errorf("invalid storage key %q: must not contain path separators", c.StorageKey))
	}
	if c.DataDir == "" {
		errs = append(errs, errors.New("data directory cannot be empty"))
	}
	if money.GetCurrency(c.Currency) == nil {
		errs = append(errs, fmt.Errorf("unknown currency %q", c.Currency))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// DBPath is the SQLite database file of the sqlite backend.
func (c *Config) DBPath() string { return filepath.Join(c.DataDir, "fintrack.db") }

func defaultDataDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".fintrack"
	}
	return filepath.Join(dir, "fintrack")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
