// Package cmd implements the fin command line application to manage a
// personal finance ledger.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/etnz/fintrack"
	"github.com/etnz/fintrack/config"
	"github.com/etnz/fintrack/date"
	"github.com/etnz/fintrack/logger"
	"github.com/etnz/fintrack/storage"
	"github.com/google/subcommands"
)

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	dataDir    = flag.String("data-dir", "", "Directory holding the ledger. Overrides FINTRACK_DATA_DIR.")
	backend    = flag.String("backend", "", "Storage backend, file or sqlite. Overrides FINTRACK_BACKEND.")
	storageKey = flag.String("key", "", "Key the ledger is stored under. Overrides FINTRACK_STORAGE_KEY.")
	currency   = flag.String("currency", "", "Currency used to display amounts. Overrides FINTRACK_CURRENCY.")
	Verbose    = flag.Bool("v", false, "Log storage activity on stderr.")
)

// EnvTestingNow freezes the clock of the application, formatted as "2006-01-02 15:04:05".
const EnvTestingNow = "FINTRACK_TESTING_NOW"

// stdout receives the output of every command.
var stdout io.Writer = os.Stdout

type command struct {
	group string
	cmd   subcommands.Command
}

var commands = []command{
	{"wallets", &walletsCmd{}},
	{"wallets", &walletAddCmd{}},
	{"wallets", &walletEditCmd{}},
	{"wallets", &walletDeleteCmd{}},
	{"wallets", &transferCmd{}},
	{"wallets", &goalCmd{}},

	{"transactions", &addCmd{}},
	{"transactions", &editCmd{}},
	{"transactions", &deleteCmd{}},
	{"transactions", &effectuateCmd{}},

	{"reports", &txCmd{}},
	{"reports", &pendingCmd{}},
	{"reports", &summaryCmd{}},

	{"categories", &categoriesCmd{}},
	{"categories", &categoryAddCmd{}},
	{"categories", &categoryDeleteCmd{}},

	{"data", &importCmd{}},
	{"data", &exportCmd{}},
	{"data", &clearCmd{}},

	{"help", &topicCmd{}},
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for _, cc := range commands {
		c.Register(cc.cmd, cc.group)
	}
}

// Commands returns every fin subcommand.
func Commands() []subcommands.Command {
	out := make([]subcommands.Command, len(commands))
	for i, cc := range commands {
		out[i] = cc.cmd
	}
	return out
}

// LoadConfig returns the configuration from the environment, overridden by the global flags.
func LoadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if *dataDir != "" {
		cfg.DataDir = *dataDir
	}
	if *backend != "" {
		cfg.Backend = *backend
	}
	if *storageKey != "" {
		cfg.StorageKey = *storageKey
	}
	if *currency != "" {
		cfg.Currency = *currency
	}
	if *Verbose {
		cfg.Env = "development"
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// clock returns the application clock, frozen by EnvTestingNow.
func clock() (func() time.Time, error) {
	v := os.Getenv(EnvTestingNow)
	if v == "" {
		return time.Now, nil
	}
	now, err := time.Parse(time.DateTime, v)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", EnvTestingNow, err)
	}
	return func() time.Time { return now }, nil
}

// session is an opened ledger, saved on every change.
type session struct {
	cfg     *config.Config
	backend storage.Backend
	store   *storage.Store
	ledger  *fintrack.Ledger
}

// open loads the configured ledger, or a fresh one when nothing is stored yet.
func open(ctx context.Context) (*session, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	logger.Init(cfg.Env)
	now, err := clock()
	if err != nil {
		return nil, err
	}
	date.Now = now

	b, err := storage.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}
	store := storage.NewStore(b, cfg.StorageKey)
	l := fintrack.NewLedger(
		fintrack.WithClock(now),
		fintrack.WithCurrency(cfg.Currency),
		fintrack.OnChange(store.Hook(ctx)),
	)
	snap, ok, err := store.Load(ctx)
	if err != nil {
		b.Close()
		return nil, err
	}
	if ok {
		if err := l.Restore(snap); err != nil {
			b.Close()
			return nil, fmt.Errorf("stored ledger is invalid: %w", err)
		}
	}
	logger.Get().Debugw("ledger opened", "backend", cfg.Backend, "dir", cfg.DataDir, "key", cfg.StorageKey, "stored", ok)
	return &session{cfg: cfg, backend: b, store: store, ledger: l}, nil
}

func (s *session) Close() error {
	defer logger.Sync()
	return s.backend.Close()
}

// run opens the ledger, runs fn and reports its error on stderr.
func run(ctx context.Context, fn func(s *session) error) subcommands.ExitStatus {
	s, err := open(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	defer s.Close()

	if err := fn(s); err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}

// fail prints err and returns the matching exit status.
func fail(err error) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	var usage usageError
	if errors.As(err, &usage) {
		return subcommands.ExitUsageError
	}
	return subcommands.ExitFailure
}

// usageError reports invalid command line arguments.
type usageError struct{ msg string }

func (e usageError) Error() string { return e.msg }

func usagef(format string, args ...any) error { return usageError{fmt.Sprintf(format, args...)} }
