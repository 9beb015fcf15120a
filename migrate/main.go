// Command migrate moves a fintrack ledger between storage backends.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/fintrack"
	"github.com/etnz/fintrack/config"
	"github.com/etnz/fintrack/logger"
	"github.com/etnz/fintrack/storage"
	"github.com/google/subcommands"
)

func main() {
	// The migrate tool needs its own set of flags, independent of the fin tool.
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ExitOnError)

	commander := subcommands.NewCommander(flag.CommandLine, "migrate")
	commander.Register(commander.HelpCommand(), "")
	commander.Register(&copyCmd{}, "")
	commander.Register(&checkCmd{}, "")
	flag.Parse()

	env := os.Getenv("FINTRACK_ENV")
	if env == "" {
		env = config.DefaultEnv
	}
	logger.Init(env)
	defer logger.Sync()
	os.Exit(int(commander.Execute(context.Background())))
}

// location is a ledger in a backend, defaulting to the fin configuration.
type location struct {
	dataDir, backend, key string
}

func (l *location) setFlags(f *flag.FlagSet, prefix, what string) {
	f.StringVar(&l.dataDir, prefix+"dir", "", "Data directory of the "+what+" ledger, FINTRACK_DATA_DIR by default.")
	f.StringVar(&l.backend, prefix+"backend", "", "Backend of the "+what+" ledger, file or sqlite.")
	f.StringVar(&l.key, prefix+"key", "", "Storage key of the "+what+" ledger, FINTRACK_STORAGE_KEY by default.")
}

// open opens the backend of the location.
func (l *location) open(ctx context.Context) (storage.Backend, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if l.dataDir != "" {
		cfg.DataDir = l.dataDir
	}
	if l.backend != "" {
		cfg.Backend = l.backend
	}
	if l.key != "" {
		cfg.StorageKey = l.key
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	b, err := storage.Open(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return b, cfg, nil
}

// --- copyCmd ---

type copyCmd struct {
	from, to location
	force    bool
}

func (*copyCmd) Name() string     { return "copy" }
func (*copyCmd) Synopsis() string { return "copies a ledger to another backend" }
func (*copyCmd) Usage() string {
	return `migrate copy -backend <from> -to-backend <to> [-dir <dir>] [-to-dir <dir>] [-key <key>] [-force]

Copies the ledger stored in one backend to another one, for instance from
JSON files to SQLite. The destination key defaults to the source key. An
existing destination ledger is only replaced with -force.
`
}

func (c *copyCmd) SetFlags(f *flag.FlagSet) {
	c.from.setFlags(f, "", "source")
	c.to.setFlags(f, "to-", "destination")
	f.BoolVar(&c.force, "force", false, "Replace an existing destination ledger.")
}

func (c *copyCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.from.backend == "" || c.to.backend == "" {
		fmt.Fprintln(os.Stderr, "Error: -backend and -to-backend flags are required.")
		return subcommands.ExitUsageError
	}
	if c.to.dataDir == "" {
		c.to.dataDir = c.from.dataDir
	}
	if c.to.key == "" {
		c.to.key = c.from.key
	}
	if c.from == c.to {
		fmt.Fprintln(os.Stderr, "Error: source and destination must differ.")
		return subcommands.ExitUsageError
	}

	src, cfg, err := c.from.open(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening source: %v\n", err)
		return subcommands.ExitFailure
	}
	defer src.Close()
	dst, dstCfg, err := c.to.open(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening destination: %v\n", err)
		return subcommands.ExitFailure
	}
	defer dst.Close()
	if cfg.StorageKey != dstCfg.StorageKey {
		fmt.Fprintln(os.Stderr, "Error: -key and -to-key must be equal.")
		return subcommands.ExitUsageError
	}

	snap, err := storage.Copy(ctx, src, dst, cfg.StorageKey, c.force)
	if errors.Is(err, storage.ErrExists) {
		fmt.Fprintf(os.Stderr, "Error: %v, use -force to replace it\n", err)
		return subcommands.ExitFailure
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error copying ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Copied %d incomes, %d expenses and %d wallets from %s to %s\n",
		len(snap.Incomes), len(snap.Expenses), len(snap.Wallets), cfg.Backend, dstCfg.Backend)
	return subcommands.ExitSuccess
}

// --- checkCmd ---

type checkCmd struct {
	at location
}

func (*checkCmd) Name() string     { return "check" }
func (*checkCmd) Synopsis() string { return "checks a stored ledger" }
func (*checkCmd) Usage() string {
	return `migrate check [-dir <dir>] [-backend <backend>] [-key <key>]

Loads a stored ledger, checks every record, and lists the wallets whose
balance differs from the sum of their settled transactions.
`
}

func (c *checkCmd) SetFlags(f *flag.FlagSet) { c.at.setFlags(f, "", "checked") }

func (c *checkCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	b, cfg, err := c.at.open(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	defer b.Close()

	snap, ok, err := storage.NewStore(b, cfg.StorageKey).Load(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	if !ok {
		fmt.Printf("No ledger stored under %q\n", cfg.StorageKey)
		return subcommands.ExitSuccess
	}
	l := fintrack.NewLedger()
	if err := l.Restore(snap); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	for _, w := range l.Wallets() {
		want := fintrack.SettledBalance(l.WalletTransactions(w.ID))
		if !w.Balance.Equal(want) {
			fmt.Printf("Wallet %s: balance %v, settled transactions sum to %v\n", w.ID, w.Balance, want)
		}
	}
	fmt.Printf("Ledger %q: %d incomes, %d expenses, %d wallets, %d categories, %d transfers\n",
		cfg.StorageKey, len(snap.Incomes), len(snap.Expenses), len(snap.Wallets), len(snap.Categories), len(snap.Transfers))
	return subcommands.ExitSuccess
}
