package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"

	"github.com/etnz/fintrack/logger"
)

// Environment passed to extensions, holding the resolved global flags.
const (
	EnvDataDir    = "FINTRACK_DATA_DIR"
	EnvBackend    = "FINTRACK_BACKEND"
	EnvStorageKey = "FINTRACK_STORAGE_KEY"
	EnvCurrency   = "FINTRACK_CURRENCY"
	EnvVerbose    = "FINTRACK_VERBOSE"
)

// RunExtension attempts to find and execute an external fin-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found or executed.
func RunExtension(subcommand string, args []string) (bool, int) {
	externalCmdName := "fin-" + subcommand

	lp, err := exec.LookPath(externalCmdName)
	if err != nil {
		return false, 0
	}

	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return true, 1
	}
	logger.Init(cfg.Env)
	defer logger.Sync()
	logger.Get().Debugw("running extension", "command", lp, "args", args)

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = append(os.Environ(),
		EnvDataDir+"="+cfg.DataDir,
		EnvBackend+"="+cfg.Backend,
		EnvStorageKey+"="+cfg.StorageKey,
		EnvCurrency+"="+cfg.Currency,
		EnvVerbose+"="+strconv.FormatBool(*Verbose),
	)

	if err := cmd.Run(); err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			return true, exitError.ExitCode()
		}
		fmt.Fprintf(os.Stderr, "Error executing external command %q: %v\n", externalCmdName, err)
		return true, 1
	}
	return true, 0
}
