package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/pagecroft/bookstore/internal/engine"
	"github.com/pagecroft/bookstore/internal/sqlite"
	"github.com/pagecroft/bookstore/internal/textfile"
	"github.com/pagecroft/bookstore/pkg/types"
)

// openStore opens the record store backend selected by the configuration.
func openStore(cfg types.Config) (types.Store, error) {
	switch cfg.Backend {
	case types.BackendFile:
		return textfile.Open(cfg.DataDir)
	case types.BackendSQLite:
		return sqlite.Open(cfg.DataDir)
	}
	return nil, types.ErrBackendUnknown
}

// newLogger builds the stderr logger. Stdout carries only interpreter
// output; diagnostics never mix into it.
func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if flags.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// runInterpreter starts the command loop: read stdin line by line, write
// command output or the rejection marker to stdout, until EOF or quit.
func runInterpreter(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return exitError(exitUserError, fmt.Sprintf("unexpected argument: %s", args[0]))
	}

	cfg, err := loadConfig(resolveConfigDir())
	if err != nil {
		return exitError(exitUserError, fmt.Sprintf("load config: %s", err))
	}

	logger := newLogger()
	store, err := openStore(cfg)
	if err != nil {
		return exitError(exitSysError, fmt.Sprintf("open store: %s", err))
	}
	defer store.Close()

	logger.Debug("store opened", "backend", cfg.Backend, "data_dir", cfg.DataDir)

	eng := engine.New(store, nil, logger)
	if err := eng.Run(cmd.InOrStdin(), cmd.OutOrStdout()); err != nil {
		return exitError(exitSysError, fmt.Sprintf("interpreter: %s", err))
	}
	return nil
}
