// Package cli implements the bookstore command-line interface. The root
// command runs the interactive interpreter; init and version are the only
// subcommands.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	backend   string
	verbose   bool
}

var flags rootFlags

// NewRootCmd creates the top-level "bookstore" command with global flags
// and all subcommands registered. Running it without a subcommand starts
// the interpreter loop on stdin/stdout.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "bookstore",
		Short: "A session-stacked command interpreter for bookstore records",
		Long: "Bookstore maintains accounts, a book catalog and a finance ledger as\n" +
			"flat record files, driven by privilege-gated commands read from stdin.",
		RunE: runInterpreter,
		// Do not print usage on errors returned by subcommands.
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flags.configDir, "config-dir", "", "configuration directory (default: .bookstore)")
	root.PersistentFlags().StringVar(&flags.dataDir, "data-dir", "", "data directory (default: .bookstore-db)")
	root.PersistentFlags().StringVar(&flags.backend, "backend", "", "record store backend: file or sqlite (default: file)")
	root.PersistentFlags().BoolVar(&flags.verbose, "verbose", false, "log rejected commands to stderr")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd())

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		os.Exit(exitUserError)
	}
}

// resolveConfigDir returns the config directory from flag, env, or default.
func resolveConfigDir() string {
	if flags.configDir != "" {
		return flags.configDir
	}
	if v := os.Getenv("BOOKSTORE_CONFIG_DIR"); v != "" {
		return v
	}
	return ".bookstore"
}

// exitError prints the error to stderr and exits with the given code.
func exitError(code int, msg string) error {
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(code)
	return nil // unreachable
}
