package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pagecroft/bookstore/pkg/bookstore"
)

const modulePath = "github.com/pagecroft/bookstore"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the bookstore version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "bookstore v%s\nmodule: %s\n", bookstore.Version, modulePath)
			return nil
		},
	}
}
