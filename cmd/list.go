package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the built-in targets",
		Long:  "List the functions that can be swept, with their base sequence and the complexity they are written to have.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return currentWorkflow(cmd).List(context.Background())
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(listCmd)
}
