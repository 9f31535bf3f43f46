package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/schemagen/internal/app"
)

func (c *CLI) newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove the ledger so that the next run regenerates the schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			script, _ := cmd.Flags().GetBool("script")
			return c.app.Clean(cmd.Context(), app.CleanOptions{Script: script})
		},
	}

	cmd.Flags().BoolP("script", "s", false, "Also remove the generated script")

	return cmd
}
