package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/schemagen/internal/app"
)

func (c *CLI) newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Show the persisted ledger",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			diff, _ := cmd.Flags().GetBool("diff")
			return c.app.Inspect(cmd.Context(), cmd.OutOrStdout(), app.InspectOptions{Diff: diff})
		},
	}

	cmd.Flags().BoolP("diff", "d", false, "Compare the ledger with the current mapping sources")

	return cmd
}
