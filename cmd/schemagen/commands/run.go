package commands

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.trai.ch/schemagen/internal/app"
	"go.trai.ch/schemagen/internal/core/domain"
)

func (c *CLI) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Generate the schema script if mappings or configuration changed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			force, _ := cmd.Flags().GetBool("force")
			skip, _ := cmd.Flags().GetBool("skip")
			noExecute, _ := cmd.Flags().GetBool("no-execute")
			asJSON, _ := cmd.Flags().GetBool("json")

			outcome, err := c.app.Run(cmd.Context(), app.RunOptions{
				Force:     force,
				Skip:      skip,
				NoExecute: noExecute,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(outcome)
			}

			status := "generated"
			if outcome.Skipped {
				status = "skipped"
			}
			_, err = fmt.Fprintf(out, "%s: %s (%s=%s)\n",
				status, outcome.Reason, domain.PropSkipped, strconv.FormatBool(outcome.Skipped))
			return err
		},
	}
	cmd.Flags().BoolP("force", "f", false, "Regenerate even if nothing changed")
	cmd.Flags().Bool("skip", false, "Skip schema generation entirely")
	cmd.Flags().Bool("no-execute", false, "Generate the script without applying it to the database")
	cmd.Flags().Bool("json", false, "Print the run outcome as JSON")
	return cmd
}
