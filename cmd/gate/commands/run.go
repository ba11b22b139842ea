package commands

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

func (c *CLI) newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Evaluate the manifest's gates and load missing fallbacks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			statuses, err := c.app.Run(cmd.Context(), c.manifestDir(cmd))

			// Print however far the run got, then surface the error.
			names := make([]string, 0, len(statuses))
			for name := range statuses {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Fprintf(cmd.OutOrStdout(), "%-12s %s\n", statuses[name], name)
			}

			return err
		},
	}
}
