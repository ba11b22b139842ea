package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the manifest's gates without evaluating them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			manifest, err := c.app.List(c.manifestDir(cmd))
			if err != nil {
				return err
			}

			if manifest.Baseline.String() != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "baseline: %s\n", manifest.Baseline)
			}
			for _, g := range manifest.Gates {
				fmt.Fprintf(cmd.OutOrStdout(), "%s (%s) -> %s\n", g.Capability, g.Probe.Kind, g.Fallback)
			}
			return nil
		},
	}
}
