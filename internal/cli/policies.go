package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"boatsim/internal/steering"
)

func newPoliciesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "policies",
		Short: "List the registered steering policies.",
		Args:  cobra.NoArgs,
		// Listing needs no configuration or logger.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range steering.Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}
