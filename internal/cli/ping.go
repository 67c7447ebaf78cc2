package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newPingCmd creates the ping command: a token and reachability check that
// also reports the caller's patronage tier.
func newPingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check API reachability and token validity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			bc, err := newClient()
			if err != nil {
				return err
			}

			result, err := bc.Ping(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "ok: %s (patronage: %s)\n", result.Name, result.Type)
			return nil
		},
	}
}
