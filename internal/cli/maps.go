package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

// newMapsCmd creates the maps command, printing the map code lookup table.
func newMapsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "maps",
		Short: "List map codes and their display names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			bc, err := newClient()
			if err != nil {
				return err
			}

			maps, err := bc.GetMaps(cmd.Context())
			if err != nil {
				return err
			}

			codes := make([]string, 0, len(maps))
			for code := range maps {
				codes = append(codes, code)
			}
			sort.Strings(codes)

			for _, code := range codes {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", code, maps[code])
			}
			return nil
		},
	}
}
