// Package cli implements the bc command line interface.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rlreplays/ballchasing-client/pkg/client"
	"github.com/rlreplays/ballchasing-client/pkg/logging"
)

// Execute runs the bc CLI and returns an error if any command fails.
func Execute() error {
	var verbose bool

	root := &cobra.Command{
		Use:          "bc",
		Short:        "bc talks to the ballchasing.com replay API",
		Long:         `bc is a small command line client for the ballchasing.com Rocket League replay API: check your token, look up map codes, and search replays.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := logging.LevelWarn
			if verbose {
				level = logging.LevelDebug
			}
			logging.Setup(logging.Config{Level: level, Pretty: true, Output: os.Stderr})
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newPingCmd())
	root.AddCommand(newMapsCmd())
	root.AddCommand(newReplaysCmd())

	return root.ExecuteContext(context.Background())
}

// newClient builds a client from the environment. The token comes from
// BC_TOKEN; BC_URL overrides the API root for testing.
func newClient() (*client.Client, error) {
	token := os.Getenv("BC_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("BC_TOKEN not set")
	}

	cfg := client.DefaultConfig(token)
	if url := os.Getenv("BC_URL"); url != "" {
		cfg.BaseURL = url
	}
	return client.New(cfg)
}
