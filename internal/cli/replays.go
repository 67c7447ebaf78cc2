package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rlreplays/ballchasing-client/pkg/params"
)

// listOpts holds the flags of the replays list command. They map one to one
// onto the replay listing filter.
type listOpts struct {
	playerName string
	playerID   string
	playlist   string
	season     string
	count      int
	jsonOut    bool
}

// newReplaysCmd creates the replays command group.
func newReplaysCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replays",
		Short: "Search and inspect replays",
	}

	cmd.AddCommand(newReplaysListCmd())
	cmd.AddCommand(newReplaysGetCmd())
	cmd.AddCommand(newReplaysDownloadCmd())

	return cmd
}

func newReplaysListCmd() *cobra.Command {
	opts := listOpts{count: 50}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List replays matching a filter",
		Long: `List replays matching a filter. At least one of --player-name or
--player-id is required.

Examples:
  bc replays list --player-name GarrettG
  bc replays list --player-id steam:76561198136523266 --playlist ranked-duels --count 10`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			bc, err := newClient()
			if err != nil {
				return err
			}

			filter := params.ReplayFilter{
				PlayerName: opts.playerName,
				PlayerID:   opts.playerID,
				Playlist:   opts.playlist,
				Season:     opts.season,
			}

			iter, err := bc.ListReplays(filter, opts.count)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for {
				item, ok, err := iter.Next(cmd.Context())
				if err != nil {
					return err
				}
				if !ok {
					return nil
				}

				if opts.jsonOut {
					fmt.Fprintln(out, string(item))
					continue
				}

				var replay struct {
					ID    string `json:"id"`
					Title string `json:"replay_title"`
					Date  string `json:"date"`
				}
				if err := json.Unmarshal(item, &replay); err != nil {
					return fmt.Errorf("parse replay item: %w", err)
				}
				fmt.Fprintf(out, "%s\t%s\t%s\n", replay.ID, replay.Date, replay.Title)
			}
		},
	}

	cmd.Flags().StringVar(&opts.playerName, "player-name", "", "filter by player name")
	cmd.Flags().StringVar(&opts.playerID, "player-id", "", "filter by player id (platform:id)")
	cmd.Flags().StringVar(&opts.playlist, "playlist", "", "filter by playlist")
	cmd.Flags().StringVar(&opts.season, "season", "", "filter by season")
	cmd.Flags().IntVarP(&opts.count, "count", "c", opts.count, "maximum replays to list")
	cmd.Flags().BoolVar(&opts.jsonOut, "json", false, "print raw JSON, one replay per line")

	return cmd
}

func newReplaysGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <replay-id>",
		Short: "Print a replay's full metadata document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bc, err := newClient()
			if err != nil {
				return err
			}

			raw, err := bc.GetReplay(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), string(raw))
			return nil
		},
	}
}

func newReplaysDownloadCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "download <replay-id>",
		Short: "Download the original .replay file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bc, err := newClient()
			if err != nil {
				return err
			}

			path := output
			if path == "" {
				path = args[0] + ".replay"
			}

			if err := bc.DownloadReplay(cmd.Context(), args[0], path); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (defaults to <replay-id>.replay)")

	return cmd
}
