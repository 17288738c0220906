package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"botwatch"
	"botwatch/internal/poller"
)

// fetchCmd performs a single poll cycle and prints the projected state.
var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch the status once and print it",
	Long: `Perform one poll cycle against the status endpoint and print the
projected display state to stdout.

Useful for scripting and for checking an endpoint before starting the
dashboard. Exits non-zero if the fetch fails.

Example:
  botwatch fetch --url http://localhost:8080/api/status`,
	RunE: runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)

	fetchCmd.Flags().StringP("config", "c", "", "path to config file")
	fetchCmd.Flags().String("url", "", "status endpoint URL (alternative to --config)")
	fetchCmd.Flags().Duration("interval", botwatch.DefaultInterval, "poll interval (unused, accepted for parity)")
	fetchCmd.Flags().Duration("timeout", botwatch.DefaultTimeout, "per-request timeout")
	fetchCmd.Flags().Bool("debug", false, "ignored; accepted for parity with watch")
}

func runFetch(cmd *cobra.Command, args []string) error {
	opts, _, err := watcherOptions(cmd)
	if err != nil {
		return err
	}

	// reuse the watcher's validation and defaulting, then run one cycle
	// by hand instead of starting the loop
	w, err := botwatch.New(opts...)
	if err != nil {
		return err
	}

	client := poller.NewClient()
	defer client.Close()

	started := time.Now()
	resp := client.Fetch(cmd.Context(), w.URL(), w.Headers(), w.Timeout())
	if resp.Err != nil {
		return fmt.Errorf("fetch failed: %w", resp.Err)
	}

	snap, err := botwatch.DecodeSnapshot(resp.Body)
	if err != nil {
		return err
	}

	printState(cmd, botwatch.Project(started, snap))
	return nil
}

func printState(cmd *cobra.Command, state botwatch.State) {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Bot status:   %s [%s]\n", state.BotStatus.Text, state.BotStatus.Category)
	fmt.Fprintf(out, "Discord:      %s [%s]\n", state.DiscordStatus.Text, state.DiscordStatus.Category)
	fmt.Fprintf(out, "X API:        %s [%s]\n", state.XAPIStatus.Text, state.XAPIStatus.Category)
	fmt.Fprintf(out, "Last call:    %s\n", state.XAPILastAttempt)
	fmt.Fprintf(out, "Channel:      %s\n", state.Channel)
	fmt.Fprintf(out, "Posts:        %s attempted, %s succeeded, %s failed\n",
		state.PostsAttempted, state.PostsSucceeded, state.PostsFailed)
	fmt.Fprintf(out, "Activity (%d):\n", state.ActivityCount)
	for _, row := range state.Activity {
		fmt.Fprintf(out, "  %s  %s", row.Time, row.Text)
		if row.Status != "" {
			fmt.Fprintf(out, "  [%s]", row.Status)
		}
		fmt.Fprintln(out)
	}
	fmt.Fprintf(out, "Updated:      %s\n", state.LastUpdated)
}
