package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"botwatch"
	"botwatch/config"
	"botwatch/internal/tui"
)

const defaultTitle = "botwatch"

// watchCmd runs the terminal dashboard.
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run the terminal dashboard",
	Long: `Run the botwatch terminal dashboard.

The dashboard will:
  - Poll the bot's status endpoint immediately, then every poll interval
  - Render bot and connection health, relay counters, and recent activity
  - Degrade to an explicit error display when a poll cycle fails

The dashboard runs until q, Ctrl+C, or SIGTERM.

Example:
  botwatch watch --url http://localhost:8080/api/status
  botwatch watch -c botwatch.yaml`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringP("config", "c", "", "path to config file")
	watchCmd.Flags().String("url", "", "status endpoint URL (alternative to --config)")
	watchCmd.Flags().Duration("interval", botwatch.DefaultInterval, "poll interval")
	watchCmd.Flags().Duration("timeout", botwatch.DefaultTimeout, "per-request timeout")
	watchCmd.Flags().Bool("debug", false, "log poll cycles as JSON on stderr")
}

// watcherOptions resolves config file and flags into watcher options plus
// a dashboard title. Flags and config file are mutually exclusive inputs
// for the endpoint; the config file wins when both are given.
func watcherOptions(cmd *cobra.Command) ([]botwatch.Option, string, error) {
	configFile, _ := cmd.Flags().GetString("config")
	if configFile != "" {
		cfg, err := config.Load(configFile)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load config: %w", err)
		}
		title := cfg.Title
		if title == "" {
			title = defaultTitle
		}
		return config.BuildOptions(cfg), title, nil
	}

	url, _ := cmd.Flags().GetString("url")
	if url == "" {
		return nil, "", fmt.Errorf("either --config or --url is required")
	}
	interval, _ := cmd.Flags().GetDuration("interval")
	timeout, _ := cmd.Flags().GetDuration("timeout")

	opts := []botwatch.Option{
		botwatch.WithURL(url),
		botwatch.WithInterval(interval),
		botwatch.WithTimeout(timeout),
	}
	return opts, defaultTitle, nil
}

func runWatch(cmd *cobra.Command, args []string) error {
	opts, title, err := watcherOptions(cmd)
	if err != nil {
		return err
	}

	// the TUI owns the terminal; cycle logs go to stderr only on request
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		logger = slog.New(slog.NewJSONHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}
	opts = append(opts, botwatch.WithLogger(logger))

	w, err := botwatch.New(opts...)
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	states := w.Latest().Subscribe()
	defer w.Latest().Unsubscribe(states)

	watcherDone := make(chan error, 1)
	go func() {
		watcherDone <- w.Start(ctx)
	}()

	app := tui.New(title, states)
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("dashboard error: %w", err)
	}

	// quitting the TUI ends the poll loop too
	stop()
	select {
	case <-watcherDone:
	case <-time.After(5 * time.Second):
	}
	return nil
}
