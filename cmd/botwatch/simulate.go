package main

import (
	"context"
	"fmt"
	"math/rand"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"botwatch/internal/feed"
	"botwatch/internal/server"
)

// simulateCmd serves a synthetic bot status endpoint.
var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a synthetic bot status endpoint",
	Long: `Run a local HTTP server that behaves like a relay bot's status
endpoint, generating synthetic relay activity on a timer.

Useful for demos and for exercising the dashboard without a real bot:

  botwatch simulate --port 8080 &
  botwatch watch --url http://localhost:8080/api/status

The server runs until interrupted (Ctrl+C) or SIGTERM.`,
	RunE: runSimulate,
}

func init() {
	rootCmd.AddCommand(simulateCmd)

	simulateCmd.Flags().Int("port", 8080, "port to listen on")
	simulateCmd.Flags().Duration("event-interval", 3*time.Second, "time between synthetic events")
	simulateCmd.Flags().String("channel", "announcements", "monitored channel label to report")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	port, _ := cmd.Flags().GetInt("port")
	eventInterval, _ := cmd.Flags().GetDuration("event-interval")
	channel, _ := cmd.Flags().GetString("channel")

	f := feed.New(channel)
	f.RecordEvent("System", "▶️ Starting", "Initiating Discord client connection")
	f.SetConnectionStatus(feed.StatusConnecting)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := server.NewServer(f, port, logger)
	if err := srv.Start(ctx); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	logger.Info("simulated bot status endpoint up",
		"url", fmt.Sprintf("http://localhost:%d/api/status", port),
		"event_interval", eventInterval.String(),
	)

	go driveEvents(ctx, f, eventInterval)

	<-ctx.Done()
	logger.Info("simulator stopped")
	return nil
}

// driveEvents feeds synthetic relay activity until the context ends.
//
// The mix leans healthy: the bot connects shortly after start, most posts
// succeed, and the occasional failure, skip, or connection flap keeps all
// classification categories visible on the dashboard.
func driveEvents(ctx context.Context, f *feed.Feed, interval time.Duration) {
	connected := false
	msgID := rand.Int63n(1_000_000_000)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		if !connected {
			f.SetConnectionStatus(feed.StatusConnected)
			connected = true
			continue
		}

		msgID++
		detail := fmt.Sprintf("Discord ID: %d", msgID)

		switch roll := rand.Intn(100); {
		case roll < 70:
			f.RecordPost(true, fmt.Sprintf("%s -> X ID: %d", detail, rand.Int63n(1_000_000_000)))
		case roll < 82:
			f.RecordPost(false, "TweepyException: rate limit exceeded")
		case roll < 90:
			f.RecordEvent("Info", "⚪ Skipped", detail+" - Empty message")
		case roll < 96:
			f.RecordEvent("Warning", "⚠️ Mapping", fmt.Sprintf("Missing X ID for Discord thread starter %d", msgID))
		default:
			// brief connection flap
			f.SetConnectionStatus(feed.StatusDisconnected)
			connected = false
		}
	}
}
