// Package main is the entry point for the botwatch CLI.
//
// botwatch is a terminal status dashboard for a message-relay bot: it
// polls the bot's JSON status endpoint and renders health, counters, and
// recent activity.
//
// Usage:
//
//	botwatch watch --url http://localhost:8080/api/status
//	botwatch watch -c botwatch.yaml   # config file
//	botwatch fetch --url ...          # one cycle, plain output
//	botwatch simulate --port 8080     # run a fake bot status endpoint
//	botwatch validate -c botwatch.yaml
//	botwatch version
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// Version information - set at build time via ldflags.
// Example: go build -ldflags "-X main.version=1.0.0"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCmd is the base command when called without subcommands.
// It just displays help - actual functionality is in subcommands.
var rootCmd = &cobra.Command{
	Use:   "botwatch",
	Short: "A terminal status dashboard for a relay bot",
	Long: `botwatch is a terminal status dashboard for a message-relay bot.

It polls the bot's JSON status endpoint on a fixed interval (7s by
default), classifies status labels into display categories, and renders
connection health, relay counters, and the recent-activity log.

Quick start:
  1. Run: botwatch watch --url http://localhost:8080/api/status
  2. Or create a config file (botwatch.yaml) and run: botwatch watch -c botwatch.yaml

Example config:
  url: http://localhost:8080/api/status
  poll_interval: 7s
  timeout: 5s`,
	// No Run/RunE means this just shows help when called without subcommands
}

// newLogger creates a JSON logger for CLI use.
func newLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error, just exit with code 1
		os.Exit(1)
	}
}

func main() {
	Execute()
}

// versionCmd prints version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print the version, commit hash, and build date of this botwatch binary.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("botwatch %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
