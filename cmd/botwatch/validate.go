package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"botwatch/config"
)

// validateCmd validates a config file without starting the dashboard.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a config file",
	Long: `Validate a botwatch configuration file without starting the dashboard.

This command parses the YAML, expands environment variables, and validates
all fields. It's useful for CI/CD pipelines or pre-deployment checks.

Exit codes:
  0 - Config is valid
  1 - Config is invalid (error details printed to stderr)

Example:
  botwatch validate -c botwatch.yaml`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringP("config", "c", "", "path to config file (required)")
	_ = validateCmd.MarkFlagRequired("config")
}

func runValidate(cmd *cobra.Command, args []string) error {
	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Config is valid!\n")
	fmt.Fprintf(cmd.OutOrStdout(), "  URL:           %s\n", cfg.URL)
	fmt.Fprintf(cmd.OutOrStdout(), "  Poll interval: %s\n", cfg.PollInterval.Duration())
	fmt.Fprintf(cmd.OutOrStdout(), "  Timeout:       %s\n", cfg.Timeout.Duration())

	return nil
}
