// Package config provides YAML configuration parsing for the botwatch CLI.
//
// This package enables running botwatch with a configuration file, as an
// alternative to passing flags.
//
// Example configuration:
//
//	title: Relay Bot
//	url: http://localhost:8080/api/status
//	poll_interval: 7s
//	timeout: 5s
//	headers:
//	  Authorization: Bearer ${BOT_STATUS_TOKEN}
package config

import (
	"fmt"
	"net/url"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// minPollInterval is the minimum allowed polling interval.
// This prevents accidental DoS of the status endpoint with overly
// aggressive polling.
const minPollInterval = 1 * time.Second

// Config is the root configuration structure for botwatch.
//
// It maps directly to the YAML configuration file structure.
// Use [Load] or [Parse] to create a Config from YAML.
type Config struct {
	// Title is the dashboard title. Defaults to "botwatch" if not set.
	Title string `yaml:"title"`

	// URL is the bot's status endpoint.
	// Supports environment variable substitution: ${VAR} or ${VAR:-default}
	URL string `yaml:"url"`

	// PollInterval is the time between poll cycles.
	// Accepts duration strings like "7s", "1m", "500ms". Defaults to 7s.
	PollInterval Duration `yaml:"poll_interval"`

	// Timeout is the per-request timeout. Defaults to 10s.
	Timeout Duration `yaml:"timeout"`

	// Headers are custom HTTP headers sent with each poll request.
	// Values support environment variable substitution.
	Headers map[string]string `yaml:"headers"`
}

// Duration wraps time.Duration for YAML unmarshalling.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler for Duration.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}

	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}

	*d = Duration(parsed)
	return nil
}

// Duration returns the underlying time.Duration value.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// envVarPattern matches ${VAR} and ${VAR:-default} patterns.
// Group 1: variable name
// Group 2: the ":-default" part (if present, indicates a default was specified)
// Group 3: the default value (may be empty for ${VAR:-})
var envVarPattern = regexp.MustCompile(`\$\{([^}:]+)(:-([^}]*))?\}`)

// expandEnvVars replaces ${VAR} and ${VAR:-default} patterns with
// environment values.
func expandEnvVars(s string) (string, error) {
	var firstErr error

	result := envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		// already have an error, skip processing
		if firstErr != nil {
			return match
		}

		submatches := envVarPattern.FindStringSubmatch(match)
		if len(submatches) < 2 {
			return match
		}

		varName := submatches[1]
		hasDefault := len(submatches) > 2 && submatches[2] != ""
		defaultVal := ""
		if hasDefault && len(submatches) > 3 {
			defaultVal = submatches[3]
		}

		value, exists := os.LookupEnv(varName)
		if !exists {
			if hasDefault {
				return defaultVal
			}
			firstErr = fmt.Errorf("environment variable %q is not set", varName)
			return match
		}
		return value
	})

	if firstErr != nil {
		return "", firstErr
	}
	return result, nil
}

// Load reads and parses a YAML configuration file.
//
// Environment variables in the file are expanded before parsing.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse parses YAML configuration data.
//
// Environment variables are expanded in URL and header values.
// Defaults are applied for PollInterval (7s) and Timeout (10s).
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if cfg.PollInterval == 0 {
		cfg.PollInterval = Duration(7 * time.Second)
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = Duration(10 * time.Second)
	}

	if err := cfg.expandAndValidate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// expandAndValidate expands environment variables and validates the config.
func (c *Config) expandAndValidate() error {
	if c.PollInterval.Duration() < minPollInterval {
		return fmt.Errorf("poll_interval must be at least %s, got %s", minPollInterval, c.PollInterval.Duration())
	}

	if c.Timeout.Duration() < 0 {
		return fmt.Errorf("timeout cannot be negative, got %s", c.Timeout.Duration())
	}

	if c.URL == "" {
		return fmt.Errorf("url is required")
	}
	expanded, err := expandEnvVars(c.URL)
	if err != nil {
		return fmt.Errorf("url: %w", err)
	}
	c.URL = expanded

	parsedURL, err := url.Parse(c.URL)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("url scheme must be http or https, got %q", parsedURL.Scheme)
	}

	for k, v := range c.Headers {
		expanded, err := expandEnvVars(v)
		if err != nil {
			return fmt.Errorf("headers[%s]: %w", k, err)
		}
		c.Headers[k] = expanded
	}

	return nil
}
