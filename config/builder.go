package config

import "botwatch"

// BuildOptions converts a parsed [Config] into watcher options.
//
// The returned slice can be passed directly to botwatch.New, optionally
// appended with further options (a logger, callbacks) by the caller.
func BuildOptions(cfg *Config) []botwatch.Option {
	opts := []botwatch.Option{
		botwatch.WithURL(cfg.URL),
		botwatch.WithInterval(cfg.PollInterval.Duration()),
		botwatch.WithTimeout(cfg.Timeout.Duration()),
	}
	if len(cfg.Headers) > 0 {
		opts = append(opts, botwatch.WithHeaders(cfg.Headers))
	}
	return opts
}
