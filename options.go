package botwatch

import (
	"errors"
	"log/slog"
	"time"
)

// wConfig holds mutable state during Watcher construction.
type wConfig struct {
	url       string
	headers   map[string]string
	interval  time.Duration
	timeout   time.Duration
	logger    *slog.Logger
	callbacks []func(State)
}

// Option is a function that configures a [Watcher] instance during
// construction.
//
// Option implements the functional options pattern, allowing optional
// configuration to be passed to [New] in a type-safe, extensible way.
// Options return an error if validation fails.
//
// Built-in options: [WithURL], [WithHeaders], [WithInterval],
// [WithTimeout], [WithLogger], [WithStateCallback].
type Option func(*wConfig) error

// WithURL sets the status endpoint URL to poll. Required.
//
// Example:
//
//	w, err := botwatch.New(botwatch.WithURL("http://localhost:8080/api/status"))
func WithURL(url string) Option {
	return func(cfg *wConfig) error {
		if url == "" {
			return errors.New("url cannot be empty")
		}
		cfg.url = url
		return nil
	}
}

// WithHeaders sets custom HTTP headers sent with every poll request.
//
// Useful for endpoints behind a proxy or requiring an auth token. The map
// is copied; later mutation by the caller has no effect.
func WithHeaders(headers map[string]string) Option {
	return func(cfg *wConfig) error {
		if len(headers) == 0 {
			return nil
		}
		cfg.headers = make(map[string]string, len(headers))
		for k, v := range headers {
			cfg.headers[k] = v
		}
		return nil
	}
}

// WithInterval sets the fixed period between poll cycles.
//
// Defaults to 7 seconds. A tick never waits for the previous cycle, so an
// interval shorter than the endpoint's response time produces overlapping
// cycles (resolved by sequence order, newest wins).
//
// Returns an error if the duration is zero or negative.
func WithInterval(d time.Duration) Option {
	return func(cfg *wConfig) error {
		if d <= 0 {
			return errors.New("poll interval must be positive")
		}
		cfg.interval = d
		return nil
	}
}

// WithTimeout sets the per-request HTTP timeout. Defaults to 10 seconds.
//
// Returns an error if the duration is zero or negative.
func WithTimeout(d time.Duration) Option {
	return func(cfg *wConfig) error {
		if d <= 0 {
			return errors.New("timeout must be positive")
		}
		cfg.timeout = d
		return nil
	}
}

// WithLogger sets a custom [slog.Logger] for the Watcher.
//
// If not specified, [slog.Default] is used.
//
// Returns an error if the logger is nil.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *wConfig) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		cfg.logger = logger
		return nil
	}
}

// WithStateCallback registers a function invoked with every applied
// display [State].
//
// Callbacks fire after the state has been applied to the watcher's
// [Latest] holder, in registration order, from a single goroutine.
// Discarded stale states do not trigger callbacks.
//
// Callbacks must be non-blocking; long-running work should be dispatched
// to a separate goroutine. Panics within callbacks are recovered and
// logged with a correlation ID; they do not crash the poll loop.
//
// Nil callbacks are silently ignored.
func WithStateCallback(cb func(State)) Option {
	return func(cfg *wConfig) error {
		if cb == nil {
			return nil // no-op for nil callback (safe to call)
		}
		cfg.callbacks = append(cfg.callbacks, cb)
		return nil
	}
}
