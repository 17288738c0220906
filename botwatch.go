package botwatch

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"runtime/debug"
	"time"

	"github.com/google/uuid"

	"botwatch/internal/poller"
)

const (
	// DefaultInterval is the period between poll cycles when none is
	// configured.
	DefaultInterval = 7 * time.Second

	// DefaultTimeout bounds each status request when none is configured.
	DefaultTimeout = 10 * time.Second
)

// Watcher is the main orchestrator for polling a bot's status endpoint
// and projecting snapshots onto a display surface.
//
// Watcher coordinates the poll loop, converts each cycle's outcome into a
// display [State], applies it to a [Latest] holder with newest-wins
// semantics, and fans applied states out to registered callbacks. It is
// created with [New] using functional options and started with
// [Watcher.Start].
//
// The typical lifecycle is:
//
//	w, err := botwatch.New(botwatch.WithURL(url))
//	if err != nil {
//	    slog.Error("failed to create watcher", "error", err)
//	    os.Exit(1)
//	}
//
//	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
//	defer cancel()
//
//	w.Start(ctx) // blocks until context cancelled
type Watcher struct {
	url       string
	headers   map[string]string
	interval  time.Duration
	timeout   time.Duration
	logger    *slog.Logger
	callbacks []func(State)
	latest    *Latest
}

// New creates a [Watcher] with the given options.
//
// [WithURL] is required and the URL must carry an http or https scheme.
// Other options have defaults: [DefaultInterval] between cycles,
// [DefaultTimeout] per request, [slog.Default] for logging.
func New(opts ...Option) (*Watcher, error) {
	cfg := &wConfig{
		interval: DefaultInterval,
		timeout:  DefaultTimeout,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if cfg.url == "" {
		return nil, fmt.Errorf("a status endpoint URL is required")
	}
	parsed, err := url.Parse(cfg.url)
	if err != nil {
		return nil, fmt.Errorf("invalid url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("url scheme must be http or https, got %q", parsed.Scheme)
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Watcher{
		url:       cfg.url,
		headers:   cfg.headers,
		interval:  cfg.interval,
		timeout:   cfg.timeout,
		logger:    logger,
		callbacks: cfg.callbacks,
		latest:    NewLatest(),
	}, nil
}

// URL returns the configured status endpoint URL.
func (w *Watcher) URL() string {
	return w.url
}

// Interval returns the configured period between poll cycles.
func (w *Watcher) Interval() time.Duration {
	return w.interval
}

// Timeout returns the configured per-request timeout.
func (w *Watcher) Timeout() time.Duration {
	return w.timeout
}

// Headers returns a copy of the custom headers sent with each request.
func (w *Watcher) Headers() map[string]string {
	if len(w.headers) == 0 {
		return nil
	}
	headers := make(map[string]string, len(w.headers))
	for k, v := range w.headers {
		headers[k] = v
	}
	return headers
}

// Latest returns the holder of the most recently applied display state.
//
// Display hosts subscribe to it for updates, or read it directly.
func (w *Watcher) Latest() *Latest {
	return w.latest
}

// Start begins polling and blocks until the context is cancelled.
//
// The first cycle fires immediately, then one per interval indefinitely.
// Every completed cycle, success or failure, produces a display state;
// failed cycles degrade the display rather than stopping the loop, and
// nothing is retried before the next scheduled tick. Returns nil on
// graceful shutdown.
func (w *Watcher) Start(ctx context.Context) error {
	w.logger.Info("watcher starting", "url", w.url, "interval", w.interval.String())

	if ctx.Err() != nil {
		return nil
	}

	runner := poller.NewRunner(w.url, w.headers, w.interval, w.timeout)
	runner.Start(ctx)

	for result := range runner.Results() {
		state := w.projectResult(result)

		if !w.latest.Apply(state) {
			w.logger.Debug("stale cycle discarded",
				"seq", result.Seq,
				"latency_ms", result.Latency.Milliseconds(),
			)
			continue
		}

		for _, cb := range w.callbacks {
			w.invokeCallbackSafe(cb, state)
		}

		// DEBUG level for success to reduce noise
		logAttrs := []any{
			"seq", result.Seq,
			"http_status", result.StatusCode,
			"latency_ms", result.Latency.Milliseconds(),
		}
		if state.Err != nil {
			w.logger.Warn("poll cycle failed", append(logAttrs, "error", state.Err.Error())...)
		} else {
			w.logger.Debug("poll cycle completed", logAttrs...)
		}
	}

	runner.Stop()
	w.logger.Info("watcher stopped")
	return nil
}

// projectResult converts one cycle result into a display state.
//
// A transport failure, non-2xx response, or undecodable body all collapse
// to the same degraded error state. The cycle's start time becomes the
// last-updated stamp either way.
func (w *Watcher) projectResult(result poller.CycleResult) State {
	if result.Err != nil {
		state := ProjectError(result.StartedAt, result.Err)
		state.Seq = result.Seq
		return state
	}

	snap, err := DecodeSnapshot(result.Body)
	if err != nil {
		state := ProjectError(result.StartedAt, err)
		state.Seq = result.Seq
		return state
	}

	state := Project(result.StartedAt, snap)
	state.Seq = result.Seq
	return state
}

// invokeCallbackSafe calls a state callback with panic recovery.
// Panics are logged with a correlation ID but do not propagate.
func (w *Watcher) invokeCallbackSafe(cb func(State), state State) {
	defer func() {
		if r := recover(); r != nil {
			correlationID := uuid.NewString()
			w.logger.Error("state callback panicked",
				"correlation_id", correlationID,
				"panic", fmt.Sprintf("%v", r),
				"stack", string(debug.Stack()),
			)
		}
	}()
	cb(state)
}
