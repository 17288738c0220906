// Package botwatch provides a client-side status dashboard for a
// message-relay bot: it polls the bot's JSON status endpoint on a fixed
// interval, classifies free-text status labels into display categories,
// and projects each snapshot onto a display surface.
//
// # Quick Start
//
// Create a watcher and run it with graceful shutdown:
//
//	w, _ := botwatch.New(botwatch.WithURL("http://localhost:8080/api/status"))
//
//	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
//	defer stop()
//
//	w.Start(ctx) // blocks until context is cancelled
//
// # Configuration
//
// Watchers use the functional options pattern:
//
//	w, err := botwatch.New(
//	    botwatch.WithURL("http://localhost:8080/api/status"),
//	    botwatch.WithInterval(7 * time.Second),
//	    botwatch.WithTimeout(5 * time.Second),
//	    botwatch.WithStateCallback(func(s botwatch.State) {
//	        fmt.Println(s.BotStatus.Text)
//	    }),
//	)
//
// # Poll cycle
//
// Each cycle fetches the endpoint, decodes the [Snapshot], and builds a
// fresh display [State] via [Project]. Transport errors, non-2xx
// responses, and parse failures all degrade to [ProjectError]'s explicit
// error state; no failure stops the loop or is retried before the next
// tick. Cycles may overlap (a tick never waits for the previous fetch),
// and overlap is resolved by sequence number in [Latest]: a result from
// an older cycle arriving after a newer one is discarded.
//
// # Classification
//
// [Classify] maps a free-text label to a [Category] using the explicit
// ordered [PriorityTable]: case-insensitive substring match, first rule
// wins, unmatched labels are [CategoryUnknown].
//
// # Architecture
//
//   - internal/poller: HTTP client and fixed-period cycle runner
//   - internal/feed: producer-side status feed (counters, activity log)
//   - internal/server: HTTP server exposing the feed as /api/status
//   - internal/tui: Bubble Tea terminal dashboard
//   - config: YAML configuration for the CLI
//
// The internal packages are not part of the public API and may change
// without notice.
package botwatch
