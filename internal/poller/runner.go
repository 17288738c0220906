package poller

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// CycleResult holds the outcome of one fetch cycle against the status
// endpoint.
//
// Seq increases monotonically in cycle-start order. Because cycles may
// overlap, results can arrive on the channel out of sequence order; the
// consumer discards a result whose Seq is older than the last one it
// applied.
type CycleResult struct {
	// Seq is the cycle's sequence number, assigned when the cycle starts.
	Seq uint64

	// StartedAt is the wall-clock time the cycle began. It is recorded
	// before the fetch and is valid regardless of the fetch outcome.
	StartedAt time.Time

	// Body is the raw response body on success, nil on failure.
	Body []byte

	// StatusCode is the HTTP status code, zero if no response arrived.
	StatusCode int

	// Latency is the time taken by the HTTP request.
	Latency time.Duration

	// Err is set on transport failure or a non-2xx response.
	Err error
}

// Runner drives the poll loop for a single status endpoint.
//
// On Start the runner fires one cycle immediately, then one per tick of a
// fixed-period ticker, indefinitely, until Stop is called or the context
// is cancelled. A tick never waits for the previous cycle: if a fetch
// outlasts the period, two cycles are in flight concurrently and both
// emit results. There is no retry or backoff; a failed cycle simply waits
// for the next scheduled tick.
//
// All lifecycle methods (Start, Stop) are safe for concurrent use.
type Runner struct {
	url      string
	headers  map[string]string
	interval time.Duration
	timeout  time.Duration
	client   *Client
	results  chan CycleResult

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	seq    atomic.Uint64

	mu        sync.Mutex
	started   bool
	stopped   bool
	closeOnce sync.Once
}

// NewRunner creates a poll [Runner] for the given endpoint.
//
// interval is the fixed period between cycle starts; timeout bounds each
// HTTP request. The runner must be started with [Runner.Start] and stopped
// with [Runner.Stop]. Results are available via [Runner.Results].
func NewRunner(url string, headers map[string]string, interval, timeout time.Duration) *Runner {
	return &Runner{
		url:      url,
		headers:  headers,
		interval: interval,
		timeout:  timeout,
		client:   NewClient(),
		results:  make(chan CycleResult, 8),
	}
}

// Results returns a receive-only channel emitting one [CycleResult] per
// completed cycle.
//
// The channel is closed once the runner has stopped and every in-flight
// cycle has finished.
func (r *Runner) Results() <-chan CycleResult {
	return r.results
}

// Start begins the poll loop in a background goroutine.
//
// Start is non-blocking. The first cycle fires immediately; subsequent
// cycles fire every interval. If ctx is nil, context.Background() is used.
// Start is idempotent; calls after the first (or after Stop) are no-ops.
func (r *Runner) Start(ctx context.Context) {
	r.mu.Lock()
	if r.started || r.stopped {
		r.mu.Unlock()
		return
	}
	r.started = true

	if ctx == nil {
		ctx = context.Background()
	}
	r.ctx, r.cancel = context.WithCancel(ctx)
	pollCtx := r.ctx // capture under lock to avoid race
	r.wg.Add(1)
	r.mu.Unlock()

	go func() {
		defer r.wg.Done()

		// cycle goroutines are added to the WaitGroup from here, while
		// the loop's own count is still held, so the closer below cannot
		// observe zero early
		r.launchCycle(pollCtx)

		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()

		for {
			select {
			case <-pollCtx.Done():
				return
			case <-ticker.C:
				r.launchCycle(pollCtx)
			}
		}
	}()

	go func() {
		r.wg.Wait()
		r.closeOnce.Do(func() { close(r.results) })
	}()
}

// Stop halts the runner and waits for in-flight cycles to complete.
//
// Stop cancels the poll loop, blocks until every cycle goroutine has
// finished, closes the client's idle connections, and ensures the results
// channel is closed. Idempotent; calling Stop before Start is a safe no-op.
func (r *Runner) Stop() {
	r.mu.Lock()
	if !r.stopped {
		r.stopped = true
		if r.cancel != nil {
			r.cancel()
		}
	}
	r.mu.Unlock()

	r.wg.Wait()

	if r.client != nil {
		r.client.Close()
	}

	// ensure channel is closed even if Start() was never called
	r.closeOnce.Do(func() { close(r.results) })
}

// launchCycle runs one fetch cycle in its own goroutine so a slow fetch
// never delays the next tick.
func (r *Runner) launchCycle(ctx context.Context) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		result := r.runCycle(ctx)
		select {
		case r.results <- result:
		case <-ctx.Done():
		}
	}()
}

// runCycle performs a single fetch and packages the outcome.
func (r *Runner) runCycle(ctx context.Context) CycleResult {
	started := time.Now()
	seq := r.seq.Add(1)

	resp := r.client.Fetch(ctx, r.url, r.headers, r.timeout)

	return CycleResult{
		Seq:        seq,
		StartedAt:  started,
		Body:       resp.Body,
		StatusCode: resp.StatusCode,
		Latency:    resp.Latency,
		Err:        resp.Err,
	}
}
