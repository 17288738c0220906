package poller

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func statusServer(t *testing.T, hits *atomic.Int64) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			hits.Add(1)
		}
		_, _ = w.Write([]byte(`{"bot_status":"Running ✅"}`))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestRunner_FirstCycleImmediate(t *testing.T) {
	server := statusServer(t, nil)

	r := NewRunner(server.URL, nil, time.Hour, 5*time.Second)
	r.Start(context.Background())
	defer r.Stop()

	select {
	case result := <-r.Results():
		if result.Err != nil {
			t.Errorf("first cycle Err = %v", result.Err)
		}
		if result.Seq != 1 {
			t.Errorf("first cycle Seq = %d, want 1", result.Seq)
		}
		if result.StartedAt.IsZero() {
			t.Error("StartedAt not recorded")
		}
		if string(result.Body) != `{"bot_status":"Running ✅"}` {
			t.Errorf("Body = %q", result.Body)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no result despite an hour-long interval; first cycle should fire immediately")
	}
}

func TestRunner_PeriodicCycles(t *testing.T) {
	var hits atomic.Int64
	server := statusServer(t, &hits)

	r := NewRunner(server.URL, nil, 20*time.Millisecond, 5*time.Second)
	r.Start(context.Background())
	defer r.Stop()

	var lastSeq uint64
	for i := 0; i < 3; i++ {
		select {
		case result := <-r.Results():
			if result.Seq <= 0 {
				t.Errorf("result %d Seq = %d", i, result.Seq)
			}
			if result.Seq > lastSeq {
				lastSeq = result.Seq
			}
		case <-time.After(5 * time.Second):
			t.Fatalf("timed out waiting for cycle %d", i)
		}
	}

	if hits.Load() < 3 {
		t.Errorf("endpoint hit %d times, want at least 3", hits.Load())
	}
}

func TestRunner_FailuresKeepPolling(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer server.Close()

	r := NewRunner(server.URL, nil, 20*time.Millisecond, 5*time.Second)
	r.Start(context.Background())
	defer r.Stop()

	// two failed cycles in a row: no retry, no giving up
	for i := 0; i < 2; i++ {
		select {
		case result := <-r.Results():
			if result.Err == nil {
				t.Errorf("cycle %d succeeded against a 502 endpoint", i)
			}
			if result.StatusCode != http.StatusBadGateway {
				t.Errorf("cycle %d StatusCode = %d, want 502", i, result.StatusCode)
			}
		case <-time.After(5 * time.Second):
			t.Fatalf("timed out waiting for failed cycle %d", i)
		}
	}
}

func TestRunner_StopClosesResults(t *testing.T) {
	server := statusServer(t, nil)

	r := NewRunner(server.URL, nil, time.Hour, 5*time.Second)
	r.Start(context.Background())

	<-r.Results() // first cycle
	r.Stop()

	select {
	case _, ok := <-r.Results():
		if ok {
			// a buffered straggler is fine; the channel must close next
			if _, ok := <-r.Results(); ok {
				t.Error("results channel still open after Stop")
			}
		}
	case <-time.After(5 * time.Second):
		t.Fatal("results channel not closed after Stop")
	}
}

func TestRunner_StopBeforeStart(t *testing.T) {
	r := NewRunner("http://localhost:1/status", nil, time.Hour, time.Second)
	r.Stop()

	if _, ok := <-r.Results(); ok {
		t.Error("results channel open after Stop without Start")
	}

	// Start after Stop is a no-op
	r.Start(context.Background())
	r.Stop()
}

func TestRunner_StopTwice(t *testing.T) {
	server := statusServer(t, nil)

	r := NewRunner(server.URL, nil, time.Hour, 5*time.Second)
	r.Start(context.Background())
	<-r.Results()

	r.Stop()
	r.Stop()
}

func TestRunner_ContextCancelStopsLoop(t *testing.T) {
	server := statusServer(t, nil)

	ctx, cancel := context.WithCancel(context.Background())
	r := NewRunner(server.URL, nil, time.Hour, 5*time.Second)
	r.Start(ctx)

	<-r.Results()
	cancel()

	deadline := time.After(5 * time.Second)
	for {
		select {
		case _, ok := <-r.Results():
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("results channel not closed after context cancel")
		}
	}
}

// TestRunner_OverlappingCycles verifies a slow fetch does not delay the
// next tick: with a response slower than the interval, multiple cycles
// run concurrently and all emit results.
func TestRunner_OverlappingCycles(t *testing.T) {
	var inFlight, maxInFlight atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := inFlight.Add(1)
		defer inFlight.Add(-1)
		for {
			m := maxInFlight.Load()
			if n <= m || maxInFlight.CompareAndSwap(m, n) {
				break
			}
		}
		time.Sleep(100 * time.Millisecond)
		_, _ = w.Write([]byte("{}"))
	}))
	defer server.Close()

	r := NewRunner(server.URL, nil, 20*time.Millisecond, 5*time.Second)
	r.Start(context.Background())

	received := 0
	deadline := time.After(5 * time.Second)
	for received < 4 {
		select {
		case <-r.Results():
			received++
		case <-deadline:
			t.Fatalf("only %d results before deadline", received)
		}
	}
	r.Stop()

	if maxInFlight.Load() < 2 {
		t.Errorf("max concurrent fetches = %d, want at least 2 (ticks must not wait)", maxInFlight.Load())
	}
}
