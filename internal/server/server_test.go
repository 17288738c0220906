package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"botwatch"
)

type fixtureSource struct {
	snap botwatch.Snapshot
}

func (f fixtureSource) Snapshot() botwatch.Snapshot { return f.snap }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testServer(snap botwatch.Snapshot) *Server {
	return NewServer(fixtureSource{snap: snap}, 0, testLogger())
}

func TestHandleStatus(t *testing.T) {
	ts := 1735689600.0
	s := testServer(botwatch.Snapshot{
		BotStatus:         "Running ✅",
		DiscordStatus:     "Connected",
		LastXAPIStatus:    "✅ Success",
		LastXAPITimestamp: &ts,
		PostsAttempted:    5,
		PostsSucceeded:    4,
		PostsFailed:       1,
		MonitoringChannel: "announcements",
	})

	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	rec := httptest.NewRecorder()
	s.handleStatus(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}

	var snap botwatch.Snapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if snap.BotStatus != "Running ✅" {
		t.Errorf("bot_status = %q", snap.BotStatus)
	}
	if snap.PostsAttempted != 5 || snap.PostsSucceeded != 4 || snap.PostsFailed != 1 {
		t.Errorf("counters = %d/%d/%d, want 5/4/1",
			snap.PostsAttempted, snap.PostsSucceeded, snap.PostsFailed)
	}
	if snap.LastXAPITimestamp == nil || *snap.LastXAPITimestamp != ts {
		t.Errorf("last_x_api_timestamp = %v, want %v", snap.LastXAPITimestamp, ts)
	}
}

func TestHandleStatus_MethodNotAllowed(t *testing.T) {
	s := testServer(botwatch.Snapshot{})

	for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodDelete} {
		t.Run(method, func(t *testing.T) {
			req := httptest.NewRequest(method, "/api/status", nil)
			rec := httptest.NewRecorder()
			s.handleStatus(rec, req)

			if rec.Code != http.StatusMethodNotAllowed {
				t.Errorf("status = %d, want 405", rec.Code)
			}
		})
	}
}

func TestHandleRoot(t *testing.T) {
	s := testServer(botwatch.Snapshot{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	s.handleRoot(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if rec.Body.String() != "Bot is alive!" {
		t.Errorf("body = %q, want Bot is alive!", rec.Body.String())
	}
}

func TestHandleRoot_NotFound(t *testing.T) {
	s := testServer(botwatch.Snapshot{})

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	rec := httptest.NewRecorder()
	s.handleRoot(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestStart_PortInUse(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer func() { _ = ln.Close() }()

	port := ln.Addr().(*net.TCPAddr).Port
	s := NewServer(fixtureSource{}, port, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := s.Start(ctx); err == nil {
		t.Error("Start() on an occupied port succeeded, want bind error")
	}
}
