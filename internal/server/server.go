// Package server exposes a feed snapshot over HTTP, mirroring the status
// contract the dashboard consumes.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"botwatch"
)

// shutdownTimeout bounds graceful shutdown after context cancellation.
const shutdownTimeout = 5 * time.Second

// SnapshotSource produces the current status payload. *feed.Feed
// satisfies it; tests substitute fixtures.
type SnapshotSource interface {
	Snapshot() botwatch.Snapshot
}

// Server handles HTTP requests for the bot status contract.
//
// Server provides two endpoints:
//   - GET /: liveness text ("Bot is alive!")
//   - GET /api/status: the current snapshot as JSON
//
// The server is designed for graceful shutdown via context cancellation.
type Server struct {
	source     SnapshotSource
	port       int
	httpServer *http.Server
	logger     *slog.Logger
}

// NewServer creates an HTTP [Server] serving snapshots from source on the
// given TCP port. The server is not started until [Server.Start] is
// called.
func NewServer(source SnapshotSource, port int, logger *slog.Logger) *Server {
	return &Server{
		source: source,
		port:   port,
		logger: logger,
	}
}

// Start begins serving HTTP requests in a background goroutine.
//
// Start is non-blocking and returns immediately after confirming the
// server is listening. The server runs until the context is cancelled,
// then shuts down gracefully with a 5-second timeout.
//
// Returns an error if the server fails to bind to the configured port.
func (s *Server) Start(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/status", s.handleStatus)
	mux.HandleFunc("/", s.handleRoot)

	// create listener first to verify port availability synchronously
	addr := fmt.Sprintf(":%d", s.port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to bind to port %d: %w", s.port, err)
	}

	s.httpServer = &http.Server{
		Handler: mux,
		// BaseContext derives all request contexts from the server
		// context so cancellation reaches in-flight handlers
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
			s.logger.Error("http server error", "error", err)
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("http server shutdown error", "error", err)
		}
	}()

	return nil
}

// handleRoot answers liveness probes the way the bot does.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := w.Write([]byte("Bot is alive!")); err != nil {
		s.logger.Error("failed to write liveness response", "error", err)
	}
}

// handleStatus returns the current snapshot as JSON.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	snap := s.source.Snapshot()

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")

	if err := json.NewEncoder(w).Encode(snap); err != nil {
		s.logger.Error("failed to encode status response", "error", err)
	}
}
