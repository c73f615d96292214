// Package server exposes the matcher and the newsroom tagger over a small
// JSON HTTP API.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/crimson-sun/practicematch/internal/engine"
	"github.com/crimson-sun/practicematch/internal/engine/tagger"
)

const (
	maxBodyBytes    = 1 << 20
	shutdownTimeout = 10 * time.Second
)

// Server serves the HTTP API against a shared, immutable engine.
type Server struct {
	engine     *engine.Engine
	tagger     *tagger.Tagger
	router     *mux.Router
	httpServer *http.Server
}

// New creates a Server listening on addr once Run is called.
func New(eng *engine.Engine, tg *tagger.Tagger, addr string) *Server {
	s := &Server{engine: eng, tagger: tg}
	s.setupRoutes()
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

func (s *Server) setupRoutes() {
	s.router = mux.NewRouter()

	s.router.HandleFunc("/api/match", s.handleMatch).Methods(http.MethodPost)
	s.router.HandleFunc("/api/areas", s.handleAreas).Methods(http.MethodGet)
	s.router.HandleFunc("/api/areas/{id}", s.handleArea).Methods(http.MethodGet)
	s.router.HandleFunc("/api/posts/tags", s.handleTags).Methods(http.MethodPost)
	s.router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)

	// Router middleware does not run for the fallback handlers.
	s.router.NotFoundHandler = requestLogging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	}))
	s.router.MethodNotAllowedHandler = requestLogging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}))

	// Logging is outermost so recovered panics are still logged as 500s.
	s.router.Use(requestLogging)
	s.router.Use(recoverer)
}

// Handler returns the routed handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("server: listen %s: %w", s.httpServer.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		slog.Info("http api listening", "addr", ln.Addr().String(), "areas", s.engine.Catalog().Len())
		errCh <- s.httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}

	slog.Info("http api shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	return nil
}
