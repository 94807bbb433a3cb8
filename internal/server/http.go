// Package server exposes the operator-facing HTTP surface of the daemon:
// Prometheus metrics and the admin debug endpoint.
//
// The data-plane wire protocol (the KV parser and its serve loop) is a
// separate collaborator and is intentionally not implemented here.
package server

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/krouter-io/krouter/internal/admin"
	"github.com/krouter-io/krouter/internal/logging"
	"github.com/krouter-io/krouter/internal/route"
)

// Config configures the HTTP server.
type Config struct {
	Addr    string
	Admin   *admin.Service
	Metrics http.Handler
	Logger  *logging.Logger
}

// Server serves /metrics and /admin on one listener.
type Server struct {
	mu        sync.RWMutex
	addr      string
	boundAddr string
	server    *http.Server

	admin   *admin.Service
	metrics http.Handler
	logger  *logging.Logger
}

// New creates the server. Start must be called before it accepts requests.
func New(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.DefaultLogger()
	}
	return &Server{
		addr:    cfg.Addr,
		admin:   cfg.Admin,
		metrics: cfg.Metrics,
		logger:  logger,
	}
}

// Handler returns the route table of the server; exposed for tests.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	if s.metrics != nil {
		mux.Handle("/metrics", s.metrics)
	}
	if s.admin != nil {
		mux.HandleFunc("/admin", s.handleAdmin)
	}
	return mux
}

// Start binds the listener and serves in the background.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         s.addr,
		Handler:      s.Handler(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.boundAddr = ln.Addr().String()
	s.mu.Unlock()

	go func() {
		if err := s.server.Serve(ln); err != nil && err != http.ErrServerClosed {
			s.logger.Errorf("admin http server stopped", map[string]any{
				"error": err.Error(),
			})
		}
	}()

	s.logger.Infof("admin http server listening", map[string]any{
		"addr": s.Addr(),
	})
	return nil
}

// Addr returns the actual bound address of the server, or the configured
// address before Start.
func (s *Server) Addr() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.boundAddr != "" {
		return s.boundAddr
	}
	return s.addr
}

// Close shuts the server down gracefully.
func (s *Server) Close() error {
	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// handleAdmin feeds one admin pseudo-key (?cmd=...) to the dispatcher and
// waits for its asynchronous reply. The reply channel is buffered so a
// departed client never blocks a background continuation.
func (s *Server) handleAdmin(w http.ResponseWriter, r *http.Request) {
	cmd := r.URL.Query().Get("cmd")
	if cmd == "" {
		http.Error(w, "missing cmd parameter", http.StatusBadRequest)
		return
	}
	req, err := route.NewRequest(cmd)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	replyCh := make(chan route.Reply, 1)
	s.admin.HandleRequest(req, func(rep route.Reply) {
		replyCh <- rep
	})

	select {
	case rep := <-replyCh:
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(rep.Value))
	case <-r.Context().Done():
		// Client went away; any scheduled walk still runs to completion.
	}
}
