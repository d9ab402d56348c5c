// Package web serves a read-only spectator feed of live sessions.
//
//	GET /sessions      JSON list of live sessions
//	GET /watch?id=ID   websocket stream of JSON snapshots for one session
package web

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/net/websocket"

	"github.com/vovakirdan/closing-walls/internal/registry"
)

// Server is the spectator HTTP server.
type Server struct {
	reg    *registry.Registry
	logger *log.Logger
	srv    *http.Server
}

// NewServer creates a spectator server listening on addr.
func NewServer(addr string, reg *registry.Registry, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Server{reg: reg, logger: logger}
	s.srv = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/sessions", s.HandleSessions())
	mux.HandleFunc("/watch", s.HandleWatch())
	return mux
}

// HandleSessions lists live sessions as JSON.
func (s *Server) HandleSessions() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(s.reg.List()); err != nil {
			s.logger.Warn("cannot write session list", "err", err)
		}
	}
}

// HandleWatch upgrades to a websocket and streams one session's snapshots
// until the session ends or the client goes away.
func (s *Server) HandleWatch() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Query().Get("id")
		entry, err := s.reg.Get(id)
		if err != nil {
			http.Error(w, "unknown session", http.StatusNotFound)
			return
		}
		websocket.Handler(func(ws *websocket.Conn) {
			s.stream(ws, entry)
		}).ServeHTTP(w, r)
	}
}

func (s *Server) stream(ws *websocket.Conn, entry *registry.Entry) {
	remote := ws.Request().RemoteAddr
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("spectator stream panicked", "remote", remote, "panic", r, "stack", string(debug.Stack()))
		}
		_ = ws.Close()
	}()

	snaps, cancel := entry.Subscribe()
	defer cancel()
	s.logger.Info("spectator joined", "session", entry.ID(), "remote", remote)

	// Spectators never send anything meaningful; a read error means they left.
	go func() {
		var discard string
		for {
			if err := websocket.Message.Receive(ws, &discard); err != nil {
				cancel()
				return
			}
		}
	}()

	if err := websocket.JSON.Send(ws, entry.Latest()); err != nil {
		return
	}
	for snap := range snaps {
		if err := websocket.JSON.Send(ws, snap); err != nil {
			s.logger.Debug("spectator send failed", "remote", remote, "err", err)
			return
		}
	}
	s.logger.Info("spectator left", "session", entry.ID(), "remote", remote)
}

// ListenAndServe serves until Shutdown is called.
func (s *Server) ListenAndServe() error {
	s.logger.Info("starting spectator server", "address", s.srv.Addr)
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and waits for handlers to finish.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.srv.Addr
}
