// Package server exposes the run engine to a local client over a websocket
// session. One connection drives one run; actions are processed to completion
// in arrival order, so no engine action ever begins while another is in
// flight.
package server

import (
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/gafferdeck/gaffer-server-go/internal/game"
	"github.com/gafferdeck/gaffer-server-go/internal/store"
)

// Server handles websocket sessions for the run engine.
type Server struct {
	logger   *zap.Logger
	store    store.Store
	rules    game.Rules
	upgrader websocket.Upgrader
}

// New creates a Server backed by the given store.
func New(logger *zap.Logger, st store.Store, rules game.Rules) *Server {
	return &Server{
		logger: logger,
		store:  st,
		rules:  rules,
		upgrader: websocket.Upgrader{
			// Local single-player client; no cross-origin concerns.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Routes registers the server's HTTP handlers.
func (s *Server) Routes(mux *http.ServeMux) {
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
}

// handleWS upgrades the connection and runs the session loop.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	managerID := r.URL.Query().Get("manager")
	if managerID == "" {
		http.Error(w, "manager query parameter required", http.StatusBadRequest)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	sess := newSession(s, conn, managerID)
	s.logger.Info("session opened",
		zap.String("session_id", sess.id),
		zap.String("manager", managerID),
	)
	sess.run()
	s.logger.Info("session closed", zap.String("session_id", sess.id))
}
