// Package server provides the HTTP API for the tansu assistant.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/hyperjump/tansu/internal/config"
	"github.com/hyperjump/tansu/internal/interpreter"
	"github.com/hyperjump/tansu/internal/inventory"
)

// Server is the HTTP server for the tansu API.
type Server struct {
	interp    *interpreter.Interpreter
	inventory *inventory.Service
	knowledge *interpreter.KnowledgeIndex
	config    *config.Config
	logger    *zap.Logger
	server    *http.Server
}

// NewServer creates a server with the given dependencies.
func NewServer(
	interp *interpreter.Interpreter,
	inv *inventory.Service,
	knowledge *interpreter.KnowledgeIndex,
	cfg *config.Config,
	logger *zap.Logger,
) *Server {
	return &Server{
		interp:    interp,
		inventory: inv,
		knowledge: knowledge,
		config:    cfg,
		logger:    logger,
	}
}

// Routes builds the router. Exposed separately so tests can drive the
// handlers without a listening socket.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middleware.Compress(5))

	r.Post("/api/v1/chat", s.handleChat)
	r.Post("/api/v1/shirts", s.handleCreateShirt)
	r.Get("/api/v1/shirts", s.handleListShirts)
	r.Get("/api/v1/shirts/{id}", s.handleGetShirt)
	r.Put("/api/v1/shirts/{id}/status", s.handleUpdateStatus)
	r.Delete("/api/v1/shirts/{id}", s.handleDeleteShirt)
	r.Get("/api/v1/search", s.handleSearch)
	r.Get("/api/v1/statistics", s.handleStatistics)
	r.Post("/api/v1/knowledge/reload", s.handleKnowledgeReload)
	r.Get("/api/v1/status", s.handleStatus)
	r.Get("/health", s.handleHealth)
	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.Routes(),
	}
	s.logger.Info("Starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
