// Package server provides the HTTP API for Karar.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/karar-labs/karar/internal/audit"
	"github.com/karar-labs/karar/internal/config"
	"github.com/karar-labs/karar/internal/pipeline"
	"go.uber.org/zap"
)

// Server is the HTTP server for the Karar API.
type Server struct {
	analyzer  *pipeline.Analyzer
	log       *audit.Log
	index     *audit.ReportIndex
	uploadDir string
	config    *config.ServerConfig
	logger    *zap.Logger
	server    *http.Server
}

// NewServer creates a server with the given dependencies. index may be nil,
// in which case history search responds 501.
func NewServer(
	analyzer *pipeline.Analyzer,
	log *audit.Log,
	index *audit.ReportIndex,
	uploadDir string,
	cfg *config.ServerConfig,
	logger *zap.Logger,
) *Server {
	return &Server{
		analyzer:  analyzer,
		log:       log,
		index:     index,
		uploadDir: uploadDir,
		config:    cfg,
		logger:    logger,
	}
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.router(),
	}
	s.logger.Info("Starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

func (s *Server) router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	// Clause analysis is up to 16 sequential reasoning round trips, so the
	// request timeout is generous.
	r.Use(middleware.Timeout(5 * time.Minute))

	r.Post("/api/v1/analyze", s.handleAnalyze)
	r.Get("/api/v1/audit-logs", s.handleAuditLogs)
	r.Get("/api/v1/audit-logs/search", s.handleAuditSearch)
	r.Get("/health", s.handleHealth)
	return r
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
