package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/courtmetrics/gavel/internal/alerts"
	"github.com/courtmetrics/gavel/internal/domain"
	"github.com/courtmetrics/gavel/internal/metrics"
	"github.com/courtmetrics/gavel/internal/state"
)

// Server represents the HTTP API server.
type Server struct {
	router  *chi.Mux
	handler *Handler
	server  *http.Server
	config  domain.ServerConfig
}

// NewServer creates a new API server.
func NewServer(cfg domain.Config, store domain.Store, ws *state.Workspace, engine *alerts.Engine, m *metrics.Metrics, version string) *Server {
	handler := NewHandler(store, ws, engine, m, version, cfg.Auth.Password)
	router := chi.NewRouter()

	// Global middleware stack
	router.Use(CORSMiddleware)         // CORS for browser clients
	router.Use(RecoverMiddleware)      // Recover from panics
	router.Use(TracingMiddleware)      // OpenTelemetry tracing
	router.Use(LoggingMiddleware(m))   // Request logging + counters
	router.Use(middleware.RealIP)      // Extract real IP
	router.Use(middleware.Compress(5)) // Gzip compression

	// Health and observability endpoints (always open)
	router.Get("/health", handler.Health)
	router.Get("/ready", handler.Ready)
	router.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// Auth
	router.Post("/auth/login", handler.Login)

	// Read-only dashboard routes
	router.Get("/summary", handler.Summary)
	router.Get("/datasets/ledger", handler.GetLedger)
	router.Get("/datasets/cases", handler.GetCases)
	router.Get("/analytics/ledger", handler.LedgerAnalytics)
	router.Get("/analytics/cases", handler.CaseAnalytics)
	router.Get("/alerts", handler.Alerts)
	router.Get("/reports/ledger", handler.LedgerReport)
	router.Get("/milestones", handler.ListMilestones)

	// Mutating routes (dashboard key required when configured)
	router.Group(func(r chi.Router) {
		r.Use(DashboardKeyMiddleware(cfg.Auth.Key))

		r.Put("/datasets/ledger", handler.PutLedger)
		r.Put("/datasets/cases", handler.PutCases)
		r.Post("/datasets/ledger/rows", handler.AppendLedgerRow)
		// Wildcard because period labels carry a slash (jan/25)
		r.Put("/datasets/ledger/rows/*", handler.EditLedgerCell)

		r.Post("/ingest/ledger", handler.IngestLedger)
		r.Post("/ingest/cases", handler.IngestCases)

		r.Post("/milestones", handler.CreateMilestone)
		r.Delete("/milestones/{index}", handler.DeleteMilestone)
	})

	return &Server{
		router:  router,
		handler: handler,
		config:  cfg.Server,
	}
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  time.Duration(s.config.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.config.WriteTimeout) * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Router returns the Chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Handler returns the handler for testing.
func (s *Server) Handler() *Handler {
	return s.handler
}
