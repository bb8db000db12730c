package gateway

import (
	"log/slog"
	"net/http"

	"github.com/syntrixbase/docgate/internal/gateway/config"
	"github.com/syntrixbase/docgate/internal/gateway/rest"
	"github.com/syntrixbase/docgate/internal/metrics"
)

// Server is a route registrar for the API layer.
// It registers the document routes and, when enabled, the metrics endpoint.
type Server struct {
	rest    *rest.Handler
	metrics http.Handler
	cfg     config.GatewayConfig
}

// ServerOption is a function that configures a Server.
type ServerOption func(*serverConfig)

type serverConfig struct {
	logger         *slog.Logger
	metricsHandler http.Handler
}

// WithLogger configures the logger handed to the REST handlers.
func WithLogger(logger *slog.Logger) ServerOption {
	return func(c *serverConfig) {
		c.logger = logger
	}
}

// WithMetricsHandler replaces the Prometheus exposition handler.
func WithMetricsHandler(h http.Handler) ServerOption {
	return func(c *serverConfig) {
		c.metricsHandler = h
	}
}

// NewServer creates a new API Server (route registrar) around the shared
// store handle.
func NewServer(store rest.DocumentStore, cfg config.GatewayConfig, opts ...ServerOption) *Server {
	sc := &serverConfig{
		logger:         slog.Default(),
		metricsHandler: metrics.Handler(),
	}
	for _, opt := range opts {
		opt(sc)
	}

	return &Server{
		rest: rest.NewHandler(store,
			rest.WithLogger(sc.logger),
			rest.WithMaxBodySize(cfg.MaxBodySize),
		),
		metrics: sc.metricsHandler,
		cfg:     cfg,
	}
}

// RegisterRoutes registers all API routes to the given ServeMux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	s.rest.RegisterRoutes(mux)

	if s.cfg.Metrics.Enabled {
		mux.Handle("GET "+s.cfg.Metrics.Path, s.metrics)
	}
}
