// Package rpc serves the explorer view models as JSON over HTTP.
package rpc

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

var Logger zerolog.Logger

func init() {
	out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	Logger = zerolog.New(out).With().Timestamp().Str("component", "rpc").Logger()
}

// SetLogger allows setting a custom logger
func SetLogger(l zerolog.Logger) {
	Logger = l
}

// ServerConfig holds configuration for the HTTP server
type ServerConfig struct {
	Address               string
	AllowedOrigins        []string
	EnableMetrics         bool
	RatePerMinute         *int
	MaxConcurrentRequests *int
	RequestTimeout        time.Duration
	OTelConfig            *OTelConfig
}

// DefaultServerConfig returns a default server configuration
func DefaultServerConfig() *ServerConfig {
	rateLimit := 0
	maxConcurrentRequests := 200
	return &ServerConfig{
		Address:               "localhost:8080",
		AllowedOrigins:        []string{"http://localhost:3000", "http://localhost:8080"},
		EnableMetrics:         true,
		RatePerMinute:         &rateLimit,
		MaxConcurrentRequests: &maxConcurrentRequests,
		RequestTimeout:        60 * time.Second,
		OTelConfig:            DefaultOTelConfig(),
	}
}

// Server wraps the HTTP server and provides lifecycle management
type Server struct {
	config       *ServerConfig
	httpServer   *http.Server
	mux          *chi.Mux
	otelShutdown func(context.Context) error
}

// NewServer wires the explorer routes. Telemetry setup failures are logged and the
// server runs without it.
func NewServer(ctx context.Context, config *ServerConfig, explorer Explorer, dashboard DashboardSource) (*Server, error) {
	if config == nil {
		config = DefaultServerConfig()
	}

	var otelShutdown func(context.Context) error
	if config.OTelConfig.enabled() {
		shutdown, err := NewOTelSDK(ctx, config.OTelConfig)
		if err != nil {
			Logger.Error().Err(err).Msg("Failed to initialize OpenTelemetry")
		} else {
			otelShutdown = shutdown
		}
	}

	mux := newRouter(config, &handlers{explorer: explorer, dashboard: dashboard})

	httpServer := &http.Server{
		Addr:              config.Address,
		Handler:           h2c.NewHandler(newCORSHandler(config.AllowedOrigins, mux), &http2.Server{}),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      config.RequestTimeout + 10*time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return &Server{
		config:       config,
		httpServer:   httpServer,
		mux:          mux,
		otelShutdown: otelShutdown,
	}, nil
}

func newRouter(config *ServerConfig, h *handlers) *chi.Mux {
	mux := chi.NewMux()
	mux.Use(zerologMiddleware)
	mux.Use(zerologRecoverer)
	mux.Use(middleware.RequestID)
	mux.Use(realIPMiddleware)
	mux.Use(middleware.Compress(5))
	if config.RequestTimeout > 0 {
		mux.Use(middleware.Timeout(config.RequestTimeout))
	}
	if config.RatePerMinute != nil && *config.RatePerMinute > 0 {
		mux.Use(httprate.LimitByIP(*config.RatePerMinute, time.Minute))
	}
	if config.MaxConcurrentRequests != nil && *config.MaxConcurrentRequests > 0 {
		mux.Use(middleware.Throttle(*config.MaxConcurrentRequests))
	}

	if config.metricsEnabled() {
		mux.Handle("/server/metrics", promhttp.Handler())
	}
	mux.Get("/server/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "healthy", "service": "spectra-explorer"})
	})
	mux.Get("/server/ready", h.ready)

	mux.Route("/api", func(r chi.Router) {
		r.Use(noCache)
		r.Get("/dashboard", h.dashboardView)
		r.Get("/blocks/{height}", h.blockView)
		r.Get("/txs/{hash}", h.transactionView)
		r.Get("/address/{address}", h.addressView)
		r.Get("/search", h.search)
	})
	return mux
}

func (c *ServerConfig) metricsEnabled() bool {
	return c.EnableMetrics || (c.OTelConfig != nil && c.OTelConfig.UsePrometheus)
}

// Handler returns the routed handler without CORS and h2c wrapping
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start begins serving requests without TLS
func (s *Server) Start() error {
	s.logServerInfo("http")
	return s.httpServer.ListenAndServe()
}

// StartTLS begins serving requests with TLS
func (s *Server) StartTLS(certFile, keyFile string) error {
	s.logServerInfo("https")
	return s.httpServer.ListenAndServeTLS(certFile, keyFile)
}

func (s *Server) logServerInfo(protocol string) {
	Logger.Info().
		Str("address", s.config.Address).
		Str("protocol", protocol).
		Msg("Spectra Explorer server starting")

	Logger.Info().Msg("Available endpoints:")
	Logger.Info().Msg("\tAPI: /api/dashboard, /api/blocks/{height}, /api/txs/{hash}, /api/address/{address}, /api/search?q=")
	Logger.Info().Msg("\tHealth: /server/health")
	Logger.Info().Msg("\tReady: /server/ready")
	if s.config.metricsEnabled() {
		Logger.Info().Msg("\tMetrics: /server/metrics")
	}
}

// Shutdown stops accepting requests, then flushes telemetry
func (s *Server) Shutdown(ctx context.Context) error {
	Logger.Info().Msg("Shutting down server...")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		Logger.Error().Err(err).Msg("Error shutting down HTTP server")
	}

	if s.otelShutdown != nil {
		if err := s.otelShutdown(ctx); err != nil {
			Logger.Error().Err(err).Msg("Error shutting down OpenTelemetry")
			return err
		}
	}

	Logger.Info().Msg("Server shutdown complete")
	return nil
}
