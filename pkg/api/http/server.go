package http

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/aescanero/devops-demo-app/pkg/adapters/metrics/prometheus"
	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// Server represents the HTTP API server
type Server struct {
	router  *gin.Engine
	handler http.Handler
	server  *http.Server
	metrics *prometheus.Collector
	logger  *zap.Logger
}

// Config holds HTTP server configuration
type Config struct {
	Addr   string
	Logger *zap.Logger

	// Metrics is optional; when nil no metrics are recorded or exposed
	Metrics     *prometheus.Collector
	MetricsPath string

	CORSAllowedOrigins []string
	CORSMaxAge         int

	ReadHeaderTimeout time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
}

// NewServer creates a new HTTP server
func NewServer(cfg *Config) *Server {
	gin.SetMode(gin.ReleaseMode)

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(gin.Recovery())
	router.Use(requestID())
	if cfg.Metrics != nil {
		router.Use(metricsMiddleware(cfg.Metrics))
	}
	router.Use(requestLogger(logger))

	s := &Server{
		router:  router,
		metrics: cfg.Metrics,
		logger:  logger,
	}

	s.setupRoutes(cfg.MetricsPath)

	s.handler = corsHandler(cfg.CORSAllowedOrigins, cfg.CORSMaxAge)(router)

	s.server = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}

	return s
}

// setupRoutes configures API routes
func (s *Server) setupRoutes(metricsPath string) {
	s.get("/", s.handleHome)
	s.get("/health", s.handleHealth)

	s.get("/api/info", s.handleInfo)

	if s.metrics != nil && metricsPath != "" {
		// a wildcard would swallow unmatched paths
		if strings.ContainsAny(metricsPath, ":*") {
			s.logger.Warn("metrics endpoint disabled, path must be literal",
				zap.String("path", metricsPath))
		} else {
			s.get(metricsPath, gin.WrapH(s.metrics.Handler()))
		}
	}

	s.router.NoRoute(s.handleNotFound)
	s.router.NoMethod(s.handleMethodNotAllowed)
}

// get registers a handler for GET and HEAD, plus the OPTIONS reply
func (s *Server) get(path string, handler gin.HandlerFunc) {
	s.router.GET(path, handler)
	s.router.HEAD(path, handler)
	s.router.OPTIONS(path, s.handleOptions)
}

// Handler returns the fully wrapped HTTP handler
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Addr returns the configured listen address
func (s *Server) Addr() string {
	return s.server.Addr
}

// Start listens on the configured address and serves until Shutdown
func (s *Server) Start() error {
	listener, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}

	return s.Serve(listener)
}

// Serve serves on an existing listener until Shutdown
func (s *Server) Serve(listener net.Listener) error {
	s.logger.Info("starting HTTP server", zap.String("addr", listener.Addr().String()))

	if err := s.server.Serve(listener); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}

	s.logger.Info("HTTP server shut down complete")
	return nil
}

// corsHandler wraps the router with CORS handling
func corsHandler(allowedOrigins []string, maxAge int) func(http.Handler) http.Handler {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	return cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{requestIDHeader},
		MaxAge:         maxAge,
	})
}
