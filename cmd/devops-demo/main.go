package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aescanero/devops-demo-app/internal/config"
	"github.com/aescanero/devops-demo-app/pkg/adapters/metrics/prometheus"
	"github.com/aescanero/devops-demo-app/pkg/api/grpc"
	"github.com/aescanero/devops-demo-app/pkg/api/http"
	"github.com/aescanero/devops-demo-app/pkg/domain"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Version is set by build flags
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// Load configuration
	cfg, err := config.Load(".env")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := initLogger(cfg.LogLevel)
	defer logger.Sync()

	logger.Info("starting devops demo app",
		zap.String("version", Version),
		zap.String("app_version", domain.Version),
		zap.String("build_time", BuildTime))

	var metricsCollector *prometheus.Collector
	if cfg.Metrics.Enabled {
		metricsCollector = prometheus.NewCollector()
		metricsCollector.RecordBuildInfo(Version, BuildTime)
	}

	httpServer := http.NewServer(&http.Config{
		Addr:               cfg.GetHTTPAddr(),
		Logger:             logger,
		Metrics:            metricsCollector,
		MetricsPath:        cfg.Metrics.Path,
		CORSAllowedOrigins: cfg.CORS.AllowedOrigins,
		CORSMaxAge:         cfg.CORS.MaxAge,
		ReadHeaderTimeout:  cfg.Timeouts.ReadHeaderTimeout,
		ReadTimeout:        cfg.Timeouts.ReadTimeout,
		WriteTimeout:       cfg.Timeouts.WriteTimeout,
		IdleTimeout:        cfg.Timeouts.IdleTimeout,
	})

	var grpcServer *grpc.Server
	if cfg.GRPCEnabled() {
		grpcServer, err = grpc.NewServer(&grpc.Config{
			Addr:        cfg.GetGRPCAddr(),
			ServiceName: domain.ServiceName,
			Metrics:     metricsCollector,
			Logger:      logger,
		})
		if err != nil {
			logger.Fatal("failed to create gRPC server", zap.Error(err))
		}
	}

	// Start servers
	go func() {
		if err := httpServer.Start(); err != nil {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	if grpcServer != nil {
		go func() {
			if err := grpcServer.Start(); err != nil {
				logger.Fatal("gRPC server failed", zap.Error(err))
			}
		}()
	}

	logger.Info("devops demo app started",
		zap.String("http_addr", cfg.GetHTTPAddr()),
		zap.Int("grpc_port", cfg.GRPCPort),
		zap.Bool("metrics_enabled", cfg.Metrics.Enabled))

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	logger.Info("received shutdown signal")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Timeouts.ShutdownTimeout)
	defer cancel()

	if grpcServer != nil {
		if err := grpcServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("gRPC server shutdown error", zap.Error(err))
		}
	}

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", zap.Error(err))
	}

	logger.Info("devops demo app shut down complete")
}

// initLogger initializes the logger based on log level
func initLogger(level string) *zap.Logger {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zapLevel)
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := config.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}

	return logger
}
