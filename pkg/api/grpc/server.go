package grpc

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/aescanero/devops-demo-app/pkg/adapters/metrics/prometheus"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
)

// Server represents the gRPC health server
type Server struct {
	server   *grpc.Server
	health   *health.Server
	listener net.Listener
	services []string
	logger   *zap.Logger
}

// Config holds gRPC server configuration
type Config struct {
	Addr string

	// Listener overrides Addr when set
	Listener net.Listener

	// ServiceName is reported alongside the overall ("") status
	ServiceName string

	Metrics *prometheus.Collector
	Logger  *zap.Logger
}

// NewServer creates a new gRPC server with the standard health service
// registered and reporting SERVING.
func NewServer(cfg *Config) (*Server, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	listener := cfg.Listener
	if listener == nil {
		var err error
		listener, err = net.Listen("tcp", cfg.Addr)
		if err != nil {
			return nil, fmt.Errorf("failed to create listener: %w", err)
		}
	}

	grpcServer := grpc.NewServer(
		grpc.ChainUnaryInterceptor(unaryInterceptor(logger, cfg.Metrics)),
	)

	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)

	s := &Server{
		server:   grpcServer,
		health:   healthServer,
		listener: listener,
		services: []string{""},
		logger:   logger,
	}
	if cfg.ServiceName != "" {
		s.services = append(s.services, cfg.ServiceName)
	}

	for _, svc := range s.services {
		healthServer.SetServingStatus(svc, healthpb.HealthCheckResponse_SERVING)
	}

	return s, nil
}

// Addr returns the listener address
func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}

// Start starts the gRPC server
func (s *Server) Start() error {
	s.logger.Info("starting gRPC server", zap.String("addr", s.listener.Addr().String()))

	if err := s.server.Serve(s.listener); err != nil && err != grpc.ErrServerStopped {
		return fmt.Errorf("failed to serve gRPC: %w", err)
	}

	return nil
}

// Shutdown marks every service NOT_SERVING and stops the server, forcing
// the stop if ctx expires before in-flight calls finish.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down gRPC server")

	s.health.Shutdown()

	done := make(chan struct{})
	go func() {
		s.server.GracefulStop()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		s.server.Stop()
		<-done
		s.logger.Warn("gRPC server forced to stop", zap.Error(ctx.Err()))
	}

	s.logger.Info("gRPC server shut down complete")
	return nil
}

// unaryInterceptor logs and counts unary calls
func unaryInterceptor(logger *zap.Logger, metrics *prometheus.Collector) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		start := time.Now()

		resp, err := handler(ctx, req)

		code := status.Code(err)
		if metrics != nil {
			metrics.IncGRPCRequests(info.FullMethod, code.String())
		}
		logger.Info("gRPC request",
			zap.String("method", info.FullMethod),
			zap.String("code", code.String()),
			zap.Duration("duration", time.Since(start)))

		return resp, err
	}
}
