package grpc

import (
	"context"
	"net"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/tair/warehouse-inventory/pkg/logger"
)

// HealthCheck reports whether the backing store is reachable
type HealthCheck func(ctx context.Context) error

// Server is the gRPC endpoint of the service. It serves the standard health
// protocol, reporting NOT_SERVING while the health check fails.
type Server struct {
	serviceName string
	server      *grpc.Server
	health      *health.Server
	check       HealthCheck
}

// NewServer creates a gRPC server with tracing, metrics and logging wired in
func NewServer(serviceName string, check HealthCheck) *Server {
	server := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(
			MetricsInterceptor,
			LoggingInterceptor(serviceName),
		),
	)

	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(server, healthServer)
	reflection.Register(server)

	return &Server{
		serviceName: serviceName,
		server:      server,
		health:      healthServer,
		check:       check,
	}
}

// Serve blocks serving lis until GracefulStop
func (s *Server) Serve(lis net.Listener) error {
	return s.server.Serve(lis)
}

// CheckDatabase runs the health check once and publishes the result
func (s *Server) CheckDatabase(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	status := healthpb.HealthCheckResponse_SERVING
	if s.check != nil {
		if err := s.check(ctx); err != nil {
			logger.Warn(ctx).Err(err).Msg("Health check failed")
			status = healthpb.HealthCheckResponse_NOT_SERVING
		}
	}
	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(s.serviceName, status)
	return status
}

// WatchHealth re-runs CheckDatabase every interval until ctx is done
func (s *Server) WatchHealth(ctx context.Context, interval time.Duration) {
	s.CheckDatabase(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.CheckDatabase(ctx)
		}
	}
}

// GracefulStop marks the service as not serving and drains in-flight calls
func (s *Server) GracefulStop() {
	s.health.Shutdown()
	s.server.GracefulStop()
}
