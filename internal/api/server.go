package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	grpc_prometheus "github.com/grpc-ecosystem/go-grpc-prometheus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/miradorstack/logistics-pulse/internal/config"
	pulsev1 "github.com/miradorstack/logistics-pulse/internal/grpc/pulsev1"
)

// Server hosts DashboardService next to the gRPC health service on a single
// listener. Every call is counted by the prometheus interceptors.
type Server struct {
	grpcServer *grpc.Server
	health     *health.Server
	listener   net.Listener
	grace      time.Duration
}

// NewServer listens on cfg.Address and serves service there.
func NewServer(cfg config.ServerConfig, service pulsev1.DashboardServiceServer, opts ...grpc.ServerOption) (*Server, error) {
	lis, err := net.Listen("tcp", cfg.Address)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", cfg.Address, err)
	}
	return NewServerWithListener(cfg, lis, service, opts...), nil
}

// NewServerWithListener serves service on lis. Tests pass a bufconn listener.
func NewServerWithListener(cfg config.ServerConfig, lis net.Listener, service pulsev1.DashboardServiceServer, opts ...grpc.ServerOption) *Server {
	grpcServer := grpc.NewServer(append(instrumented(), opts...)...)
	pulsev1.RegisterDashboardServiceServer(grpcServer, service)
	grpc_prometheus.Register(grpcServer)

	healthSrv := health.NewServer()
	for _, name := range []string{"", pulsev1.ServiceName} {
		healthSrv.SetServingStatus(name, healthpb.HealthCheckResponse_SERVING)
	}
	healthpb.RegisterHealthServer(grpcServer, healthSrv)

	if cfg.Reflection {
		reflection.Register(grpcServer)
	}
	return &Server{grpcServer: grpcServer, health: healthSrv, listener: lis, grace: cfg.GracefulTimeout}
}

func instrumented() []grpc.ServerOption {
	grpc_prometheus.EnableHandlingTimeHistogram()
	return []grpc.ServerOption{
		grpc.ChainUnaryInterceptor(grpc_prometheus.UnaryServerInterceptor),
		grpc.ChainStreamInterceptor(grpc_prometheus.StreamServerInterceptor),
	}
}

// Start blocks while serving. It returns nil once Shutdown has stopped it.
func (s *Server) Start() error {
	if s.grpcServer == nil || s.listener == nil {
		return fmt.Errorf("server not initialised")
	}
	if err := s.grpcServer.Serve(s.listener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return err
	}
	return nil
}

// Addr is the bound listener address.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Shutdown reports NOT_SERVING on health checks and drains in-flight calls.
// Draining is bounded by ctx and by the configured graceful timeout; when
// either runs out open calls are cut and forced is true.
func (s *Server) Shutdown(ctx context.Context) (forced bool) {
	if s.grpcServer == nil {
		return false
	}
	s.health.Shutdown()
	if s.grace > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.grace)
		defer cancel()
	}

	drained := make(chan struct{})
	go func() {
		s.grpcServer.GracefulStop()
		close(drained)
	}()
	select {
	case <-drained:
		return false
	case <-ctx.Done():
		s.grpcServer.Stop()
		return true
	}
}
