// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package server

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/AccelByte/extend-visitor-achievements/pkg/common"
	"github.com/AccelByte/extend-visitor-achievements/pkg/ledger"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// HealthCheckInterval is how often the ledger store is probed.
const HealthCheckInterval = 10 * time.Second

// GRPCServer exposes the standard health and reflection services so that
// orchestrators can probe the service over gRPC.
type GRPCServer struct {
	server  *grpc.Server
	health  *health.Server
	port    int
	checker *ledger.HealthChecker

	stopWatch context.CancelFunc
	watchDone chan struct{}
}

// NewGRPCServer creates a new gRPC server instance. The serving status
// follows checker.
func NewGRPCServer(port int, checker *ledger.HealthChecker) *GRPCServer {
	return &GRPCServer{
		port:    port,
		checker: checker,
	}
}

// Setup configures the gRPC server with interceptors and registers the
// health and reflection services.
func (s *GRPCServer) Setup() error {
	unaryInterceptors := []grpc.UnaryServerInterceptor{
		logging.UnaryServerInterceptor(common.InterceptorLogger(logrus.StandardLogger())),
	}
	streamInterceptors := []grpc.StreamServerInterceptor{
		logging.StreamServerInterceptor(common.InterceptorLogger(logrus.StandardLogger())),
	}

	// Create server with OpenTelemetry instrumentation
	s.server = grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(unaryInterceptors...),
		grpc.ChainStreamInterceptor(streamInterceptors...),
	)

	s.health = health.NewServer()
	s.health.SetServingStatus("", grpc_health_v1.HealthCheckResponse_NOT_SERVING)

	reflection.Register(s.server)
	grpc_health_v1.RegisterHealthServer(s.server, s.health)

	logrus.Infof("gRPC reflection and health check enabled")

	return nil
}

// Start begins listening and serving gRPC requests.
func (s *GRPCServer) Start(ctx context.Context) error {
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", s.port))
	if err != nil {
		return fmt.Errorf("failed to listen on port %d: %w", s.port, err)
	}

	watchCtx, cancel := context.WithCancel(ctx)
	s.stopWatch = cancel
	s.watchDone = make(chan struct{})
	go func() {
		defer close(s.watchDone)
		s.checker.Watch(watchCtx, HealthCheckInterval, s.setServing)
	}()

	go func() {
		logrus.Infof("gRPC server listening on port %d", s.port)
		if err := s.server.Serve(lis); err != nil {
			logrus.Fatalf("gRPC server failed: %v", err)
		}
	}()

	return nil
}

func (s *GRPCServer) setServing(healthy bool) {
	status := grpc_health_v1.HealthCheckResponse_SERVING
	if !healthy {
		status = grpc_health_v1.HealthCheckResponse_NOT_SERVING
	}
	s.health.SetServingStatus("", status)
}

// Shutdown gracefully stops the gRPC server.
func (s *GRPCServer) Shutdown(ctx context.Context) error {
	logrus.Info("shutting down gRPC server...")
	if s.stopWatch != nil {
		s.stopWatch()
		<-s.watchDone
	}
	s.health.Shutdown()
	s.server.GracefulStop()
	logrus.Info("gRPC server stopped")
	return nil
}
