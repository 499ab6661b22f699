package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/light-bringer/pricing-service/internal/config"
	"github.com/light-bringer/pricing-service/internal/pkg/logger"
	"github.com/light-bringer/pricing-service/internal/services"
	grpcpricing "github.com/light-bringer/pricing-service/internal/transport/grpc/pricing"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to run server: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load configuration; .env is optional
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log := logger.New(logger.Options{
		ServiceName: "pricing-service",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		Format:      cfg.App.LogFormat,
	})
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info(log.WithFields(ctx, map[string]any{
		"env":          cfg.App.Env,
		"store":        cfg.Store.Driver,
		"availability": cfg.Availability.Driver,
		"http_port":    cfg.App.HTTPPort,
		"grpc_port":    cfg.App.GRPCPort,
	}), "starting pricing service")

	// 2. Initialize service dependencies (DI container)
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	serviceOpts, err := services.NewServiceOptions(ctx, cfg, log, reg)
	if err != nil {
		return fmt.Errorf("failed to initialize service: %w", err)
	}
	defer serviceOpts.Close()

	// 3. Create gRPC server with health and reflection
	grpcServer := grpc.NewServer()
	grpcpricing.RegisterPricingServiceServer(grpcServer, serviceOpts.GRPCHandler)
	healthServer := health.NewServer()
	healthServer.SetServingStatus(grpcpricing.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	if cfg.App.IsDev() {
		reflection.Register(grpcServer)
	}

	lis, err := net.Listen("tcp", ":"+cfg.App.GRPCPort)
	if err != nil {
		return fmt.Errorf("failed to listen on gRPC port: %w", err)
	}

	// 4. Create HTTP server
	httpServer := &http.Server{
		Addr:    ":" + cfg.App.HTTPPort,
		Handler: serviceOpts.HTTPHandler,
	}

	errCh := make(chan error, 2)
	go func() {
		log.Info(log.WithField(ctx, "addr", lis.Addr().String()), "gRPC server listening")
		if err := grpcServer.Serve(lis); err != nil {
			errCh <- fmt.Errorf("gRPC server: %w", err)
		}
	}()
	go func() {
		log.Info(log.WithField(ctx, "addr", httpServer.Addr), "HTTP server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("HTTP server: %w", err)
		}
	}()

	// 5. Graceful shutdown handling
	var serveErr error
	select {
	case <-ctx.Done():
		log.Info(context.Background(), "shutting down gracefully")
	case serveErr = <-errCh:
		log.Error(context.Background(), "server failed, shutting down", serveErr)
	}

	healthServer.Shutdown()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error(shutdownCtx, "HTTP server shutdown error", err)
	}
	grpcServer.GracefulStop()

	return serveErr
}
