// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package registry provides the document review registry service.
//
// This package contains the main Registry service type that coordinates all
// components: the CSV record store, the in-memory index layer, HTTP routing,
// the optional source-file watcher, and observability infrastructure.
//
// # Usage
//
//	cfg := registry.Config{Port: 12240, DataFile: "./documents.csv"}
//	svc, err := registry.New(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	log.Fatal(svc.Run())
package registry

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/AleutianAI/AleutianRegistry/services/registry/index"
	"github.com/AleutianAI/AleutianRegistry/services/registry/observability"
	"github.com/AleutianAI/AleutianRegistry/services/registry/routes"
	"github.com/AleutianAI/AleutianRegistry/services/registry/store"
	"github.com/AleutianAI/AleutianRegistry/services/registry/watch"
)

// =============================================================================
// Interface Definition
// =============================================================================

// Service defines the contract for the registry service.
//
// # Thread Safety
//
// Implementations must be safe for concurrent use. Run() blocks and should
// only be called once per instance.
type Service interface {
	// Run starts the HTTP server and blocks until shutdown or error.
	Run() error

	// Router returns the underlying Gin engine for testing.
	Router() *gin.Engine
}

// =============================================================================
// Configuration
// =============================================================================

// Config holds registry service configuration options.
//
// Values can be populated from environment variables, a YAML config file
// (see LoadConfigFile), or programmatically for testing. All fields have
// defaults applied by New().
type Config struct {
	// Port is the HTTP server port. Default: 12240
	Port int

	// DataFile is the path of the CSV document source, read once at
	// startup. Default: "./documents.csv"
	DataFile string

	// OTelEndpoint is the OpenTelemetry collector endpoint.
	// Default: "aleutian-otel-collector:4317"
	OTelEndpoint string

	// GinMode sets the Gin framework mode.
	// Valid values: "debug", "release", "test"
	// Default: uses GIN_MODE env var or "debug"
	GinMode string

	// EnableMetrics enables Prometheus metrics.
	// Default: true
	EnableMetrics bool

	// WatchSource starts a watcher that flags the service as stale when
	// the source file changes on disk after load. Updates are memory-only,
	// so a changed file means disk and memory diverge until restart.
	// Default: false
	WatchSource bool
}

// =============================================================================
// Implementation
// =============================================================================

// service implements Service for production use.
//
// Thread-safe after construction: all fields are read-only once New()
// returns; mutable registry state is guarded inside index.Registry.
type service struct {
	config        Config
	router        *gin.Engine
	registry      *index.Registry
	watcher       *watch.SourceWatcher
	watchCancel   context.CancelFunc
	tracerCleanup func(context.Context)
}

// =============================================================================
// Constructor
// =============================================================================

// New creates a new registry Service with the given configuration.
//
// # Description
//
// New initializes all components in order:
//  1. Applies default configuration for missing values
//  2. Initializes OpenTelemetry tracing
//  3. Initializes Prometheus metrics
//  4. Loads the document source and builds the indexes (fatal on error)
//  5. Starts the source watcher if enabled (not fatal on error)
//  6. Sets up HTTP routes
//
// A malformed source file or duplicate document id aborts construction:
// these are data-integrity violations, not per-request conditions.
//
// # Inputs
//
//   - cfg: Service configuration. Zero values use defaults.
//
// # Outputs
//
//   - Service: Ready-to-run registry service
//   - error: Non-nil if initialization fails
func New(cfg Config) (Service, error) {
	s := &service{
		config: applyConfigDefaults(cfg),
	}

	cleanup, err := s.initTracer()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tracer: %w", err)
	}
	s.tracerCleanup = cleanup

	if s.config.EnableMetrics {
		observability.InitMetrics()
	}

	if err := s.initRegistry(); err != nil {
		s.cleanup()
		return nil, err
	}

	if s.config.WatchSource {
		if err := s.initWatcher(); err != nil {
			slog.Warn("Source watcher initialization failed, continuing without it",
				"error", err)
			// Not fatal - the registry serves fine without divergence detection
		}
	}

	s.initRouter()

	return s, nil
}

// =============================================================================
// Service Interface Methods
// =============================================================================

// Run starts the HTTP server and blocks until shutdown or error.
func (s *service) Run() error {
	defer s.cleanup()

	addr := fmt.Sprintf(":%d", s.config.Port)
	slog.Info("Starting registry server",
		"port", s.config.Port,
		"documents", s.registry.Len())

	return s.router.Run(addr)
}

// Router returns the underlying Gin engine for testing.
func (s *service) Router() *gin.Engine {
	return s.router
}

// =============================================================================
// Private Initialization Methods
// =============================================================================

// applyConfigDefaults fills in missing configuration values.
func applyConfigDefaults(cfg Config) Config {
	if cfg.Port == 0 {
		cfg.Port = 12240
	}
	if cfg.DataFile == "" {
		cfg.DataFile = "./documents.csv"
	}
	if cfg.OTelEndpoint == "" {
		cfg.OTelEndpoint = "aleutian-otel-collector:4317"
	}
	// Metrics are always on; the zero value cannot distinguish "unset"
	// from "disabled" and there is no reason to run without them.
	cfg.EnableMetrics = true

	return cfg
}

// initRegistry loads the record store and builds the index layer.
func (s *service) initRegistry() error {
	docs, err := store.LoadFile(s.config.DataFile)
	if err != nil {
		return fmt.Errorf("failed to load document source: %w", err)
	}

	reg, err := index.New(docs)
	if err != nil {
		return fmt.Errorf("failed to build document indexes: %w", err)
	}
	s.registry = reg

	slog.Info("Loaded document registry",
		"source", s.config.DataFile,
		"documents", reg.Len(),
		"duplicate_paths", len(reg.Duplicates()))

	if m := observability.DefaultMetrics; m != nil {
		m.SetDocumentCounts(reg.CountByStatus())
	}

	return nil
}

// initTracer initializes OpenTelemetry distributed tracing.
//
// Sets up the OTLP trace exporter to send spans to the configured
// collector. Uses an insecure gRPC connection, appropriate for internal
// networks. The connection is lazy: an unreachable collector does not
// fail startup.
func (s *service) initTracer() (func(context.Context), error) {
	ctx := context.Background()

	conn, err := grpc.NewClient(s.config.OTelEndpoint,
		grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("failed to create gRPC connection: %w", err)
	}

	traceExporter, err := otlptracegrpc.New(ctx, otlptracegrpc.WithGRPCConn(conn))
	if err != nil {
		return nil, fmt.Errorf("failed to create trace exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceNameKey.String("registry-service")))
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	bsp := sdktrace.NewBatchSpanProcessor(traceExporter)
	traceProvider := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithResource(res),
		sdktrace.WithSpanProcessor(bsp))

	otel.SetTracerProvider(traceProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{}, propagation.Baggage{}))

	cleanup := func(ctx context.Context) {
		ctx, cancel := context.WithTimeout(ctx, time.Second*5)
		defer cancel()
		if err := traceExporter.Shutdown(ctx); err != nil {
			slog.Error("failed to shutdown OTLP exporter", "error", err)
		}
	}

	return cleanup, nil
}

// initWatcher starts the background source-file watcher.
func (s *service) initWatcher() error {
	watcher, err := watch.NewSourceWatcher(s.config.DataFile, nil)
	if err != nil {
		return fmt.Errorf("failed to create source watcher: %w", err)
	}
	s.watcher = watcher

	ctx, cancel := context.WithCancel(context.Background())
	s.watchCancel = cancel
	go watcher.Start(ctx)

	slog.Info("Watching document source for external changes",
		"path", s.config.DataFile)

	return nil
}

// initRouter sets up the Gin HTTP router with all routes.
func (s *service) initRouter() {
	if s.config.GinMode != "" {
		gin.SetMode(s.config.GinMode)
	}

	s.router = gin.Default()
	s.router.Use(otelgin.Middleware("registry-service"))

	routes.SetupRoutes(s.router, s.registry, s.watcher)
}

// cleanup releases all resources held by the service.
func (s *service) cleanup() {
	if s.watchCancel != nil {
		s.watchCancel()
	}
	if s.watcher != nil {
		if err := s.watcher.Stop(); err != nil {
			slog.Warn("Source watcher stop error", "error", err)
		}
	}
	if s.tracerCleanup != nil {
		s.tracerCleanup(context.Background())
	}
}

// =============================================================================
// Compile-time Interface Compliance
// =============================================================================

var _ Service = (*service)(nil)
