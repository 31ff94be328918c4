package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/tair/warehouse-inventory/docs"
	"github.com/tair/warehouse-inventory/internal/config"
	"github.com/tair/warehouse-inventory/internal/inventory"
	grpcDelivery "github.com/tair/warehouse-inventory/internal/inventory/delivery/grpc"
	httpDelivery "github.com/tair/warehouse-inventory/internal/inventory/delivery/http"
	"github.com/tair/warehouse-inventory/internal/inventory/domain"
	"github.com/tair/warehouse-inventory/internal/inventory/memstore"
	"github.com/tair/warehouse-inventory/internal/inventory/repository"
	"github.com/tair/warehouse-inventory/kafka"
	"github.com/tair/warehouse-inventory/pkg/database"
	"github.com/tair/warehouse-inventory/pkg/logger"
	"github.com/tair/warehouse-inventory/pkg/middleware"
	"github.com/tair/warehouse-inventory/pkg/tracing"
)

const (
	shutdownTimeout     = 15 * time.Second
	healthCheckInterval = 15 * time.Second
)

func main() {
	cfg := config.Load()

	logger.Init(cfg.ServiceName, cfg.IsDevelopment())
	logger.SetLevel(cfg.LogLevel)

	logger.Logger.Info().
		Str("service", cfg.ServiceName).
		Str("version", cfg.ServiceVersion).
		Str("environment", cfg.Environment).
		Str("store", cfg.StoreDriver).
		Msg("Starting inventory service")

	tp, err := tracing.InitTracer(cfg.Tracing)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize tracer")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stores, healthCheck, closeStore := openStores(cfg)
	defer closeStore()

	idempotency, closeIdempotency := openIdempotencyStore(ctx, cfg)
	defer closeIdempotency()

	events, closeEvents := openEventPublisher(cfg)
	defer closeEvents()

	handlers := inventory.InitializeHandlers(stores, idempotency, events)

	// Setup router
	router := mux.NewRouter()
	mwConfig := middleware.DefaultConfig(cfg.ServiceName)
	mwConfig.TimeoutDuration = cfg.RequestTimeout
	middleware.Register(router, mwConfig)

	protect := middleware.AdminOnly(cfg.JWTSecret)
	if cfg.JWTSecret == "" {
		logger.Logger.Warn().Msg("JWT_SECRET not set, mutating routes are unauthenticated")
	}
	handlers.Inventory.RegisterRoutes(router, protect)
	handlers.Products.RegisterRoutes(router, protect)
	handlers.Warehouses.RegisterRoutes(router, protect)

	httpDelivery.RegisterHealthCheck(router, healthCheck)
	httpDelivery.RegisterSwaggerDocs(router, httpSwagger.WrapHandler)
	router.Handle("/metrics", promhttp.Handler())

	httpServer := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           middleware.CORS(mwConfig, router),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Logger.Info().
			Str("port", cfg.HTTPPort).
			Str("metrics_endpoint", "/metrics").
			Str("swagger", "/swagger/index.html").
			Msg("HTTP server started")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()

	grpcServer := grpcDelivery.NewServer(cfg.ServiceName, healthCheck)
	lis, err := net.Listen("tcp", ":"+cfg.GRPCPort)
	if err != nil {
		logger.Logger.Fatal().Err(err).Str("port", cfg.GRPCPort).Msg("Failed to listen for gRPC")
	}
	go grpcServer.WatchHealth(ctx, healthCheckInterval)
	go func() {
		logger.Logger.Info().Str("port", cfg.GRPCPort).Msg("gRPC server started")
		if err := grpcServer.Serve(lis); err != nil {
			logger.Logger.Error().Err(err).Msg("gRPC server stopped")
		}
	}()

	<-ctx.Done()
	logger.Logger.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Logger.Error().Err(err).Msg("HTTP server shutdown failed")
	}
	grpcServer.GracefulStop()
	if err := tracing.Shutdown(shutdownCtx, tp); err != nil {
		logger.Logger.Error().Err(err).Msg("Tracer shutdown failed")
	}

	logger.Logger.Info().Msg("Server stopped")
}

// openStores connects the configured backend. The returned check pings it.
func openStores(cfg *config.Config) (domain.Stores, func(context.Context) error, func()) {
	if cfg.StoreDriver == config.StoreDriverMemory {
		logger.Logger.Warn().Msg("Using in-memory store, data is lost on restart")
		return memstore.New().Stores(), nil, func() {}
	}

	db, err := database.NewGormConnection(cfg.Database)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to get database instance")
	}

	if err := repository.Migrate(db); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to run migrations")
	}
	logger.Logger.Info().Msg("Database initialized successfully")

	closeDB := func() {
		if err := sqlDB.Close(); err != nil {
			logger.Logger.Error().Err(err).Msg("Failed to close database")
		}
	}
	return repository.NewGormStores(db), sqlDB.PingContext, closeDB
}

// openIdempotencyStore returns a nil store when REDIS_ADDR is unset
func openIdempotencyStore(ctx context.Context, cfg *config.Config) (domain.IdempotencyStore, func()) {
	if cfg.RedisAddr == "" {
		logger.Logger.Info().Msg("REDIS_ADDR not set, transfer idempotency disabled")
		return nil, func() {}
	}

	client, err := repository.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		logger.Logger.Fatal().Err(err).Str("addr", cfg.RedisAddr).Msg("Failed to connect to Redis")
	}
	logger.Logger.Info().Str("addr", cfg.RedisAddr).Dur("ttl", cfg.IdempotencyTTL).Msg("Transfer idempotency enabled")

	return repository.NewRedisIdempotencyStore(client, cfg.IdempotencyTTL), func() {
		if err := client.Close(); err != nil {
			logger.Logger.Error().Err(err).Msg("Failed to close Redis client")
		}
	}
}

// openEventPublisher returns a nil publisher when KAFKA_BROKERS is unset
func openEventPublisher(cfg *config.Config) (domain.EventPublisher, func()) {
	if len(cfg.KafkaBrokers) == 0 {
		logger.Logger.Info().Msg("KAFKA_BROKERS not set, transfer events disabled")
		return nil, func() {}
	}

	publisher, err := kafka.NewPublisher(cfg.KafkaBrokers)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to create Kafka publisher")
	}

	return publisher, func() {
		if err := publisher.Close(); err != nil {
			logger.Logger.Error().Err(err).Msg("Failed to close Kafka publisher")
		}
	}
}
