// Package app wires together all dependencies and runs the storefront.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/velostore/storefront/internal/admin"
	"github.com/velostore/storefront/internal/cart"
	"github.com/velostore/storefront/internal/catalog"
	"github.com/velostore/storefront/internal/config"
	"github.com/velostore/storefront/internal/event"
	handler "github.com/velostore/storefront/internal/handler/http"
	"github.com/velostore/storefront/internal/store"
	"github.com/velostore/storefront/internal/store/filestore"
	"github.com/velostore/storefront/internal/store/redisstore"
	"github.com/velostore/storefront/pkg/health"
	"github.com/velostore/storefront/pkg/httpclient"
	pkgkafka "github.com/velostore/storefront/pkg/kafka"
)

// App wires together all dependencies and runs the storefront service.
type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	rdb        *redis.Client
	producer   *pkgkafka.Producer
	httpServer *http.Server
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	healthHandler := health.NewHandler()

	// Client state storage: local files by default, redis when shared
	// state across instances is wanted.
	var (
		st  store.Store
		rdb *redis.Client
	)
	switch cfg.StoreBackend {
	case config.StoreBackendRedis:
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPass,
			DB:       cfg.RedisDB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		logger.Info("connected to Redis",
			slog.String("addr", cfg.RedisAddr),
			slog.Int("db", cfg.RedisDB),
		)
		st = redisstore.New(rdb, cfg.CartTTL)
		healthHandler.Register("redis", func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		})
	default:
		fs, err := filestore.New(cfg.StateDir)
		if err != nil {
			return nil, fmt.Errorf("open state dir: %w", err)
		}
		logger.Info("using file state store", slog.String("dir", cfg.StateDir))
		st = fs
	}

	// Backend API client with retries behind a circuit breaker.
	base := httpclient.New(httpclient.DefaultConfig())
	breaker := httpclient.NewCircuitBreakerClient(
		base,
		httpclient.DefaultCircuitBreakerConfig("backend-api"),
		logger,
	)

	catalogClient := catalog.NewClient(breaker, cfg.APIBaseURL, logger)

	// Cart manager restores its snapshot before serving traffic.
	manager := cart.NewManager(st, logger)
	manager.Load(ctx)

	// Admin session and moderation clients share the breaker and token.
	session := admin.NewSession(breaker, cfg.APIBaseURL, st, logger)
	session.Load(ctx)
	reviewClient := admin.NewReviewClient(breaker, cfg.APIBaseURL, session, logger)
	categoryClient := admin.NewCategoryClient(breaker, cfg.APIBaseURL, session, logger)

	// Optional Kafka cart event stream, attached as a cart observer.
	var producer *pkgkafka.Producer
	if cfg.KafkaEnabled {
		producer = pkgkafka.NewProducer(pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers), logger)
		publisher := event.NewPublisher(producer, uuid.NewString(), logger)
		manager.Subscribe(publisher.Observe)
		healthHandler.Register("kafka", producer.Ping)
		logger.Info("kafka cart events enabled", slog.Any("brokers", cfg.KafkaBrokers))
	}

	router := handler.NewRouter(handler.RouterDeps{
		Cart:           handler.NewCartHandler(manager, catalogClient, logger),
		Catalog:        handler.NewCatalogHandler(catalogClient, logger),
		Admin:          handler.NewAdminHandler(session, reviewClient, categoryClient, logger),
		Health:         healthHandler,
		Logger:         logger,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &App{
		cfg:        cfg,
		logger:     logger,
		rdb:        rdb,
		producer:   producer,
		httpServer: httpServer,
	}, nil
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
		}
	}

	if a.rdb != nil {
		if err := a.rdb.Close(); err != nil {
			a.logger.Error("redis close error", slog.String("error", err.Error()))
		}
	}

	a.logger.Info("application shutdown complete")
	return nil
}
