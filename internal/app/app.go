package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Maverick-Meerkats/greenfieldAPI-Reviews/internal/config"
	"github.com/Maverick-Meerkats/greenfieldAPI-Reviews/internal/event"
	handler "github.com/Maverick-Meerkats/greenfieldAPI-Reviews/internal/handler/http"
	"github.com/Maverick-Meerkats/greenfieldAPI-Reviews/internal/idgen"
	"github.com/Maverick-Meerkats/greenfieldAPI-Reviews/internal/repository/postgres"
	"github.com/Maverick-Meerkats/greenfieldAPI-Reviews/internal/service"
	"github.com/Maverick-Meerkats/greenfieldAPI-Reviews/pkg/database"
	"github.com/Maverick-Meerkats/greenfieldAPI-Reviews/pkg/health"
	pkgkafka "github.com/Maverick-Meerkats/greenfieldAPI-Reviews/pkg/kafka"
	"github.com/Maverick-Meerkats/greenfieldAPI-Reviews/pkg/tracing"
)

// Services groups the review operations built by NewApp.
type Services struct {
	Reviews         *service.ReviewService
	Characteristics *service.CharacteristicService
	Aggregation     *service.AggregationService
}

// App wires together all dependencies and runs the reviews service.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	pool           *pgxpool.Pool
	producer       *pkgkafka.Producer
	tracerShutdown func(context.Context) error
	httpServer     *http.Server
	services       Services
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	tracerShutdown, err := tracing.InitTracer(ctx, cfg.Tracing())
	if err != nil {
		return nil, fmt.Errorf("init tracing: %w", err)
	}

	pgCfg := cfg.Postgres()
	pool, err := database.NewPostgresPool(ctx, &pgCfg, logger)
	if err != nil {
		_ = tracerShutdown(context.Background())
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	logger.Info("connected to PostgreSQL",
		slog.String("host", cfg.PostgresHost),
		slog.Int("port", cfg.PostgresPort),
		slog.String("database", cfg.PostgresDB),
	)

	closeOnErr := func(err error) (*App, error) {
		pool.Close()
		_ = tracerShutdown(context.Background())
		return nil, err
	}

	if cfg.RunMigrations {
		if err := database.RunMigrations(ctx, pool, postgres.Migrations(), logger); err != nil {
			return closeOnErr(fmt.Errorf("run migrations: %w", err))
		}
	}

	if err := database.RegisterPoolMetrics(prometheus.DefaultRegisterer, pool, config.ServiceName); err != nil {
		return closeOnErr(fmt.Errorf("register pool metrics: %w", err))
	}

	ids, err := idgen.NewShortID(cfg.IDWorker)
	if err != nil {
		return closeOnErr(err)
	}

	kafkaCfg := pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers)
	kafkaCfg.Breaker = pkgkafka.DefaultBreakerConfig(config.ServiceName + "-producer")
	producer := pkgkafka.NewProducer(kafkaCfg, logger)
	logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))

	// Build the dependency graph.
	tracer := database.NewQueryTracer(cfg.SlowQuery, logger)
	reviewRepo := postgres.NewReviewRepository(pool, tracer)
	characteristicRepo := postgres.NewCharacteristicRepository(pool, tracer)
	aggregateRepo := postgres.NewAggregateRepository(pool, tracer)
	eventProducer := event.NewProducer(producer, logger)

	services := Services{
		Reviews:         service.NewReviewService(reviewRepo, characteristicRepo, ids, eventProducer, logger),
		Characteristics: service.NewCharacteristicService(characteristicRepo, logger),
		Aggregation:     service.NewAggregationService(aggregateRepo, logger),
	}

	healthHandler := health.NewHandler()
	healthHandler.Register("postgres", func(ctx context.Context) error {
		return pool.Ping(ctx)
	})
	healthHandler.Register("kafka", producer.Ping)

	router := handler.NewRouter(healthHandler, handler.RouterConfig{
		Gatherer:          prometheus.DefaultGatherer,
		PprofAllowedCIDRs: cfg.PprofAllowedCIDRs,
	}, logger)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.OpsPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &App{
		cfg:            cfg,
		logger:         logger,
		pool:           pool,
		producer:       producer,
		tracerShutdown: tracerShutdown,
		httpServer:     httpServer,
		services:       services,
	}, nil
}

// Services returns the review operations backed by this application's
// storage and event producer.
func (a *App) Services() Services {
	return a.services
}

// Run starts the ops HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting ops HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		_ = a.Shutdown()
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

	if err := a.producer.Close(); err != nil {
		a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
	}

	a.pool.Close()

	if err := a.tracerShutdown(shutdownCtx); err != nil {
		a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
	}

	a.logger.Info("application shutdown complete")
	return nil
}
