package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/Chinny123a/flightsimspot/internal/auth"
	"github.com/Chinny123a/flightsimspot/internal/config"
	"github.com/Chinny123a/flightsimspot/internal/event"
	handler "github.com/Chinny123a/flightsimspot/internal/handler/http"
	mongorepo "github.com/Chinny123a/flightsimspot/internal/repository/mongo"
	"github.com/Chinny123a/flightsimspot/internal/seed"
	"github.com/Chinny123a/flightsimspot/internal/service"
	"github.com/Chinny123a/flightsimspot/pkg/health"
	pkgkafka "github.com/Chinny123a/flightsimspot/pkg/kafka"
	"github.com/Chinny123a/flightsimspot/pkg/middleware"
	"github.com/Chinny123a/flightsimspot/pkg/tracing"
)

// App wires together all dependencies and runs the API server.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	mongoClient    *mongo.Client
	producer       *pkgkafka.Producer
	httpServer     *http.Server
	tracerShutdown func(context.Context) error
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	// OpenTelemetry tracing.
	tracerShutdown, err := tracing.InitTracer(ctx, tracing.Config{
		ServiceName:    "flightsimspot-api",
		ServiceVersion: "0.1.0",
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTELEndpoint,
		SampleRate:     cfg.OTELSampleRate,
		Enabled:        cfg.OTELEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	// MongoDB.
	client, err := mongorepo.Connect(ctx, cfg.MongoURI)
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}
	db := client.Database(cfg.MongoDatabase)
	logger.Info("connected to MongoDB", slog.String("database", cfg.MongoDatabase))

	if err := mongorepo.EnsureIndexes(ctx, db); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ensure indexes: %w", err)
	}
	logger.Info("mongodb indexes ensured")

	// Kafka producer.
	kafkaCfg := pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers)
	producer := pkgkafka.NewProducer(kafkaCfg, logger)
	logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))

	// Build the dependency graph.
	aircraftRepo := mongorepo.NewAircraftRepository(db)
	reviewRepo := mongorepo.NewReviewRepository(db)
	userRepo := mongorepo.NewUserRepository(db)

	eventProducer := event.NewProducer(producer, logger)
	rating := service.NewRatingAggregator(aircraftRepo, reviewRepo, logger)

	catalogService := service.NewCatalogService(aircraftRepo, reviewRepo, userRepo, logger)
	aircraftService := service.NewAircraftService(aircraftRepo, reviewRepo, userRepo, eventProducer, logger)
	reviewService := service.NewReviewService(reviewRepo, aircraftRepo, userRepo, rating, eventProducer, logger)
	userService := service.NewUserService(userRepo, reviewRepo, aircraftRepo, cfg.AdminEmails, logger)
	analyticsService := service.NewAnalyticsService(aircraftRepo, logger)

	sessions := auth.NewSessionManager(cfg.SessionSecret, cfg.SessionTTL, cfg.Environment != "development")
	verifier := auth.NewGoogleVerifier(cfg.GoogleTokenInfoURL, cfg.GoogleClientID, logger)

	// Catalog bootstrap.
	if cfg.SeedOnStart {
		if err := seed.New(aircraftRepo, logger).Seed(ctx); err != nil {
			_ = client.Disconnect(ctx)
			return nil, fmt.Errorf("seed catalog: %w", err)
		}
	}

	// Health checks: Mongo is load-bearing, Kafka is best-effort.
	healthHandler := health.NewHandler()
	healthHandler.RegisterCritical("mongodb", func(ctx context.Context) error {
		return client.Ping(ctx, readpref.Primary())
	})
	healthHandler.RegisterNonCritical("kafka", producer.Ping)

	router := handler.NewRouter(handler.RouterConfig{
		Catalog:   catalogService,
		Aircraft:  aircraftService,
		Reviews:   reviewService,
		Users:     userService,
		Analytics: analyticsService,
		Verifier:  verifier,
		Sessions:  sessions,
		Health:    healthHandler,
		Logger:    logger,
		CORS: middleware.CORSConfig{
			AllowedOrigins:   cfg.CORSAllowedOrigins,
			AllowCredentials: true,
			Environment:      cfg.Environment,
		},
		RateLimitRPS:      cfg.RateLimitRPS,
		RateLimitBurst:    cfg.RateLimitBurst,
		PprofAllowedCIDRs: cfg.PprofAllowedCIDRs,
	})

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &App{
		cfg:            cfg,
		logger:         logger,
		mongoClient:    client,
		producer:       producer,
		httpServer:     httpServer,
		tracerShutdown: tracerShutdown,
	}, nil
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server", slog.String("addr", a.httpServer.Addr))
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

// Shutdown gracefully stops all components: drain in-flight HTTP requests,
// flush pending spans, close the Kafka producer, then disconnect Mongo.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	var errs []error

	httpCtx, httpCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer httpCancel()
	if err := a.httpServer.Shutdown(httpCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	if a.tracerShutdown != nil {
		tracerCtx, tracerCancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer tracerCancel()
		if err := a.tracerShutdown(tracerCtx); err != nil {
			a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	if err := a.producer.Close(); err != nil {
		a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	mongoCtx, mongoCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer mongoCancel()
	if err := a.mongoClient.Disconnect(mongoCtx); err != nil {
		a.logger.Error("mongodb disconnect error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return fmt.Errorf("shutdown completed with %d error(s); first: %w", len(errs), errs[0])
	}

	a.logger.Info("shutdown complete")
	return nil
}
