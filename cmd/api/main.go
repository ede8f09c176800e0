package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/supportflow/opsdash/internal/api/http"
	"github.com/supportflow/opsdash/internal/api/http/handlers"
	"github.com/supportflow/opsdash/internal/auth"
	"github.com/supportflow/opsdash/internal/config"
	"github.com/supportflow/opsdash/internal/events"
	"github.com/supportflow/opsdash/internal/observability"
	"github.com/supportflow/opsdash/internal/persistence"
	"github.com/supportflow/opsdash/internal/service"
	"github.com/supportflow/opsdash/internal/storage"
	"github.com/supportflow/opsdash/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	var store storage.Store
	if pool := pg.PoolHandle(); pool != nil {
		if cfg.Postgres.RunMigrations {
			if err := persistence.RunMigrations(ctx, pool, logger); err != nil {
				logger.Fatal("failed to run migrations", zap.Error(err))
			}
		}
		store = storage.NewPostgresStore(pool)
	} else {
		mem := storage.NewMemStore()
		mem.Seed()
		store = mem
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	credentials, err := auth.NewStaticCredentials(cfg.Auth)
	if err != nil {
		logger.Fatal("failed to sign login token", zap.Error(err))
	}

	dispatcher := events.NewInMemoryDispatcher()
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	metricsService := service.NewMetricsService(store, redis, cfg.Metrics.CacheTTL(), logger)
	integrationService := service.NewIntegrationService(store, dispatcher, logger, nil)

	app := fiber.New()
	requestMetrics := observability.NewMetrics()
	httptransport.RegisterMiddlewares(app, logger, requestMetrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:          handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:            handlers.NewAuthHandler(credentials),
		Users:           handlers.NewUsersHandler(store),
		Platforms:       handlers.NewPlatformsHandler(store),
		Integrations:    handlers.NewIntegrationsHandler(store, integrationService),
		Tickets:         handlers.NewTicketsHandler(store, dispatcher),
		AutomationRules: handlers.NewAutomationRulesHandler(store),
		ManagedAccounts: handlers.NewManagedAccountsHandler(store),
		Metrics:         handlers.NewMetricsHandler(metricsService),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
