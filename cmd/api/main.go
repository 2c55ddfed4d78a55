package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/directory-service/internal/api/http"
	"github.com/spec-kit/directory-service/internal/api/http/handlers"
	"github.com/spec-kit/directory-service/internal/auth"
	"github.com/spec-kit/directory-service/internal/config"
	"github.com/spec-kit/directory-service/internal/events"
	"github.com/spec-kit/directory-service/internal/observability"
	"github.com/spec-kit/directory-service/internal/persistence"
	"github.com/spec-kit/directory-service/internal/repository"
	"github.com/spec-kit/directory-service/internal/service"
	"github.com/spec-kit/directory-service/internal/worker"
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

	secret := auth.NewSecret(cfg.Auth.JWTSecret)
	metrics := observability.NewMetrics()
	readiness := map[string]handlers.Pinger{}

	var (
		userRepo    repository.UserRepository
		listingRepo repository.CustomerServiceRepository
	)
	if cfg.Postgres.DSN != "" {
		pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
		if err != nil {
			logger.Fatal("failed to connect postgres", zap.Error(err))
		}
		defer pg.Close()

		if cfg.Postgres.RunMigrations {
			if err := persistence.RunMigrations(ctx, pg.Pool(), logger); err != nil {
				logger.Fatal("failed to run migrations", zap.Error(err))
			}
		}
		userRepo = repository.NewUserRepository(pg.Pool())
		listingRepo = repository.NewCustomerServiceRepository(pg.Pool())
		readiness["postgres"] = pg
	} else {
		logger.Warn("POSTGRES_DSN not provided; using in-memory repositories")
		userRepo = repository.NewMemoryUserRepository()
		listingRepo = repository.NewMemoryCustomerServiceRepository()
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	revoked := redis.RevocationList()
	if redis.Configured() {
		readiness["redis"] = redis
	}

	dispatcher := events.NewInMemoryDispatcher()
	worker.StartAuditWorker(service.NewAuditService(dispatcher, logger))

	tokens := auth.NewTokenManager(secret, cfg.Auth.TokenTTL, cfg.Auth.TokenAudience)
	userService := service.NewUserService(userRepo, dispatcher, metrics, logger)
	authService := service.NewAuthService(service.AuthDependencies{
		Users:      userRepo,
		Accounts:   userService,
		Tokens:     tokens,
		Revoked:    revoked,
		Dispatcher: dispatcher,
		Metrics:    metrics,
		Logger:     logger,
	})
	listingService := service.NewCustomerServiceService(listingRepo, userRepo, dispatcher, logger)

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: true,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:           handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, readiness),
		Auth:             handlers.NewAuthHandler(authService),
		Users:            handlers.NewUsersHandler(userService),
		CustomerServices: handlers.NewCustomerServicesHandler(listingService),
		AuthMiddleware:   auth.NewAuthMiddleware(authService.TokenManager(), revoked),
		Metrics:          metrics,
	})

	go func() {
		logger.Info("listening", zap.String("addr", cfg.App.Addr()), zap.String("env", cfg.App.Env))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
