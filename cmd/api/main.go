package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/bookshelf-service/internal/api/http"
	"github.com/spec-kit/bookshelf-service/internal/api/http/handlers"
	"github.com/spec-kit/bookshelf-service/internal/auth"
	"github.com/spec-kit/bookshelf-service/internal/config"
	"github.com/spec-kit/bookshelf-service/internal/events"
	"github.com/spec-kit/bookshelf-service/internal/googlebooks"
	"github.com/spec-kit/bookshelf-service/internal/observability"
	"github.com/spec-kit/bookshelf-service/internal/persistence"
	"github.com/spec-kit/bookshelf-service/internal/repository"
	"github.com/spec-kit/bookshelf-service/internal/service"
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

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	tokenManager, err := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL(), cfg.Auth.RefreshTokenTTL())
	if err != nil {
		logger.Fatal("failed to init token manager", zap.Error(err))
	}

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	bookRepo := repository.NewBookRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	subscribeAuditLog(dispatcher, logger)

	authService := service.NewAuthService(userRepo, tokenManager, dispatcher, cfg.Auth.BcryptCost)
	bookService := service.NewBookService(bookRepo, dispatcher)
	searchService := service.NewSearchService(
		googlebooks.NewClient(cfg.GoogleBooks, logger),
		redis,
		cfg.GoogleBooks.CacheTTL(),
		logger,
	)

	authMiddleware := auth.NewMiddleware(tokenManager, userRepo)
	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Books:          handlers.NewBooksHandler(bookService),
		Search:         handlers.NewSearchHandler(searchService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

// subscribeAuditLog logs every domain event the services publish.
func subscribeAuditLog(dispatcher events.Dispatcher, logger *zap.Logger) {
	handler := func(_ context.Context, event events.Event) error {
		logger.Info("domain event",
			zap.String("event_id", event.ID),
			zap.String("type", string(event.Type)),
			zap.String("actor_id", event.ActorID),
		)
		return nil
	}
	for _, eventType := range []events.EventType{
		events.EventUserRegistered,
		events.EventBookCreated,
		events.EventBookUpdated,
		events.EventBookDeleted,
	} {
		dispatcher.Subscribe(eventType, handler)
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
