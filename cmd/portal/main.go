package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/leave-portal/internal/api/http"
	"github.com/spec-kit/leave-portal/internal/api/http/handlers"
	"github.com/spec-kit/leave-portal/internal/backend"
	"github.com/spec-kit/leave-portal/internal/config"
	"github.com/spec-kit/leave-portal/internal/events"
	"github.com/spec-kit/leave-portal/internal/observability"
	"github.com/spec-kit/leave-portal/internal/persistence"
	"github.com/spec-kit/leave-portal/internal/service"
	"github.com/spec-kit/leave-portal/internal/session"
	"github.com/spec-kit/leave-portal/internal/worker"
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

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	store := session.NewRedisStore(redis.Client, session.TokenTTL(cfg.Session.DefaultTTL()))
	metrics := observability.NewMetrics()

	// When any call comes back unauthorized the owning session is wiped, so
	// the next navigation lands on the login screen.
	client := backend.NewClient(cfg.Backend, logger, metrics, func(ctx context.Context) {
		id, ok := session.IDFromContext(ctx)
		if !ok {
			return
		}
		if err := store.Clear(ctx, id); err != nil {
			logger.Warn("clear expired session", zap.String("session_id", id), zap.Error(err))
		}
	})

	dispatcher := events.NewInMemoryDispatcher(logger)

	authService := service.NewAuthService(client, store)
	leaveService := service.NewLeaveService(client, dispatcher)
	userService := service.NewUserService(client, store)
	notificationService := service.NewNotificationService(client, dispatcher, logger)
	activityService := service.NewActivityService(dispatcher, logger, cfg.Activity)
	worker.StartActivityWorker(activityService)

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:        handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, redis),
		Auth:          handlers.NewAuthHandler(authService),
		Leaves:        handlers.NewLeavesHandler(leaveService),
		Users:         handlers.NewUsersHandler(userService),
		Notifications: handlers.NewNotificationsHandler(notificationService),
		Balances:      handlers.NewBalancesHandler(client),
		Dashboard:     handlers.NewDashboardHandler(leaveService, client, logger),
		SessionStore:  store,
		SessionCfg:    cfg.Session,
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
