package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gharinto/platform/internal/app"
	"github.com/gharinto/platform/internal/auth"
	"github.com/gharinto/platform/internal/menu"
	"github.com/gharinto/platform/internal/observability"
	"github.com/gharinto/platform/internal/platform/cache"
	"github.com/gharinto/platform/internal/platform/db"
	"github.com/gharinto/platform/internal/rbac"
	"github.com/gharinto/platform/internal/roles"
	"github.com/gharinto/platform/internal/users"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	dbpool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	rbacRepo := rbac.NewRepository(dbpool)
	rbacService := rbac.NewService(rbacRepo)
	rbacMiddleware := rbac.Middleware{Logger: logger}

	if err := rbacService.ValidateScopes(ctx, logger); err != nil {
		logger.Warn("validate permission scopes", slog.Any("error", err))
	}

	tokenService := auth.NewTokenService(cfg.JWTSecret, cfg.TokenIssuer, cfg.TokenTTL)
	denylist := auth.NewDenylist(redisClient)
	authRepo := auth.NewRepository(dbpool)
	authService := auth.NewService(authRepo, tokenService, denylist, rbacService)
	authHandler := auth.NewHandler(logger, authService)
	authMiddleware := auth.Middleware{Logger: logger, Service: authService}

	menuRepo := menu.NewRepository(dbpool)
	menuService := menu.NewService(menuRepo)
	menuHandler := menu.NewHandler(logger, menuService)

	usersRepo := users.NewRepository(dbpool)
	usersService := users.NewService(usersRepo)
	usersHandler := users.NewHandler(logger, usersService, rbacMiddleware)

	rolesRepo := roles.NewRepository(dbpool)
	rolesService := roles.NewService(rolesRepo)
	rolesHandler := roles.NewHandler(logger, rolesService, rbacMiddleware)

	rbacHandler := rbac.NewHandler(logger, rbacService, rbacMiddleware)

	metrics := observability.NewMetrics()

	router := app.NewRouter(app.RouterParams{
		Logger:         logger,
		Config:         cfg,
		AuthHandler:    authHandler,
		AuthMiddleware: authMiddleware,
		RBACHandler:    rbacHandler,
		MenuHandler:    menuHandler,
		UsersHandler:   usersHandler,
		RolesHandler:   rolesHandler,
		Pool:           dbpool,
		Metrics:        metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
