package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"itemvault/internal/config"
	"itemvault/internal/database"
	"itemvault/internal/logger"
	"itemvault/internal/ratelimit"
	"itemvault/internal/router"
	"itemvault/internal/validator"
)

const shutdownTimeout = 10 * time.Second

// @title           Itemvault API
// @version         1.0
// @description     Itemvault stores credentials and inventory records as items filed under user-defined categories, classifies their fields and renders dashboard aggregates.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
// @description Admin API key.

func main() {
	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger.InitWithOptions(logger.Options{Env: appConfig.Env, FilePath: appConfig.LogFile})
	defer logger.Sync()
	log := logger.Get()

	validator.Register()

	// Create database manager
	dbManager, err := database.NewManager(database.NewConfig(appConfig))
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer func() {
		if err := dbManager.Close(); err != nil {
			log.Warnf("database close error: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := dbManager.Ping(ctx); err != nil {
		return fmt.Errorf("database is unreachable: %w", err)
	}

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	limiter, err := newAuthLimiter(ctx, appConfig)
	if err != nil {
		return err
	}

	if appConfig.AdminAPIKey == "" {
		log.Warn("ADMIN_API_KEY is not set, admin endpoints are disabled")
	}

	srv := &http.Server{
		Addr: ":" + appConfig.Port,
		Handler: router.New(router.Deps{
			DB:          dbManager.DB(),
			AuthLimiter: limiter,
			AdminAPIKey: appConfig.AdminAPIKey,
			Swagger:     appConfig.Env != "production",
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Starting Itemvault backend server on port %s", appConfig.Port)
		log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	log.Info("Server stopped")
	return nil
}

// newAuthLimiter uses Redis when REDIS_ADDR is set so that limits are shared
// across instances, and an in-process store otherwise.
func newAuthLimiter(ctx context.Context, cfg *config.Config) (ratelimit.Limiter, error) {
	if cfg.RedisAddr == "" {
		logger.Get().Infow("using in-memory rate limiter",
			"requests", cfg.RateLimitRequests, "window", cfg.RateLimitWindow.String())
		return ratelimit.NewMemoryLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow), nil
	}

	client, err := ratelimit.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	logger.Get().Infow("using redis rate limiter", "addr", cfg.RedisAddr,
		"requests", cfg.RateLimitRequests, "window", cfg.RateLimitWindow.String())
	return ratelimit.NewRedisLimiter(client, cfg.RateLimitRequests, cfg.RateLimitWindow), nil
}
