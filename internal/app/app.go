package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cfshr/aur/internal/catalog"
	"github.com/cfshr/aur/internal/config"
	handler "github.com/cfshr/aur/internal/handler/http"
	"github.com/cfshr/aur/internal/newsletter"
	"github.com/cfshr/aur/internal/signup"
	"github.com/cfshr/aur/internal/storage"
	filestorage "github.com/cfshr/aur/internal/storage/file"
	redisstorage "github.com/cfshr/aur/internal/storage/redis"
	"github.com/cfshr/aur/internal/store"
	apperrors "github.com/cfshr/aur/pkg/errors"
	"github.com/cfshr/aur/pkg/health"
	"github.com/cfshr/aur/pkg/httpclient"
)

// App wires together all dependencies and runs the storefront.
type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	rdb        *redis.Client
	httpServer *http.Server
}

// NewApp creates the application, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	a := &App{
		cfg:    cfg,
		logger: logger,
	}

	cartStorage, err := a.newCartStorage(ctx)
	if err != nil {
		return nil, err
	}

	cartStore := store.New(ctx, cartStorage, logger)

	// Outbound clients, each behind its own circuit breaker.
	baseClient := httpclient.New(httpclient.DefaultConfig())
	signupClient := signup.NewClient(
		httpclient.NewCircuitBreakerClient(baseClient, httpclient.DefaultCircuitBreakerConfig("signup-database"), logger),
		cfg.SignupAPIURL,
		cfg.SignupAPIKey,
		logger,
	)
	newsletterClient := newsletter.NewClient(
		httpclient.NewCircuitBreakerClient(baseClient, httpclient.DefaultCircuitBreakerConfig("mailing-list"), logger),
		cfg.MailerliteAPIURL,
		cfg.MailerliteAPIKey,
		cfg.MailerliteGroupID,
		logger,
	)

	healthHandler := health.NewHandler()
	healthHandler.Register("cart_storage", func(ctx context.Context) error {
		_, err := cartStorage.Load(ctx)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrCorrupted) {
			return err
		}
		return nil
	})
	if cfg.SignupAPIURL != "" {
		healthHandler.Register("signup_database", signupClient.Ping)
	}

	router := handler.NewRouter(handler.RouterDeps{
		Store:         cartStore,
		Catalog:       catalog.Default(),
		Signups:       signupClient,
		Newsletter:    newsletterClient,
		Health:        healthHandler,
		Logger:        logger,
		AllowedOrigin: cfg.AllowedOrigin,
	})

	a.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return a, nil
}

// newCartStorage builds the configured cart persistence backend.
func (a *App) newCartStorage(ctx context.Context) (storage.Storage, error) {
	switch a.cfg.CartStorageBackend {
	case config.BackendRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     a.cfg.RedisAddr,
			Password: a.cfg.RedisPass,
			DB:       a.cfg.RedisDB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		a.rdb = rdb

		deviceID := a.cfg.DeviceID
		if deviceID == "" {
			host, err := os.Hostname()
			if err != nil {
				return nil, fmt.Errorf("derive device id: %w", err)
			}
			deviceID = host
		}

		a.logger.Info("using redis cart storage",
			slog.String("addr", a.cfg.RedisAddr),
			slog.String("device_id", deviceID),
		)
		return redisstorage.New(rdb, deviceID, time.Duration(a.cfg.CartTTLHours)*time.Hour), nil

	default:
		fs := filestorage.New(a.cfg.CartStateDir)
		a.logger.Info("using file cart storage",
			slog.String("path", fs.Path()),
		)
		return fs, nil
	}
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
	a.logger.Info("shutting down storefront...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	if a.rdb != nil {
		if err := a.rdb.Close(); err != nil {
			a.logger.Error("redis close error", slog.String("error", err.Error()))
		}
	}

	a.logger.Info("storefront shutdown complete")
	return nil
}
