package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"screentime/internal/api"
	"screentime/internal/config"
	"screentime/internal/database"
	"screentime/internal/logging"
	"screentime/internal/ratelimit"
	"screentime/internal/storage"
	"screentime/internal/tracker"
	"screentime/internal/websocket"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/time/rate"

	_ "screentime/docs"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := logging.New(cfg.Env, os.Stdout)
	slog.SetDefault(logger)

	dbpool, err := pgxpool.New(ctx, cfg.DB.Source)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer dbpool.Close()

	if err := dbpool.Ping(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	logger.Info("connected to database")

	if err := database.Migrate(ctx, dbpool); err != nil {
		return err
	}

	files, err := newStorage(ctx, cfg, logger)
	if err != nil {
		return err
	}

	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()

	wsHub := websocket.NewHub(logger)
	go wsHub.Run(workerCtx)

	store := database.NewStore(dbpool)
	service, err := tracker.NewService(store, files, wsHub, logger, tracker.Options{
		SessionSecret: cfg.Session.Secret,
		SessionTTL:    cfg.Session.TTL,
	})
	if err != nil {
		return fmt.Errorf("failed to create tracker service: %w", err)
	}
	go service.RunSessionJanitor(workerCtx, cfg.Session.CleanupInterval)

	limiter := ratelimit.NewIPRateLimiter(rate.Limit(cfg.RateLimit.RPS), cfg.RateLimit.Burst, logger)
	go limiter.RunCleanup(workerCtx, cfg.Session.CleanupInterval)

	server := api.NewServer(cfg, service, store, wsHub, limiter, logger)
	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           server.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", cfg.HTTP.Addr, "swagger", "/swagger/index.html")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		logger.Info("shutting down server")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	workerCancel()
	logger.Info("server exiting")
	return nil
}

func newStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger) (storage.Storage, error) {
	switch cfg.Storage.Backend {
	case config.StorageS3:
		s3Storage, err := storage.NewS3Storage(ctx, storage.S3Options{
			Bucket:    cfg.Storage.S3.Bucket,
			Region:    cfg.Storage.S3.Region,
			Endpoint:  cfg.Storage.S3.Endpoint,
			AccessKey: cfg.Storage.S3.AccessKey,
			SecretKey: cfg.Storage.S3.SecretKey,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize s3 storage: %w", err)
		}
		logger.Info("screenshots stored in s3", "bucket", cfg.Storage.S3.Bucket)
		return s3Storage, nil
	default:
		localStorage, err := storage.NewLocalStorage(cfg.Storage.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize local storage: %w", err)
		}
		logger.Info("screenshots stored on disk", "path", cfg.Storage.Path)
		return localStorage, nil
	}
}
