package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/kailas-cloud/tablesearch/internal/config"
	"github.com/kailas-cloud/tablesearch/internal/esquery/table"
	logpkg "github.com/kailas-cloud/tablesearch/internal/logger"
	"github.com/kailas-cloud/tablesearch/internal/metrics"
	chiTransport "github.com/kailas-cloud/tablesearch/internal/transport/chi"
	searchuc "github.com/kailas-cloud/tablesearch/internal/usecase/search"
	"github.com/kailas-cloud/tablesearch/internal/version"
)

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the query compilation HTTP API",
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg, err := loadConfig(c, true)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			env := config.GetEnv()

			logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
			if err != nil {
				return fmt.Errorf("creating logger: %w", err)
			}
			defer func() { _ = logger.Sync() }()

			ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return serve(ctx, cfg, logger)
		},
	}
}

// newRouter wires the middleware chain and API routes.
func newRouter(cfg config.Config, logger *zap.Logger) http.Handler {
	builder := table.NewBuilder(table.WithAndFilterNames(cfg.Search.AndFilterNames...))
	searchSvc := searchuc.New(builder)

	server := chiTransport.NewServer(searchSvc, logger, chiTransport.Options{
		MaxBodyBytes: cfg.Search.MaxBodyBytes,
		DefaultLimit: cfg.Search.DefaultLimit,
		Version:      version.Version,
	})

	r := chi.NewRouter()
	r.Use(chiTransport.JSONRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(chiTransport.WideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Mount(r)
	return r
}

func serve(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	logger.Info("Starting tablesearch API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("and_filter_names", cfg.Search.AndFilterNames),
		zap.Bool("auth", cfg.Auth.Enabled()),
	)
	if !cfg.Auth.Enabled() {
		logger.Warn("No API keys configured, authentication is disabled")
	}

	// Explicit registration, no init().
	metrics.Register()

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      newRouter(cfg, logger),
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Info("Server stopped gracefully")
	return nil
}
