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

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/vecprep/internal/config"
	logpkg "github.com/kailas-cloud/vecprep/internal/logger"
	"github.com/kailas-cloud/vecprep/internal/metrics"
	"github.com/kailas-cloud/vecprep/internal/qdrantconv"
	chiTransport "github.com/kailas-cloud/vecprep/internal/transport/chi"
	healthuc "github.com/kailas-cloud/vecprep/internal/usecase/health"
	prepareuc "github.com/kailas-cloud/vecprep/internal/usecase/prepare"
	"github.com/kailas-cloud/vecprep/internal/version"
)

func newServeCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the request preparation HTTP service",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(configPath)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "Config file path (default: config/$ENV.yaml)")

	return cmd
}

func runServe(configPath string) error {
	// Load configuration based on ENV
	env := config.GetEnv()

	var (
		cfg config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadFile(configPath)
	} else {
		cfg, err = config.Load(env)
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting vecprep API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
	)

	metrics.RegisterPrepareMetrics()

	conv := qdrantconv.New(
		qdrantconv.WithDateField(cfg.Qdrant.DateField),
		qdrantconv.WithWait(cfg.Qdrant.Wait),
	)
	prepareSvc := prepareuc.New(conv)
	healthSvc := healthuc.New(map[string]healthuc.Checker{
		"builders":  prepareSvc,
		"converter": conv,
	})
	logger.Info("Prepare services ready",
		zap.String("qdrant_date_field", conv.DateField()),
		zap.Strings("health_components", healthSvc.Components()),
	)

	server := chiTransport.NewServer(prepareSvc, healthSvc, logger, cfg.Limits.MaxBodyBytes)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case err := <-serveErr:
		logger.Error("HTTP server error", zap.Error(err))
		return fmt.Errorf("http server: %w", err)
	case <-quit:
		logger.Info("Received shutdown signal")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
	return nil
}
