package main

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	apihttp "github.com/artem13815/atlas/api/http"
	"github.com/artem13815/atlas/api/http/handlers"
	"github.com/artem13815/atlas/pkg/analysis"
	"github.com/artem13815/atlas/pkg/config"
	"github.com/artem13815/atlas/pkg/health"
	"github.com/artem13815/atlas/pkg/health/checkers"
	"github.com/artem13815/atlas/pkg/llm/gemini"
	"github.com/artem13815/atlas/pkg/logger"
	"github.com/artem13815/atlas/pkg/metrics"
	"github.com/artem13815/atlas/pkg/repository/memory"
	pgrepo "github.com/artem13815/atlas/pkg/repository/postgres"
	"github.com/artem13815/atlas/pkg/status"
	"github.com/artem13815/atlas/pkg/storage/postgres"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(loadCfg func() config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), loadCfg())
		},
	}
}

func newGeminiClient(cfg config.Config, log *zap.Logger, m *metrics.Collector) *gemini.Client {
	return gemini.New(
		cfg.GeminiBaseURL,
		cfg.GeminiModel,
		cfg.GeminiFallbackModel,
		gemini.WithTimeout(cfg.GeminiTimeout),
		gemini.WithLogger(log.Named("gemini")),
		gemini.WithMetrics(m),
	)
}

func runServe(ctx context.Context, cfg config.Config) error {
	log := logger.New(cfg.Debug)
	defer func() { _ = log.Sync() }()

	collector := metrics.New(prometheus.NewRegistry())

	// Wire dependencies (Clean Architecture)
	analysisUC := analysis.NewService(newGeminiClient(cfg, log, collector), log, collector)

	readinessCheckers := []health.Checker{checkers.NewEnvChecker(gemini.APIKeyEnv)}
	var statusRepo status.Repository
	if cfg.DatabaseURL != "" {
		pool, err := postgres.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("postgres connect: %w", err)
		}
		defer pool.Close()
		if err := postgres.Migrate(ctx, pool); err != nil {
			return err
		}
		statusRepo = pgrepo.NewStatusRepository(pool)
		readinessCheckers = append(readinessCheckers, checkers.NewPostgresChecker(pool))
	} else {
		log.Warn("DATABASE_URL is not set, status checks are kept in memory")
		statusRepo = memory.NewStatusRepository()
	}

	app := apihttp.NewApp(cfg.CORSOrigins, log)
	apihttp.Register(app, apihttp.Handlers{
		Analysis: handlers.NewAnalysisHandler(analysisUC),
		Status:   handlers.NewStatusHandler(status.NewService(statusRepo)),
		Health:   handlers.NewHealthHandler(health.NewService(readinessCheckers...)),
		Metrics:  collector,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listen(":" + cfg.Port)
	}()
	log.Info("HTTP server listening",
		zap.String("port", cfg.Port),
		zap.String("model", cfg.GeminiModel),
		zap.String("fallback_model", cfg.GeminiFallbackModel),
	)

	select {
	case err := <-errCh:
		return fmt.Errorf("server stopped: %w", err)
	case <-ctx.Done():
		log.Info("shutting down")
		return app.ShutdownWithTimeout(shutdownTimeout)
	}
}
