// Sleep Data Service API
//
// Generates, imports, stores and analyzes nightly sleep records.
//
//	@title			Sleep Data Service API
//	@version		1.0
//	@description	Generate, import, store and analyze nightly sleep records.
//
//	@BasePath	/
//
//	@tag.name			records
//	@tag.description	Sleep record storage and listing
//
//	@tag.name			generate
//	@tag.description	Synthetic sleep data
//
//	@tag.name			analytics
//	@tag.description	Statistics and trends
//
//	@tag.name			import
//	@tag.description	Apple Health export import
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

	"github.com/blaisecz/sleep-data-service/internal/analytics"
	"github.com/blaisecz/sleep-data-service/internal/api"
	"github.com/blaisecz/sleep-data-service/internal/api/handler"
	"github.com/blaisecz/sleep-data-service/internal/app"
	"github.com/blaisecz/sleep-data-service/internal/config"
	"github.com/blaisecz/sleep-data-service/internal/importer"
	"github.com/blaisecz/sleep-data-service/internal/langfuse"
	"github.com/blaisecz/sleep-data-service/internal/llm"
	"github.com/blaisecz/sleep-data-service/internal/logging"
	"github.com/blaisecz/sleep-data-service/internal/seed"
	"github.com/blaisecz/sleep-data-service/internal/service"
	"github.com/blaisecz/sleep-data-service/internal/telemetry"
	"go.uber.org/zap"
)

const version = "1.0.0"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg := config.Load()

	log, err := logging.New(cfg.IsProduction(), cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer log.Sync()

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := telemetry.InitTracer(ctx, cfg, version)
	if err != nil {
		return fmt.Errorf("failed to init tracing: %w", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracer(sctx); err != nil {
			log.Warn("tracer shutdown failed", zap.Error(err))
		}
	}()

	storage, err := app.OpenStorage(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to open %s storage: %w", cfg.StorageBackend, err)
	}
	defer storage.Close()

	// Initialize services
	recordService := service.NewSleepRecordService(storage.Repo)
	generationService := service.NewGenerationService(app.NewGenerator(cfg), storage.Repo, cfg.MaxGenerateDays)
	importService := service.NewImportService(importer.NewAppleHealthImporter(importer.DefaultConfig()), storage.Repo, log)

	lf := langfuse.NewClient(langfuse.Config{
		BaseURL:     cfg.LangfuseBaseURL,
		PublicKey:   cfg.LangfusePublicKey,
		SecretKey:   cfg.LangfuseSecretKey,
		Environment: cfg.LangfuseEnv,
	}, log)
	defer func() {
		fctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := lf.Flush(fctx); err != nil {
			log.Warn("langfuse flush incomplete", zap.Error(err))
		}
	}()

	// OpenAI recommendations are optional
	var recommender llm.Recommender
	if client := llm.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIRecommendationsModel); client != nil {
		prompt, err := langfuse.LoadPrompt(ctx, langfuse.PromptLoaderConfig{
			BaseURL:     cfg.LangfuseBaseURL,
			PublicKey:   cfg.LangfusePublicKey,
			SecretKey:   cfg.LangfuseSecretKey,
			PromptName:  cfg.LangfusePromptName,
			PromptLabel: cfg.LangfusePromptLabel,
			CachePath:   cfg.LangfusePromptCachePath,
			Fallback:    llm.DefaultSystemPrompt,
		}, log)
		if err != nil {
			return fmt.Errorf("failed to load recommendations prompt: %w", err)
		}
		client.WithSystemPrompt(prompt)
		recommender = llm.NewTracedRecommender(client, lf, client.Model(), log)
	} else {
		log.Info("OpenAI API key not configured, analytics will not include recommendations")
	}
	analyticsService := service.NewAnalyticsService(analytics.New(analytics.DefaultConfig()), storage.Repo, recommender, log)

	if cfg.Seed {
		log.Info("seeding sample data (SEED=true)")
		if err := seed.Run(ctx, generationService, storage.Repo, log, time.Now()); err != nil {
			return fmt.Errorf("failed to seed: %w", err)
		}
	}

	// Setup router
	router := api.NewRouter(
		handler.NewHealthHandler(storage.Ready, log),
		handler.NewRecordsHandler(recordService),
		handler.NewGenerateHandler(generationService),
		handler.NewAnalyticsHandler(analyticsService),
		handler.NewImportHandler(importService, cfg.MaxImportBytes()),
		log,
	)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server",
			zap.String("addr", srv.Addr),
			zap.String("storage", cfg.StorageBackend),
			zap.String("env", cfg.AppEnv),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
		log.Info("shutting down")
	}

	sctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(sctx)
}
