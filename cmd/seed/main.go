package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/blaisecz/sleep-data-service/internal/app"
	"github.com/blaisecz/sleep-data-service/internal/config"
	"github.com/blaisecz/sleep-data-service/internal/logging"
	"github.com/blaisecz/sleep-data-service/internal/seed"
	"github.com/blaisecz/sleep-data-service/internal/service"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	log, err := logging.New(cfg.IsProduction(), cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid configuration", zap.Error(err))
	}

	ctx := context.Background()
	storage, err := app.OpenStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal("failed to open storage", zap.Error(err))
	}
	defer storage.Close()

	gen := service.NewGenerationService(app.NewGenerator(cfg), storage.Repo, cfg.MaxGenerateDays)
	if err := seed.Run(ctx, gen, storage.Repo, log, time.Now()); err != nil {
		log.Fatal("seed failed", zap.Error(err))
	}

	fmt.Println("\nSample user IDs for testing:")
	for _, p := range seed.Profiles {
		fmt.Printf("  %s (quality %s, duration %s)\n", p.UserID, p.QualityTrend, p.DurationTrend)
	}
}
