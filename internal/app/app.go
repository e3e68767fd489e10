// Package app wires configuration into the storage and generation
// components shared by the API server and the seed command.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/blaisecz/sleep-data-service/internal/config"
	"github.com/blaisecz/sleep-data-service/internal/generator"
	"github.com/blaisecz/sleep-data-service/internal/repository"
	"go.uber.org/zap"
)

// Storage is an opened repository plus its lifecycle hooks.
type Storage struct {
	Repo  repository.SleepRecordRepository
	Ready func(ctx context.Context) error
	Close func()
}

type pinger interface {
	Ping(ctx context.Context) error
}

// OpenStorage connects the backend selected by cfg, migrating the schema
// when it is postgres.
func OpenStorage(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Storage, error) {
	if cfg.StorageBackend != config.BackendPostgres {
		repo, err := repository.New(cfg, nil, log)
		if err != nil {
			return nil, err
		}
		s := &Storage{Repo: repo, Close: func() {}}
		if p, ok := repo.(pinger); ok {
			s.Ready = p.Ping
		}
		return s, nil
	}

	db, pool, err := config.NewDatabase(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	if err := repository.Migrate(db); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	log.Info("database migration completed")

	repo, err := repository.New(cfg, db, log)
	if err != nil {
		pool.Close()
		return nil, err
	}
	return &Storage{Repo: repo, Ready: pool.Ping, Close: pool.Close}, nil
}

// NewGenerator applies the configured time-series settings to the default
// generation model.
func NewGenerator(cfg *config.Config) *generator.Generator {
	gc := generator.DefaultConfig()
	gc.SampleInterval = time.Duration(cfg.TimeSeriesIntervalMinutes) * time.Minute
	gc.CycleLength = time.Duration(cfg.SleepCycleMinutes) * time.Minute
	gc.AwakeProbability = cfg.AwakeProbability
	return generator.New(gc)
}
