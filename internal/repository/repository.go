package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/blaisecz/sleep-data-service/internal/config"
	"github.com/blaisecz/sleep-data-service/internal/domain"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SleepRecordRepository persists sleep records together with their time
// series. Every operation is scoped to one user.
type SleepRecordRepository interface {
	// Save upserts records by ID and replaces each record's time series.
	Save(ctx context.Context, userID string, records []domain.SleepRecord) error
	GetByID(ctx context.Context, userID, recordID string) (*domain.SleepRecord, error)
	// List returns records newest date first, honouring the filter's
	// date bounds, limit and offset. Time series are included.
	List(ctx context.Context, userID string, filter domain.SleepRecordFilter) ([]domain.SleepRecord, error)
	// ListByDateRange returns every record with from <= date <= to in
	// ascending date order. Empty bounds are open.
	ListByDateRange(ctx context.Context, userID, from, to string) ([]domain.SleepRecord, error)
	Delete(ctx context.Context, userID, recordID string) error
	ListUsers(ctx context.Context, limit, offset int) ([]domain.UserSummary, error)
}

// New picks the backend named by cfg.StorageBackend. db is only used by
// the postgres backend and may be nil otherwise.
func New(cfg *config.Config, db *gorm.DB, log *zap.Logger) (SleepRecordRepository, error) {
	switch cfg.StorageBackend {
	case config.BackendPostgres:
		if db == nil {
			return nil, errors.New("postgres backend requires a database connection")
		}
		return NewPostgresRepository(db), nil
	case config.BackendFile:
		return NewFileRepository(cfg.DataDir, log)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}

func storageErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", domain.ErrStorage, op, err)
}
