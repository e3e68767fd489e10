package service

import (
	"context"
	"io"
	"time"

	"github.com/blaisecz/sleep-data-service/internal/domain"
	"github.com/blaisecz/sleep-data-service/internal/importer"
	"github.com/blaisecz/sleep-data-service/internal/repository"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// HealthExportImporter parses an export into records for one user.
type HealthExportImporter interface {
	Import(ctx context.Context, userID string, r io.Reader) (*importer.Result, error)
}

type ImportService interface {
	ImportAppleHealth(ctx context.Context, userID string, r io.Reader) (*domain.ImportResult, error)
}

type importService struct {
	importer HealthExportImporter
	repo     repository.SleepRecordRepository
	log      *zap.Logger
	now      func() time.Time
}

func NewImportService(im HealthExportImporter, repo repository.SleepRecordRepository, log *zap.Logger) ImportService {
	return &importService{importer: im, repo: repo, log: log, now: time.Now}
}

func (s *importService) ImportAppleHealth(ctx context.Context, userID string, r io.Reader) (*domain.ImportResult, error) {
	tracer := otel.Tracer("sleep-data-service/import")
	ctx, span := tracer.Start(ctx, "ImportService.ImportAppleHealth",
		trace.WithAttributes(attribute.String("user.id", userID)),
	)
	defer span.End()

	res, err := s.importer.Import(ctx, userID, r)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	if err := s.repo.Save(ctx, userID, res.Records); err != nil {
		span.RecordError(err)
		return nil, err
	}

	if res.Skipped > 0 {
		s.log.Warn("apple health import skipped entries",
			zap.String("user_id", userID),
			zap.Int("skipped", res.Skipped),
		)
	}
	span.SetAttributes(
		attribute.Int("records.count", len(res.Records)),
		attribute.Int("entries.skipped", res.Skipped),
	)

	return &domain.ImportResult{
		UserID:                  userID,
		RecordsImported:         len(res.Records),
		HeartRateDataPoints:     res.HeartRateReadings,
		RespiratoryDataPoints:   res.RespiratoryReadings,
		EnvironmentalDataPoints: res.EnvironmentalReadings,
		SkippedEntries:          res.Skipped,
		ImportTime:              s.now().UTC(),
	}, nil
}
