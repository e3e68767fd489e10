package service

import (
	"context"
	"fmt"

	"github.com/blaisecz/sleep-data-service/internal/domain"
	"github.com/blaisecz/sleep-data-service/internal/generator"
	"github.com/blaisecz/sleep-data-service/internal/repository"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// RecordGenerator synthesizes sleep records for a date span.
type RecordGenerator interface {
	Generate(req generator.Request) []domain.SleepRecord
}

type GenerationService interface {
	// Generate synthesizes one record per day in the request's range and
	// persists them for the user.
	Generate(ctx context.Context, req *domain.GenerateSleepDataRequest) (*domain.SleepDataResponse, error)
}

type generationService struct {
	gen     RecordGenerator
	repo    repository.SleepRecordRepository
	maxDays int
}

func NewGenerationService(gen RecordGenerator, repo repository.SleepRecordRepository, maxDays int) GenerationService {
	return &generationService{gen: gen, repo: repo, maxDays: maxDays}
}

func (s *generationService) Generate(ctx context.Context, req *domain.GenerateSleepDataRequest) (*domain.SleepDataResponse, error) {
	tracer := otel.Tracer("sleep-data-service/generation")
	ctx, span := tracer.Start(ctx, "GenerationService.Generate",
		trace.WithAttributes(
			attribute.String("user.id", req.UserID),
			attribute.String("range.start", req.StartDate),
			attribute.String("range.end", req.EndDate),
			attribute.Bool("include_time_series", req.IncludeTimeSeries),
		),
	)
	defer span.End()

	start, err := domain.ParseDate(req.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := domain.ParseDate(req.EndDate)
	if err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end_date must not be before start_date", domain.ErrInvalidInput)
	}
	if days := generator.DayCount(start, end); s.maxDays > 0 && days > s.maxDays {
		return nil, fmt.Errorf("%w: %d days requested, at most %d allowed", domain.ErrRangeTooLarge, days, s.maxDays)
	}

	records := s.gen.Generate(generator.Request{
		UserID:            req.UserID,
		StartDate:         start,
		EndDate:           end,
		IncludeTimeSeries: req.IncludeTimeSeries,
		QualityTrend:      req.SleepQualityTrend,
		DurationTrend:     req.SleepDurationTrend,
	})

	if err := s.repo.Save(ctx, req.UserID, records); err != nil {
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("records.count", len(records)))
	return &domain.SleepDataResponse{Records: records, Count: len(records)}, nil
}
