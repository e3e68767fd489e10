package service

import (
	"context"
	"time"

	"github.com/blaisecz/sleep-data-service/internal/analytics"
	"github.com/blaisecz/sleep-data-service/internal/domain"
	"github.com/blaisecz/sleep-data-service/internal/llm"
	"github.com/blaisecz/sleep-data-service/internal/repository"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const recommendationTimeout = 20 * time.Second

type AnalyticsService interface {
	// Analyze computes stats and trends over the user's records dated
	// within [startDate, endDate]. It returns domain.ErrNoData when the
	// window holds no records.
	Analyze(ctx context.Context, userID, startDate, endDate string) (*domain.SleepAnalyticsResponse, error)
}

type analyticsService struct {
	engine      *analytics.Engine
	repo        repository.SleepRecordRepository
	recommender llm.Recommender
	log         *zap.Logger
}

// NewAnalyticsService creates an AnalyticsService. recommender may be nil,
// in which case responses carry no recommendations.
func NewAnalyticsService(engine *analytics.Engine, repo repository.SleepRecordRepository, recommender llm.Recommender, log *zap.Logger) AnalyticsService {
	return &analyticsService{engine: engine, repo: repo, recommender: recommender, log: log}
}

func (s *analyticsService) Analyze(ctx context.Context, userID, startDate, endDate string) (*domain.SleepAnalyticsResponse, error) {
	tracer := otel.Tracer("sleep-data-service/analytics")
	ctx, span := tracer.Start(ctx, "AnalyticsService.Analyze",
		trace.WithAttributes(
			attribute.String("user.id", userID),
			attribute.String("range.start", startDate),
			attribute.String("range.end", endDate),
		),
	)
	defer span.End()

	start, end, err := normalizeBounds(startDate, endDate)
	if err != nil {
		return nil, err
	}
	window, err := dateRange(start, end)
	if err != nil {
		return nil, err
	}

	records, err := s.repo.ListByDateRange(ctx, userID, start, end)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if len(records) == 0 {
		return nil, domain.ErrNoData
	}

	stats, err := s.engine.ComputeStats(records, window)
	if err != nil {
		return nil, err
	}
	trends := s.engine.ComputeTrends(records)
	span.SetAttributes(
		attribute.Int("records.count", len(records)),
		attribute.String("trends.status", string(trends.Status)),
	)

	resp := &domain.SleepAnalyticsResponse{
		UserID:    userID,
		StartDate: start,
		EndDate:   end,
		Stats:     stats,
		Trends:    trends,
	}
	resp.Recommendations = s.recommend(ctx, resp)
	return resp, nil
}

// recommend asks the recommender for suggestions. Failures are logged and
// leave the response without recommendations.
func (s *analyticsService) recommend(ctx context.Context, resp *domain.SleepAnalyticsResponse) *domain.Recommendations {
	if s.recommender == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, recommendationTimeout)
	defer cancel()

	recs, err := s.recommender.Recommend(ctx, resp)
	if err != nil {
		s.log.Warn("recommendations unavailable", zap.String("user_id", resp.UserID), zap.Error(err))
		return nil
	}
	return recs
}

func dateRange(start, end string) (domain.DateRange, error) {
	from, err := domain.ParseDate(start)
	if err != nil {
		return domain.DateRange{}, err
	}
	to, err := domain.ParseDate(end)
	if err != nil {
		return domain.DateRange{}, err
	}
	return domain.DateRange{Start: from, End: to}, nil
}
