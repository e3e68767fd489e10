package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/blaisecz/sleep-data-service/internal/domain"
	"github.com/blaisecz/sleep-data-service/internal/repository"
	"github.com/blaisecz/sleep-data-service/internal/service"
	"go.uber.org/zap"
)

const seededDays = 40

// Profile is a sample user and the trends their generated nights follow.
type Profile struct {
	UserID            string
	QualityTrend      domain.QualityTrend
	DurationTrend     domain.DurationTrend
	IncludeTimeSeries bool
}

// Profiles are the sample users created by Run.
var Profiles = []Profile{
	{UserID: "user_1", QualityTrend: domain.QualityImproving, DurationTrend: domain.DurationIncreasing, IncludeTimeSeries: true},
	{UserID: "user_2", QualityTrend: domain.QualityDeclining, DurationTrend: domain.DurationDecreasing},
	{UserID: "user_3", QualityTrend: domain.QualityStable, DurationTrend: domain.DurationStable},
	{UserID: "user_4", QualityTrend: domain.QualityRandom, DurationTrend: domain.DurationRandom},
}

// Run generates the last seededDays nights up to today for every profile.
// Users that already have records are left alone, so it is safe to call
// multiple times.
func Run(ctx context.Context, gen service.GenerationService, repo repository.SleepRecordRepository, log *zap.Logger, today time.Time) error {
	end := today.UTC()
	start := end.AddDate(0, 0, -(seededDays - 1))

	for _, p := range Profiles {
		existing, err := repo.List(ctx, p.UserID, domain.SleepRecordFilter{Limit: 1})
		if err != nil {
			return fmt.Errorf("failed to check user %s: %w", p.UserID, err)
		}
		if len(existing) > 0 {
			log.Info("seed user already has data, skipping", zap.String("user_id", p.UserID))
			continue
		}

		resp, err := gen.Generate(ctx, &domain.GenerateSleepDataRequest{
			UserID:             p.UserID,
			StartDate:          start.Format(domain.DateLayout),
			EndDate:            end.Format(domain.DateLayout),
			IncludeTimeSeries:  p.IncludeTimeSeries,
			SleepQualityTrend:  p.QualityTrend,
			SleepDurationTrend: p.DurationTrend,
		})
		if err != nil {
			return fmt.Errorf("failed to seed user %s: %w", p.UserID, err)
		}
		log.Info("seeded user",
			zap.String("user_id", p.UserID),
			zap.Int("records", resp.Count),
			zap.String("quality_trend", string(p.QualityTrend)),
			zap.String("duration_trend", string(p.DurationTrend)),
		)
	}

	log.Info("seed completed")
	return nil
}
