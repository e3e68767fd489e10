package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/blaisecz/sleep-data-service/internal/analytics"
	"github.com/blaisecz/sleep-data-service/internal/domain"
	"go.uber.org/zap"
)

func seedNights(repo *MockSleepRecordRepository, userID string, dates ...string) {
	if repo.records[userID] == nil {
		repo.records[userID] = make(map[string]domain.SleepRecord)
	}
	for i, date := range dates {
		day, _ := time.Parse(domain.DateLayout, date)
		start := day.Add(22*time.Hour + time.Duration(i)*time.Minute)
		repo.records[userID][date] = domain.SleepRecord{
			ID:              date,
			UserID:          userID,
			Date:            date,
			SleepStart:      start,
			SleepEnd:        start.Add(8 * time.Hour),
			DurationMinutes: 420 + 10*i,
			SleepQuality:    domain.IntPtr(70 + i),
		}
	}
}

func TestAnalyticsService_Analyze(t *testing.T) {
	repo := NewMockSleepRecordRepository()
	seedNights(repo, "user_1", "2024-01-01", "2024-01-02", "2024-01-03", "2024-02-01")
	svc := NewAnalyticsService(analytics.New(analytics.DefaultConfig()), repo, nil, zap.NewNop())

	resp, err := svc.Analyze(context.Background(), "user_1", "2024-01-01", "2024-01-10T00:00:00Z")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StartDate != "2024-01-01" || resp.EndDate != "2024-01-10" {
		t.Fatalf("dates not normalized: %s..%s", resp.StartDate, resp.EndDate)
	}
	if resp.Stats.TotalRecords != 3 || resp.Stats.DateRangeDays != 10 {
		t.Fatalf("unexpected stats: %+v", resp.Stats)
	}
	if resp.Stats.AverageDurationMinutes != 430 {
		t.Fatalf("expected average 430, got %v", resp.Stats.AverageDurationMinutes)
	}
	if resp.Trends.Status != domain.TrendStatusOK || resp.Trends.DurationTrend.Direction != domain.TrendIncreasing {
		t.Fatalf("unexpected trends: %+v", resp.Trends)
	}
	if resp.Recommendations != nil {
		t.Fatal("no recommender configured, expected no recommendations")
	}
}

func TestAnalyticsService_Errors(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
		repoErr    error
		wantErr    error
	}{
		{name: "no data in window", start: "2023-01-01", end: "2023-01-31", wantErr: domain.ErrNoData},
		{name: "inverted window", start: "2024-01-31", end: "2024-01-01", wantErr: domain.ErrInvalidInput},
		{name: "bad date", start: "Jan 1", end: "2024-01-01", wantErr: domain.ErrInvalidInput},
		{name: "storage failure", start: "2024-01-01", end: "2024-01-31", repoErr: domain.ErrStorage, wantErr: domain.ErrStorage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewMockSleepRecordRepository()
			seedNights(repo, "user_1", "2024-01-01", "2024-01-02")
			repo.err = tt.repoErr
			svc := NewAnalyticsService(analytics.New(analytics.DefaultConfig()), repo, nil, zap.NewNop())

			_, err := svc.Analyze(context.Background(), "user_1", tt.start, tt.end)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestAnalyticsService_Recommendations(t *testing.T) {
	repo := NewMockSleepRecordRepository()
	seedNights(repo, "user_1", "2024-01-01")

	t.Run("attached on success", func(t *testing.T) {
		rec := &MockRecommender{recs: &domain.Recommendations{Summary: "ok", Suggestions: []string{"a"}}}
		svc := NewAnalyticsService(analytics.New(analytics.DefaultConfig()), repo, rec, zap.NewNop())

		resp, err := svc.Analyze(context.Background(), "user_1", "2024-01-01", "2024-01-01")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.Recommendations == nil || resp.Recommendations.Summary != "ok" {
			t.Fatalf("expected recommendations, got %+v", resp.Recommendations)
		}
		if resp.Trends.Status != domain.TrendStatusInsufficientData {
			t.Fatalf("one record should give insufficient_data, got %s", resp.Trends.Status)
		}
	})

	t.Run("omitted on failure", func(t *testing.T) {
		rec := &MockRecommender{err: errors.New("rate limited")}
		svc := NewAnalyticsService(analytics.New(analytics.DefaultConfig()), repo, rec, zap.NewNop())

		resp, err := svc.Analyze(context.Background(), "user_1", "2024-01-01", "2024-01-01")
		if err != nil {
			t.Fatalf("recommendation failure must not fail analytics: %v", err)
		}
		if resp.Recommendations != nil || rec.calls != 1 {
			t.Fatalf("expected one call and no recommendations, got %+v (calls=%d)", resp.Recommendations, rec.calls)
		}
	})
}
