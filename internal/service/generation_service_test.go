package service

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/blaisecz/sleep-data-service/internal/domain"
	"github.com/blaisecz/sleep-data-service/internal/generator"
)

func seededGenerator() *generator.Generator {
	return generator.New(generator.DefaultConfig(), generator.WithRandSource(func() generator.Rand {
		return rand.New(rand.NewSource(7))
	}))
}

func TestGenerationService_Generate(t *testing.T) {
	tests := []struct {
		name      string
		req       *domain.GenerateSleepDataRequest
		maxDays   int
		repoErr   error
		wantErr   error
		wantCount int
	}{
		{
			name:      "two weeks",
			req:       &domain.GenerateSleepDataRequest{UserID: "user_1", StartDate: "2024-01-01", EndDate: "2024-01-14"},
			maxDays:   366,
			wantCount: 14,
		},
		{
			name:      "same day",
			req:       &domain.GenerateSleepDataRequest{UserID: "user_1", StartDate: "2024-01-01", EndDate: "2024-01-01T08:00:00Z"},
			maxDays:   366,
			wantCount: 1,
		},
		{
			name:    "inverted range",
			req:     &domain.GenerateSleepDataRequest{UserID: "user_1", StartDate: "2024-01-10", EndDate: "2024-01-01"},
			maxDays: 366,
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:    "range too large",
			req:     &domain.GenerateSleepDataRequest{UserID: "user_1", StartDate: "2024-01-01", EndDate: "2024-03-01"},
			maxDays: 30,
			wantErr: domain.ErrRangeTooLarge,
		},
		{
			name:    "bad date",
			req:     &domain.GenerateSleepDataRequest{UserID: "user_1", StartDate: "yesterday", EndDate: "2024-03-01"},
			maxDays: 30,
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:    "storage failure",
			req:     &domain.GenerateSleepDataRequest{UserID: "user_1", StartDate: "2024-01-01", EndDate: "2024-01-02"},
			maxDays: 30,
			repoErr: domain.ErrStorage,
			wantErr: domain.ErrStorage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewMockSleepRecordRepository()
			repo.err = tt.repoErr
			svc := NewGenerationService(seededGenerator(), repo, tt.maxDays)

			resp, err := svc.Generate(context.Background(), tt.req)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if resp.Count != tt.wantCount || len(resp.Records) != tt.wantCount {
				t.Fatalf("expected %d records, got %d", tt.wantCount, resp.Count)
			}
			if got := len(repo.records["user_1"]); got != tt.wantCount {
				t.Fatalf("expected %d saved records, got %d", tt.wantCount, got)
			}
			if resp.Records[0].Date != "2024-01-01" {
				t.Fatalf("first record dated %s", resp.Records[0].Date)
			}
		})
	}
}

func TestGenerationService_PassesTrends(t *testing.T) {
	var got generator.Request
	gen := generatorFunc(func(req generator.Request) []domain.SleepRecord {
		got = req
		return nil
	})
	svc := NewGenerationService(gen, NewMockSleepRecordRepository(), 0)

	_, err := svc.Generate(context.Background(), &domain.GenerateSleepDataRequest{
		UserID:             "user_1",
		StartDate:          "2024-01-01",
		EndDate:            "2024-01-03",
		IncludeTimeSeries:  true,
		SleepQualityTrend:  domain.QualityImproving,
		SleepDurationTrend: domain.DurationDecreasing,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.IncludeTimeSeries || got.QualityTrend != domain.QualityImproving || got.DurationTrend != domain.DurationDecreasing {
		t.Fatalf("request not forwarded: %+v", got)
	}
	if got.StartDate.Format(domain.DateLayout) != "2024-01-01" || got.EndDate.Format(domain.DateLayout) != "2024-01-03" {
		t.Fatalf("dates not forwarded: %+v", got)
	}
}

type generatorFunc func(req generator.Request) []domain.SleepRecord

func (f generatorFunc) Generate(req generator.Request) []domain.SleepRecord { return f(req) }
