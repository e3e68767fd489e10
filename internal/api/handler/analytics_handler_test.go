package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/blaisecz/sleep-data-service/internal/domain"
)

func TestAnalyticsHandler_Analyze(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		serviceErr     error
		wantStatusCode int
		wantProblem    string
		wantFields     int
	}{
		{
			name:           "ok",
			query:          "?user_id=user_1&start_date=2024-01-01&end_date=2024-01-14",
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "missing parameters",
			query:          "?user_id=user_1",
			wantStatusCode: http.StatusUnprocessableEntity,
			wantFields:     2,
		},
		{
			name:           "nothing given",
			query:          "",
			wantStatusCode: http.StatusUnprocessableEntity,
			wantFields:     3,
		},
		{
			name:           "no data",
			query:          "?user_id=user_9&start_date=2024-01-01&end_date=2024-01-14",
			serviceErr:     domain.ErrNoData,
			wantStatusCode: http.StatusNotFound,
			wantProblem:    "no-data",
		},
		{
			name:           "bad date",
			query:          "?user_id=user_1&start_date=yesterday&end_date=2024-01-14",
			serviceErr:     domain.ErrInvalidInput,
			wantStatusCode: http.StatusUnprocessableEntity,
			wantProblem:    "validation-error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockAnalyticsService{
				analyzeFunc: func(ctx context.Context, userID, startDate, endDate string) (*domain.SleepAnalyticsResponse, error) {
					if tt.serviceErr != nil {
						return nil, tt.serviceErr
					}
					return &domain.SleepAnalyticsResponse{
						UserID:    userID,
						StartDate: startDate,
						EndDate:   endDate,
						Stats:     domain.SleepStats{TotalRecords: 14, DateRangeDays: 14, AverageDurationMinutes: 431.5},
						Trends:    domain.SleepTrends{Status: domain.TrendStatusOK},
					}, nil
				},
			}
			handler := NewAnalyticsHandler(svc)

			rr := httptest.NewRecorder()
			handler.Analyze(rr, httptest.NewRequest(http.MethodGet, "/sleep/analytics"+tt.query, nil))

			if rr.Code != tt.wantStatusCode {
				t.Fatalf("Analyze() status = %v, want %v, body: %s", rr.Code, tt.wantStatusCode, rr.Body.String())
			}
			if rr.Code == http.StatusOK {
				var resp domain.SleepAnalyticsResponse
				if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
					t.Fatalf("failed to decode response: %v", err)
				}
				if resp.Stats.TotalRecords != 14 || resp.Trends.Status != domain.TrendStatusOK {
					t.Fatalf("unexpected response: %+v", resp)
				}
				return
			}

			p := decodeProblem(t, rr)
			if tt.wantFields > 0 && len(p.Errors) != tt.wantFields {
				t.Fatalf("expected %d field errors, got %+v", tt.wantFields, p.Errors)
			}
			if tt.wantProblem != "" && p.Type != "http://localhost:8001/problems/"+tt.wantProblem {
				t.Fatalf("problem type = %q, want %s", p.Type, tt.wantProblem)
			}
		})
	}
}
