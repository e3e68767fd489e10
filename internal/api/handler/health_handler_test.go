package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestHealthHandler(t *testing.T) {
	ok := func(ctx context.Context) error { return nil }
	down := func(ctx context.Context) error { return errors.New("connection refused") }

	tests := []struct {
		name           string
		ready          ReadinessCheck
		call           func(h *HealthHandler) http.HandlerFunc
		wantStatusCode int
		wantBody       string
	}{
		{
			name:           "root banner",
			call:           func(h *HealthHandler) http.HandlerFunc { return h.Root },
			wantStatusCode: http.StatusOK,
			wantBody:       `{"message":"Sleep Data Microservice is running"}`,
		},
		{
			name:           "liveness",
			ready:          down,
			call:           func(h *HealthHandler) http.HandlerFunc { return h.Health },
			wantStatusCode: http.StatusOK,
			wantBody:       `{"status":"healthy"}`,
		},
		{
			name:           "ready",
			ready:          ok,
			call:           func(h *HealthHandler) http.HandlerFunc { return h.Ready },
			wantStatusCode: http.StatusOK,
			wantBody:       `{"status":"ready"}`,
		},
		{
			name:           "storage down",
			ready:          down,
			call:           func(h *HealthHandler) http.HandlerFunc { return h.Ready },
			wantStatusCode: http.StatusServiceUnavailable,
			wantBody:       `"status":503`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler(tt.ready, zap.NewNop())

			rr := httptest.NewRecorder()
			tt.call(h)(rr, httptest.NewRequest(http.MethodGet, "/", nil))

			if rr.Code != tt.wantStatusCode {
				t.Fatalf("status = %v, want %v", rr.Code, tt.wantStatusCode)
			}
			if !strings.Contains(rr.Body.String(), tt.wantBody) {
				t.Fatalf("body %q does not contain %q", rr.Body.String(), tt.wantBody)
			}
		})
	}
}
