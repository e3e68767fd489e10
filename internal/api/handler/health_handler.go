package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/blaisecz/sleep-data-service/pkg/problem"
	"go.uber.org/zap"
)

// ReadinessCheck reports whether storage can serve requests.
type ReadinessCheck func(ctx context.Context) error

type HealthHandler struct {
	ready ReadinessCheck
	log   *zap.Logger
}

func NewHealthHandler(ready ReadinessCheck, log *zap.Logger) *HealthHandler {
	return &HealthHandler{ready: ready, log: log}
}

// Root handles GET /
// @Summary Service banner
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router / [get]
func (h *HealthHandler) Root(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "Sleep Data Microservice is running"})
}

// Health handles GET /health
// @Summary Liveness check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
}

// Ready handles GET /health/ready
// @Summary Readiness check
// @Description Checks that the configured storage backend is reachable.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} problem.Problem "Storage unavailable"
// @Router /health/ready [get]
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	if h.ready != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.ready(ctx); err != nil {
			h.log.Warn("readiness check failed", zap.Error(err))
			problem.ServiceUnavailable("Storage is not reachable").WithInstance(r.URL.Path).Write(w)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ready"})
}
