package handler

import (
	"encoding/json"
	"net/http"

	"github.com/blaisecz/sleep-data-service/internal/service"
	"github.com/blaisecz/sleep-data-service/pkg/problem"
)

type AnalyticsHandler struct {
	service service.AnalyticsService
}

func NewAnalyticsHandler(service service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

// Analyze handles GET /sleep/analytics
// @Summary Sleep analytics
// @Description Averages, trends, schedule consistency and duration variability over an inclusive date window. Metrics that cannot be computed are null and explained in trends.notes. Recommendations are attached when an OpenAI key is configured.
// @Tags analytics
// @Produce json
// @Param user_id query string true "User ID" example(user_1)
// @Param start_date query string true "First night" example(2024-01-01)
// @Param end_date query string true "Last night" example(2024-01-31)
// @Success 200 {object} domain.SleepAnalyticsResponse
// @Failure 404 {object} problem.Problem "No records in the window"
// @Failure 422 {object} problem.Problem "Missing or invalid query parameters"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /sleep/analytics [get]
func (h *AnalyticsHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	userID, fieldErrors := requireUserID(r)
	for _, key := range []string{"start_date", "end_date"} {
		if q.Get(key) == "" {
			fieldErrors = append(fieldErrors, problem.FieldError{Field: key, Message: "is required"})
		}
	}
	if len(fieldErrors) > 0 {
		problem.ValidationError("Invalid query parameters", fieldErrors).WithInstance(r.URL.Path).Write(w)
		return
	}

	response, err := h.service.Analyze(r.Context(), userID, q.Get("start_date"), q.Get("end_date"))
	if err != nil {
		writeServiceError(w, r, err, "Sleep data not found", "Failed to compute sleep analytics")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}
