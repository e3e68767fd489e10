package handler

import (
	"encoding/json"
	"net/http"

	"github.com/blaisecz/sleep-data-service/internal/api/validation"
	"github.com/blaisecz/sleep-data-service/internal/domain"
	"github.com/blaisecz/sleep-data-service/internal/service"
	"github.com/blaisecz/sleep-data-service/pkg/problem"
)

type GenerateHandler struct {
	service service.GenerationService
}

func NewGenerateHandler(service service.GenerationService) *GenerateHandler {
	return &GenerateHandler{service: service}
}

// Generate handles POST /sleep/generate
// @Summary Generate synthetic sleep data
// @Description Synthesize one record per night between start_date and end_date (inclusive) and store them. Quality and duration trends shape the series.
// @Tags generate
// @Accept json
// @Produce json
// @Param request body domain.GenerateSleepDataRequest true "Generation parameters"
// @Success 201 {object} domain.SleepDataResponse "Generated records"
// @Failure 400 {object} problem.Problem "Invalid JSON body"
// @Failure 422 {object} problem.Problem "Invalid fields, inverted or oversized date range"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /sleep/generate [post]
func (h *GenerateHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req domain.GenerateSleepDataRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.BadRequest("Invalid JSON body").WithInstance(r.URL.Path).Write(w)
		return
	}

	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		problem.ValidationError("Request body contains invalid fields", fieldErrors).WithInstance(r.URL.Path).Write(w)
		return
	}

	response, err := h.service.Generate(r.Context(), &req)
	if err != nil {
		writeServiceError(w, r, err, "Sleep data not found", "Failed to generate sleep data")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(response)
}
