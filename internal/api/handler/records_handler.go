package handler

import (
	"encoding/json"
	"net/http"

	"github.com/blaisecz/sleep-data-service/internal/api/validation"
	"github.com/blaisecz/sleep-data-service/internal/domain"
	"github.com/blaisecz/sleep-data-service/internal/service"
	"github.com/blaisecz/sleep-data-service/pkg/pagination"
	"github.com/blaisecz/sleep-data-service/pkg/problem"
	"github.com/go-chi/chi/v5"
)

type RecordsHandler struct {
	service service.SleepRecordService
}

func NewRecordsHandler(service service.SleepRecordService) *RecordsHandler {
	return &RecordsHandler{service: service}
}

// Create handles POST /sleep/records
// @Summary Store a sleep record
// @Description Store one night of sleep. date defaults to the calendar day of sleep_start and duration_minutes to the time in bed minus awake minutes.
// @Tags records
// @Accept json
// @Produce json
// @Param request body domain.CreateSleepRecordRequest true "Sleep record"
// @Success 201 {object} domain.SleepRecord "Record stored"
// @Failure 400 {object} problem.Problem "Invalid JSON body"
// @Failure 422 {object} problem.Problem "Invalid fields"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /sleep/records [post]
func (h *RecordsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateSleepRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.BadRequest("Invalid JSON body").WithInstance(r.URL.Path).Write(w)
		return
	}

	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		problem.ValidationError("Request body contains invalid fields", fieldErrors).WithInstance(r.URL.Path).Write(w)
		return
	}

	rec, err := h.service.Create(r.Context(), &req)
	if err != nil {
		writeServiceError(w, r, err, "Sleep record not found", "Failed to store sleep record")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(rec)
}

// Get handles GET /sleep/records/{recordId}
// @Summary Get a sleep record
// @Description Fetch one record, including its time series.
// @Tags records
// @Produce json
// @Param recordId path string true "Record ID"
// @Param user_id query string true "Owner of the record" example(user_1)
// @Success 200 {object} domain.SleepRecord
// @Failure 404 {object} problem.Problem "Record not found"
// @Failure 422 {object} problem.Problem "Missing user_id"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /sleep/records/{recordId} [get]
func (h *RecordsHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, fieldErrors := requireUserID(r)
	if fieldErrors != nil {
		problem.ValidationError("Invalid query parameters", fieldErrors).WithInstance(r.URL.Path).Write(w)
		return
	}

	rec, err := h.service.Get(r.Context(), userID, chi.URLParam(r, "recordId"))
	if err != nil {
		writeServiceError(w, r, err, "Sleep record not found", "Failed to get sleep record")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(rec)
}

// Update handles PUT /sleep/records/{recordId}
// @Summary Update a sleep record
// @Description Partially update a record. Omitted fields are left unchanged; a supplied time_series replaces the stored one.
// @Tags records
// @Accept json
// @Produce json
// @Param recordId path string true "Record ID"
// @Param user_id query string true "Owner of the record" example(user_1)
// @Param request body domain.UpdateSleepRecordRequest true "Fields to change"
// @Success 200 {object} domain.SleepRecord "Updated record"
// @Failure 400 {object} problem.Problem "Invalid JSON body"
// @Failure 404 {object} problem.Problem "Record not found"
// @Failure 422 {object} problem.Problem "Invalid fields"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /sleep/records/{recordId} [put]
func (h *RecordsHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, fieldErrors := requireUserID(r)
	if fieldErrors != nil {
		problem.ValidationError("Invalid query parameters", fieldErrors).WithInstance(r.URL.Path).Write(w)
		return
	}

	var req domain.UpdateSleepRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.BadRequest("Invalid JSON body").WithInstance(r.URL.Path).Write(w)
		return
	}

	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		problem.ValidationError("Request body contains invalid fields", fieldErrors).WithInstance(r.URL.Path).Write(w)
		return
	}

	rec, err := h.service.Update(r.Context(), userID, chi.URLParam(r, "recordId"), &req)
	if err != nil {
		writeServiceError(w, r, err, "Sleep record not found", "Failed to update sleep record")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(rec)
}

// Delete handles DELETE /sleep/records/{recordId}
// @Summary Delete a sleep record
// @Description Delete a record together with its time series.
// @Tags records
// @Param recordId path string true "Record ID"
// @Param user_id query string true "Owner of the record" example(user_1)
// @Success 204 "Record deleted"
// @Failure 404 {object} problem.Problem "Record not found"
// @Failure 422 {object} problem.Problem "Missing user_id"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /sleep/records/{recordId} [delete]
func (h *RecordsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, fieldErrors := requireUserID(r)
	if fieldErrors != nil {
		problem.ValidationError("Invalid query parameters", fieldErrors).WithInstance(r.URL.Path).Write(w)
		return
	}

	if err := h.service.Delete(r.Context(), userID, chi.URLParam(r, "recordId")); err != nil {
		writeServiceError(w, r, err, "Sleep record not found", "Failed to delete sleep record")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// List handles GET /sleep/data
// @Summary List sleep data
// @Description Fetch a user's records, newest first. Dates are inclusive and accept YYYY-MM-DD or RFC3339.
// @Tags records
// @Produce json
// @Param user_id query string true "User ID" example(user_1)
// @Param start_date query string false "First night" example(2024-01-01)
// @Param end_date query string false "Last night" example(2024-01-31)
// @Param limit query integer false "Maximum records" default(100) minimum(1) maximum(1000)
// @Param offset query integer false "Records to skip" default(0) minimum(0)
// @Success 200 {object} domain.SleepDataResponse
// @Failure 422 {object} problem.Problem "Invalid query parameters"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /sleep/data [get]
func (h *RecordsHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, fieldErrors := requireUserID(r)
	page, pageErrors := parsePage(r)
	fieldErrors = append(fieldErrors, pageErrors...)
	if len(fieldErrors) > 0 {
		problem.ValidationError("Invalid query parameters", fieldErrors).WithInstance(r.URL.Path).Write(w)
		return
	}

	q := r.URL.Query()
	response, err := h.service.List(r.Context(), userID, domain.SleepRecordFilter{
		StartDate: q.Get("start_date"),
		EndDate:   q.Get("end_date"),
		Limit:     page.Limit,
		Offset:    page.Offset,
	})
	if err != nil {
		writeServiceError(w, r, err, "Sleep data not found", "Failed to list sleep data")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// ListUsers handles GET /sleep/users
// @Summary List users
// @Description Users known to storage with their record counts, most records first.
// @Tags records
// @Produce json
// @Param limit query integer false "Maximum users" default(100) minimum(1) maximum(1000)
// @Param offset query integer false "Users to skip" default(0) minimum(0)
// @Success 200 {object} domain.UsersResponse
// @Failure 422 {object} problem.Problem "Invalid query parameters"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /sleep/users [get]
func (h *RecordsHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	page, fieldErrors := parsePage(r)
	if fieldErrors != nil {
		problem.ValidationError("Invalid query parameters", fieldErrors).WithInstance(r.URL.Path).Write(w)
		return
	}

	response, err := h.service.ListUsers(r.Context(), page.Limit, page.Offset)
	if err != nil {
		writeServiceError(w, r, err, "Users not found", "Failed to list users")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func parsePage(r *http.Request) (pagination.Page, []problem.FieldError) {
	q := r.URL.Query()
	var fieldErrors []problem.FieldError

	page, err := pagination.Parse(q.Get("limit"), "")
	if err != nil {
		fieldErrors = append(fieldErrors, problem.FieldError{Field: "limit", Message: "must be an integer"})
	}
	offset, err := pagination.Parse("", q.Get("offset"))
	if err != nil {
		fieldErrors = append(fieldErrors, problem.FieldError{Field: "offset", Message: "must be an integer"})
	}
	page.Offset = offset.Offset
	return page, fieldErrors
}
