package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/blaisecz/sleep-data-service/internal/domain"
	"github.com/blaisecz/sleep-data-service/internal/importer"
	"github.com/blaisecz/sleep-data-service/pkg/problem"
)

// writeServiceError maps a service error onto a problem response. fallback
// is the detail used for unexpected failures.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, notFound, fallback string) {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		problem.PayloadTooLarge("Upload exceeds the maximum accepted size").WithInstance(r.URL.Path).Write(w)
	case errors.Is(err, domain.ErrNotFound):
		problem.NotFound(notFound).WithInstance(r.URL.Path).Write(w)
	case errors.Is(err, domain.ErrNoData):
		problem.NoData(domain.ErrNoData.Error()).WithInstance(r.URL.Path).Write(w)
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrRangeTooLarge):
		problem.ValidationError(detail(err), nil).WithInstance(r.URL.Path).Write(w)
	case errors.Is(err, importer.ErrMalformedExport):
		problem.BadRequest(detail(err)).WithInstance(r.URL.Path).Write(w)
	default:
		problem.InternalError(fallback).WithInstance(r.URL.Path).Write(w)
	}
}

// detail capitalises the first letter of an error message for display.
func detail(err error) string {
	msg := err.Error()
	if msg == "" {
		return msg
	}
	return strings.ToUpper(msg[:1]) + msg[1:]
}

// requireUserID reads the user_id query parameter.
func requireUserID(r *http.Request) (string, []problem.FieldError) {
	userID := strings.TrimSpace(r.URL.Query().Get("user_id"))
	if userID == "" {
		return "", []problem.FieldError{{Field: "user_id", Message: "is required"}}
	}
	return userID, nil
}
