package handler

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"

	"github.com/blaisecz/sleep-data-service/internal/service"
	"github.com/blaisecz/sleep-data-service/pkg/problem"
)

type ImportHandler struct {
	service  service.ImportService
	maxBytes int64
}

func NewImportHandler(service service.ImportService, maxBytes int64) *ImportHandler {
	return &ImportHandler{service: service, maxBytes: maxBytes}
}

// AppleHealth handles POST /sleep/import/apple_health
// @Summary Import an Apple Health export
// @Description Parse an Apple Health export.xml, merge sleep analysis segments into nights and store them. Send the file as the multipart field "file" or as the raw request body.
// @Tags import
// @Accept multipart/form-data
// @Accept xml
// @Produce json
// @Param user_id query string true "Owner of the imported records" example(user_1)
// @Param file formData file false "Apple Health export.xml"
// @Success 201 {object} domain.ImportResult "Import summary"
// @Failure 400 {object} problem.Problem "Missing or malformed export"
// @Failure 413 {object} problem.Problem "Upload too large"
// @Failure 422 {object} problem.Problem "Missing user_id"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /sleep/import/apple_health [post]
func (h *ImportHandler) AppleHealth(w http.ResponseWriter, r *http.Request) {
	userID, fieldErrors := requireUserID(r)
	if fieldErrors != nil {
		problem.ValidationError("Invalid query parameters", fieldErrors).WithInstance(r.URL.Path).Write(w)
		return
	}

	if h.maxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	}

	body, closeBody, err := exportBody(r)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			problem.PayloadTooLarge("Upload exceeds the maximum accepted size").WithInstance(r.URL.Path).Write(w)
			return
		}
		problem.BadRequest(detail(err)).WithInstance(r.URL.Path).Write(w)
		return
	}
	defer closeBody()

	result, err := h.service.ImportAppleHealth(r.Context(), userID, body)
	if err != nil {
		writeServiceError(w, r, err, "Sleep data not found", "Failed to import Apple Health export")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(result)
}

// exportBody streams the "file" part of a multipart upload, or the raw body
// for any other content type.
func exportBody(r *http.Request) (io.Reader, func() error, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		return r.Body, r.Body.Close, nil
	}

	mr, err := r.MultipartReader()
	if err != nil {
		return nil, nil, err
	}
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			return nil, nil, errors.New("multipart field \"file\" is required")
		}
		if err != nil {
			return nil, nil, err
		}
		if part.FormName() == "file" {
			return part, part.Close, nil
		}
		part.Close()
	}
}
