package handler

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/blaisecz/sleep-data-service/internal/domain"
	"github.com/blaisecz/sleep-data-service/internal/importer"
)

const exportXML = `<?xml version="1.0" encoding="UTF-8"?><HealthData locale="en_US"></HealthData>`

func multipartBody(t *testing.T, field, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("note", "ignored"); err != nil {
		t.Fatal(err)
	}
	fw, err := mw.CreateFormFile(field, "export.xml")
	if err != nil {
		t.Fatal(err)
	}
	io.WriteString(fw, content)
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}
	return &buf, mw.FormDataContentType()
}

// readingImporter drains the upload the way the real importer does.
func readingImporter(got *string, err error) *MockImportService {
	return &MockImportService{
		importFunc: func(ctx context.Context, userID string, r io.Reader) (*domain.ImportResult, error) {
			b, readErr := io.ReadAll(r)
			if readErr != nil {
				return nil, fmt.Errorf("%w: %w", importer.ErrMalformedExport, readErr)
			}
			*got = string(b)
			if err != nil {
				return nil, err
			}
			return &domain.ImportResult{UserID: userID, RecordsImported: 3}, nil
		},
	}
}

func TestImportHandler_AppleHealth(t *testing.T) {
	t.Run("multipart upload", func(t *testing.T) {
		var got string
		handler := NewImportHandler(readingImporter(&got, nil), 1<<20)

		body, contentType := multipartBody(t, "file", exportXML)
		req := httptest.NewRequest(http.MethodPost, "/sleep/import/apple_health?user_id=user_1", body)
		req.Header.Set("Content-Type", contentType)
		rr := httptest.NewRecorder()

		handler.AppleHealth(rr, req)

		if rr.Code != http.StatusCreated {
			t.Fatalf("status = %v, body: %s", rr.Code, rr.Body.String())
		}
		if got != exportXML {
			t.Fatalf("service received %q", got)
		}
		if !strings.Contains(rr.Body.String(), `"records_imported":3`) {
			t.Fatalf("unexpected body: %s", rr.Body.String())
		}
	})

	t.Run("raw body", func(t *testing.T) {
		var got string
		handler := NewImportHandler(readingImporter(&got, nil), 1<<20)

		req := httptest.NewRequest(http.MethodPost, "/sleep/import/apple_health?user_id=user_1", strings.NewReader(exportXML))
		req.Header.Set("Content-Type", "application/xml")
		rr := httptest.NewRecorder()

		handler.AppleHealth(rr, req)

		if rr.Code != http.StatusCreated || got != exportXML {
			t.Fatalf("status = %v, received %q", rr.Code, got)
		}
	})

	tests := []struct {
		name           string
		url            string
		field          string
		content        string
		maxBytes       int64
		serviceErr     error
		wantStatusCode int
	}{
		{
			name:           "missing user_id",
			url:            "/sleep/import/apple_health",
			field:          "file",
			content:        exportXML,
			wantStatusCode: http.StatusUnprocessableEntity,
		},
		{
			name:           "no file part",
			url:            "/sleep/import/apple_health?user_id=user_1",
			field:          "upload",
			content:        exportXML,
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "malformed export",
			url:            "/sleep/import/apple_health?user_id=user_1",
			field:          "file",
			content:        "<HealthData>",
			serviceErr:     fmt.Errorf("%w: unexpected EOF", importer.ErrMalformedExport),
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "too large",
			url:            "/sleep/import/apple_health?user_id=user_1",
			field:          "file",
			content:        strings.Repeat("x", 4096),
			maxBytes:       1024,
			wantStatusCode: http.StatusRequestEntityTooLarge,
		},
		{
			name:           "storage failure",
			url:            "/sleep/import/apple_health?user_id=user_1",
			field:          "file",
			content:        exportXML,
			serviceErr:     domain.ErrStorage,
			wantStatusCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			maxBytes := tt.maxBytes
			if maxBytes == 0 {
				maxBytes = 1 << 20
			}
			handler := NewImportHandler(readingImporter(&got, tt.serviceErr), maxBytes)

			body, contentType := multipartBody(t, tt.field, tt.content)
			req := httptest.NewRequest(http.MethodPost, tt.url, body)
			req.Header.Set("Content-Type", contentType)
			rr := httptest.NewRecorder()

			handler.AppleHealth(rr, req)

			if rr.Code != tt.wantStatusCode {
				t.Fatalf("status = %v, want %v, body: %s", rr.Code, tt.wantStatusCode, rr.Body.String())
			}
			if p := decodeProblem(t, rr); p.Instance != "/sleep/import/apple_health" {
				t.Fatalf("problem instance = %q", p.Instance)
			}
		})
	}
}
