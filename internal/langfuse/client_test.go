package langfuse

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

// ingestionRecorder captures ingestion batches posted to a test server.
type ingestionRecorder struct {
	mu      sync.Mutex
	auth    string
	batches []map[string]any
	status  int
}

func (rec *ingestionRecorder) handler(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	var payload map[string]any
	_ = json.Unmarshal(body, &payload)

	rec.mu.Lock()
	if user, pass, ok := r.BasicAuth(); ok {
		rec.auth = user + ":" + pass
	}
	rec.batches = append(rec.batches, payload)
	status := rec.status
	rec.mu.Unlock()

	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
}

func (rec *ingestionRecorder) event(t *testing.T, i int) map[string]any {
	t.Helper()
	rec.mu.Lock()
	defer rec.mu.Unlock()
	if len(rec.batches) <= i {
		t.Fatalf("expected at least %d batches, got %d", i+1, len(rec.batches))
	}
	batch, ok := rec.batches[i]["batch"].([]any)
	if !ok || len(batch) != 1 {
		t.Fatalf("expected batch with 1 event, got %v", rec.batches[i])
	}
	return batch[0].(map[string]any)
}

func flush(t *testing.T, c Client) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := c.Flush(ctx); err != nil {
		t.Fatalf("flush: %v", err)
	}
}

func TestNewClient_Disabled(t *testing.T) {
	tests := []struct {
		name   string
		config Config
	}{
		{name: "empty base URL", config: Config{BaseURL: "", PublicKey: "pk", SecretKey: "sk"}},
		{name: "empty public key", config: Config{BaseURL: "http://localhost", PublicKey: "", SecretKey: "sk"}},
		{name: "empty secret key", config: Config{BaseURL: "http://localhost", PublicKey: "pk", SecretKey: ""}},
		{name: "all empty", config: Config{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewClient(tt.config, zaptest.NewLogger(t))
			if c.IsEnabled() {
				t.Error("expected client to be disabled")
			}
		})
	}
}

func TestDisabledClient_NoOp(t *testing.T) {
	c := NewClient(Config{}, zaptest.NewLogger(t))

	traceID, err := c.CreateTrace(context.Background(), TraceInput{UserID: "user_1", Name: "sleep-recommendations"})
	if err != nil || traceID != "" {
		t.Fatalf("CreateTrace() = %q, %v; want empty id and no error", traceID, err)
	}
	if err := c.CreateScore(context.Background(), ScoreInput{TraceID: "trace-1", Name: "recommendations_parsed", Value: 1}); err != nil {
		t.Fatalf("CreateScore() error = %v", err)
	}
	flush(t, c)
}

func TestCreateTrace_EnabledClient(t *testing.T) {
	rec := &ingestionRecorder{}
	server := httptest.NewServer(http.HandlerFunc(rec.handler))
	defer server.Close()

	c := NewClient(Config{
		BaseURL:     server.URL + "/",
		PublicKey:   "pk-test",
		SecretKey:   "sk-test",
		Environment: "testing",
	}, zaptest.NewLogger(t))

	metadata := map[string]any{"model": "gpt-4o-mini"}
	traceID, err := c.CreateTrace(context.Background(), TraceInput{
		UserID:   "user_1",
		Name:     "sleep-recommendations",
		Input:    map[string]any{"start_date": "2024-01-01"},
		Output:   map[string]any{"summary": "Steady sleep."},
		Tags:     []string{"sleep-data-service"},
		Metadata: metadata,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if traceID == "" {
		t.Fatal("expected non-empty trace ID")
	}
	flush(t, c)

	rec.mu.Lock()
	auth := rec.auth
	rec.mu.Unlock()
	if auth != "pk-test:sk-test" {
		t.Errorf("expected auth pk-test:sk-test, got %s", auth)
	}

	event := rec.event(t, 0)
	if event["type"] != "trace-create" {
		t.Errorf("expected type trace-create, got %v", event["type"])
	}
	body := event["body"].(map[string]any)
	if body["id"] != traceID || body["name"] != "sleep-recommendations" || body["userId"] != "user_1" {
		t.Errorf("unexpected trace body: %v", body)
	}
	meta := body["metadata"].(map[string]any)
	if meta["environment"] != "testing" || meta["model"] != "gpt-4o-mini" {
		t.Errorf("unexpected metadata: %v", meta)
	}
	if _, ok := metadata["environment"]; ok {
		t.Error("caller metadata must not be modified")
	}
}

func TestCreateScore_EnabledClient(t *testing.T) {
	rec := &ingestionRecorder{}
	server := httptest.NewServer(http.HandlerFunc(rec.handler))
	defer server.Close()

	c := NewClient(Config{BaseURL: server.URL, PublicKey: "pk-test", SecretKey: "sk-test"}, zaptest.NewLogger(t))

	err := c.CreateScore(context.Background(), ScoreInput{
		TraceID: "trace-abc123",
		Name:    "recommendations_parsed",
		Value:   0,
		Comment: "OpenAI request failed",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	flush(t, c)

	event := rec.event(t, 0)
	if event["type"] != "score-create" {
		t.Errorf("expected type score-create, got %v", event["type"])
	}
	body := event["body"].(map[string]any)
	if body["traceId"] != "trace-abc123" || body["name"] != "recommendations_parsed" || body["value"] != 0.0 {
		t.Errorf("unexpected score body: %v", body)
	}
	if body["comment"] != "OpenAI request failed" {
		t.Errorf("expected comment, got %v", body["comment"])
	}
}

func TestCreateScore_RequiresTraceID(t *testing.T) {
	c := NewClient(Config{BaseURL: "http://localhost", PublicKey: "pk", SecretKey: "sk"}, zaptest.NewLogger(t))
	if err := c.CreateScore(context.Background(), ScoreInput{Name: "recommendations_parsed"}); err == nil {
		t.Fatal("expected error for score without trace id")
	}
}

func TestCreateTrace_ServerErrorIsLogged(t *testing.T) {
	rec := &ingestionRecorder{status: http.StatusInternalServerError}
	server := httptest.NewServer(http.HandlerFunc(rec.handler))
	defer server.Close()

	core, logs := observer.New(zap.WarnLevel)
	c := NewClient(Config{BaseURL: server.URL, PublicKey: "pk-test", SecretKey: "sk-test"}, zap.New(core))

	traceID, err := c.CreateTrace(context.Background(), TraceInput{Name: "sleep-recommendations"})
	if err != nil {
		t.Fatalf("delivery failures must not reach the caller, got %v", err)
	}
	if traceID == "" {
		t.Error("expected a locally generated trace ID")
	}
	flush(t, c)

	if logs.FilterMessage("langfuse ingestion failed").Len() != 1 {
		t.Fatalf("expected one ingestion failure log, got %v", logs.All())
	}
}
