// Package langfuse records LLM generations in Langfuse through its HTTP
// ingestion API. Without credentials the client is a no-op.
package langfuse

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// sendTimeout bounds a single background ingestion call.
const sendTimeout = 5 * time.Second

// Client is the interface for Langfuse operations.
type Client interface {
	// IsEnabled returns true if Langfuse is configured.
	IsEnabled() bool
	// CreateTrace queues a trace and returns its ID.
	CreateTrace(ctx context.Context, in TraceInput) (string, error)
	// CreateScore queues a score for an existing trace.
	CreateScore(ctx context.Context, in ScoreInput) error
	// Flush waits for queued events to be delivered or for ctx to end.
	Flush(ctx context.Context) error
}

// TraceInput contains the data for creating a trace.
type TraceInput struct {
	ID       string // generated when empty
	UserID   string
	Name     string // e.g. "sleep-recommendations"
	Input    any
	Output   any
	Tags     []string
	Metadata map[string]any
}

// ScoreInput contains the data for creating a score.
type ScoreInput struct {
	TraceID string
	Name    string
	Value   float64
	Comment string
}

type Config struct {
	BaseURL     string
	PublicKey   string
	SecretKey   string
	Environment string
}

type client struct {
	baseURL     string
	publicKey   string
	secretKey   string
	environment string
	enabled     bool
	httpClient  *http.Client
	log         *zap.Logger
	pending     sync.WaitGroup
}

// NewClient creates a Langfuse client. If the base URL or either key is
// empty the returned client is disabled and every call is a no-op.
func NewClient(cfg Config, log *zap.Logger) Client {
	enabled := cfg.BaseURL != "" && cfg.PublicKey != "" && cfg.SecretKey != ""

	switch {
	case cfg.BaseURL == "":
		log.Info("langfuse disabled", zap.String("reason", "LANGFUSE_BASE_URL is empty"))
	case cfg.PublicKey == "":
		log.Info("langfuse disabled", zap.String("reason", "LANGFUSE_PUBLIC_KEY is empty"))
	case cfg.SecretKey == "":
		log.Info("langfuse disabled", zap.String("reason", "LANGFUSE_SECRET_KEY is empty"))
	default:
		log.Info("langfuse enabled", zap.String("base_url", cfg.BaseURL), zap.String("env", cfg.Environment))
	}

	return &client{
		baseURL:     strings.TrimSuffix(cfg.BaseURL, "/"),
		publicKey:   cfg.PublicKey,
		secretKey:   cfg.SecretKey,
		environment: cfg.Environment,
		enabled:     enabled,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		log:         log,
	}
}

func (c *client) IsEnabled() bool {
	return c.enabled
}

func (c *client) CreateTrace(ctx context.Context, in TraceInput) (string, error) {
	if !c.enabled {
		return "", nil
	}

	traceID := in.ID
	if traceID == "" {
		traceID = uuid.NewString()
	}

	metadata := make(map[string]any, len(in.Metadata)+1)
	for k, v := range in.Metadata {
		metadata[k] = v
	}
	if c.environment != "" {
		metadata["environment"] = c.environment
	}

	c.send(ingestionEvent{
		ID:        uuid.NewString(),
		Type:      "trace-create",
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
		Body: traceBody{
			ID:       traceID,
			Name:     in.Name,
			UserID:   in.UserID,
			Input:    in.Input,
			Output:   in.Output,
			Tags:     in.Tags,
			Metadata: metadata,
		},
	})
	return traceID, nil
}

func (c *client) CreateScore(ctx context.Context, in ScoreInput) error {
	if !c.enabled {
		return nil
	}
	if in.TraceID == "" {
		return fmt.Errorf("score %q has no trace id", in.Name)
	}

	c.send(ingestionEvent{
		ID:        uuid.NewString(),
		Type:      "score-create",
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
		Body: scoreBody{
			ID:      uuid.NewString(),
			TraceID: in.TraceID,
			Name:    in.Name,
			Value:   in.Value,
			Comment: in.Comment,
		},
	})
	return nil
}

func (c *client) Flush(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		c.pending.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// send delivers event in the background so the request path never waits
// on Langfuse. Failures are only logged.
func (c *client) send(event ingestionEvent) {
	c.pending.Add(1)
	go func() {
		defer c.pending.Done()

		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		defer cancel()

		if err := c.sendBatch(ctx, []ingestionEvent{event}); err != nil {
			c.log.Warn("langfuse ingestion failed", zap.String("event_type", event.Type), zap.Error(err))
		}
	}()
}

func (c *client) sendBatch(ctx context.Context, events []ingestionEvent) error {
	body, err := json.Marshal(batchPayload{Batch: events})
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/public/ingestion", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.publicKey, c.secretKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("ingestion failed with status %d", resp.StatusCode)
	}
	return nil
}

type batchPayload struct {
	Batch []ingestionEvent `json:"batch"`
}

type ingestionEvent struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Timestamp string `json:"timestamp"`
	Body      any    `json:"body"`
}

type traceBody struct {
	ID       string         `json:"id"`
	Name     string         `json:"name,omitempty"`
	UserID   string         `json:"userId,omitempty"`
	Input    any            `json:"input,omitempty"`
	Output   any            `json:"output,omitempty"`
	Tags     []string       `json:"tags,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

type scoreBody struct {
	ID      string  `json:"id"`
	TraceID string  `json:"traceId"`
	Name    string  `json:"name"`
	Value   float64 `json:"value"`
	Comment string  `json:"comment,omitempty"`
}
