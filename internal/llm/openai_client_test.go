package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/blaisecz/sleep-data-service/internal/domain"
	"github.com/openai/openai-go/v3/option"
)

func TestNewOpenAIClient_NoKey(t *testing.T) {
	if c := NewOpenAIClient("", "gpt-4o-mini"); c != nil {
		t.Fatal("expected nil client without API key")
	}

	var c *OpenAIClient
	if _, err := c.Recommend(context.Background(), &domain.SleepAnalyticsResponse{}); !errors.Is(err, ErrOpenAIUnavailable) {
		t.Fatalf("nil client error = %v, want ErrOpenAIUnavailable", err)
	}
}

func TestParseRecommendations(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
		wantErr bool
	}{
		{name: "plain json", content: `{"summary":"ok","suggestions":["a","b"]}`, want: 2},
		{name: "fenced json", content: "```json\n{\"summary\":\"ok\",\"suggestions\":[\"a\"]}\n```", want: 1},
		{name: "not json", content: "Sleep more.", wantErr: true},
		{name: "missing summary", content: `{"suggestions":["a"]}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseRecommendations(tt.content)
			if tt.wantErr {
				if !errors.Is(err, ErrOpenAIResponse) {
					t.Fatalf("error = %v, want ErrOpenAIResponse", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got.Suggestions) != tt.want {
				t.Fatalf("got %d suggestions, want %d", len(got.Suggestions), tt.want)
			}
		})
	}
}

func TestRecommend_SendsAnalytics(t *testing.T) {
	var prompt string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var req struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		_ = json.Unmarshal(body, &req)
		if len(req.Messages) == 2 {
			prompt = req.Messages[1].Content
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"created": 1700000000,
			"model": "test-model",
			"choices": [{
				"index": 0,
				"finish_reason": "stop",
				"message": {"role": "assistant", "content": "{\"summary\":\"Steady sleep.\",\"suggestions\":[\"Keep a fixed bedtime.\"]}"}
			}]
		}`))
	}))
	defer srv.Close()

	client := NewOpenAIClient("test-key", "test-model", option.WithBaseURL(srv.URL), option.WithMaxRetries(0))
	got, err := client.Recommend(context.Background(), &domain.SleepAnalyticsResponse{
		UserID:    "user_1",
		StartDate: "2024-01-01",
		EndDate:   "2024-01-14",
		Stats:     domain.SleepStats{AverageDurationMinutes: 431.5, TotalRecords: 14, DateRangeDays: 14},
		Trends:    domain.SleepTrends{Status: domain.TrendStatusOK},
	})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if got.Summary != "Steady sleep." || len(got.Suggestions) != 1 {
		t.Fatalf("unexpected recommendations: %+v", got)
	}
	if !strings.Contains(prompt, "2024-01-01") || !strings.Contains(prompt, "431.5") {
		t.Fatalf("prompt missing analytics: %s", prompt)
	}
	if strings.Contains(prompt, "user_1") {
		t.Fatal("prompt should not include the user id")
	}
}
