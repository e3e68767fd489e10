package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/blaisecz/sleep-data-service/internal/domain"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

var (
	// ErrOpenAIUnavailable indicates the OpenAI service is not configured or unavailable.
	ErrOpenAIUnavailable = errors.New("OpenAI service unavailable")
	// ErrOpenAIRequest indicates an error during the OpenAI API request.
	ErrOpenAIRequest = errors.New("OpenAI request failed")
	// ErrOpenAIResponse indicates an error parsing the OpenAI response.
	ErrOpenAIResponse = errors.New("failed to parse OpenAI response")
)

// DefaultSystemPrompt is used when no managed prompt is configured.
const DefaultSystemPrompt = `You are a non-medical sleep tracking assistant.

You receive aggregated sleep statistics and trend metrics for a single user over a date window. Base your conclusions only on the provided data.

Your goals:
- Describe the user's sleep in the window in clear, neutral language.
- Point out the duration and quality direction, bedtime regularity and night-to-night variability.
- Give practical, behavioral suggestions to improve sleep habits.

Rules:
- Do NOT provide medical advice or diagnoses.
- Do NOT mention diseases, disorders, doctors, or treatment.
- Metrics that are null could not be computed; do not guess them.
- If status is "insufficient_data", say that more nights are needed.
- Be concise and concrete.

You must respond as strict JSON with exactly this shape:

{
  "summary": "2-3 sentences summarizing the user's sleep in the window.",
  "suggestions": [
    "2-5 concrete, non-medical suggestions tailored to these numbers."
  ]
}

No extra fields. No comments. No backticks.`

const userPromptTemplate = `Here is JSON describing this user's sleep between %s and %s.

- "stats" holds averages (minutes, quality 0-100) and the number of records.
- "trends" holds duration and quality direction, schedule consistency (bedtime standard deviation in minutes) and duration variability.

JSON:

%s

Based on this data, respond in the required JSON format.`

// Recommender produces suggestions for an analytics result.
type Recommender interface {
	Recommend(ctx context.Context, analytics *domain.SleepAnalyticsResponse) (*domain.Recommendations, error)
}

// OpenAIClient implements Recommender using the OpenAI API.
type OpenAIClient struct {
	client       openai.Client
	model        string
	systemPrompt string
}

// NewOpenAIClient returns nil if apiKey is empty.
func NewOpenAIClient(apiKey, model string, opts ...option.RequestOption) *OpenAIClient {
	if apiKey == "" {
		return nil
	}

	if model == "" {
		model = "gpt-4o-mini"
	}

	client := openai.NewClient(append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)...)

	return &OpenAIClient{
		client:       client,
		model:        model,
		systemPrompt: DefaultSystemPrompt,
	}
}

// WithSystemPrompt replaces the system prompt; an empty prompt keeps the current one.
func (c *OpenAIClient) WithSystemPrompt(prompt string) *OpenAIClient {
	if c != nil && strings.TrimSpace(prompt) != "" {
		c.systemPrompt = prompt
	}
	return c
}

// Model returns the chat model used for recommendations.
func (c *OpenAIClient) Model() string {
	if c == nil {
		return ""
	}
	return c.model
}

// Recommend calls OpenAI with the stats and trends of analytics.
func (c *OpenAIClient) Recommend(ctx context.Context, analytics *domain.SleepAnalyticsResponse) (*domain.Recommendations, error) {
	if c == nil {
		return nil, ErrOpenAIUnavailable
	}

	payload, err := json.MarshalIndent(struct {
		Stats  domain.SleepStats  `json:"stats"`
		Trends domain.SleepTrends `json:"trends"`
	}{analytics.Stats, analytics.Trends}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: failed to serialize analytics: %v", ErrOpenAIRequest, err)
	}

	userPrompt := fmt.Sprintf(userPromptTemplate, analytics.StartDate, analytics.EndDate, string(payload))

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(c.systemPrompt),
			openai.UserMessage(userPrompt),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpenAIRequest, err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: no choices in response", ErrOpenAIResponse)
	}

	return parseRecommendations(resp.Choices[0].Message.Content)
}

func parseRecommendations(content string) (*domain.Recommendations, error) {
	// Some models wrap JSON in a markdown fence despite the instructions.
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	var out domain.Recommendations
	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpenAIResponse, err)
	}
	if out.Summary == "" {
		return nil, fmt.Errorf("%w: empty summary", ErrOpenAIResponse)
	}
	return &out, nil
}
