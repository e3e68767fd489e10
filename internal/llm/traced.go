package llm

import (
	"context"
	"time"

	"github.com/blaisecz/sleep-data-service/internal/domain"
	"github.com/blaisecz/sleep-data-service/internal/langfuse"
	"go.uber.org/zap"
)

const (
	traceName = "sleep-recommendations"
	// scoreName is 1 when the model returned usable recommendations, 0 otherwise.
	scoreName = "recommendations_parsed"
)

// TracedRecommender records every Recommend call as a Langfuse trace with
// a parse score. It behaves exactly like next when lf is disabled.
type TracedRecommender struct {
	next  Recommender
	lf    langfuse.Client
	model string
	log   *zap.Logger
	now   func() time.Time
}

func NewTracedRecommender(next Recommender, lf langfuse.Client, model string, log *zap.Logger) *TracedRecommender {
	return &TracedRecommender{next: next, lf: lf, model: model, log: log, now: time.Now}
}

func (t *TracedRecommender) Recommend(ctx context.Context, analytics *domain.SleepAnalyticsResponse) (*domain.Recommendations, error) {
	if !t.lf.IsEnabled() {
		return t.next.Recommend(ctx, analytics)
	}

	started := t.now()
	recs, err := t.next.Recommend(ctx, analytics)

	in := traceInput(analytics)
	metadata := map[string]any{
		"model":         t.model,
		"latency_ms":    t.now().Sub(started).Milliseconds(),
		"trends_status": string(analytics.Trends.Status),
	}
	var output any = recs
	if err != nil {
		metadata["error"] = err.Error()
		output = nil
	}

	traceID, traceErr := t.lf.CreateTrace(ctx, langfuse.TraceInput{
		UserID:   analytics.UserID,
		Name:     traceName,
		Input:    in,
		Output:   output,
		Tags:     []string{"sleep-data-service", "recommendations"},
		Metadata: metadata,
	})
	if traceErr != nil {
		t.log.Warn("langfuse trace not recorded", zap.Error(traceErr))
		return recs, err
	}

	score := langfuse.ScoreInput{TraceID: traceID, Name: scoreName, Value: 1}
	if err != nil {
		score.Value = 0
		score.Comment = err.Error()
	}
	if scoreErr := t.lf.CreateScore(ctx, score); scoreErr != nil {
		t.log.Warn("langfuse score not recorded", zap.String("trace_id", traceID), zap.Error(scoreErr))
	}

	return recs, err
}

// traceInput is the window and the numbers sent to the model.
func traceInput(analytics *domain.SleepAnalyticsResponse) map[string]any {
	return map[string]any{
		"start_date": analytics.StartDate,
		"end_date":   analytics.EndDate,
		"stats":      analytics.Stats,
		"trends":     analytics.Trends,
	}
}
