// Package analytics computes descriptive statistics and trend metrics over a
// user's sleep records. Everything here is a pure function of its input.
package analytics

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/blaisecz/sleep-data-service/internal/domain"
)

// Config holds the thresholds the engine classifies against.
type Config struct {
	// Mean daily change below this magnitude counts as stable.
	TrendThreshold float64
	// Bedtime standard deviation cut points in minutes: excellent, good, fair.
	ScheduleRatingBounds [3]float64
	// Duration variability cut points: excellent, good, fair.
	VariabilityRatingBounds [3]float64
}

func DefaultConfig() Config {
	return Config{
		TrendThreshold:          0.01,
		ScheduleRatingBounds:    [3]float64{30, 60, 90},
		VariabilityRatingBounds: [3]float64{0.1, 0.2, 0.3},
	}
}

type Engine struct {
	cfg Config
}

// New returns an Engine. Zero or negative fields of cfg take their
// DefaultConfig values.
func New(cfg Config) *Engine {
	return &Engine{cfg: cfg.withDefaults()}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.TrendThreshold <= 0 {
		c.TrendThreshold = d.TrendThreshold
	}
	if !ascending(c.ScheduleRatingBounds) {
		c.ScheduleRatingBounds = d.ScheduleRatingBounds
	}
	if !ascending(c.VariabilityRatingBounds) {
		c.VariabilityRatingBounds = d.VariabilityRatingBounds
	}
	return c
}

// ascending reports whether bounds are positive and strictly increasing.
func ascending(bounds [3]float64) bool {
	return bounds[0] > 0 && bounds[0] < bounds[1] && bounds[1] < bounds[2]
}

var ratings = [4]domain.Rating{domain.RatingExcellent, domain.RatingGood, domain.RatingFair, domain.RatingPoor}

// Metric names used as keys in SleepTrends.Notes.
const (
	metricRecords             = "records"
	metricDate                = "date"
	metricDurationTrend       = "duration_trend"
	metricQualityTrend        = "quality_trend"
	metricScheduleConsistency = "schedule_consistency"
	metricDurationVariability = "duration_variability"
)

// ComputeStats averages duration, quality and phases over records. window is
// the query window; when it is zero the span of the record dates is used.
// Callers are expected to short-circuit empty input; it returns
// domain.ErrNoData if they do not.
func (e *Engine) ComputeStats(records []domain.SleepRecord, window domain.DateRange) (domain.SleepStats, error) {
	if len(records) == 0 {
		return domain.SleepStats{}, domain.ErrNoData
	}

	var durations, qualities, deep, rem, light []float64
	for _, r := range records {
		durations = append(durations, float64(r.DurationMinutes))
		if r.SleepQuality != nil {
			qualities = append(qualities, float64(*r.SleepQuality))
		}
		if p := r.SleepPhases; p != nil {
			if p.DeepSleepMinutes != nil {
				deep = append(deep, float64(*p.DeepSleepMinutes))
			}
			if p.RemSleepMinutes != nil {
				rem = append(rem, float64(*p.RemSleepMinutes))
			}
			if p.LightSleepMinutes != nil {
				light = append(light, float64(*p.LightSleepMinutes))
			}
		}
	}

	if window.Start.IsZero() && window.End.IsZero() {
		window = recordSpan(records)
	}

	return domain.SleepStats{
		AverageDurationMinutes:   round(mean(durations), 1),
		AverageSleepQuality:      optionalMean(qualities),
		AverageDeepSleepMinutes:  optionalMean(deep),
		AverageRemSleepMinutes:   optionalMean(rem),
		AverageLightSleepMinutes: optionalMean(light),
		TotalRecords:             len(records),
		DateRangeDays:            window.Days(),
	}, nil
}

func optionalMean(values []float64) *float64 {
	if len(values) == 0 {
		return nil
	}
	v := round(mean(values), 1)
	return &v
}

func recordSpan(records []domain.SleepRecord) domain.DateRange {
	var span domain.DateRange
	for _, r := range records {
		d, err := domain.ParseDate(r.Date)
		if err != nil {
			continue
		}
		if span.Start.IsZero() || d.Before(span.Start) {
			span.Start = d
		}
		if span.End.IsZero() || d.After(span.End) {
			span.End = d
		}
	}
	return span
}

// ComputeTrends derives direction and regularity metrics from records in
// date order. Fewer than two records produce an insufficient_data result.
// A metric that cannot be computed is left nil and explained in Notes; the
// others are still returned.
func (e *Engine) ComputeTrends(records []domain.SleepRecord) domain.SleepTrends {
	if len(records) < 2 {
		return domain.SleepTrends{
			Status: domain.TrendStatusInsufficientData,
			Notes: map[string]string{
				metricRecords: fmt.Sprintf("at least 2 records are required, got %d", len(records)),
			},
		}
	}

	notes := map[string]string{}
	sorted := sortByDate(records, notes)

	durations := make([]float64, len(sorted))
	for i, r := range sorted {
		durations[i] = float64(r.DurationMinutes)
	}

	trends := domain.SleepTrends{Status: domain.TrendStatusOK}

	trends.DurationTrend = guard(notes, metricDurationTrend, func() (*domain.TrendResult, error) {
		return e.trend(durations, domain.TrendIncreasing, domain.TrendDecreasing), nil
	})

	trends.QualityTrend = guard(notes, metricQualityTrend, func() (*domain.TrendResult, error) {
		var scores []float64
		for _, r := range sorted {
			if r.SleepQuality != nil {
				scores = append(scores, float64(*r.SleepQuality))
			}
		}
		if len(scores) < 2 {
			return nil, fmt.Errorf("at least 2 records with sleep_quality are required, got %d", len(scores))
		}
		return e.trend(scores, domain.TrendImproving, domain.TrendDeclining), nil
	})

	trends.ScheduleConsistency = guard(notes, metricScheduleConsistency, func() (*domain.ScheduleConsistency, error) {
		return e.scheduleConsistency(sorted)
	})

	trends.DurationVariability = guard(notes, metricDurationVariability, func() (*domain.DurationVariability, error) {
		return e.durationVariability(durations)
	})

	if len(notes) > 0 {
		trends.Notes = notes
	}
	return trends
}

// guard runs one metric, turning errors and panics into a note.
func guard[T any](notes map[string]string, name string, fn func() (*T, error)) (out *T) {
	defer func() {
		if r := recover(); r != nil {
			notes[name] = fmt.Sprintf("could not be computed: %v", r)
			out = nil
		}
	}()

	v, err := fn()
	if err != nil {
		notes[name] = err.Error()
		return nil
	}
	return v
}

func (e *Engine) trend(values []float64, up, down domain.TrendDirection) *domain.TrendResult {
	change := meanSuccessiveDiff(values)
	direction := domain.TrendStable
	switch {
	case change > e.cfg.TrendThreshold:
		direction = up
	case change < -e.cfg.TrendThreshold:
		direction = down
	}
	return &domain.TrendResult{
		Direction:           direction,
		Strength:            round(math.Abs(change), 2),
		AverageChangePerDay: round(change, 2),
	}
}

var errNoSleepStart = errors.New("sleep_start is missing")

func (e *Engine) scheduleConsistency(records []domain.SleepRecord) (*domain.ScheduleConsistency, error) {
	minutes := make([]float64, 0, len(records))
	for _, r := range records {
		if r.SleepStart.IsZero() {
			return nil, fmt.Errorf("record %s: %w", r.ID, errNoSleepStart)
		}
		minutes = append(minutes, minutesPastMidnight(r.SleepStart))
	}

	stdDev, center := wrappedStdDevMinutes(minutes)
	return &domain.ScheduleConsistency{
		Score:         round(100-math.Min(100, stdDev), 1),
		Rating:        classify(stdDev, e.cfg.ScheduleRatingBounds, ratings),
		StdDevMinutes: round(stdDev, 1),
		MeanStartTime: minutesToTimeString(center),
	}, nil
}

func (e *Engine) durationVariability(durations []float64) (*domain.DurationVariability, error) {
	avg := mean(durations)
	if avg <= 0 {
		return nil, fmt.Errorf("mean duration must be positive, got %.1f", avg)
	}
	v := meanAbsSuccessiveDiff(durations) / avg
	return &domain.DurationVariability{
		Score:       round(100-math.Min(100, v*100), 1),
		Rating:      classify(v, e.cfg.VariabilityRatingBounds, ratings),
		Coefficient: round(v, 3),
	}, nil
}

// sortByDate returns a copy of records ordered by sleep date. Records whose
// date does not parse are placed by the calendar day of sleep_start.
func sortByDate(records []domain.SleepRecord, notes map[string]string) []domain.SleepRecord {
	type keyed struct {
		key time.Time
		rec domain.SleepRecord
	}

	items := make([]keyed, len(records))
	var unparsed []string
	for i, r := range records {
		key, err := domain.ParseDate(r.Date)
		if err != nil {
			unparsed = append(unparsed, r.ID)
			s := r.SleepStart
			key = time.Date(s.Year(), s.Month(), s.Day(), 0, 0, 0, 0, time.UTC)
		}
		items[i] = keyed{key: key, rec: r}
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].key.Equal(items[j].key) {
			return items[i].rec.SleepStart.Before(items[j].rec.SleepStart)
		}
		return items[i].key.Before(items[j].key)
	})

	if len(unparsed) > 0 {
		notes[metricDate] = fmt.Sprintf("%d record(s) had an unparseable date and were ordered by sleep_start", len(unparsed))
	}

	out := make([]domain.SleepRecord, len(items))
	for i, it := range items {
		out[i] = it.rec
	}
	return out
}
