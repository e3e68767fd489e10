package domain

import (
	"fmt"
	"time"
)

// DateLayout is the canonical wire format of a sleep date.
const DateLayout = "2006-01-02"

// SleepStage is the heuristic stage attached to a time-series point.
// @Description Sleep stage: deep, rem, light or awake.
type SleepStage string

const (
	StageDeep  SleepStage = "deep"
	StageREM   SleepStage = "rem"
	StageLight SleepStage = "light"
	StageAwake SleepStage = "awake"
)

// Valid reports whether s is one of the known stages.
func (s SleepStage) Valid() bool {
	switch s {
	case StageDeep, StageREM, StageLight, StageAwake:
		return true
	}
	return false
}

// QualityTrend steers generated quality scores across a date span.
type QualityTrend string

const (
	QualityImproving QualityTrend = "improving"
	QualityDeclining QualityTrend = "declining"
	QualityStable    QualityTrend = "stable"
	QualityRandom    QualityTrend = "random"
)

// DurationTrend steers generated durations across a date span.
type DurationTrend string

const (
	DurationIncreasing DurationTrend = "increasing"
	DurationDecreasing DurationTrend = "decreasing"
	DurationStable     DurationTrend = "stable"
	DurationRandom     DurationTrend = "random"
)

// Provenance sources written into MetaData.Source.
const (
	SourceGenerated   = "generated"
	SourceAppleHealth = "apple_health"
	SourceManual      = "manual"
)

// SleepPhases is the per-stage minute breakdown of one night.
// @Description Minutes spent in each sleep phase.
type SleepPhases struct {
	DeepSleepMinutes  *int `json:"deep_sleep_minutes" validate:"omitempty,min=0" example:"90"`
	RemSleepMinutes   *int `json:"rem_sleep_minutes" validate:"omitempty,min=0" example:"100"`
	LightSleepMinutes *int `json:"light_sleep_minutes" validate:"omitempty,min=0" example:"230"`
	AwakeMinutes      *int `json:"awake_minutes" validate:"omitempty,min=0" example:"12"`
}

// HeartRate summarises beats per minute over the night.
// @Description Heart rate summary; min <= average <= max.
type HeartRate struct {
	Average float64 `json:"average" validate:"gt=0" example:"58.4"`
	Min     float64 `json:"min" validate:"gt=0,ltefield=Average" example:"49.1"`
	Max     float64 `json:"max" validate:"gtefield=Average" example:"71.0"`
}

// Breathing summarises respiration over the night.
type Breathing struct {
	AverageRate *float64 `json:"average_rate" validate:"omitempty,gt=0" example:"12.5"`
	Disruptions *int     `json:"disruptions" validate:"omitempty,min=0" example:"1"`
}

// Environment describes bedroom conditions.
type Environment struct {
	Temperature *float64 `json:"temperature" example:"20.5"`
	Humidity    *float64 `json:"humidity" validate:"omitempty,min=0,max=100" example:"48"`
	NoiseLevel  *float64 `json:"noise_level" validate:"omitempty,min=0" example:"27.3"`
	LightLevel  *float64 `json:"light_level" validate:"omitempty,min=0" example:"1.2"`
}

// TimeSeriesPoint is one sample of a night's stage timeline. Points only
// exist as children of a SleepRecord.
// @Description Sampled sleep stage with optional vitals.
type TimeSeriesPoint struct {
	Timestamp       time.Time  `json:"timestamp" validate:"required" example:"2024-01-15T23:10:00Z"`
	Stage           SleepStage `json:"stage" validate:"required,sleepstage" example:"light" enums:"deep,rem,light,awake"`
	HeartRate       *float64   `json:"heart_rate,omitempty" example:"56.2"`
	Movement        *float64   `json:"movement,omitempty" example:"0.12"`
	RespirationRate *float64   `json:"respiration_rate,omitempty" example:"12.1"`
}

// MetaData records where a SleepRecord came from.
// @Description Provenance of a sleep record.
type MetaData struct {
	Source      string         `json:"source" example:"generated"`
	GeneratedAt *time.Time     `json:"generated_at,omitempty"`
	ImportedAt  *time.Time     `json:"imported_at,omitempty"`
	SourceName  string         `json:"source_name,omitempty" example:"Sleep Data Service"`
	Device      string         `json:"device,omitempty"`
	Version     string         `json:"version,omitempty"`
	RawData     map[string]any `json:"raw_data,omitempty"`
}

// SleepRecord is one night of sleep for one user.
// @Description A night of sleep with optional phases, vitals and stage timeline.
type SleepRecord struct {
	// Unique record identifier
	ID string `json:"record_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	// Owner of the record
	UserID string `json:"user_id" example:"user_1"`
	// Night the sleep belongs to (YYYY-MM-DD)
	Date string `json:"date" example:"2024-01-15"`
	// Sleep start (RFC3339)
	SleepStart time.Time `json:"sleep_start" example:"2024-01-15T22:47:00Z"`
	// Sleep end (RFC3339), after sleep_start
	SleepEnd time.Time `json:"sleep_end" example:"2024-01-16T06:31:00Z"`
	// Minutes asleep, excluding awake time
	DurationMinutes int `json:"duration_minutes" example:"452"`

	SleepPhases  *SleepPhases      `json:"sleep_phases,omitempty"`
	SleepQuality *int              `json:"sleep_quality,omitempty" example:"78"`
	HeartRate    *HeartRate        `json:"heart_rate,omitempty"`
	Breathing    *Breathing        `json:"breathing,omitempty"`
	Environment  *Environment      `json:"environment,omitempty"`
	TimeSeries   []TimeSeriesPoint `json:"time_series,omitempty"`
	Tags         []string          `json:"tags,omitempty"`
	Notes        string            `json:"notes,omitempty"`
	MetaData     MetaData          `json:"meta_data"`
}

// CheckTimeline reports ErrInvalidInput when sleep_end is not after
// sleep_start, or when a time-series point falls outside the sleep window
// or precedes the point before it.
func (r *SleepRecord) CheckTimeline() error {
	if !r.SleepEnd.After(r.SleepStart) {
		return fmt.Errorf("%w: sleep_end must be after sleep_start", ErrInvalidInput)
	}
	for i, p := range r.TimeSeries {
		if p.Timestamp.Before(r.SleepStart) || p.Timestamp.After(r.SleepEnd) {
			return fmt.Errorf("%w: time_series[%d] is outside sleep_start..sleep_end", ErrInvalidInput, i)
		}
		if i > 0 && p.Timestamp.Before(r.TimeSeries[i-1].Timestamp) {
			return fmt.Errorf("%w: time_series[%d] is earlier than the point before it", ErrInvalidInput, i)
		}
	}
	return nil
}

// ParseDate accepts either a calendar date (YYYY-MM-DD) or an RFC3339
// timestamp and returns midnight UTC of that calendar day.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q is not a date", ErrInvalidInput, s)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

// NormalizeDate rewrites s to YYYY-MM-DD.
func NormalizeDate(s string) (string, error) {
	t, err := ParseDate(s)
	if err != nil {
		return "", err
	}
	return t.Format(DateLayout), nil
}

// IntPtr returns a pointer to v.
func IntPtr(v int) *int { return &v }

// Float64Ptr returns a pointer to v.
func Float64Ptr(v float64) *float64 { return &v }

// GenerateSleepDataRequest is the request body for synthesizing sleep records.
// @Description Parameters for generating synthetic sleep data.
type GenerateSleepDataRequest struct {
	// Owner of the generated records
	UserID string `json:"user_id" validate:"required,max=128" example:"user_1"`
	// First night (YYYY-MM-DD or RFC3339)
	StartDate string `json:"start_date" validate:"required,isodate" example:"2024-01-01"`
	// Last night, inclusive (YYYY-MM-DD or RFC3339)
	EndDate string `json:"end_date" validate:"required,isodate" example:"2024-01-14"`
	// Expand each record into a 10-minute stage timeline
	IncludeTimeSeries bool `json:"include_time_series" example:"false"`
	// improving, declining, stable or random; anything else means daily noise
	SleepQualityTrend QualityTrend `json:"sleep_quality_trend,omitempty" example:"improving"`
	// increasing, decreasing, stable or random; anything else means daily noise
	SleepDurationTrend DurationTrend `json:"sleep_duration_trend,omitempty" example:"stable"`
}

// CreateSleepRecordRequest is the request body for storing one record.
// @Description Sleep record payload. date defaults to the calendar day of sleep_start.
type CreateSleepRecordRequest struct {
	UserID          string            `json:"user_id" validate:"required,max=128" example:"user_1"`
	Date            string            `json:"date,omitempty" validate:"omitempty,isodate" example:"2024-01-15"`
	SleepStart      time.Time         `json:"sleep_start" validate:"required" example:"2024-01-15T22:47:00Z"`
	SleepEnd        time.Time         `json:"sleep_end" validate:"required,gtfield=SleepStart" example:"2024-01-16T06:31:00Z"`
	DurationMinutes int               `json:"duration_minutes" validate:"min=0,max=1440" example:"452"`
	SleepPhases     *SleepPhases      `json:"sleep_phases,omitempty"`
	SleepQuality    *int              `json:"sleep_quality,omitempty" validate:"omitempty,min=0,max=100" example:"78"`
	HeartRate       *HeartRate        `json:"heart_rate,omitempty"`
	Breathing       *Breathing        `json:"breathing,omitempty"`
	Environment     *Environment      `json:"environment,omitempty"`
	TimeSeries      []TimeSeriesPoint `json:"time_series,omitempty" validate:"omitempty,dive"`
	Tags            []string          `json:"tags,omitempty" validate:"omitempty,max=32,dive,max=64"`
	Notes           string            `json:"notes,omitempty" validate:"max=2000"`
	MetaData        *MetaData         `json:"meta_data,omitempty"`
}

// UpdateSleepRecordRequest is a partial update; nil fields are left untouched.
// @Description Partial sleep record update.
type UpdateSleepRecordRequest struct {
	Date            *string           `json:"date,omitempty" validate:"omitempty,isodate" example:"2024-01-15"`
	SleepStart      *time.Time        `json:"sleep_start,omitempty"`
	SleepEnd        *time.Time        `json:"sleep_end,omitempty"`
	DurationMinutes *int              `json:"duration_minutes,omitempty" validate:"omitempty,min=0,max=1440"`
	SleepPhases     *SleepPhases      `json:"sleep_phases,omitempty"`
	SleepQuality    *int              `json:"sleep_quality,omitempty" validate:"omitempty,min=0,max=100"`
	HeartRate       *HeartRate        `json:"heart_rate,omitempty"`
	Breathing       *Breathing        `json:"breathing,omitempty"`
	Environment     *Environment      `json:"environment,omitempty"`
	TimeSeries      []TimeSeriesPoint `json:"time_series,omitempty" validate:"omitempty,dive"`
	Tags            []string          `json:"tags,omitempty" validate:"omitempty,max=32,dive,max=64"`
	Notes           *string           `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

// SleepRecordFilter narrows a record listing. Dates are inclusive YYYY-MM-DD.
type SleepRecordFilter struct {
	StartDate string
	EndDate   string
	Limit     int
	Offset    int
}

// SleepDataResponse wraps a list of records.
// @Description List of sleep records.
type SleepDataResponse struct {
	Records []SleepRecord `json:"records"`
	Count   int           `json:"count" example:"14"`
}

// ImportResult summarises an Apple Health import.
// @Description Outcome of an Apple Health export import.
type ImportResult struct {
	UserID                  string    `json:"user_id" example:"user_1"`
	RecordsImported         int       `json:"records_imported" example:"12"`
	HeartRateDataPoints     int       `json:"heart_rate_data_points" example:"340"`
	RespiratoryDataPoints   int       `json:"respiratory_data_points" example:"80"`
	EnvironmentalDataPoints int       `json:"environmental_data_points" example:"25"`
	SkippedEntries          int       `json:"skipped_entries" example:"0"`
	ImportTime              time.Time `json:"import_time"`
}
