package domain

import "time"

// DateRange is an inclusive window of calendar days.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Days returns the inclusive number of calendar days in the window, or 0
// when the window is inverted.
func (r DateRange) Days() int {
	start := time.Date(r.Start.Year(), r.Start.Month(), r.Start.Day(), 0, 0, 0, 0, time.UTC)
	end := time.Date(r.End.Year(), r.End.Month(), r.End.Day(), 0, 0, 0, 0, time.UTC)
	if end.Before(start) {
		return 0
	}
	return int(end.Sub(start).Hours()/24) + 1
}

// SleepStats are descriptive averages over a set of records.
// @Description Averages over the records in the query window.
type SleepStats struct {
	AverageDurationMinutes   float64  `json:"average_duration_minutes" example:"431.5"`
	AverageSleepQuality      *float64 `json:"average_sleep_quality" example:"74.2"`
	AverageDeepSleepMinutes  *float64 `json:"average_deep_sleep_minutes" example:"92.1"`
	AverageRemSleepMinutes   *float64 `json:"average_rem_sleep_minutes" example:"101.4"`
	AverageLightSleepMinutes *float64 `json:"average_light_sleep_minutes" example:"238.0"`
	TotalRecords             int      `json:"total_records" example:"14"`
	DateRangeDays            int      `json:"date_range_days" example:"14"`
}

// TrendStatus tells whether trend metrics could be computed at all.
type TrendStatus string

const (
	TrendStatusOK               TrendStatus = "ok"
	TrendStatusInsufficientData TrendStatus = "insufficient_data"
)

// TrendDirection labels the sign of a trend.
type TrendDirection string

const (
	TrendIncreasing TrendDirection = "increasing"
	TrendDecreasing TrendDirection = "decreasing"
	TrendImproving  TrendDirection = "improving"
	TrendDeclining  TrendDirection = "declining"
	TrendStable     TrendDirection = "stable"
)

// Rating is a four-bucket qualitative score.
type Rating string

const (
	RatingExcellent Rating = "excellent"
	RatingGood      Rating = "good"
	RatingFair      Rating = "fair"
	RatingPoor      Rating = "poor"
)

// TrendResult describes the direction of a metric over time.
// @Description Direction and size of a day-over-day trend.
type TrendResult struct {
	Direction           TrendDirection `json:"direction" example:"increasing"`
	Strength            float64        `json:"strength" example:"3.25"`
	AverageChangePerDay float64        `json:"average_change_per_day" example:"3.25"`
}

// ScheduleConsistency scores how regular bedtimes are.
// @Description Bedtime regularity; lower spread means a higher score.
type ScheduleConsistency struct {
	Score         float64 `json:"score" example:"82.4"`
	Rating        Rating  `json:"rating" example:"excellent"`
	StdDevMinutes float64 `json:"std_dev_minutes" example:"17.6"`
	MeanStartTime string  `json:"mean_start_time" example:"22:48"`
}

// DurationVariability scores night-to-night duration swings.
// @Description Mean absolute successive change in duration relative to the mean.
type DurationVariability struct {
	Score       float64 `json:"score" example:"91.3"`
	Rating      Rating  `json:"rating" example:"excellent"`
	Coefficient float64 `json:"coefficient" example:"0.087"`
}

// SleepTrends groups every trend metric. A nil metric could not be computed;
// Notes explains why.
// @Description Trend, consistency and variability metrics.
type SleepTrends struct {
	Status              TrendStatus          `json:"status" example:"ok"`
	DurationTrend       *TrendResult         `json:"duration_trend"`
	QualityTrend        *TrendResult         `json:"quality_trend"`
	ScheduleConsistency *ScheduleConsistency `json:"schedule_consistency"`
	DurationVariability *DurationVariability `json:"duration_variability"`
	Notes               map[string]string    `json:"notes,omitempty"`
}

// Recommendations are optional behavioural suggestions attached to analytics.
// @Description Non-medical suggestions derived from the analytics.
type Recommendations struct {
	Summary     string   `json:"summary"`
	Suggestions []string `json:"suggestions"`
}

// SleepAnalyticsResponse is the response body of the analytics endpoint.
// @Description Statistics and trends for a user over a date window.
type SleepAnalyticsResponse struct {
	UserID          string           `json:"user_id" example:"user_1"`
	StartDate       string           `json:"start_date" example:"2024-01-01"`
	EndDate         string           `json:"end_date" example:"2024-01-14"`
	Stats           SleepStats       `json:"stats"`
	Trends          SleepTrends      `json:"trends"`
	Recommendations *Recommendations `json:"recommendations,omitempty"`
}
