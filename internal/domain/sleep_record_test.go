package domain

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{
			name:  "calendar date",
			input: "2024-01-15",
			want:  time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "RFC3339 truncated to day",
			input: "2024-01-15T23:40:00Z",
			want:  time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "RFC3339 with offset keeps local calendar day",
			input: "2024-01-15T01:00:00+02:00",
			want:  time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:    "garbage",
			input:   "15/01/2024",
			wantErr: true,
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidInput) {
					t.Fatalf("expected ErrInvalidInput, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestDateRange_Days(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC) }

	tests := []struct {
		name string
		r    DateRange
		want int
	}{
		{"single day", DateRange{Start: day(5), End: day(5)}, 1},
		{"two weeks", DateRange{Start: day(1), End: day(14)}, 14},
		{"time of day ignored", DateRange{Start: day(1).Add(23 * time.Hour), End: day(2)}, 2},
		{"across month boundary", DateRange{Start: day(30), End: time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC)}, 4},
		{"inverted", DateRange{Start: day(10), End: day(9)}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.Days(); got != tt.want {
				t.Errorf("Days() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSleepStage_Valid(t *testing.T) {
	for _, s := range []SleepStage{StageDeep, StageREM, StageLight, StageAwake} {
		if !s.Valid() {
			t.Errorf("%q should be valid", s)
		}
	}
	for _, s := range []SleepStage{"", "REM", "n3"} {
		if s.Valid() {
			t.Errorf("%q should be invalid", s)
		}
	}
}

func TestSleepRecord_JSONFieldNames(t *testing.T) {
	start := time.Date(2024, 1, 15, 22, 30, 0, 0, time.UTC)
	rec := SleepRecord{
		ID:              "rec-1",
		UserID:          "user_1",
		Date:            "2024-01-15",
		SleepStart:      start,
		SleepEnd:        start.Add(8 * time.Hour),
		DurationMinutes: 465,
		SleepPhases:     &SleepPhases{DeepSleepMinutes: IntPtr(90)},
		MetaData:        MetaData{Source: SourceManual},
	}

	data, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	body := string(data)

	for _, key := range []string{`"record_id":"rec-1"`, `"date":"2024-01-15"`, `"sleep_start":"2024-01-15T22:30:00Z"`, `"deep_sleep_minutes":90`, `"meta_data":{"source":"manual"}`} {
		if !strings.Contains(body, key) {
			t.Errorf("expected %s in %s", key, body)
		}
	}
	for _, absent := range []string{`"time_series"`, `"heart_rate"`, `"tags"`} {
		if strings.Contains(body, absent) {
			t.Errorf("did not expect %s in %s", absent, body)
		}
	}
}

func TestSleepRecord_CheckTimeline(t *testing.T) {
	start := time.Date(2024, 1, 15, 23, 0, 0, 0, time.UTC)
	end := start.Add(8 * time.Hour)
	point := func(offset time.Duration) TimeSeriesPoint {
		return TimeSeriesPoint{Timestamp: start.Add(offset), Stage: StageLight}
	}

	tests := []struct {
		name    string
		end     time.Time
		points  []TimeSeriesPoint
		wantErr bool
	}{
		{name: "no timeline", end: end},
		{name: "points on both bounds", end: end, points: []TimeSeriesPoint{point(0), point(4 * time.Hour), point(8 * time.Hour)}},
		{name: "equal timestamps", end: end, points: []TimeSeriesPoint{point(time.Hour), point(time.Hour)}},
		{name: "end not after start", end: start, wantErr: true},
		{name: "point after sleep_end", end: end, points: []TimeSeriesPoint{point(time.Hour), point(13 * time.Hour)}, wantErr: true},
		{name: "point before sleep_start", end: end, points: []TimeSeriesPoint{point(-3 * time.Hour)}, wantErr: true},
		{name: "descending timestamps", end: end, points: []TimeSeriesPoint{point(2 * time.Hour), point(time.Hour)}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := SleepRecord{SleepStart: start, SleepEnd: tt.end, TimeSeries: tt.points}
			err := rec.CheckTimeline()
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidInput) {
					t.Fatalf("expected ErrInvalidInput, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
