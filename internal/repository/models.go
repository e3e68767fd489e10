package repository

import (
	"encoding/json"
	"time"

	"github.com/blaisecz/sleep-data-service/internal/domain"
	"gorm.io/datatypes"
)

// sleepRecordRow is the relational shape of a SleepRecord. Nested blocks
// live in JSONB columns; the time series has its own table.
type sleepRecordRow struct {
	ID              string `gorm:"primaryKey;type:varchar(64)"`
	UserID          string `gorm:"type:varchar(128);not null;index:idx_sleep_records_user_date,priority:1"`
	Date            string `gorm:"type:varchar(10);not null;index:idx_sleep_records_user_date,priority:2"`
	SleepStart      time.Time
	SleepEnd        time.Time
	StartUTCOffset  int // seconds east of UTC, restores the recorded wall clock
	EndUTCOffset    int
	DurationMinutes int
	SleepQuality    *int
	SleepPhases     datatypes.JSON `gorm:"type:jsonb"`
	HeartRate       datatypes.JSON `gorm:"type:jsonb"`
	Breathing       datatypes.JSON `gorm:"type:jsonb"`
	Environment     datatypes.JSON `gorm:"type:jsonb"`
	Tags            datatypes.JSON `gorm:"type:jsonb"`
	Notes           string
	MetaData        datatypes.JSON `gorm:"type:jsonb;not null"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	TimeSeries []timeSeriesRow `gorm:"foreignKey:RecordID;constraint:OnDelete:CASCADE"`
}

func (sleepRecordRow) TableName() string { return "sleep_records" }

type timeSeriesRow struct {
	ID              uint      `gorm:"primaryKey"`
	RecordID        string    `gorm:"type:varchar(64);not null;index"`
	Timestamp       time.Time `gorm:"not null"`
	Stage           string    `gorm:"type:varchar(16);not null"`
	HeartRate       *float64
	Movement        *float64
	RespirationRate *float64
}

func (timeSeriesRow) TableName() string { return "sleep_time_series" }

func toRow(rec domain.SleepRecord) (sleepRecordRow, []timeSeriesRow, error) {
	row := sleepRecordRow{
		ID:              rec.ID,
		UserID:          rec.UserID,
		Date:            rec.Date,
		SleepStart:      rec.SleepStart.UTC(),
		SleepEnd:        rec.SleepEnd.UTC(),
		StartUTCOffset:  utcOffset(rec.SleepStart),
		EndUTCOffset:    utcOffset(rec.SleepEnd),
		DurationMinutes: rec.DurationMinutes,
		SleepQuality:    rec.SleepQuality,
		Notes:           rec.Notes,
	}

	var err error
	blocks := []struct {
		dst  *datatypes.JSON
		src  any
		skip bool
	}{
		{&row.SleepPhases, rec.SleepPhases, rec.SleepPhases == nil},
		{&row.HeartRate, rec.HeartRate, rec.HeartRate == nil},
		{&row.Breathing, rec.Breathing, rec.Breathing == nil},
		{&row.Environment, rec.Environment, rec.Environment == nil},
		{&row.Tags, rec.Tags, len(rec.Tags) == 0},
		{&row.MetaData, rec.MetaData, false},
	}
	for _, b := range blocks {
		if b.skip {
			continue
		}
		if *b.dst, err = json.Marshal(b.src); err != nil {
			return sleepRecordRow{}, nil, err
		}
	}

	points := make([]timeSeriesRow, len(rec.TimeSeries))
	for i, p := range rec.TimeSeries {
		points[i] = timeSeriesRow{
			RecordID:        rec.ID,
			Timestamp:       p.Timestamp.UTC(),
			Stage:           string(p.Stage),
			HeartRate:       p.HeartRate,
			Movement:        p.Movement,
			RespirationRate: p.RespirationRate,
		}
	}
	return row, points, nil
}

func fromRow(row sleepRecordRow) (domain.SleepRecord, error) {
	startLoc := zoneFor(row.StartUTCOffset)
	rec := domain.SleepRecord{
		ID:              row.ID,
		UserID:          row.UserID,
		Date:            row.Date,
		SleepStart:      row.SleepStart.In(startLoc),
		SleepEnd:        row.SleepEnd.In(zoneFor(row.EndUTCOffset)),
		DurationMinutes: row.DurationMinutes,
		SleepQuality:    row.SleepQuality,
		Notes:           row.Notes,
	}

	decode := []struct {
		src datatypes.JSON
		dst any
	}{
		{row.SleepPhases, &rec.SleepPhases},
		{row.HeartRate, &rec.HeartRate},
		{row.Breathing, &rec.Breathing},
		{row.Environment, &rec.Environment},
		{row.Tags, &rec.Tags},
		{row.MetaData, &rec.MetaData},
	}
	for _, d := range decode {
		if len(d.src) == 0 {
			continue
		}
		if err := json.Unmarshal(d.src, d.dst); err != nil {
			return domain.SleepRecord{}, err
		}
	}

	if len(row.TimeSeries) > 0 {
		rec.TimeSeries = make([]domain.TimeSeriesPoint, len(row.TimeSeries))
		for i, p := range row.TimeSeries {
			rec.TimeSeries[i] = domain.TimeSeriesPoint{
				Timestamp:       p.Timestamp.In(startLoc),
				Stage:           domain.SleepStage(p.Stage),
				HeartRate:       p.HeartRate,
				Movement:        p.Movement,
				RespirationRate: p.RespirationRate,
			}
		}
	}
	return rec, nil
}

func utcOffset(t time.Time) int {
	_, off := t.Zone()
	return off
}

func zoneFor(offset int) *time.Location {
	if offset == 0 {
		return time.UTC
	}
	return time.FixedZone("", offset)
}
