// Package importer turns third-party health exports into SleepRecords.
package importer

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/blaisecz/sleep-data-service/internal/domain"
	"github.com/google/uuid"
)

const (
	typeSleepAnalysis   = "HKCategoryTypeIdentifierSleepAnalysis"
	typeHeartRate       = "HKQuantityTypeIdentifierHeartRate"
	typeRespiratoryRate = "HKQuantityTypeIdentifierRespiratoryRate"
	typeAudioExposure   = "HKQuantityTypeIdentifierEnvironmentalAudioExposure"

	sleepValuePrefix = "HKCategoryValueSleepAnalysis"
)

// appleDateLayouts are tried in order when parsing startDate/endDate.
var appleDateLayouts = []string{
	"2006-01-02 15:04:05 -0700",
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
}

// Config tunes how sleep segments are assembled into nights.
type Config struct {
	// Asleep segments closer than this are treated as one continuous block.
	MergeGap time.Duration
	// A time-series point takes the nearest reading within this distance.
	NearestReadingWindow time.Duration
	// Segments are assigned to the night of (start - NightCutoff), so a
	// segment starting at 02:00 belongs to the previous evening.
	NightCutoff time.Duration
}

func DefaultConfig() Config {
	return Config{
		MergeGap:             30 * time.Minute,
		NearestReadingWindow: 10 * time.Minute,
		NightCutoff:          12 * time.Hour,
	}
}

type Option func(*AppleHealthImporter)

func WithClock(fn func() time.Time) Option {
	return func(im *AppleHealthImporter) { im.now = fn }
}

func WithIDFunc(fn func() string) Option {
	return func(im *AppleHealthImporter) { im.newID = fn }
}

// AppleHealthImporter parses the export.xml produced by the iOS Health app.
type AppleHealthImporter struct {
	cfg   Config
	now   func() time.Time
	newID func() string
}

func NewAppleHealthImporter(cfg Config, opts ...Option) *AppleHealthImporter {
	im := &AppleHealthImporter{cfg: cfg, now: time.Now, newID: uuid.NewString}
	for _, opt := range opts {
		opt(im)
	}
	return im
}

// Result is the outcome of parsing one export.
type Result struct {
	Records               []domain.SleepRecord
	HeartRateReadings     int
	RespiratoryReadings   int
	EnvironmentalReadings int
	Skipped               int
}

var ErrMalformedExport = errors.New("malformed Apple Health export")

type exportRecord struct {
	Type          string
	Value         string
	SourceName    string
	SourceVersion string
	Device        string
	StartDate     string
	EndDate       string
}

type segment struct {
	start, end time.Time
	stage      domain.SleepStage // empty when the source did not stage the sleep
	source     string
	device     string
	version    string
}

type reading struct {
	at    time.Time
	value float64
}

type collected struct {
	segments      []segment
	heartRate     []reading
	respiratory   []reading
	environmental []reading
	skipped       int
}

// Import streams the export from r and builds one record per night for
// userID. Only sleep analysis, heart rate, respiratory rate and
// environmental audio exposure entries are read; everything else is skipped.
func (im *AppleHealthImporter) Import(ctx context.Context, userID string, r io.Reader) (*Result, error) {
	c, err := im.collect(ctx, r)
	if err != nil {
		return nil, err
	}

	now := im.now().UTC()
	records := im.assembleNights(userID, c.segments, now)
	for i := range records {
		im.enrich(&records[i], c)
	}

	return &Result{
		Records:               records,
		HeartRateReadings:     len(c.heartRate),
		RespiratoryReadings:   len(c.respiratory),
		EnvironmentalReadings: len(c.environmental),
		Skipped:               c.skipped,
	}, nil
}

func (im *AppleHealthImporter) collect(ctx context.Context, r io.Reader) (*collected, error) {
	dec := xml.NewDecoder(r)
	// Health exports declare DTDs and entities the decoder does not need.
	dec.Strict = false

	c := &collected{}
	for n := 0; ; n++ {
		if n%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedExport, err)
		}

		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "Record" {
			continue
		}
		c.add(parseAttrs(se.Attr))
	}
	c.sortReadings()
	return c, nil
}

func parseAttrs(attrs []xml.Attr) exportRecord {
	var rec exportRecord
	for _, a := range attrs {
		switch a.Name.Local {
		case "type":
			rec.Type = a.Value
		case "value":
			rec.Value = a.Value
		case "sourceName":
			rec.SourceName = a.Value
		case "sourceVersion":
			rec.SourceVersion = a.Value
		case "device":
			rec.Device = a.Value
		case "startDate":
			rec.StartDate = a.Value
		case "endDate":
			rec.EndDate = a.Value
		}
	}
	return rec
}

// sortReadings orders every vital series by time so nights can slice them
// with binary search. Readings sharing a timestamp keep their file order.
func (c *collected) sortReadings() {
	for _, rs := range [][]reading{c.heartRate, c.respiratory, c.environmental} {
		sort.SliceStable(rs, func(i, j int) bool { return rs[i].at.Before(rs[j].at) })
	}
}

func (c *collected) add(rec exportRecord) {
	switch rec.Type {
	case typeSleepAnalysis:
		stage, asleep := sleepValue(rec.Value)
		if !asleep {
			return
		}
		start, err1 := parseAppleDate(rec.StartDate)
		end, err2 := parseAppleDate(rec.EndDate)
		if err1 != nil || err2 != nil || !end.After(start) {
			c.skipped++
			return
		}
		c.segments = append(c.segments, segment{start: start, end: end, stage: stage, source: sourceOrUnknown(rec.SourceName), device: rec.Device, version: rec.SourceVersion})

	case typeHeartRate, typeRespiratoryRate, typeAudioExposure:
		at, err := parseAppleDate(rec.StartDate)
		if err != nil {
			c.skipped++
			return
		}
		value, err := strconv.ParseFloat(rec.Value, 64)
		if err != nil {
			c.skipped++
			return
		}
		switch rec.Type {
		case typeHeartRate:
			if value <= 0 {
				c.skipped++
				return
			}
			c.heartRate = append(c.heartRate, reading{at, value})
		case typeRespiratoryRate:
			if value <= 0 {
				c.skipped++
				return
			}
			c.respiratory = append(c.respiratory, reading{at, value})
		default:
			c.environmental = append(c.environmental, reading{at, value})
		}
	}
}

// sleepValue maps an HKCategoryValueSleepAnalysis value to a stage. The
// second result is false for in-bed and awake entries.
func sleepValue(v string) (domain.SleepStage, bool) {
	switch strings.TrimPrefix(v, sleepValuePrefix) {
	case "Asleep", "AsleepUnspecified":
		return "", true
	case "AsleepCore":
		return domain.StageLight, true
	case "AsleepDeep":
		return domain.StageDeep, true
	case "AsleepREM":
		return domain.StageREM, true
	default:
		return "", false
	}
}

func parseAppleDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range appleDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", s)
}

func sourceOrUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}
