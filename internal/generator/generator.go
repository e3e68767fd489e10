// Package generator synthesizes plausible sleep records for demo and test
// users. Generation is pure: it performs no I/O and keeps no state between
// calls, so a single Generator can be shared by concurrent requests.
package generator

import (
	"math"
	"math/rand"
	"time"

	"github.com/blaisecz/sleep-data-service/internal/domain"
	"github.com/google/uuid"
)

// Rand is the subset of *math/rand.Rand the model draws from.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// Request describes one generation run. StartDate and EndDate are inclusive
// and only their calendar day matters.
type Request struct {
	UserID            string
	StartDate         time.Time
	EndDate           time.Time
	IncludeTimeSeries bool
	QualityTrend      domain.QualityTrend
	DurationTrend     domain.DurationTrend
}

type Option func(*Generator)

// WithRandSource replaces the per-call random source factory. Tests use it
// to get reproducible output.
func WithRandSource(fn func() Rand) Option {
	return func(g *Generator) { g.newRand = fn }
}

// WithClock sets the clock used for meta_data.generated_at.
func WithClock(fn func() time.Time) Option {
	return func(g *Generator) { g.now = fn }
}

// WithIDFunc sets the record id factory.
func WithIDFunc(fn func() string) Option {
	return func(g *Generator) { g.newID = fn }
}

type Generator struct {
	cfg     Config
	newRand func() Rand
	now     func() time.Time
	newID   func() string
}

func New(cfg Config, opts ...Option) *Generator {
	g := &Generator{
		cfg: cfg.withDefaults(),
		newRand: func() Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		},
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Config returns the effective model parameters.
func (g *Generator) Config() Config {
	return g.cfg
}

// Generate returns one record per calendar day in [StartDate, EndDate],
// ordered by date. An inverted range yields an empty slice.
func (g *Generator) Generate(req Request) []domain.SleepRecord {
	start := g.calendarDay(req.StartDate)
	end := g.calendarDay(req.EndDate)
	if end.Before(start) {
		return []domain.SleepRecord{}
	}

	daysTotal := DayCount(start, end)
	rng := g.newRand()
	now := g.now().UTC()

	p := persona{
		quality:  uniform(rng, g.cfg.QualityBaselineMin, g.cfg.QualityBaselineMax),
		duration: uniform(rng, g.cfg.DurationBaselineMin, g.cfg.DurationBaselineMax),
	}

	records := make([]domain.SleepRecord, 0, daysTotal)
	for i := 0; i < daysTotal; i++ {
		date := start.AddDate(0, 0, i)
		progress := float64(i+1) / float64(daysTotal)
		records = append(records, g.night(rng, req, p, date, progress, now))
	}
	return records
}

// DayCount is the inclusive number of calendar days between two midnights.
func DayCount(start, end time.Time) int {
	if end.Before(start) {
		return 0
	}
	return int(math.Round(end.Sub(start).Hours()/24)) + 1
}

// persona is the stable baseline of the synthetic user for one span.
type persona struct {
	quality  float64
	duration float64 // hours
}

func (g *Generator) night(rng Rand, req Request, p persona, date time.Time, progress float64, now time.Time) domain.SleepRecord {
	cfg := g.cfg

	qualityMod := g.qualityModifier(rng, req.QualityTrend, progress)
	durationMod := g.durationModifier(rng, req.DurationTrend, progress)

	hour := cfg.BedtimeEarliestHour + rng.Intn(cfg.BedtimeLatestHour-cfg.BedtimeEarliestHour+1)
	minute := rng.Intn(60)
	sleepStart := time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, cfg.Location)

	hours := clamp(p.duration+durationMod+uniform(rng, -cfg.DurationNoise, cfg.DurationNoise), cfg.MinDurationHours, cfg.MaxDurationHours)
	spanMinutes := int(math.Round(hours * 60))
	sleepEnd := sleepStart.Add(time.Duration(spanMinutes) * time.Minute)

	quality := int(clamp(p.quality+qualityMod+uniform(rng, -cfg.QualityNoise, cfg.QualityNoise), float64(cfg.MinQuality), float64(cfg.MaxQuality)))
	q := float64(quality) / 100

	awake := cfg.AwakeMinutesMin + rng.Intn(cfg.AwakeMinutesMax-cfg.AwakeMinutesMin)
	asleep := spanMinutes - awake
	deepShare, remShare := g.phaseShares(q)
	deep := int(float64(asleep) * deepShare)
	rem := int(float64(asleep) * remShare)
	light := asleep - deep - rem

	hrAvg := 70 - q*15 + uniform(rng, -3, 3)
	hrMin := hrAvg - (5 + q*10) + uniform(rng, -2, 2)
	hrMax := hrAvg + (15 - q*5) + uniform(rng, -2, 2)

	breathingRate := round1(12 + uniform(rng, -2, 2))
	disruptions := int(uniform(rng, 0, 5) * (1 - q))

	generatedAt := now
	rec := domain.SleepRecord{
		ID:              g.newID(),
		UserID:          req.UserID,
		Date:            date.Format(domain.DateLayout),
		SleepStart:      sleepStart,
		SleepEnd:        sleepEnd,
		DurationMinutes: asleep,
		SleepPhases: &domain.SleepPhases{
			DeepSleepMinutes:  domain.IntPtr(deep),
			RemSleepMinutes:   domain.IntPtr(rem),
			LightSleepMinutes: domain.IntPtr(light),
			AwakeMinutes:      domain.IntPtr(awake),
		},
		SleepQuality: domain.IntPtr(quality),
		HeartRate: &domain.HeartRate{
			Average: round1(hrAvg),
			Min:     round1(hrMin),
			Max:     round1(hrMax),
		},
		Breathing: &domain.Breathing{
			AverageRate: &breathingRate,
			Disruptions: &disruptions,
		},
		MetaData: domain.MetaData{
			Source:      domain.SourceGenerated,
			GeneratedAt: &generatedAt,
			SourceName:  cfg.SourceName,
			Version:     cfg.Version,
		},
	}

	if rng.Float64() < cfg.EnvironmentProbability {
		rec.Environment = &domain.Environment{
			Temperature: domain.Float64Ptr(round1(20 + uniform(rng, -3, 3))),
			Humidity:    domain.Float64Ptr(round1(50 + uniform(rng, -15, 15))),
			NoiseLevel:  domain.Float64Ptr(round1(20 + uniform(rng, 0, 15))),
			LightLevel:  domain.Float64Ptr(round1(uniform(rng, 0, 5))),
		}
	}

	if req.IncludeTimeSeries {
		rec.TimeSeries = g.timeSeries(rng, sleepStart, sleepEnd, *rec.HeartRate)
	}

	return rec
}

func (g *Generator) qualityModifier(rng Rand, trend domain.QualityTrend, progress float64) float64 {
	switch trend {
	case domain.QualityImproving:
		return progress * g.cfg.QualityRamp
	case domain.QualityDeclining:
		return -progress * g.cfg.QualityRamp
	case domain.QualityStable:
		return 0
	default:
		return uniform(rng, -g.cfg.QualityNoise, g.cfg.QualityNoise)
	}
}

func (g *Generator) durationModifier(rng Rand, trend domain.DurationTrend, progress float64) float64 {
	switch trend {
	case domain.DurationIncreasing:
		return progress * g.cfg.DurationRamp
	case domain.DurationDecreasing:
		return -progress * g.cfg.DurationRamp
	case domain.DurationStable:
		return 0
	default:
		return uniform(rng, -g.cfg.DurationNoise, g.cfg.DurationNoise)
	}
}

// phaseShares returns the deep and REM fractions of asleep time for a
// quality factor in [0,1], rescaled so light sleep keeps its floor.
func (g *Generator) phaseShares(q float64) (deep, rem float64) {
	deep = g.cfg.DeepShareBase + q*g.cfg.DeepShareSlope
	rem = g.cfg.REMShareBase + q*g.cfg.REMShareSlope
	ceiling := 1 - g.cfg.LightSleepFloor
	if total := deep + rem; total > ceiling && total > 0 {
		scale := ceiling / total
		deep *= scale
		rem *= scale
	}
	return deep, rem
}

// calendarDay keeps the calendar date as written on t, placed at midnight in
// the configured location.
func (g *Generator) calendarDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, g.cfg.Location)
}

func uniform(rng Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
