package generator

import "time"

// Config holds the tunable constants of the sleep synthesis model.
type Config struct {
	// Per-sequence baselines, drawn once per Generate call.
	QualityBaselineMin  float64
	QualityBaselineMax  float64
	DurationBaselineMin float64 // hours
	DurationBaselineMax float64 // hours

	// Full-span effect of a ramp trend.
	QualityRamp  float64 // points
	DurationRamp float64 // hours

	// Half-width of the uniform day-to-day jitter.
	QualityNoise  float64
	DurationNoise float64 // hours

	MinDurationHours float64
	MaxDurationHours float64
	MinQuality       int
	MaxQuality       int

	// Bedtime hour is drawn from [BedtimeEarliestHour, BedtimeLatestHour], minute from [0,59].
	BedtimeEarliestHour int
	BedtimeLatestHour   int

	// Awake minutes are drawn from [AwakeMinutesMin, AwakeMinutesMax).
	AwakeMinutesMin int
	AwakeMinutesMax int

	// Phase shares grow linearly with quality/100.
	DeepShareBase  float64
	DeepShareSlope float64
	REMShareBase   float64
	REMShareSlope  float64
	// Light sleep keeps at least this share of asleep time.
	LightSleepFloor float64

	SampleInterval time.Duration
	CycleLength    time.Duration
	// Cycle position cut points for light, deep, light; the rest is REM.
	CycleBoundaries [3]float64
	// Chance that a sample is forced to awake regardless of cycle position.
	AwakeProbability float64

	// Chance that a record carries an environment block.
	EnvironmentProbability float64

	Location   *time.Location
	SourceName string
	Version    string
}

// DefaultConfig returns the reference model parameters.
func DefaultConfig() Config {
	return Config{
		QualityBaselineMin:  65,
		QualityBaselineMax:  80,
		DurationBaselineMin: 6.5,
		DurationBaselineMax: 7.5,

		QualityRamp:  15,
		DurationRamp: 2,

		QualityNoise:  5,
		DurationNoise: 0.5,

		MinDurationHours: 4,
		MaxDurationHours: 10,
		MinQuality:       40,
		MaxQuality:       98,

		BedtimeEarliestHour: 21,
		BedtimeLatestHour:   23,

		AwakeMinutesMin: 5,
		AwakeMinutesMax: 20,

		DeepShareBase:   0.15,
		DeepShareSlope:  0.15,
		REMShareBase:    0.15,
		REMShareSlope:   0.20,
		LightSleepFloor: 0.2,

		SampleInterval:   10 * time.Minute,
		CycleLength:      90 * time.Minute,
		CycleBoundaries:  [3]float64{0.1, 0.4, 0.7},
		AwakeProbability: 0.03,

		EnvironmentProbability: 0.7,

		Location:   time.UTC,
		SourceName: "Sleep Data Service",
		Version:    "1.0",
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Location == nil {
		c.Location = d.Location
	}
	if c.SampleInterval <= 0 {
		c.SampleInterval = d.SampleInterval
	}
	if c.CycleLength <= 0 {
		c.CycleLength = d.CycleLength
	}
	if c.BedtimeLatestHour < c.BedtimeEarliestHour {
		c.BedtimeEarliestHour, c.BedtimeLatestHour = d.BedtimeEarliestHour, d.BedtimeLatestHour
	}
	if c.AwakeMinutesMax <= c.AwakeMinutesMin {
		c.AwakeMinutesMax = c.AwakeMinutesMin + 1
	}
	if c.MaxDurationHours < c.MinDurationHours || c.MinDurationHours <= 0 {
		c.MinDurationHours, c.MaxDurationHours = d.MinDurationHours, d.MaxDurationHours
	}
	if c.MaxQuality < c.MinQuality {
		c.MinQuality, c.MaxQuality = d.MinQuality, d.MaxQuality
	}
	return c
}
