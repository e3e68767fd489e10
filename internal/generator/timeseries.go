package generator

import (
	"time"

	"github.com/blaisecz/sleep-data-service/internal/domain"
)

// timeSeries samples [start, end) at the configured interval. Each sample's
// stage follows its position inside a repeating sleep cycle, except for
// brief random wakings.
func (g *Generator) timeSeries(rng Rand, start, end time.Time, hr domain.HeartRate) []domain.TimeSeriesPoint {
	cfg := g.cfg
	points := make([]domain.TimeSeriesPoint, 0, int(end.Sub(start)/cfg.SampleInterval)+1)

	for t := start; t.Before(end); t = t.Add(cfg.SampleInterval) {
		stage := g.stageAt(rng, t.Sub(start))

		var heartRate, movement float64
		switch stage {
		case domain.StageDeep:
			heartRate = hr.Min + uniform(rng, 0, 5)
			movement = uniform(rng, 0, 0.1)
		case domain.StageREM:
			heartRate = hr.Average + uniform(rng, -5, 10)
			movement = uniform(rng, 0.1, 0.5)
		case domain.StageLight:
			heartRate = hr.Average + uniform(rng, -7, 3)
			movement = uniform(rng, 0.1, 0.3)
		default:
			heartRate = hr.Average + uniform(rng, 5, 15)
			movement = uniform(rng, 0.5, 1.0)
		}

		points = append(points, domain.TimeSeriesPoint{
			Timestamp:       t,
			Stage:           stage,
			HeartRate:       domain.Float64Ptr(round1(heartRate)),
			Movement:        domain.Float64Ptr(round2(movement)),
			RespirationRate: domain.Float64Ptr(round1(12 + uniform(rng, -2, 2))),
		})
	}
	return points
}

func (g *Generator) stageAt(rng Rand, elapsed time.Duration) domain.SleepStage {
	if rng.Float64() < g.cfg.AwakeProbability {
		return domain.StageAwake
	}
	pos := float64(elapsed%g.cfg.CycleLength) / float64(g.cfg.CycleLength)
	b := g.cfg.CycleBoundaries
	switch {
	case pos < b[0]:
		return domain.StageLight
	case pos < b[1]:
		return domain.StageDeep
	case pos < b[2]:
		return domain.StageLight
	default:
		return domain.StageREM
	}
}
