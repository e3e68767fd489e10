package analytics

import (
	"fmt"
	"math"
	"time"
)

const minutesPerDay = 24 * 60

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// populationStdDev is the standard deviation dividing by n.
func populationStdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	avg := mean(values)
	sumSquares := 0.0
	for _, v := range values {
		diff := v - avg
		sumSquares += diff * diff
	}
	return math.Sqrt(sumSquares / float64(len(values)))
}

// meanSuccessiveDiff is the average of values[i+1]-values[i].
func meanSuccessiveDiff(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	sum := 0.0
	for i := 1; i < len(values); i++ {
		sum += values[i] - values[i-1]
	}
	return sum / float64(len(values)-1)
}

// meanAbsSuccessiveDiff is the average of |values[i+1]-values[i]|.
func meanAbsSuccessiveDiff(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	sum := 0.0
	for i := 1; i < len(values); i++ {
		sum += math.Abs(values[i] - values[i-1])
	}
	return sum / float64(len(values)-1)
}

// minutesPastMidnight returns the wall-clock time of t in minutes.
func minutesPastMidnight(t time.Time) float64 {
	return float64(t.Hour()*60+t.Minute()) + float64(t.Second())/60
}

// circularMeanMinutes averages clock times on the 24h circle, so 23:50 and
// 00:10 average to 00:00. It falls back to the arithmetic mean when the
// times are spread evenly enough that no direction dominates.
func circularMeanMinutes(minutes []float64) float64 {
	var sinSum, cosSum float64
	for _, m := range minutes {
		theta := 2 * math.Pi * m / minutesPerDay
		sinSum += math.Sin(theta)
		cosSum += math.Cos(theta)
	}
	if math.Hypot(sinSum, cosSum) < 1e-9 {
		return mean(minutes)
	}
	angle := math.Atan2(sinSum, cosSum)
	m := angle / (2 * math.Pi) * minutesPerDay
	if m < 0 {
		m += minutesPerDay
	}
	return m
}

// unwrapAround shifts each clock time by a whole day when it lies more than
// half a day from center, putting every value on the same side of midnight.
func unwrapAround(minutes []float64, center float64) []float64 {
	out := make([]float64, len(minutes))
	for i, m := range minutes {
		switch d := m - center; {
		case d > minutesPerDay/2:
			out[i] = m - minutesPerDay
		case d < -minutesPerDay/2:
			out[i] = m + minutesPerDay
		default:
			out[i] = m
		}
	}
	return out
}

// wrappedStdDevMinutes is the population standard deviation of clock times
// after unwrapping them around their circular mean.
func wrappedStdDevMinutes(minutes []float64) (stdDev, center float64) {
	center = circularMeanMinutes(minutes)
	return populationStdDev(unwrapAround(minutes, center)), center
}

// classify maps v onto four buckets split at the ascending bounds.
func classify[R ~string](v float64, bounds [3]float64, labels [4]R) R {
	for i, b := range bounds {
		if v < b {
			return labels[i]
		}
	}
	return labels[3]
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// minutesToTimeString converts minutes after midnight to HH:MM.
func minutesToTimeString(minutes float64) string {
	total := int(math.Round(minutes))
	total = ((total % minutesPerDay) + minutesPerDay) % minutesPerDay
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
