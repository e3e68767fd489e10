package importer

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/blaisecz/sleep-data-service/internal/domain"
)

type block struct {
	start, end time.Time
}

// assembleNights groups asleep segments into one record per night.
func (im *AppleHealthImporter) assembleNights(userID string, segs []segment, now time.Time) []domain.SleepRecord {
	byNight := map[string][]segment{}
	for _, s := range segs {
		key := s.start.Add(-im.cfg.NightCutoff).Format(domain.DateLayout)
		byNight[key] = append(byNight[key], s)
	}

	nights := make([]string, 0, len(byNight))
	for k := range byNight {
		nights = append(nights, k)
	}
	sort.Strings(nights)

	records := make([]domain.SleepRecord, 0, len(nights))
	for _, date := range nights {
		records = append(records, im.buildNight(userID, date, byNight[date], now))
	}
	return records
}

func (im *AppleHealthImporter) buildNight(userID, date string, segs []segment, now time.Time) domain.SleepRecord {
	sort.SliceStable(segs, func(i, j int) bool { return segs[i].start.Before(segs[j].start) })

	start, end := segs[0].start, segs[0].end
	for _, s := range segs[1:] {
		if s.end.After(end) {
			end = s.end
		}
	}

	asleep := totalMinutes(mergeBlocks(segs, 0))
	blocks := mergeBlocks(segs, im.cfg.MergeGap)
	span := int(end.Sub(start).Minutes())
	awake := span - asleep

	phases := &domain.SleepPhases{AwakeMinutes: domain.IntPtr(awake)}
	staged := allStaged(segs)
	if staged {
		if deep, rem, ok := stageMinutes(segs, asleep); ok {
			phases.DeepSleepMinutes = domain.IntPtr(deep)
			phases.RemSleepMinutes = domain.IntPtr(rem)
			phases.LightSleepMinutes = domain.IntPtr(asleep - deep - rem)
		}
	}

	importedAt := now
	return domain.SleepRecord{
		ID:              im.newID(),
		UserID:          userID,
		Date:            date,
		SleepStart:      start,
		SleepEnd:        end,
		DurationMinutes: asleep,
		SleepPhases:     phases,
		TimeSeries:      stagePoints(segs, blocks, staged),
		MetaData: domain.MetaData{
			Source:     domain.SourceAppleHealth,
			ImportedAt: &importedAt,
			SourceName: joinUnique(segs, func(s segment) string { return s.source }),
			Device:     joinUnique(segs, func(s segment) string { return s.device }),
			Version:    joinUnique(segs, func(s segment) string { return s.version }),
			RawData: map[string]any{
				"segments_count": len(blocks),
				"staged":         staged,
			},
		},
	}
}

// mergeBlocks joins time-ordered segments whose gap is at most gap.
// With gap 0 it computes the union of overlapping segments.
func mergeBlocks(segs []segment, gap time.Duration) []block {
	var blocks []block
	for _, s := range segs {
		if n := len(blocks); n > 0 && s.start.Sub(blocks[n-1].end) <= gap {
			if s.end.After(blocks[n-1].end) {
				blocks[n-1].end = s.end
			}
			continue
		}
		blocks = append(blocks, block{start: s.start, end: s.end})
	}
	return blocks
}

func totalMinutes(blocks []block) int {
	var total time.Duration
	for _, b := range blocks {
		total += b.end.Sub(b.start)
	}
	return int(total.Minutes())
}

func allStaged(segs []segment) bool {
	for _, s := range segs {
		if s.stage == "" {
			return false
		}
	}
	return true
}

// stageMinutes sums deep and REM minutes. It reports false when segments
// overlap, since the per-stage totals would then exceed asleep time.
func stageMinutes(segs []segment, asleep int) (deep, rem int, ok bool) {
	var deepDur, remDur, total time.Duration
	for _, s := range segs {
		d := s.end.Sub(s.start)
		total += d
		switch s.stage {
		case domain.StageDeep:
			deepDur += d
		case domain.StageREM:
			remDur += d
		}
	}
	if int(total.Minutes()) != asleep {
		return 0, 0, false
	}
	return int(deepDur.Minutes()), int(remDur.Minutes()), true
}

// stagePoints marks each block start (or each staged segment start) and
// each block end as a transition to awake.
func stagePoints(segs []segment, blocks []block, staged bool) []domain.TimeSeriesPoint {
	var points []domain.TimeSeriesPoint
	if staged {
		for _, s := range segs {
			points = append(points, domain.TimeSeriesPoint{Timestamp: s.start, Stage: s.stage})
		}
	} else {
		for _, b := range blocks {
			points = append(points, domain.TimeSeriesPoint{Timestamp: b.start, Stage: domain.StageLight})
		}
	}
	for _, b := range blocks {
		points = append(points, domain.TimeSeriesPoint{Timestamp: b.end, Stage: domain.StageAwake})
	}
	sort.SliceStable(points, func(i, j int) bool { return points[i].Timestamp.Before(points[j].Timestamp) })
	return points
}

func joinUnique(segs []segment, field func(segment) string) string {
	seen := map[string]bool{}
	var values []string
	for _, s := range segs {
		v := field(s)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		values = append(values, v)
	}
	sort.Strings(values)
	return strings.Join(values, ", ")
}

// enrich attaches vitals and environment readings that fall inside the night.
func (im *AppleHealthImporter) enrich(rec *domain.SleepRecord, c *collected) {
	if hr := within(c.heartRate, rec.SleepStart, rec.SleepEnd); len(hr) > 0 {
		avg, lo, hi := summarize(hr)
		rec.HeartRate = &domain.HeartRate{Average: round1(avg), Min: round1(lo), Max: round1(hi)}
		for i := range rec.TimeSeries {
			if v, ok := nearest(hr, rec.TimeSeries[i].Timestamp, im.cfg.NearestReadingWindow); ok {
				rec.TimeSeries[i].HeartRate = &v
			}
		}
	}

	if resp := within(c.respiratory, rec.SleepStart, rec.SleepEnd); len(resp) > 0 {
		avg, _, _ := summarize(resp)
		rec.Breathing = &domain.Breathing{AverageRate: domain.Float64Ptr(round1(avg))}
		for i := range rec.TimeSeries {
			if v, ok := nearest(resp, rec.TimeSeries[i].Timestamp, im.cfg.NearestReadingWindow); ok {
				rec.TimeSeries[i].RespirationRate = &v
			}
		}
	}

	if noise := within(c.environmental, rec.SleepStart, rec.SleepEnd); len(noise) > 0 {
		avg, _, _ := summarize(noise)
		rec.Environment = &domain.Environment{NoiseLevel: domain.Float64Ptr(round1(avg))}
	}
}

// within returns the sub-slice of time-ordered readings in [from, to].
func within(readings []reading, from, to time.Time) []reading {
	lo := sort.Search(len(readings), func(i int) bool { return !readings[i].at.Before(from) })
	hi := sort.Search(len(readings), func(i int) bool { return readings[i].at.After(to) })
	if lo >= hi {
		return nil
	}
	return readings[lo:hi]
}

func summarize(readings []reading) (avg, lo, hi float64) {
	lo, hi = readings[0].value, readings[0].value
	sum := 0.0
	for _, r := range readings {
		sum += r.value
		lo = math.Min(lo, r.value)
		hi = math.Max(hi, r.value)
	}
	return sum / float64(len(readings)), lo, hi
}

// nearest returns the time-ordered reading closest to t if it is strictly
// within window. On a tie the earlier reading wins.
func nearest(readings []reading, t time.Time, window time.Duration) (float64, bool) {
	i := sort.Search(len(readings), func(i int) bool { return !readings[i].at.Before(t) })

	best := window
	var value float64
	found := false
	if i > 0 {
		// first of any readings sharing the preceding timestamp
		at := readings[i-1].at
		j := sort.Search(i, func(k int) bool { return !readings[k].at.Before(at) })
		if d := t.Sub(at); d < best {
			best, value, found = d, readings[j].value, true
		}
	}
	if i < len(readings) {
		if d := readings[i].at.Sub(t); d < best {
			value, found = readings[i].value, true
		}
	}
	return value, found
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
