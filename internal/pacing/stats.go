package pacing

import (
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary describes a set of per-cycle elapsed-time samples.
type Summary struct {
	Count  uint64
	Mean   time.Duration
	StdDev time.Duration
	Min    time.Duration
	Max    time.Duration
}

// String formats the summary for log lines.
func (s Summary) String() string {
	if s.Count == 0 {
		return "no cycles"
	}
	return fmt.Sprintf("cycles=%d mean=%v stddev=%v min=%v max=%v",
		s.Count, s.Mean.Round(time.Microsecond), s.StdDev.Round(time.Microsecond),
		s.Min.Round(time.Microsecond), s.Max.Round(time.Microsecond))
}

// cycleStats collects per-cycle elapsed times. It keeps the samples since
// the last periodic report in a window, and streaming aggregates (Welford)
// over the whole run so unbounded runs stay bounded in memory.
type cycleStats struct {
	window []float64 // seconds, since last report

	count    uint64
	mean, m2 float64
	min, max float64
}

func newCycleStats() *cycleStats {
	return &cycleStats{min: math.Inf(1), max: math.Inf(-1)}
}

func (s *cycleStats) record(elapsed time.Duration) {
	sec := elapsed.Seconds()
	s.window = append(s.window, sec)

	s.count++
	delta := sec - s.mean
	s.mean += delta / float64(s.count)
	s.m2 += delta * (sec - s.mean)
	if sec < s.min {
		s.min = sec
	}
	if sec > s.max {
		s.max = sec
	}
}

// windowSummary summarizes the samples recorded since the previous call and
// resets the window.
func (s *cycleStats) windowSummary() Summary {
	if len(s.window) == 0 {
		return Summary{}
	}
	sum := Summary{
		Count: uint64(len(s.window)),
		Mean:  seconds(stat.Mean(s.window, nil)),
		Min:   seconds(floats.Min(s.window)),
		Max:   seconds(floats.Max(s.window)),
	}
	if len(s.window) > 1 {
		sum.StdDev = seconds(stat.StdDev(s.window, nil))
	}
	s.window = s.window[:0]
	return sum
}

// summary summarizes every cycle recorded since the collector was created.
func (s *cycleStats) summary() Summary {
	if s.count == 0 {
		return Summary{}
	}
	sum := Summary{
		Count: s.count,
		Mean:  seconds(s.mean),
		Min:   seconds(s.min),
		Max:   seconds(s.max),
	}
	if s.count > 1 {
		sum.StdDev = seconds(math.Sqrt(s.m2 / float64(s.count-1)))
	}
	return sum
}

func seconds(sec float64) time.Duration {
	return time.Duration(sec * float64(time.Second))
}
