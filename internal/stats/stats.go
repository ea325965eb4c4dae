// Package stats keeps rolling-window latency figures for paragraph layout.
package stats

import (
	"slices"
	"sync"
	"time"
)

type sample struct {
	at     time.Time
	micros int64
	lines  int
	failed bool
}

// Snapshot aggregates the layouts recorded inside the window.
// Latency figures cover successful layouts only.
type Snapshot struct {
	Count      int     `json:"count"`
	Failed     int     `json:"failed"`
	Lines      int     `json:"lines"`
	MinMicros  int64   `json:"min_us"`
	MaxMicros  int64   `json:"max_us"`
	AvgMicros  float64 `json:"avg_us"`
	P50Micros  float64 `json:"p50_us"`
	P95Micros  float64 `json:"p95_us"`
	P99Micros  float64 `json:"p99_us"`
	WindowSecs float64 `json:"window_secs"`
}

// LayoutStats is safe for concurrent use.
type LayoutStats struct {
	mu      sync.Mutex
	samples []sample
	window  time.Duration
	now     func() time.Time
}

func NewLayoutStats(window time.Duration) *LayoutStats {
	if window <= 0 {
		window = time.Hour
	}
	return &LayoutStats{
		samples: make([]sample, 0, 256),
		window:  window,
		now:     time.Now,
	}
}

// Record adds a successful layout that produced the given number of lines.
func (s *LayoutStats) Record(d time.Duration, lines int) {
	s.add(sample{micros: max(d.Microseconds(), 0), lines: lines})
}

// RecordFailure adds a layout that ended in an error.
func (s *LayoutStats) RecordFailure() {
	s.add(sample{failed: true})
}

func (s *LayoutStats) add(sm sample) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sm.at = s.now()
	s.pruneLocked(sm.at)
	s.samples = append(s.samples, sm)
}

func (s *LayoutStats) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(s.now())
	snap := Snapshot{WindowSecs: s.window.Seconds()}

	values := make([]int64, 0, len(s.samples))
	var sum int64
	for _, sm := range s.samples {
		if sm.failed {
			snap.Failed++
			continue
		}
		values = append(values, sm.micros)
		sum += sm.micros
		snap.Lines += sm.lines
	}
	if len(values) == 0 {
		return snap
	}
	slices.Sort(values)

	snap.Count = len(values)
	snap.MinMicros = values[0]
	snap.MaxMicros = values[len(values)-1]
	snap.AvgMicros = float64(sum) / float64(len(values))
	snap.P50Micros = percentile(values, 50)
	snap.P95Micros = percentile(values, 95)
	snap.P99Micros = percentile(values, 99)
	return snap
}

func (s *LayoutStats) pruneLocked(now time.Time) {
	cutoff := now.Add(-s.window)
	s.samples = slices.DeleteFunc(s.samples, func(sm sample) bool {
		return sm.at.Before(cutoff)
	})
}

// percentile interpolates linearly between the two nearest ranks.
func percentile(sorted []int64, pct float64) float64 {
	switch {
	case len(sorted) == 0:
		return 0
	case pct <= 0:
		return float64(sorted[0])
	case pct >= 100:
		return float64(sorted[len(sorted)-1])
	}
	rank := float64(len(sorted)-1) * pct / 100
	lower := int(rank)
	if lower+1 >= len(sorted) {
		return float64(sorted[lower])
	}
	lo, hi := float64(sorted[lower]), float64(sorted[lower+1])
	return lo + (hi-lo)*(rank-float64(lower))
}
