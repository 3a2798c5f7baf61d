// Package profiler - lightweight stage timing for the diffusion pipeline.
//
// The tracker records wall-clock durations per named stage (decode, filter,
// encode, ...) and renders a compact report. It is thread-safe so parallel
// callers can share one tracker.
package profiler

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// TimeTracker tracks timing statistics for one named stage.
type TimeTracker struct {
	name      string
	totalTime time.Duration
	minTime   time.Duration
	maxTime   time.Duration
	count     int64
}

// Tracker aggregates stage timings.
type Tracker struct {
	mu     sync.Mutex
	stages map[string]*TimeTracker
}

// New returns an empty tracker.
func New() *Tracker {
	return &Tracker{stages: make(map[string]*TimeTracker)}
}

// Track runs fn and records its duration under the given stage name.
func (t *Tracker) Track(stage string, fn func()) {
	start := time.Now()
	fn()
	t.Record(stage, time.Since(start))
}

// Record adds one observed duration to a stage.
func (t *Tracker) Record(stage string, d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	tracker, ok := t.stages[stage]
	if !ok {
		tracker = &TimeTracker{name: stage, minTime: d, maxTime: d}
		t.stages[stage] = tracker
	}
	tracker.totalTime += d
	tracker.count++
	if d < tracker.minTime {
		tracker.minTime = d
	}
	if d > tracker.maxTime {
		tracker.maxTime = d
	}
}

// Stage returns the accumulated total for one stage, or zero if the stage
// was never recorded.
func (t *Tracker) Stage(stage string) time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	if tracker, ok := t.stages[stage]; ok {
		return tracker.totalTime
	}
	return 0
}

// Report renders one line per stage, sorted by total time descending.
func (t *Tracker) Report() string {
	t.mu.Lock()
	defer t.mu.Unlock()

	trackers := make([]*TimeTracker, 0, len(t.stages))
	for _, tracker := range t.stages {
		trackers = append(trackers, tracker)
	}
	sort.Slice(trackers, func(i, j int) bool {
		return trackers[i].totalTime > trackers[j].totalTime
	})

	var b strings.Builder
	for _, tracker := range trackers {
		avg := tracker.totalTime / time.Duration(tracker.count)
		fmt.Fprintf(&b, "%-12s total=%v count=%d avg=%v min=%v max=%v\n",
			tracker.name, tracker.totalTime, tracker.count, avg, tracker.minTime, tracker.maxTime)
	}
	return b.String()
}
