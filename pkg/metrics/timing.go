// Package metrics records how long the viewer's pipeline stages take:
// snapshot loading, alert filtering, SQLite reads, report generation and
// frame rendering. Robot mode prints the collected stats. Set NV_METRICS=0
// to turn collection off.
//
//	defer metrics.Timer(metrics.AlertFilter)()
package metrics

import (
	"os"
	"sync"
	"time"
)

var (
	enabledMu sync.RWMutex
	enabled   = os.Getenv("NV_METRICS") != "0"
)

// Enabled reports whether timings are being collected.
func Enabled() bool {
	enabledMu.RLock()
	defer enabledMu.RUnlock()
	return enabled
}

// SetEnabled switches collection on or off.
func SetEnabled(e bool) {
	enabledMu.Lock()
	enabled = e
	enabledMu.Unlock()
}

// TimingMetric accumulates durations for one pipeline stage.
type TimingMetric struct {
	name string

	mu       sync.Mutex
	count    int64
	total    time.Duration
	min, max time.Duration
}

func newTimingMetric(name string) *TimingMetric {
	return &TimingMetric{name: name}
}

// Record adds one measurement.
func (m *TimingMetric) Record(d time.Duration) {
	if !Enabled() {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.count == 0 || d < m.min {
		m.min = d
	}
	if d > m.max {
		m.max = d
	}
	m.count++
	m.total += d
}

// Stats returns a consistent snapshot of the stage's measurements.
func (m *TimingMetric) Stats() TimingStats {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := TimingStats{
		Name:    m.name,
		Count:   m.count,
		TotalMs: ms(m.total),
		MaxMs:   ms(m.max),
		MinMs:   ms(m.min),
	}
	if m.count > 0 {
		s.AvgMs = ms(m.total / time.Duration(m.count))
	}
	return s
}

// Reset drops all measurements.
func (m *TimingMetric) Reset() {
	m.mu.Lock()
	m.count, m.total, m.min, m.max = 0, 0, 0, 0
	m.mu.Unlock()
}

func ms(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// TimingStats is the robot-mode view of one stage.
type TimingStats struct {
	Name    string  `json:"name"`
	Count   int64   `json:"count"`
	TotalMs float64 `json:"total_ms"`
	AvgMs   float64 `json:"avg_ms"`
	MaxMs   float64 `json:"max_ms"`
	MinMs   float64 `json:"min_ms,omitempty"`
}

// Timer starts timing m and returns the function that stops it.
func Timer(m *TimingMetric) func() {
	return TimerWithCallback(m, nil)
}

// TimerWithCallback is Timer that also hands the duration to cb.
func TimerWithCallback(m *TimingMetric, cb func(time.Duration)) func() {
	if m == nil || !Enabled() {
		return func() {}
	}
	start := time.Now()
	return func() {
		d := time.Since(start)
		m.Record(d)
		if cb != nil {
			cb(d)
		}
	}
}

// Pipeline stages.
var (
	SnapshotLoad = newTimingMetric("snapshot_load")
	AlertFilter  = newTimingMetric("alert_filter")
	SQLiteRead   = newTimingMetric("sqlite_read")
	ReportRender = newTimingMetric("report_render")
	UIRender     = newTimingMetric("ui_render")
)

var stages = []*TimingMetric{SnapshotLoad, AlertFilter, SQLiteRead, ReportRender, UIRender}

// ResetAll clears every stage.
func ResetAll() {
	for _, m := range stages {
		m.Reset()
	}
}

// AllTimingStats returns the stats of every stage that has measurements,
// in pipeline order.
func AllTimingStats() []TimingStats {
	var out []TimingStats
	for _, m := range stages {
		if s := m.Stats(); s.Count > 0 {
			out = append(out, s)
		}
	}
	return out
}
