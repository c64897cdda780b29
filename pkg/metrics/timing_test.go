package metrics

import (
	"sync"
	"testing"
	"time"
)

func withEnabled(t *testing.T, on bool) {
	t.Helper()
	prev := Enabled()
	SetEnabled(on)
	t.Cleanup(func() { SetEnabled(prev) })
}

func TestTimingMetricStats(t *testing.T) {
	withEnabled(t, true)

	m := newTimingMetric("test")
	m.Record(4 * time.Millisecond)
	m.Record(2 * time.Millisecond)

	want := TimingStats{Name: "test", Count: 2, TotalMs: 6, AvgMs: 3, MaxMs: 4, MinMs: 2}
	if got := m.Stats(); got != want {
		t.Errorf("Stats() = %+v, want %+v", got, want)
	}

	m.Reset()
	if got := m.Stats(); got.Count != 0 || got.MinMs != 0 || got.AvgMs != 0 {
		t.Errorf("Stats() after Reset = %+v", got)
	}
}

func TestTimingMetricConcurrentRecord(t *testing.T) {
	withEnabled(t, true)

	m := newTimingMetric("concurrent")
	var wg sync.WaitGroup
	for i := 1; i <= 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.Record(time.Duration(i) * time.Millisecond)
		}()
	}
	wg.Wait()

	s := m.Stats()
	if s.Count != 50 || s.MinMs != 1 || s.MaxMs != 50 {
		t.Errorf("Stats() = %+v", s)
	}
}

func TestTimerDisabledIsNoop(t *testing.T) {
	withEnabled(t, false)

	m := newTimingMetric("off")
	Timer(m)()
	m.Record(time.Second)
	if m.Stats().Count != 0 {
		t.Errorf("disabled timer recorded %d measurements", m.Stats().Count)
	}
}

func TestTimerWithCallback(t *testing.T) {
	withEnabled(t, true)

	m := newTimingMetric("cb")
	called := false
	TimerWithCallback(m, func(time.Duration) { called = true })()
	if !called || m.Stats().Count != 1 {
		t.Errorf("callback called=%v count=%d", called, m.Stats().Count)
	}
	Timer(nil)()
}

func TestAllTimingStatsSkipsEmpty(t *testing.T) {
	withEnabled(t, true)
	ResetAll()
	t.Cleanup(ResetAll)

	AlertFilter.Record(time.Millisecond)
	SnapshotLoad.Record(time.Millisecond)
	stats := AllTimingStats()
	if len(stats) != 2 || stats[0].Name != "snapshot_load" || stats[1].Name != "alert_filter" {
		t.Errorf("AllTimingStats() = %+v", stats)
	}
}
