package metrics

import (
	"sync"
	"testing"
	"time"
)

func TestTimingMetric_Record(t *testing.T) {
	m := newTimingMetric("test")
	m.Record(10 * time.Millisecond)
	m.Record(30 * time.Millisecond)
	m.Record(20 * time.Millisecond)

	if m.Count() != 3 {
		t.Errorf("count = %d, want 3", m.Count())
	}
	if m.MinNs() != (10 * time.Millisecond).Nanoseconds() {
		t.Errorf("min = %d", m.MinNs())
	}
	if m.MaxNs() != (30 * time.Millisecond).Nanoseconds() {
		t.Errorf("max = %d", m.MaxNs())
	}
	if m.AvgNs() != (20 * time.Millisecond).Nanoseconds() {
		t.Errorf("avg = %d", m.AvgNs())
	}

	m.Reset()
	if m.Count() != 0 || m.MinNs() != 0 {
		t.Error("reset did not clear state")
	}
}

func TestTimingMetric_ConcurrentRecord(t *testing.T) {
	m := newTimingMetric("concurrent")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				m.Record(time.Millisecond)
			}
		}()
	}
	wg.Wait()

	if m.Count() != 800 {
		t.Errorf("count = %d, want 800", m.Count())
	}
}

func TestTimer(t *testing.T) {
	m := newTimingMetric("timer")
	done := Timer(m)
	time.Sleep(5 * time.Millisecond)
	done()

	if m.Count() != 1 {
		t.Fatalf("count = %d, want 1", m.Count())
	}
	if m.TotalNs() < (5 * time.Millisecond).Nanoseconds() {
		t.Errorf("recorded %dns, want at least 5ms", m.TotalNs())
	}
}

func TestTimer_Disabled(t *testing.T) {
	SetEnabled(false)
	defer SetEnabled(true)

	m := newTimingMetric("disabled")
	done := Timer(m)
	done()

	if m.Count() != 0 {
		t.Errorf("disabled timer still recorded %d measurements", m.Count())
	}
}

func TestStats(t *testing.T) {
	m := newTimingMetric("stats")
	m.Record(2 * time.Millisecond)
	m.Record(4 * time.Millisecond)

	s := m.Stats()
	if s.Name != "stats" || s.Count != 2 {
		t.Errorf("unexpected stats %+v", s)
	}
	if s.AvgMs < 2.9 || s.AvgMs > 3.1 {
		t.Errorf("avg = %v ms, want ~3", s.AvgMs)
	}
}
