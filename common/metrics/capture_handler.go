package metrics

import (
	"sync"
	"time"
)

type (
	// CaptureHandler is a Handler that records every emission in memory so
	// tests can assert on counter totals and timer observations.
	CaptureHandler struct {
		mu       sync.Mutex
		counters map[string]int64
		timers   map[string][]time.Duration
		gauges   map[string]float64
	}

	captureCounter struct {
		h    *CaptureHandler
		name string
	}

	captureTimer struct {
		h    *CaptureHandler
		name string
	}

	captureGauge struct {
		h    *CaptureHandler
		name string
	}
)

// NewCaptureHandler returns an empty capturing handler.
func NewCaptureHandler() *CaptureHandler {
	return &CaptureHandler{
		counters: make(map[string]int64),
		timers:   make(map[string][]time.Duration),
		gauges:   make(map[string]float64),
	}
}

func (h *CaptureHandler) Counter(name string) Counter {
	return captureCounter{h: h, name: name}
}

func (h *CaptureHandler) Timer(name string) Timer {
	return captureTimer{h: h, name: name}
}

func (h *CaptureHandler) Gauge(name string) Gauge {
	return captureGauge{h: h, name: name}
}

// CounterTotal returns the accumulated total for a counter name.
func (h *CaptureHandler) CounterTotal(name string) int64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.counters[name]
}

// TimerObservations returns all recorded durations for a timer name.
func (h *CaptureHandler) TimerObservations(name string) []time.Duration {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]time.Duration, len(h.timers[name]))
	copy(out, h.timers[name])
	return out
}

// GaugeValue returns the last recorded value for a gauge name.
func (h *CaptureHandler) GaugeValue(name string) float64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.gauges[name]
}

func (c captureCounter) Record(delta int64) {
	c.h.mu.Lock()
	defer c.h.mu.Unlock()
	c.h.counters[c.name] += delta
}

func (t captureTimer) Record(d time.Duration) {
	t.h.mu.Lock()
	defer t.h.mu.Unlock()
	t.h.timers[t.name] = append(t.h.timers[t.name], d)
}

func (g captureGauge) Record(v float64) {
	g.h.mu.Lock()
	defer g.h.mu.Unlock()
	g.h.gauges[g.name] = v
}
