package metrics

import (
	"time"
)

type (
	// Handler is the minimal metrics emission surface components depend on.
	Handler interface {
		Counter(name string) Counter
		Timer(name string) Timer
		Gauge(name string) Gauge
	}

	// Counter records monotonically accumulating counts.
	Counter interface {
		Record(delta int64)
	}

	// Timer records latency observations.
	Timer interface {
		Record(d time.Duration)
	}

	// Gauge records point-in-time values.
	Gauge interface {
		Record(v float64)
	}

	noopHandler struct{}
	noopCounter struct{}
	noopTimer   struct{}
	noopGauge   struct{}
)

// NoopMetricsHandler discards all metrics.
var NoopMetricsHandler Handler = noopHandler{}

func (noopHandler) Counter(string) Counter { return noopCounter{} }
func (noopHandler) Timer(string) Timer     { return noopTimer{} }
func (noopHandler) Gauge(string) Gauge     { return noopGauge{} }

func (noopCounter) Record(int64)       {}
func (noopTimer) Record(time.Duration) {}
func (noopGauge) Record(float64)       {}
