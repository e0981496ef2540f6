package clock

import (
	"sync"
	"time"
)

type (
	// TimeSource is an abstraction over wall-clock time so that components
	// which schedule future work can be driven deterministically in tests.
	TimeSource interface {
		Now() time.Time
		Since(t time.Time) time.Duration
		AfterFunc(d time.Duration, f func()) Timer
	}

	// Timer is a cancellable pending callback created by AfterFunc.
	Timer interface {
		// Reset reschedules the timer to fire after d. Returns true if the
		// timer was still pending.
		Reset(d time.Duration) bool
		// Stop cancels the timer. Returns true if the timer was still pending.
		Stop() bool
	}

	realTimeSource struct{}

	realTimer struct {
		t *time.Timer
	}

	// EventTimeSource is a TimeSource whose current time only moves when the
	// test calls Update or Advance. Timers registered via AfterFunc fire
	// synchronously from within Update/Advance once their deadline passes.
	EventTimeSource struct {
		mu     sync.Mutex
		now    time.Time
		timers []*eventTimer
	}

	eventTimer struct {
		source  *EventTimeSource
		fireAt  time.Time
		f       func()
		done    bool
		stopped bool
	}
)

// NewRealTimeSource returns a TimeSource backed by the system clock.
func NewRealTimeSource() TimeSource {
	return realTimeSource{}
}

func (realTimeSource) Now() time.Time {
	return time.Now().UTC()
}

func (realTimeSource) Since(t time.Time) time.Duration {
	return time.Since(t)
}

func (realTimeSource) AfterFunc(d time.Duration, f func()) Timer {
	return &realTimer{t: time.AfterFunc(d, f)}
}

func (r *realTimer) Reset(d time.Duration) bool {
	return r.t.Reset(d)
}

func (r *realTimer) Stop() bool {
	return r.t.Stop()
}

// NewEventTimeSource returns an EventTimeSource positioned at the zero time.
// Call Update to set the initial time before handing it to components.
func NewEventTimeSource() *EventTimeSource {
	return &EventTimeSource{}
}

func (e *EventTimeSource) Now() time.Time {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.now
}

func (e *EventTimeSource) Since(t time.Time) time.Duration {
	return e.Now().Sub(t)
}

func (e *EventTimeSource) AfterFunc(d time.Duration, f func()) Timer {
	e.mu.Lock()
	t := &eventTimer{source: e, fireAt: e.now.Add(d), f: f}
	e.timers = append(e.timers, t)
	e.mu.Unlock()
	e.fireDueTimers()
	return t
}

// Update sets the current time and fires every timer whose deadline has
// passed. Callbacks run on the calling goroutine without the lock held.
func (e *EventTimeSource) Update(now time.Time) {
	e.mu.Lock()
	e.now = now
	e.mu.Unlock()
	e.fireDueTimers()
}

// Advance moves the current time forward by d.
func (e *EventTimeSource) Advance(d time.Duration) {
	e.mu.Lock()
	e.now = e.now.Add(d)
	e.mu.Unlock()
	e.fireDueTimers()
}

func (e *EventTimeSource) fireDueTimers() {
	for {
		e.mu.Lock()
		var due *eventTimer
		remaining := e.timers[:0]
		for _, t := range e.timers {
			if due == nil && !t.done && !t.stopped && !t.fireAt.After(e.now) {
				t.done = true
				due = t
				continue
			}
			remaining = append(remaining, t)
		}
		e.timers = remaining
		e.mu.Unlock()
		if due == nil {
			return
		}
		due.f()
	}
}

func (t *eventTimer) Reset(d time.Duration) bool {
	t.source.mu.Lock()
	pending := !t.done && !t.stopped
	t.done = false
	t.stopped = false
	t.fireAt = t.source.now.Add(d)
	if !pending {
		t.source.timers = append(t.source.timers, t)
	}
	t.source.mu.Unlock()
	t.source.fireDueTimers()
	return pending
}

func (t *eventTimer) Stop() bool {
	t.source.mu.Lock()
	defer t.source.mu.Unlock()
	pending := !t.done && !t.stopped
	t.stopped = true
	return pending
}
