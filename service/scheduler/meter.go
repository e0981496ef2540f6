package scheduler

import (
	"time"
)

type (
	// Budget is the immutable resource allowance for one execution segment.
	Budget struct {
		Ticks         int
		Wall          time.Duration
		MaxStackDepth int
	}

	// ResourceMeter tracks one task's remaining computation budget. It is
	// touched only by the worker goroutine currently executing the task.
	// A fresh meter is issued at first run, at every resume from the
	// queue, and at every conflict re-execution; it is never refreshed
	// mid-segment.
	ResourceMeter struct {
		ticksRemaining int
		deadline       time.Time
		maxStackDepth  int
		stackDepth     int
	}
)

// NewResourceMeter issues a meter for a segment starting at now.
func NewResourceMeter(budget Budget, now time.Time) *ResourceMeter {
	return &ResourceMeter{
		ticksRemaining: budget.Ticks,
		deadline:       now.Add(budget.Wall),
		maxStackDepth:  budget.MaxStackDepth,
	}
}

// Charge debits n ticks. It fails once the budget goes negative; the caller
// must abort the task before its next step.
func (m *ResourceMeter) Charge(n int) error {
	m.ticksRemaining -= n
	if m.ticksRemaining < 0 {
		return ErrTicksExhausted
	}
	return nil
}

// CheckDeadline fails once the wall-clock budget has passed.
func (m *ResourceMeter) CheckDeadline(now time.Time) error {
	if now.After(m.deadline) {
		return ErrSecondsExhausted
	}
	return nil
}

// EnterCall charges one call-stack level, failing at the ceiling.
func (m *ResourceMeter) EnterCall() error {
	if m.stackDepth >= m.maxStackDepth {
		return ErrStackOverflow
	}
	m.stackDepth++
	return nil
}

// ExitCall releases one call-stack level.
func (m *ResourceMeter) ExitCall() {
	if m.stackDepth > 0 {
		m.stackDepth--
	}
}

// TicksRemaining reports the undrawn tick budget.
func (m *ResourceMeter) TicksRemaining() int {
	if m.ticksRemaining < 0 {
		return 0
	}
	return m.ticksRemaining
}

// StackDepth reports the current call depth.
func (m *ResourceMeter) StackDepth() int {
	return m.stackDepth
}
