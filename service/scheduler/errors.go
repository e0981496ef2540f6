package scheduler

import (
	"errors"
	"fmt"
)

// AbortCause classifies why a task was aborted. All causes funnel through
// one AbortReporter so the host presents a uniform failure notification;
// commit conflicts never appear here because they resolve by re-execution.
type AbortCause int

const (
	// AbortCauseTickLimit means the tick budget ran out.
	AbortCauseTickLimit AbortCause = iota
	// AbortCauseSecondLimit means the wall-clock budget ran out.
	AbortCauseSecondLimit
	// AbortCauseStackLimit means an uncaught stack-ceiling error surfaced.
	AbortCauseStackLimit
	// AbortCauseTaskError means an uncaught guest error.
	AbortCauseTaskError
	// AbortCauseRetryExhausted means the task's commits kept conflicting
	// past the retry policy's attempt cap.
	AbortCauseRetryExhausted
)

func (c AbortCause) String() string {
	switch c {
	case AbortCauseTickLimit:
		return "tick-limit"
	case AbortCauseSecondLimit:
		return "second-limit"
	case AbortCauseStackLimit:
		return "stack-limit"
	case AbortCauseTaskError:
		return "task-error"
	case AbortCauseRetryExhausted:
		return "retry-exhausted"
	default:
		return fmt.Sprintf("unknown(%d)", int(c))
	}
}

// ErrTicksExhausted aborts a task whose tick budget reached zero.
var ErrTicksExhausted = errors.New("scheduler: tick budget exhausted")

// ErrSecondsExhausted aborts a task whose wall-clock budget passed.
var ErrSecondsExhausted = errors.New("scheduler: seconds budget exhausted")

// ErrStackOverflow is returned by EnterCall at the call-depth ceiling.
var ErrStackOverflow = errors.New("scheduler: call stack ceiling exceeded")

// ErrNotRunning is returned by AdmitTask when the scheduler is not started.
var ErrNotRunning = errors.New("scheduler: not running")

// ErrTransactionClosed reports store access outside a live transaction.
var ErrTransactionClosed = errors.New("scheduler: transaction already committed or discarded")

var errUnknownSuspendKind = errors.New("scheduler: unknown suspension kind")

// QuotaExceededError refuses creation of a queued task that would push an
// owner past its queued-task limit.
type QuotaExceededError struct {
	Owner string
	Limit int
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("scheduler: owner %s at queued-task limit %d", e.Owner, e.Limit)
}
