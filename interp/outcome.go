package interp

import (
	"time"

	"github.com/chaptersix/taskgrid/store"
)

// OutcomeKind discriminates StepOutcome.
type OutcomeKind int

const (
	// OutcomeContinue means the step finished and the next step should run.
	OutcomeContinue OutcomeKind = iota
	// OutcomeSuspend means the continuation hit a suspension point; Request
	// describes it.
	OutcomeSuspend
	// OutcomeComplete means the program finished normally with Value.
	OutcomeComplete
	// OutcomeFailure means an uncaught guest error; Err carries it.
	OutcomeFailure
)

// SuspendKind discriminates SuspendRequest.
type SuspendKind int

const (
	// SuspendFork creates a delayed child task; the parent keeps running.
	SuspendFork SuspendKind = iota
	// SuspendSleep parks the task until a wake time.
	SuspendSleep
	// SuspendRead parks the task until input arrives for its owner.
	SuspendRead
	// SuspendWorkerWait parks the task until an external worker reports.
	SuspendWorkerWait
	// SuspendCommit commits the current transaction and keeps running;
	// resumes with CommitValue.
	SuspendCommit
	// SuspendRollback discards the current transaction and aborts the task.
	SuspendRollback
	// SuspendCommitIfNeeded commits only when the remaining tick budget is
	// below the threshold; resumes with whether a commit happened.
	SuspendCommitIfNeeded
)

type (
	// StepOutcome is the tagged result of one continuation step. Ticks is
	// the computation cost of the step regardless of outcome.
	StepOutcome struct {
		Kind    OutcomeKind
		Ticks   int
		Request *SuspendRequest
		Value   store.Value
		Err     error
	}

	// SuspendRequest describes one suspension point. Exactly the fields for
	// its Kind are set.
	SuspendRequest struct {
		Kind SuspendKind

		// Delay applies to SuspendFork and SuspendSleep.
		Delay time.Duration
		// Child is the forked program, already carrying a by-value snapshot
		// of the parent's bindings at fork time.
		Child Program

		// WorkerKind and WorkerPayload apply to SuspendWorkerWait.
		WorkerKind    string
		WorkerPayload store.Value

		// TickThreshold applies to SuspendCommitIfNeeded.
		TickThreshold int

		// CommitValue applies to SuspendCommit: a value passed through the
		// commit and delivered back on success.
		CommitValue store.Value
	}
)

// ContinueOutcome builds an OutcomeContinue result.
func ContinueOutcome(ticks int) StepOutcome {
	return StepOutcome{Kind: OutcomeContinue, Ticks: ticks}
}

// CompleteOutcome builds an OutcomeComplete result.
func CompleteOutcome(ticks int, value store.Value) StepOutcome {
	return StepOutcome{Kind: OutcomeComplete, Ticks: ticks, Value: value}
}

// FailureOutcome builds an OutcomeFailure result.
func FailureOutcome(ticks int, err error) StepOutcome {
	return StepOutcome{Kind: OutcomeFailure, Ticks: ticks, Err: err}
}

// SuspendOutcome builds an OutcomeSuspend result.
func SuspendOutcome(ticks int, req *SuspendRequest) StepOutcome {
	return StepOutcome{Kind: OutcomeSuspend, Ticks: ticks, Request: req}
}
