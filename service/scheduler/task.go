package scheduler

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/chaptersix/taskgrid/interp"
	"github.com/chaptersix/taskgrid/store"
)

// TaskID is the stable identity of a task across suspend and resume.
type TaskID string

// Kind classifies a task for budgeting and introspection. A task's kind
// changes when it parks: a command that calls the timed-suspend primitive
// is a suspended (background) task from then on.
type Kind int

const (
	// KindCommand is an interactive command task.
	KindCommand Kind = iota
	// KindServerEvent is a server-originated event task.
	KindServerEvent
	// KindForked is a child task created by fork.
	KindForked
	// KindSuspended is a task parked by the timed-suspend primitive.
	KindSuspended
	// KindReading is a task parked awaiting an input line.
	KindReading
	// KindWorkerWait is a task parked awaiting an external worker result.
	KindWorkerWait
)

func (k Kind) String() string {
	switch k {
	case KindCommand:
		return "command"
	case KindServerEvent:
		return "server-event"
	case KindForked:
		return "forked"
	case KindSuspended:
		return "suspended"
	case KindReading:
		return "reading"
	case KindWorkerWait:
		return "worker-wait"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// Background reports whether the kind gets the smaller background budget.
func (k Kind) Background() bool {
	switch k {
	case KindForked, KindSuspended, KindReading, KindWorkerWait:
		return true
	default:
		return false
	}
}

// task is one execution of a program. Mutable fields are touched only by
// the single worker goroutine currently running it, or by the scheduler
// under its own lock while the task is queued. The kill flag is the one
// cross-thread signal.
type task struct {
	id    TaskID
	owner string
	// kind mutates at park boundaries; read under the same ownership rules
	// as the rest of the struct.
	kind    Kind
	program interp.Program
	args    []store.Value
	// stackCeiling is fixed at creation and survives suspend/resume and
	// conflict re-execution.
	stackCeiling int
	startTime    time.Time

	cont    interp.Continuation
	meter   *ResourceMeter
	txn     *TransactionContext
	attempt int

	// resume is delivered to the continuation before the next step.
	resume    store.Value
	hasResume bool

	killed atomic.Bool
}

// restart returns the task to its original starting point for conflict
// re-execution.
func (t *task) restart() {
	t.cont = t.program.Start(t.args)
	t.hasResume = false
	t.resume = nil
}

func (t *task) summary() TaskSummary {
	return TaskSummary{
		ID:        t.id,
		Owner:     t.owner,
		Kind:      t.kind,
		StartTime: t.startTime,
		Attempt:   t.attempt,
	}
}

// TriggerKind identifies what will promote a queued task back to runnable.
type TriggerKind int

const (
	// TriggerTimer wakes the task at an absolute time.
	TriggerTimer TriggerKind = iota
	// TriggerInput wakes the task when input arrives for its owner.
	TriggerInput
	// TriggerWorker wakes the task when the external worker reports.
	TriggerWorker
)

func (k TriggerKind) String() string {
	switch k {
	case TriggerTimer:
		return "timer"
	case TriggerInput:
		return "input"
	case TriggerWorker:
		return "worker"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

type (
	// TaskSummary is the coarse view of an active task. A running task's
	// call stack is a moving target on another thread, so no stack
	// snapshot is offered here.
	TaskSummary struct {
		ID        TaskID
		Owner     string
		Kind      Kind
		StartTime time.Time
		Attempt   int
	}

	// TaskDetail is the full view of a queued task, which is safely inert.
	// Stack is a deep copy; mutating it affects nothing.
	TaskDetail struct {
		TaskSummary
		Trigger   TriggerKind
		WakeTime  time.Time
		RequestID string
		Stack     []interp.Frame
	}
)
