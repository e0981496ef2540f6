//go:generate mockgen -package scheduler -source interfaces.go -destination interfaces_mock.go

package scheduler

import (
	"github.com/chaptersix/taskgrid/common"
	"github.com/chaptersix/taskgrid/interp"
	"github.com/chaptersix/taskgrid/store"
)

type (
	// Scheduler admits tasks, runs them in parallel with snapshot
	// isolation, and owns every lifecycle transition between the Active
	// and Queued sets.
	Scheduler interface {
		common.Daemon

		// AdmitTask constructs a task and makes it runnable (foreground
		// kinds) or queued (background kinds, subject to the owner's
		// queued-task quota).
		AdmitTask(program interp.Program, args []store.Value, owner string, kind Kind) (TaskID, error)

		// KillTask cancels a task. For queued tasks removal is immediate
		// and guaranteed. For active tasks it is a request observed at the
		// next step boundary; callers needing certainty poll for the task's
		// disappearance. Returns false when the task is unknown.
		KillTask(id TaskID) bool

		// ActiveTasks lists runnable and running tasks, coarsely. Empty
		// owner matches all owners.
		ActiveTasks(owner string) []TaskSummary

		// QueuedTasks lists parked tasks in full detail. Empty owner
		// matches all owners.
		QueuedTasks(owner string) []TaskDetail

		// ProvideInput delivers an input line to the oldest task reading
		// for owner.
		ProvideInput(owner string, line store.Value) bool

		// CompleteWorkerRequest delivers an external worker's result (or
		// failure) to the task waiting on requestID.
		CompleteWorkerRequest(requestID string, result store.Value, workerErr error) bool
	}

	// AbortReporter receives every abnormal task abort: resource
	// exhaustion, stack overflow, uncaught guest errors, and conflict
	// retry exhaustion. Conflicts themselves never reach it; they resolve
	// by re-execution.
	AbortReporter interface {
		ReportAbort(report AbortReport)
	}

	// WorkerDispatcher hands worker-wait payloads to the external worker
	// pool. The worker answers through Scheduler.CompleteWorkerRequest.
	WorkerDispatcher interface {
		Dispatch(requestID string, workerKind string, payload store.Value)
	}

	// AbortReport describes one aborted task, including the call stack at
	// the moment of abort.
	AbortReport struct {
		TaskID  TaskID
		Owner   string
		Kind    Kind
		Cause   AbortCause
		Err     error
		Attempt int
		Stack   []interp.Frame
	}
)
