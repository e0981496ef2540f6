package scheduler

import (
	"container/heap"
	"sync"
	"sync/atomic"
	"time"

	"github.com/chaptersix/taskgrid/common"
	"github.com/chaptersix/taskgrid/common/clock"
	"github.com/chaptersix/taskgrid/common/log"
	"github.com/chaptersix/taskgrid/common/log/tag"
	"github.com/chaptersix/taskgrid/common/metrics"
	"github.com/chaptersix/taskgrid/common/quotas"
	"github.com/chaptersix/taskgrid/interp"
	"github.com/chaptersix/taskgrid/store"
)

// registryIdleDelay is the timer period while no timed entry is pending.
const registryIdleDelay = time.Hour

type (
	// queueEntry is one parked task plus the single trigger that will
	// promote it. Exactly the fields for its trigger kind are set.
	queueEntry struct {
		task     *task
		trigger  TriggerKind
		parkedAt time.Time

		wakeTime  time.Time // TriggerTimer
		requestID string    // TriggerWorker

		// wakeValue is delivered through Resume at promotion when deliver
		// is set. Forked children start fresh and get no delivery.
		wakeValue store.Value
		deliver   bool

		heapIndex int
	}

	promoteFn func(t *task, resume store.Value, deliver bool)

	// suspensionRegistry holds every queued task. Queued tasks hold no
	// open transaction and are touched only under the registry lock, which
	// is what makes detailed introspection of them safe.
	suspensionRegistry struct {
		status         int32
		timeSource     clock.TimeSource
		logger         log.Logger
		metricsHandler metrics.Handler
		promote        promoteFn
		quota          *quotas.CountLimiter

		mu      sync.Mutex
		byID    map[TaskID]*queueEntry
		timed   timedHeap
		reading map[string][]*queueEntry
		worker  map[string]*queueEntry
		timer   clock.Timer
	}
)

func newSuspensionRegistry(
	timeSource clock.TimeSource,
	ownerQueuedTaskLimit int,
	promote promoteFn,
	logger log.Logger,
	metricsHandler metrics.Handler,
) *suspensionRegistry {
	return &suspensionRegistry{
		status:         common.DaemonStatusInitialized,
		timeSource:     timeSource,
		logger:         logger,
		metricsHandler: metricsHandler,
		promote:        promote,
		quota:          quotas.NewCountLimiter(ownerQueuedTaskLimit),
		byID:           make(map[TaskID]*queueEntry),
		reading:        make(map[string][]*queueEntry),
		worker:         make(map[string]*queueEntry),
	}
}

func (r *suspensionRegistry) Start() {
	if !atomic.CompareAndSwapInt32(&r.status, common.DaemonStatusInitialized, common.DaemonStatusStarted) {
		return
	}
	r.timer = r.timeSource.AfterFunc(registryIdleDelay, r.onTimer)
	r.rearm()
}

func (r *suspensionRegistry) Stop() {
	if !atomic.CompareAndSwapInt32(&r.status, common.DaemonStatusStarted, common.DaemonStatusStopped) {
		return
	}
	r.timer.Stop()
	r.logger.Info("suspension registry stopped", tag.QueueSize(r.size()))
}

func (r *suspensionRegistry) running() bool {
	return atomic.LoadInt32(&r.status) == common.DaemonStatusStarted
}

// reserve takes one queued-task quota slot for owner ahead of a park whose
// commit has not happened yet. The slot is handed to a later addXxx call
// made with reserved=true, or returned with unreserve.
func (r *suspensionRegistry) reserve(owner string) error {
	if !r.quota.TryAcquire(owner) {
		return &QuotaExceededError{Owner: owner, Limit: r.quota.Limit()}
	}
	return nil
}

func (r *suspensionRegistry) unreserve(owner string) {
	r.quota.Release(owner)
}

// addTimed parks a task until wakeTime. Fails without parking when the
// owner is at its queued-task quota (unless the slot was reserved).
func (r *suspensionRegistry) addTimed(t *task, wakeTime time.Time, wakeValue store.Value, deliver bool, reserved bool) error {
	entry := &queueEntry{
		task:      t,
		trigger:   TriggerTimer,
		wakeTime:  wakeTime,
		wakeValue: wakeValue,
		deliver:   deliver,
	}
	if err := r.add(entry, reserved); err != nil {
		return err
	}
	r.rearm()
	return nil
}

// addReading parks a task until input arrives for its owner.
func (r *suspensionRegistry) addReading(t *task, reserved bool) error {
	return r.add(&queueEntry{task: t, trigger: TriggerInput}, reserved)
}

// addWorkerWait parks a task until the external worker reports under
// requestID.
func (r *suspensionRegistry) addWorkerWait(t *task, requestID string, reserved bool) error {
	return r.add(&queueEntry{task: t, trigger: TriggerWorker, requestID: requestID}, reserved)
}

func (r *suspensionRegistry) add(entry *queueEntry, reserved bool) error {
	t := entry.task
	if !reserved {
		if err := r.reserve(t.owner); err != nil {
			return err
		}
	}
	entry.parkedAt = r.timeSource.Now()

	r.mu.Lock()
	r.byID[t.id] = entry
	switch entry.trigger {
	case TriggerTimer:
		heap.Push(&r.timed, entry)
	case TriggerInput:
		r.reading[t.owner] = append(r.reading[t.owner], entry)
	case TriggerWorker:
		r.worker[entry.requestID] = entry
	}
	r.mu.Unlock()

	r.metricsHandler.Counter("registry_parked").Record(1)
	r.logger.Debug("task parked",
		tag.TaskID(string(t.id)),
		tag.TaskKind(t.kind.String()),
		tag.Owner(t.owner),
		tag.WakeTime(entry.wakeTime),
	)
	return nil
}

// provideInput promotes the oldest reading task for owner, delivering line
// as the read's return value. Returns false when no task is reading.
func (r *suspensionRegistry) provideInput(owner string, line store.Value) bool {
	r.mu.Lock()
	pending := r.reading[owner]
	if len(pending) == 0 {
		r.mu.Unlock()
		return false
	}
	entry := pending[0]
	if len(pending) == 1 {
		delete(r.reading, owner)
	} else {
		r.reading[owner] = pending[1:]
	}
	delete(r.byID, entry.task.id)
	r.mu.Unlock()

	r.quota.Release(owner)
	r.promoteEntry(entry, line, true)
	return true
}

// completeWorkerRequest promotes the task waiting on requestID. A worker
// failure is delivered as a guest-visible error value.
func (r *suspensionRegistry) completeWorkerRequest(requestID string, result store.Value, workerErr error) bool {
	r.mu.Lock()
	entry, ok := r.worker[requestID]
	if !ok {
		r.mu.Unlock()
		return false
	}
	delete(r.worker, requestID)
	delete(r.byID, entry.task.id)
	r.mu.Unlock()

	r.quota.Release(entry.task.owner)
	if workerErr != nil {
		result = interp.ErrorValue{Err: workerErr}
	}
	r.promoteEntry(entry, result, true)
	return true
}

// remove takes a task out of the registry without promoting it. This is the
// kill path: immediate and guaranteed for queued tasks.
func (r *suspensionRegistry) remove(id TaskID) (*task, bool) {
	r.mu.Lock()
	entry, ok := r.byID[id]
	if !ok {
		r.mu.Unlock()
		return nil, false
	}
	delete(r.byID, id)
	switch entry.trigger {
	case TriggerTimer:
		heap.Remove(&r.timed, entry.heapIndex)
	case TriggerInput:
		pending := r.reading[entry.task.owner]
		for i, e := range pending {
			if e == entry {
				pending = append(pending[:i], pending[i+1:]...)
				break
			}
		}
		if len(pending) == 0 {
			delete(r.reading, entry.task.owner)
		} else {
			r.reading[entry.task.owner] = pending
		}
	case TriggerWorker:
		delete(r.worker, entry.requestID)
	}
	r.mu.Unlock()

	r.quota.Release(entry.task.owner)
	return entry.task, true
}

// queuedDetails returns the full view of queued tasks. An empty owner
// matches everything. Stacks are deep copies; queued tasks are inert so the
// copy is taken without racing any worker.
func (r *suspensionRegistry) queuedDetails(owner string) []TaskDetail {
	r.mu.Lock()
	entries := make([]*queueEntry, 0, len(r.byID))
	for _, entry := range r.byID {
		if owner != "" && entry.task.owner != owner {
			continue
		}
		entries = append(entries, entry)
	}

	details := make([]TaskDetail, 0, len(entries))
	for _, entry := range entries {
		detail := TaskDetail{
			TaskSummary: entry.task.summary(),
			Trigger:     entry.trigger,
			WakeTime:    entry.wakeTime,
			RequestID:   entry.requestID,
		}
		if entry.task.cont != nil {
			stack, err := interp.CopyFrames(entry.task.cont.Stack())
			if err != nil {
				r.logger.Warn("failed to copy queued task stack",
					tag.TaskID(string(entry.task.id)),
					tag.Error(err),
				)
			}
			detail.Stack = stack
		}
		details = append(details, detail)
	}
	r.mu.Unlock()
	return details
}

func (r *suspensionRegistry) countForOwner(owner string) int {
	return r.quota.Count(owner)
}

func (r *suspensionRegistry) size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID)
}

func (r *suspensionRegistry) onTimer() {
	if !r.running() {
		return
	}

	var due []*queueEntry
	r.mu.Lock()
	now := r.timeSource.Now()
	for len(r.timed) > 0 && !r.timed[0].wakeTime.After(now) {
		entry := heap.Pop(&r.timed).(*queueEntry)
		delete(r.byID, entry.task.id)
		due = append(due, entry)
	}
	r.mu.Unlock()

	for _, entry := range due {
		r.quota.Release(entry.task.owner)
		r.promoteEntry(entry, entry.wakeValue, entry.deliver)
	}
	r.rearm()
}

func (r *suspensionRegistry) promoteEntry(entry *queueEntry, resume store.Value, deliver bool) {
	r.metricsHandler.Counter("registry_promoted").Record(1)
	r.logger.Debug("task promoted",
		tag.TaskID(string(entry.task.id)),
		tag.TaskKind(entry.task.kind.String()),
	)
	r.promote(entry.task, resume, deliver)
}

// rearm points the timer at the earliest pending wake. Timer operations
// happen outside the lock because an already-due deadline fires the
// callback synchronously under an event time source.
func (r *suspensionRegistry) rearm() {
	if !r.running() {
		return
	}
	r.mu.Lock()
	delay := registryIdleDelay
	if len(r.timed) > 0 {
		delay = r.timed[0].wakeTime.Sub(r.timeSource.Now())
		if delay < 0 {
			delay = 0
		}
	}
	timer := r.timer
	r.mu.Unlock()
	if timer != nil {
		timer.Reset(delay)
	}
}

// timedHeap orders timer-triggered entries by wake time.
type timedHeap []*queueEntry

func (h timedHeap) Len() int {
	return len(h)
}

func (h timedHeap) Less(i, j int) bool {
	return h[i].wakeTime.Before(h[j].wakeTime)
}

func (h timedHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].heapIndex = i
	h[j].heapIndex = j
}

func (h *timedHeap) Push(x any) {
	entry := x.(*queueEntry)
	entry.heapIndex = len(*h)
	*h = append(*h, entry)
}

func (h *timedHeap) Pop() any {
	old := *h
	n := len(old)
	entry := old[n-1]
	old[n-1] = nil
	entry.heapIndex = -1
	*h = old[:n-1]
	return entry
}
