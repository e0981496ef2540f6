package scheduler

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/chaptersix/taskgrid/common"
	"github.com/chaptersix/taskgrid/common/backoff"
	"github.com/chaptersix/taskgrid/common/clock"
	"github.com/chaptersix/taskgrid/common/config"
	"github.com/chaptersix/taskgrid/common/log"
	"github.com/chaptersix/taskgrid/common/log/tag"
	"github.com/chaptersix/taskgrid/common/metrics"
	"github.com/chaptersix/taskgrid/interp"
	"github.com/chaptersix/taskgrid/store"
)

type schedulerImpl struct {
	status         int32
	config         *config.Config
	vs             store.VersionedStore
	timeSource     clock.TimeSource
	logger         log.Logger
	metricsHandler metrics.Handler
	reporter       AbortReporter
	dispatcher     WorkerDispatcher
	retryPolicy    backoff.RetryPolicy
	registry       *suspensionRegistry

	runnableCh chan *task
	shutdownCh chan struct{}
	shutdownWG sync.WaitGroup

	mu     sync.Mutex
	active map[TaskID]*task
}

// NewScheduler wires a scheduler over a versioned store. reporter receives
// every abnormal abort; dispatcher may be nil when no external worker pool
// is attached.
func NewScheduler(
	cfg *config.Config,
	vs store.VersionedStore,
	timeSource clock.TimeSource,
	reporter AbortReporter,
	dispatcher WorkerDispatcher,
	logger log.Logger,
	metricsHandler metrics.Handler,
) Scheduler {
	retry := cfg.ConflictRetry
	s := &schedulerImpl{
		status:         common.DaemonStatusInitialized,
		config:         cfg,
		vs:             vs,
		timeSource:     timeSource,
		logger:         logger,
		metricsHandler: metricsHandler,
		reporter:       reporter,
		dispatcher:     dispatcher,
		retryPolicy: backoff.NewExponentialRetryPolicy(retry.InitialInterval()).
			WithBackoffCoefficient(retry.BackoffCoefficient).
			WithMaximumInterval(retry.MaximumInterval()).
			WithMaximumAttempts(retry.MaximumAttempts),
		runnableCh: make(chan *task, cfg.RunnableQueueSize),
		shutdownCh: make(chan struct{}),
		active:     make(map[TaskID]*task),
	}
	s.registry = newSuspensionRegistry(
		timeSource,
		cfg.OwnerQueuedTaskLimit,
		s.promote,
		logger,
		metricsHandler,
	)
	return s
}

func (s *schedulerImpl) Start() {
	if !atomic.CompareAndSwapInt32(&s.status, common.DaemonStatusInitialized, common.DaemonStatusStarted) {
		return
	}
	s.registry.Start()
	for i := 0; i < s.config.Workers; i++ {
		s.shutdownWG.Add(1)
		go s.workerLoop()
	}
	s.logger.Info("scheduler started", tag.WorkerCount(s.config.Workers))
}

func (s *schedulerImpl) Stop() {
	if !atomic.CompareAndSwapInt32(&s.status, common.DaemonStatusStarted, common.DaemonStatusStopped) {
		return
	}
	close(s.shutdownCh)
	s.registry.Stop()
	s.shutdownWG.Wait()
	s.logger.Info("scheduler stopped")
}

func (s *schedulerImpl) running() bool {
	return atomic.LoadInt32(&s.status) == common.DaemonStatusStarted
}

func (s *schedulerImpl) AdmitTask(
	program interp.Program,
	args []store.Value,
	owner string,
	kind Kind,
) (TaskID, error) {
	if !s.running() {
		return "", ErrNotRunning
	}

	now := s.timeSource.Now()
	t := &task{
		id:           NewTaskID(),
		owner:        owner,
		kind:         kind,
		program:      program,
		args:         args,
		stackCeiling: s.config.MaxStackDepth,
		startTime:    now,
		attempt:      1,
	}
	t.cont = program.Start(args)

	switch kind {
	case KindCommand, KindServerEvent:
		if err := s.enqueue(t); err != nil {
			return "", err
		}
	case KindForked, KindSuspended:
		if err := s.registry.addTimed(t, now, nil, false, false); err != nil {
			return "", err
		}
	case KindReading:
		if err := s.registry.addReading(t, false); err != nil {
			return "", err
		}
	case KindWorkerWait:
		requestID := GenerateWorkerRequestID(t.id, "admit", t.attempt)
		if err := s.registry.addWorkerWait(t, requestID, false); err != nil {
			return "", err
		}
		// The external pool learns the request id here; it answers through
		// CompleteWorkerRequest.
		if s.dispatcher != nil {
			s.dispatcher.Dispatch(requestID, "admit", nil)
		}
	}

	s.metricsHandler.Counter("task_admitted").Record(1)
	s.logger.Debug("task admitted",
		tag.TaskID(string(t.id)),
		tag.TaskKind(kind.String()),
		tag.Owner(owner),
	)
	return t.id, nil
}

func (s *schedulerImpl) KillTask(id TaskID) bool {
	if t, ok := s.registry.remove(id); ok {
		// Queued tasks hold no transaction; dropping the entry is the
		// whole job.
		s.metricsHandler.Counter("task_killed").Record(1)
		s.logger.Info("queued task killed",
			tag.TaskID(string(t.id)),
			tag.Owner(t.owner),
		)
		return true
	}

	s.mu.Lock()
	t, ok := s.active[id]
	s.mu.Unlock()
	if !ok {
		return false
	}
	t.killed.Store(true)
	s.logger.Info("kill requested for active task", tag.TaskID(string(id)))
	return true
}

func (s *schedulerImpl) ActiveTasks(owner string) []TaskSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	summaries := make([]TaskSummary, 0, len(s.active))
	for _, t := range s.active {
		if owner != "" && t.owner != owner {
			continue
		}
		summaries = append(summaries, t.summary())
	}
	return summaries
}

func (s *schedulerImpl) QueuedTasks(owner string) []TaskDetail {
	return s.registry.queuedDetails(owner)
}

func (s *schedulerImpl) ProvideInput(owner string, line store.Value) bool {
	return s.registry.provideInput(owner, line)
}

func (s *schedulerImpl) CompleteWorkerRequest(requestID string, result store.Value, workerErr error) bool {
	return s.registry.completeWorkerRequest(requestID, result, workerErr)
}

// promote is the registry's callback for satisfied triggers.
func (s *schedulerImpl) promote(t *task, resume store.Value, deliver bool) {
	if deliver {
		t.resume = resume
		t.hasResume = true
	}
	if err := s.enqueue(t); err != nil {
		s.logger.Warn("dropping promoted task on shutdown", tag.TaskID(string(t.id)))
	}
}

// enqueue makes a task runnable. The task enters the active map here, not
// when a worker picks it up, so a task waiting for a free worker is already
// visible to introspection and killable; the kill flag is honored before its
// first step runs.
func (s *schedulerImpl) enqueue(t *task) error {
	s.setActive(t)
	select {
	case s.runnableCh <- t:
		return nil
	case <-s.shutdownCh:
		s.clearActive(t)
		return ErrNotRunning
	}
}

func (s *schedulerImpl) workerLoop() {
	defer s.shutdownWG.Done()
	for {
		select {
		case <-s.shutdownCh:
			return
		case t := <-s.runnableCh:
			s.runToSuspension(t)
		}
	}
}

// runToSuspension executes one segment of a task on the calling worker
// goroutine: from a fresh transaction and meter until completion, park,
// abort, or conflict. This loop is the only consumer of step ticks, so
// preemption granularity is exactly one step.
func (s *schedulerImpl) runToSuspension(t *task) {
	segmentStart := s.timeSource.Now()
	budget := s.budgetFor(t.kind)
	// The stack ceiling was fixed at task creation and survives both
	// resume and conflict re-execution.
	budget.MaxStackDepth = t.stackCeiling
	t.meter = NewResourceMeter(budget, segmentStart)
	t.txn = NewTransactionContext(s.vs)
	s.setActive(t)

	sa := &stepAccess{t: t}
	for {
		if t.killed.Load() {
			t.txn.Discard()
			s.clearActive(t)
			s.metricsHandler.Counter("task_killed").Record(1)
			s.logger.Info("active task killed",
				tag.TaskID(string(t.id)),
				tag.Owner(t.owner),
			)
			return
		}
		if err := t.meter.CheckDeadline(s.timeSource.Now()); err != nil {
			s.abort(t, AbortCauseSecondLimit, err)
			return
		}

		if t.hasResume {
			t.cont.Resume(t.resume)
			t.hasResume = false
			t.resume = nil
		}

		outcome := t.cont.Step(sa)
		if err := t.meter.Charge(outcome.Ticks); err != nil {
			s.abort(t, AbortCauseTickLimit, err)
			return
		}

		switch outcome.Kind {
		case interp.OutcomeContinue:

		case interp.OutcomeComplete:
			if err := t.txn.Commit(); err != nil {
				if errors.Is(err, store.ErrConflict) {
					s.retry(t)
					return
				}
				s.abort(t, AbortCauseTaskError, err)
				return
			}
			s.clearActive(t)
			s.metricsHandler.Counter("task_completed").Record(1)
			s.metricsHandler.Timer("task_run_latency").Record(s.timeSource.Since(segmentStart))
			s.logger.Debug("task completed",
				tag.TaskID(string(t.id)),
				tag.Attempt(t.attempt),
			)
			return

		case interp.OutcomeFailure:
			cause := AbortCauseTaskError
			if errors.Is(outcome.Err, ErrStackOverflow) {
				cause = AbortCauseStackLimit
			}
			s.abort(t, cause, outcome.Err)
			return

		case interp.OutcomeSuspend:
			if done := s.handleSuspend(t, outcome.Request); done {
				return
			}
		}
	}
}

// handleSuspend processes one suspension request. It returns true when the
// worker goroutine is released (park, retry, or abort) and false when the
// task keeps its thread and the step loop continues.
func (s *schedulerImpl) handleSuspend(t *task, req *interp.SuspendRequest) bool {
	switch req.Kind {
	case interp.SuspendCommit:
		if conflicted, done := s.commitMidSegment(t); done {
			return true
		} else if !conflicted {
			s.metricsHandler.Counter("task_explicit_commits").Record(1)
			t.cont.Resume(req.CommitValue)
		}
		return false

	case interp.SuspendCommitIfNeeded:
		if t.meter.TicksRemaining() >= req.TickThreshold {
			t.cont.Resume(false)
			return false
		}
		if _, done := s.commitMidSegment(t); done {
			return true
		}
		s.metricsHandler.Counter("task_explicit_commits").Record(1)
		t.cont.Resume(true)
		return false

	case interp.SuspendRollback:
		t.txn.Discard()
		s.clearActive(t)
		s.metricsHandler.Counter("task_rolled_back").Record(1)
		s.logger.Debug("task rolled back", tag.TaskID(string(t.id)))
		return true

	case interp.SuspendFork:
		return s.handleFork(t, req)

	case interp.SuspendSleep:
		return s.park(t, req, KindSuspended)

	case interp.SuspendRead:
		return s.park(t, req, KindReading)

	case interp.SuspendWorkerWait:
		return s.park(t, req, KindWorkerWait)

	default:
		s.abort(t, AbortCauseTaskError, errUnknownSuspendKind)
		return true
	}
}

// commitMidSegment commits and reopens the transaction without leaving the
// Active set. Returns (conflicted=false, done=false) on success.
func (s *schedulerImpl) commitMidSegment(t *task) (conflicted bool, done bool) {
	if err := t.txn.Commit(); err != nil {
		if errors.Is(err, store.ErrConflict) {
			s.retry(t)
			return true, true
		}
		s.abort(t, AbortCauseTaskError, err)
		return false, true
	}
	t.txn = NewTransactionContext(s.vs)
	return false, false
}

// handleFork commits the parent's transaction and creates a delayed child
// carrying the interpreter's by-value snapshot of the fork point. The child
// is inserted only after the commit succeeds, so a conflicted parent
// re-executes without leaving a stray child behind.
func (s *schedulerImpl) handleFork(t *task, req *interp.SuspendRequest) bool {
	if err := s.registry.reserve(t.owner); err != nil {
		// Quota refusal happens before any suspension effect: no commit,
		// no child, parent keeps running and sees the error.
		t.cont.Resume(interp.ErrorValue{Err: err})
		return false
	}

	if err := t.txn.Commit(); err != nil {
		s.registry.unreserve(t.owner)
		if errors.Is(err, store.ErrConflict) {
			s.retry(t)
			return true
		}
		s.abort(t, AbortCauseTaskError, err)
		return true
	}

	now := s.timeSource.Now()
	child := &task{
		id:           NewTaskID(),
		owner:        t.owner,
		kind:         KindForked,
		program:      req.Child,
		stackCeiling: s.config.MaxStackDepth,
		startTime:    now,
		attempt:      1,
	}
	child.cont = req.Child.Start(nil)
	// The reservation was taken above; this insert cannot be refused.
	if err := s.registry.addTimed(child, now.Add(req.Delay), nil, false, true); err != nil {
		s.logger.Error("failed to park forked child", tag.TaskID(string(child.id)), tag.Error(err))
	}

	t.txn = NewTransactionContext(s.vs)
	t.cont.Resume(store.Value(child.id))
	s.metricsHandler.Counter("task_forked").Record(1)
	s.logger.Debug("task forked",
		tag.TaskID(string(t.id)),
		tag.Owner(t.owner),
		tag.Delay(req.Delay),
	)
	return false
}

// park commits the current transaction and moves the task to the queued
// set under the trigger implied by the request. The task's kind changes to
// the queued kind, which also selects the background budget for the next
// segment.
func (s *schedulerImpl) park(t *task, req *interp.SuspendRequest, parkedKind Kind) bool {
	if err := s.registry.reserve(t.owner); err != nil {
		t.cont.Resume(interp.ErrorValue{Err: err})
		return false
	}

	if err := t.txn.Commit(); err != nil {
		s.registry.unreserve(t.owner)
		if errors.Is(err, store.ErrConflict) {
			s.retry(t)
			return true
		}
		s.abort(t, AbortCauseTaskError, err)
		return true
	}

	t.txn = nil
	s.clearActive(t)
	// Mutated only after the task leaves the active map; ActiveTasks reads
	// kind under s.mu.
	t.kind = parkedKind

	var parkErr error
	switch req.Kind {
	case interp.SuspendSleep:
		parkErr = s.registry.addTimed(t, s.timeSource.Now().Add(req.Delay), store.Value(0), true, true)
	case interp.SuspendRead:
		parkErr = s.registry.addReading(t, true)
	case interp.SuspendWorkerWait:
		requestID := GenerateWorkerRequestID(t.id, req.WorkerKind, t.attempt)
		parkErr = s.registry.addWorkerWait(t, requestID, true)
		if parkErr == nil && s.dispatcher != nil {
			s.dispatcher.Dispatch(requestID, req.WorkerKind, req.WorkerPayload)
		}
	}
	if parkErr != nil {
		s.logger.Error("failed to park task", tag.TaskID(string(t.id)), tag.Error(parkErr))
	}
	return true
}

// retry re-executes a conflicted task from its original starting point
// under the bounded retry policy. Conflicts are invisible to the guest
// program; only retry exhaustion surfaces, through the abort path.
func (s *schedulerImpl) retry(t *task) {
	s.clearActive(t)
	delay := s.retryPolicy.ComputeNextDelay(t.attempt)

	if delay == backoff.NoBackoff {
		t.txn = nil
		s.report(t, AbortCauseRetryExhausted, store.ErrConflict)
		return
	}

	t.attempt++
	t.restart()
	t.txn = nil
	s.metricsHandler.Counter("task_conflict_retries").Record(1)
	s.logger.Debug("task conflicted, re-executing",
		tag.TaskID(string(t.id)),
		tag.Attempt(t.attempt),
		tag.Delay(delay),
	)

	if delay <= 0 {
		if err := s.enqueue(t); err != nil {
			s.logger.Warn("dropping conflicted task on shutdown", tag.TaskID(string(t.id)))
		}
		return
	}
	// Visible and killable while waiting out the backoff.
	s.setActive(t)
	s.timeSource.AfterFunc(delay, func() {
		if !s.running() {
			return
		}
		if err := s.enqueue(t); err != nil {
			s.logger.Warn("dropping conflicted task on shutdown", tag.TaskID(string(t.id)))
		}
	})
}

// abort discards the task's transaction and funnels the failure through the
// single reporting path. Aborted tasks never leave partial writes behind.
func (s *schedulerImpl) abort(t *task, cause AbortCause, err error) {
	if t.txn != nil {
		t.txn.Discard()
		t.txn = nil
	}
	s.clearActive(t)
	s.report(t, cause, err)
}

func (s *schedulerImpl) report(t *task, cause AbortCause, err error) {
	s.metricsHandler.Counter("task_aborted").Record(1)

	var stack []interp.Frame
	if t.cont != nil {
		copied, copyErr := interp.CopyFrames(t.cont.Stack())
		if copyErr == nil {
			stack = copied
		}
	}
	report := AbortReport{
		TaskID:  t.id,
		Owner:   t.owner,
		Kind:    t.kind,
		Cause:   cause,
		Err:     err,
		Attempt: t.attempt,
		Stack:   stack,
	}
	s.logger.Warn("task aborted",
		tag.TaskID(string(t.id)),
		tag.Owner(t.owner),
		tag.AbortCause(cause.String()),
		tag.Attempt(t.attempt),
		tag.Error(err),
	)
	if s.reporter != nil {
		s.reporter.ReportAbort(report)
	}
}

func (s *schedulerImpl) budgetFor(kind Kind) Budget {
	kb := s.config.Foreground
	if kind.Background() {
		kb = s.config.Background
	}
	return Budget{
		Ticks:         kb.Ticks,
		Wall:          kb.Duration(),
		MaxStackDepth: s.config.MaxStackDepth,
	}
}

func (s *schedulerImpl) setActive(t *task) {
	s.mu.Lock()
	s.active[t.id] = t
	s.mu.Unlock()
}

func (s *schedulerImpl) clearActive(t *task) {
	s.mu.Lock()
	delete(s.active, t.id)
	s.mu.Unlock()
}

// stepAccess binds a continuation's store and call-depth operations to the
// task's live transaction and meter.
type stepAccess struct {
	t *task
}

func (sa *stepAccess) Read(key store.Key) (store.Value, bool, error) {
	return sa.t.txn.Read(key)
}

func (sa *stepAccess) Write(key store.Key, value store.Value) error {
	return sa.t.txn.Write(key, value)
}

func (sa *stepAccess) EnterCall() error {
	return sa.t.meter.EnterCall()
}

func (sa *stepAccess) ExitCall() {
	sa.t.meter.ExitCall()
}
