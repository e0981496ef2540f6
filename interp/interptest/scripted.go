// Package interptest provides a deterministic scripted Program for testing
// the scheduler without a real guest-language interpreter. A script is a
// sequence of step functions; each invocation of Step runs exactly one of
// them, mirroring the stepwise contract of a compiled guest program.
package interptest

import (
	"fmt"
	"sort"
	"sync/atomic"
	"time"

	"github.com/chaptersix/taskgrid/interp"
	"github.com/chaptersix/taskgrid/store"
)

type (
	// State is the mutable local state of one scripted execution.
	State struct {
		Bindings map[string]store.Value
		// Resumed holds the value supplied by the last satisfied
		// suspension.
		Resumed store.Value
		// Repeat, when set by a step, re-runs the same step on the next
		// Step call. Cleared automatically.
		Repeat bool
	}

	// StepFunc is one scripted step.
	StepFunc func(sa interp.StepAccess, s *State) interp.StepOutcome

	// ScriptedProgram is an interp.Program whose behavior is a fixed list
	// of steps. Start can be called repeatedly; every call yields a fresh
	// continuation over a fresh copy of the seed bindings, so conflict
	// re-execution behaves exactly like a real compiled program.
	ScriptedProgram struct {
		name   string
		steps  []StepFunc
		seed   map[string]store.Value
		starts atomic.Int32
	}

	scriptedContinuation struct {
		program *ScriptedProgram
		pc      int
		state   *State
	}
)

// NewProgram builds a scripted program.
func NewProgram(name string, steps ...StepFunc) *ScriptedProgram {
	return &ScriptedProgram{name: name, steps: steps}
}

// WithSeed sets initial bindings, deep-copied at every Start.
func (p *ScriptedProgram) WithSeed(bindings map[string]store.Value) *ScriptedProgram {
	p.seed = bindings
	return p
}

// Starts reports how many times Start has been called. A task retried N
// times shows N+1 starts.
func (p *ScriptedProgram) Starts() int {
	return int(p.starts.Load())
}

func (p *ScriptedProgram) Start(args []store.Value) interp.Continuation {
	p.starts.Add(1)
	bindings, err := interp.CopyBindings(p.seed)
	if err != nil {
		panic(fmt.Sprintf("interptest: copy seed bindings: %v", err))
	}
	for i, a := range args {
		bindings[fmt.Sprintf("arg%d", i)] = a
	}
	return &scriptedContinuation{
		program: p,
		state:   &State{Bindings: bindings},
	}
}

func (c *scriptedContinuation) Step(sa interp.StepAccess) interp.StepOutcome {
	if c.pc >= len(c.program.steps) {
		return interp.CompleteOutcome(0, nil)
	}
	out := c.program.steps[c.pc](sa, c.state)
	if c.state.Repeat {
		c.state.Repeat = false
	} else {
		c.pc++
	}
	return out
}

func (c *scriptedContinuation) Resume(v store.Value) {
	c.state.Resumed = v
}

func (c *scriptedContinuation) Stack() []interp.Frame {
	names := make([]string, 0, len(c.state.Bindings))
	for name := range c.state.Bindings {
		names = append(names, name)
	}
	sort.Strings(names)
	bindings := make([]interp.Binding, 0, len(names))
	for _, name := range names {
		bindings = append(bindings, interp.Binding{Name: name, Value: c.state.Bindings[name]})
	}
	return []interp.Frame{{
		Location: fmt.Sprintf("%s:%d", c.program.name, c.pc),
		Bindings: bindings,
	}}
}

// ReadKey reads a store key into a binding. A missing key binds nil.
func ReadKey(key store.Key, into string) StepFunc {
	return func(sa interp.StepAccess, s *State) interp.StepOutcome {
		v, ok, err := sa.Read(key)
		if err != nil {
			return interp.FailureOutcome(1, err)
		}
		if !ok {
			v = nil
		}
		s.Bindings[into] = v
		return interp.ContinueOutcome(1)
	}
}

// WriteKey writes a binding's value to a store key.
func WriteKey(key store.Key, from string) StepFunc {
	return func(sa interp.StepAccess, s *State) interp.StepOutcome {
		if err := sa.Write(key, s.Bindings[from]); err != nil {
			return interp.FailureOutcome(1, err)
		}
		return interp.ContinueOutcome(1)
	}
}

// WriteFunc writes a computed value to a store key.
func WriteFunc(key store.Key, fn func(s *State) store.Value) StepFunc {
	return func(sa interp.StepAccess, s *State) interp.StepOutcome {
		if err := sa.Write(key, fn(s)); err != nil {
			return interp.FailureOutcome(1, err)
		}
		return interp.ContinueOutcome(1)
	}
}

// Compute runs an arbitrary local mutation for one tick.
func Compute(fn func(s *State)) StepFunc {
	return func(_ interp.StepAccess, s *State) interp.StepOutcome {
		fn(s)
		return interp.ContinueOutcome(1)
	}
}

// Ticks burns n ticks in a single step.
func Ticks(n int) StepFunc {
	return func(_ interp.StepAccess, _ *State) interp.StepOutcome {
		return interp.ContinueOutcome(n)
	}
}

// WaitFor blocks the step until the channel is closed. Use for cross-task
// ordering in tests; the worker goroutine is held for the duration.
func WaitFor(ch <-chan struct{}) StepFunc {
	return func(_ interp.StepAccess, _ *State) interp.StepOutcome {
		<-ch
		return interp.ContinueOutcome(1)
	}
}

// Loop consumes ticksPerIteration for each of iterations passes, keeping its
// induction counter in the named binding.
func Loop(counter string, iterations int, ticksPerIteration int) StepFunc {
	return func(_ interp.StepAccess, s *State) interp.StepOutcome {
		i, _ := s.Bindings[counter].(int)
		i++
		s.Bindings[counter] = i
		if i < iterations {
			s.Repeat = true
		}
		return interp.ContinueOutcome(ticksPerIteration)
	}
}

// Recurse enters depth call levels, failing the step when the stack ceiling
// is hit.
func Recurse(depth int) StepFunc {
	return func(sa interp.StepAccess, _ *State) interp.StepOutcome {
		entered := 0
		for ; entered < depth; entered++ {
			if err := sa.EnterCall(); err != nil {
				for ; entered > 0; entered-- {
					sa.ExitCall()
				}
				return interp.FailureOutcome(1, err)
			}
		}
		for ; entered > 0; entered-- {
			sa.ExitCall()
		}
		return interp.ContinueOutcome(1)
	}
}

// Sleep issues a timed suspension.
func Sleep(delay time.Duration) StepFunc {
	return func(_ interp.StepAccess, _ *State) interp.StepOutcome {
		return interp.SuspendOutcome(1, &interp.SuspendRequest{
			Kind:  interp.SuspendSleep,
			Delay: delay,
		})
	}
}

// Fork issues a timed fork. The child program's seed is replaced with a deep
// copy of the parent's bindings at fork time, matching guest-language
// by-value capture. The parent resumes with the child task id.
func Fork(delay time.Duration, child *ScriptedProgram) StepFunc {
	return func(_ interp.StepAccess, s *State) interp.StepOutcome {
		snapshot, err := interp.CopyBindings(s.Bindings)
		if err != nil {
			return interp.FailureOutcome(1, err)
		}
		child.seed = snapshot
		return interp.SuspendOutcome(1, &interp.SuspendRequest{
			Kind:  interp.SuspendFork,
			Delay: delay,
			Child: child,
		})
	}
}

// ReadLine parks until input arrives; the line lands in State.Resumed.
func ReadLine() StepFunc {
	return func(_ interp.StepAccess, _ *State) interp.StepOutcome {
		return interp.SuspendOutcome(1, &interp.SuspendRequest{
			Kind: interp.SuspendRead,
		})
	}
}

// WorkerRequest parks until the external worker reports; the result lands in
// State.Resumed.
func WorkerRequest(kind string, payload store.Value) StepFunc {
	return func(_ interp.StepAccess, _ *State) interp.StepOutcome {
		return interp.SuspendOutcome(1, &interp.SuspendRequest{
			Kind:          interp.SuspendWorkerWait,
			WorkerKind:    kind,
			WorkerPayload: payload,
		})
	}
}

// Commit commits the current transaction and continues.
func Commit() StepFunc {
	return CommitWith(nil)
}

// CommitWith commits the current transaction, passing a value through; on
// success the value lands in State.Resumed.
func CommitWith(value store.Value) StepFunc {
	return func(_ interp.StepAccess, _ *State) interp.StepOutcome {
		return interp.SuspendOutcome(1, &interp.SuspendRequest{
			Kind:        interp.SuspendCommit,
			CommitValue: value,
		})
	}
}

// CommitIfNeeded commits only if remaining ticks are below threshold.
func CommitIfNeeded(threshold int) StepFunc {
	return func(_ interp.StepAccess, _ *State) interp.StepOutcome {
		return interp.SuspendOutcome(1, &interp.SuspendRequest{
			Kind:          interp.SuspendCommitIfNeeded,
			TickThreshold: threshold,
		})
	}
}

// Rollback discards the current transaction and aborts the task.
func Rollback() StepFunc {
	return func(_ interp.StepAccess, _ *State) interp.StepOutcome {
		return interp.SuspendOutcome(1, &interp.SuspendRequest{
			Kind: interp.SuspendRollback,
		})
	}
}

// CompleteWith finishes the program with a computed value.
func CompleteWith(fn func(s *State) store.Value) StepFunc {
	return func(_ interp.StepAccess, s *State) interp.StepOutcome {
		return interp.CompleteOutcome(1, fn(s))
	}
}

// Fail raises an uncaught guest error.
func Fail(err error) StepFunc {
	return func(_ interp.StepAccess, _ *State) interp.StepOutcome {
		return interp.FailureOutcome(1, err)
	}
}
