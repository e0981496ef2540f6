package interp

import (
	"fmt"

	"github.com/chaptersix/taskgrid/store"
)

type (
	// Program is a compiled guest program. The scheduler never inspects it;
	// it only obtains continuations from it. Start must return a fresh
	// continuation positioned at the program's beginning each time it is
	// called, since a task whose commit conflicts is re-executed from the
	// start.
	Program interface {
		Start(args []store.Value) Continuation
	}

	// Continuation is a resumable computation. The scheduler drives it one
	// step at a time; all store access during a step goes through the
	// supplied StepAccess, which is bound to the task's live transaction.
	Continuation interface {
		Step(sa StepAccess) StepOutcome
		// Resume supplies the value produced by a satisfied suspension
		// (input line, worker result, forked task id) before the next Step.
		Resume(v store.Value)
		// Stack reports the current call stack. It is only consulted while
		// the continuation is parked, never while another goroutine is
		// stepping it.
		Stack() []Frame
	}

	// StepAccess is the capability surface a continuation sees during one
	// step: transactional store access plus call-depth accounting.
	StepAccess interface {
		Read(key store.Key) (store.Value, bool, error)
		Write(key store.Key, value store.Value) error
		// EnterCall charges one level of call depth. It fails when the
		// task's stack ceiling is reached; the interpreter surfaces that
		// to the guest as an error aborting the offending call.
		EnterCall() error
		ExitCall()
	}

	// Frame is one call-stack frame, exposed for queued-task introspection.
	Frame struct {
		Location string
		This     string
		Caller   string
		Player   string
		Bindings []Binding
	}

	// Binding is one named local value.
	Binding struct {
		Name  string
		Value store.Value
	}

	// ErrorValue is a guest-visible error delivered through Resume, used
	// when a suspension request is refused (e.g. queued-task quota).
	ErrorValue struct {
		Err error
	}
)

func (v ErrorValue) String() string {
	return fmt.Sprintf("error(%v)", v.Err)
}
