package interptest

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chaptersix/taskgrid/interp"
	"github.com/chaptersix/taskgrid/store"
)

type fakeAccess struct {
	values map[store.Key]store.Value
	depth  int
}

func newFakeAccess() *fakeAccess {
	return &fakeAccess{values: make(map[store.Key]store.Value)}
}

func (a *fakeAccess) Read(key store.Key) (store.Value, bool, error) {
	v, ok := a.values[key]
	return v, ok, nil
}

func (a *fakeAccess) Write(key store.Key, value store.Value) error {
	a.values[key] = value
	return nil
}

func (a *fakeAccess) EnterCall() error {
	a.depth++
	return nil
}

func (a *fakeAccess) ExitCall() {
	a.depth--
}

func TestScriptedProgramStepsInOrder(t *testing.T) {
	t.Parallel()

	program := NewProgram(
		"order",
		Compute(func(s *State) { s.Bindings["x"] = 1 }),
		WriteKey("slot", "x"),
		CompleteWith(func(s *State) store.Value { return s.Bindings["x"] }),
	)

	access := newFakeAccess()
	cont := program.Start(nil)

	out := cont.Step(access)
	require.Equal(t, interp.OutcomeContinue, out.Kind)
	out = cont.Step(access)
	require.Equal(t, interp.OutcomeContinue, out.Kind)
	require.Equal(t, 1, access.values["slot"])

	out = cont.Step(access)
	require.Equal(t, interp.OutcomeComplete, out.Kind)
	require.Equal(t, 1, out.Value)
}

func TestScriptedProgramLoopRepeats(t *testing.T) {
	t.Parallel()

	program := NewProgram("loop", Loop("i", 3, 2))
	cont := program.Start(nil)
	access := newFakeAccess()

	for i := 0; i < 3; i++ {
		out := cont.Step(access)
		require.Equal(t, interp.OutcomeContinue, out.Kind)
		require.Equal(t, 2, out.Ticks)
	}
	out := cont.Step(access)
	require.Equal(t, interp.OutcomeComplete, out.Kind)
}

func TestScriptedProgramStartIsolatesSeed(t *testing.T) {
	t.Parallel()

	program := NewProgram(
		"seeded",
		Compute(func(s *State) { s.Bindings["x"] = s.Bindings["x"].(int) + 1 }),
	).WithSeed(map[string]store.Value{"x": 10})

	access := newFakeAccess()

	first := program.Start(nil)
	first.Step(access)

	// A second start must see the pristine seed, not the mutated copy.
	second := program.Start(nil)
	second.Step(access)

	require.Equal(t, 2, program.Starts())
	require.Equal(t, 11, second.(*scriptedContinuation).state.Bindings["x"])
}

func TestScriptedProgramStackReportsBindings(t *testing.T) {
	t.Parallel()

	program := NewProgram(
		"stacked",
		Compute(func(s *State) { s.Bindings["b"] = 2; s.Bindings["a"] = 1 }),
	)
	cont := program.Start(nil)
	cont.Step(newFakeAccess())

	frames := cont.Stack()
	require.Len(t, frames, 1)
	require.Equal(t, "stacked:1", frames[0].Location)
	require.Equal(t, []interp.Binding{{Name: "a", Value: 1}, {Name: "b", Value: 2}}, frames[0].Bindings)
}

func TestScriptedProgramResume(t *testing.T) {
	t.Parallel()

	program := NewProgram(
		"resumed",
		ReadLine(),
		CompleteWith(func(s *State) store.Value { return s.Resumed }),
	)
	cont := program.Start(nil)
	access := newFakeAccess()

	out := cont.Step(access)
	require.Equal(t, interp.OutcomeSuspend, out.Kind)
	require.Equal(t, interp.SuspendRead, out.Request.Kind)

	cont.Resume("hello")
	out = cont.Step(access)
	require.Equal(t, interp.OutcomeComplete, out.Kind)
	require.Equal(t, "hello", out.Value)
}
