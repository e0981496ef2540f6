package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestEventTimeSourceNow(t *testing.T) {
	t.Parallel()

	source := NewEventTimeSource()
	now := time.Now().UTC()
	source.Update(now)
	require.Equal(t, now, source.Now())

	source.Advance(time.Minute)
	require.Equal(t, now.Add(time.Minute), source.Now())
	require.Equal(t, time.Minute, source.Since(now))
}

func TestEventTimeSourceAfterFunc(t *testing.T) {
	t.Parallel()

	source := NewEventTimeSource()
	source.Update(time.Now().UTC())

	fired := 0
	source.AfterFunc(time.Second, func() { fired++ })

	source.Advance(500 * time.Millisecond)
	require.Equal(t, 0, fired)

	source.Advance(500 * time.Millisecond)
	require.Equal(t, 1, fired)

	// A fired timer must not fire again.
	source.Advance(time.Hour)
	require.Equal(t, 1, fired)
}

func TestEventTimeSourceAfterFuncImmediate(t *testing.T) {
	t.Parallel()

	source := NewEventTimeSource()
	source.Update(time.Now().UTC())

	fired := false
	source.AfterFunc(0, func() { fired = true })
	require.True(t, fired)
}

func TestEventTimeSourceTimerStop(t *testing.T) {
	t.Parallel()

	source := NewEventTimeSource()
	source.Update(time.Now().UTC())

	fired := false
	timer := source.AfterFunc(time.Second, func() { fired = true })
	require.True(t, timer.Stop())
	require.False(t, timer.Stop())

	source.Advance(time.Hour)
	require.False(t, fired)
}

func TestEventTimeSourceTimerReset(t *testing.T) {
	t.Parallel()

	source := NewEventTimeSource()
	source.Update(time.Now().UTC())

	fired := 0
	timer := source.AfterFunc(time.Minute, func() { fired++ })
	require.True(t, timer.Reset(time.Second))

	source.Advance(time.Second)
	require.Equal(t, 1, fired)

	// Reset after firing re-arms the timer.
	require.False(t, timer.Reset(time.Second))
	source.Advance(time.Second)
	require.Equal(t, 2, fired)
}
