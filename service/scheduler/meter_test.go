package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestResourceMeterCharge(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	meter := NewResourceMeter(Budget{Ticks: 10, Wall: time.Minute, MaxStackDepth: 5}, now)

	require.NoError(t, meter.Charge(4))
	require.Equal(t, 6, meter.TicksRemaining())

	// Landing exactly on zero is not exhaustion.
	require.NoError(t, meter.Charge(6))
	require.Equal(t, 0, meter.TicksRemaining())

	require.ErrorIs(t, meter.Charge(1), ErrTicksExhausted)
	require.Equal(t, 0, meter.TicksRemaining())
}

func TestResourceMeterDeadline(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	meter := NewResourceMeter(Budget{Ticks: 10, Wall: 5 * time.Second, MaxStackDepth: 5}, now)

	require.NoError(t, meter.CheckDeadline(now))
	require.NoError(t, meter.CheckDeadline(now.Add(5*time.Second)))
	require.ErrorIs(t, meter.CheckDeadline(now.Add(5*time.Second+time.Nanosecond)), ErrSecondsExhausted)
}

func TestResourceMeterStackCeiling(t *testing.T) {
	t.Parallel()

	meter := NewResourceMeter(Budget{Ticks: 10, Wall: time.Minute, MaxStackDepth: 2}, time.Now().UTC())

	require.NoError(t, meter.EnterCall())
	require.NoError(t, meter.EnterCall())
	require.Equal(t, 2, meter.StackDepth())
	require.ErrorIs(t, meter.EnterCall(), ErrStackOverflow)

	meter.ExitCall()
	require.NoError(t, meter.EnterCall())

	meter.ExitCall()
	meter.ExitCall()
	require.Equal(t, 0, meter.StackDepth())
	// ExitCall below zero is ignored.
	meter.ExitCall()
	require.Equal(t, 0, meter.StackDepth())
}
