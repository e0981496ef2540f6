package quotas

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCountLimiterEnforcesLimit(t *testing.T) {
	t.Parallel()

	limiter := NewCountLimiter(2)

	require.True(t, limiter.TryAcquire("wizard"))
	require.True(t, limiter.TryAcquire("wizard"))
	require.False(t, limiter.TryAcquire("wizard"))
	require.Equal(t, 2, limiter.Count("wizard"))

	// Other keys are unaffected.
	require.True(t, limiter.TryAcquire("guest"))
	require.Equal(t, 1, limiter.Count("guest"))
}

func TestCountLimiterRelease(t *testing.T) {
	t.Parallel()

	limiter := NewCountLimiter(1)

	require.True(t, limiter.TryAcquire("wizard"))
	require.False(t, limiter.TryAcquire("wizard"))

	limiter.Release("wizard")
	require.Equal(t, 0, limiter.Count("wizard"))
	require.True(t, limiter.TryAcquire("wizard"))
}

func TestCountLimiterNoLimit(t *testing.T) {
	t.Parallel()

	limiter := NewCountLimiter(NoLimit)
	for i := 0; i < 1000; i++ {
		require.True(t, limiter.TryAcquire("wizard"))
	}
	require.Equal(t, 1000, limiter.Count("wizard"))
}
