package backoff

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestExponentialRetryPolicyGrowth(t *testing.T) {
	t.Parallel()

	policy := NewExponentialRetryPolicy(100 * time.Millisecond)

	require.Equal(t, 100*time.Millisecond, policy.ComputeNextDelay(1))
	require.Equal(t, 200*time.Millisecond, policy.ComputeNextDelay(2))
	require.Equal(t, 400*time.Millisecond, policy.ComputeNextDelay(3))
}

func TestExponentialRetryPolicyMaximumInterval(t *testing.T) {
	t.Parallel()

	policy := NewExponentialRetryPolicy(100 * time.Millisecond).
		WithMaximumInterval(250 * time.Millisecond)

	require.Equal(t, 100*time.Millisecond, policy.ComputeNextDelay(1))
	require.Equal(t, 200*time.Millisecond, policy.ComputeNextDelay(2))
	require.Equal(t, 250*time.Millisecond, policy.ComputeNextDelay(3))
	require.Equal(t, 250*time.Millisecond, policy.ComputeNextDelay(10))
}

func TestExponentialRetryPolicyMaximumAttempts(t *testing.T) {
	t.Parallel()

	policy := NewExponentialRetryPolicy(time.Millisecond).
		WithMaximumAttempts(3)

	require.NotEqual(t, NoBackoff, policy.ComputeNextDelay(1))
	require.NotEqual(t, NoBackoff, policy.ComputeNextDelay(2))
	require.Equal(t, NoBackoff, policy.ComputeNextDelay(3))
	require.Equal(t, NoBackoff, policy.ComputeNextDelay(4))
}

func TestExponentialRetryPolicyUnlimitedAttempts(t *testing.T) {
	t.Parallel()

	policy := NewExponentialRetryPolicy(time.Millisecond).
		WithBackoffCoefficient(1)

	require.Equal(t, time.Millisecond, policy.ComputeNextDelay(1000))
}
