package backoff

import (
	"math"
	"time"
)

// NoBackoff is returned by ComputeNextDelay when no further attempt should
// be made.
const NoBackoff = time.Duration(-1)

// NoMaximumAttempts disables the attempt cap.
const NoMaximumAttempts = 0

type (
	// RetryPolicy computes the delay before the next retry attempt.
	RetryPolicy interface {
		// ComputeNextDelay returns the delay before attempt numAttempts+1,
		// where numAttempts is the number of attempts already performed.
		// Returns NoBackoff when the policy is exhausted.
		ComputeNextDelay(numAttempts int) time.Duration
	}

	// ExponentialRetryPolicy grows the delay geometrically per attempt, with
	// an optional interval cap and attempt cap.
	ExponentialRetryPolicy struct {
		initialInterval    time.Duration
		backoffCoefficient float64
		maximumInterval    time.Duration
		maximumAttempts    int
	}
)

// NewExponentialRetryPolicy returns a policy with the given first-retry
// interval, a backoff coefficient of 2, no interval cap, and no attempt cap.
func NewExponentialRetryPolicy(initialInterval time.Duration) *ExponentialRetryPolicy {
	return &ExponentialRetryPolicy{
		initialInterval:    initialInterval,
		backoffCoefficient: 2,
		maximumInterval:    0,
		maximumAttempts:    NoMaximumAttempts,
	}
}

// WithBackoffCoefficient sets the per-attempt delay multiplier.
func (p *ExponentialRetryPolicy) WithBackoffCoefficient(coefficient float64) *ExponentialRetryPolicy {
	p.backoffCoefficient = coefficient
	return p
}

// WithMaximumInterval caps the computed delay.
func (p *ExponentialRetryPolicy) WithMaximumInterval(interval time.Duration) *ExponentialRetryPolicy {
	p.maximumInterval = interval
	return p
}

// WithMaximumAttempts caps the total number of attempts.
func (p *ExponentialRetryPolicy) WithMaximumAttempts(attempts int) *ExponentialRetryPolicy {
	p.maximumAttempts = attempts
	return p
}

func (p *ExponentialRetryPolicy) ComputeNextDelay(numAttempts int) time.Duration {
	if p.maximumAttempts != NoMaximumAttempts && numAttempts >= p.maximumAttempts {
		return NoBackoff
	}

	delay := float64(p.initialInterval) * math.Pow(p.backoffCoefficient, float64(numAttempts-1))
	if p.maximumInterval > 0 && delay > float64(p.maximumInterval) {
		delay = float64(p.maximumInterval)
	}
	if delay > float64(math.MaxInt64) {
		delay = float64(math.MaxInt64)
	}
	return time.Duration(delay)
}
