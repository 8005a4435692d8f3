package llm

import (
	"context"
	"math"
	"time"

	"golang.org/x/exp/rand"
)

// RetryConfig defines retry behavior
type RetryConfig struct {
	MaxAttempts int           `json:"max_attempts"`
	BaseDelay   time.Duration `json:"base_delay"`
	MaxDelay    time.Duration `json:"max_delay"`
	Multiplier  float64       `json:"multiplier"`
	Jitter      bool          `json:"jitter"`
}

// DefaultRetryConfig provides default retry settings
var DefaultRetryConfig = &RetryConfig{
	MaxAttempts: 3,
	BaseDelay:   500 * time.Millisecond,
	MaxDelay:    8 * time.Second,
	Multiplier:  2.0,
	Jitter:      true,
}

// ExponentialRetryConfig creates an exponential backoff configuration
func ExponentialRetryConfig(maxAttempts int, baseDelay, maxDelay time.Duration, jitter bool) *RetryConfig {
	return &RetryConfig{
		MaxAttempts: maxAttempts,
		BaseDelay:   baseDelay,
		MaxDelay:    maxDelay,
		Multiplier:  2.0,
		Jitter:      jitter,
	}
}

// Do runs fn until it succeeds, returns a non-retryable error, or the
// attempts are used up. It returns the number of attempts made.
func (c *RetryConfig) Do(ctx context.Context, fn func(ctx context.Context) error) (int, error) {
	attempts := c.MaxAttempts
	if attempts <= 0 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		err := fn(ctx)
		if err == nil {
			return attempt, nil
		}
		if !IsRetryable(err) {
			return attempt, err
		}
		lastErr = err

		if attempt < attempts {
			select {
			case <-time.After(c.delay(attempt)):
			case <-ctx.Done():
				return attempt, ctx.Err()
			}
		}
	}

	return attempts, lastErr
}

func (c *RetryConfig) delay(attempt int) time.Duration {
	multiplier := c.Multiplier
	if multiplier <= 0 {
		multiplier = 1
	}
	delay := time.Duration(float64(c.BaseDelay) * math.Pow(multiplier, float64(attempt-1)))
	if c.MaxDelay > 0 && delay > c.MaxDelay {
		delay = c.MaxDelay
	}
	if c.Jitter {
		delay += time.Duration(rand.Float64() * float64(delay) * 0.1) // 10% jitter
	}
	return delay
}
