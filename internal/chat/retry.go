package chat

import (
	"context"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/rs/zerolog/log"
)

// RetryPolicy bounds how often and how patiently a call is repeated
type RetryPolicy struct {
	// Attempts is the total number of calls, including the first
	Attempts uint
	// Backoff returns the wait after the n-th failed attempt (n starts at 1)
	Backoff func(n uint) time.Duration
	// Timer overrides the wall clock used for waiting
	Timer retry.Timer
}

// LinearBackoff waits n*step after the n-th failure
func LinearBackoff(step time.Duration) func(uint) time.Duration {
	return func(n uint) time.Duration {
		return time.Duration(n) * step
	}
}

// DefaultRetryPolicy makes 3 attempts waiting 1s then 2s
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		Attempts: 3,
		Backoff:  LinearBackoff(time.Second),
	}
}

// Retry runs fn under policy p. It returns the result, the number of calls made,
// and the last error once attempts are exhausted or ctx is done.
func Retry[T any](ctx context.Context, p RetryPolicy, fn func() (T, error)) (T, uint, error) {
	attempts := p.Attempts
	if attempts == 0 {
		attempts = 1
	}
	backoff := p.Backoff
	if backoff == nil {
		backoff = func(uint) time.Duration { return 0 }
	}

	var calls uint
	opts := []retry.Option{
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.LastErrorOnly(true),
		retry.DelayType(func(n uint, _ error, _ *retry.Config) time.Duration {
			return backoff(n)
		}),
		retry.OnRetry(func(n uint, err error) {
			log.Warn().Err(err).Uint("attempt", n+1).Uint("max_attempts", attempts).Msg("Attempt failed")
		}),
	}
	if p.Timer != nil {
		opts = append(opts, retry.WithTimer(p.Timer))
	}

	result, err := retry.DoWithData(func() (T, error) {
		calls++
		return fn()
	}, opts...)
	return result, calls, err
}
