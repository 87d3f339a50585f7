package chat

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinearBackoff(t *testing.T) {
	b := LinearBackoff(time.Second)
	assert.Equal(t, time.Second, b(1))
	assert.Equal(t, 2*time.Second, b(2))
	assert.Equal(t, 3*time.Second, b(3))
}

func TestRetry_SucceedsOnThirdAttempt(t *testing.T) {
	timer := &fakeTimer{}
	p := DefaultRetryPolicy()
	p.Timer = timer

	calls := 0
	got, attempts, err := Retry(context.Background(), p, func() (string, error) {
		calls++
		if calls < 3 {
			return "", errUpstream
		}
		return "done", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "done", got)
	assert.Equal(t, uint(3), attempts)
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, timer.Waits())
}

func TestRetry_ExhaustsAttempts(t *testing.T) {
	timer := &fakeTimer{}
	p := DefaultRetryPolicy()
	p.Timer = timer

	last := errors.New("third failure")
	calls := 0
	_, attempts, err := Retry(context.Background(), p, func() (int, error) {
		calls++
		if calls == 3 {
			return 0, last
		}
		return 0, errUpstream
	})

	assert.ErrorIs(t, err, last)
	assert.Equal(t, uint(3), attempts)
	// no wait after the final attempt
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, timer.Waits())
}

func TestRetry_ZeroAttemptsRunsOnce(t *testing.T) {
	_, attempts, err := Retry(context.Background(), RetryPolicy{}, func() (string, error) {
		return "", errUpstream
	})

	assert.Error(t, err)
	assert.Equal(t, uint(1), attempts)
}

func TestRetry_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, attempts, err := Retry(ctx, DefaultRetryPolicy(), func() (string, error) {
		return "never", nil
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, uint(0), attempts)
}
