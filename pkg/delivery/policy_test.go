package delivery

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackoffFor(t *testing.T) {
	policy := Policy{
		MaxAttempts:    5,
		InitialBackoff: 100 * time.Millisecond,
		MaxBackoff:     1 * time.Second,
	}

	assert.Equal(t, time.Duration(0), policy.BackoffFor(1))
	assert.Equal(t, 100*time.Millisecond, policy.BackoffFor(2))
	assert.Equal(t, 200*time.Millisecond, policy.BackoffFor(3))
	assert.Equal(t, 400*time.Millisecond, policy.BackoffFor(4))
	assert.Equal(t, 800*time.Millisecond, policy.BackoffFor(5))
	// Дальше рост ограничен потолком
	assert.Equal(t, 1*time.Second, policy.BackoffFor(6))
	assert.Equal(t, 1*time.Second, policy.BackoffFor(10))
}

func TestRetry_SucceedsFirstAttempt(t *testing.T) {
	policy := DefaultPolicy()

	calls := 0
	err := policy.Retry(context.Background(), func(ctx context.Context) error {
		calls++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestRetry_SucceedsAfterFailures(t *testing.T) {
	policy := Policy{MaxAttempts: 3, InitialBackoff: time.Millisecond, MaxBackoff: time.Millisecond}

	calls := 0
	err := policy.Retry(context.Background(), func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetry_Exhausted(t *testing.T) {
	policy := Policy{MaxAttempts: 3, InitialBackoff: time.Millisecond, MaxBackoff: time.Millisecond}

	sentinel := errors.New("broker unavailable")
	calls := 0
	err := policy.Retry(context.Background(), func(ctx context.Context) error {
		calls++
		return sentinel
	})

	require.Error(t, err)
	assert.Equal(t, 3, calls)
	assert.ErrorIs(t, err, sentinel)
}

func TestRetry_CancelledBetweenAttempts(t *testing.T) {
	policy := Policy{MaxAttempts: 5, InitialBackoff: time.Minute, MaxBackoff: time.Minute}

	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	err := policy.Retry(ctx, func(ctx context.Context) error {
		calls++
		return errors.New("transient")
	})

	require.Error(t, err)
	assert.Equal(t, 1, calls)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRetry_ZeroMaxAttempts(t *testing.T) {
	policy := Policy{}

	calls := 0
	err := policy.Retry(context.Background(), func(ctx context.Context) error {
		calls++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}
