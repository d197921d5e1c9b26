package retry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/niksmo/storefront/pkg/retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errTemporary = errors.New("temporary")

func TestDo(t *testing.T) {
	fastCfg := func(n int) retry.RetryConfig {
		return retry.RetryConfig{
			MaxAttempts: n,
			Backoff:     retry.ConstantBackoff(time.Millisecond),
		}
	}

	t.Run("FirstAttempt", func(t *testing.T) {
		calls := 0
		err := retry.Do(t.Context(), fastCfg(3), func() error {
			calls++
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("SucceedsAfterRetries", func(t *testing.T) {
		calls := 0
		err := retry.Do(t.Context(), fastCfg(5), func() error {
			calls++
			if calls < 3 {
				return errTemporary
			}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("Exhausted", func(t *testing.T) {
		calls := 0
		err := retry.Do(t.Context(), fastCfg(4), func() error {
			calls++
			return errTemporary
		})
		assert.ErrorIs(t, err, errTemporary)
		assert.Equal(t, 4, calls)
	})

	t.Run("NotRetryable", func(t *testing.T) {
		errFatal := errors.New("fatal")
		cfg := fastCfg(5)
		cfg.ShouldRetry = func(err error) bool {
			return errors.Is(err, errTemporary)
		}

		calls := 0
		err := retry.Do(t.Context(), cfg, func() error {
			calls++
			return errFatal
		})
		assert.ErrorIs(t, err, errFatal)
		assert.Equal(t, 1, calls)
	})

	t.Run("ZeroConfigRunsOnce", func(t *testing.T) {
		calls := 0
		err := retry.Do(t.Context(), retry.RetryConfig{}, func() error {
			calls++
			return errTemporary
		})
		assert.ErrorIs(t, err, errTemporary)
		assert.Equal(t, 1, calls)
	})

	t.Run("ContextDone", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		cfg := retry.RetryConfig{
			MaxAttempts: 10,
			Backoff:     retry.ConstantBackoff(time.Hour),
		}

		err := retry.Do(ctx, cfg, func() error {
			cancel()
			return errTemporary
		})
		assert.ErrorIs(t, err, context.Canceled)
		assert.ErrorIs(t, err, errTemporary)
	})
}

func TestDoWithResult(t *testing.T) {
	calls := 0
	v, err := retry.DoWithResult(t.Context(), retry.RetryConfig{
		MaxAttempts: 3,
		Backoff:     retry.ConstantBackoff(time.Millisecond),
	}, func() (string, error) {
		calls++
		if calls == 1 {
			return "", errTemporary
		}
		return "ready", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ready", v)
}

func TestExponentialBackoff(t *testing.T) {
	b := retry.ExponentialBackoff(10 * time.Millisecond)
	for attempt := 1; attempt <= 4; attempt++ {
		base := time.Duration(1<<attempt) * 10 * time.Millisecond
		d := b(attempt)
		assert.GreaterOrEqual(t, d, base)
		assert.LessOrEqual(t, d, base+base/2)
	}
}
