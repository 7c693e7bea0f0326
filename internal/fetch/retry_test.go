package fetch

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

func newTestRetryer(maxRetries int) *Retryer {
	return New(Options{
		MaxRetries: maxRetries,
		PageDelay:  time.Millisecond,
		BaseDelay:  time.Millisecond,
	}, nil)
}

func TestDoSucceedsFirstAttempt(t *testing.T) {
	r := newTestRetryer(2)
	calls := 0

	err := r.Do(context.Background(), func(ctx context.Context) error {
		calls++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestDoRetriesThenSucceeds(t *testing.T) {
	r := newTestRetryer(2)
	calls := 0

	err := r.Do(context.Background(), func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return errBoom
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDoExhaustsBudgetAndReturnsLastError(t *testing.T) {
	r := newTestRetryer(2)
	calls := 0
	lastErr := errors.New("attempt 3 error")

	err := r.Do(context.Background(), func(ctx context.Context) error {
		calls++
		if calls == 3 {
			return lastErr
		}
		return errBoom
	})

	// maxRetries=2 means exactly 3 attempts
	assert.Equal(t, 3, calls)
	assert.ErrorIs(t, err, lastErr)
}

func TestDoZeroRetriesIsSingleAttempt(t *testing.T) {
	r := newTestRetryer(0)
	calls := 0

	err := r.Do(context.Background(), func(ctx context.Context) error {
		calls++
		return errBoom
	})

	assert.Equal(t, 1, calls)
	assert.ErrorIs(t, err, errBoom)
}

func TestDoHonorsCancellationBetweenAttempts(t *testing.T) {
	r := New(Options{MaxRetries: 5, PageDelay: time.Millisecond, BaseDelay: time.Hour}, nil)
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	done := make(chan error, 1)
	go func() {
		done <- r.Do(ctx, func(ctx context.Context) error {
			calls++
			return errBoom
		})
	}()

	// First attempt fails, then the retryer sits in its hour-long
	// backoff until the context is cancelled.
	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, calls)
	case <-time.After(time.Second):
		t.Fatal("Do did not return after cancellation")
	}
}

func TestDoPageRetriesUntilSuccess(t *testing.T) {
	r := newTestRetryer(0)
	calls := 0

	err := r.DoPage(context.Background(), func(ctx context.Context) error {
		calls++
		if calls < 5 {
			return errBoom
		}
		return nil
	})

	require.NoError(t, err)
	// Well past any per-track budget: page fetch failures never count
	assert.Equal(t, 5, calls)
}

func TestDoPageHonorsCancellationDuringDelay(t *testing.T) {
	r := New(Options{MaxRetries: 0, PageDelay: time.Hour, BaseDelay: time.Millisecond}, nil)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- r.DoPage(ctx, func(ctx context.Context) error {
			return errBoom
		})
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("DoPage did not return after cancellation")
	}
}

func TestDefaultsApplied(t *testing.T) {
	r := New(Options{MaxRetries: -1}, nil)

	assert.Equal(t, 2, r.opts.MaxRetries)
	assert.Equal(t, 5*time.Second, r.opts.PageDelay)
	assert.Equal(t, 500*time.Millisecond, r.opts.BaseDelay)
}
