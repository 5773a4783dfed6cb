package timeout

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunCompletes(t *testing.T) {
	err := Run(context.Background(), time.Second, func(ctx context.Context) error {
		return nil
	})
	assert.NoError(t, err)
}

func TestRunPassesThroughErrors(t *testing.T) {
	boom := errors.New("boom")
	err := Run(context.Background(), time.Second, func(ctx context.Context) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
}

func TestRunTimesOut(t *testing.T) {
	start := time.Now()
	err := Run(context.Background(), 50*time.Millisecond, func(ctx context.Context) error {
		select {
		case <-time.After(time.Second):
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})

	assert.ErrorIs(t, err, ErrTimedOut)
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestRunMapsDeadlineExceededFromFn(t *testing.T) {
	err := Run(context.Background(), time.Second, func(ctx context.Context) error {
		return context.DeadlineExceeded
	})
	assert.ErrorIs(t, err, ErrTimedOut)
}

func TestRunPropagatesCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Run(ctx, time.Second, func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunValueCompletes(t *testing.T) {
	got, err := RunValue(context.Background(), time.Second, func(ctx context.Context) (int, error) {
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, got)
}

func TestRunValueTimesOutWithZeroValue(t *testing.T) {
	got, err := RunValue(context.Background(), 50*time.Millisecond, func(ctx context.Context) (string, error) {
		select {
		case <-time.After(time.Second):
			return "late", nil
		case <-ctx.Done():
			return "", ctx.Err()
		}
	})

	assert.ErrorIs(t, err, ErrTimedOut)
	assert.Empty(t, got)
}
