package cron

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchedulerFiresJobOnStart(t *testing.T) {
	var runs atomic.Int32
	s := NewScheduler()
	s.AddJob("tick", time.Hour, func(ctx context.Context) error {
		runs.Add(1)
		return nil
	})
	s.Start()

	require.Eventually(t, func() bool { return runs.Load() == 1 }, time.Second, 10*time.Millisecond)
	require.NoError(t, s.Stop(context.Background()))
}

func TestSchedulerStopCancelsJobContext(t *testing.T) {
	started := make(chan struct{})
	s := NewScheduler()
	s.AddJob("waits", time.Hour, func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		return ctx.Err()
	})
	s.Start()
	<-started

	require.NoError(t, s.Stop(context.Background()))
}

func TestSchedulerStopGivesUpOnStuckJob(t *testing.T) {
	block := make(chan struct{})
	defer close(block)

	s := NewScheduler()
	s.AddJob("stuck", time.Hour, func(ctx context.Context) error {
		<-block
		return nil
	})
	s.Start()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, s.Stop(ctx), context.DeadlineExceeded)
}

func TestSchedulerRunOnce(t *testing.T) {
	var runs atomic.Int32
	s := NewScheduler()
	s.AddJob("a", time.Hour, func(ctx context.Context) error {
		runs.Add(1)
		return nil
	})
	s.AddJob("b", time.Hour, func(ctx context.Context) error {
		runs.Add(1)
		return nil
	})

	s.RunOnce(context.Background())
	assert.Equal(t, int32(2), runs.Load())
}
