// Package timeout centralizes the per-operation-class timeouts applied
// around network-bound work, replacing ad hoc deadline handling at each
// call site.
package timeout

import (
	"context"
	"errors"
	"time"
)

// ErrTimedOut is returned when the wrapped operation did not finish
// within its deadline. Callers compare with errors.Is.
var ErrTimedOut = errors.New("operation timed out")

// Run executes fn under a deadline. A deadline overrun yields
// ErrTimedOut; fn's own error is passed through unchanged.
func Run(ctx context.Context, d time.Duration, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, d)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- fn(ctx)
	}()

	select {
	case err := <-done:
		if err != nil && errors.Is(err, context.DeadlineExceeded) {
			return ErrTimedOut
		}
		return err
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return ErrTimedOut
		}
		return ctx.Err()
	}
}

// RunValue is Run for operations that produce a value. On timeout the
// zero value and ErrTimedOut are returned; the goroutine's eventual
// result is discarded.
func RunValue[T any](ctx context.Context, d time.Duration, fn func(ctx context.Context) (T, error)) (T, error) {
	ctx, cancel := context.WithTimeout(ctx, d)
	defer cancel()

	type result struct {
		value T
		err   error
	}
	done := make(chan result, 1)
	go func() {
		v, err := fn(ctx)
		done <- result{value: v, err: err}
	}()

	select {
	case res := <-done:
		if res.err != nil && errors.Is(res.err, context.DeadlineExceeded) {
			var zero T
			return zero, ErrTimedOut
		}
		return res.value, res.err
	case <-ctx.Done():
		var zero T
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return zero, ErrTimedOut
		}
		return zero, ctx.Err()
	}
}
