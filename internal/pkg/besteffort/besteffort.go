// Package besteffort wraps side work whose failure must never fail the
// primary action: audit writes, insight generation, outbound email.
package besteffort

import (
	"context"
	"log/slog"
	"time"
)

// Do runs fn and swallows its error after logging a warning. The
// primary action's context cancellation still applies.
func Do(ctx context.Context, name string, fn func(ctx context.Context) error) {
	if err := fn(ctx); err != nil {
		slog.Warn("best-effort operation failed", "name", name, "error", err)
	}
}

// DoTimed is Do with its own deadline, detached from the caller's
// context so an already-finished request cannot cancel the side work.
func DoTimed(d time.Duration, name string, fn func(ctx context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), d)
	defer cancel()
	if err := fn(ctx); err != nil {
		slog.Warn("best-effort operation failed", "name", name, "error", err)
	}
}

// Go runs fn on its own goroutine with a deadline, for side work the
// request should not wait on at all.
func Go(d time.Duration, name string, fn func(ctx context.Context) error) {
	go DoTimed(d, name, fn)
}
