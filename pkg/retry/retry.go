// Package retry executes remote operations with per-attempt timeouts and
// linear backoff. It holds no state between calls and is safe for concurrent
// independent invocations.
package retry

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// ErrTimeout indicates a single attempt exceeded its per-attempt timeout.
var ErrTimeout = errors.New("operation timed out")

// Operation is a remote call to execute under the retry policy. The provided
// context is cancelled when the attempt's timer fires, so implementations
// should pass it through to their transport.
type Operation[T any] func(ctx context.Context) (T, error)

// Clock abstracts timer creation so tests can drive retries deterministically.
type Clock interface {
	After(d time.Duration) <-chan time.Time
}

type systemClock struct{}

func (systemClock) After(d time.Duration) <-chan time.Time {
	return time.After(d)
}

// Options configures the retry policy.
type Options struct {
	// MaxRetries is the total number of attempts. Defaults to 3.
	MaxRetries int
	// BaseDelay is multiplied by the 1-based attempt number to produce the
	// wait before the next attempt. Defaults to 1s.
	BaseDelay time.Duration
	// PerAttemptTimeout bounds each individual attempt. Defaults to 20s.
	PerAttemptTimeout time.Duration
	// Logger receives a warning per failed attempt. Defaults to slog.Default.
	Logger *slog.Logger
	// Clock is the timer source. Defaults to the wall clock.
	Clock Clock
}

func (o *Options) normalize() {
	if o.MaxRetries <= 0 {
		o.MaxRetries = 3
	}
	if o.BaseDelay <= 0 {
		o.BaseDelay = time.Second
	}
	if o.PerAttemptTimeout <= 0 {
		o.PerAttemptTimeout = 20 * time.Second
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	if o.Clock == nil {
		o.Clock = systemClock{}
	}
}

// Do runs op until it succeeds or the retry budget is exhausted, returning
// the last observed error in the failure case. Each attempt races op against
// the per-attempt timer; the loser is cancelled through the attempt context.
func Do[T any](ctx context.Context, op Operation[T], opts Options) (T, error) {
	opts.normalize()

	var zero T
	var lastErr error

	for attempt := 1; attempt <= opts.MaxRetries; attempt++ {
		result, err := runAttempt(ctx, op, opts)
		if err == nil {
			return result, nil
		}

		lastErr = err
		opts.Logger.Warn("remote call attempt failed",
			"attempt", attempt,
			"max_retries", opts.MaxRetries,
			"error", err,
		)

		if attempt == opts.MaxRetries {
			break
		}

		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-opts.Clock.After(opts.BaseDelay * time.Duration(attempt)):
		}
	}

	return zero, lastErr
}

func runAttempt[T any](ctx context.Context, op Operation[T], opts Options) (T, error) {
	var zero T

	attemptCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	type outcome struct {
		value T
		err   error
	}

	done := make(chan outcome, 1)
	go func() {
		value, err := op(attemptCtx)
		done <- outcome{value: value, err: err}
	}()

	select {
	case out := <-done:
		return out.value, out.err
	case <-opts.Clock.After(opts.PerAttemptTimeout):
		return zero, ErrTimeout
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}
