package retry_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/Tanmay1202/EnviRon/pkg/retry"
)

// stubClock fires timers instantly when the predicate accepts the duration;
// otherwise the timer never fires.
type stubClock struct {
	fire func(d time.Duration) bool
}

func (c *stubClock) After(d time.Duration) <-chan time.Time {
	ch := make(chan time.Time, 1)
	if c.fire == nil || c.fire(d) {
		ch <- time.Now()
	}
	return ch
}

func backoffOnly(timeout time.Duration) *stubClock {
	return &stubClock{fire: func(d time.Duration) bool { return d != timeout }}
}

func TestDoSucceedsAfterTwoFailures(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	calls := 0
	op := func(ctx context.Context) (string, error) {
		calls++
		if calls < 3 {
			return "", errors.New("transient")
		}
		return "ok", nil
	}

	got, err := retry.Do(context.Background(), op, retry.Options{
		MaxRetries:        3,
		BaseDelay:         time.Second,
		PerAttemptTimeout: time.Minute,
		Logger:            logger,
		Clock:             backoffOnly(time.Minute),
	})
	if err != nil {
		t.Fatalf("Do returned error: %v", err)
	}
	if got != "ok" {
		t.Errorf("Do = %q, want %q", got, "ok")
	}
	if calls != 3 {
		t.Errorf("op called %d times, want 3", calls)
	}

	logged := strings.Count(buf.String(), "remote call attempt failed")
	if logged != 2 {
		t.Errorf("logged %d attempt warnings, want 2", logged)
	}
}

func TestDoPropagatesLastError(t *testing.T) {
	calls := 0
	lastErr := errors.New("attempt 3 failed")
	op := func(ctx context.Context) (int, error) {
		calls++
		if calls == 3 {
			return 0, lastErr
		}
		return 0, errors.New("earlier failure")
	}

	_, err := retry.Do(context.Background(), op, retry.Options{
		MaxRetries:        3,
		BaseDelay:         time.Second,
		PerAttemptTimeout: time.Minute,
		Logger:            slog.New(slog.DiscardHandler),
		Clock:             backoffOnly(time.Minute),
	})
	if !errors.Is(err, lastErr) {
		t.Fatalf("Do error = %v, want %v", err, lastErr)
	}
	if calls != 3 {
		t.Errorf("op called %d times, want 3", calls)
	}
}

func TestDoTimesOutSlowAttempt(t *testing.T) {
	started := make(chan struct{}, 4)
	op := func(ctx context.Context) (int, error) {
		started <- struct{}{}
		<-ctx.Done()
		return 0, ctx.Err()
	}

	// Every timer fires instantly: the per-attempt timeout always beats the
	// blocked operation and each backoff wait completes immediately.
	_, err := retry.Do(context.Background(), op, retry.Options{
		MaxRetries:        2,
		BaseDelay:         time.Second,
		PerAttemptTimeout: 50 * time.Millisecond,
		Logger:            slog.New(slog.DiscardHandler),
		Clock:             &stubClock{},
	})
	if !errors.Is(err, retry.ErrTimeout) {
		t.Fatalf("Do error = %v, want ErrTimeout", err)
	}

	if len(started) != 2 {
		t.Errorf("op started %d times, want 2 (timed-out attempt must retry)", len(started))
	}
}

func TestDoLinearBackoffDelays(t *testing.T) {
	var delays []time.Duration
	clock := &stubClock{fire: func(d time.Duration) bool {
		if d == time.Minute {
			return false
		}
		delays = append(delays, d)
		return true
	}}

	op := func(ctx context.Context) (int, error) {
		return 0, errors.New("always fails")
	}

	_, err := retry.Do(context.Background(), op, retry.Options{
		MaxRetries:        3,
		BaseDelay:         100 * time.Millisecond,
		PerAttemptTimeout: time.Minute,
		Logger:            slog.New(slog.DiscardHandler),
		Clock:             clock,
	})
	if err == nil {
		t.Fatal("Do should fail when all attempts fail")
	}

	want := []time.Duration{100 * time.Millisecond, 200 * time.Millisecond}
	if len(delays) != len(want) {
		t.Fatalf("observed %d backoff delays, want %d", len(delays), len(want))
	}
	for i := range want {
		if delays[i] != want[i] {
			t.Errorf("delay %d = %v, want %v", i+1, delays[i], want[i])
		}
	}
}

func TestDoRespectsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	op := func(ctx context.Context) (int, error) {
		return 0, errors.New("fails")
	}

	never := &stubClock{fire: func(time.Duration) bool { return false }}
	_, err := retry.Do(ctx, op, retry.Options{
		MaxRetries:        3,
		BaseDelay:         time.Second,
		PerAttemptTimeout: time.Minute,
		Logger:            slog.New(slog.DiscardHandler),
		Clock:             never,
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Do error = %v, want context.Canceled", err)
	}
}
