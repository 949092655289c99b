// Package retrylimit paces and retries calls against a rate-limited API. The
// limiter adapts: it creeps up while calls succeed and backs off hard when the
// server pushes back.
package retrylimit

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter is an adaptive rate limiter. Safe for concurrent use.
type Limiter struct {
	mu        sync.Mutex
	limiter   *rate.Limiter
	min, max  rate.Limit
	lastError time.Time
}

// NewLimiter creates a Limiter starting at initial requests per second,
// bounded by min and max.
func NewLimiter(initial, min, max rate.Limit) *Limiter {
	if min < 1 {
		min = 1
	}
	if initial < min {
		initial = min
	}
	if max < initial {
		max = initial
	}
	return &Limiter{
		limiter: rate.NewLimiter(initial, 1),
		min:     min,
		max:     max,
	}
}

// Wait blocks until a call may proceed or ctx is done.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}

// Success nudges the rate up, unless the server pushed back recently.
func (l *Limiter) Success() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if time.Since(l.lastError) > 10*time.Second {
		l.set(l.limiter.Limit() + 1)
	}
}

// Backoff halves the rate after the server signalled overload.
func (l *Limiter) Backoff() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lastError = time.Now()
	l.set(l.limiter.Limit() / 2)
}

// Limit returns the current requests per second.
func (l *Limiter) Limit() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return float64(l.limiter.Limit())
}

func (l *Limiter) set(v rate.Limit) {
	if v > l.max {
		v = l.max
	}
	if v < l.min {
		v = l.min
	}
	if v != l.limiter.Limit() {
		l.limiter.SetLimit(v)
	}
}

// Fatal wraps an error that must not be retried.
type Fatal struct{ Err error }

func (f *Fatal) Error() string { return f.Err.Error() }
func (f *Fatal) Unwrap() error { return f.Err }

// Classifier reports whether an error is a push-back signal (retry after
// backing off) rather than a plain failure.
type Classifier func(error) bool

// WithRetry runs fn through the limiter, retrying push-back errors up to
// attempts times with the limiter slowed down between tries. Plain errors and
// Fatal-wrapped ones return immediately; Fatal is unwrapped.
func WithRetry(ctx context.Context, l *Limiter, attempts int, isPushback Classifier, fn func() error) error {
	if attempts < 1 {
		attempts = 1
	}
	var err error
	for i := 0; i < attempts; i++ {
		if werr := l.Wait(ctx); werr != nil {
			return werr
		}
		err = fn()
		if err == nil {
			l.Success()
			return nil
		}
		var fatal *Fatal
		if errors.As(err, &fatal) {
			return fatal.Err
		}
		if isPushback == nil || !isPushback(err) {
			return err
		}
		l.Backoff()
	}
	return err
}
