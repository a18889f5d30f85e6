package textgen

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"time"
)

// Retrying wraps a Completer with a per-attempt timeout and bounded
// exponential backoff. Only transport errors, 429 and 5xx responses are
// retried.
type Retrying struct {
	Next        Completer
	Timeout     time.Duration
	MaxAttempts int
	Backoff     time.Duration
	MaxBackoff  time.Duration

	sleep func(ctx context.Context, d time.Duration) error
}

func NewRetrying(next Completer, timeout time.Duration, maxAttempts int, backoff, maxBackoff time.Duration) *Retrying {
	return &Retrying{
		Next:        next,
		Timeout:     timeout,
		MaxAttempts: maxAttempts,
		Backoff:     backoff,
		MaxBackoff:  maxBackoff,
	}
}

func (r *Retrying) Complete(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error) {
	attempts := r.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			d := r.delay(attempt)
			slog.Warn("textgen retrying", "attempt", attempt+1, "delay", d, "error", lastErr)
			if err := r.wait(ctx, d); err != nil {
				return "", err
			}
		}

		out, err := r.once(ctx, prompt, maxTokens, temperature)
		if err == nil {
			return out, nil
		}
		lastErr = err

		if ctx.Err() != nil || !retryable(err) {
			return "", err
		}
	}
	return "", lastErr
}

func (r *Retrying) once(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error) {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}
	return r.Next.Complete(ctx, prompt, maxTokens, temperature)
}

// delay is Backoff * 2^(attempt-1), capped at MaxBackoff.
func (r *Retrying) delay(attempt int) time.Duration {
	d := time.Duration(float64(r.Backoff) * math.Pow(2, float64(attempt-1)))
	if r.MaxBackoff > 0 && d > r.MaxBackoff {
		d = r.MaxBackoff
	}
	return d
}

func (r *Retrying) wait(ctx context.Context, d time.Duration) error {
	if r.sleep != nil {
		return r.sleep(ctx, d)
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func retryable(err error) bool {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Temporary()
	}
	if errors.Is(err, ErrEmptyCompletion) || errors.Is(err, ErrBadResponse) || errors.Is(err, ErrNotConfigured) {
		return false
	}
	// transport failures and per-attempt deadlines
	return true
}
