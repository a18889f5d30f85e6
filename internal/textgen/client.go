// Package textgen talks to prompt-completion providers. Their output is
// untrusted text; callers are expected to parse it defensively.
package textgen

import (
	"context"
	"errors"
	"fmt"
)

// Completer produces a raw completion for a single prompt.
type Completer interface {
	Complete(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error)
}

// StatusError is returned when the provider answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("textgen: unexpected status %d: %s", e.StatusCode, e.Body)
}

// Temporary reports whether retrying the same request may succeed.
func (e *StatusError) Temporary() bool {
	return e.StatusCode == 429 || e.StatusCode >= 500
}

// ErrBadResponse marks a 2xx reply whose body could not be decoded.
var (
	ErrEmptyCompletion = errors.New("textgen: empty completion")
	ErrBadResponse     = errors.New("textgen: malformed response")
	ErrNotConfigured   = errors.New("textgen: provider not configured")
)
