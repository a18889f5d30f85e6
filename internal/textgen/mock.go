package textgen

import (
	"context"
	"strings"
	"sync"
)

const mockCompletion = `[
  {"insight_text": "Mood entries lean positive, with calm days outnumbering anxious ones.", "category": "mood", "confidence": 0.72},
  {"insight_text": "Memory clarity ratings are stable across recent entries.", "category": "memory", "confidence": 0.68},
  {"insight_text": "Entries are coherent and follow a clear sequence of events.", "category": "cognitive", "confidence": 0.7},
  {"insight_text": "Vocabulary and sentence structure are varied and consistent.", "category": "language", "confidence": 0.66},
  {"insight_text": "Daily routines such as walks and meals are mentioned regularly.", "category": "behavior", "confidence": 0.64}
]`

// Mock returns a fixed completion. It is used for local development when no
// provider key is configured, and in tests.
type Mock struct {
	Response string
	Err      error

	mu      sync.Mutex
	prompts []string
}

func (m *Mock) Complete(ctx context.Context, prompt string, _ int, _ float64) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	m.mu.Lock()
	m.prompts = append(m.prompts, prompt)
	m.mu.Unlock()
	if m.Err != nil {
		return "", m.Err
	}
	if strings.TrimSpace(m.Response) == "" {
		return mockCompletion, nil
	}
	return m.Response, nil
}

// Prompts returns the prompts received so far.
func (m *Mock) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.prompts...)
}
