package insight

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"neevamind/internal/diary"
	"neevamind/internal/textgen"

	"github.com/google/uuid"
)

var (
	ErrNoEntries         = errors.New("no diary entries found to analyze")
	ErrGenerativeService = errors.New("generative service failure")
	ErrPersistence       = errors.New("insight persistence failure")
)

// EntryLister reads a user's diary entries, newest first.
type EntryLister interface {
	ListEntries(ctx context.Context, userID uint64) ([]diary.Entry, error)
}

// Store appends and lists persisted insights.
type Store interface {
	AppendInsights(ctx context.Context, batch []Insight) ([]Insight, error)
	ListInsights(ctx context.Context, userID uint64) ([]Insight, error)
}

type Options struct {
	MaxTokens   int
	Temperature float64
}

type Service struct {
	entries EntryLister
	store   Store
	gen     textgen.Completer
	opts    Options

	now   func() time.Time
	newID func() string
}

func NewService(entries EntryLister, store Store, gen textgen.Completer, opts Options) *Service {
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = 1000
	}
	return &Service{
		entries: entries,
		store:   store,
		gen:     gen,
		opts:    opts,
		now:     func() time.Time { return time.Now().UTC() },
		newID:   uuid.NewString,
	}
}

// Generate runs the insight pipeline for userID and returns the stored
// insights. Nothing is stored unless the whole batch can be committed.
func (s *Service) Generate(ctx context.Context, userID uint64) ([]Insight, error) {
	entries, err := s.entries.ListEntries(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: listing entries: %w", ErrPersistence, err)
	}
	if len(entries) == 0 {
		return nil, ErrNoEntries
	}

	prompt := BuildPrompt(entries)

	raw, err := s.gen.Complete(ctx, prompt, s.opts.MaxTokens, s.opts.Temperature)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGenerativeService, err)
	}

	outcome := Parse(raw)
	log := slog.With("user_id", userID, "tier", outcome.Tier.String(), "candidates", len(outcome.Insights))
	if outcome.Tier == TierFallback {
		log.Warn("model response unreadable, storing fallback insights", "response", truncate(raw, 500))
	} else {
		log.Info("parsed model response")
	}

	batch := Normalize(outcome.Insights, userID, s.newID(), s.now())

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	saved, err := s.store.AppendInsights(ctx, batch)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return saved, nil
}

func (s *Service) List(ctx context.Context, userID uint64) ([]Insight, error) {
	out, err := s.store.ListInsights(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return out, nil
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "...(truncated)"
}
