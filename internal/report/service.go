package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"neevamind/internal/diary"
)

var ErrPersistence = errors.New("report entries unavailable")

// EntryReader reads a user's entries created at or after since.
type EntryReader interface {
	ListEntriesSince(ctx context.Context, userID uint64, since time.Time) ([]diary.Entry, error)
}

type Service struct {
	entries EntryReader
	loc     *time.Location
	now     func() time.Time
}

func NewService(entries EntryReader, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		entries: entries,
		loc:     loc,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Weekly computes the report for the seven days ending now. It is rebuilt
// from the stored entries on every call.
func (s *Service) Weekly(ctx context.Context, userID uint64) ([]Row, error) {
	now := s.now()
	entries, err := s.entries.ListEntriesSince(ctx, userID, now.Add(-Window))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return Assemble(Bucket(entries, now, s.loc)), nil
}
