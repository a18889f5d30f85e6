package diary

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"
)

var (
	ErrEmptyText      = errors.New("entry text is required")
	ErrInvalidClarity = errors.New("memory clarity must be between 0 and 10")
	ErrMoodTagTooLong = errors.New("mood tag is too long")
)

const (
	maxMoodTagLength = 50
	minMemoryClarity = 0
	maxMemoryClarity = 10
)

// Store is the gorm-backed diary store.
type Store struct {
	DB  *gorm.DB
	Now func() time.Time
}

type CreateEntryInput struct {
	Text          string
	MoodTag       *string
	MemoryClarity *int
}

func (s *Store) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *Store) CreateEntry(ctx context.Context, userID uint64, in CreateEntryInput) (Entry, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return Entry{}, ErrEmptyText
	}

	var mood *string
	if in.MoodTag != nil {
		m := strings.ToLower(strings.TrimSpace(*in.MoodTag))
		if len(m) > maxMoodTagLength {
			return Entry{}, ErrMoodTagTooLong
		}
		if m != "" {
			mood = &m
		}
	}

	if in.MemoryClarity != nil {
		c := *in.MemoryClarity
		if c < minMemoryClarity || c > maxMemoryClarity {
			return Entry{}, ErrInvalidClarity
		}
	}

	e := Entry{
		UserID:        userID,
		Text:          text,
		MoodTag:       mood,
		MemoryClarity: in.MemoryClarity,
		Tags:          Tags(ExtractTags(text)),
		CreatedAt:     s.now(),
	}
	if err := s.DB.WithContext(ctx).Create(&e).Error; err != nil {
		return Entry{}, err
	}
	return e, nil
}

// ListEntries returns all entries of the user, newest first.
func (s *Store) ListEntries(ctx context.Context, userID uint64) ([]Entry, error) {
	out := make([]Entry, 0)
	err := s.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc, id desc").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListEntriesSince returns entries created at or after since, newest first.
func (s *Store) ListEntriesSince(ctx context.Context, userID uint64, since time.Time) ([]Entry, error) {
	out := make([]Entry, 0)
	err := s.DB.WithContext(ctx).
		Where("user_id = ? AND created_at >= ?", userID, since.UTC()).
		Order("created_at desc, id desc").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// EntryFilter narrows SearchEntries. Empty fields match everything.
type EntryFilter struct {
	Tag   string
	Query string
	Limit int
}

const (
	defaultSearchLimit = 50
	maxSearchLimit     = 200
)

// SearchEntries returns the user's entries matching f, newest first.
func (s *Store) SearchEntries(ctx context.Context, userID uint64, f EntryFilter) ([]Entry, error) {
	limit := f.Limit
	if limit <= 0 || limit > maxSearchLimit {
		limit = defaultSearchLimit
	}
	tag := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(f.Tag)), "#")

	q := s.DB.WithContext(ctx).Where("user_id = ?", userID)
	if text := strings.ToLower(strings.TrimSpace(f.Query)); text != "" {
		q = q.Where("lower(entry_text) like ?", "%"+text+"%")
	}
	// tags are matched in Go so the filter works for both text[] and text columns
	if tag == "" {
		q = q.Limit(limit)
	}

	var rows []Entry
	if err := q.Order("created_at desc, id desc").Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]Entry, 0, len(rows))
	for _, e := range rows {
		if tag != "" && !e.Tags.Has(tag) {
			continue
		}
		out = append(out, e)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

type TagCount struct {
	Tag   string `json:"tag"`
	Count int64  `json:"count"`
}

// TagCounts returns how often each tag occurs in the user's entries, most
// used first. A non-empty prefix restricts the result to matching tags.
func (s *Store) TagCounts(ctx context.Context, userID uint64, prefix string, limit int) ([]TagCount, error) {
	if limit <= 0 || limit > maxSearchLimit {
		limit = defaultSearchLimit
	}
	prefix = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(prefix)), "#")

	var rows []Entry
	if err := s.DB.WithContext(ctx).Select("tags").Where("user_id = ?", userID).Find(&rows).Error; err != nil {
		return nil, err
	}

	counts := map[string]int64{}
	for _, e := range rows {
		for _, t := range e.Tags {
			if strings.HasPrefix(t, prefix) {
				counts[t]++
			}
		}
	}

	out := make([]TagCount, 0, len(counts))
	for t, n := range counts {
		out = append(out, TagCount{Tag: t, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Tag < out[j].Tag
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
