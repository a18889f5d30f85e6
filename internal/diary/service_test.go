package diary

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func openTestStore(t *testing.T, now *time.Time) *Store {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: gormlogger.Discard})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := gdb.AutoMigrate(&Entry{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return &Store{DB: gdb, Now: func() time.Time { return *now }}
}

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func TestCreateEntry(t *testing.T) {
	now := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
	s := openTestStore(t, &now)

	e, err := s.CreateEntry(context.Background(), 7, CreateEntryInput{
		Text:          "  Forgot my keys again #memory #Keys ",
		MoodTag:       strPtr(" Anxious "),
		MemoryClarity: intPtr(4),
	})
	if err != nil {
		t.Fatalf("CreateEntry: %v", err)
	}
	if e.ID == 0 {
		t.Error("ID = 0, want assigned id")
	}
	if e.Text != "Forgot my keys again #memory #Keys" {
		t.Errorf("Text = %q", e.Text)
	}
	if e.Mood() != "anxious" {
		t.Errorf("Mood() = %q, want anxious", e.Mood())
	}
	if c, ok := e.Clarity(); !ok || c != 4 {
		t.Errorf("Clarity() = %d, %v", c, ok)
	}
	if len(e.Tags) != 2 || e.Tags[0] != "memory" || e.Tags[1] != "keys" {
		t.Errorf("Tags = %#v", e.Tags)
	}
	if !e.CreatedAt.Equal(now) {
		t.Errorf("CreatedAt = %v, want %v", e.CreatedAt, now)
	}

	entries, err := s.ListEntries(context.Background(), 7)
	if err != nil {
		t.Fatalf("ListEntries: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("len(entries) = %d, want 1", len(entries))
	}
	if len(entries[0].Tags) != 2 {
		t.Errorf("stored Tags = %#v", entries[0].Tags)
	}
}

func TestCreateEntryValidation(t *testing.T) {
	now := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
	s := openTestStore(t, &now)

	tests := []struct {
		name string
		in   CreateEntryInput
		want error
	}{
		{"empty text", CreateEntryInput{Text: "   "}, ErrEmptyText},
		{"clarity too high", CreateEntryInput{Text: "x", MemoryClarity: intPtr(11)}, ErrInvalidClarity},
		{"clarity negative", CreateEntryInput{Text: "x", MemoryClarity: intPtr(-1)}, ErrInvalidClarity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.CreateEntry(context.Background(), 1, tt.in)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestCreateEntryBlankMoodIsNil(t *testing.T) {
	now := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
	s := openTestStore(t, &now)

	e, err := s.CreateEntry(context.Background(), 1, CreateEntryInput{Text: "ok", MoodTag: strPtr("  ")})
	if err != nil {
		t.Fatalf("CreateEntry: %v", err)
	}
	if e.MoodTag != nil {
		t.Errorf("MoodTag = %q, want nil", *e.MoodTag)
	}
}

func TestListEntriesOrderAndScope(t *testing.T) {
	now := time.Date(2026, 10, 10, 8, 0, 0, 0, time.UTC)
	s := openTestStore(t, &now)
	ctx := context.Background()

	for i, text := range []string{"first", "second", "third"} {
		now = time.Date(2026, 10, 10+i, 8, 0, 0, 0, time.UTC)
		if _, err := s.CreateEntry(ctx, 1, CreateEntryInput{Text: text}); err != nil {
			t.Fatalf("CreateEntry: %v", err)
		}
	}
	if _, err := s.CreateEntry(ctx, 2, CreateEntryInput{Text: "other user"}); err != nil {
		t.Fatalf("CreateEntry: %v", err)
	}

	entries, err := s.ListEntries(ctx, 1)
	if err != nil {
		t.Fatalf("ListEntries: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("len(entries) = %d, want 3", len(entries))
	}
	if entries[0].Text != "third" || entries[2].Text != "first" {
		t.Errorf("order = %q, %q, %q; want newest first", entries[0].Text, entries[1].Text, entries[2].Text)
	}

	since, err := s.ListEntriesSince(ctx, 1, time.Date(2026, 10, 11, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("ListEntriesSince: %v", err)
	}
	if len(since) != 2 || since[0].Text != "third" || since[1].Text != "second" {
		t.Errorf("ListEntriesSince = %+v", since)
	}
}

func TestSearchEntries(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
	s := openTestStore(t, &now)

	for _, text := range []string{
		"Morning walk in the #park",
		"Lunch with #family at the park cafe",
		"Quiet evening, read a book #Family",
	} {
		if _, err := s.CreateEntry(ctx, 1, CreateEntryInput{Text: text}); err != nil {
			t.Fatalf("CreateEntry: %v", err)
		}
		now = now.Add(time.Hour)
	}
	if _, err := s.CreateEntry(ctx, 2, CreateEntryInput{Text: "Other user #family"}); err != nil {
		t.Fatalf("CreateEntry: %v", err)
	}

	tests := []struct {
		name   string
		filter EntryFilter
		want   []string
	}{
		{"all", EntryFilter{}, []string{
			"Quiet evening, read a book #Family",
			"Lunch with #family at the park cafe",
			"Morning walk in the #park",
		}},
		{"tag", EntryFilter{Tag: "#FAMILY"}, []string{
			"Quiet evening, read a book #Family",
			"Lunch with #family at the park cafe",
		}},
		{"query", EntryFilter{Query: "PARK"}, []string{
			"Lunch with #family at the park cafe",
			"Morning walk in the #park",
		}},
		{"tag and query", EntryFilter{Tag: "family", Query: "park"}, []string{
			"Lunch with #family at the park cafe",
		}},
		{"limit", EntryFilter{Limit: 1}, []string{"Quiet evening, read a book #Family"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.SearchEntries(ctx, 1, tt.filter)
			if err != nil {
				t.Fatalf("SearchEntries: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d entries, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i].Text != tt.want[i] {
					t.Errorf("entry %d = %q, want %q", i, got[i].Text, tt.want[i])
				}
			}
		})
	}
}

func TestTagCounts(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
	s := openTestStore(t, &now)

	for _, text := range []string{"#family #park", "#family", "#friends", "no tags"} {
		if _, err := s.CreateEntry(ctx, 1, CreateEntryInput{Text: text}); err != nil {
			t.Fatalf("CreateEntry: %v", err)
		}
	}

	got, err := s.TagCounts(ctx, 1, "", 0)
	if err != nil {
		t.Fatalf("TagCounts: %v", err)
	}
	want := []TagCount{{"family", 2}, {"friends", 1}, {"park", 1}}
	if len(got) != len(want) {
		t.Fatalf("TagCounts = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("TagCounts[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	got, err = s.TagCounts(ctx, 1, "#F", 1)
	if err != nil {
		t.Fatalf("TagCounts prefix: %v", err)
	}
	if len(got) != 1 || got[0].Tag != "family" {
		t.Errorf("TagCounts prefix = %v", got)
	}
}
