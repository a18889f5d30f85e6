package report

import (
	"time"

	"neevamind/internal/diary"
)

// Window is the span covered by a weekly report. It must not exceed seven
// days, otherwise distinct dates would share a weekday bucket.
const Window = 7 * 24 * time.Hour

// Days lists the weekday labels in report order.
var Days = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// DailyBucket accumulates the scores of one weekday.
type DailyBucket struct {
	Day          string
	MoodScores   []float64
	MemoryScores []float64
	EntryCount   int
}

// dayIndex maps a time.Weekday onto the Mon..Sun order of Days.
func dayIndex(wd time.Weekday) int {
	return (int(wd) + 6) % 7
}

// Bucket groups entries created within [now-Window, now] by weekday in loc.
// All seven buckets are returned in Days order, including empty ones.
func Bucket(entries []diary.Entry, now time.Time, loc *time.Location) [7]DailyBucket {
	if loc == nil {
		loc = time.UTC
	}

	var buckets [7]DailyBucket
	for i, d := range Days {
		buckets[i].Day = d
	}

	since := now.Add(-Window)
	for _, e := range entries {
		if e.CreatedAt.Before(since) || e.CreatedAt.After(now) {
			continue
		}
		b := &buckets[dayIndex(e.CreatedAt.In(loc).Weekday())]
		b.EntryCount++
		b.MoodScores = append(b.MoodScores, float64(ScoreForMood(e.Mood())))

		// a clarity of 0 counts as not recorded
		if c, ok := e.Clarity(); ok && c != 0 {
			b.MemoryScores = append(b.MemoryScores, float64(c))
		}
	}
	return buckets
}
