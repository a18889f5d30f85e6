package report

import "math"

// DefaultMemoryScore is reported for days that have entries but no recorded
// memory clarity.
const DefaultMemoryScore = 5.0

// Row is one day of the weekly report. A day without entries reports zero
// for every field.
type Row struct {
	Day         string  `json:"day"`
	MoodScore   float64 `json:"moodScore"`
	MemoryScore float64 `json:"memoryScore"`
	EntryCount  int     `json:"entryCount"`
}

// Assemble turns buckets into the seven report rows, Monday first.
func Assemble(buckets [7]DailyBucket) []Row {
	rows := make([]Row, 0, len(buckets))
	for i, b := range buckets {
		row := Row{Day: Days[i]}
		if b.EntryCount > 0 {
			row.EntryCount = b.EntryCount
			row.MoodScore = round1(mean(b.MoodScores))
			row.MemoryScore = DefaultMemoryScore
			if len(b.MemoryScores) > 0 {
				row.MemoryScore = round1(mean(b.MemoryScores))
			}
		}
		rows = append(rows, row)
	}
	return rows
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// round1 rounds half away from zero to one decimal place.
func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
