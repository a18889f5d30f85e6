package insight

import (
	"math"
	"strings"
	"time"
)

// MaxPerGeneration caps the insights stored for one generation run.
const MaxPerGeneration = 5

// Normalize keeps the first MaxPerGeneration candidates, in order, and turns
// them into insights owned by userID. Text, category and confidence are
// coerced so every result is valid for storage.
func Normalize(cands []Candidate, userID uint64, batchID string, now time.Time) []Insight {
	if len(cands) > MaxPerGeneration {
		cands = cands[:MaxPerGeneration]
	}

	out := make([]Insight, 0, len(cands))
	for _, c := range cands {
		out = append(out, Insight{
			UserID:     userID,
			BatchID:    batchID,
			Text:       normalizeText(c.Text),
			Category:   normalizeCategory(c.Category),
			Confidence: normalizeConfidence(c.Confidence),
			CreatedAt:  now,
		})
	}
	return out
}

func normalizeText(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return defaultText
	}
	return s
}

func normalizeCategory(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if !IsCategory(s) {
		return CategoryGeneral
	}
	return s
}

func normalizeConfidence(f float64) float64 {
	switch {
	case math.IsNaN(f):
		return defaultConfidence
	case f < 0:
		return 0
	case f > 1:
		return 1
	default:
		return f
	}
}
