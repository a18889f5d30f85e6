package report

import "strings"

// DefaultMoodScore is used for missing or unrecognized mood tags.
const DefaultMoodScore = 5

var moodScores = map[string]int{
	"happy":     8,
	"calm":      7,
	"energetic": 9,
	"sad":       3,
	"anxious":   2,
	"confused":  1,
	"tired":     4,
}

// ScoreForMood maps a mood tag to its numeric score.
func ScoreForMood(tag string) int {
	if s, ok := moodScores[strings.ToLower(strings.TrimSpace(tag))]; ok {
		return s
	}
	return DefaultMoodScore
}
