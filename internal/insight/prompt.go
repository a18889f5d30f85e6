package insight

import (
	"fmt"
	"strings"

	"neevamind/internal/diary"
)

const promptHeader = `You are an AI assistant specialized in analyzing diary entries for early signs of cognitive decline.
Analyze the following diary entries and provide exactly 5 specific insights about the person's cognitive wellness,
mood patterns, memory clarity, language usage, and behavioral patterns.

Focus on:
1. Mood analysis - emotional patterns and stability
2. Memory patterns - any signs of memory issues or confusion
3. Cognitive health - thinking patterns, clarity, coherence
4. Language usage - vocabulary, sentence structure, communication clarity
5. Behavioral insights - daily routines, activities mentioned

For each insight, provide:
- Clear, actionable observation
- Category (mood, memory, cognitive, language, behavior)
- Confidence level (0.0-1.0)

Format your response as a JSON array with objects containing:
- "insight_text": the insight description
- "category": one of the categories above
- "confidence": confidence score between 0.0 and 1.0

Example:
[{"insight_text": "...", "category": "mood", "confidence": 0.8}]

Diary entries to analyze:
`

const promptFooter = `

Respond only with the JSON array, no additional text.`

const notSpecified = "Not specified"

// BuildPrompt renders entries (newest first) into the insight request. It is
// deterministic in its input; callers reject empty entry lists beforehand.
func BuildPrompt(entries []diary.Entry) string {
	var sb strings.Builder
	sb.WriteString(promptHeader)

	for i, e := range entries {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		mood := e.Mood()
		if mood == "" {
			mood = notSpecified
		}
		clarity := notSpecified
		if c, ok := e.Clarity(); ok && c != 0 {
			clarity = fmt.Sprintf("%d", c)
		}
		fmt.Fprintf(&sb, "Entry %d (%s):\n", i+1, e.CreatedAt.UTC().Format("2006-01-02"))
		fmt.Fprintf(&sb, "Mood: %s\n", mood)
		fmt.Fprintf(&sb, "Memory Clarity: %s/10\n", clarity)
		fmt.Fprintf(&sb, "Content: %s", e.Text)
	}

	sb.WriteString(promptFooter)
	return sb.String()
}
