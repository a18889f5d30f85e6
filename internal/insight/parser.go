package insight

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
)

// Tier identifies which parsing strategy produced a ParseOutcome.
type Tier int

const (
	TierStructured Tier = iota + 1
	TierHeuristic
	TierFallback
)

func (t Tier) String() string {
	switch t {
	case TierStructured:
		return "structured"
	case TierHeuristic:
		return "heuristic"
	case TierFallback:
		return "fallback"
	default:
		return "unknown"
	}
}

// ParseOutcome is the result of Parse. Insights is never empty.
type ParseOutcome struct {
	Tier     Tier
	Insights []Candidate
}

const (
	defaultText       = "No text"
	defaultConfidence = 0.5

	heuristicConfidence = 0.7
)

var (
	trailingCommaRe = regexp.MustCompile(`,\s*\]`)

	errNotArray = errors.New("response is not a JSON array")
)

// fallbackInsights are returned when the response cannot be read at all.
// They are not derived from the entries.
var fallbackInsights = []Candidate{
	{Text: "Mood is generally calm with some fluctuations.", Category: CategoryMood, Confidence: 0.8},
	{Text: "Memory clarity seems stable.", Category: CategoryMemory, Confidence: 0.85},
	{Text: "Language usage is rich and coherent.", Category: CategoryLanguage, Confidence: 0.9},
}

// Parse turns a raw model response into candidate insights. Tiers are tried
// in order: a JSON array (after light repair), then enumerated lines, then a
// fixed fallback set. It never fails and never returns an empty list.
func Parse(raw string) ParseOutcome {
	if out, err := runTier(TierStructured, raw, parseStructured); err == nil && len(out) > 0 {
		return ParseOutcome{Tier: TierStructured, Insights: out}
	} else if err != nil {
		slog.Debug("structured insight parse failed", "error", err)
	}

	if out, err := runTier(TierHeuristic, raw, parseHeuristic); err == nil && len(out) > 0 {
		return ParseOutcome{Tier: TierHeuristic, Insights: out}
	}

	return ParseOutcome{Tier: TierFallback, Insights: fallback()}
}

func runTier(t Tier, raw string, fn func(string) ([]Candidate, error)) (out []Candidate, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, fmt.Errorf("%s tier panicked: %v", t, r)
		}
	}()
	return fn(raw)
}

func parseStructured(raw string) ([]Candidate, error) {
	text := stripCodeFence(strings.TrimSpace(raw))
	text = trailingCommaRe.ReplaceAllString(text, "]")

	var items []json.RawMessage
	if err := json.Unmarshal([]byte(text), &items); err != nil {
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", errNotArray, err)
	}

	out := make([]Candidate, 0, len(items))
	for _, item := range items {
		// fields stay raw so one unreadable value cannot drop the object
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(item, &obj); err != nil || obj == nil {
			continue
		}
		out = append(out, Candidate{
			Text:       stringField(obj, "insight_text", defaultText),
			Category:   strings.ToLower(stringField(obj, "category", CategoryGeneral)),
			Confidence: numberField(obj, "confidence", defaultConfidence),
		})
	}
	return out, nil
}

// stripCodeFence removes a surrounding ``` or ```json fence, on one line or
// several.
func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimLeftFunc(s, func(r rune) bool {
		return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
	})
	s = strings.TrimSpace(s)
	return strings.TrimSpace(strings.TrimSuffix(s, "```"))
}

func stringField(obj map[string]json.RawMessage, key, def string) string {
	var v string
	if err := json.Unmarshal(obj[key], &v); err != nil {
		return def
	}
	v = strings.TrimSpace(v)
	if v == "" {
		return def
	}
	return v
}

// numberField accepts a JSON number or a numeric string. Values that do not
// parse, including ones outside float64 range, yield def.
func numberField(obj map[string]json.RawMessage, key string, def float64) float64 {
	raw := strings.TrimSpace(string(obj[key]))
	if raw == "" {
		return def
	}
	if raw[0] == '"' {
		var str string
		if err := json.Unmarshal([]byte(raw), &str); err != nil {
			return def
		}
		raw = strings.TrimSpace(str)
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return def
	}
	return f
}

func parseHeuristic(raw string) ([]Candidate, error) {
	var out []Candidate
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !isEnumerated(line) {
			continue
		}
		text := strings.TrimSpace(strings.TrimLeft(line, "0123456789.-* "))
		if text == "" {
			continue
		}
		out = append(out, Candidate{
			Text:       text,
			Category:   CategoryGeneral,
			Confidence: heuristicConfidence,
		})
	}
	return out, nil
}

func isEnumerated(line string) bool {
	c := line[0]
	return (c >= '0' && c <= '9') || c == '-' || c == '*'
}

func fallback() []Candidate {
	out := make([]Candidate, len(fallbackInsights))
	copy(out, fallbackInsights)
	return out
}
