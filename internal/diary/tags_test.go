package diary

import (
	"reflect"
	"strings"
	"testing"
)

func TestExtractTags(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"none", "plain entry", nil},
		{"lowercased and deduped", "Walked #Park then #park again #sleep", []string{"park", "sleep"}},
		{"underscore", "#early_morning run", []string{"early_morning"}},
		{"unicode letters", "Café with #Amélie and #日記", []string{"amélie", "日記"}},
		{"punctuation before tag", "Long day (#work), then #rest.", []string{"work", "rest"}},
		{"url fragment ignored", "Read https://example.com/page#notes and #reading", []string{"reading"}},
		{"joined hashes ignored", "#a#b and ##c", []string{"a"}},
		{"too long ignored", "#" + strings.Repeat("x", 33) + " #ok", []string{"ok"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractTags(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractTags(%q) = %#v, want %#v", tt.text, got, tt.want)
			}
		})
	}
}

func TestExtractTagsCap(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 30; i++ {
		sb.WriteString("#t")
		sb.WriteString(strings.Repeat("x", i+1))
		sb.WriteString(" ")
	}
	if got := ExtractTags(sb.String()); len(got) != maxTags {
		t.Errorf("len(ExtractTags) = %d, want %d", len(got), maxTags)
	}
}

func TestTagsValueScan(t *testing.T) {
	v, err := Tags{"a", "b c"}.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}

	var got Tags
	if err := got.Scan(v); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if !reflect.DeepEqual(got, Tags{"a", "b c"}) {
		t.Errorf("round trip = %#v", got)
	}

	nilValue, _ := Tags(nil).Value()
	if nilValue != "{}" {
		t.Errorf("Tags(nil).Value() = %v, want {}", nilValue)
	}
}
