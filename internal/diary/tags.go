package diary

import (
	"database/sql/driver"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// A hashtag starts at the beginning of the text or after a character that
// cannot be part of a word or URL, so "example.com/page#notes" and "a#b" do
// not produce tags.
var hashtagRe = regexp.MustCompile(`(?:^|[^\p{L}\p{N}_/&#])#([\p{L}\p{N}_]{1,32})`)

const maxTags = 20

// ExtractTags returns the distinct lowercased hashtags of a diary entry in
// order of first use. Words longer than 32 characters are not tags.
func ExtractTags(text string) []string {
	var out []string
	seen := map[string]struct{}{}

	for _, m := range hashtagRe.FindAllStringSubmatchIndex(text, -1) {
		start, end := m[2], m[3]
		if end < len(text) {
			if r, _ := utf8.DecodeRuneInString(text[end:]); isTagRune(r) {
				continue
			}
		}
		t := strings.ToLower(text[start:end])
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)

		if len(out) == maxTags {
			break
		}
	}
	return out
}

func isTagRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

// Tags is stored as text[] on postgres and as the same array literal in a
// text column elsewhere.
type Tags []string

func (Tags) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "text[]"
	}
	return "text"
}

func (t Tags) Value() (driver.Value, error) {
	if t == nil {
		return "{}", nil
	}
	return pq.StringArray(t).Value()
}

func (t *Tags) Scan(src any) error {
	var a pq.StringArray
	if err := a.Scan(src); err != nil {
		return err
	}
	*t = Tags(a)
	return nil
}

func (t Tags) Has(tag string) bool {
	for _, x := range t {
		if x == tag {
			return true
		}
	}
	return false
}
