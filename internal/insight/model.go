package insight

import "time"

// Category labels accepted for persisted insights.
const (
	CategoryMood      = "mood"
	CategoryMemory    = "memory"
	CategoryCognitive = "cognitive"
	CategoryLanguage  = "language"
	CategoryBehavior  = "behavior"
	CategoryGeneral   = "general"
)

var categories = map[string]struct{}{
	CategoryMood:      {},
	CategoryMemory:    {},
	CategoryCognitive: {},
	CategoryLanguage:  {},
	CategoryBehavior:  {},
	CategoryGeneral:   {},
}

// IsCategory reports whether c is one of the six known labels.
func IsCategory(c string) bool {
	_, ok := categories[c]
	return ok
}

// Candidate is one insight as read from a model response, before
// normalization.
type Candidate struct {
	Text       string
	Category   string
	Confidence float64
}

// Insight is a persisted, validated insight. Rows are append-only.
type Insight struct {
	ID         uint64    `gorm:"primaryKey" json:"id"`
	UserID     uint64    `gorm:"index;not null" json:"-"`
	BatchID    string    `gorm:"size:36;not null" json:"batch_id"`
	Text       string    `gorm:"column:insight_text;type:text;not null" json:"insight_text"`
	Category   string    `gorm:"size:50;not null" json:"category"`
	Confidence float64   `gorm:"not null" json:"confidence"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
}
