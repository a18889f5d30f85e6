package diary

import "time"

// Entry is one diary entry. Entries are never updated once written.
type Entry struct {
	ID            uint64    `gorm:"primaryKey"`
	UserID        uint64    `gorm:"index;not null"`
	Text          string    `gorm:"column:entry_text;type:text;not null"`
	MoodTag       *string   `gorm:"size:50"`
	MemoryClarity *int
	Tags          Tags      `gorm:"not null;default:'{}'"`
	CreatedAt     time.Time `gorm:"index;not null"`
}

func (Entry) TableName() string { return "diary_entries" }

// Mood returns the mood tag or "" when none was recorded.
func (e Entry) Mood() string {
	if e.MoodTag == nil {
		return ""
	}
	return *e.MoodTag
}

// Clarity returns the memory clarity rating and whether one was recorded.
func (e Entry) Clarity() (int, bool) {
	if e.MemoryClarity == nil {
		return 0, false
	}
	return *e.MemoryClarity, true
}
