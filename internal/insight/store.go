package insight

import (
	"context"

	"gorm.io/gorm"
)

// GormStore persists insights with gorm.
type GormStore struct {
	DB *gorm.DB
}

// AppendInsights writes the batch in one transaction; either every insight is
// stored or none is.
func (s *GormStore) AppendInsights(ctx context.Context, batch []Insight) ([]Insight, error) {
	if len(batch) == 0 {
		return batch, nil
	}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&batch).Error
	})
	if err != nil {
		return nil, err
	}
	return batch, nil
}

// ListInsights returns the user's insights, newest batch first and in
// generation order within a batch.
func (s *GormStore) ListInsights(ctx context.Context, userID uint64) ([]Insight, error) {
	out := make([]Insight, 0)
	err := s.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc, id asc").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
