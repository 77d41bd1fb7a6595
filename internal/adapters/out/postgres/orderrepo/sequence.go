package orderrepo

import (
	"context"

	"gorm.io/gorm"
)

const SequenceName = "order_number_seq"

// GormOrderNumberSequence draws order numbers from a PostgreSQL sequence.
// Values are never reused, even when the surrounding transaction rolls back.
type GormOrderNumberSequence struct {
	db *gorm.DB
}

func NewGormOrderNumberSequence(db *gorm.DB) *GormOrderNumberSequence {
	return &GormOrderNumberSequence{db: db}
}

func (s *GormOrderNumberSequence) Next(ctx context.Context) (int64, error) {
	var next int64
	if err := s.db.WithContext(ctx).Raw("SELECT nextval('" + SequenceName + "')").Scan(&next).Error; err != nil {
		return 0, err
	}
	return next, nil
}
