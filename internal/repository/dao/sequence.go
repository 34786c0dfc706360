package dao

import (
	"context"

	"gorm.io/gorm"
)

// Sequence is a monotonic, collision-free counter row. Scope partitions the
// number space (e.g. one row per event for sample numbers, one per event
// for document numbers).
type Sequence struct {
	Scope string `gorm:"primaryKey"`
	Name  string `gorm:"primaryKey"`
	Value int64  `gorm:"not null"`
}

type SequenceDAO struct {
	db *gorm.DB
}

func NewSequenceDAO(db *gorm.DB) *SequenceDAO {
	return &SequenceDAO{
		db: db,
	}
}

// Next atomically increments and returns the counter. The upsert runs as a
// single statement, so concurrent callers always receive distinct values.
func (d *SequenceDAO) Next(ctx context.Context, scope, name string) (int64, error) {
	var value int64

	err := d.db.WithContext(ctx).Raw(`
		INSERT INTO sequences (scope, name, value) VALUES (?, ?, 1)
		ON CONFLICT (scope, name) DO UPDATE SET value = sequences.value + 1
		RETURNING value`, scope, name).
		Scan(&value).Error
	if err != nil {
		return 0, err
	}

	return value, nil
}
