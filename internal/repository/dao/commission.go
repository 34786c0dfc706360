package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrCommissionNotFound = errors.New("commission not found")
	ErrMemberNotFound     = errors.New("commission member not found")
)

type Commission struct {
	ID      uint               `gorm:"primaryKey"`
	Name    string             `gorm:"not null"`
	Status  string             `gorm:"not null"`
	Members []CommissionMember `gorm:"foreignKey:CommissionID"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type CommissionMember struct {
	ID           uint   `gorm:"primaryKey"`
	CommissionID uint   `gorm:"not null;index"`
	UserID       uint   `gorm:"not null;index"`
	Role         string `gorm:"not null"`

	IsExcluded      bool `gorm:"default:false"`
	ExclusionReason string
	ExcludedAt      *time.Time
}

// CommissionCategory assigns a commission to the sample categories it is
// eligible to evaluate.
type CommissionCategory struct {
	ID           uint `gorm:"primaryKey"`
	CommissionID uint `gorm:"not null;uniqueIndex:uni_commission_categories"`
	CategoryID   uint `gorm:"not null;uniqueIndex:uni_commission_categories"`
}

type CommissionDAO struct {
	db *gorm.DB
}

func NewCommissionDAO(db *gorm.DB) *CommissionDAO {
	return &CommissionDAO{
		db: db,
	}
}

func (d *CommissionDAO) Insert(ctx context.Context, commission Commission) (Commission, error) {
	result := d.db.WithContext(ctx).Create(&commission)
	if result.Error != nil {
		return Commission{}, result.Error
	}

	return commission, nil
}

func (d *CommissionDAO) FindByID(ctx context.Context, id uint) (Commission, error) {
	var commission Commission

	result := d.db.WithContext(ctx).Preload("Members").First(&commission, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Commission{}, ErrCommissionNotFound
		}

		return Commission{}, result.Error
	}

	return commission, nil
}

func (d *CommissionDAO) InsertMember(ctx context.Context, member CommissionMember) (CommissionMember, error) {
	result := d.db.WithContext(ctx).Create(&member)
	if result.Error != nil {
		return CommissionMember{}, result.Error
	}

	return member, nil
}

func (d *CommissionDAO) FindMemberByID(ctx context.Context, id uint) (CommissionMember, error) {
	var member CommissionMember

	result := d.db.WithContext(ctx).First(&member, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return CommissionMember{}, ErrMemberNotFound
		}

		return CommissionMember{}, result.Error
	}

	return member, nil
}

func (d *CommissionDAO) UpdateMember(ctx context.Context, member CommissionMember) (CommissionMember, error) {
	result := d.db.WithContext(ctx).Save(&member)
	if result.Error != nil {
		return CommissionMember{}, result.Error
	}

	return member, nil
}

func (d *CommissionDAO) InsertCommissionCategory(ctx context.Context, assignment CommissionCategory) (CommissionCategory, error) {
	result := d.db.WithContext(ctx).Create(&assignment)
	if result.Error != nil {
		return CommissionCategory{}, result.Error
	}

	return assignment, nil
}

func (d *CommissionDAO) IsAssignedToCategory(ctx context.Context, commissionID, categoryID uint) (bool, error) {
	var count int64

	result := d.db.WithContext(ctx).
		Model(&CommissionCategory{}).
		Where("commission_id = ? AND category_id = ?", commissionID, categoryID).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}

	return count > 0, nil
}
