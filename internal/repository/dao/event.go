package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrEventNotFound     = errors.New("event not found")
	ErrCategoryNotFound  = errors.New("category not found")
	ErrCriterionNotFound = errors.New("criterion not found")
	ErrPolicyNotFound    = errors.New("scoring policy not found")
)

type Event struct {
	ID          uint      `gorm:"primaryKey"`
	Name        string    `gorm:"not null"`
	Date        time.Time `gorm:"not null"`
	Location    string    `gorm:"not null"`
	Description string
	OrganizerID uint `gorm:"not null;index"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type Category struct {
	ID      uint   `gorm:"primaryKey"`
	EventID uint   `gorm:"not null;index"`
	Name    string `gorm:"not null"`
}

type EvaluationCriterion struct {
	ID           uint `gorm:"primaryKey"`
	EventID      uint `gorm:"not null;index"`
	CommissionID *uint
	Name         string  `gorm:"not null"`
	Weight       float64 `gorm:"default:0"`
	MinScore     int     `gorm:"not null"`
	MaxScore     int     `gorm:"not null"`
	IsRequired   bool    `gorm:"default:false"`
	DisplayOrder int     `gorm:"default:0"`
}

type ScoringPolicy struct {
	ID               uint `gorm:"primaryKey"`
	EventID          uint `gorm:"uniqueIndex;not null"`
	TrimFromCount    int  `gorm:"not null"`
	TrimCountHigh    int  `gorm:"not null"`
	TrimCountLow     int  `gorm:"not null"`
	RoundingDecimals int  `gorm:"not null"`
}

type EventDAO struct {
	db *gorm.DB
}

func NewEventDAO(db *gorm.DB) *EventDAO {
	return &EventDAO{
		db: db,
	}
}

func (d *EventDAO) Insert(ctx context.Context, event Event) (Event, error) {
	result := d.db.WithContext(ctx).Create(&event)
	if result.Error != nil {
		return Event{}, result.Error
	}

	return event, nil
}

func (d *EventDAO) FindByID(ctx context.Context, id uint) (Event, error) {
	var event Event

	result := d.db.WithContext(ctx).First(&event, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Event{}, ErrEventNotFound
		}

		return Event{}, result.Error
	}

	return event, nil
}

func (d *EventDAO) FindAll(ctx context.Context) ([]Event, error) {
	var events []Event

	result := d.db.WithContext(ctx).Order("date").Find(&events)
	if result.Error != nil {
		return nil, result.Error
	}

	return events, nil
}

func (d *EventDAO) InsertCategory(ctx context.Context, category Category) (Category, error) {
	result := d.db.WithContext(ctx).Create(&category)
	if result.Error != nil {
		return Category{}, result.Error
	}

	return category, nil
}

func (d *EventDAO) FindCategoryByID(ctx context.Context, id uint) (Category, error) {
	var category Category

	result := d.db.WithContext(ctx).First(&category, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Category{}, ErrCategoryNotFound
		}

		return Category{}, result.Error
	}

	return category, nil
}

func (d *EventDAO) InsertCriterion(ctx context.Context, criterion EvaluationCriterion) (EvaluationCriterion, error) {
	result := d.db.WithContext(ctx).Create(&criterion)
	if result.Error != nil {
		return EvaluationCriterion{}, result.Error
	}

	return criterion, nil
}

func (d *EventDAO) FindCriterionByID(ctx context.Context, id uint) (EvaluationCriterion, error) {
	var criterion EvaluationCriterion

	result := d.db.WithContext(ctx).First(&criterion, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return EvaluationCriterion{}, ErrCriterionNotFound
		}

		return EvaluationCriterion{}, result.Error
	}

	return criterion, nil
}

// FindCriteria returns the criteria applicable to the given commission:
// event-wide criteria plus those scoped to the commission itself.
func (d *EventDAO) FindCriteria(ctx context.Context, eventID uint, commissionID *uint) ([]EvaluationCriterion, error) {
	var criteria []EvaluationCriterion

	query := d.db.WithContext(ctx).Where("event_id = ?", eventID)
	if commissionID != nil {
		query = query.Where("commission_id IS NULL OR commission_id = ?", *commissionID)
	} else {
		query = query.Where("commission_id IS NULL")
	}

	result := query.Order("display_order").Find(&criteria)
	if result.Error != nil {
		return nil, result.Error
	}

	return criteria, nil
}

func (d *EventDAO) FindAllCriteriaByEventID(ctx context.Context, eventID uint) ([]EvaluationCriterion, error) {
	var criteria []EvaluationCriterion

	result := d.db.WithContext(ctx).Where("event_id = ?", eventID).Order("display_order").Find(&criteria)
	if result.Error != nil {
		return nil, result.Error
	}

	return criteria, nil
}

func (d *EventDAO) UpsertPolicy(ctx context.Context, policy ScoringPolicy) (ScoringPolicy, error) {
	var existing ScoringPolicy

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("event_id = ?", policy.EventID).First(&existing)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return tx.Create(&policy).Error
			}

			return result.Error
		}

		policy.ID = existing.ID

		return tx.Save(&policy).Error
	})
	if err != nil {
		return ScoringPolicy{}, err
	}

	return policy, nil
}

func (d *EventDAO) FindPolicyByEventID(ctx context.Context, eventID uint) (ScoringPolicy, error) {
	var policy ScoringPolicy

	result := d.db.WithContext(ctx).Where("event_id = ?", eventID).First(&policy)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return ScoringPolicy{}, ErrPolicyNotFound
		}

		return ScoringPolicy{}, result.Error
	}

	return policy, nil
}
