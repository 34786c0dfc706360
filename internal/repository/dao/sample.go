package dao

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrSampleNotFound    = errors.New("sample not found")
	ErrSampleCodeExists  = errors.New("sample code already exists")
	ErrSampleNumberTaken = errors.New("sample number already taken for this event")
)

type ProductSample struct {
	ID          uint `gorm:"primaryKey"`
	EventID     uint `gorm:"not null;uniqueIndex:uni_samples_event_number"`
	CategoryID  uint `gorm:"not null;index"`
	ApplicantID uint `gorm:"not null;index"`

	Name   string `gorm:"not null"`
	Number int    `gorm:"not null;uniqueIndex:uni_samples_event_number"`
	Code   string `gorm:"unique;not null"`
	Mode   string `gorm:"not null"`
	Status string `gorm:"not null;index"`

	ExclusionReason string
	ExcludedAt      *time.Time
	FinalScore      *float64

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type SampleDAO struct {
	db *gorm.DB
}

func NewSampleDAO(db *gorm.DB) *SampleDAO {
	return &SampleDAO{
		db: db,
	}
}

func (d *SampleDAO) Insert(ctx context.Context, sample ProductSample) (ProductSample, error) {
	result := d.db.WithContext(ctx).Create(&sample)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) && err.Code == pgerrcode.UniqueViolation {
			if strings.Contains(err.Message, "uni_samples_event_number") {
				return ProductSample{}, ErrSampleNumberTaken
			}
			if strings.Contains(err.Message, "uni_product_samples_code") {
				return ProductSample{}, ErrSampleCodeExists
			}
		}

		return ProductSample{}, result.Error
	}

	return sample, nil
}

func (d *SampleDAO) FindByID(ctx context.Context, id uint) (ProductSample, error) {
	var sample ProductSample

	result := d.db.WithContext(ctx).First(&sample, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return ProductSample{}, ErrSampleNotFound
		}

		return ProductSample{}, result.Error
	}

	return sample, nil
}

func (d *SampleDAO) FindByEventID(ctx context.Context, eventID uint) ([]ProductSample, error) {
	var samples []ProductSample

	result := d.db.WithContext(ctx).Where("event_id = ?", eventID).Order("number").Find(&samples)
	if result.Error != nil {
		return nil, result.Error
	}

	return samples, nil
}

func (d *SampleDAO) Update(ctx context.Context, sample ProductSample) (ProductSample, error) {
	result := d.db.WithContext(ctx).Save(&sample)
	if result.Error != nil {
		return ProductSample{}, result.Error
	}

	return sample, nil
}
