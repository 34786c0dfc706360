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
	ErrDocumentNotFound = errors.New("result document not found")
	ErrDuplicateVersion = errors.New("document version already exists")
)

type ResultDocument struct {
	ID          uint   `gorm:"primaryKey"`
	Kind        string `gorm:"not null"`
	SampleID    uint   `gorm:"not null;index"`
	ApplicantID uint   `gorm:"not null;index"`
	EventID     uint   `gorm:"not null;index"`

	Number            string `gorm:"not null;uniqueIndex:uni_documents_number_version"`
	Version           int    `gorm:"not null;uniqueIndex:uni_documents_number_version"`
	PreviousVersionID *uint

	FinalScore float64 `gorm:"not null"`
	Status     string  `gorm:"not null"`

	GeneratedAt    *time.Time
	SentAt         *time.Time
	AcknowledgedAt *time.Time
	CreatedByID    uint `gorm:"not null"`

	CreatedAt time.Time `gorm:"not null"`
}

type DocumentDAO struct {
	db *gorm.DB
}

func NewDocumentDAO(db *gorm.DB) *DocumentDAO {
	return &DocumentDAO{
		db: db,
	}
}

// Insert appends one version. A unique index on (number, version) makes
// concurrent creation of the same version a conflict instead of a second
// "latest".
func (d *DocumentDAO) Insert(ctx context.Context, document ResultDocument) (ResultDocument, error) {
	result := d.db.WithContext(ctx).Create(&document)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) &&
			err.Code == pgerrcode.UniqueViolation &&
			strings.Contains(err.Message, "uni_documents_number_version") {
			return ResultDocument{}, ErrDuplicateVersion
		}

		return ResultDocument{}, result.Error
	}

	return document, nil
}

func (d *DocumentDAO) FindByID(ctx context.Context, id uint) (ResultDocument, error) {
	var document ResultDocument

	result := d.db.WithContext(ctx).First(&document, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return ResultDocument{}, ErrDocumentNotFound
		}

		return ResultDocument{}, result.Error
	}

	return document, nil
}

func (d *DocumentDAO) FindLatestByNumber(ctx context.Context, number string) (ResultDocument, error) {
	var document ResultDocument

	result := d.db.WithContext(ctx).
		Where("number = ?", number).
		Order("version DESC").
		First(&document)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return ResultDocument{}, ErrDocumentNotFound
		}

		return ResultDocument{}, result.Error
	}

	return document, nil
}

func (d *DocumentDAO) FindAllByNumber(ctx context.Context, number string) ([]ResultDocument, error) {
	var documents []ResultDocument

	result := d.db.WithContext(ctx).Where("number = ?", number).Order("version DESC").Find(&documents)
	if result.Error != nil {
		return nil, result.Error
	}

	return documents, nil
}

// Update persists status transitions only; version fields are append-only
// and never change after Insert.
func (d *DocumentDAO) Update(ctx context.Context, document ResultDocument) (ResultDocument, error) {
	result := d.db.WithContext(ctx).Model(&ResultDocument{ID: document.ID}).
		Select("Status", "GeneratedAt", "SentAt", "AcknowledgedAt").
		Updates(map[string]interface{}{
			"status":          document.Status,
			"generated_at":    document.GeneratedAt,
			"sent_at":         document.SentAt,
			"acknowledged_at": document.AcknowledgedAt,
		})
	if result.Error != nil {
		return ResultDocument{}, result.Error
	}

	return document, nil
}
