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
	ErrSessionNotFound      = errors.New("evaluation session not found")
	ErrSessionAlreadyActive = errors.New("sample already has an active evaluation session")
)

type EvaluationSession struct {
	ID            uint   `gorm:"primaryKey"`
	SampleID      uint   `gorm:"not null;index:idx_sessions_active_sample,unique,where:status = 'active'"`
	CommissionID  uint   `gorm:"not null;index"`
	ActivatedByID uint   `gorm:"not null"`
	Status        string `gorm:"not null;index"`

	ActivatedAt time.Time `gorm:"not null"`
	CompletedAt *time.Time
}

type SessionDAO struct {
	db *gorm.DB
}

func NewSessionDAO(db *gorm.DB) *SessionDAO {
	return &SessionDAO{
		db: db,
	}
}

// InsertActive creates a session in the active status. The check runs
// inside a transaction and a partial unique index on (sample_id) where
// status = 'active' backstops concurrent inserts, so two racing requests
// can never both succeed.
func (d *SessionDAO) InsertActive(ctx context.Context, session EvaluationSession) (EvaluationSession, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&EvaluationSession{}).
			Where("sample_id = ? AND status = ?", session.SampleID, "active").
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrSessionAlreadyActive
		}

		return tx.Create(&session).Error
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) &&
			pgErr.Code == pgerrcode.UniqueViolation &&
			strings.Contains(pgErr.Message, "idx_sessions_active_sample") {
			return EvaluationSession{}, ErrSessionAlreadyActive
		}

		return EvaluationSession{}, err
	}

	return session, nil
}

func (d *SessionDAO) FindByID(ctx context.Context, id uint) (EvaluationSession, error) {
	var session EvaluationSession

	result := d.db.WithContext(ctx).First(&session, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return EvaluationSession{}, ErrSessionNotFound
		}

		return EvaluationSession{}, result.Error
	}

	return session, nil
}

func (d *SessionDAO) FindBySampleID(ctx context.Context, sampleID uint) ([]EvaluationSession, error) {
	var sessions []EvaluationSession

	result := d.db.WithContext(ctx).Where("sample_id = ?", sampleID).Order("activated_at").Find(&sessions)
	if result.Error != nil {
		return nil, result.Error
	}

	return sessions, nil
}

func (d *SessionDAO) Update(ctx context.Context, session EvaluationSession) (EvaluationSession, error) {
	result := d.db.WithContext(ctx).Save(&session)
	if result.Error != nil {
		return EvaluationSession{}, result.Error
	}

	return session, nil
}
