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
	ErrEvaluationNotFound  = errors.New("expert evaluation not found")
	ErrDuplicateEvaluation = errors.New("evaluation already exists for this session and member")
)

type ExpertEvaluation struct {
	ID        uint `gorm:"primaryKey"`
	SessionID uint `gorm:"not null;uniqueIndex:uni_evaluations_session_member"`
	SampleID  uint `gorm:"not null;index"`
	MemberID  uint `gorm:"not null;uniqueIndex:uni_evaluations_session_member"`

	FinalScore                *float64
	IsExclusionVote           bool `gorm:"default:false"`
	ExclusionNote             string
	IsExcludedFromCalculation bool `gorm:"default:false"`
	SubmittedAt               *time.Time

	CriterionEvaluations []CriterionEvaluation `gorm:"foreignKey:EvaluationID"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type CriterionEvaluation struct {
	ID           uint `gorm:"primaryKey"`
	EvaluationID uint `gorm:"not null;uniqueIndex:uni_criterion_evaluations"`
	CriterionID  uint `gorm:"not null;uniqueIndex:uni_criterion_evaluations"`
	Score        int  `gorm:"not null"`
}

type EvaluationDAO struct {
	db *gorm.DB
}

func NewEvaluationDAO(db *gorm.DB) *EvaluationDAO {
	return &EvaluationDAO{
		db: db,
	}
}

// Insert creates the evaluation. A unique index on (session_id, member_id)
// rejects a concurrent second create for the same pair.
func (d *EvaluationDAO) Insert(ctx context.Context, evaluation ExpertEvaluation) (ExpertEvaluation, error) {
	result := d.db.WithContext(ctx).Create(&evaluation)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) &&
			err.Code == pgerrcode.UniqueViolation &&
			strings.Contains(err.Message, "uni_evaluations_session_member") {
			return ExpertEvaluation{}, ErrDuplicateEvaluation
		}

		return ExpertEvaluation{}, result.Error
	}

	return evaluation, nil
}

func (d *EvaluationDAO) FindByID(ctx context.Context, id uint) (ExpertEvaluation, error) {
	var evaluation ExpertEvaluation

	result := d.db.WithContext(ctx).Preload("CriterionEvaluations").First(&evaluation, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return ExpertEvaluation{}, ErrEvaluationNotFound
		}

		return ExpertEvaluation{}, result.Error
	}

	return evaluation, nil
}

func (d *EvaluationDAO) FindBySessionAndMember(ctx context.Context, sessionID, memberID uint) (ExpertEvaluation, error) {
	var evaluation ExpertEvaluation

	result := d.db.WithContext(ctx).
		Preload("CriterionEvaluations").
		Where("session_id = ? AND member_id = ?", sessionID, memberID).
		First(&evaluation)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return ExpertEvaluation{}, ErrEvaluationNotFound
		}

		return ExpertEvaluation{}, result.Error
	}

	return evaluation, nil
}

// FindSubmittedBySampleID returns submitted evaluations belonging to
// completed sessions of the sample, which is exactly the aggregation
// input set.
func (d *EvaluationDAO) FindSubmittedBySampleID(ctx context.Context, sampleID uint) ([]ExpertEvaluation, error) {
	var evaluations []ExpertEvaluation

	result := d.db.WithContext(ctx).
		Preload("CriterionEvaluations").
		Joins("JOIN evaluation_sessions ON evaluation_sessions.id = expert_evaluations.session_id").
		Where("expert_evaluations.sample_id = ?", sampleID).
		Where("expert_evaluations.submitted_at IS NOT NULL").
		Where("evaluation_sessions.status = ?", "completed").
		Find(&evaluations)
	if result.Error != nil {
		return nil, result.Error
	}

	return evaluations, nil
}

// Update saves the evaluation and replaces its criterion scores in one
// transaction.
func (d *EvaluationDAO) Update(ctx context.Context, evaluation ExpertEvaluation) (ExpertEvaluation, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("evaluation_id = ?", evaluation.ID).Delete(&CriterionEvaluation{}).Error; err != nil {
			return err
		}

		for i := range evaluation.CriterionEvaluations {
			evaluation.CriterionEvaluations[i].ID = 0
			evaluation.CriterionEvaluations[i].EvaluationID = evaluation.ID
		}

		return tx.Save(&evaluation).Error
	})
	if err != nil {
		return ExpertEvaluation{}, err
	}

	return evaluation, nil
}
