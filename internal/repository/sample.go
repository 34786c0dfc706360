package repository

import (
	"context"
	"fmt"

	"github.com/prodexpert/expertise-api/internal/domain"
	"github.com/prodexpert/expertise-api/internal/repository/dao"
)

var (
	ErrSampleNotFound    = dao.ErrSampleNotFound
	ErrSampleCodeExists  = dao.ErrSampleCodeExists
	ErrSampleNumberTaken = dao.ErrSampleNumberTaken
)

type SampleDAO interface {
	Insert(ctx context.Context, sample dao.ProductSample) (dao.ProductSample, error)
	FindByID(ctx context.Context, id uint) (dao.ProductSample, error)
	FindByEventID(ctx context.Context, eventID uint) ([]dao.ProductSample, error)
	Update(ctx context.Context, sample dao.ProductSample) (dao.ProductSample, error)
}

type SequenceDAO interface {
	Next(ctx context.Context, scope, name string) (int64, error)
}

type SampleRepository struct {
	dao      SampleDAO
	sequence SequenceDAO
}

func NewSampleRepository(dao SampleDAO, sequence SequenceDAO) *SampleRepository {
	return &SampleRepository{
		dao:      dao,
		sequence: sequence,
	}
}

// Create allocates the sample's sequential number within its event from the
// atomic counter, derives the globally unique code from (event, number) and
// inserts the row.
func (r *SampleRepository) Create(ctx context.Context, sample domain.ProductSample) (domain.ProductSample, error) {
	number, err := r.sequence.Next(ctx, "sample", fmt.Sprintf("event:%d", sample.EventID))
	if err != nil {
		return domain.ProductSample{}, fmt.Errorf("r.sequence.Next -> %w", err)
	}

	sample.Number = int(number)
	sample.Code = fmt.Sprintf("E%d-S%04d", sample.EventID, sample.Number)

	created, err := r.dao.Insert(ctx, r.domainToDao(sample))
	if err != nil {
		return domain.ProductSample{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *SampleRepository) FindByID(ctx context.Context, id uint) (domain.ProductSample, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.ProductSample{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *SampleRepository) FindByEventID(ctx context.Context, eventID uint) ([]domain.ProductSample, error) {
	found, err := r.dao.FindByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByEventID -> %w", err)
	}

	samples := make([]domain.ProductSample, 0, len(found))
	for _, s := range found {
		samples = append(samples, r.daoToDomain(s))
	}

	return samples, nil
}

func (r *SampleRepository) Update(ctx context.Context, sample domain.ProductSample) (domain.ProductSample, error) {
	daoSample := r.domainToDao(sample)
	daoSample.ID = sample.ID
	daoSample.CreatedAt = sample.CreatedAt

	updated, err := r.dao.Update(ctx, daoSample)
	if err != nil {
		return domain.ProductSample{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *SampleRepository) daoToDomain(s dao.ProductSample) domain.ProductSample {
	return domain.ProductSample{
		ID:              s.ID,
		EventID:         s.EventID,
		CategoryID:      s.CategoryID,
		ApplicantID:     s.ApplicantID,
		Name:            s.Name,
		Number:          s.Number,
		Code:            s.Code,
		Mode:            domain.EvaluationMode(s.Mode),
		Status:          domain.SampleStatus(s.Status),
		ExclusionReason: s.ExclusionReason,
		ExcludedAt:      s.ExcludedAt,
		FinalScore:      s.FinalScore,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

func (r *SampleRepository) domainToDao(s domain.ProductSample) dao.ProductSample {
	return dao.ProductSample{
		EventID:         s.EventID,
		CategoryID:      s.CategoryID,
		ApplicantID:     s.ApplicantID,
		Name:            s.Name,
		Number:          s.Number,
		Code:            s.Code,
		Mode:            string(s.Mode),
		Status:          string(s.Status),
		ExclusionReason: s.ExclusionReason,
		ExcludedAt:      s.ExcludedAt,
		FinalScore:      s.FinalScore,
	}
}
