package repository

import (
	"context"
	"fmt"

	"github.com/prodexpert/expertise-api/internal/domain"
	"github.com/prodexpert/expertise-api/internal/repository/dao"
)

var (
	ErrDocumentNotFound = dao.ErrDocumentNotFound
	ErrDuplicateVersion = dao.ErrDuplicateVersion
)

type DocumentDAO interface {
	Insert(ctx context.Context, document dao.ResultDocument) (dao.ResultDocument, error)
	FindByID(ctx context.Context, id uint) (dao.ResultDocument, error)
	FindLatestByNumber(ctx context.Context, number string) (dao.ResultDocument, error)
	FindAllByNumber(ctx context.Context, number string) ([]dao.ResultDocument, error)
	Update(ctx context.Context, document dao.ResultDocument) (dao.ResultDocument, error)
}

type DocumentRepository struct {
	dao      DocumentDAO
	sequence SequenceDAO
}

func NewDocumentRepository(dao DocumentDAO, sequence SequenceDAO) *DocumentRepository {
	return &DocumentRepository{
		dao:      dao,
		sequence: sequence,
	}
}

// NextNumber allocates a document number from the event-scoped atomic
// counter. Numbers are never reused, even across document kinds.
func (r *DocumentRepository) NextNumber(ctx context.Context, kind domain.DocumentKind, eventID uint) (string, error) {
	seq, err := r.sequence.Next(ctx, "document", fmt.Sprintf("event:%d", eventID))
	if err != nil {
		return "", fmt.Errorf("r.sequence.Next -> %w", err)
	}

	prefix := "P"
	if kind == domain.DocumentKindRecord {
		prefix = "R"
	}

	return fmt.Sprintf("%s-%d-%04d", prefix, eventID, seq), nil
}

func (r *DocumentRepository) Create(ctx context.Context, document domain.ResultDocument) (domain.ResultDocument, error) {
	created, err := r.dao.Insert(ctx, dao.ResultDocument{
		Kind:              string(document.Kind),
		SampleID:          document.SampleID,
		ApplicantID:       document.ApplicantID,
		EventID:           document.EventID,
		Number:            document.Number,
		Version:           document.Version,
		PreviousVersionID: document.PreviousVersionID,
		FinalScore:        document.FinalScore,
		Status:            string(document.Status),
		CreatedByID:       document.CreatedByID,
	})
	if err != nil {
		return domain.ResultDocument{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *DocumentRepository) FindByID(ctx context.Context, id uint) (domain.ResultDocument, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.ResultDocument{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *DocumentRepository) FindLatestByNumber(ctx context.Context, number string) (domain.ResultDocument, error) {
	found, err := r.dao.FindLatestByNumber(ctx, number)
	if err != nil {
		return domain.ResultDocument{}, fmt.Errorf("r.dao.FindLatestByNumber -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *DocumentRepository) FindAllByNumber(ctx context.Context, number string) ([]domain.ResultDocument, error) {
	found, err := r.dao.FindAllByNumber(ctx, number)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAllByNumber -> %w", err)
	}

	documents := make([]domain.ResultDocument, 0, len(found))
	for _, d := range found {
		documents = append(documents, r.daoToDomain(d))
	}

	return documents, nil
}

func (r *DocumentRepository) UpdateStatus(ctx context.Context, document domain.ResultDocument) (domain.ResultDocument, error) {
	_, err := r.dao.Update(ctx, dao.ResultDocument{
		ID:             document.ID,
		Status:         string(document.Status),
		GeneratedAt:    document.GeneratedAt,
		SentAt:         document.SentAt,
		AcknowledgedAt: document.AcknowledgedAt,
	})
	if err != nil {
		return domain.ResultDocument{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return document, nil
}

func (r *DocumentRepository) daoToDomain(d dao.ResultDocument) domain.ResultDocument {
	return domain.ResultDocument{
		ID:                d.ID,
		Kind:              domain.DocumentKind(d.Kind),
		SampleID:          d.SampleID,
		ApplicantID:       d.ApplicantID,
		EventID:           d.EventID,
		Number:            d.Number,
		Version:           d.Version,
		PreviousVersionID: d.PreviousVersionID,
		FinalScore:        d.FinalScore,
		Status:            domain.DocumentStatus(d.Status),
		GeneratedAt:       d.GeneratedAt,
		SentAt:            d.SentAt,
		AcknowledgedAt:    d.AcknowledgedAt,
		CreatedByID:       d.CreatedByID,
		CreatedAt:         d.CreatedAt,
	}
}
