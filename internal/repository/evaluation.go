package repository

import (
	"context"
	"fmt"

	"github.com/prodexpert/expertise-api/internal/domain"
	"github.com/prodexpert/expertise-api/internal/repository/dao"
)

var (
	ErrSessionNotFound      = dao.ErrSessionNotFound
	ErrSessionAlreadyActive = dao.ErrSessionAlreadyActive
	ErrEvaluationNotFound   = dao.ErrEvaluationNotFound
	ErrDuplicateEvaluation  = dao.ErrDuplicateEvaluation
)

type SessionDAO interface {
	InsertActive(ctx context.Context, session dao.EvaluationSession) (dao.EvaluationSession, error)
	FindByID(ctx context.Context, id uint) (dao.EvaluationSession, error)
	FindBySampleID(ctx context.Context, sampleID uint) ([]dao.EvaluationSession, error)
	Update(ctx context.Context, session dao.EvaluationSession) (dao.EvaluationSession, error)
}

type EvaluationDAO interface {
	Insert(ctx context.Context, evaluation dao.ExpertEvaluation) (dao.ExpertEvaluation, error)
	FindByID(ctx context.Context, id uint) (dao.ExpertEvaluation, error)
	FindBySessionAndMember(ctx context.Context, sessionID, memberID uint) (dao.ExpertEvaluation, error)
	FindSubmittedBySampleID(ctx context.Context, sampleID uint) ([]dao.ExpertEvaluation, error)
	Update(ctx context.Context, evaluation dao.ExpertEvaluation) (dao.ExpertEvaluation, error)
}

type EvaluationRepository struct {
	sessionDAO    SessionDAO
	evaluationDAO EvaluationDAO
}

func NewEvaluationRepository(sessionDAO SessionDAO, evaluationDAO EvaluationDAO) *EvaluationRepository {
	return &EvaluationRepository{
		sessionDAO:    sessionDAO,
		evaluationDAO: evaluationDAO,
	}
}

func (r *EvaluationRepository) CreateActiveSession(ctx context.Context, session domain.EvaluationSession) (domain.EvaluationSession, error) {
	created, err := r.sessionDAO.InsertActive(ctx, dao.EvaluationSession{
		SampleID:      session.SampleID,
		CommissionID:  session.CommissionID,
		ActivatedByID: session.ActivatedByID,
		Status:        string(session.Status),
		ActivatedAt:   session.ActivatedAt,
	})
	if err != nil {
		return domain.EvaluationSession{}, fmt.Errorf("r.sessionDAO.InsertActive -> %w", err)
	}

	return r.sessionDaoToDomain(created), nil
}

func (r *EvaluationRepository) FindSessionByID(ctx context.Context, id uint) (domain.EvaluationSession, error) {
	found, err := r.sessionDAO.FindByID(ctx, id)
	if err != nil {
		return domain.EvaluationSession{}, fmt.Errorf("r.sessionDAO.FindByID -> %w", err)
	}

	return r.sessionDaoToDomain(found), nil
}

func (r *EvaluationRepository) FindSessionsBySampleID(ctx context.Context, sampleID uint) ([]domain.EvaluationSession, error) {
	found, err := r.sessionDAO.FindBySampleID(ctx, sampleID)
	if err != nil {
		return nil, fmt.Errorf("r.sessionDAO.FindBySampleID -> %w", err)
	}

	sessions := make([]domain.EvaluationSession, 0, len(found))
	for _, s := range found {
		sessions = append(sessions, r.sessionDaoToDomain(s))
	}

	return sessions, nil
}

func (r *EvaluationRepository) UpdateSession(ctx context.Context, session domain.EvaluationSession) (domain.EvaluationSession, error) {
	updated, err := r.sessionDAO.Update(ctx, dao.EvaluationSession{
		ID:            session.ID,
		SampleID:      session.SampleID,
		CommissionID:  session.CommissionID,
		ActivatedByID: session.ActivatedByID,
		Status:        string(session.Status),
		ActivatedAt:   session.ActivatedAt,
		CompletedAt:   session.CompletedAt,
	})
	if err != nil {
		return domain.EvaluationSession{}, fmt.Errorf("r.sessionDAO.Update -> %w", err)
	}

	return r.sessionDaoToDomain(updated), nil
}

func (r *EvaluationRepository) CreateEvaluation(ctx context.Context, evaluation domain.ExpertEvaluation) (domain.ExpertEvaluation, error) {
	created, err := r.evaluationDAO.Insert(ctx, r.evaluationDomainToDao(evaluation))
	if err != nil {
		return domain.ExpertEvaluation{}, fmt.Errorf("r.evaluationDAO.Insert -> %w", err)
	}

	return r.evaluationDaoToDomain(created), nil
}

func (r *EvaluationRepository) FindEvaluationByID(ctx context.Context, id uint) (domain.ExpertEvaluation, error) {
	found, err := r.evaluationDAO.FindByID(ctx, id)
	if err != nil {
		return domain.ExpertEvaluation{}, fmt.Errorf("r.evaluationDAO.FindByID -> %w", err)
	}

	return r.evaluationDaoToDomain(found), nil
}

func (r *EvaluationRepository) FindEvaluationBySessionAndMember(ctx context.Context, sessionID, memberID uint) (domain.ExpertEvaluation, error) {
	found, err := r.evaluationDAO.FindBySessionAndMember(ctx, sessionID, memberID)
	if err != nil {
		return domain.ExpertEvaluation{}, fmt.Errorf("r.evaluationDAO.FindBySessionAndMember -> %w", err)
	}

	return r.evaluationDaoToDomain(found), nil
}

func (r *EvaluationRepository) FindSubmittedBySampleID(ctx context.Context, sampleID uint) ([]domain.ExpertEvaluation, error) {
	found, err := r.evaluationDAO.FindSubmittedBySampleID(ctx, sampleID)
	if err != nil {
		return nil, fmt.Errorf("r.evaluationDAO.FindSubmittedBySampleID -> %w", err)
	}

	evaluations := make([]domain.ExpertEvaluation, 0, len(found))
	for _, e := range found {
		evaluations = append(evaluations, r.evaluationDaoToDomain(e))
	}

	return evaluations, nil
}

func (r *EvaluationRepository) UpdateEvaluation(ctx context.Context, evaluation domain.ExpertEvaluation) (domain.ExpertEvaluation, error) {
	daoEvaluation := r.evaluationDomainToDao(evaluation)
	daoEvaluation.ID = evaluation.ID
	daoEvaluation.CreatedAt = evaluation.CreatedAt

	updated, err := r.evaluationDAO.Update(ctx, daoEvaluation)
	if err != nil {
		return domain.ExpertEvaluation{}, fmt.Errorf("r.evaluationDAO.Update -> %w", err)
	}

	return r.evaluationDaoToDomain(updated), nil
}

func (r *EvaluationRepository) sessionDaoToDomain(s dao.EvaluationSession) domain.EvaluationSession {
	return domain.EvaluationSession{
		ID:            s.ID,
		SampleID:      s.SampleID,
		CommissionID:  s.CommissionID,
		ActivatedByID: s.ActivatedByID,
		Status:        domain.SessionStatus(s.Status),
		ActivatedAt:   s.ActivatedAt,
		CompletedAt:   s.CompletedAt,
	}
}

func (r *EvaluationRepository) evaluationDaoToDomain(e dao.ExpertEvaluation) domain.ExpertEvaluation {
	evaluation := domain.ExpertEvaluation{
		ID:                        e.ID,
		SessionID:                 e.SessionID,
		SampleID:                  e.SampleID,
		MemberID:                  e.MemberID,
		FinalScore:                e.FinalScore,
		IsExclusionVote:           e.IsExclusionVote,
		ExclusionNote:             e.ExclusionNote,
		IsExcludedFromCalculation: e.IsExcludedFromCalculation,
		SubmittedAt:               e.SubmittedAt,
		CreatedAt:                 e.CreatedAt,
		UpdatedAt:                 e.UpdatedAt,
	}
	for _, ce := range e.CriterionEvaluations {
		evaluation.CriterionEvaluations = append(evaluation.CriterionEvaluations, domain.CriterionEvaluation{
			ID:           ce.ID,
			EvaluationID: ce.EvaluationID,
			CriterionID:  ce.CriterionID,
			Score:        ce.Score,
		})
	}

	return evaluation
}

func (r *EvaluationRepository) evaluationDomainToDao(e domain.ExpertEvaluation) dao.ExpertEvaluation {
	evaluation := dao.ExpertEvaluation{
		SessionID:                 e.SessionID,
		SampleID:                  e.SampleID,
		MemberID:                  e.MemberID,
		FinalScore:                e.FinalScore,
		IsExclusionVote:           e.IsExclusionVote,
		ExclusionNote:             e.ExclusionNote,
		IsExcludedFromCalculation: e.IsExcludedFromCalculation,
		SubmittedAt:               e.SubmittedAt,
	}
	for _, ce := range e.CriterionEvaluations {
		evaluation.CriterionEvaluations = append(evaluation.CriterionEvaluations, dao.CriterionEvaluation{
			EvaluationID: e.ID,
			CriterionID:  ce.CriterionID,
			Score:        ce.Score,
		})
	}

	return evaluation
}
