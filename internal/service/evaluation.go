package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prodexpert/expertise-api/internal/domain"
	"github.com/prodexpert/expertise-api/internal/repository"
)

var (
	ErrSessionNotFound      = repository.ErrSessionNotFound
	ErrSessionAlreadyActive = repository.ErrSessionAlreadyActive
	ErrEvaluationNotFound   = repository.ErrEvaluationNotFound
	ErrDuplicateEvaluation  = repository.ErrDuplicateEvaluation
	ErrSessionNotActive     = domain.ErrSessionNotActive

	ErrSampleNotEvaluable    = errors.New("sample is not open for evaluation")
	ErrCommissionNotEligible = errors.New("commission is not eligible for the sample category")
	ErrMemberCannotSubmit    = errors.New("commission member is excluded from submitting evaluations")
	ErrMemberNotInCommission = errors.New("commission member does not belong to the session commission")
)

type EvaluationRepository interface {
	CreateActiveSession(ctx context.Context, session domain.EvaluationSession) (domain.EvaluationSession, error)
	FindSessionByID(ctx context.Context, id uint) (domain.EvaluationSession, error)
	FindSessionsBySampleID(ctx context.Context, sampleID uint) ([]domain.EvaluationSession, error)
	UpdateSession(ctx context.Context, session domain.EvaluationSession) (domain.EvaluationSession, error)
	CreateEvaluation(ctx context.Context, evaluation domain.ExpertEvaluation) (domain.ExpertEvaluation, error)
	FindEvaluationByID(ctx context.Context, id uint) (domain.ExpertEvaluation, error)
	FindEvaluationBySessionAndMember(ctx context.Context, sessionID, memberID uint) (domain.ExpertEvaluation, error)
	FindSubmittedBySampleID(ctx context.Context, sampleID uint) ([]domain.ExpertEvaluation, error)
	UpdateEvaluation(ctx context.Context, evaluation domain.ExpertEvaluation) (domain.ExpertEvaluation, error)
}

// EligibilityChecker decides whether a commission may evaluate samples of a
// category. The matching rule is not part of the session state machine, so
// it stays pluggable.
type EligibilityChecker interface {
	IsEligible(ctx context.Context, commissionID, categoryID uint) (bool, error)
}

// CategoryAssignmentEligibility checks the commission-category assignment
// table.
type CategoryAssignmentEligibility struct {
	repo CommissionRepository
}

func NewCategoryAssignmentEligibility(repo CommissionRepository) *CategoryAssignmentEligibility {
	return &CategoryAssignmentEligibility{
		repo: repo,
	}
}

func (c *CategoryAssignmentEligibility) IsEligible(ctx context.Context, commissionID, categoryID uint) (bool, error) {
	return c.repo.IsAssignedToCategory(ctx, commissionID, categoryID)
}

// CriterionScoreInput is one criterion score supplied by an expert.
type CriterionScoreInput struct {
	CriterionID uint
	Score       int
}

// EvaluationInput carries the mode-dependent payload of an expert's
// create-or-update call.
type EvaluationInput struct {
	FinalScore      *float64
	CriterionScores []CriterionScoreInput
}

type EvaluationService struct {
	repo           EvaluationRepository
	sampleRepo     SampleRepository
	commissionRepo CommissionRepository
	eventRepo      EventRepository
	eligibility    EligibilityChecker
}

func NewEvaluationService(
	repo EvaluationRepository,
	sampleRepo SampleRepository,
	commissionRepo CommissionRepository,
	eventRepo EventRepository,
	eligibility EligibilityChecker,
) *EvaluationService {
	return &EvaluationService{
		repo:           repo,
		sampleRepo:     sampleRepo,
		commissionRepo: commissionRepo,
		eventRepo:      eventRepo,
		eligibility:    eligibility,
	}
}

// OpenSession activates a commission against a sample. The commission
// roster must be valid, the commission must be eligible for the sample's
// category, and the sample must not already have an active session.
func (s *EvaluationService) OpenSession(ctx context.Context, sampleID, commissionID, userID uint) (domain.EvaluationSession, error) {
	sample, err := s.sampleRepo.FindByID(ctx, sampleID)
	if err != nil {
		return domain.EvaluationSession{}, fmt.Errorf("s.sampleRepo.FindByID -> %w", err)
	}
	if sample.Status != domain.SampleStatusSubmitted && sample.Status != domain.SampleStatusEvaluated {
		return domain.EvaluationSession{}, ErrSampleNotEvaluable
	}

	commission, err := s.commissionRepo.FindByID(ctx, commissionID)
	if err != nil {
		return domain.EvaluationSession{}, fmt.Errorf("s.commissionRepo.FindByID -> %w", err)
	}
	if err := commission.ValidateRoster(); err != nil {
		return domain.EvaluationSession{}, err
	}

	eligible, err := s.eligibility.IsEligible(ctx, commission.ID, sample.CategoryID)
	if err != nil {
		return domain.EvaluationSession{}, fmt.Errorf("s.eligibility.IsEligible -> %w", err)
	}
	if !eligible {
		return domain.EvaluationSession{}, ErrCommissionNotEligible
	}

	created, err := s.repo.CreateActiveSession(ctx, domain.EvaluationSession{
		SampleID:      sample.ID,
		CommissionID:  commission.ID,
		ActivatedByID: userID,
		Status:        domain.SessionStatusActive,
		ActivatedAt:   time.Now(),
	})
	if err != nil {
		if errors.Is(err, ErrSessionAlreadyActive) {
			return domain.EvaluationSession{}, ErrSessionAlreadyActive
		}

		return domain.EvaluationSession{}, fmt.Errorf("s.repo.CreateActiveSession -> %w", err)
	}

	return created, nil
}

func (s *EvaluationService) GetSession(ctx context.Context, id uint) (domain.EvaluationSession, error) {
	session, err := s.repo.FindSessionByID(ctx, id)
	if err != nil {
		return domain.EvaluationSession{}, fmt.Errorf("s.repo.FindSessionByID -> %w", err)
	}

	return session, nil
}

func (s *EvaluationService) CompleteSession(ctx context.Context, id uint) (domain.EvaluationSession, error) {
	return s.transitionSession(ctx, id, func(session *domain.EvaluationSession) error {
		return session.Complete(time.Now())
	})
}

func (s *EvaluationService) CancelSession(ctx context.Context, id uint) (domain.EvaluationSession, error) {
	return s.transitionSession(ctx, id, func(session *domain.EvaluationSession) error {
		return session.Cancel(time.Now())
	})
}

func (s *EvaluationService) transitionSession(ctx context.Context, id uint, fn func(*domain.EvaluationSession) error) (domain.EvaluationSession, error) {
	session, err := s.repo.FindSessionByID(ctx, id)
	if err != nil {
		return domain.EvaluationSession{}, fmt.Errorf("s.repo.FindSessionByID -> %w", err)
	}

	if err := fn(&session); err != nil {
		return domain.EvaluationSession{}, err
	}

	updated, err := s.repo.UpdateSession(ctx, session)
	if err != nil {
		return domain.EvaluationSession{}, fmt.Errorf("s.repo.UpdateSession -> %w", err)
	}

	return updated, nil
}

// UpsertEvaluation records or updates the member's evaluation for an
// active session. The payload must match the sample's evaluation mode.
func (s *EvaluationService) UpsertEvaluation(ctx context.Context, sessionID, memberID uint, input EvaluationInput) (domain.ExpertEvaluation, error) {
	session, sample, err := s.activeSessionWithSample(ctx, sessionID)
	if err != nil {
		return domain.ExpertEvaluation{}, err
	}

	if _, err := s.checkMember(ctx, session, memberID); err != nil {
		return domain.ExpertEvaluation{}, err
	}

	evaluation, created, err := s.findOrNewEvaluation(ctx, session, memberID)
	if err != nil {
		return domain.ExpertEvaluation{}, err
	}

	if err := s.applyInput(ctx, &evaluation, sample, input); err != nil {
		return domain.ExpertEvaluation{}, err
	}

	if created {
		saved, err := s.repo.CreateEvaluation(ctx, evaluation)
		if err != nil {
			return domain.ExpertEvaluation{}, fmt.Errorf("s.repo.CreateEvaluation -> %w", err)
		}

		return saved, nil
	}

	saved, err := s.repo.UpdateEvaluation(ctx, evaluation)
	if err != nil {
		return domain.ExpertEvaluation{}, fmt.Errorf("s.repo.UpdateEvaluation -> %w", err)
	}

	return saved, nil
}

// SetExclusionVote records the member's vote to exclude the sample from
// the competition. A vote to exclude carries a mandatory note.
func (s *EvaluationService) SetExclusionVote(ctx context.Context, sessionID, memberID uint, exclude bool, note string) (domain.ExpertEvaluation, error) {
	session, _, err := s.activeSessionWithSample(ctx, sessionID)
	if err != nil {
		return domain.ExpertEvaluation{}, err
	}

	if _, err := s.checkMember(ctx, session, memberID); err != nil {
		return domain.ExpertEvaluation{}, err
	}

	evaluation, created, err := s.findOrNewEvaluation(ctx, session, memberID)
	if err != nil {
		return domain.ExpertEvaluation{}, err
	}

	if err := evaluation.SetExclusionVote(exclude, note); err != nil {
		return domain.ExpertEvaluation{}, err
	}

	if created {
		saved, err := s.repo.CreateEvaluation(ctx, evaluation)
		if err != nil {
			return domain.ExpertEvaluation{}, fmt.Errorf("s.repo.CreateEvaluation -> %w", err)
		}

		return saved, nil
	}

	saved, err := s.repo.UpdateEvaluation(ctx, evaluation)
	if err != nil {
		return domain.ExpertEvaluation{}, fmt.Errorf("s.repo.UpdateEvaluation -> %w", err)
	}

	return saved, nil
}

// SubmitEvaluation finalizes the member's record. Submitting twice fails;
// submitting against a non-active session fails.
func (s *EvaluationService) SubmitEvaluation(ctx context.Context, sessionID, memberID uint) (domain.ExpertEvaluation, error) {
	session, sample, err := s.activeSessionWithSample(ctx, sessionID)
	if err != nil {
		return domain.ExpertEvaluation{}, err
	}

	if _, err := s.checkMember(ctx, session, memberID); err != nil {
		return domain.ExpertEvaluation{}, err
	}

	evaluation, err := s.repo.FindEvaluationBySessionAndMember(ctx, sessionID, memberID)
	if err != nil {
		return domain.ExpertEvaluation{}, fmt.Errorf("s.repo.FindEvaluationBySessionAndMember -> %w", err)
	}

	criteria, err := s.eventRepo.FindCriteria(ctx, sample.EventID, &session.CommissionID)
	if err != nil {
		return domain.ExpertEvaluation{}, fmt.Errorf("s.eventRepo.FindCriteria -> %w", err)
	}

	if err := evaluation.Submit(sample.Mode, criteria, time.Now()); err != nil {
		return domain.ExpertEvaluation{}, err
	}

	saved, err := s.repo.UpdateEvaluation(ctx, evaluation)
	if err != nil {
		return domain.ExpertEvaluation{}, fmt.Errorf("s.repo.UpdateEvaluation -> %w", err)
	}

	return saved, nil
}

func (s *EvaluationService) GetEvaluation(ctx context.Context, sessionID, memberID uint) (domain.ExpertEvaluation, error) {
	evaluation, err := s.repo.FindEvaluationBySessionAndMember(ctx, sessionID, memberID)
	if err != nil {
		return domain.ExpertEvaluation{}, fmt.Errorf("s.repo.FindEvaluationBySessionAndMember -> %w", err)
	}

	return evaluation, nil
}

// SetExcludedFromCalculation flags one evaluation in or out of the
// aggregation input. Allowed until the sample is completed.
func (s *EvaluationService) SetExcludedFromCalculation(ctx context.Context, evaluationID uint, excluded bool) (domain.ExpertEvaluation, error) {
	evaluation, err := s.repo.FindEvaluationByID(ctx, evaluationID)
	if err != nil {
		return domain.ExpertEvaluation{}, fmt.Errorf("s.repo.FindEvaluationByID -> %w", err)
	}

	sample, err := s.sampleRepo.FindByID(ctx, evaluation.SampleID)
	if err != nil {
		return domain.ExpertEvaluation{}, fmt.Errorf("s.sampleRepo.FindByID -> %w", err)
	}
	if sample.Status == domain.SampleStatusCompleted {
		return domain.ExpertEvaluation{}, domain.ErrSampleLocked
	}

	evaluation.IsExcludedFromCalculation = excluded

	saved, err := s.repo.UpdateEvaluation(ctx, evaluation)
	if err != nil {
		return domain.ExpertEvaluation{}, fmt.Errorf("s.repo.UpdateEvaluation -> %w", err)
	}

	return saved, nil
}

func (s *EvaluationService) activeSessionWithSample(ctx context.Context, sessionID uint) (domain.EvaluationSession, domain.ProductSample, error) {
	session, err := s.repo.FindSessionByID(ctx, sessionID)
	if err != nil {
		return domain.EvaluationSession{}, domain.ProductSample{}, fmt.Errorf("s.repo.FindSessionByID -> %w", err)
	}
	if !session.IsActive() {
		return domain.EvaluationSession{}, domain.ProductSample{}, ErrSessionNotActive
	}

	sample, err := s.sampleRepo.FindByID(ctx, session.SampleID)
	if err != nil {
		return domain.EvaluationSession{}, domain.ProductSample{}, fmt.Errorf("s.sampleRepo.FindByID -> %w", err)
	}

	return session, sample, nil
}

func (s *EvaluationService) checkMember(ctx context.Context, session domain.EvaluationSession, memberID uint) (domain.CommissionMember, error) {
	member, err := s.commissionRepo.FindMemberByID(ctx, memberID)
	if err != nil {
		return domain.CommissionMember{}, fmt.Errorf("s.commissionRepo.FindMemberByID -> %w", err)
	}
	if member.CommissionID != session.CommissionID {
		return domain.CommissionMember{}, ErrMemberNotInCommission
	}
	if !member.CanSubmitEvaluation() {
		return domain.CommissionMember{}, ErrMemberCannotSubmit
	}

	return member, nil
}

func (s *EvaluationService) findOrNewEvaluation(ctx context.Context, session domain.EvaluationSession, memberID uint) (domain.ExpertEvaluation, bool, error) {
	evaluation, err := s.repo.FindEvaluationBySessionAndMember(ctx, session.ID, memberID)
	if err != nil {
		if errors.Is(err, ErrEvaluationNotFound) {
			return domain.ExpertEvaluation{
				SessionID: session.ID,
				SampleID:  session.SampleID,
				MemberID:  memberID,
			}, true, nil
		}

		return domain.ExpertEvaluation{}, false, fmt.Errorf("s.repo.FindEvaluationBySessionAndMember -> %w", err)
	}

	return evaluation, false, nil
}

func (s *EvaluationService) applyInput(ctx context.Context, evaluation *domain.ExpertEvaluation, sample domain.ProductSample, input EvaluationInput) error {
	switch sample.Mode {
	case domain.EvaluationModeFinalScore:
		if len(input.CriterionScores) > 0 {
			return domain.ErrWrongEvaluationMode
		}
		if input.FinalScore != nil {
			evaluation.SetFinalScore(*input.FinalScore)
		}
	case domain.EvaluationModeCriteriaBased:
		if input.FinalScore != nil {
			return domain.ErrWrongEvaluationMode
		}
		for _, cs := range input.CriterionScores {
			criterion, err := s.eventRepo.FindCriterionByID(ctx, cs.CriterionID)
			if err != nil {
				return fmt.Errorf("s.eventRepo.FindCriterionByID -> %w", err)
			}
			if criterion.EventID != sample.EventID {
				return ErrCriterionNotFound
			}
			if err := evaluation.SetCriterionScore(criterion, cs.Score); err != nil {
				return err
			}
		}
	default:
		return domain.ErrWrongEvaluationMode
	}

	return nil
}
