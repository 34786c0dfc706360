package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/prodexpert/expertise-api/internal/domain"
	"github.com/prodexpert/expertise-api/internal/repository"
)

var (
	ErrNoUsableEvaluations = domain.ErrNoUsableEvaluations
	ErrSampleLocked        = domain.ErrSampleLocked
)

// ScoringService aggregates the submitted expert evaluations of a sample
// into its final score under the event's scoring policy.
type ScoringService struct {
	sampleRepo     SampleRepository
	evaluationRepo EvaluationRepository
	eventRepo      EventRepository
}

func NewScoringService(sampleRepo SampleRepository, evaluationRepo EvaluationRepository, eventRepo EventRepository) *ScoringService {
	return &ScoringService{
		sampleRepo:     sampleRepo,
		evaluationRepo: evaluationRepo,
		eventRepo:      eventRepo,
	}
}

// ScoreSample recomputes the sample's final score from the submitted
// evaluations of its completed sessions. Evaluations flagged out of the
// calculation and pure exclusion votes carry no value. Re-running is
// allowed any number of times until the sample is completed.
func (s *ScoringService) ScoreSample(ctx context.Context, sampleID uint) (domain.ProductSample, error) {
	sample, err := s.sampleRepo.FindByID(ctx, sampleID)
	if err != nil {
		return domain.ProductSample{}, fmt.Errorf("s.sampleRepo.FindByID -> %w", err)
	}
	if sample.Status == domain.SampleStatusCompleted {
		return domain.ProductSample{}, ErrSampleLocked
	}

	policy, err := s.loadPolicy(ctx, sample.EventID)
	if err != nil {
		return domain.ProductSample{}, err
	}

	values, err := s.collectValues(ctx, sample)
	if err != nil {
		return domain.ProductSample{}, err
	}

	score, err := policy.Aggregate(values)
	if err != nil {
		return domain.ProductSample{}, err
	}

	if err := sample.MarkEvaluated(score); err != nil {
		return domain.ProductSample{}, err
	}

	updated, err := s.sampleRepo.Update(ctx, sample)
	if err != nil {
		return domain.ProductSample{}, fmt.Errorf("s.sampleRepo.Update -> %w", err)
	}

	zap.L().Info("sample scored",
		zap.Uint("sample_id", updated.ID),
		zap.Float64("final_score", score),
		zap.Int("evaluations", len(values)))

	return updated, nil
}

func (s *ScoringService) loadPolicy(ctx context.Context, eventID uint) (domain.ScoringPolicy, error) {
	policy, err := s.eventRepo.FindPolicyByEventID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrPolicyNotFound) {
			return domain.DefaultScoringPolicy(eventID), nil
		}

		return domain.ScoringPolicy{}, fmt.Errorf("s.eventRepo.FindPolicyByEventID -> %w", err)
	}

	return policy, nil
}

func (s *ScoringService) collectValues(ctx context.Context, sample domain.ProductSample) ([]float64, error) {
	evaluations, err := s.evaluationRepo.FindSubmittedBySampleID(ctx, sample.ID)
	if err != nil {
		return nil, fmt.Errorf("s.evaluationRepo.FindSubmittedBySampleID -> %w", err)
	}

	criteria, err := s.eventRepo.FindAllCriteriaByEventID(ctx, sample.EventID)
	if err != nil {
		return nil, fmt.Errorf("s.eventRepo.FindAllCriteriaByEventID -> %w", err)
	}
	criteriaByID := make(map[uint]domain.EvaluationCriterion, len(criteria))
	for _, c := range criteria {
		criteriaByID[c.ID] = c
	}

	values := make([]float64, 0, len(evaluations))
	for _, e := range evaluations {
		if e.IsExcludedFromCalculation || e.IsExclusionVote {
			continue
		}

		src, err := e.ScoreSource(sample.Mode, criteriaByID)
		if err != nil {
			return nil, fmt.Errorf("evaluation %d -> %w", e.ID, err)
		}

		values = append(values, domain.Resolve(src))
	}

	return values, nil
}
