package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prodexpert/expertise-api/internal/domain"
)

type scoringFixture struct {
	svc            *ScoringService
	sampleRepo     *fakeSampleRepo
	evaluationRepo *fakeEvaluationRepo
	eventRepo      *fakeEventRepo
	sample         domain.ProductSample
}

func newScoringFixture(t *testing.T, mode domain.EvaluationMode) *scoringFixture {
	t.Helper()

	sampleRepo := newFakeSampleRepo()
	evaluationRepo := newFakeEvaluationRepo()
	eventRepo := newFakeEventRepo()

	event, err := eventRepo.Create(context.Background(), domain.Event{Name: "Quality Review 2026"})
	require.NoError(t, err)

	sample := sampleRepo.add(domain.ProductSample{
		EventID: event.ID,
		Mode:    mode,
		Status:  domain.SampleStatusSubmitted,
	})

	return &scoringFixture{
		svc:            NewScoringService(sampleRepo, evaluationRepo, eventRepo),
		sampleRepo:     sampleRepo,
		evaluationRepo: evaluationRepo,
		eventRepo:      eventRepo,
		sample:         sample,
	}
}

// addSubmitted stores a submitted final-score evaluation inside a completed
// session of the fixture sample.
func (fx *scoringFixture) addSubmitted(t *testing.T, score float64, mutate func(*domain.ExpertEvaluation)) {
	t.Helper()

	now := time.Now()
	fx.evaluationRepo.nextID++
	sessionID := fx.evaluationRepo.nextID
	fx.evaluationRepo.sessions[sessionID] = domain.EvaluationSession{
		ID:       sessionID,
		SampleID: fx.sample.ID,
		Status:   domain.SessionStatusCompleted,
	}

	evaluation := domain.ExpertEvaluation{
		SessionID:   sessionID,
		SampleID:    fx.sample.ID,
		MemberID:    sessionID,
		FinalScore:  &score,
		SubmittedAt: &now,
	}
	if mutate != nil {
		mutate(&evaluation)
	}

	_, err := fx.evaluationRepo.CreateEvaluation(context.Background(), evaluation)
	require.NoError(t, err)
}

func TestScoringService_ScoreSample_TrimmedMean(t *testing.T) {
	fx := newScoringFixture(t, domain.EvaluationModeFinalScore)

	for _, v := range []float64{2, 5, 6, 7, 9} {
		fx.addSubmitted(t, v, nil)
	}

	scored, err := fx.svc.ScoreSample(context.Background(), fx.sample.ID)
	require.NoError(t, err)

	require.NotNil(t, scored.FinalScore)
	assert.InDelta(t, 6.00, *scored.FinalScore, 1e-9)
	assert.Equal(t, domain.SampleStatusEvaluated, scored.Status)
}

func TestScoringService_ScoreSample_SkipsExcludedAndVotes(t *testing.T) {
	fx := newScoringFixture(t, domain.EvaluationModeFinalScore)

	fx.addSubmitted(t, 6, nil)
	fx.addSubmitted(t, 8, nil)
	// Flagged out by an organizer: its extreme value must not leak in.
	fx.addSubmitted(t, 100, func(e *domain.ExpertEvaluation) {
		e.IsExcludedFromCalculation = true
	})
	// A pure exclusion vote carries no score.
	fx.addSubmitted(t, 0, func(e *domain.ExpertEvaluation) {
		e.FinalScore = nil
		e.IsExclusionVote = true
		e.ExclusionNote = "mislabeled"
	})

	scored, err := fx.svc.ScoreSample(context.Background(), fx.sample.ID)
	require.NoError(t, err)
	assert.InDelta(t, 7.00, *scored.FinalScore, 1e-9)
}

func TestScoringService_ScoreSample_CriteriaMode(t *testing.T) {
	fx := newScoringFixture(t, domain.EvaluationModeCriteriaBased)

	taste, err := fx.eventRepo.CreateCriterion(context.Background(), domain.EvaluationCriterion{
		EventID: fx.sample.EventID, Name: "Taste", Weight: 2, MaxScore: 10,
	})
	require.NoError(t, err)
	look, err := fx.eventRepo.CreateCriterion(context.Background(), domain.EvaluationCriterion{
		EventID: fx.sample.EventID, Name: "Appearance", Weight: 1, MaxScore: 10,
	})
	require.NoError(t, err)

	fx.addSubmitted(t, 0, func(e *domain.ExpertEvaluation) {
		e.FinalScore = nil
		e.CriterionEvaluations = []domain.CriterionEvaluation{
			{CriterionID: taste.ID, Score: 8},
			{CriterionID: look.ID, Score: 5},
		}
	})

	scored, err := fx.svc.ScoreSample(context.Background(), fx.sample.ID)
	require.NoError(t, err)
	// (8*2 + 5*1) / 3 = 7.00
	assert.InDelta(t, 7.00, *scored.FinalScore, 1e-9)
}

func TestScoringService_ScoreSample_Rescoring(t *testing.T) {
	fx := newScoringFixture(t, domain.EvaluationModeFinalScore)
	fx.addSubmitted(t, 5, nil)

	first, err := fx.svc.ScoreSample(context.Background(), fx.sample.ID)
	require.NoError(t, err)
	assert.InDelta(t, 5.00, *first.FinalScore, 1e-9)

	fx.addSubmitted(t, 9, nil)

	second, err := fx.svc.ScoreSample(context.Background(), fx.sample.ID)
	require.NoError(t, err)
	assert.InDelta(t, 7.00, *second.FinalScore, 1e-9)
}

func TestScoringService_ScoreSample_CompletedIsLocked(t *testing.T) {
	fx := newScoringFixture(t, domain.EvaluationModeFinalScore)

	locked := fx.sample
	locked.Status = domain.SampleStatusCompleted
	_, err := fx.sampleRepo.Update(context.Background(), locked)
	require.NoError(t, err)

	_, err = fx.svc.ScoreSample(context.Background(), fx.sample.ID)
	assert.ErrorIs(t, err, ErrSampleLocked)
}

func TestScoringService_ScoreSample_NoUsableEvaluations(t *testing.T) {
	fx := newScoringFixture(t, domain.EvaluationModeFinalScore)

	fx.addSubmitted(t, 7, func(e *domain.ExpertEvaluation) {
		e.IsExcludedFromCalculation = true
	})

	_, err := fx.svc.ScoreSample(context.Background(), fx.sample.ID)
	assert.ErrorIs(t, err, ErrNoUsableEvaluations)
}

func TestScoringService_ScoreSample_UsesStoredPolicy(t *testing.T) {
	fx := newScoringFixture(t, domain.EvaluationModeFinalScore)

	// No trimming at all for this event.
	_, err := fx.eventRepo.SavePolicy(context.Background(), domain.ScoringPolicy{
		EventID:          fx.sample.EventID,
		TrimFromCount:    100,
		RoundingDecimals: 2,
	})
	require.NoError(t, err)

	for _, v := range []float64{2, 5, 6, 7, 9} {
		fx.addSubmitted(t, v, nil)
	}

	scored, err := fx.svc.ScoreSample(context.Background(), fx.sample.ID)
	require.NoError(t, err)
	assert.InDelta(t, 5.80, *scored.FinalScore, 1e-9)
}
