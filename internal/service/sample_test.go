package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prodexpert/expertise-api/internal/domain"
)

type sampleFixture struct {
	svc       *SampleService
	repo      *fakeSampleRepo
	eventRepo *fakeEventRepo
	event     domain.Event
	category  domain.Category
}

func newSampleFixture(t *testing.T) *sampleFixture {
	t.Helper()

	repo := newFakeSampleRepo()
	eventRepo := newFakeEventRepo()

	event, err := eventRepo.Create(context.Background(), domain.Event{Name: "Quality Review 2026"})
	require.NoError(t, err)
	category, err := eventRepo.CreateCategory(context.Background(), domain.Category{
		EventID: event.ID,
		Name:    "Hard cheeses",
	})
	require.NoError(t, err)

	return &sampleFixture{
		svc:       NewSampleService(repo, eventRepo),
		repo:      repo,
		eventRepo: eventRepo,
		event:     event,
		category:  category,
	}
}

func TestSampleService_CreateSample(t *testing.T) {
	fx := newSampleFixture(t)

	sample, err := fx.svc.CreateSample(context.Background(), domain.ProductSample{
		EventID:     fx.event.ID,
		CategoryID:  fx.category.ID,
		ApplicantID: 7,
		Name:        "Gouda",
		Mode:        domain.EvaluationModeFinalScore,
		// Callers cannot smuggle in a status.
		Status: domain.SampleStatusEvaluated,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.SampleStatusDraft, sample.Status)
}

func TestSampleService_CreateSample_UnknownEvent(t *testing.T) {
	fx := newSampleFixture(t)

	_, err := fx.svc.CreateSample(context.Background(), domain.ProductSample{
		EventID:    fx.event.ID + 99,
		CategoryID: fx.category.ID,
	})
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestSampleService_CreateSample_CategoryFromAnotherEvent(t *testing.T) {
	fx := newSampleFixture(t)

	other, err := fx.eventRepo.Create(context.Background(), domain.Event{Name: "Other Event"})
	require.NoError(t, err)
	foreign, err := fx.eventRepo.CreateCategory(context.Background(), domain.Category{
		EventID: other.ID,
		Name:    "Soft cheeses",
	})
	require.NoError(t, err)

	_, err = fx.svc.CreateSample(context.Background(), domain.ProductSample{
		EventID:    fx.event.ID,
		CategoryID: foreign.ID,
	})
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestSampleService_SubmitSample(t *testing.T) {
	fx := newSampleFixture(t)
	sample := fx.repo.add(domain.ProductSample{Status: domain.SampleStatusDraft})

	submitted, err := fx.svc.SubmitSample(context.Background(), sample.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SampleStatusSubmitted, submitted.Status)

	_, err = fx.svc.SubmitSample(context.Background(), sample.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestSampleService_ExcludeSample(t *testing.T) {
	fx := newSampleFixture(t)
	sample := fx.repo.add(domain.ProductSample{Status: domain.SampleStatusSubmitted})

	_, err := fx.svc.ExcludeSample(context.Background(), sample.ID, "")
	assert.ErrorIs(t, err, domain.ErrExclusionReasonRequired)

	excluded, err := fx.svc.ExcludeSample(context.Background(), sample.ID, "mislabeled packaging")
	require.NoError(t, err)
	assert.Equal(t, domain.SampleStatusExcluded, excluded.Status)
	require.NotNil(t, excluded.ExcludedAt)
}

func TestSampleService_TransitionUnknownSample(t *testing.T) {
	fx := newSampleFixture(t)

	_, err := fx.svc.CompleteSample(context.Background(), 404)
	assert.ErrorIs(t, err, ErrSampleNotFound)
}
