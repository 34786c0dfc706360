package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductSample_Submit(t *testing.T) {
	sample := ProductSample{Status: SampleStatusDraft}

	require.NoError(t, sample.Submit())
	assert.Equal(t, SampleStatusSubmitted, sample.Status)

	err := sample.Submit()
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestProductSample_MarkEvaluated(t *testing.T) {
	sample := ProductSample{Status: SampleStatusSubmitted}

	require.NoError(t, sample.MarkEvaluated(7.5))
	assert.Equal(t, SampleStatusEvaluated, sample.Status)
	require.NotNil(t, sample.FinalScore)
	assert.Equal(t, 7.5, *sample.FinalScore)

	// Re-scoring an evaluated sample replaces the score.
	require.NoError(t, sample.MarkEvaluated(8.0))
	assert.Equal(t, 8.0, *sample.FinalScore)
}

func TestProductSample_MarkEvaluated_InvalidStates(t *testing.T) {
	for _, status := range []SampleStatus{SampleStatusDraft, SampleStatusExcluded, SampleStatusCompleted} {
		sample := ProductSample{Status: status}

		err := sample.MarkEvaluated(5)
		assert.ErrorIs(t, err, ErrInvalidTransition, "status %v", status)
	}
}

func TestProductSample_Exclude(t *testing.T) {
	now := time.Now()

	t.Run("requires a reason", func(t *testing.T) {
		sample := ProductSample{Status: SampleStatusSubmitted}

		err := sample.Exclude("", now)
		assert.ErrorIs(t, err, ErrExclusionReasonRequired)
	})

	t.Run("allowed from any non-terminal status", func(t *testing.T) {
		for _, status := range []SampleStatus{SampleStatusDraft, SampleStatusSubmitted, SampleStatusEvaluated} {
			sample := ProductSample{Status: status}

			require.NoError(t, sample.Exclude("spoiled", now))
			assert.Equal(t, SampleStatusExcluded, sample.Status)
			assert.Equal(t, "spoiled", sample.ExclusionReason)
			require.NotNil(t, sample.ExcludedAt)
		}
	})

	t.Run("terminal statuses stay terminal", func(t *testing.T) {
		for _, status := range []SampleStatus{SampleStatusExcluded, SampleStatusCompleted} {
			sample := ProductSample{Status: status}

			err := sample.Exclude("late", now)
			assert.ErrorIs(t, err, ErrInvalidTransition)
		}
	})
}

func TestProductSample_Complete(t *testing.T) {
	sample := ProductSample{Status: SampleStatusEvaluated}

	require.NoError(t, sample.Complete())
	assert.Equal(t, SampleStatusCompleted, sample.Status)

	for _, status := range []SampleStatus{SampleStatusDraft, SampleStatusSubmitted, SampleStatusExcluded, SampleStatusCompleted} {
		s := ProductSample{Status: status}

		err := s.Complete()
		assert.ErrorIs(t, err, ErrInvalidTransition, "status %v", status)
	}
}
