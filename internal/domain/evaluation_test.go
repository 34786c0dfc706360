package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpertEvaluation_SetCriterionScore(t *testing.T) {
	criterion := EvaluationCriterion{ID: 1, Name: "Taste", MinScore: 0, MaxScore: 10}

	e := ExpertEvaluation{}

	err := e.SetCriterionScore(criterion, 11)
	assert.ErrorIs(t, err, ErrScoreOutOfRange)
	assert.Empty(t, e.CriterionEvaluations)

	require.NoError(t, e.SetCriterionScore(criterion, 7))
	require.Len(t, e.CriterionEvaluations, 1)
	assert.Equal(t, 7, e.CriterionEvaluations[0].Score)

	// Scoring the same criterion again replaces, not appends.
	require.NoError(t, e.SetCriterionScore(criterion, 9))
	require.Len(t, e.CriterionEvaluations, 1)
	assert.Equal(t, 9, e.CriterionEvaluations[0].Score)
}

func TestExpertEvaluation_SetExclusionVote(t *testing.T) {
	e := ExpertEvaluation{}

	err := e.SetExclusionVote(true, "")
	assert.ErrorIs(t, err, ErrExclusionNoteRequired)

	require.NoError(t, e.SetExclusionVote(true, "sample was damaged in transit"))
	assert.True(t, e.IsExclusionVote)
	assert.Equal(t, "sample was damaged in transit", e.ExclusionNote)

	// Withdrawing the vote clears the note.
	require.NoError(t, e.SetExclusionVote(false, "ignored"))
	assert.False(t, e.IsExclusionVote)
	assert.Empty(t, e.ExclusionNote)
}

func TestExpertEvaluation_Submit_FinalScoreMode(t *testing.T) {
	now := time.Now()

	e := ExpertEvaluation{}
	err := e.Submit(EvaluationModeFinalScore, nil, now)
	assert.ErrorIs(t, err, ErrFinalScoreRequired)

	e.SetFinalScore(8.5)
	require.NoError(t, e.Submit(EvaluationModeFinalScore, nil, now))
	assert.True(t, e.IsSubmitted())

	err = e.Submit(EvaluationModeFinalScore, nil, now)
	assert.ErrorIs(t, err, ErrAlreadySubmitted)
}

func TestExpertEvaluation_Submit_CriteriaMode(t *testing.T) {
	now := time.Now()
	criteria := []EvaluationCriterion{
		{ID: 1, Name: "Taste", MaxScore: 10, IsRequired: true},
		{ID: 2, Name: "Appearance", MaxScore: 10, IsRequired: true},
		{ID: 3, Name: "Packaging", MaxScore: 10},
	}

	t.Run("no scores at all", func(t *testing.T) {
		e := ExpertEvaluation{}

		err := e.Submit(EvaluationModeCriteriaBased, criteria, now)
		assert.ErrorIs(t, err, ErrCriterionScoresRequired)
	})

	t.Run("required criterion missing", func(t *testing.T) {
		e := ExpertEvaluation{}
		require.NoError(t, e.SetCriterionScore(criteria[0], 7))

		err := e.Submit(EvaluationModeCriteriaBased, criteria, now)
		assert.ErrorIs(t, err, ErrRequiredCriterionMissing)
	})

	t.Run("all required criteria covered", func(t *testing.T) {
		e := ExpertEvaluation{}
		require.NoError(t, e.SetCriterionScore(criteria[0], 7))
		require.NoError(t, e.SetCriterionScore(criteria[1], 8))

		require.NoError(t, e.Submit(EvaluationModeCriteriaBased, criteria, now))
		assert.True(t, e.IsSubmitted())
	})
}

func TestExpertEvaluation_Submit_ExclusionVoteWithoutScores(t *testing.T) {
	now := time.Now()

	e := ExpertEvaluation{}
	require.NoError(t, e.SetExclusionVote(true, "not a food product"))

	// A pure exclusion vote is submittable with no scores in either mode.
	require.NoError(t, e.Submit(EvaluationModeCriteriaBased, nil, now))
	assert.True(t, e.IsSubmitted())
}

func TestExpertEvaluation_ScoreSource(t *testing.T) {
	criteria := map[uint]EvaluationCriterion{
		1: {ID: 1, Weight: 2},
		2: {ID: 2, Weight: 1},
	}

	t.Run("final score mode", func(t *testing.T) {
		e := ExpertEvaluation{}
		e.SetFinalScore(7.25)

		src, err := e.ScoreSource(EvaluationModeFinalScore, nil)
		require.NoError(t, err)
		assert.Equal(t, FinalScoreSource{Score: 7.25}, src)
	})

	t.Run("criteria mode", func(t *testing.T) {
		e := ExpertEvaluation{
			CriterionEvaluations: []CriterionEvaluation{
				{CriterionID: 1, Score: 8},
				{CriterionID: 2, Score: 5},
			},
		}

		src, err := e.ScoreSource(EvaluationModeCriteriaBased, criteria)
		require.NoError(t, err)
		assert.Equal(t, CriteriaScoreSource{Scores: []WeightedScore{
			{Score: 8, Weight: 2},
			{Score: 5, Weight: 1},
		}}, src)
	})

	t.Run("unknown criterion", func(t *testing.T) {
		e := ExpertEvaluation{
			CriterionEvaluations: []CriterionEvaluation{{CriterionID: 99, Score: 8}},
		}

		_, err := e.ScoreSource(EvaluationModeCriteriaBased, criteria)
		assert.ErrorIs(t, err, ErrCriterionNotFound)
	})
}

func TestResolve(t *testing.T) {
	t.Run("final score passes through", func(t *testing.T) {
		assert.Equal(t, 6.5, Resolve(FinalScoreSource{Score: 6.5}))
	})

	t.Run("weighted average", func(t *testing.T) {
		got := Resolve(CriteriaScoreSource{Scores: []WeightedScore{
			{Score: 8, Weight: 2},
			{Score: 5, Weight: 1},
		}})
		assert.InDelta(t, 7.0, got, 1e-9)
	})

	t.Run("unset weights count as one", func(t *testing.T) {
		got := Resolve(CriteriaScoreSource{Scores: []WeightedScore{
			{Score: 8},
			{Score: 4},
		}})
		assert.InDelta(t, 6.0, got, 1e-9)
	})
}
