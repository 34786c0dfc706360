package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrScoreOutOfRange          = errors.New("criterion score is out of range")
	ErrCriterionNotFound        = errors.New("criterion not found")
	ErrExclusionNoteRequired    = errors.New("exclusion vote requires a note")
	ErrAlreadySubmitted         = errors.New("evaluation is already submitted")
	ErrFinalScoreRequired       = errors.New("final score is required before submitting")
	ErrCriterionScoresRequired  = errors.New("at least one criterion score is required before submitting")
	ErrRequiredCriterionMissing = errors.New("required criterion is not scored")
	ErrWrongEvaluationMode      = errors.New("operation does not match the sample evaluation mode")
)

// CriterionEvaluation is one criterion score inside an expert evaluation.
type CriterionEvaluation struct {
	ID           uint `json:"id"`
	EvaluationID uint `json:"evaluation_id"`
	CriterionID  uint `json:"criterion_id"`
	Score        int  `json:"score"`
}

// ExpertEvaluation is one commission member's scoring record for one
// session. At most one exists per (session, member) pair. Once the owning
// session leaves the active status the record is immutable; that boundary
// is enforced by the capture service, which checks the session before
// every mutation.
type ExpertEvaluation struct {
	ID                        uint                  `json:"id"`
	SessionID                 uint                  `json:"session_id"`
	SampleID                  uint                  `json:"sample_id"`
	MemberID                  uint                  `json:"member_id"`
	FinalScore                *float64              `json:"final_score,omitempty"`
	CriterionEvaluations      []CriterionEvaluation `json:"criterion_evaluations,omitempty"`
	IsExclusionVote           bool                  `json:"is_exclusion_vote"`
	ExclusionNote             string                `json:"exclusion_note,omitempty"`
	IsExcludedFromCalculation bool                  `json:"is_excluded_from_calculation"`
	SubmittedAt               *time.Time            `json:"submitted_at,omitempty"`
	CreatedAt                 time.Time             `json:"created_at"`
	UpdatedAt                 time.Time             `json:"updated_at"`
}

func (e *ExpertEvaluation) IsSubmitted() bool {
	return e.SubmittedAt != nil
}

func (e *ExpertEvaluation) SetFinalScore(score float64) {
	e.FinalScore = &score
}

// SetCriterionScore records or replaces the score for one criterion,
// checking it against the criterion's bounds.
func (e *ExpertEvaluation) SetCriterionScore(criterion EvaluationCriterion, score int) error {
	if !criterion.InBounds(score) {
		return fmt.Errorf("%w: score %d for criterion %q, bounds [%d,%d]",
			ErrScoreOutOfRange, score, criterion.Name, criterion.MinScore, criterion.MaxScore)
	}

	for i := range e.CriterionEvaluations {
		if e.CriterionEvaluations[i].CriterionID == criterion.ID {
			e.CriterionEvaluations[i].Score = score
			return nil
		}
	}

	e.CriterionEvaluations = append(e.CriterionEvaluations, CriterionEvaluation{
		EvaluationID: e.ID,
		CriterionID:  criterion.ID,
		Score:        score,
	})

	return nil
}

// SetExclusionVote flips the member's vote to exclude the sample. Voting to
// exclude requires a note; withdrawing the vote clears it.
func (e *ExpertEvaluation) SetExclusionVote(exclude bool, note string) error {
	if exclude && note == "" {
		return ErrExclusionNoteRequired
	}

	e.IsExclusionVote = exclude
	if !exclude {
		note = ""
	}
	e.ExclusionNote = note

	return nil
}

// Submit finalizes the record. In final-score mode a numeric score must be
// present; in criteria-based mode at least one criterion is scored and
// every required criterion is covered. An exclusion vote is submittable
// without scores. Submitting twice fails.
func (e *ExpertEvaluation) Submit(mode EvaluationMode, criteria []EvaluationCriterion, now time.Time) error {
	if e.IsSubmitted() {
		return ErrAlreadySubmitted
	}

	if !e.IsExclusionVote {
		switch mode {
		case EvaluationModeFinalScore:
			if e.FinalScore == nil {
				return ErrFinalScoreRequired
			}
		case EvaluationModeCriteriaBased:
			if len(e.CriterionEvaluations) == 0 {
				return ErrCriterionScoresRequired
			}
			if err := e.checkRequiredCriteria(criteria); err != nil {
				return err
			}
		default:
			return fmt.Errorf("%w: unknown mode %q", ErrWrongEvaluationMode, mode)
		}
	}

	e.SubmittedAt = &now

	return nil
}

func (e *ExpertEvaluation) checkRequiredCriteria(criteria []EvaluationCriterion) error {
	scored := make(map[uint]bool, len(e.CriterionEvaluations))
	for _, ce := range e.CriterionEvaluations {
		scored[ce.CriterionID] = true
	}

	for _, c := range criteria {
		if c.IsRequired && !scored[c.ID] {
			return fmt.Errorf("%w: %q", ErrRequiredCriterionMissing, c.Name)
		}
	}

	return nil
}

// ScoreSource is the mode-tagged numeric value of one evaluation, consumed
// by the aggregation engine. Exactly two variants exist, so the engine's
// type switch is exhaustive.
type ScoreSource interface {
	scoreSource()
}

type FinalScoreSource struct {
	Score float64
}

type CriteriaScoreSource struct {
	Scores []WeightedScore
}

type WeightedScore struct {
	Score  float64
	Weight float64 // 0 = no explicit weight
}

func (FinalScoreSource) scoreSource()    {}
func (CriteriaScoreSource) scoreSource() {}

// ScoreSource resolves the evaluation into its tagged value. In
// criteria-based mode the caller supplies the criteria referenced by the
// stored scores.
func (e *ExpertEvaluation) ScoreSource(mode EvaluationMode, criteria map[uint]EvaluationCriterion) (ScoreSource, error) {
	switch mode {
	case EvaluationModeFinalScore:
		if e.FinalScore == nil {
			return nil, ErrFinalScoreRequired
		}
		return FinalScoreSource{Score: *e.FinalScore}, nil
	case EvaluationModeCriteriaBased:
		if len(e.CriterionEvaluations) == 0 {
			return nil, ErrCriterionScoresRequired
		}
		scores := make([]WeightedScore, 0, len(e.CriterionEvaluations))
		for _, ce := range e.CriterionEvaluations {
			c, ok := criteria[ce.CriterionID]
			if !ok {
				return nil, fmt.Errorf("%w: id %d", ErrCriterionNotFound, ce.CriterionID)
			}
			scores = append(scores, WeightedScore{Score: float64(ce.Score), Weight: c.Weight})
		}
		return CriteriaScoreSource{Scores: scores}, nil
	default:
		return nil, fmt.Errorf("%w: unknown mode %q", ErrWrongEvaluationMode, mode)
	}
}

// Resolve turns a tagged score source into a single numeric value. Criteria
// without an explicit weight are treated as equally weighted; when no
// criterion carries a weight the combination is a straight average.
func Resolve(src ScoreSource) float64 {
	switch v := src.(type) {
	case FinalScoreSource:
		return v.Score
	case CriteriaScoreSource:
		var sum, weightSum float64
		for _, s := range v.Scores {
			w := s.Weight
			if w == 0 {
				w = 1
			}
			sum += s.Score * w
			weightSum += w
		}
		if weightSum == 0 {
			return 0
		}
		return sum / weightSum
	default:
		return 0
	}
}
