package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidTransition       = errors.New("invalid status transition")
	ErrExclusionReasonRequired = errors.New("exclusion reason is required")
)

type SampleStatus string

const (
	SampleStatusDraft     SampleStatus = "draft"
	SampleStatusSubmitted SampleStatus = "submitted"
	SampleStatusEvaluated SampleStatus = "evaluated"
	SampleStatusExcluded  SampleStatus = "excluded"
	SampleStatusCompleted SampleStatus = "completed"
)

type EvaluationMode string

const (
	EvaluationModeFinalScore    EvaluationMode = "final_score"
	EvaluationModeCriteriaBased EvaluationMode = "criteria_based"
)

// ProductSample is one submitted product unit. Its status moves strictly
// forward: draft -> submitted -> evaluated -> completed, with excluded as a
// terminal branch reachable from any non-terminal status.
type ProductSample struct {
	ID              uint           `json:"id"`
	EventID         uint           `json:"event_id"`
	CategoryID      uint           `json:"category_id"`
	ApplicantID     uint           `json:"applicant_id"`
	Name            string         `json:"name"`
	Number          int            `json:"number"` // sequential within the event
	Code            string         `json:"code"`   // globally unique
	Mode            EvaluationMode `json:"mode"`
	Status          SampleStatus   `json:"status"`
	ExclusionReason string         `json:"exclusion_reason,omitempty"`
	ExcludedAt      *time.Time     `json:"excluded_at,omitempty"`
	FinalScore      *float64       `json:"final_score,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

func (s *ProductSample) Submit() error {
	if s.Status != SampleStatusDraft {
		return fmt.Errorf("%w: cannot submit sample in status %q", ErrInvalidTransition, s.Status)
	}

	s.Status = SampleStatusSubmitted

	return nil
}

// MarkEvaluated records the aggregated score. Re-scoring an already evaluated
// sample is allowed; a completed or excluded sample is not touched.
func (s *ProductSample) MarkEvaluated(score float64) error {
	if s.Status != SampleStatusSubmitted && s.Status != SampleStatusEvaluated {
		return fmt.Errorf("%w: cannot evaluate sample in status %q", ErrInvalidTransition, s.Status)
	}

	s.FinalScore = &score
	s.Status = SampleStatusEvaluated

	return nil
}

func (s *ProductSample) Exclude(reason string, now time.Time) error {
	if reason == "" {
		return ErrExclusionReasonRequired
	}
	if s.Status == SampleStatusCompleted || s.Status == SampleStatusExcluded {
		return fmt.Errorf("%w: cannot exclude sample in status %q", ErrInvalidTransition, s.Status)
	}

	s.Status = SampleStatusExcluded
	s.ExclusionReason = reason
	s.ExcludedAt = &now

	return nil
}

func (s *ProductSample) Complete() error {
	if s.Status != SampleStatusEvaluated {
		return fmt.Errorf("%w: cannot complete sample in status %q", ErrInvalidTransition, s.Status)
	}

	s.Status = SampleStatusCompleted

	return nil
}
