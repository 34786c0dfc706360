package domain

import (
	"errors"
	"time"
)

var ErrSessionNotActive = errors.New("evaluation session is not active")

type SessionStatus string

const (
	SessionStatusActive    SessionStatus = "active"
	SessionStatusCompleted SessionStatus = "completed"
	SessionStatusCancelled SessionStatus = "cancelled"
)

// EvaluationSession is one activation of a commission against one sample.
// At most one active session may exist per sample at any time; that
// invariant is enforced by the storage layer.
type EvaluationSession struct {
	ID            uint          `json:"id"`
	SampleID      uint          `json:"sample_id"`
	CommissionID  uint          `json:"commission_id"`
	ActivatedByID uint          `json:"activated_by_id"`
	Status        SessionStatus `json:"status"`
	ActivatedAt   time.Time     `json:"activated_at"`
	CompletedAt   *time.Time    `json:"completed_at,omitempty"`
}

func (s *EvaluationSession) IsActive() bool {
	return s.Status == SessionStatusActive
}

// Complete and Cancel are both terminal and legal only from active.

func (s *EvaluationSession) Complete(now time.Time) error {
	if s.Status != SessionStatusActive {
		return ErrSessionNotActive
	}

	s.Status = SessionStatusCompleted
	s.CompletedAt = &now

	return nil
}

func (s *EvaluationSession) Cancel(now time.Time) error {
	if s.Status != SessionStatusActive {
		return ErrSessionNotActive
	}

	s.Status = SessionStatusCancelled
	s.CompletedAt = &now

	return nil
}
