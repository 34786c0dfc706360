package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidRoster         = errors.New("invalid commission roster")
	ErrMemberAlreadyExcluded = errors.New("commission member is already excluded")
)

type CommissionRole string

const (
	CommissionRoleMainMember CommissionRole = "main_member"
	CommissionRolePresident  CommissionRole = "president"
	CommissionRoleMember     CommissionRole = "member"
	CommissionRoleTrainee    CommissionRole = "trainee"
)

type CommissionStatus string

const (
	CommissionStatusActive   CommissionStatus = "active"
	CommissionStatusInactive CommissionStatus = "inactive"
)

type CommissionMember struct {
	ID              uint           `json:"id"`
	CommissionID    uint           `json:"commission_id"`
	UserID          uint           `json:"user_id"`
	Role            CommissionRole `json:"role"`
	IsExcluded      bool           `json:"is_excluded"`
	ExclusionReason string         `json:"exclusion_reason,omitempty"`
	ExcludedAt      *time.Time     `json:"excluded_at,omitempty"`
}

// Exclude is one-way: there is no way to reinstate an excluded member.
// Prior submitted evaluations of the member remain untouched.
func (m *CommissionMember) Exclude(reason string, now time.Time) error {
	if reason == "" {
		return ErrExclusionReasonRequired
	}
	if m.IsExcluded {
		return ErrMemberAlreadyExcluded
	}

	m.IsExcluded = true
	m.ExclusionReason = reason
	m.ExcludedAt = &now

	return nil
}

func (m *CommissionMember) CanSubmitEvaluation() bool {
	return !m.IsExcluded
}

// Commission is a standing group of evaluators, not tied to any one event.
type Commission struct {
	ID        uint               `json:"id"`
	Name      string             `json:"name"`
	Status    CommissionStatus   `json:"status"`
	Members   []CommissionMember `json:"members"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// ValidateRoster rejects any member list without exactly one main member or
// with more than one president. Excluded members still count towards the
// roster shape.
func ValidateRoster(members []CommissionMember) error {
	var mainMembers, presidents int
	for _, m := range members {
		switch m.Role {
		case CommissionRoleMainMember:
			mainMembers++
		case CommissionRolePresident:
			presidents++
		}
	}

	if mainMembers != 1 {
		return fmt.Errorf("%w: expected exactly one main member, got %d", ErrInvalidRoster, mainMembers)
	}
	if presidents > 1 {
		return fmt.Errorf("%w: expected at most one president, got %d", ErrInvalidRoster, presidents)
	}

	return nil
}

func (c *Commission) ValidateRoster() error {
	return ValidateRoster(c.Members)
}

func (c *Commission) FindMember(memberID uint) (CommissionMember, bool) {
	for _, m := range c.Members {
		if m.ID == memberID {
			return m, true
		}
	}

	return CommissionMember{}, false
}
