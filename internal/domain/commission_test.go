package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRoster(t *testing.T) {
	tests := []struct {
		name    string
		members []CommissionMember
		wantErr bool
	}{
		{
			name: "one main member and one president",
			members: []CommissionMember{
				{Role: CommissionRoleMainMember},
				{Role: CommissionRolePresident},
				{Role: CommissionRoleMember},
			},
		},
		{
			name: "one main member only",
			members: []CommissionMember{
				{Role: CommissionRoleMainMember},
				{Role: CommissionRoleTrainee},
			},
		},
		{
			name:    "no main member",
			members: []CommissionMember{{Role: CommissionRoleMember}},
			wantErr: true,
		},
		{
			name: "two main members",
			members: []CommissionMember{
				{Role: CommissionRoleMainMember},
				{Role: CommissionRoleMainMember},
			},
			wantErr: true,
		},
		{
			name: "two presidents",
			members: []CommissionMember{
				{Role: CommissionRoleMainMember},
				{Role: CommissionRolePresident},
				{Role: CommissionRolePresident},
			},
			wantErr: true,
		},
		{
			name:    "empty roster",
			members: nil,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRoster(tt.members)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidRoster)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateRoster_ExcludedMembersStillCount(t *testing.T) {
	// Excluding the main member does not free the slot for a second one.
	members := []CommissionMember{
		{Role: CommissionRoleMainMember, IsExcluded: true},
		{Role: CommissionRoleMainMember},
	}

	err := ValidateRoster(members)
	assert.ErrorIs(t, err, ErrInvalidRoster)
}

func TestCommissionMember_Exclude(t *testing.T) {
	now := time.Now()

	member := CommissionMember{Role: CommissionRoleMember}

	err := member.Exclude("", now)
	assert.ErrorIs(t, err, ErrExclusionReasonRequired)

	require.NoError(t, member.Exclude("conflict of interest", now))
	assert.True(t, member.IsExcluded)
	assert.False(t, member.CanSubmitEvaluation())

	// One-way: a second exclusion fails, reinstating is impossible.
	err = member.Exclude("again", now)
	assert.ErrorIs(t, err, ErrMemberAlreadyExcluded)
}
