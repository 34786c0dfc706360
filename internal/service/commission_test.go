package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prodexpert/expertise-api/internal/domain"
)

func TestCommissionService_CreateCommission(t *testing.T) {
	svc := NewCommissionService(newFakeCommissionRepo())

	commission, err := svc.CreateCommission(context.Background(), domain.Commission{
		Name: "Cheese Commission",
		Members: []domain.CommissionMember{
			{UserID: 1, Role: domain.CommissionRoleMainMember},
			{UserID: 2, Role: domain.CommissionRolePresident},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.CommissionStatusActive, commission.Status)
	assert.Len(t, commission.Members, 2)
}

func TestCommissionService_CreateCommission_InvalidRoster(t *testing.T) {
	svc := NewCommissionService(newFakeCommissionRepo())

	_, err := svc.CreateCommission(context.Background(), domain.Commission{
		Name: "Headless Commission",
		Members: []domain.CommissionMember{
			{UserID: 1, Role: domain.CommissionRoleMember},
		},
	})
	assert.ErrorIs(t, err, ErrInvalidRoster)
}

func TestCommissionService_AddMember(t *testing.T) {
	repo := newFakeCommissionRepo()
	svc := NewCommissionService(repo)

	commission, err := svc.CreateCommission(context.Background(), domain.Commission{
		Name: "Cheese Commission",
		Members: []domain.CommissionMember{
			{UserID: 1, Role: domain.CommissionRoleMainMember},
		},
	})
	require.NoError(t, err)

	member, err := svc.AddMember(context.Background(), commission.ID, domain.CommissionMember{
		UserID: 2,
		Role:   domain.CommissionRoleTrainee,
	})
	require.NoError(t, err)
	assert.Equal(t, commission.ID, member.CommissionID)

	// A second main member is rejected before anything is persisted.
	_, err = svc.AddMember(context.Background(), commission.ID, domain.CommissionMember{
		UserID: 3,
		Role:   domain.CommissionRoleMainMember,
	})
	assert.ErrorIs(t, err, ErrInvalidRoster)
}

func TestCommissionService_ExcludeMember(t *testing.T) {
	repo := newFakeCommissionRepo()
	svc := NewCommissionService(repo)

	commission, err := svc.CreateCommission(context.Background(), domain.Commission{
		Name: "Cheese Commission",
		Members: []domain.CommissionMember{
			{UserID: 1, Role: domain.CommissionRoleMainMember},
			{UserID: 2, Role: domain.CommissionRoleMember},
		},
	})
	require.NoError(t, err)

	target := commission.Members[1]

	excluded, err := svc.ExcludeMember(context.Background(), commission.ID, target.ID, "conflict of interest")
	require.NoError(t, err)
	assert.True(t, excluded.IsExcluded)

	_, err = svc.ExcludeMember(context.Background(), commission.ID, target.ID, "again")
	assert.ErrorIs(t, err, domain.ErrMemberAlreadyExcluded)

	// A member ID from a different commission is treated as unknown.
	_, err = svc.ExcludeMember(context.Background(), commission.ID+99, target.ID, "reason")
	assert.ErrorIs(t, err, ErrMemberNotFound)
}
