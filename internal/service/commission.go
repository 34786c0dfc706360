package service

import (
	"context"
	"fmt"
	"time"

	"github.com/prodexpert/expertise-api/internal/domain"
	"github.com/prodexpert/expertise-api/internal/repository"
)

var (
	ErrCommissionNotFound = repository.ErrCommissionNotFound
	ErrMemberNotFound     = repository.ErrMemberNotFound
	ErrInvalidRoster      = domain.ErrInvalidRoster
)

type CommissionRepository interface {
	Create(ctx context.Context, commission domain.Commission) (domain.Commission, error)
	FindByID(ctx context.Context, id uint) (domain.Commission, error)
	AddMember(ctx context.Context, member domain.CommissionMember) (domain.CommissionMember, error)
	FindMemberByID(ctx context.Context, id uint) (domain.CommissionMember, error)
	UpdateMember(ctx context.Context, member domain.CommissionMember) (domain.CommissionMember, error)
	AssignCategory(ctx context.Context, commissionID, categoryID uint) error
	IsAssignedToCategory(ctx context.Context, commissionID, categoryID uint) (bool, error)
}

// CommissionService guards the roster invariants: every commission it
// persists has exactly one main member and at most one president.
type CommissionService struct {
	repo CommissionRepository
}

func NewCommissionService(repo CommissionRepository) *CommissionService {
	return &CommissionService{
		repo: repo,
	}
}

func (s *CommissionService) CreateCommission(ctx context.Context, commission domain.Commission) (domain.Commission, error) {
	if err := commission.ValidateRoster(); err != nil {
		return domain.Commission{}, err
	}

	if commission.Status == "" {
		commission.Status = domain.CommissionStatusActive
	}

	created, err := s.repo.Create(ctx, commission)
	if err != nil {
		return domain.Commission{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *CommissionService) GetCommission(ctx context.Context, id uint) (domain.Commission, error) {
	commission, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Commission{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return commission, nil
}

// AddMember validates the roster as it would look with the new member
// before persisting anything.
func (s *CommissionService) AddMember(ctx context.Context, commissionID uint, member domain.CommissionMember) (domain.CommissionMember, error) {
	commission, err := s.repo.FindByID(ctx, commissionID)
	if err != nil {
		return domain.CommissionMember{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	member.CommissionID = commission.ID
	if err := domain.ValidateRoster(append(commission.Members, member)); err != nil {
		return domain.CommissionMember{}, err
	}

	created, err := s.repo.AddMember(ctx, member)
	if err != nil {
		return domain.CommissionMember{}, fmt.Errorf("s.repo.AddMember -> %w", err)
	}

	return created, nil
}

func (s *CommissionService) ExcludeMember(ctx context.Context, commissionID, memberID uint, reason string) (domain.CommissionMember, error) {
	member, err := s.repo.FindMemberByID(ctx, memberID)
	if err != nil {
		return domain.CommissionMember{}, fmt.Errorf("s.repo.FindMemberByID -> %w", err)
	}
	if member.CommissionID != commissionID {
		return domain.CommissionMember{}, ErrMemberNotFound
	}

	if err := member.Exclude(reason, time.Now()); err != nil {
		return domain.CommissionMember{}, err
	}

	updated, err := s.repo.UpdateMember(ctx, member)
	if err != nil {
		return domain.CommissionMember{}, fmt.Errorf("s.repo.UpdateMember -> %w", err)
	}

	return updated, nil
}

func (s *CommissionService) AssignCategory(ctx context.Context, commissionID, categoryID uint) error {
	if _, err := s.repo.FindByID(ctx, commissionID); err != nil {
		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if err := s.repo.AssignCategory(ctx, commissionID, categoryID); err != nil {
		return fmt.Errorf("s.repo.AssignCategory -> %w", err)
	}

	return nil
}
