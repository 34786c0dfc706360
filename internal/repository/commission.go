package repository

import (
	"context"
	"fmt"

	"github.com/prodexpert/expertise-api/internal/domain"
	"github.com/prodexpert/expertise-api/internal/repository/dao"
)

var (
	ErrCommissionNotFound = dao.ErrCommissionNotFound
	ErrMemberNotFound     = dao.ErrMemberNotFound
)

type CommissionDAO interface {
	Insert(ctx context.Context, commission dao.Commission) (dao.Commission, error)
	FindByID(ctx context.Context, id uint) (dao.Commission, error)
	InsertMember(ctx context.Context, member dao.CommissionMember) (dao.CommissionMember, error)
	FindMemberByID(ctx context.Context, id uint) (dao.CommissionMember, error)
	UpdateMember(ctx context.Context, member dao.CommissionMember) (dao.CommissionMember, error)
	InsertCommissionCategory(ctx context.Context, assignment dao.CommissionCategory) (dao.CommissionCategory, error)
	IsAssignedToCategory(ctx context.Context, commissionID, categoryID uint) (bool, error)
}

type CommissionRepository struct {
	dao CommissionDAO
}

func NewCommissionRepository(dao CommissionDAO) *CommissionRepository {
	return &CommissionRepository{
		dao: dao,
	}
}

func (r *CommissionRepository) Create(ctx context.Context, commission domain.Commission) (domain.Commission, error) {
	daoCommission := dao.Commission{
		Name:   commission.Name,
		Status: string(commission.Status),
	}
	for _, m := range commission.Members {
		daoCommission.Members = append(daoCommission.Members, r.memberDomainToDao(m))
	}

	created, err := r.dao.Insert(ctx, daoCommission)
	if err != nil {
		return domain.Commission{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *CommissionRepository) FindByID(ctx context.Context, id uint) (domain.Commission, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Commission{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *CommissionRepository) AddMember(ctx context.Context, member domain.CommissionMember) (domain.CommissionMember, error) {
	created, err := r.dao.InsertMember(ctx, r.memberDomainToDao(member))
	if err != nil {
		return domain.CommissionMember{}, fmt.Errorf("r.dao.InsertMember -> %w", err)
	}

	return r.memberDaoToDomain(created), nil
}

func (r *CommissionRepository) FindMemberByID(ctx context.Context, id uint) (domain.CommissionMember, error) {
	found, err := r.dao.FindMemberByID(ctx, id)
	if err != nil {
		return domain.CommissionMember{}, fmt.Errorf("r.dao.FindMemberByID -> %w", err)
	}

	return r.memberDaoToDomain(found), nil
}

func (r *CommissionRepository) UpdateMember(ctx context.Context, member domain.CommissionMember) (domain.CommissionMember, error) {
	daoMember := r.memberDomainToDao(member)
	daoMember.ID = member.ID

	updated, err := r.dao.UpdateMember(ctx, daoMember)
	if err != nil {
		return domain.CommissionMember{}, fmt.Errorf("r.dao.UpdateMember -> %w", err)
	}

	return r.memberDaoToDomain(updated), nil
}

func (r *CommissionRepository) AssignCategory(ctx context.Context, commissionID, categoryID uint) error {
	_, err := r.dao.InsertCommissionCategory(ctx, dao.CommissionCategory{
		CommissionID: commissionID,
		CategoryID:   categoryID,
	})
	if err != nil {
		return fmt.Errorf("r.dao.InsertCommissionCategory -> %w", err)
	}

	return nil
}

func (r *CommissionRepository) IsAssignedToCategory(ctx context.Context, commissionID, categoryID uint) (bool, error) {
	assigned, err := r.dao.IsAssignedToCategory(ctx, commissionID, categoryID)
	if err != nil {
		return false, fmt.Errorf("r.dao.IsAssignedToCategory -> %w", err)
	}

	return assigned, nil
}

func (r *CommissionRepository) daoToDomain(c dao.Commission) domain.Commission {
	commission := domain.Commission{
		ID:        c.ID,
		Name:      c.Name,
		Status:    domain.CommissionStatus(c.Status),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
	for _, m := range c.Members {
		commission.Members = append(commission.Members, r.memberDaoToDomain(m))
	}

	return commission
}

func (r *CommissionRepository) memberDaoToDomain(m dao.CommissionMember) domain.CommissionMember {
	return domain.CommissionMember{
		ID:              m.ID,
		CommissionID:    m.CommissionID,
		UserID:          m.UserID,
		Role:            domain.CommissionRole(m.Role),
		IsExcluded:      m.IsExcluded,
		ExclusionReason: m.ExclusionReason,
		ExcludedAt:      m.ExcludedAt,
	}
}

func (r *CommissionRepository) memberDomainToDao(m domain.CommissionMember) dao.CommissionMember {
	return dao.CommissionMember{
		CommissionID:    m.CommissionID,
		UserID:          m.UserID,
		Role:            string(m.Role),
		IsExcluded:      m.IsExcluded,
		ExclusionReason: m.ExclusionReason,
		ExcludedAt:      m.ExcludedAt,
	}
}
