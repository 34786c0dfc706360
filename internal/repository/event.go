package repository

import (
	"context"
	"fmt"

	"github.com/prodexpert/expertise-api/internal/domain"
	"github.com/prodexpert/expertise-api/internal/repository/dao"
)

var (
	ErrEventNotFound     = dao.ErrEventNotFound
	ErrCategoryNotFound  = dao.ErrCategoryNotFound
	ErrCriterionNotFound = dao.ErrCriterionNotFound
	ErrPolicyNotFound    = dao.ErrPolicyNotFound
)

type EventDAO interface {
	Insert(ctx context.Context, event dao.Event) (dao.Event, error)
	FindByID(ctx context.Context, id uint) (dao.Event, error)
	FindAll(ctx context.Context) ([]dao.Event, error)
	InsertCategory(ctx context.Context, category dao.Category) (dao.Category, error)
	FindCategoryByID(ctx context.Context, id uint) (dao.Category, error)
	InsertCriterion(ctx context.Context, criterion dao.EvaluationCriterion) (dao.EvaluationCriterion, error)
	FindCriterionByID(ctx context.Context, id uint) (dao.EvaluationCriterion, error)
	FindCriteria(ctx context.Context, eventID uint, commissionID *uint) ([]dao.EvaluationCriterion, error)
	FindAllCriteriaByEventID(ctx context.Context, eventID uint) ([]dao.EvaluationCriterion, error)
	UpsertPolicy(ctx context.Context, policy dao.ScoringPolicy) (dao.ScoringPolicy, error)
	FindPolicyByEventID(ctx context.Context, eventID uint) (dao.ScoringPolicy, error)
}

type EventRepository struct {
	dao EventDAO
}

func NewEventRepository(dao EventDAO) *EventRepository {
	return &EventRepository{
		dao: dao,
	}
}

func (r *EventRepository) Create(ctx context.Context, event domain.Event) (domain.Event, error) {
	created, err := r.dao.Insert(ctx, dao.Event{
		Name:        event.Name,
		Date:        event.Date,
		Location:    event.Location,
		Description: event.Description,
		OrganizerID: event.OrganizerID,
	})
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *EventRepository) FindByID(ctx context.Context, id uint) (domain.Event, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *EventRepository) FindAll(ctx context.Context) ([]domain.Event, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	events := make([]domain.Event, 0, len(found))
	for _, e := range found {
		events = append(events, r.daoToDomain(e))
	}

	return events, nil
}

func (r *EventRepository) CreateCategory(ctx context.Context, category domain.Category) (domain.Category, error) {
	created, err := r.dao.InsertCategory(ctx, dao.Category{
		EventID: category.EventID,
		Name:    category.Name,
	})
	if err != nil {
		return domain.Category{}, fmt.Errorf("r.dao.InsertCategory -> %w", err)
	}

	return domain.Category{ID: created.ID, EventID: created.EventID, Name: created.Name}, nil
}

func (r *EventRepository) FindCategoryByID(ctx context.Context, id uint) (domain.Category, error) {
	found, err := r.dao.FindCategoryByID(ctx, id)
	if err != nil {
		return domain.Category{}, fmt.Errorf("r.dao.FindCategoryByID -> %w", err)
	}

	return domain.Category{ID: found.ID, EventID: found.EventID, Name: found.Name}, nil
}

func (r *EventRepository) CreateCriterion(ctx context.Context, criterion domain.EvaluationCriterion) (domain.EvaluationCriterion, error) {
	created, err := r.dao.InsertCriterion(ctx, dao.EvaluationCriterion{
		EventID:      criterion.EventID,
		CommissionID: criterion.CommissionID,
		Name:         criterion.Name,
		Weight:       criterion.Weight,
		MinScore:     criterion.MinScore,
		MaxScore:     criterion.MaxScore,
		IsRequired:   criterion.IsRequired,
		DisplayOrder: criterion.DisplayOrder,
	})
	if err != nil {
		return domain.EvaluationCriterion{}, fmt.Errorf("r.dao.InsertCriterion -> %w", err)
	}

	return r.criterionDaoToDomain(created), nil
}

func (r *EventRepository) FindCriterionByID(ctx context.Context, id uint) (domain.EvaluationCriterion, error) {
	found, err := r.dao.FindCriterionByID(ctx, id)
	if err != nil {
		return domain.EvaluationCriterion{}, fmt.Errorf("r.dao.FindCriterionByID -> %w", err)
	}

	return r.criterionDaoToDomain(found), nil
}

func (r *EventRepository) FindCriteria(ctx context.Context, eventID uint, commissionID *uint) ([]domain.EvaluationCriterion, error) {
	found, err := r.dao.FindCriteria(ctx, eventID, commissionID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindCriteria -> %w", err)
	}

	criteria := make([]domain.EvaluationCriterion, 0, len(found))
	for _, c := range found {
		criteria = append(criteria, r.criterionDaoToDomain(c))
	}

	return criteria, nil
}

func (r *EventRepository) FindAllCriteriaByEventID(ctx context.Context, eventID uint) ([]domain.EvaluationCriterion, error) {
	found, err := r.dao.FindAllCriteriaByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAllCriteriaByEventID -> %w", err)
	}

	criteria := make([]domain.EvaluationCriterion, 0, len(found))
	for _, c := range found {
		criteria = append(criteria, r.criterionDaoToDomain(c))
	}

	return criteria, nil
}

func (r *EventRepository) SavePolicy(ctx context.Context, policy domain.ScoringPolicy) (domain.ScoringPolicy, error) {
	saved, err := r.dao.UpsertPolicy(ctx, dao.ScoringPolicy{
		EventID:          policy.EventID,
		TrimFromCount:    policy.TrimFromCount,
		TrimCountHigh:    policy.TrimCountHigh,
		TrimCountLow:     policy.TrimCountLow,
		RoundingDecimals: policy.RoundingDecimals,
	})
	if err != nil {
		return domain.ScoringPolicy{}, fmt.Errorf("r.dao.UpsertPolicy -> %w", err)
	}

	return r.policyDaoToDomain(saved), nil
}

func (r *EventRepository) FindPolicyByEventID(ctx context.Context, eventID uint) (domain.ScoringPolicy, error) {
	found, err := r.dao.FindPolicyByEventID(ctx, eventID)
	if err != nil {
		return domain.ScoringPolicy{}, fmt.Errorf("r.dao.FindPolicyByEventID -> %w", err)
	}

	return r.policyDaoToDomain(found), nil
}

func (r *EventRepository) daoToDomain(e dao.Event) domain.Event {
	return domain.Event{
		ID:          e.ID,
		Name:        e.Name,
		Date:        e.Date,
		Location:    e.Location,
		Description: e.Description,
		OrganizerID: e.OrganizerID,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func (r *EventRepository) criterionDaoToDomain(c dao.EvaluationCriterion) domain.EvaluationCriterion {
	return domain.EvaluationCriterion{
		ID:           c.ID,
		EventID:      c.EventID,
		CommissionID: c.CommissionID,
		Name:         c.Name,
		Weight:       c.Weight,
		MinScore:     c.MinScore,
		MaxScore:     c.MaxScore,
		IsRequired:   c.IsRequired,
		DisplayOrder: c.DisplayOrder,
	}
}

func (r *EventRepository) policyDaoToDomain(p dao.ScoringPolicy) domain.ScoringPolicy {
	return domain.ScoringPolicy{
		ID:               p.ID,
		EventID:          p.EventID,
		TrimFromCount:    p.TrimFromCount,
		TrimCountHigh:    p.TrimCountHigh,
		TrimCountLow:     p.TrimCountLow,
		RoundingDecimals: p.RoundingDecimals,
	}
}
