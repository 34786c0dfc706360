package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/prodexpert/expertise-api/internal/domain"
	"github.com/prodexpert/expertise-api/internal/repository"
)

var (
	ErrEventNotFound     = repository.ErrEventNotFound
	ErrCategoryNotFound  = repository.ErrCategoryNotFound
	ErrCriterionNotFound = repository.ErrCriterionNotFound
)

type EventRepository interface {
	Create(ctx context.Context, event domain.Event) (domain.Event, error)
	FindByID(ctx context.Context, id uint) (domain.Event, error)
	FindAll(ctx context.Context) ([]domain.Event, error)
	CreateCategory(ctx context.Context, category domain.Category) (domain.Category, error)
	FindCategoryByID(ctx context.Context, id uint) (domain.Category, error)
	CreateCriterion(ctx context.Context, criterion domain.EvaluationCriterion) (domain.EvaluationCriterion, error)
	FindCriterionByID(ctx context.Context, id uint) (domain.EvaluationCriterion, error)
	FindCriteria(ctx context.Context, eventID uint, commissionID *uint) ([]domain.EvaluationCriterion, error)
	FindAllCriteriaByEventID(ctx context.Context, eventID uint) ([]domain.EvaluationCriterion, error)
	SavePolicy(ctx context.Context, policy domain.ScoringPolicy) (domain.ScoringPolicy, error)
	FindPolicyByEventID(ctx context.Context, eventID uint) (domain.ScoringPolicy, error)
}

type EventService struct {
	repo EventRepository
}

func NewEventService(repo EventRepository) *EventService {
	return &EventService{
		repo: repo,
	}
}

// CreateEvent persists the event together with the default scoring policy,
// so aggregation always finds one.
func (s *EventService) CreateEvent(ctx context.Context, event domain.Event) (domain.Event, error) {
	created, err := s.repo.Create(ctx, event)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	if _, err = s.repo.SavePolicy(ctx, domain.DefaultScoringPolicy(created.ID)); err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.SavePolicy -> %w", err)
	}

	return created, nil
}

func (s *EventService) GetEvent(ctx context.Context, id uint) (domain.Event, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return event, nil
}

func (s *EventService) GetEvents(ctx context.Context) ([]domain.Event, error) {
	events, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return events, nil
}

func (s *EventService) AddCategory(ctx context.Context, category domain.Category) (domain.Category, error) {
	if _, err := s.repo.FindByID(ctx, category.EventID); err != nil {
		return domain.Category{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	created, err := s.repo.CreateCategory(ctx, category)
	if err != nil {
		return domain.Category{}, fmt.Errorf("s.repo.CreateCategory -> %w", err)
	}

	return created, nil
}

func (s *EventService) AddCriterion(ctx context.Context, criterion domain.EvaluationCriterion) (domain.EvaluationCriterion, error) {
	if _, err := s.repo.FindByID(ctx, criterion.EventID); err != nil {
		return domain.EvaluationCriterion{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	created, err := s.repo.CreateCriterion(ctx, criterion)
	if err != nil {
		return domain.EvaluationCriterion{}, fmt.Errorf("s.repo.CreateCriterion -> %w", err)
	}

	return created, nil
}

func (s *EventService) GetCriteria(ctx context.Context, eventID uint, commissionID *uint) ([]domain.EvaluationCriterion, error) {
	criteria, err := s.repo.FindCriteria(ctx, eventID, commissionID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindCriteria -> %w", err)
	}

	return criteria, nil
}

func (s *EventService) SetScoringPolicy(ctx context.Context, policy domain.ScoringPolicy) (domain.ScoringPolicy, error) {
	if _, err := s.repo.FindByID(ctx, policy.EventID); err != nil {
		return domain.ScoringPolicy{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	saved, err := s.repo.SavePolicy(ctx, policy)
	if err != nil {
		return domain.ScoringPolicy{}, fmt.Errorf("s.repo.SavePolicy -> %w", err)
	}

	return saved, nil
}

// GetScoringPolicy falls back to the default policy when the event has
// none stored.
func (s *EventService) GetScoringPolicy(ctx context.Context, eventID uint) (domain.ScoringPolicy, error) {
	policy, err := s.repo.FindPolicyByEventID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrPolicyNotFound) {
			return domain.DefaultScoringPolicy(eventID), nil
		}

		return domain.ScoringPolicy{}, fmt.Errorf("s.repo.FindPolicyByEventID -> %w", err)
	}

	return policy, nil
}
