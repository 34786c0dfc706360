package service

import (
	"context"
	"fmt"
	"time"

	"github.com/prodexpert/expertise-api/internal/domain"
	"github.com/prodexpert/expertise-api/internal/repository"
)

var (
	ErrSampleNotFound    = repository.ErrSampleNotFound
	ErrSampleCodeExists  = repository.ErrSampleCodeExists
	ErrSampleNumberTaken = repository.ErrSampleNumberTaken
	ErrInvalidTransition = domain.ErrInvalidTransition
)

type SampleRepository interface {
	Create(ctx context.Context, sample domain.ProductSample) (domain.ProductSample, error)
	FindByID(ctx context.Context, id uint) (domain.ProductSample, error)
	FindByEventID(ctx context.Context, eventID uint) ([]domain.ProductSample, error)
	Update(ctx context.Context, sample domain.ProductSample) (domain.ProductSample, error)
}

type SampleService struct {
	repo      SampleRepository
	eventRepo EventRepository
}

func NewSampleService(repo SampleRepository, eventRepo EventRepository) *SampleService {
	return &SampleService{
		repo:      repo,
		eventRepo: eventRepo,
	}
}

func (s *SampleService) CreateSample(ctx context.Context, sample domain.ProductSample) (domain.ProductSample, error) {
	if _, err := s.eventRepo.FindByID(ctx, sample.EventID); err != nil {
		return domain.ProductSample{}, fmt.Errorf("s.eventRepo.FindByID -> %w", err)
	}

	category, err := s.eventRepo.FindCategoryByID(ctx, sample.CategoryID)
	if err != nil {
		return domain.ProductSample{}, fmt.Errorf("s.eventRepo.FindCategoryByID -> %w", err)
	}
	if category.EventID != sample.EventID {
		return domain.ProductSample{}, ErrCategoryNotFound
	}

	sample.Status = domain.SampleStatusDraft

	created, err := s.repo.Create(ctx, sample)
	if err != nil {
		return domain.ProductSample{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *SampleService) GetSample(ctx context.Context, id uint) (domain.ProductSample, error) {
	sample, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.ProductSample{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return sample, nil
}

func (s *SampleService) GetEventSamples(ctx context.Context, eventID uint) ([]domain.ProductSample, error) {
	samples, err := s.repo.FindByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByEventID -> %w", err)
	}

	return samples, nil
}

func (s *SampleService) SubmitSample(ctx context.Context, id uint) (domain.ProductSample, error) {
	return s.transition(ctx, id, func(sample *domain.ProductSample) error {
		return sample.Submit()
	})
}

func (s *SampleService) ExcludeSample(ctx context.Context, id uint, reason string) (domain.ProductSample, error) {
	return s.transition(ctx, id, func(sample *domain.ProductSample) error {
		return sample.Exclude(reason, time.Now())
	})
}

func (s *SampleService) CompleteSample(ctx context.Context, id uint) (domain.ProductSample, error) {
	return s.transition(ctx, id, func(sample *domain.ProductSample) error {
		return sample.Complete()
	})
}

func (s *SampleService) transition(ctx context.Context, id uint, fn func(*domain.ProductSample) error) (domain.ProductSample, error) {
	sample, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.ProductSample{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if err := fn(&sample); err != nil {
		return domain.ProductSample{}, err
	}

	updated, err := s.repo.Update(ctx, sample)
	if err != nil {
		return domain.ProductSample{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}
