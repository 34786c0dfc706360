package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/prodexpert/expertise-api/internal/domain"
	"github.com/prodexpert/expertise-api/internal/repository"
)

var (
	ErrDocumentNotFound = repository.ErrDocumentNotFound
	ErrDuplicateVersion = repository.ErrDuplicateVersion
	ErrNotLatestVersion = domain.ErrNotLatestVersion

	ErrSampleNotScored = errors.New("sample has no final score yet")
)

type DocumentRepository interface {
	NextNumber(ctx context.Context, kind domain.DocumentKind, eventID uint) (string, error)
	Create(ctx context.Context, document domain.ResultDocument) (domain.ResultDocument, error)
	FindByID(ctx context.Context, id uint) (domain.ResultDocument, error)
	FindLatestByNumber(ctx context.Context, number string) (domain.ResultDocument, error)
	FindAllByNumber(ctx context.Context, number string) ([]domain.ResultDocument, error)
	UpdateStatus(ctx context.Context, document domain.ResultDocument) (domain.ResultDocument, error)
}

// DocumentRenderer turns a generated document into a distributable
// artifact. Invoked after the generated status is set; this service only
// produces the data.
type DocumentRenderer interface {
	Render(ctx context.Context, document domain.ResultDocument) error
}

// Notifier is called after a document is sent. Delivery mechanics are out
// of scope here.
type Notifier interface {
	NotifySent(ctx context.Context, document domain.ResultDocument) error
}

// DocumentService maintains the append-only version chains of result
// documents (protocols and records).
type DocumentService struct {
	repo       DocumentRepository
	sampleRepo SampleRepository
	renderer   DocumentRenderer
	notifier   Notifier
}

func NewDocumentService(repo DocumentRepository, sampleRepo SampleRepository, renderer DocumentRenderer, notifier Notifier) *DocumentService {
	return &DocumentService{
		repo:       repo,
		sampleRepo: sampleRepo,
		renderer:   renderer,
		notifier:   notifier,
	}
}

// CreateDocument creates version 1 of a protocol or record for a scored
// sample, with a freshly allocated event-scoped document number.
func (s *DocumentService) CreateDocument(ctx context.Context, kind domain.DocumentKind, sampleID, userID uint) (domain.ResultDocument, error) {
	sample, err := s.sampleRepo.FindByID(ctx, sampleID)
	if err != nil {
		return domain.ResultDocument{}, fmt.Errorf("s.sampleRepo.FindByID -> %w", err)
	}
	if sample.FinalScore == nil {
		return domain.ResultDocument{}, ErrSampleNotScored
	}

	number, err := s.repo.NextNumber(ctx, kind, sample.EventID)
	if err != nil {
		return domain.ResultDocument{}, fmt.Errorf("s.repo.NextNumber -> %w", err)
	}

	created, err := s.repo.Create(ctx, domain.NewResultDocument(kind, sample, number, *sample.FinalScore, userID))
	if err != nil {
		return domain.ResultDocument{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

// CreateNewVersion appends the next version of the document, snapshotting
// the sample's current final score. The new version always derives from
// the latest one, so the chain stays linear.
func (s *DocumentService) CreateNewVersion(ctx context.Context, documentID, userID uint) (domain.ResultDocument, error) {
	document, err := s.repo.FindByID(ctx, documentID)
	if err != nil {
		return domain.ResultDocument{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	latest, err := s.repo.FindLatestByNumber(ctx, document.Number)
	if err != nil {
		return domain.ResultDocument{}, fmt.Errorf("s.repo.FindLatestByNumber -> %w", err)
	}

	sample, err := s.sampleRepo.FindByID(ctx, latest.SampleID)
	if err != nil {
		return domain.ResultDocument{}, fmt.Errorf("s.sampleRepo.FindByID -> %w", err)
	}
	if sample.FinalScore == nil {
		return domain.ResultDocument{}, ErrSampleNotScored
	}

	created, err := s.repo.Create(ctx, latest.NewVersion(*sample.FinalScore, userID))
	if err != nil {
		return domain.ResultDocument{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *DocumentService) GetDocument(ctx context.Context, id uint) (domain.ResultDocument, error) {
	document, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.ResultDocument{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return document, nil
}

// GetVersionChain returns the document's versions from latest back to
// version 1, validating the chain on the way.
func (s *DocumentService) GetVersionChain(ctx context.Context, id uint) ([]domain.ResultDocument, error) {
	document, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	versions, err := s.repo.FindAllByNumber(ctx, document.Number)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAllByNumber -> %w", err)
	}

	chain, err := domain.OrderVersionChain(versions)
	if err != nil {
		return nil, err
	}

	return chain, nil
}

// GenerateDocument moves the document from draft to generated and hands it
// to the renderer.
func (s *DocumentService) GenerateDocument(ctx context.Context, id uint) (domain.ResultDocument, error) {
	document, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.ResultDocument{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if err := document.MarkGenerated(time.Now()); err != nil {
		return domain.ResultDocument{}, err
	}

	updated, err := s.repo.UpdateStatus(ctx, document)
	if err != nil {
		return domain.ResultDocument{}, fmt.Errorf("s.repo.UpdateStatus -> %w", err)
	}

	if err := s.renderer.Render(ctx, updated); err != nil {
		return domain.ResultDocument{}, fmt.Errorf("s.renderer.Render -> %w", err)
	}

	return updated, nil
}

// SendDocument transitions the document to sent. Only the latest version
// of a document number may be sent; superseded versions are permanently
// inert.
func (s *DocumentService) SendDocument(ctx context.Context, id uint) (domain.ResultDocument, error) {
	document, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.ResultDocument{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	latest, err := s.repo.FindLatestByNumber(ctx, document.Number)
	if err != nil {
		return domain.ResultDocument{}, fmt.Errorf("s.repo.FindLatestByNumber -> %w", err)
	}
	if latest.ID != document.ID {
		return domain.ResultDocument{}, ErrNotLatestVersion
	}

	if err := document.MarkSent(time.Now()); err != nil {
		return domain.ResultDocument{}, err
	}

	updated, err := s.repo.UpdateStatus(ctx, document)
	if err != nil {
		return domain.ResultDocument{}, fmt.Errorf("s.repo.UpdateStatus -> %w", err)
	}

	if err := s.notifier.NotifySent(ctx, updated); err != nil {
		zap.L().Warn("document sent but notification failed",
			zap.Uint("document_id", updated.ID),
			zap.Error(err))
	}

	return updated, nil
}

func (s *DocumentService) AcknowledgeDocument(ctx context.Context, id uint) (domain.ResultDocument, error) {
	document, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.ResultDocument{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if err := document.MarkAcknowledged(time.Now()); err != nil {
		return domain.ResultDocument{}, err
	}

	updated, err := s.repo.UpdateStatus(ctx, document)
	if err != nil {
		return domain.ResultDocument{}, fmt.Errorf("s.repo.UpdateStatus -> %w", err)
	}

	return updated, nil
}
