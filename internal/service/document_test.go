package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prodexpert/expertise-api/internal/domain"
)

type recordingRenderer struct {
	rendered []domain.ResultDocument
	err      error
}

func (r *recordingRenderer) Render(_ context.Context, document domain.ResultDocument) error {
	if r.err != nil {
		return r.err
	}
	r.rendered = append(r.rendered, document)

	return nil
}

type recordingNotifier struct {
	notified []domain.ResultDocument
	err      error
}

func (n *recordingNotifier) NotifySent(_ context.Context, document domain.ResultDocument) error {
	if n.err != nil {
		return n.err
	}
	n.notified = append(n.notified, document)

	return nil
}

type documentFixture struct {
	svc        *DocumentService
	repo       *fakeDocumentRepo
	sampleRepo *fakeSampleRepo
	renderer   *recordingRenderer
	notifier   *recordingNotifier
	sample     domain.ProductSample
}

func newDocumentFixture(t *testing.T) *documentFixture {
	t.Helper()

	repo := newFakeDocumentRepo()
	sampleRepo := newFakeSampleRepo()
	renderer := &recordingRenderer{}
	notifier := &recordingNotifier{}

	score := 7.5
	sample := sampleRepo.add(domain.ProductSample{
		EventID:     3,
		ApplicantID: 42,
		Status:      domain.SampleStatusEvaluated,
		FinalScore:  &score,
	})

	return &documentFixture{
		svc:        NewDocumentService(repo, sampleRepo, renderer, notifier),
		repo:       repo,
		sampleRepo: sampleRepo,
		renderer:   renderer,
		notifier:   notifier,
		sample:     sample,
	}
}

func TestDocumentService_CreateDocument(t *testing.T) {
	fx := newDocumentFixture(t)

	document, err := fx.svc.CreateDocument(context.Background(), domain.DocumentKindProtocol, fx.sample.ID, 1)
	require.NoError(t, err)

	assert.Equal(t, 1, document.Version)
	assert.Equal(t, domain.DocumentStatusDraft, document.Status)
	assert.Equal(t, "P-3-0001", document.Number)
	assert.Equal(t, 7.5, document.FinalScore)
	assert.Equal(t, fx.sample.ApplicantID, document.ApplicantID)
}

func TestDocumentService_CreateDocument_UnscoredSample(t *testing.T) {
	fx := newDocumentFixture(t)

	unscored := fx.sampleRepo.add(domain.ProductSample{Status: domain.SampleStatusSubmitted})

	_, err := fx.svc.CreateDocument(context.Background(), domain.DocumentKindProtocol, unscored.ID, 1)
	assert.ErrorIs(t, err, ErrSampleNotScored)
}

func TestDocumentService_CreateNewVersion(t *testing.T) {
	fx := newDocumentFixture(t)

	v1, err := fx.svc.CreateDocument(context.Background(), domain.DocumentKindProtocol, fx.sample.ID, 1)
	require.NoError(t, err)

	// The sample was re-scored in the meantime.
	rescored := fx.sample
	score := 8.25
	rescored.FinalScore = &score
	_, err = fx.sampleRepo.Update(context.Background(), rescored)
	require.NoError(t, err)

	v2, err := fx.svc.CreateNewVersion(context.Background(), v1.ID, 2)
	require.NoError(t, err)

	assert.Equal(t, v1.Number, v2.Number)
	assert.Equal(t, 2, v2.Version)
	require.NotNil(t, v2.PreviousVersionID)
	assert.Equal(t, v1.ID, *v2.PreviousVersionID)
	assert.Equal(t, 8.25, v2.FinalScore)

	// A third version derives from v2 even when created off the v1 ID.
	v3, err := fx.svc.CreateNewVersion(context.Background(), v1.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, v3.Version)
	assert.Equal(t, v2.ID, *v3.PreviousVersionID)
}

func TestDocumentService_GetVersionChain(t *testing.T) {
	fx := newDocumentFixture(t)

	v1, err := fx.svc.CreateDocument(context.Background(), domain.DocumentKindRecord, fx.sample.ID, 1)
	require.NoError(t, err)
	v2, err := fx.svc.CreateNewVersion(context.Background(), v1.ID, 1)
	require.NoError(t, err)
	_, err = fx.svc.CreateNewVersion(context.Background(), v2.ID, 1)
	require.NoError(t, err)

	chain, err := fx.svc.GetVersionChain(context.Background(), v1.ID)
	require.NoError(t, err)
	require.Len(t, chain, 3)
	assert.Equal(t, 3, chain[0].Version)
	assert.Equal(t, 1, chain[2].Version)
}

func TestDocumentService_GenerateDocument(t *testing.T) {
	fx := newDocumentFixture(t)

	document, err := fx.svc.CreateDocument(context.Background(), domain.DocumentKindProtocol, fx.sample.ID, 1)
	require.NoError(t, err)

	generated, err := fx.svc.GenerateDocument(context.Background(), document.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.DocumentStatusGenerated, generated.Status)
	require.Len(t, fx.renderer.rendered, 1)

	_, err = fx.svc.GenerateDocument(context.Background(), document.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidDocumentTransition)
}

func TestDocumentService_SendDocument_OnlyLatestVersion(t *testing.T) {
	fx := newDocumentFixture(t)

	v1, err := fx.svc.CreateDocument(context.Background(), domain.DocumentKindProtocol, fx.sample.ID, 1)
	require.NoError(t, err)
	_, err = fx.svc.GenerateDocument(context.Background(), v1.ID)
	require.NoError(t, err)

	v2, err := fx.svc.CreateNewVersion(context.Background(), v1.ID, 1)
	require.NoError(t, err)

	// The superseded generated version is permanently inert.
	_, err = fx.svc.SendDocument(context.Background(), v1.ID)
	assert.ErrorIs(t, err, ErrNotLatestVersion)

	_, err = fx.svc.GenerateDocument(context.Background(), v2.ID)
	require.NoError(t, err)

	sent, err := fx.svc.SendDocument(context.Background(), v2.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.DocumentStatusSent, sent.Status)
	require.Len(t, fx.notifier.notified, 1)
}

func TestDocumentService_SendDocument_NotifierFailureIsNotFatal(t *testing.T) {
	fx := newDocumentFixture(t)
	fx.notifier.err = errors.New("smtp down")

	document, err := fx.svc.CreateDocument(context.Background(), domain.DocumentKindProtocol, fx.sample.ID, 1)
	require.NoError(t, err)
	_, err = fx.svc.GenerateDocument(context.Background(), document.ID)
	require.NoError(t, err)

	sent, err := fx.svc.SendDocument(context.Background(), document.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.DocumentStatusSent, sent.Status)
}

func TestDocumentService_AcknowledgeDocument(t *testing.T) {
	fx := newDocumentFixture(t)

	document, err := fx.svc.CreateDocument(context.Background(), domain.DocumentKindProtocol, fx.sample.ID, 1)
	require.NoError(t, err)

	_, err = fx.svc.AcknowledgeDocument(context.Background(), document.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidDocumentTransition)

	_, err = fx.svc.GenerateDocument(context.Background(), document.ID)
	require.NoError(t, err)
	_, err = fx.svc.SendDocument(context.Background(), document.ID)
	require.NoError(t, err)

	acked, err := fx.svc.AcknowledgeDocument(context.Background(), document.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.DocumentStatusAcknowledged, acked.Status)
	require.NotNil(t, acked.AcknowledgedAt)
}
