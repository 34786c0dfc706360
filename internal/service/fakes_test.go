package service

import (
	"context"
	"fmt"

	"github.com/prodexpert/expertise-api/internal/domain"
	"github.com/prodexpert/expertise-api/internal/repository"
)

// Map-backed fakes for the repository interfaces, mirroring the sentinel
// errors the real implementations return.

type fakeSampleRepo struct {
	samples map[uint]domain.ProductSample
	nextID  uint
}

func newFakeSampleRepo() *fakeSampleRepo {
	return &fakeSampleRepo{samples: make(map[uint]domain.ProductSample)}
}

func (f *fakeSampleRepo) Create(_ context.Context, sample domain.ProductSample) (domain.ProductSample, error) {
	f.nextID++
	sample.ID = f.nextID
	f.samples[sample.ID] = sample

	return sample, nil
}

func (f *fakeSampleRepo) FindByID(_ context.Context, id uint) (domain.ProductSample, error) {
	sample, ok := f.samples[id]
	if !ok {
		return domain.ProductSample{}, repository.ErrSampleNotFound
	}

	return sample, nil
}

func (f *fakeSampleRepo) FindByEventID(_ context.Context, eventID uint) ([]domain.ProductSample, error) {
	var samples []domain.ProductSample
	for _, s := range f.samples {
		if s.EventID == eventID {
			samples = append(samples, s)
		}
	}

	return samples, nil
}

func (f *fakeSampleRepo) Update(_ context.Context, sample domain.ProductSample) (domain.ProductSample, error) {
	if _, ok := f.samples[sample.ID]; !ok {
		return domain.ProductSample{}, repository.ErrSampleNotFound
	}
	f.samples[sample.ID] = sample

	return sample, nil
}

func (f *fakeSampleRepo) add(sample domain.ProductSample) domain.ProductSample {
	f.nextID++
	sample.ID = f.nextID
	f.samples[sample.ID] = sample

	return sample
}

type fakeEventRepo struct {
	events     map[uint]domain.Event
	categories map[uint]domain.Category
	criteria   map[uint]domain.EvaluationCriterion
	policies   map[uint]domain.ScoringPolicy
	nextID     uint
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{
		events:     make(map[uint]domain.Event),
		categories: make(map[uint]domain.Category),
		criteria:   make(map[uint]domain.EvaluationCriterion),
		policies:   make(map[uint]domain.ScoringPolicy),
	}
}

func (f *fakeEventRepo) Create(_ context.Context, event domain.Event) (domain.Event, error) {
	f.nextID++
	event.ID = f.nextID
	f.events[event.ID] = event

	return event, nil
}

func (f *fakeEventRepo) FindByID(_ context.Context, id uint) (domain.Event, error) {
	event, ok := f.events[id]
	if !ok {
		return domain.Event{}, repository.ErrEventNotFound
	}

	return event, nil
}

func (f *fakeEventRepo) FindAll(_ context.Context) ([]domain.Event, error) {
	var events []domain.Event
	for _, e := range f.events {
		events = append(events, e)
	}

	return events, nil
}

func (f *fakeEventRepo) CreateCategory(_ context.Context, category domain.Category) (domain.Category, error) {
	f.nextID++
	category.ID = f.nextID
	f.categories[category.ID] = category

	return category, nil
}

func (f *fakeEventRepo) FindCategoryByID(_ context.Context, id uint) (domain.Category, error) {
	category, ok := f.categories[id]
	if !ok {
		return domain.Category{}, repository.ErrCategoryNotFound
	}

	return category, nil
}

func (f *fakeEventRepo) CreateCriterion(_ context.Context, criterion domain.EvaluationCriterion) (domain.EvaluationCriterion, error) {
	f.nextID++
	criterion.ID = f.nextID
	f.criteria[criterion.ID] = criterion

	return criterion, nil
}

func (f *fakeEventRepo) FindCriterionByID(_ context.Context, id uint) (domain.EvaluationCriterion, error) {
	criterion, ok := f.criteria[id]
	if !ok {
		return domain.EvaluationCriterion{}, repository.ErrCriterionNotFound
	}

	return criterion, nil
}

func (f *fakeEventRepo) FindCriteria(_ context.Context, eventID uint, commissionID *uint) ([]domain.EvaluationCriterion, error) {
	var criteria []domain.EvaluationCriterion
	for _, c := range f.criteria {
		if c.EventID != eventID {
			continue
		}
		if c.CommissionID != nil && (commissionID == nil || *c.CommissionID != *commissionID) {
			continue
		}
		criteria = append(criteria, c)
	}

	return criteria, nil
}

func (f *fakeEventRepo) FindAllCriteriaByEventID(_ context.Context, eventID uint) ([]domain.EvaluationCriterion, error) {
	var criteria []domain.EvaluationCriterion
	for _, c := range f.criteria {
		if c.EventID == eventID {
			criteria = append(criteria, c)
		}
	}

	return criteria, nil
}

func (f *fakeEventRepo) SavePolicy(_ context.Context, policy domain.ScoringPolicy) (domain.ScoringPolicy, error) {
	f.policies[policy.EventID] = policy

	return policy, nil
}

func (f *fakeEventRepo) FindPolicyByEventID(_ context.Context, eventID uint) (domain.ScoringPolicy, error) {
	policy, ok := f.policies[eventID]
	if !ok {
		return domain.ScoringPolicy{}, repository.ErrPolicyNotFound
	}

	return policy, nil
}

type fakeCommissionRepo struct {
	commissions map[uint]domain.Commission
	members     map[uint]domain.CommissionMember
	assignments map[[2]uint]bool
	nextID      uint
}

func newFakeCommissionRepo() *fakeCommissionRepo {
	return &fakeCommissionRepo{
		commissions: make(map[uint]domain.Commission),
		members:     make(map[uint]domain.CommissionMember),
		assignments: make(map[[2]uint]bool),
	}
}

func (f *fakeCommissionRepo) Create(_ context.Context, commission domain.Commission) (domain.Commission, error) {
	f.nextID++
	commission.ID = f.nextID
	for i := range commission.Members {
		f.nextID++
		commission.Members[i].ID = f.nextID
		commission.Members[i].CommissionID = commission.ID
		f.members[f.nextID] = commission.Members[i]
	}
	f.commissions[commission.ID] = commission

	return commission, nil
}

func (f *fakeCommissionRepo) FindByID(_ context.Context, id uint) (domain.Commission, error) {
	commission, ok := f.commissions[id]
	if !ok {
		return domain.Commission{}, repository.ErrCommissionNotFound
	}

	commission.Members = nil
	for _, m := range f.members {
		if m.CommissionID == id {
			commission.Members = append(commission.Members, m)
		}
	}

	return commission, nil
}

func (f *fakeCommissionRepo) AddMember(_ context.Context, member domain.CommissionMember) (domain.CommissionMember, error) {
	f.nextID++
	member.ID = f.nextID
	f.members[member.ID] = member

	return member, nil
}

func (f *fakeCommissionRepo) FindMemberByID(_ context.Context, id uint) (domain.CommissionMember, error) {
	member, ok := f.members[id]
	if !ok {
		return domain.CommissionMember{}, repository.ErrMemberNotFound
	}

	return member, nil
}

func (f *fakeCommissionRepo) UpdateMember(_ context.Context, member domain.CommissionMember) (domain.CommissionMember, error) {
	if _, ok := f.members[member.ID]; !ok {
		return domain.CommissionMember{}, repository.ErrMemberNotFound
	}
	f.members[member.ID] = member

	return member, nil
}

func (f *fakeCommissionRepo) AssignCategory(_ context.Context, commissionID, categoryID uint) error {
	f.assignments[[2]uint{commissionID, categoryID}] = true

	return nil
}

func (f *fakeCommissionRepo) IsAssignedToCategory(_ context.Context, commissionID, categoryID uint) (bool, error) {
	return f.assignments[[2]uint{commissionID, categoryID}], nil
}

type fakeEvaluationRepo struct {
	sessions    map[uint]domain.EvaluationSession
	evaluations map[uint]domain.ExpertEvaluation
	nextID      uint
}

func newFakeEvaluationRepo() *fakeEvaluationRepo {
	return &fakeEvaluationRepo{
		sessions:    make(map[uint]domain.EvaluationSession),
		evaluations: make(map[uint]domain.ExpertEvaluation),
	}
}

func (f *fakeEvaluationRepo) CreateActiveSession(_ context.Context, session domain.EvaluationSession) (domain.EvaluationSession, error) {
	for _, s := range f.sessions {
		if s.SampleID == session.SampleID && s.Status == domain.SessionStatusActive {
			return domain.EvaluationSession{}, repository.ErrSessionAlreadyActive
		}
	}

	f.nextID++
	session.ID = f.nextID
	f.sessions[session.ID] = session

	return session, nil
}

func (f *fakeEvaluationRepo) FindSessionByID(_ context.Context, id uint) (domain.EvaluationSession, error) {
	session, ok := f.sessions[id]
	if !ok {
		return domain.EvaluationSession{}, repository.ErrSessionNotFound
	}

	return session, nil
}

func (f *fakeEvaluationRepo) FindSessionsBySampleID(_ context.Context, sampleID uint) ([]domain.EvaluationSession, error) {
	var sessions []domain.EvaluationSession
	for _, s := range f.sessions {
		if s.SampleID == sampleID {
			sessions = append(sessions, s)
		}
	}

	return sessions, nil
}

func (f *fakeEvaluationRepo) UpdateSession(_ context.Context, session domain.EvaluationSession) (domain.EvaluationSession, error) {
	if _, ok := f.sessions[session.ID]; !ok {
		return domain.EvaluationSession{}, repository.ErrSessionNotFound
	}
	f.sessions[session.ID] = session

	return session, nil
}

func (f *fakeEvaluationRepo) CreateEvaluation(_ context.Context, evaluation domain.ExpertEvaluation) (domain.ExpertEvaluation, error) {
	for _, e := range f.evaluations {
		if e.SessionID == evaluation.SessionID && e.MemberID == evaluation.MemberID {
			return domain.ExpertEvaluation{}, repository.ErrDuplicateEvaluation
		}
	}

	f.nextID++
	evaluation.ID = f.nextID
	f.evaluations[evaluation.ID] = evaluation

	return evaluation, nil
}

func (f *fakeEvaluationRepo) FindEvaluationByID(_ context.Context, id uint) (domain.ExpertEvaluation, error) {
	evaluation, ok := f.evaluations[id]
	if !ok {
		return domain.ExpertEvaluation{}, repository.ErrEvaluationNotFound
	}

	return evaluation, nil
}

func (f *fakeEvaluationRepo) FindEvaluationBySessionAndMember(_ context.Context, sessionID, memberID uint) (domain.ExpertEvaluation, error) {
	for _, e := range f.evaluations {
		if e.SessionID == sessionID && e.MemberID == memberID {
			return e, nil
		}
	}

	return domain.ExpertEvaluation{}, repository.ErrEvaluationNotFound
}

// FindSubmittedBySampleID mirrors the SQL join: only submitted evaluations
// of completed sessions count.
func (f *fakeEvaluationRepo) FindSubmittedBySampleID(_ context.Context, sampleID uint) ([]domain.ExpertEvaluation, error) {
	var evaluations []domain.ExpertEvaluation
	for _, e := range f.evaluations {
		if e.SampleID != sampleID || e.SubmittedAt == nil {
			continue
		}
		session, ok := f.sessions[e.SessionID]
		if !ok || session.Status != domain.SessionStatusCompleted {
			continue
		}
		evaluations = append(evaluations, e)
	}

	return evaluations, nil
}

func (f *fakeEvaluationRepo) UpdateEvaluation(_ context.Context, evaluation domain.ExpertEvaluation) (domain.ExpertEvaluation, error) {
	if _, ok := f.evaluations[evaluation.ID]; !ok {
		return domain.ExpertEvaluation{}, repository.ErrEvaluationNotFound
	}
	f.evaluations[evaluation.ID] = evaluation

	return evaluation, nil
}

type fakeDocumentRepo struct {
	documents map[uint]domain.ResultDocument
	sequences map[string]int
	nextID    uint
}

func newFakeDocumentRepo() *fakeDocumentRepo {
	return &fakeDocumentRepo{
		documents: make(map[uint]domain.ResultDocument),
		sequences: make(map[string]int),
	}
}

func (f *fakeDocumentRepo) NextNumber(_ context.Context, kind domain.DocumentKind, eventID uint) (string, error) {
	prefix := "P"
	if kind == domain.DocumentKindRecord {
		prefix = "R"
	}
	key := string(kind)
	f.sequences[key]++

	return fmt.Sprintf("%v-%d-%04d", prefix, eventID, f.sequences[key]), nil
}

func (f *fakeDocumentRepo) Create(_ context.Context, document domain.ResultDocument) (domain.ResultDocument, error) {
	for _, d := range f.documents {
		if d.Number == document.Number && d.Version == document.Version {
			return domain.ResultDocument{}, repository.ErrDuplicateVersion
		}
	}

	f.nextID++
	document.ID = f.nextID
	f.documents[document.ID] = document

	return document, nil
}

func (f *fakeDocumentRepo) FindByID(_ context.Context, id uint) (domain.ResultDocument, error) {
	document, ok := f.documents[id]
	if !ok {
		return domain.ResultDocument{}, repository.ErrDocumentNotFound
	}

	return document, nil
}

func (f *fakeDocumentRepo) FindLatestByNumber(_ context.Context, number string) (domain.ResultDocument, error) {
	var latest domain.ResultDocument
	found := false
	for _, d := range f.documents {
		if d.Number == number && (!found || d.Version > latest.Version) {
			latest = d
			found = true
		}
	}
	if !found {
		return domain.ResultDocument{}, repository.ErrDocumentNotFound
	}

	return latest, nil
}

func (f *fakeDocumentRepo) FindAllByNumber(_ context.Context, number string) ([]domain.ResultDocument, error) {
	var documents []domain.ResultDocument
	for _, d := range f.documents {
		if d.Number == number {
			documents = append(documents, d)
		}
	}

	return documents, nil
}

func (f *fakeDocumentRepo) UpdateStatus(_ context.Context, document domain.ResultDocument) (domain.ResultDocument, error) {
	if _, ok := f.documents[document.ID]; !ok {
		return domain.ResultDocument{}, repository.ErrDocumentNotFound
	}
	f.documents[document.ID] = document

	return document, nil
}
