package training

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/hospiops/facilityhub/internal/platform/backend"
)

var testNow = time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)

func onDay(offsetDays int) backend.Date {
	return backend.NewDate(testNow.AddDate(0, 0, offsetDays))
}

type mockRepo struct {
	trainings      map[string]*Training
	participations map[string][]Participation
	nextID         int
}

func newMockRepo(trainings ...Training) *mockRepo {
	m := &mockRepo{
		trainings:      make(map[string]*Training),
		participations: make(map[string][]Participation),
		nextID:         1,
	}
	for i := range trainings {
		t := trainings[i]
		m.trainings[t.ID] = &t
	}
	return m
}

func (m *mockRepo) List(_ context.Context) ([]Training, error) {
	out := make([]Training, 0, len(m.trainings))
	for _, t := range m.trainings {
		out = append(out, *t)
	}
	return out, nil
}

func (m *mockRepo) GetByID(_ context.Context, id string) (*Training, error) {
	t, ok := m.trainings[id]
	if !ok {
		return nil, errors.New("training not found")
	}
	cp := *t
	return &cp, nil
}

func (m *mockRepo) Create(_ context.Context, t *Training) error {
	if t.ID == "" {
		t.ID = fmt.Sprintf("tr-%d", m.nextID)
		m.nextID++
	}
	cp := *t
	m.trainings[t.ID] = &cp
	return nil
}

func (m *mockRepo) Update(_ context.Context, t *Training) error {
	if _, ok := m.trainings[t.ID]; !ok {
		return errors.New("training not found")
	}
	cp := *t
	m.trainings[t.ID] = &cp
	return nil
}

func (m *mockRepo) ListParticipations(_ context.Context, trainingID string) ([]Participation, error) {
	return m.participations[trainingID], nil
}

func (m *mockRepo) CreateParticipation(_ context.Context, p *Participation) error {
	if p.ID == "" {
		p.ID = fmt.Sprintf("part-%d", m.nextID)
		m.nextID++
	}
	m.participations[p.TrainingID] = append(m.participations[p.TrainingID], *p)
	return nil
}

type mockCompetencyRepo struct {
	comps []Competency
}

func (m *mockCompetencyRepo) List(_ context.Context) ([]Competency, error) {
	return m.comps, nil
}

func (m *mockCompetencyRepo) Create(_ context.Context, c *Competency) error {
	m.comps = append(m.comps, *c)
	return nil
}

func newTestService(repo *mockRepo, comps *mockCompetencyRepo) *Service {
	svc := NewService(repo, comps, 30)
	svc.now = func() time.Time { return testNow }
	return svc
}

func TestCreateTrainingValidation(t *testing.T) {
	svc := newTestService(newMockRepo(), &mockCompetencyRepo{})

	if err := svc.Create(context.Background(), &Training{Title: "Incendie"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.Create(context.Background(), &Training{}); err == nil {
		t.Error("missing title must be rejected")
	}
	if err := svc.Create(context.Background(), &Training{Title: "x", CertificateRequired: true}); err == nil {
		t.Error("certificate without validity months must be rejected")
	}
}

func TestCertificateExpiry(t *testing.T) {
	training := Training{CertificateRequired: true, ValidityMonths: 12}
	passed := Participation{Passed: true, CompletedAt: onDay(0)}

	exp := CertificateExpiry(training, passed)
	if exp == nil {
		t.Fatal("expected an expiry date")
	}
	want := testNow.AddDate(0, 12, 0)
	if !exp.Equal(want) {
		t.Errorf("expected %v, got %v", want, exp)
	}

	if CertificateExpiry(training, Participation{Passed: false, CompletedAt: onDay(0)}) != nil {
		t.Error("failed participation must not carry an expiry")
	}
	if CertificateExpiry(Training{}, passed) != nil {
		t.Error("non-certificate training must not carry an expiry")
	}
	if CertificateExpiry(training, Participation{Passed: true}) != nil {
		t.Error("missing completion date must not carry an expiry")
	}
}

func TestParticipationsComputeCertificateStatus(t *testing.T) {
	repo := newMockRepo(Training{ID: "tr-1", Title: "Gestes d'urgence", CertificateRequired: true, ValidityMonths: 6})
	svc := newTestService(repo, &mockCompetencyRepo{})

	// Completed 8 months ago: certificate lapsed.
	expired := Participation{TrainingID: "tr-1", EmployeeID: "e1", Passed: true,
		CompletedAt: backend.NewDate(testNow.AddDate(0, -8, 0))}
	// Completed last month: still valid.
	valid := Participation{TrainingID: "tr-1", EmployeeID: "e2", Passed: true,
		CompletedAt: backend.NewDate(testNow.AddDate(0, -1, 0))}
	for _, p := range []Participation{expired, valid} {
		cp := p
		if err := svc.RecordParticipation(context.Background(), &cp); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	views, err := svc.Participations(context.Background(), "tr-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("expected 2 views, got %d", len(views))
	}
	if views[0].CertificateValid {
		t.Error("lapsed certificate must not be valid")
	}
	if !views[1].CertificateValid {
		t.Error("recent certificate must be valid")
	}
}

func TestRecordParticipationUnknownTraining(t *testing.T) {
	svc := newTestService(newMockRepo(), &mockCompetencyRepo{})
	p := Participation{TrainingID: "ghost", EmployeeID: "e1"}
	if err := svc.RecordParticipation(context.Background(), &p); err == nil {
		t.Error("unknown training must be rejected")
	}
}

func TestSummarize(t *testing.T) {
	repo := newMockRepo(
		Training{ID: "t1", Title: "a", Topic: "incendie", PlannedDate: onDay(5)},
		Training{ID: "t2", Title: "b", Topic: "hygiene", PlannedDate: onDay(-5)},
		Training{ID: "t3", Title: "c", Topic: "incendie"},
	)
	comps := &mockCompetencyRepo{comps: []Competency{
		{ID: "c1", ExpiryDate: onDay(-1)},
		{ID: "c2", ExpiryDate: onDay(10)},
		{ID: "c3", ExpiryDate: onDay(90)},
		{ID: "c4"},
	}}
	svc := newTestService(repo, comps)

	sum, err := svc.Summarize(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sum.Total != 3 {
		t.Errorf("expected 3 trainings, got %d", sum.Total)
	}
	if sum.Upcoming != 1 {
		t.Errorf("expected 1 upcoming, got %d", sum.Upcoming)
	}
	if sum.ExpiredCompetencies != 1 || sum.ExpiringCompetencies != 1 {
		t.Errorf("unexpected expiries: expired=%d expiring=%d", sum.ExpiredCompetencies, sum.ExpiringCompetencies)
	}
}
