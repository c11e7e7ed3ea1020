package risk

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

type mockRepo struct {
	risks  map[string]*Risk
	nextID int
}

func newMockRepo(risks ...Risk) *mockRepo {
	m := &mockRepo{risks: make(map[string]*Risk), nextID: 1}
	for i := range risks {
		r := risks[i]
		m.risks[r.ID] = &r
	}
	return m
}

func (m *mockRepo) List(_ context.Context) ([]Risk, error) {
	out := make([]Risk, 0, len(m.risks))
	for _, r := range m.risks {
		out = append(out, *r)
	}
	return out, nil
}

func (m *mockRepo) GetByID(_ context.Context, id string) (*Risk, error) {
	r, ok := m.risks[id]
	if !ok {
		return nil, errors.New("risk not found")
	}
	cp := *r
	return &cp, nil
}

func (m *mockRepo) Create(_ context.Context, r *Risk) error {
	if r.ID == "" {
		r.ID = fmt.Sprintf("risk-%d", m.nextID)
		m.nextID++
	}
	cp := *r
	m.risks[r.ID] = &cp
	return nil
}

func (m *mockRepo) Update(_ context.Context, r *Risk) error {
	if _, ok := m.risks[r.ID]; !ok {
		return errors.New("risk not found")
	}
	cp := *r
	m.risks[r.ID] = &cp
	return nil
}

func TestCreateDerivesLevels(t *testing.T) {
	svc := NewService(newMockRepo())

	r := &Risk{
		Title:       "Chute de plain-pied",
		Probability: ProbMoyenne,
		Severity:    SevMajeure,
		Level:       "forge", // must be overwritten
	}
	if err := svc.Create(context.Background(), r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Level != LevelMoyen {
		t.Errorf("level must be derived, got %q", r.Level)
	}
}

func TestCreateValidation(t *testing.T) {
	svc := NewService(newMockRepo())

	tests := []struct {
		name string
		r    Risk
	}{
		{"missing title", Risk{Probability: ProbFaible, Severity: SevMineure}},
		{"bad probability", Risk{Title: "x", Probability: "souvent", Severity: SevMineure}},
		{"bad severity", Risk{Title: "x", Probability: ProbFaible, Severity: "grave"}},
		{"half residual pair", Risk{Title: "x", Probability: ProbFaible, Severity: SevMineure, ResidualProbability: ProbFaible}},
		{"bad residual severity", Risk{Title: "x", Probability: ProbFaible, Severity: SevMineure, ResidualProbability: ProbFaible, ResidualSeverity: "grave"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := tt.r
			if err := svc.Create(context.Background(), &r); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	repo := newMockRepo(
		Risk{ID: "r1", Level: LevelTresEleve, ResidualLevel: LevelMoyen, Category: "securite"},
		Risk{ID: "r2", Level: LevelEleve, Category: "hygiene"},
		Risk{ID: "r3", Level: LevelFaible, Category: "securite"},
		Risk{ID: "r4", Level: LevelMoyen, ResidualLevel: LevelFaible, Category: "hygiene"},
	)
	svc := NewService(repo)

	sum, err := svc.Summarize(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sum.Total != 4 {
		t.Errorf("expected total 4, got %d", sum.Total)
	}
	if sum.Critical != 2 {
		t.Errorf("expected 2 critical, got %d", sum.Critical)
	}
	if sum.MitigatedShare != "50.0" {
		t.Errorf("expected mitigated share 50.0, got %q", sum.MitigatedShare)
	}
}
