package audit

import (
	"context"
	"fmt"

	"github.com/hospiops/facilityhub/pkg/kpi"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]Audit, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*Audit, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, a *Audit) error {
	if a.Title == "" {
		return fmt.Errorf("l'intitulé de l'audit est obligatoire")
	}
	for _, f := range a.Findings {
		if !ValidFindingType(f.Type) {
			return fmt.Errorf("type de constat invalide: %q", f.Type)
		}
	}
	a.SyncCounts()
	return s.repo.Create(ctx, a)
}

func (s *Service) Update(ctx context.Context, a *Audit) error {
	if a.ID == "" {
		return fmt.Errorf("l'identifiant est obligatoire")
	}
	for _, f := range a.Findings {
		if !ValidFindingType(f.Type) {
			return fmt.Errorf("type de constat invalide: %q", f.Type)
		}
	}
	a.SyncCounts()
	return s.repo.Update(ctx, a)
}

// AddFinding appends a finding to an audit and re-syncs the counters.
func (s *Service) AddFinding(ctx context.Context, auditID string, f Finding) (*Audit, error) {
	if !ValidFindingType(f.Type) {
		return nil, fmt.Errorf("type de constat invalide: %q", f.Type)
	}
	if f.Description == "" {
		return nil, fmt.Errorf("la description du constat est obligatoire")
	}
	a, err := s.repo.GetByID(ctx, auditID)
	if err != nil {
		return nil, err
	}
	a.Findings = append(a.Findings, f)
	a.SyncCounts()
	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// DeleteFinding removes the finding at index and re-syncs the counters.
func (s *Service) DeleteFinding(ctx context.Context, auditID string, index int) (*Audit, error) {
	a, err := s.repo.GetByID(ctx, auditID)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(a.Findings) {
		return nil, fmt.Errorf("constat %d introuvable", index)
	}
	a.Findings = append(a.Findings[:index], a.Findings[index+1:]...)
	a.SyncCounts()
	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Summary is the conformity overview of the audit register.
type Summary struct {
	Total           int             `json:"total"`
	Conformities    int             `json:"conformities"`
	NonConformities int             `json:"non_conformities"`
	Opportunities   int             `json:"opportunities"`
	ConformityRate  string          `json:"conformity_rate"`
	ByType          []kpi.NameValue `json:"by_type"`
	ByService       []kpi.NameValue `json:"by_service"`
}

// Summarize tallies findings across all audits. The conformity rate is
// conformities over conformities plus non-conformities.
func (s *Service) Summarize(ctx context.Context) (*Summary, error) {
	audits, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	sum := &Summary{
		Total:     len(audits),
		ByType:    kpi.GroupCount(audits, func(a Audit) string { return a.AuditType }),
		ByService: kpi.GroupCount(audits, func(a Audit) string { return a.Service }),
	}
	for _, a := range audits {
		sum.Conformities += a.ConformitiesCount
		sum.NonConformities += a.NonConformitiesCount
		sum.Opportunities += a.OpportunitiesCount
	}
	sum.ConformityRate = kpi.Rate(sum.Conformities, sum.Conformities+sum.NonConformities)
	return sum, nil
}
