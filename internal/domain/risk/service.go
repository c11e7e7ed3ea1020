package risk

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

func (s *Service) List(ctx context.Context) ([]Risk, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*Risk, error) {
	return s.repo.GetByID(ctx, id)
}

// Create validates the ordinals and records the risk. Levels are
// derived here, never accepted from the caller.
func (s *Service) Create(ctx context.Context, r *Risk) error {
	if err := validate(r); err != nil {
		return err
	}
	Score(r)
	return s.repo.Create(ctx, r)
}

func (s *Service) Update(ctx context.Context, r *Risk) error {
	if r.ID == "" {
		return fmt.Errorf("l'identifiant est obligatoire")
	}
	if err := validate(r); err != nil {
		return err
	}
	Score(r)
	return s.repo.Update(ctx, r)
}

func validate(r *Risk) error {
	if r.Title == "" {
		return fmt.Errorf("l'intitulé du risque est obligatoire")
	}
	if !ValidProbability(r.Probability) {
		return fmt.Errorf("probabilité invalide: %q", r.Probability)
	}
	if !ValidSeverity(r.Severity) {
		return fmt.Errorf("gravité invalide: %q", r.Severity)
	}
	if (r.ResidualProbability == "") != (r.ResidualSeverity == "") {
		return fmt.Errorf("le risque résiduel exige probabilité et gravité ensemble")
	}
	if r.ResidualProbability != "" && !ValidProbability(r.ResidualProbability) {
		return fmt.Errorf("probabilité résiduelle invalide: %q", r.ResidualProbability)
	}
	if r.ResidualSeverity != "" && !ValidSeverity(r.ResidualSeverity) {
		return fmt.Errorf("gravité résiduelle invalide: %q", r.ResidualSeverity)
	}
	return nil
}

// Summary is the risk map overview.
type Summary struct {
	Total          int             `json:"total"`
	ByLevel        []kpi.NameValue `json:"by_level"`
	ByCategory     []kpi.NameValue `json:"by_category"`
	Critical       int             `json:"critical"`
	MitigatedShare string          `json:"mitigated_share"`
}

// Summarize aggregates the register. Critical counts the two highest
// levels; mitigated share is the rate of risks carrying a residual
// assessment.
func (s *Service) Summarize(ctx context.Context) (*Summary, error) {
	risks, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	sum := &Summary{
		Total:      len(risks),
		ByLevel:    kpi.GroupCount(risks, func(r Risk) string { return r.Level }),
		ByCategory: kpi.GroupCount(risks, func(r Risk) string { return r.Category }),
	}
	mitigated := 0
	for _, r := range risks {
		if r.Level == LevelEleve || r.Level == LevelTresEleve {
			sum.Critical++
		}
		if r.ResidualLevel != "" {
			mitigated++
		}
	}
	sum.MitigatedShare = kpi.Rate(mitigated, len(risks))
	return sum, nil
}
