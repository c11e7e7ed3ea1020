package training

import (
	"context"
	"fmt"
	"time"

	"github.com/hospiops/facilityhub/pkg/kpi"
)

type Service struct {
	repo         Repository
	competencies CompetencyRepository
	windowDays   int
	now          func() time.Time
}

func NewService(repo Repository, competencies CompetencyRepository, windowDays int) *Service {
	return &Service{repo: repo, competencies: competencies, windowDays: windowDays, now: time.Now}
}

func (s *Service) List(ctx context.Context) ([]Training, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*Training, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, t *Training) error {
	if t.Title == "" {
		return fmt.Errorf("l'intitulé de la formation est obligatoire")
	}
	if t.CertificateRequired && t.ValidityMonths <= 0 {
		return fmt.Errorf("une formation certifiante exige une durée de validité")
	}
	return s.repo.Create(ctx, t)
}

func (s *Service) Update(ctx context.Context, t *Training) error {
	if t.ID == "" {
		return fmt.Errorf("l'identifiant est obligatoire")
	}
	if t.CertificateRequired && t.ValidityMonths <= 0 {
		return fmt.Errorf("une formation certifiante exige une durée de validité")
	}
	return s.repo.Update(ctx, t)
}

// ParticipationView is a participation with its computed certificate
// expiry.
type ParticipationView struct {
	Participation
	CertificateExpiry *time.Time `json:"certificate_expiry,omitempty"`
	CertificateValid  bool       `json:"certificate_valid"`
}

// RecordParticipation stores an outcome for a training.
func (s *Service) RecordParticipation(ctx context.Context, p *Participation) error {
	if p.TrainingID == "" || p.EmployeeID == "" {
		return fmt.Errorf("formation et participant sont obligatoires")
	}
	if _, err := s.repo.GetByID(ctx, p.TrainingID); err != nil {
		return fmt.Errorf("formation introuvable: %w", err)
	}
	return s.repo.CreateParticipation(ctx, p)
}

// Participations lists a training's participations with certificate
// status computed against the current date.
func (s *Service) Participations(ctx context.Context, trainingID string) ([]ParticipationView, error) {
	t, err := s.repo.GetByID(ctx, trainingID)
	if err != nil {
		return nil, err
	}
	parts, err := s.repo.ListParticipations(ctx, trainingID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	views := make([]ParticipationView, len(parts))
	for i, p := range parts {
		exp := CertificateExpiry(*t, p)
		views[i] = ParticipationView{
			Participation:     p,
			CertificateExpiry: exp,
			CertificateValid:  exp != nil && exp.After(now),
		}
	}
	return views, nil
}

// AddCompetency registers a standalone skill record.
func (s *Service) AddCompetency(ctx context.Context, c *Competency) error {
	if c.EmployeeID == "" || c.Name == "" {
		return fmt.Errorf("employé et compétence sont obligatoires")
	}
	return s.competencies.Create(ctx, c)
}

func (s *Service) ListCompetencies(ctx context.Context) ([]Competency, error) {
	return s.competencies.List(ctx)
}

// Summary is the training plan overview.
type Summary struct {
	Total                int             `json:"total"`
	Upcoming             int             `json:"upcoming"`
	ByTopic              []kpi.NameValue `json:"by_topic"`
	ExpiredCompetencies  int             `json:"expired_competencies"`
	ExpiringCompetencies int             `json:"expiring_competencies"`
}

// Summarize aggregates the plan and the competency expiries within the
// alert window.
func (s *Service) Summarize(ctx context.Context) (*Summary, error) {
	trainings, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	comps, err := s.competencies.List(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()
	horizon := now.AddDate(0, 0, s.windowDays)

	sum := &Summary{
		Total:   len(trainings),
		ByTopic: kpi.GroupCount(trainings, func(t Training) string { return t.Topic }),
	}
	for _, t := range trainings {
		if Upcoming(t, now) {
			sum.Upcoming++
		}
	}
	for _, c := range comps {
		if c.ExpiryDate.IsZero() {
			continue
		}
		if c.ExpiryDate.Before(now) {
			sum.ExpiredCompetencies++
		} else if !c.ExpiryDate.After(horizon) {
			sum.ExpiringCompetencies++
		}
	}
	return sum, nil
}
