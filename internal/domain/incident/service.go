package incident

import (
	"context"
	"fmt"
	"time"

	"github.com/hospiops/facilityhub/internal/domain/identity"
	"github.com/hospiops/facilityhub/internal/platform/backend"
)

// UserDirectory resolves the current user for visibility filtering.
type UserDirectory interface {
	GetUser(ctx context.Context, id string) (*identity.User, error)
}

type Service struct {
	repo  Repository
	users UserDirectory
	now   func() time.Time
}

func NewService(repo Repository, users UserDirectory) *Service {
	return &Service{repo: repo, users: users, now: time.Now}
}

// ListVisible returns the incidents the user is allowed to see,
// filtered by the service tag of each incident.
func (s *Service) ListVisible(ctx context.Context, userID string) ([]Incident, error) {
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("resolve user: %w", err)
	}
	incidents, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return identity.Visible(incidents, *user, func(i Incident) identity.Tag {
		return identity.Tag{Service: i.Service}
	}), nil
}

func (s *Service) Get(ctx context.Context, id string) (*Incident, error) {
	return s.repo.GetByID(ctx, id)
}

// Declare validates and records a new incident. Statut always starts at
// nouveau regardless of what the caller sent.
func (s *Service) Declare(ctx context.Context, inc *Incident, reporterID string) error {
	if inc.Description == "" {
		return fmt.Errorf("la description est obligatoire")
	}
	if inc.Type == "" {
		return fmt.Errorf("le type d'incident est obligatoire")
	}
	if !validService(inc.Service) {
		return fmt.Errorf("service invalide: %q", inc.Service)
	}
	if inc.Priorite == "" {
		inc.Priorite = PrioriteMoyenne
	} else if !ValidPriorite(inc.Priorite) {
		return fmt.Errorf("priorite invalide: %q", inc.Priorite)
	}
	inc.Statut = StatutNouveau
	inc.ReportedBy = reporterID
	if inc.DateCreation.IsZero() {
		inc.DateCreation = backend.NewDate(s.now())
	}
	return s.repo.Create(ctx, inc)
}

// Update applies a full edit to an existing incident.
func (s *Service) Update(ctx context.Context, inc *Incident) error {
	if inc.ID == "" {
		return fmt.Errorf("l'identifiant est obligatoire")
	}
	if inc.Statut != "" && !ValidStatut(inc.Statut) {
		return fmt.Errorf("statut invalide: %q", inc.Statut)
	}
	if inc.Priorite != "" && !ValidPriorite(inc.Priorite) {
		return fmt.Errorf("priorite invalide: %q", inc.Priorite)
	}
	return s.repo.Update(ctx, inc)
}

// UpdateStatus moves an incident to a new statut. Entering a terminal
// statut stamps the resolution date if none is recorded yet.
func (s *Service) UpdateStatus(ctx context.Context, id, statut string) (*Incident, error) {
	if !ValidStatut(statut) {
		return nil, fmt.Errorf("statut invalide: %q", statut)
	}
	inc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	inc.Statut = statut
	if IsTerminal(statut) && inc.ResolutionDate.IsZero() {
		inc.ResolutionDate = backend.NewDate(s.now())
	}
	if err := s.repo.Update(ctx, inc); err != nil {
		return nil, err
	}
	return inc, nil
}

// Assign sets the assignee of an incident and moves it to "cours" if it
// is still new.
func (s *Service) Assign(ctx context.Context, id, assigneeID string) (*Incident, error) {
	if assigneeID == "" {
		return nil, fmt.Errorf("l'intervenant est obligatoire")
	}
	inc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	inc.AssignedTo = assigneeID
	if inc.Statut == StatutNouveau {
		inc.Statut = StatutEnCours
	}
	if err := s.repo.Update(ctx, inc); err != nil {
		return nil, err
	}
	return inc, nil
}

// Stats aggregates KPI figures over the incidents visible to the user.
func (s *Service) Stats(ctx context.Context, userID string) (*Stats, error) {
	incidents, err := s.ListVisible(ctx, userID)
	if err != nil {
		return nil, err
	}
	stats := ComputeStats(incidents)
	return &stats, nil
}

func validService(service string) bool {
	switch service {
	case identity.ServiceSecurite, identity.ServiceEntretien, identity.ServiceTechnique, identity.ServiceBiomedical:
		return true
	}
	return false
}
