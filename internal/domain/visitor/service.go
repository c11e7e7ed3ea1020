package visitor

import (
	"context"
	"fmt"
	"time"

	"github.com/hospiops/facilityhub/internal/domain/identity"
	"github.com/hospiops/facilityhub/internal/platform/backend"
	"github.com/hospiops/facilityhub/pkg/kpi"
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

// ListVisible returns the register entries the user is allowed to see,
// filtered by the post and service visited.
func (s *Service) ListVisible(ctx context.Context, userID string) ([]Visitor, error) {
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("resolve user: %w", err)
	}
	visitors, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return identity.Visible(visitors, *user, func(v Visitor) identity.Tag {
		return identity.Tag{Poste: v.Poste, Service: v.Service}
	}), nil
}

func (s *Service) Get(ctx context.Context, id string) (*Visitor, error) {
	return s.repo.GetByID(ctx, id)
}

// Register validates and records an arrival. Selecting the "autre"
// post requires the custom post name.
func (s *Service) Register(ctx context.Context, v *Visitor, registeredBy string) error {
	if v.Name == "" {
		return fmt.Errorf("le nom du visiteur est obligatoire")
	}
	if v.Poste == PosteAutre && v.CustomPoste == "" {
		return fmt.Errorf("le nom du poste est obligatoire lorsque le poste est «autre»")
	}
	if v.ArrivedAt.IsZero() {
		v.ArrivedAt = backend.NewDate(s.now())
	}
	v.LeftAt = backend.Date{}
	v.RegisteredBy = registeredBy
	return s.repo.Create(ctx, v)
}

// CheckOut stamps the departure of a visitor still on site.
func (s *Service) CheckOut(ctx context.Context, id string) (*Visitor, error) {
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !v.LeftAt.IsZero() {
		return nil, fmt.Errorf("le visiteur est déjà sorti")
	}
	v.LeftAt = backend.NewDate(s.now())
	if err := s.repo.Update(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

// Stats is the visitor register overview.
type Stats struct {
	Total     int             `json:"total"`
	Present   int             `json:"present"`
	ByService []kpi.NameValue `json:"by_service"`
	ByPoste   []kpi.NameValue `json:"by_poste"`
	Today     int             `json:"today"`
}

// Summarize aggregates the entries visible to the user.
func (s *Service) Summarize(ctx context.Context, userID string) (*Stats, error) {
	visitors, err := s.ListVisible(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	stats := &Stats{
		Total:     len(visitors),
		ByService: kpi.GroupCount(visitors, func(v Visitor) string { return v.Service }),
		ByPoste:   kpi.GroupCount(visitors, VisitedPoste),
	}
	for _, v := range visitors {
		if Present(v) {
			stats.Present++
		}
		if !v.ArrivedAt.IsZero() && kpi.SameDay(v.ArrivedAt.Time, now) {
			stats.Today++
		}
	}
	return stats, nil
}
