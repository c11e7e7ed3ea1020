package maintenance

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
	repo      Repository
	equipment EquipmentRepository
	users     UserDirectory
	now       func() time.Time
}

func NewService(repo Repository, equipment EquipmentRepository, users UserDirectory) *Service {
	return &Service{repo: repo, equipment: equipment, users: users, now: time.Now}
}

// ListVisible returns the tasks the user is allowed to see, filtered by
// the service tag of each task.
func (s *Service) ListVisible(ctx context.Context, userID string) ([]Task, error) {
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("resolve user: %w", err)
	}
	tasks, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return identity.Visible(tasks, *user, func(t Task) identity.Tag {
		return identity.Tag{Service: t.Service}
	}), nil
}

func (s *Service) Get(ctx context.Context, id string) (*Task, error) {
	return s.repo.GetByID(ctx, id)
}

// Schedule validates and records a new task. Status always starts at
// planifiee.
func (s *Service) Schedule(ctx context.Context, t *Task) error {
	if t.Title == "" {
		return fmt.Errorf("l'intitulé de l'intervention est obligatoire")
	}
	if t.Type != "" && !ValidType(t.Type) {
		return fmt.Errorf("type d'intervention invalide: %q", t.Type)
	}
	if t.ScheduledDate.IsZero() {
		return fmt.Errorf("la date planifiée est obligatoire")
	}
	t.Status = StatusPlanifiee
	return s.repo.Create(ctx, t)
}

func (s *Service) Update(ctx context.Context, t *Task) error {
	if t.ID == "" {
		return fmt.Errorf("l'identifiant est obligatoire")
	}
	if t.Status != "" && !ValidStatus(t.Status) {
		return fmt.Errorf("statut invalide: %q", t.Status)
	}
	return s.repo.Update(ctx, t)
}

// UpdateStatus moves a task to a new status. Completing a task stamps
// the completion date if none is recorded yet.
func (s *Service) UpdateStatus(ctx context.Context, id, status string) (*Task, error) {
	if !ValidStatus(status) {
		return nil, fmt.Errorf("statut invalide: %q", status)
	}
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	t.Status = status
	if status == StatusTerminee && t.CompletedDate.IsZero() {
		t.CompletedDate = backend.NewDate(s.now())
	}
	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Overdues returns the open tasks past their scheduled date, visible to
// the user.
func (s *Service) Overdues(ctx context.Context, userID string) ([]Task, error) {
	tasks, err := s.ListVisible(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	out := make([]Task, 0)
	for _, t := range tasks {
		if Overdue(t, now) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *Service) ListEquipment(ctx context.Context) ([]Equipment, error) {
	return s.equipment.List(ctx)
}

func (s *Service) GetEquipment(ctx context.Context, id string) (*Equipment, error) {
	return s.equipment.GetByID(ctx, id)
}

func (s *Service) AddEquipment(ctx context.Context, e *Equipment) error {
	if e.Name == "" {
		return fmt.Errorf("le nom de l'équipement est obligatoire")
	}
	if e.Status == "" {
		e.Status = EquipmentEnService
	}
	return s.equipment.Create(ctx, e)
}

func (s *Service) UpdateEquipment(ctx context.Context, e *Equipment) error {
	if e.ID == "" {
		return fmt.Errorf("l'identifiant est obligatoire")
	}
	return s.equipment.Update(ctx, e)
}

// Summary is the maintenance overview shown on the dashboard.
type Summary struct {
	Total         int             `json:"total"`
	Upcoming      int             `json:"upcoming"`
	Overdue       int             `json:"overdue"`
	ByStatus      []kpi.NameValue `json:"by_status"`
	ByService     []kpi.NameValue `json:"by_service"`
	EquipmentDown int             `json:"equipment_down"`
}

// Summarize aggregates the tasks visible to the user and the equipment
// inventory.
func (s *Service) Summarize(ctx context.Context, userID string) (*Summary, error) {
	tasks, err := s.ListVisible(ctx, userID)
	if err != nil {
		return nil, err
	}
	equipment, err := s.equipment.List(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()
	sum := &Summary{
		Total:     len(tasks),
		ByStatus:  kpi.GroupCount(tasks, func(t Task) string { return t.Status }),
		ByService: kpi.GroupCount(tasks, func(t Task) string { return t.Service }),
	}
	for _, t := range tasks {
		if Upcoming(t, now) {
			sum.Upcoming++
		}
		if Overdue(t, now) {
			sum.Overdue++
		}
	}
	for _, e := range equipment {
		if e.Status == EquipmentEnPanne {
			sum.EquipmentDown++
		}
	}
	return sum, nil
}
