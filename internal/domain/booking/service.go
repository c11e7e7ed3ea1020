package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/hospiops/facilityhub/pkg/kpi"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func (s *Service) List(ctx context.Context) ([]Booking, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*Booking, error) {
	return s.repo.GetByID(ctx, id)
}

// Book validates and records a reservation. The room must be free over
// the requested range.
func (s *Service) Book(ctx context.Context, b *Booking, bookedBy string) error {
	if b.Room == "" {
		return fmt.Errorf("la salle est obligatoire")
	}
	if b.Reason == "" {
		return fmt.Errorf("le motif est obligatoire")
	}
	if b.StartDate.IsZero() {
		return fmt.Errorf("la date de début est obligatoire")
	}
	if !b.EndDate.IsZero() && b.EndDate.Before(b.StartDate.Time) {
		return fmt.Errorf("la date de fin précède la date de début")
	}
	existing, err := s.repo.List(ctx)
	if err != nil {
		return err
	}
	for _, other := range existing {
		if other.Status == StatusAnnulee {
			continue
		}
		if Overlaps(*b, other) {
			return fmt.Errorf("la salle %s est déjà réservée sur ce créneau", b.Room)
		}
	}
	b.Status = StatusConfirmee
	b.BookedBy = bookedBy
	return s.repo.Create(ctx, b)
}

// Cancel releases the room. The record is kept with an annulee status.
func (s *Service) Cancel(ctx context.Context, id string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	b.Status = StatusAnnulee
	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// Stats is the booking overview.
type Stats struct {
	Total      int             `json:"total"`
	Active     int             `json:"active"`
	ByRoom     []kpi.NameValue `json:"by_room"`
	TopReasons []kpi.NameValue `json:"top_reasons"`
}

// Summarize aggregates the register. Reasons keep only the ten most
// frequent.
func (s *Service) Summarize(ctx context.Context) (*Stats, error) {
	bookings, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()
	stats := &Stats{
		Total:      len(bookings),
		ByRoom:     kpi.GroupCount(bookings, func(b Booking) string { return b.Room }),
		TopReasons: kpi.TopN(kpi.GroupCount(bookings, func(b Booking) string { return b.Reason }), 10),
	}
	for _, b := range bookings {
		if Active(b, now) {
			stats.Active++
		}
	}
	return stats, nil
}
