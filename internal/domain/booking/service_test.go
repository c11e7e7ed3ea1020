package booking

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
	bookings map[string]*Booking
	nextID   int
}

func newMockRepo(bookings ...Booking) *mockRepo {
	m := &mockRepo{bookings: make(map[string]*Booking), nextID: 1}
	for i := range bookings {
		b := bookings[i]
		m.bookings[b.ID] = &b
	}
	return m
}

func (m *mockRepo) List(_ context.Context) ([]Booking, error) {
	out := make([]Booking, 0, len(m.bookings))
	for _, b := range m.bookings {
		out = append(out, *b)
	}
	return out, nil
}

func (m *mockRepo) GetByID(_ context.Context, id string) (*Booking, error) {
	b, ok := m.bookings[id]
	if !ok {
		return nil, errors.New("booking not found")
	}
	cp := *b
	return &cp, nil
}

func (m *mockRepo) Create(_ context.Context, b *Booking) error {
	if b.ID == "" {
		b.ID = fmt.Sprintf("bk-%d", m.nextID)
		m.nextID++
	}
	cp := *b
	m.bookings[b.ID] = &cp
	return nil
}

func (m *mockRepo) Update(_ context.Context, b *Booking) error {
	if _, ok := m.bookings[b.ID]; !ok {
		return errors.New("booking not found")
	}
	cp := *b
	m.bookings[b.ID] = &cp
	return nil
}

func newTestService(repo *mockRepo) *Service {
	svc := NewService(repo)
	svc.now = func() time.Time { return testNow }
	return svc
}

func TestBookValidation(t *testing.T) {
	svc := newTestService(newMockRepo())

	cases := []struct {
		name    string
		b       Booking
		wantErr bool
	}{
		{name: "valid", b: Booking{Room: "A", Reason: "réunion", StartDate: onDay(1)}},
		{name: "missing room", b: Booking{Reason: "réunion", StartDate: onDay(1)}, wantErr: true},
		{name: "missing reason", b: Booking{Room: "A", StartDate: onDay(1)}, wantErr: true},
		{name: "missing start", b: Booking{Room: "A", Reason: "réunion"}, wantErr: true},
		{name: "end before start", b: Booking{Room: "A", Reason: "x", StartDate: onDay(3), EndDate: onDay(1)}, wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := tc.b
			b.Room += tc.name // distinct rooms so cases never collide
			err := svc.Book(context.Background(), &b, "u1")
			if tc.wantErr && err == nil {
				t.Error("expected a validation error")
			}
			if !tc.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestBookRejectsOverlap(t *testing.T) {
	repo := newMockRepo(Booking{
		ID: "bk-9", Room: "Salle bleue", Reason: "formation",
		StartDate: onDay(2), EndDate: onDay(4), Status: StatusConfirmee,
	})
	svc := newTestService(repo)

	overlap := Booking{Room: "Salle bleue", Reason: "réunion", StartDate: onDay(3)}
	if err := svc.Book(context.Background(), &overlap, "u1"); err == nil {
		t.Error("overlapping booking must be rejected")
	}

	otherRoom := Booking{Room: "Salle rouge", Reason: "réunion", StartDate: onDay(3)}
	if err := svc.Book(context.Background(), &otherRoom, "u1"); err != nil {
		t.Errorf("another room must stay bookable: %v", err)
	}

	after := Booking{Room: "Salle bleue", Reason: "réunion", StartDate: onDay(5)}
	if err := svc.Book(context.Background(), &after, "u1"); err != nil {
		t.Errorf("a later slot must stay bookable: %v", err)
	}
}

func TestBookIgnoresCancelledOverlap(t *testing.T) {
	repo := newMockRepo(Booking{
		ID: "bk-9", Room: "Salle bleue", Reason: "formation",
		StartDate: onDay(2), Status: StatusAnnulee,
	})
	svc := newTestService(repo)

	b := Booking{Room: "Salle bleue", Reason: "réunion", StartDate: onDay(2)}
	if err := svc.Book(context.Background(), &b, "u1"); err != nil {
		t.Errorf("a cancelled booking must not block the room: %v", err)
	}
	if b.Status != StatusConfirmee {
		t.Errorf("expected status %q, got %q", StatusConfirmee, b.Status)
	}
	if b.BookedBy != "u1" {
		t.Errorf("expected booked_by u1, got %q", b.BookedBy)
	}
}

func TestCancel(t *testing.T) {
	repo := newMockRepo(Booking{ID: "bk-1", Room: "A", Reason: "x", StartDate: onDay(1), Status: StatusConfirmee})
	svc := newTestService(repo)

	b, err := svc.Cancel(context.Background(), "bk-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Status != StatusAnnulee {
		t.Errorf("expected %q, got %q", StatusAnnulee, b.Status)
	}
}

func TestSummarizeTopReasons(t *testing.T) {
	var bookings []Booking
	for i := 0; i < 12; i++ {
		bookings = append(bookings, Booking{
			ID: fmt.Sprintf("bk-%d", i), Room: "A",
			Reason:    fmt.Sprintf("motif-%d", i%11),
			StartDate: onDay(i - 6), Status: StatusConfirmee,
		})
	}
	svc := newTestService(newMockRepo(bookings...))

	stats, err := svc.Summarize(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.Total != 12 {
		t.Errorf("expected 12 bookings, got %d", stats.Total)
	}
	if len(stats.TopReasons) != 10 {
		t.Errorf("expected the top 10 reasons, got %d", len(stats.TopReasons))
	}
	// motif-0 appears twice and must lead.
	if stats.TopReasons[0].Name != "motif-0" || stats.TopReasons[0].Value != 2 {
		t.Errorf("expected motif-0 x2 first, got %+v", stats.TopReasons[0])
	}
}

func TestActive(t *testing.T) {
	if Active(Booking{Room: "A", StartDate: onDay(-5), EndDate: onDay(-1), Status: StatusConfirmee}, testNow) {
		t.Error("a finished booking is not active")
	}
	if !Active(Booking{Room: "A", StartDate: onDay(-1), EndDate: onDay(1), Status: StatusConfirmee}, testNow) {
		t.Error("an ongoing booking is active")
	}
	if Active(Booking{Room: "A", StartDate: onDay(1), Status: StatusAnnulee}, testNow) {
		t.Error("a cancelled booking is never active")
	}
}
