package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/hospiops/facilityhub/internal/domain/audit"
	"github.com/hospiops/facilityhub/internal/domain/booking"
	"github.com/hospiops/facilityhub/internal/domain/hygiene"
	"github.com/hospiops/facilityhub/internal/domain/incident"
	"github.com/hospiops/facilityhub/internal/domain/maintenance"
	"github.com/hospiops/facilityhub/internal/domain/qhsedoc"
	"github.com/hospiops/facilityhub/internal/domain/risk"
	"github.com/hospiops/facilityhub/internal/domain/training"
	"github.com/hospiops/facilityhub/internal/domain/visitor"
	"github.com/hospiops/facilityhub/internal/platform/backend"
)

type stubIncidents struct {
	stats incident.Stats
	list  []incident.Incident
	err   error
}

func (s *stubIncidents) Stats(_ context.Context, _ string) (*incident.Stats, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &s.stats, nil
}

func (s *stubIncidents) ListVisible(_ context.Context, _ string) ([]incident.Incident, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.list, nil
}

type stubMaintenances struct {
	sum maintenance.Summary
	err error
}

func (s *stubMaintenances) Summarize(_ context.Context, _ string) (*maintenance.Summary, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &s.sum, nil
}

type stubBookings struct {
	stats booking.Stats
	list  []booking.Booking
	err   error
}

func (s *stubBookings) Summarize(_ context.Context) (*booking.Stats, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &s.stats, nil
}

func (s *stubBookings) List(_ context.Context) ([]booking.Booking, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.list, nil
}

type stubDocuments struct {
	sum qhsedoc.Summary
	err error
}

func (s *stubDocuments) Summarize(_ context.Context) (*qhsedoc.Summary, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &s.sum, nil
}

type stubRisks struct{ sum risk.Summary }

func (s *stubRisks) Summarize(_ context.Context) (*risk.Summary, error) { return &s.sum, nil }

type stubAudits struct{ sum audit.Summary }

func (s *stubAudits) Summarize(_ context.Context) (*audit.Summary, error) { return &s.sum, nil }

type stubTrainings struct{ sum training.Summary }

func (s *stubTrainings) Summarize(_ context.Context) (*training.Summary, error) {
	return &s.sum, nil
}

type stubHygiene struct{ sum hygiene.Summary }

func (s *stubHygiene) Summarize(_ context.Context) (*hygiene.Summary, error) { return &s.sum, nil }

type stubVisitors struct {
	stats visitor.Stats
	list  []visitor.Visitor
	err   error
}

func (s *stubVisitors) Summarize(_ context.Context, _ string) (*visitor.Stats, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &s.stats, nil
}

func (s *stubVisitors) ListVisible(_ context.Context, _ string) ([]visitor.Visitor, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.list, nil
}

func newTestService(incidents *stubIncidents, maintenances *stubMaintenances, bookings *stubBookings,
	documents *stubDocuments, visitors *stubVisitors) *Service {
	return NewService(
		incidents, maintenances, bookings, documents,
		&stubRisks{}, &stubAudits{}, &stubTrainings{}, &stubHygiene{},
		visitors, zerolog.Nop(),
	)
}

func TestAssembleMergesAllModules(t *testing.T) {
	svc := newTestService(
		&stubIncidents{stats: incident.Stats{Total: 7, ResolutionRate: "42.9"}},
		&stubMaintenances{sum: maintenance.Summary{Total: 3, Overdue: 1}},
		&stubBookings{stats: booking.Stats{Total: 5}},
		&stubDocuments{sum: qhsedoc.Summary{Total: 9, Expired: 2}},
		&stubVisitors{stats: visitor.Stats{Total: 11, Present: 4}},
	)

	snap := svc.Assemble(context.Background(), "u1")
	if snap.Incidents.Total != 7 || snap.Incidents.ResolutionRate != "42.9" {
		t.Errorf("unexpected incident figures: %+v", snap.Incidents)
	}
	if snap.Maintenances.Overdue != 1 {
		t.Errorf("unexpected maintenance figures: %+v", snap.Maintenances)
	}
	if snap.Bookings.Total != 5 || snap.Documents.Expired != 2 || snap.Visitors.Present != 4 {
		t.Error("module figures must carry through unchanged")
	}
}

func TestAssembleDegradesFailedModule(t *testing.T) {
	svc := newTestService(
		&stubIncidents{err: errors.New("backend down")},
		&stubMaintenances{sum: maintenance.Summary{Total: 3}},
		&stubBookings{stats: booking.Stats{Total: 5}},
		&stubDocuments{sum: qhsedoc.Summary{Total: 9}},
		&stubVisitors{stats: visitor.Stats{Total: 11}},
	)

	snap := svc.Assemble(context.Background(), "u1")
	if snap.Incidents.Total != 0 {
		t.Errorf("failed module must degrade to empty figures, got %+v", snap.Incidents)
	}
	// One failure never blocks the rest.
	if snap.Maintenances.Total != 3 || snap.Bookings.Total != 5 || snap.Documents.Total != 9 {
		t.Error("other modules must still be populated")
	}
}

func TestAssembleEmptyDashboard(t *testing.T) {
	svc := newTestService(
		&stubIncidents{stats: *func() *incident.Stats { s := incident.ComputeStats(nil); return &s }()},
		&stubMaintenances{}, &stubBookings{}, &stubDocuments{}, &stubVisitors{},
	)

	snap := svc.Assemble(context.Background(), "u1")
	if snap.Incidents.ResolutionRate != "0" {
		t.Errorf("empty register must rate as the literal 0, got %q", snap.Incidents.ResolutionRate)
	}
	if snap.Incidents.AvgResolutionTime != "0" {
		t.Errorf("empty register must average as the literal 0, got %q", snap.Incidents.AvgResolutionTime)
	}
}

func TestDailyActivity(t *testing.T) {
	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 6, 7, 0, 0, 0, 0, time.UTC)

	svc := newTestService(
		&stubIncidents{list: []incident.Incident{
			{ID: "i1", DateCreation: backend.NewDate(start.AddDate(0, 0, 1))},
			{ID: "i2", DateCreation: backend.NewDate(start.AddDate(0, 0, 1))},
			{ID: "i3", DateCreation: backend.NewDate(start.AddDate(0, 0, 30))}, // outside the range
		}},
		&stubMaintenances{},
		&stubBookings{list: []booking.Booking{
			{ID: "b1", StartDate: backend.NewDate(end)},
		}},
		&stubDocuments{},
		&stubVisitors{},
	)

	act := svc.DailyActivity(context.Background(), "u1", start, end)
	if len(act.Incidents) != 7 || len(act.Bookings) != 7 || len(act.Visitors) != 7 {
		t.Fatalf("expected 7 rows per series, got %d/%d/%d",
			len(act.Incidents), len(act.Bookings), len(act.Visitors))
	}
	if act.Incidents[1].Value != 2 {
		t.Errorf("expected 2 incidents on day 2, got %d", act.Incidents[1].Value)
	}
	if act.Bookings[6].Value != 1 {
		t.Errorf("expected 1 booking on the last day, got %d", act.Bookings[6].Value)
	}
	// Days without events still get a zero row, in order.
	seen := make(map[string]bool)
	for i, p := range act.Visitors {
		if p.Value != 0 {
			t.Errorf("expected a zero series, got %d at row %d", p.Value, i)
		}
		if seen[p.Date] {
			t.Errorf("duplicate day %s", p.Date)
		}
		seen[p.Date] = true
	}
}

func TestDailyActivityDegradesFailedSeries(t *testing.T) {
	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 6, 3, 0, 0, 0, 0, time.UTC)

	svc := newTestService(
		&stubIncidents{err: errors.New("backend down")},
		&stubMaintenances{}, &stubBookings{}, &stubDocuments{}, &stubVisitors{},
	)

	act := svc.DailyActivity(context.Background(), "u1", start, end)
	if len(act.Incidents) != 3 {
		t.Fatalf("a failed fetch still yields the full zero-filled range, got %d rows", len(act.Incidents))
	}
	for _, p := range act.Incidents {
		if p.Value != 0 {
			t.Errorf("expected zeros, got %d on %s", p.Value, p.Date)
		}
	}
}
