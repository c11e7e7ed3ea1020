// Package dashboard assembles the cross-module overview: one snapshot
// of every register's key figures plus a daily activity series.
package dashboard

import (
	"context"
	"sync"
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
	"github.com/hospiops/facilityhub/pkg/kpi"
)

// Per-module sources. Each is the corresponding domain service; the
// narrow interfaces keep the snapshot testable in isolation.
type (
	IncidentSource interface {
		Stats(ctx context.Context, userID string) (*incident.Stats, error)
		ListVisible(ctx context.Context, userID string) ([]incident.Incident, error)
	}
	MaintenanceSource interface {
		Summarize(ctx context.Context, userID string) (*maintenance.Summary, error)
	}
	BookingSource interface {
		Summarize(ctx context.Context) (*booking.Stats, error)
		List(ctx context.Context) ([]booking.Booking, error)
	}
	DocumentSource interface {
		Summarize(ctx context.Context) (*qhsedoc.Summary, error)
	}
	RiskSource interface {
		Summarize(ctx context.Context) (*risk.Summary, error)
	}
	AuditSource interface {
		Summarize(ctx context.Context) (*audit.Summary, error)
	}
	TrainingSource interface {
		Summarize(ctx context.Context) (*training.Summary, error)
	}
	HygieneSource interface {
		Summarize(ctx context.Context) (*hygiene.Summary, error)
	}
	VisitorSource interface {
		Summarize(ctx context.Context, userID string) (*visitor.Stats, error)
		ListVisible(ctx context.Context, userID string) ([]visitor.Visitor, error)
	}
)

type Service struct {
	incidents    IncidentSource
	maintenances MaintenanceSource
	bookings     BookingSource
	documents    DocumentSource
	risks        RiskSource
	audits       AuditSource
	trainings    TrainingSource
	hygiene      HygieneSource
	visitors     VisitorSource
	log          zerolog.Logger
}

func NewService(
	incidents IncidentSource,
	maintenances MaintenanceSource,
	bookings BookingSource,
	documents DocumentSource,
	risks RiskSource,
	audits AuditSource,
	trainings TrainingSource,
	hygiene HygieneSource,
	visitors VisitorSource,
	log zerolog.Logger,
) *Service {
	return &Service{
		incidents:    incidents,
		maintenances: maintenances,
		bookings:     bookings,
		documents:    documents,
		risks:        risks,
		audits:       audits,
		trainings:    trainings,
		hygiene:      hygiene,
		visitors:     visitors,
		log:          log,
	}
}

// Snapshot is the whole dashboard payload. A module whose fetch failed
// comes back as empty figures, never as an error.
type Snapshot struct {
	Incidents    incident.Stats      `json:"incidents"`
	Maintenances maintenance.Summary `json:"maintenances"`
	Bookings     booking.Stats       `json:"bookings"`
	Documents    qhsedoc.Summary     `json:"documents"`
	Risks        risk.Summary        `json:"risks"`
	Audits       audit.Summary       `json:"audits"`
	Trainings    training.Summary    `json:"trainings"`
	Hygiene      hygiene.Summary     `json:"hygiene"`
	Visitors     visitor.Stats       `json:"visitors"`
}

// Assemble fetches every module's figures concurrently. Each failure
// is logged and degrades that module to empty figures so the rest of
// the dashboard still renders.
func (s *Service) Assemble(ctx context.Context, userID string) *Snapshot {
	snap := &Snapshot{}
	var wg sync.WaitGroup

	run := func(module string, fetch func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fetch(); err != nil {
				s.log.Warn().Err(err).Str("module", module).Msg("dashboard module degraded")
			}
		}()
	}

	run("incidents", func() error {
		stats, err := s.incidents.Stats(ctx, userID)
		if err != nil {
			return err
		}
		snap.Incidents = *stats
		return nil
	})
	run("maintenances", func() error {
		sum, err := s.maintenances.Summarize(ctx, userID)
		if err != nil {
			return err
		}
		snap.Maintenances = *sum
		return nil
	})
	run("reservations", func() error {
		stats, err := s.bookings.Summarize(ctx)
		if err != nil {
			return err
		}
		snap.Bookings = *stats
		return nil
	})
	run("documents", func() error {
		sum, err := s.documents.Summarize(ctx)
		if err != nil {
			return err
		}
		snap.Documents = *sum
		return nil
	})
	run("risques", func() error {
		sum, err := s.risks.Summarize(ctx)
		if err != nil {
			return err
		}
		snap.Risks = *sum
		return nil
	})
	run("audits", func() error {
		sum, err := s.audits.Summarize(ctx)
		if err != nil {
			return err
		}
		snap.Audits = *sum
		return nil
	})
	run("formations", func() error {
		sum, err := s.trainings.Summarize(ctx)
		if err != nil {
			return err
		}
		snap.Trainings = *sum
		return nil
	})
	run("hygiene", func() error {
		sum, err := s.hygiene.Summarize(ctx)
		if err != nil {
			return err
		}
		snap.Hygiene = *sum
		return nil
	})
	run("visiteurs", func() error {
		stats, err := s.visitors.Summarize(ctx, userID)
		if err != nil {
			return err
		}
		snap.Visitors = *stats
		return nil
	})

	wg.Wait()
	return snap
}

// Activity is the day-by-day event count per register over a range.
// Every day of the range appears in every series, zero-filled.
type Activity struct {
	Incidents []kpi.DatePoint `json:"incidents"`
	Bookings  []kpi.DatePoint `json:"bookings"`
	Visitors  []kpi.DatePoint `json:"visitors"`
}

// DailyActivity builds the activity series over [start, end]
// inclusive. A failed fetch degrades that series to all-zero days.
func (s *Service) DailyActivity(ctx context.Context, userID string, start, end time.Time) *Activity {
	var wg sync.WaitGroup
	act := &Activity{}

	collect := func(module string, dest *[]kpi.DatePoint, fetch func() ([]time.Time, error)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			events, err := fetch()
			if err != nil {
				s.log.Warn().Err(err).Str("module", module).Msg("activity series degraded")
			}
			*dest = kpi.DailySeries(start, end, events)
		}()
	}

	collect("incidents", &act.Incidents, func() ([]time.Time, error) {
		incidents, err := s.incidents.ListVisible(ctx, userID)
		if err != nil {
			return nil, err
		}
		out := make([]time.Time, 0, len(incidents))
		for _, inc := range incidents {
			if !inc.DateCreation.IsZero() {
				out = append(out, inc.DateCreation.Time)
			}
		}
		return out, nil
	})
	collect("reservations", &act.Bookings, func() ([]time.Time, error) {
		bookings, err := s.bookings.List(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]time.Time, 0, len(bookings))
		for _, b := range bookings {
			if !b.StartDate.IsZero() {
				out = append(out, b.StartDate.Time)
			}
		}
		return out, nil
	})
	collect("visiteurs", &act.Visitors, func() ([]time.Time, error) {
		visitors, err := s.visitors.ListVisible(ctx, userID)
		if err != nil {
			return nil, err
		}
		out := make([]time.Time, 0, len(visitors))
		for _, v := range visitors {
			if !v.ArrivedAt.IsZero() {
				out = append(out, v.ArrivedAt.Time)
			}
		}
		return out, nil
	})

	wg.Wait()
	return act
}
