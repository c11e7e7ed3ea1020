// Package training covers the training plan, participation records
// with certificate expiry, and standalone per-employee competencies.
package training

import (
	"time"

	"github.com/hospiops/facilityhub/internal/platform/backend"
)

// Training is a planned or delivered training session.
type Training struct {
	ID                  string       `json:"id"`
	Title               string       `json:"title"`
	Topic               string       `json:"topic,omitempty"`
	Service             string       `json:"service,omitempty"`
	Trainer             string       `json:"trainer,omitempty"`
	PlannedDate         backend.Date `json:"planned_date,omitempty"`
	CertificateRequired bool         `json:"certificate_required"`
	ValidityMonths      int          `json:"validity_months,omitempty"`
}

// Participation links an employee to a training and records the
// outcome.
type Participation struct {
	ID          string       `json:"id"`
	TrainingID  string       `json:"training_id"`
	EmployeeID  string       `json:"employee_id"`
	Passed      bool         `json:"passed"`
	CompletedAt backend.Date `json:"completed_at,omitempty"`
}

// Competency is a per-employee skill record with its own expiry,
// independent of any training session.
type Competency struct {
	ID         string       `json:"id"`
	EmployeeID string       `json:"employee_id"`
	Name       string       `json:"name"`
	AcquiredAt backend.Date `json:"acquired_at,omitempty"`
	ExpiryDate backend.Date `json:"expiry_date,omitempty"`
}

// CertificateExpiry computes when a participant's certificate lapses.
// It is only defined for passed participations of certificate-bearing
// trainings with a validity period; otherwise nil.
func CertificateExpiry(t Training, p Participation) *time.Time {
	if !t.CertificateRequired || t.ValidityMonths <= 0 {
		return nil
	}
	if !p.Passed || p.CompletedAt.IsZero() {
		return nil
	}
	exp := p.CompletedAt.AddDate(0, t.ValidityMonths, 0)
	return &exp
}

// Upcoming reports whether the training is planned today or later.
func Upcoming(t Training, now time.Time) bool {
	if t.PlannedDate.IsZero() {
		return false
	}
	today := now.Truncate(24 * time.Hour)
	return !t.PlannedDate.Before(today)
}
