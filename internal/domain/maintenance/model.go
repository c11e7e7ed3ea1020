// Package maintenance tracks planned maintenance work and the
// biomedical equipment inventory it applies to.
package maintenance

import (
	"time"

	"github.com/hospiops/facilityhub/internal/platform/backend"
)

// Task statuses. Terminee and annulee are terminal.
const (
	StatusPlanifiee = "planifiee"
	StatusEnCours   = "en_cours"
	StatusTerminee  = "terminee"
	StatusAnnulee   = "annulee"
)

// Task types.
const (
	TypePreventive = "preventive"
	TypeCorrective = "corrective"
)

// Equipment statuses.
const (
	EquipmentEnService = "en_service"
	EquipmentEnPanne   = "en_panne"
	EquipmentReforme   = "reforme"
)

// Task is a scheduled maintenance intervention.
type Task struct {
	ID            string       `json:"id"`
	Title         string       `json:"title"`
	Description   string       `json:"description,omitempty"`
	Type          string       `json:"type,omitempty"`
	Service       string       `json:"service,omitempty"`
	EquipmentID   string       `json:"equipment_id,omitempty"`
	AssignedTo    string       `json:"assigned_to,omitempty"`
	ScheduledDate backend.Date `json:"scheduled_date,omitempty"`
	CompletedDate backend.Date `json:"completed_date,omitempty"`
	Status        string       `json:"status"`
}

// Equipment is a biomedical device under maintenance tracking.
type Equipment struct {
	ID              string       `json:"id"`
	Name            string       `json:"name"`
	SerialNumber    string       `json:"serial_number,omitempty"`
	Service         string       `json:"service,omitempty"`
	Location        string       `json:"location,omitempty"`
	Status          string       `json:"status,omitempty"`
	LastMaintenance backend.Date `json:"last_maintenance,omitempty"`
	NextMaintenance backend.Date `json:"next_maintenance,omitempty"`
}

func ValidStatus(status string) bool {
	switch status {
	case StatusPlanifiee, StatusEnCours, StatusTerminee, StatusAnnulee:
		return true
	}
	return false
}

func ValidType(taskType string) bool {
	switch taskType {
	case TypePreventive, TypeCorrective:
		return true
	}
	return false
}

// IsTerminal reports whether the status closes a task.
func IsTerminal(status string) bool {
	return status == StatusTerminee || status == StatusAnnulee
}

// Upcoming reports whether the task is still open and scheduled today
// or later.
func Upcoming(t Task, now time.Time) bool {
	if t.ScheduledDate.IsZero() || IsTerminal(t.Status) {
		return false
	}
	return !t.ScheduledDate.Before(now.Truncate(24 * time.Hour))
}

// Overdue reports whether the task is still open past its scheduled
// date.
func Overdue(t Task, now time.Time) bool {
	if t.ScheduledDate.IsZero() || IsTerminal(t.Status) {
		return false
	}
	return t.ScheduledDate.Before(now.Truncate(24 * time.Hour))
}
