// Package incident covers the facility incident register: declaration,
// assignment, status lifecycle, and the KPI aggregations behind the
// incident dashboard.
package incident

import (
	"github.com/hospiops/facilityhub/internal/platform/backend"
)

// Statut values. An incident is never hard-deleted; it only moves
// through statuses.
const (
	StatutNouveau   = "nouveau"
	StatutEnCours   = "cours"
	StatutTraite    = "traite"
	StatutResolu    = "resolu"
	StatutEnAttente = "attente"
)

// Priorite values.
const (
	PrioriteFaible   = "faible"
	PrioriteMoyenne  = "moyenne"
	PrioriteHaute    = "haute"
	PrioriteCritique = "critique"
)

// Incident is a declared facility incident.
type Incident struct {
	ID             string       `json:"id"`
	Type           string       `json:"type"`
	Description    string       `json:"description"`
	DateCreation   backend.Date `json:"date_creation"`
	Statut         string       `json:"statut"`
	Priorite       string       `json:"priorite"`
	Service        string       `json:"service"`
	Lieu           string       `json:"lieu,omitempty"`
	AssignedTo     string       `json:"assigned_to,omitempty"`
	Deadline       backend.Date `json:"deadline,omitempty"`
	ResolutionDate backend.Date `json:"resolution_date,omitempty"`
	Report         *Report      `json:"report,omitempty"`
	ReportedBy     string       `json:"reported_by,omitempty"`
}

// Report is the optional embedded intervention report.
type Report struct {
	Content   string       `json:"content"`
	Author    string       `json:"author,omitempty"`
	WrittenAt backend.Date `json:"written_at,omitempty"`
}

// IsTerminal reports whether the statut closes the incident. "attente"
// is a hold, not a terminal state.
func IsTerminal(statut string) bool {
	return statut == StatutResolu || statut == StatutTraite
}

// ValidStatut reports whether s is a known statut value.
func ValidStatut(s string) bool {
	switch s {
	case StatutNouveau, StatutEnCours, StatutTraite, StatutResolu, StatutEnAttente:
		return true
	}
	return false
}

// ValidPriorite reports whether p is a known priorite value.
func ValidPriorite(p string) bool {
	switch p {
	case PrioriteFaible, PrioriteMoyenne, PrioriteHaute, PrioriteCritique:
		return true
	}
	return false
}
