// Package qhsedoc manages the QHSE documentary base: lifecycle status,
// validation workflow, and the date-derived expiry flags that drive the
// document alerts.
package qhsedoc

import (
	"time"

	"github.com/hospiops/facilityhub/internal/platform/backend"
)

// Document lifecycle statuses.
const (
	StatusBrouillon    = "brouillon"
	StatusEnValidation = "en_validation"
	StatusValide       = "valide"
	StatusObsolete     = "obsolete"
	StatusArchive      = "archive"
)

// QHSEDocument is a controlled document from the documentary base.
type QHSEDocument struct {
	ID           string       `json:"id"`
	Code         string       `json:"code"`
	Title        string       `json:"title"`
	DocumentType string       `json:"document_type"`
	Status       string       `json:"status"`
	ValidityDate backend.Date `json:"validity_date,omitempty"`
	ReviewDate   backend.Date `json:"review_date,omitempty"`
	IsDisplayed  bool         `json:"is_displayed"`
	CreatedBy    string       `json:"created_by,omitempty"`
}

// View is a document with its date-derived flags. The stored status is
// advisory; an expired document keeps its status but is flagged here
// and raised as expired by the alert engine.
type View struct {
	QHSEDocument
	Expired       bool `json:"expired"`
	ExpiringSoon  bool `json:"expiring_soon"`
	ReviewDueSoon bool `json:"review_due_soon"`
}

// transitions lists the legal status moves. Obsolete documents may
// still be archived.
var transitions = map[string][]string{
	StatusBrouillon:    {StatusEnValidation},
	StatusEnValidation: {StatusValide, StatusBrouillon},
	StatusValide:       {StatusObsolete, StatusArchive},
	StatusObsolete:     {StatusArchive},
}

// CanTransition reports whether from → to is a legal status move.
func CanTransition(from, to string) bool {
	for _, candidate := range transitions[from] {
		if candidate == to {
			return true
		}
	}
	return false
}

// validatorRoles may approve a document (en_validation → valide).
var validatorRoles = map[string]bool{
	"superviseur_qhse": true,
	"superadmin":       true,
	"dop":              true,
}

// CanValidate reports whether any of the roles may approve documents.
func CanValidate(roles []string) bool {
	for _, r := range roles {
		if validatorRoles[r] {
			return true
		}
	}
	return false
}

// ValidStatus reports whether s is a known lifecycle status.
func ValidStatus(s string) bool {
	switch s {
	case StatusBrouillon, StatusEnValidation, StatusValide, StatusObsolete, StatusArchive:
		return true
	}
	return false
}

// NewView computes the date-derived flags for a document. Archived
// documents never flag. The window is the look-ahead in days for the
// expiring and review-due flags; a past review date still flags as due.
func NewView(doc QHSEDocument, now time.Time, windowDays int) View {
	v := View{QHSEDocument: doc}
	if doc.Status == StatusArchive {
		return v
	}
	horizon := now.AddDate(0, 0, windowDays)
	if !doc.ValidityDate.IsZero() {
		if doc.ValidityDate.Before(now) {
			v.Expired = true
		} else if !doc.ValidityDate.After(horizon) {
			v.ExpiringSoon = true
		}
	}
	if !doc.ReviewDate.IsZero() && !doc.ReviewDate.After(horizon) {
		v.ReviewDueSoon = true
	}
	return v
}
