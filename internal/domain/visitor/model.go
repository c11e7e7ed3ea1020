// Package visitor keeps the visitor register at the facility entrance.
package visitor

import "github.com/hospiops/facilityhub/internal/platform/backend"

// PosteAutre marks a free-form visited post. It requires the custom
// post name to be filled in.
const PosteAutre = "autre"

// Visitor is one entry in the register, tagged with the post and
// service visited.
type Visitor struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Company      string       `json:"company,omitempty"`
	Reason       string       `json:"reason,omitempty"`
	Poste        string       `json:"poste,omitempty"`
	CustomPoste  string       `json:"custom_poste,omitempty"`
	Service      string       `json:"service,omitempty"`
	HostName     string       `json:"host_name,omitempty"`
	ArrivedAt    backend.Date `json:"arrived_at,omitempty"`
	LeftAt       backend.Date `json:"left_at,omitempty"`
	RegisteredBy string       `json:"registered_by,omitempty"`
}

// Present reports whether the visitor is still on site.
func Present(v Visitor) bool {
	return !v.ArrivedAt.IsZero() && v.LeftAt.IsZero()
}

// VisitedPoste resolves the effective post label, falling back to the
// custom name when "autre" was selected.
func VisitedPoste(v Visitor) string {
	if v.Poste == PosteAutre && v.CustomPoste != "" {
		return v.CustomPoste
	}
	return v.Poste
}
