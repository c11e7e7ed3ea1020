// Package identity holds the user directory and the role-based
// visibility rules applied to every filtered listing.
package identity

import "strings"

// Role names as they appear in JWT claims and user records.
const (
	RoleSuperadmin           = "superadmin"
	RoleDOP                  = "dop"
	RoleSuperviseurQHSE      = "superviseur_qhse"
	RoleSuperviseurSecurite  = "superviseur_securite"
	RoleSuperviseurEntretien = "superviseur_entretien"
	RoleSuperviseurTechnique = "superviseur_technique"
	RoleAgentSecurite        = "agent_securite"
	RoleAgentEntretien       = "agent_entretien"
	RoleTechnicien           = "technicien"
	RoleTechnicienBiomedical = "technicien_biomedical"
)

// Service names used to tag incidents, visitors, tasks and equipment.
const (
	ServiceSecurite   = "securite"
	ServiceEntretien  = "entretien"
	ServiceTechnique  = "technique"
	ServiceBiomedical = "biomedical"
)

// User is a directory entry from the upstream backend.
type User struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Role    string `json:"role"`
	Poste   string `json:"poste,omitempty"`
	Service string `json:"service,omitempty"`
	Active  bool   `json:"active"`
}

// Scope describes what a role may see. Exactly one of All, Own, or the
// explicit lists applies.
type Scope struct {
	All      bool
	Own      bool
	Services []string
	Postes   []string
}

// roleScopes is the static role to visibility mapping. Roles absent
// from this table see nothing.
var roleScopes = map[string]Scope{
	RoleSuperadmin: {All: true},
	RoleDOP:        {All: true},
	RoleSuperviseurQHSE: {
		Services: []string{ServiceSecurite, ServiceEntretien, ServiceTechnique, ServiceBiomedical},
	},
	RoleSuperviseurSecurite: {
		Services: []string{ServiceSecurite},
		Postes:   []string{RoleAgentSecurite},
	},
	RoleSuperviseurEntretien: {
		Services: []string{ServiceEntretien},
		Postes:   []string{RoleAgentEntretien},
	},
	RoleSuperviseurTechnique: {
		Services: []string{ServiceTechnique, ServiceBiomedical},
		Postes:   []string{RoleTechnicien, RoleTechnicienBiomedical},
	},
	RoleAgentSecurite:        {Own: true},
	RoleAgentEntretien:       {Own: true},
	RoleTechnicien:           {Own: true},
	RoleTechnicienBiomedical: {Own: true},
}

// ScopeFor returns the visibility scope for a role. ok is false for
// unmapped roles.
func ScopeFor(role string) (Scope, bool) {
	s, ok := roleScopes[role]
	return s, ok
}

// IsSupervisor reports whether the role carries supervisory visibility.
func IsSupervisor(role string) bool {
	return role == RoleSuperadmin || role == RoleDOP || strings.HasPrefix(role, "superviseur_")
}

// Tag is the poste/service pair an entity is labelled with.
type Tag struct {
	Poste   string
	Service string
}

// Visible filters items down to what the user may see. An unmapped role
// yields an empty slice, never an error. An entity matches when either
// its service or its poste falls inside the user's scope.
func Visible[T any](items []T, user User, tagOf func(T) Tag) []T {
	scope, ok := ScopeFor(user.Role)
	if !ok {
		return []T{}
	}
	if scope.All {
		return items
	}

	services := make(map[string]bool)
	postes := make(map[string]bool)
	if scope.Own {
		if user.Service != "" {
			services[user.Service] = true
		}
		if user.Poste != "" {
			postes[user.Poste] = true
		}
	} else {
		for _, s := range scope.Services {
			services[s] = true
		}
		for _, p := range scope.Postes {
			postes[p] = true
		}
	}

	out := make([]T, 0, len(items))
	for _, item := range items {
		tag := tagOf(item)
		if (tag.Service != "" && services[tag.Service]) || (tag.Poste != "" && postes[tag.Poste]) {
			out = append(out, item)
		}
	}
	return out
}
