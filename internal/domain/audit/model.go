// Package audit manages QHSE audits and their findings. Findings
// travel as a JSON-encoded string inside the audit record; the derived
// per-type counts are persisted redundantly and kept in sync on every
// mutation.
package audit

import (
	"encoding/json"
	"fmt"

	"github.com/hospiops/facilityhub/internal/platform/backend"
)

// Finding types.
const (
	FindingConformite    = "conformite"
	FindingNonConformite = "non_conformite"
	FindingOpportunite   = "opportunite"
)

// Finding is a single audit observation.
type Finding struct {
	Type        string `json:"type"`
	Severity    string `json:"severity,omitempty"`
	Description string `json:"description"`
	ActionPlan  string `json:"action_plan,omitempty"`
}

// FindingList decodes from either a JSON array or the backend's
// string-embedded JSON array, and always encodes back to the embedded
// string form.
type FindingList []Finding

func (l FindingList) MarshalJSON() ([]byte, error) {
	inner, err := json.Marshal([]Finding(l))
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(inner))
}

func (l *FindingList) UnmarshalJSON(raw []byte) error {
	if len(raw) == 0 || string(raw) == "null" {
		*l = nil
		return nil
	}
	if raw[0] == '"' {
		var embedded string
		if err := json.Unmarshal(raw, &embedded); err != nil {
			return err
		}
		if embedded == "" {
			*l = nil
			return nil
		}
		raw = []byte(embedded)
	}
	var items []Finding
	if err := json.Unmarshal(raw, &items); err != nil {
		return fmt.Errorf("decode findings: %w", err)
	}
	*l = items
	return nil
}

// Audit is a planned or performed QHSE audit.
type Audit struct {
	ID                   string       `json:"id"`
	Title                string       `json:"title"`
	AuditType            string       `json:"audit_type,omitempty"`
	Service              string       `json:"service,omitempty"`
	Date                 backend.Date `json:"date,omitempty"`
	Auditor              string       `json:"auditor,omitempty"`
	Status               string       `json:"status,omitempty"`
	Findings             FindingList  `json:"findings"`
	ConformitiesCount    int          `json:"conformities_count"`
	NonConformitiesCount int          `json:"non_conformities_count"`
	OpportunitiesCount   int          `json:"opportunities_count"`
}

// ValidFindingType reports whether t is a known finding type.
func ValidFindingType(t string) bool {
	switch t {
	case FindingConformite, FindingNonConformite, FindingOpportunite:
		return true
	}
	return false
}

// SyncCounts recomputes the redundant counters from the findings list.
// Every mutation of Findings must go through this.
func (a *Audit) SyncCounts() {
	a.ConformitiesCount = 0
	a.NonConformitiesCount = 0
	a.OpportunitiesCount = 0
	for _, f := range a.Findings {
		switch f.Type {
		case FindingConformite:
			a.ConformitiesCount++
		case FindingNonConformite:
			a.NonConformitiesCount++
		case FindingOpportunite:
			a.OpportunitiesCount++
		}
	}
}
