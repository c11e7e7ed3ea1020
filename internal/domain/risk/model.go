// Package risk implements the risk register and its score-bucket
// scoring, applied identically to the gross and the residual
// probability/severity pair.
package risk

import (
	"github.com/hospiops/facilityhub/internal/platform/backend"
)

// Probability ordinals.
const (
	ProbTresFaible = "tres_faible"
	ProbFaible     = "faible"
	ProbMoyenne    = "moyenne"
	ProbElevee     = "elevee"
	ProbTresElevee = "tres_elevee"
)

// Severity ordinals.
const (
	SevNegligeable = "negligeable"
	SevMineure     = "mineure"
	SevModeree     = "moderee"
	SevMajeure     = "majeure"
	SevCritique    = "critique"
)

// Risk levels, the bucket outputs.
const (
	LevelTresFaible = "tres_faible"
	LevelFaible     = "faible"
	LevelMoyen      = "moyen"
	LevelEleve      = "eleve"
	LevelTresEleve  = "tres_eleve"
)

var probabilityOrdinals = map[string]int{
	ProbTresFaible: 1,
	ProbFaible:     2,
	ProbMoyenne:    3,
	ProbElevee:     4,
	ProbTresElevee: 5,
}

var severityOrdinals = map[string]int{
	SevNegligeable: 1,
	SevMineure:     2,
	SevModeree:     3,
	SevMajeure:     4,
	SevCritique:    5,
}

// Risk is an entry in the risk register. The residual pair is recorded
// after mitigation controls and scored with the same bucket function.
type Risk struct {
	ID                  string       `json:"id"`
	Title               string       `json:"title"`
	Description         string       `json:"description,omitempty"`
	Category            string       `json:"category,omitempty"`
	Service             string       `json:"service,omitempty"`
	Probability         string       `json:"probability"`
	Severity            string       `json:"severity"`
	Level               string       `json:"level"`
	Mitigation          string       `json:"mitigation,omitempty"`
	ResidualProbability string       `json:"residual_probability,omitempty"`
	ResidualSeverity    string       `json:"residual_severity,omitempty"`
	ResidualLevel       string       `json:"residual_level,omitempty"`
	IdentifiedAt        backend.Date `json:"identified_at,omitempty"`
	Owner               string       `json:"owner,omitempty"`
}

// ValidProbability reports whether p is a known probability ordinal.
func ValidProbability(p string) bool {
	_, ok := probabilityOrdinals[p]
	return ok
}

// ValidSeverity reports whether s is a known severity ordinal.
func ValidSeverity(s string) bool {
	_, ok := severityOrdinals[s]
	return ok
}

// Level maps a probability/severity pair to its risk level through the
// fixed score buckets. Unknown ordinals yield the empty string.
func Level(probability, severity string) string {
	p, okP := probabilityOrdinals[probability]
	s, okS := severityOrdinals[severity]
	if !okP || !okS {
		return ""
	}
	return bucket(p * s)
}

func bucket(score int) string {
	switch {
	case score <= 4:
		return LevelTresFaible
	case score <= 8:
		return LevelFaible
	case score <= 12:
		return LevelMoyen
	case score <= 16:
		return LevelEleve
	default:
		return LevelTresEleve
	}
}

// Score applies the level function to both pairs of a risk. The
// residual level is only computed when both residual ordinals are set.
func Score(r *Risk) {
	r.Level = Level(r.Probability, r.Severity)
	if r.ResidualProbability != "" && r.ResidualSeverity != "" {
		r.ResidualLevel = Level(r.ResidualProbability, r.ResidualSeverity)
	} else {
		r.ResidualLevel = ""
	}
}
