package incident

import (
	"time"

	"github.com/hospiops/facilityhub/pkg/kpi"
)

// Stats is the chart-ready aggregation over an incident list.
type Stats struct {
	Total             int             `json:"total"`
	Pending           int             `json:"pending"`
	ResolutionRate    string          `json:"resolution_rate"`
	AvgResolutionTime string          `json:"avg_resolution_time"`
	ByStatut          []kpi.NameValue `json:"by_statut"`
	ByPriorite        []kpi.NameValue `json:"by_priorite"`
	ByType            []kpi.NameValue `json:"by_type"`
	ByService         []kpi.NameValue `json:"by_service"`
	TopServices       []kpi.NameValue `json:"top_services"`
}

// ComputeStats aggregates the incident KPI figures. Resolution time
// only counts incidents that reached a terminal statut and carry both a
// creation and a resolution date; the rest are excluded from numerator
// and denominator alike.
func ComputeStats(incidents []Incident) Stats {
	resolved := 0
	pending := 0
	var durations []time.Duration
	for _, inc := range incidents {
		if IsTerminal(inc.Statut) {
			resolved++
			if !inc.DateCreation.IsZero() && !inc.ResolutionDate.IsZero() {
				durations = append(durations, inc.ResolutionDate.Sub(inc.DateCreation.Time))
			}
		} else {
			pending++
		}
	}

	byService := kpi.GroupCount(incidents, func(i Incident) string { return i.Service })

	return Stats{
		Total:             len(incidents),
		Pending:           pending,
		ResolutionRate:    kpi.Rate(resolved, len(incidents)),
		AvgResolutionTime: kpi.AvgCeilDays(durations),
		ByStatut:          kpi.GroupCount(incidents, func(i Incident) string { return i.Statut }),
		ByPriorite:        kpi.GroupCount(incidents, func(i Incident) string { return i.Priorite }),
		ByType:            kpi.GroupCount(incidents, func(i Incident) string { return i.Type }),
		ByService:         byService,
		TopServices:       kpi.TopN(byService, 3),
	}
}
