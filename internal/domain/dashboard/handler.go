package dashboard

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/hospiops/facilityhub/internal/platform/auth"
	"github.com/hospiops/facilityhub/internal/platform/export"
	"github.com/hospiops/facilityhub/pkg/kpi"
)

type Handler struct {
	svc     *Service
	exports export.Observer
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithExportObserver counts generated export files.
func WithExportObserver(o export.Observer) HandlerOption {
	return func(h *Handler) { h.exports = o }
}

func NewHandler(svc *Service, opts ...HandlerOption) *Handler {
	h := &Handler{svc: svc}
	for _, o := range opts {
		o(h)
	}
	return h
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/dashboard", h.Snapshot)
	api.GET("/dashboard/activite", h.Activity)
	api.GET("/dashboard/export/excel", h.ExportExcel)
	api.GET("/dashboard/export/pdf", h.ExportPDF)
}

func (h *Handler) Snapshot(c echo.Context) error {
	userID := auth.UserIDFromContext(c.Request().Context())
	return c.JSON(http.StatusOK, h.svc.Assemble(c.Request().Context(), userID))
}

// Activity serves the daily series. The range defaults to the last
// seven days and never exceeds one year.
func (h *Handler) Activity(c echo.Context) error {
	end := time.Now()
	start := end.AddDate(0, 0, -6)
	if raw := c.QueryParam("debut"); raw != "" {
		t, err := time.Parse(kpi.DateLayout, raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "date de début invalide")
		}
		start = t
	}
	if raw := c.QueryParam("fin"); raw != "" {
		t, err := time.Parse(kpi.DateLayout, raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "date de fin invalide")
		}
		end = t
	}
	if end.Before(start) {
		return echo.NewHTTPError(http.StatusBadRequest, "la date de fin précède la date de début")
	}
	if end.Sub(start) > 366*24*time.Hour {
		return echo.NewHTTPError(http.StatusBadRequest, "la période demandée dépasse un an")
	}
	userID := auth.UserIDFromContext(c.Request().Context())
	return c.JSON(http.StatusOK, h.svc.DailyActivity(c.Request().Context(), userID, start, end))
}

var summaryColumns = []export.Column{
	{Key: "module", Label: "Module"},
	{Key: "indicateur", Label: "Indicateur"},
	{Key: "valeur", Label: "Valeur"},
}

func (h *Handler) ExportExcel(c echo.Context) error {
	rows := h.summaryRows(c)
	data, err := export.Excel([]export.Sheet{
		{Name: "Synthèse", Columns: summaryColumns, Rows: rows},
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	h.observeExport("xlsx")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+export.Filename("tableau_de_bord", "xlsx")+`"`)
	return c.Blob(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

func (h *Handler) ExportPDF(c echo.Context) error {
	rows := h.summaryRows(c)
	data, err := export.PDF("Tableau de bord", summaryColumns, rows)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	h.observeExport("pdf")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+export.Filename("tableau_de_bord", "pdf")+`"`)
	return c.Blob(http.StatusOK, "application/pdf", data)
}

func (h *Handler) observeExport(format string) {
	if h.exports != nil {
		h.exports.ObserveExport("tableau_de_bord", format)
	}
}

func (h *Handler) summaryRows(c echo.Context) []map[string]any {
	userID := auth.UserIDFromContext(c.Request().Context())
	snap := h.svc.Assemble(c.Request().Context(), userID)
	row := func(module, indicator string, value any) map[string]any {
		return map[string]any{"module": module, "indicateur": indicator, "valeur": value}
	}
	return []map[string]any{
		row("Incidents", "Total", snap.Incidents.Total),
		row("Incidents", "En attente", snap.Incidents.Pending),
		row("Incidents", "Taux de résolution (%)", snap.Incidents.ResolutionRate),
		row("Maintenance", "Interventions", snap.Maintenances.Total),
		row("Maintenance", "En retard", snap.Maintenances.Overdue),
		row("Réservations", "Total", snap.Bookings.Total),
		row("Réservations", "En cours", snap.Bookings.Active),
		row("Documents QHSE", "Total", snap.Documents.Total),
		row("Documents QHSE", "Expirés", snap.Documents.Expired),
		row("Documents QHSE", "Taux de conformité (%)", snap.Documents.ComplianceRate),
		row("Risques", "Total", snap.Risks.Total),
		row("Risques", "Critiques", snap.Risks.Critical),
		row("Audits", "Total", snap.Audits.Total),
		row("Audits", "Taux de conformité (%)", snap.Audits.ConformityRate),
		row("Formations", "Total", snap.Trainings.Total),
		row("Formations", "À venir", snap.Trainings.Upcoming),
		row("Hygiène", "Cycles de stérilisation", snap.Hygiene.Cycles),
		row("Hygiène", "DASRI (kg)", snap.Hygiene.DASRIKg),
		row("Visiteurs", "Total", snap.Visitors.Total),
		row("Visiteurs", "Présents", snap.Visitors.Present),
	}
}
