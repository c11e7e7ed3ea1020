package incident

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hospiops/facilityhub/internal/platform/auth"
	"github.com/hospiops/facilityhub/internal/platform/export"
	"github.com/hospiops/facilityhub/pkg/pagination"
)

// exportColumns describes the incident register export layout, shared
// by the Excel and PDF endpoints.
var exportColumns = []export.Column{
	{Key: "id", Label: "ID"},
	{Key: "type", Label: "Type"},
	{Key: "description", Label: "Description"},
	{Key: "service", Label: "Service"},
	{Key: "lieu", Label: "Lieu"},
	{Key: "statut", Label: "Statut"},
	{Key: "priorite", Label: "Priorité"},
	{Key: "date_creation", Label: "Date de création"},
	{Key: "resolution_date", Label: "Date de résolution"},
}

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
	api.GET("/incidents", h.List)
	api.GET("/incidents/stats", h.Stats)
	api.GET("/incidents/export/excel", h.ExportExcel)
	api.GET("/incidents/export/pdf", h.ExportPDF)
	api.GET("/incidents/:id", h.Get)
	api.POST("/incidents", h.Declare)
	api.PUT("/incidents/:id", h.Update)
	api.PUT("/incidents/:id/statut", h.UpdateStatus)
	api.PUT("/incidents/:id/assignee", h.Assign)
}

func (h *Handler) List(c echo.Context) error {
	userID := auth.UserIDFromContext(c.Request().Context())
	incidents, err := h.svc.ListVisible(c.Request().Context(), userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	p := pagination.FromContext(c)
	start, end := p.Slice(len(incidents))
	return c.JSON(http.StatusOK, pagination.NewResponse(incidents[start:end], len(incidents), p.Limit, p.Offset))
}

func (h *Handler) Get(c echo.Context) error {
	inc, err := h.svc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "incident introuvable")
	}
	return c.JSON(http.StatusOK, inc)
}

func (h *Handler) Declare(c echo.Context) error {
	var inc Incident
	if err := c.Bind(&inc); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	reporter := auth.UserIDFromContext(c.Request().Context())
	if err := h.svc.Declare(c.Request().Context(), &inc, reporter); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, inc)
}

func (h *Handler) Update(c echo.Context) error {
	var inc Incident
	if err := c.Bind(&inc); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	inc.ID = c.Param("id")
	if err := h.svc.Update(c.Request().Context(), &inc); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, inc)
}

type statusRequest struct {
	Statut string `json:"statut"`
}

func (h *Handler) UpdateStatus(c echo.Context) error {
	var req statusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	inc, err := h.svc.UpdateStatus(c.Request().Context(), c.Param("id"), req.Statut)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, inc)
}

type assignRequest struct {
	AssignedTo string `json:"assigned_to"`
}

func (h *Handler) Assign(c echo.Context) error {
	var req assignRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	inc, err := h.svc.Assign(c.Request().Context(), c.Param("id"), req.AssignedTo)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, inc)
}

func (h *Handler) Stats(c echo.Context) error {
	userID := auth.UserIDFromContext(c.Request().Context())
	stats, err := h.svc.Stats(c.Request().Context(), userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return c.JSON(http.StatusOK, stats)
}

func (h *Handler) ExportExcel(c echo.Context) error {
	rows, err := h.exportRows(c)
	if err != nil {
		return err
	}
	data, err := export.Excel([]export.Sheet{
		{Name: "Incidents", Columns: exportColumns, Rows: rows},
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	h.observeExport("xlsx")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+export.Filename("incidents", "xlsx")+`"`)
	return c.Blob(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

func (h *Handler) ExportPDF(c echo.Context) error {
	rows, err := h.exportRows(c)
	if err != nil {
		return err
	}
	data, err := export.PDF("Registre des incidents", exportColumns, rows)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	h.observeExport("pdf")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+export.Filename("incidents", "pdf")+`"`)
	return c.Blob(http.StatusOK, "application/pdf", data)
}

func (h *Handler) observeExport(format string) {
	if h.exports != nil {
		h.exports.ObserveExport("incidents", format)
	}
}

func (h *Handler) exportRows(c echo.Context) ([]map[string]any, error) {
	userID := auth.UserIDFromContext(c.Request().Context())
	incidents, err := h.svc.ListVisible(c.Request().Context(), userID)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	rows := make([]map[string]any, len(incidents))
	for i, inc := range incidents {
		rows[i] = map[string]any{
			"id":              inc.ID,
			"type":            inc.Type,
			"description":     inc.Description,
			"service":         inc.Service,
			"lieu":            inc.Lieu,
			"statut":          inc.Statut,
			"priorite":        inc.Priorite,
			"date_creation":   inc.DateCreation.Time,
			"resolution_date": inc.ResolutionDate.Time,
		}
	}
	return rows, nil
}
