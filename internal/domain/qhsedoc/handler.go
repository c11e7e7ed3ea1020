package qhsedoc

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hospiops/facilityhub/internal/platform/alerts"
	"github.com/hospiops/facilityhub/internal/platform/auth"
	"github.com/hospiops/facilityhub/internal/platform/export"
	"github.com/hospiops/facilityhub/pkg/pagination"
)

var exportColumns = []export.Column{
	{Key: "code", Label: "Code"},
	{Key: "title", Label: "Titre"},
	{Key: "document_type", Label: "Type"},
	{Key: "status", Label: "Statut"},
	{Key: "validity_date", Label: "Date de validité"},
	{Key: "review_date", Label: "Date de révision"},
	{Key: "expired", Label: "Expiré"},
}

type Handler struct {
	svc      *Service
	alertMgr *alerts.Manager
	exports  export.Observer
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithExportObserver counts generated export files.
func WithExportObserver(o export.Observer) HandlerOption {
	return func(h *Handler) { h.exports = o }
}

func NewHandler(svc *Service, alertMgr *alerts.Manager, opts ...HandlerOption) *Handler {
	h := &Handler{svc: svc, alertMgr: alertMgr}
	for _, o := range opts {
		o(h)
	}
	return h
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/documents", h.List)
	api.GET("/documents/summary", h.Summary)
	api.GET("/documents/alerts", h.Alerts)
	api.POST("/documents/alerts/ack", h.AcknowledgeAlert)
	api.GET("/documents/export/excel", h.ExportExcel)
	api.GET("/documents/export/pdf", h.ExportPDF)
	api.GET("/documents/:id", h.Get)
	api.POST("/documents", h.Create)
	api.PUT("/documents/:id", h.Update)
	api.PUT("/documents/:id/status", h.Transition)
}

func (h *Handler) List(c echo.Context) error {
	views, err := h.svc.List(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	p := pagination.FromContext(c)
	start, end := p.Slice(len(views))
	return c.JSON(http.StatusOK, pagination.NewResponse(views[start:end], len(views), p.Limit, p.Offset))
}

func (h *Handler) Get(c echo.Context) error {
	v, err := h.svc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "document introuvable")
	}
	return c.JSON(http.StatusOK, v)
}

func (h *Handler) Create(c echo.Context) error {
	var doc QHSEDocument
	if err := c.Bind(&doc); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	author := auth.UserIDFromContext(c.Request().Context())
	if err := h.svc.Create(c.Request().Context(), &doc, author); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, doc)
}

func (h *Handler) Update(c echo.Context) error {
	var doc QHSEDocument
	if err := c.Bind(&doc); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	doc.ID = c.Param("id")
	if err := h.svc.Update(c.Request().Context(), &doc); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, doc)
}

type transitionRequest struct {
	Status string `json:"status"`
}

func (h *Handler) Transition(c echo.Context) error {
	var req transitionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	roles := auth.RolesFromContext(c.Request().Context())
	v, err := h.svc.Transition(c.Request().Context(), c.Param("id"), req.Status, roles)
	if err != nil {
		if errors.Is(err, ErrValidationForbidden) {
			return echo.NewHTTPError(http.StatusForbidden, err.Error())
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, v)
}

func (h *Handler) Summary(c echo.Context) error {
	sum, err := h.svc.Summarize(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return c.JSON(http.StatusOK, sum)
}

// Alerts returns the document alerts not yet shown to this session.
func (h *Handler) Alerts(c echo.Context) error {
	docs, err := h.svc.AlertDocuments(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	sessionID := auth.SessionIDFromContext(c.Request().Context())
	list, err := h.alertMgr.ForSession(c.Request().Context(), sessionID, docs)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, list)
}

type ackRequest struct {
	Bucket     string `json:"bucket"`
	DocumentID string `json:"document_id"`
}

// AcknowledgeAlert dismisses an alert for the current session.
func (h *Handler) AcknowledgeAlert(c echo.Context) error {
	var req ackRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.DocumentID == "" || !alerts.ValidBucket(alerts.Bucket(req.Bucket)) {
		return echo.NewHTTPError(http.StatusBadRequest, "alerte invalide")
	}
	sessionID := auth.SessionIDFromContext(c.Request().Context())
	if err := h.alertMgr.Acknowledge(c.Request().Context(), sessionID, alerts.Bucket(req.Bucket), req.DocumentID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) ExportExcel(c echo.Context) error {
	rows, err := h.exportRows(c)
	if err != nil {
		return err
	}
	data, err := export.Excel([]export.Sheet{
		{Name: "Documents", Columns: exportColumns, Rows: rows},
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	h.observeExport("xlsx")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+export.Filename("documents_qhse", "xlsx")+`"`)
	return c.Blob(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

func (h *Handler) ExportPDF(c echo.Context) error {
	rows, err := h.exportRows(c)
	if err != nil {
		return err
	}
	data, err := export.PDF("Base documentaire QHSE", exportColumns, rows)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	h.observeExport("pdf")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+export.Filename("documents_qhse", "pdf")+`"`)
	return c.Blob(http.StatusOK, "application/pdf", data)
}

func (h *Handler) observeExport(format string) {
	if h.exports != nil {
		h.exports.ObserveExport("documents_qhse", format)
	}
}

func (h *Handler) exportRows(c echo.Context) ([]map[string]any, error) {
	views, err := h.svc.List(c.Request().Context())
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	rows := make([]map[string]any, len(views))
	for i, v := range views {
		rows[i] = map[string]any{
			"code":          v.Code,
			"title":         v.Title,
			"document_type": v.DocumentType,
			"status":        v.Status,
			"validity_date": v.ValidityDate.Time,
			"review_date":   v.ReviewDate.Time,
			"expired":       v.Expired,
		}
	}
	return rows, nil
}
