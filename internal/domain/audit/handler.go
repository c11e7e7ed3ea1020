package audit

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/hospiops/facilityhub/internal/platform/auth"
	"github.com/hospiops/facilityhub/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/audits", h.List)
	api.GET("/audits/summary", h.Summary)
	api.GET("/audits/:id", h.Get)

	writers := api.Group("", auth.RequireRole("superviseur_qhse", "dop"))
	writers.POST("/audits", h.Create)
	writers.PUT("/audits/:id", h.Update)
	writers.POST("/audits/:id/findings", h.AddFinding)
	writers.DELETE("/audits/:id/findings/:index", h.DeleteFinding)
}

func (h *Handler) List(c echo.Context) error {
	audits, err := h.svc.List(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	p := pagination.FromContext(c)
	start, end := p.Slice(len(audits))
	return c.JSON(http.StatusOK, pagination.NewResponse(audits[start:end], len(audits), p.Limit, p.Offset))
}

func (h *Handler) Get(c echo.Context) error {
	a, err := h.svc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "audit introuvable")
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) Create(c echo.Context) error {
	var a Audit
	if err := c.Bind(&a); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.Create(c.Request().Context(), &a); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, a)
}

func (h *Handler) Update(c echo.Context) error {
	var a Audit
	if err := c.Bind(&a); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	a.ID = c.Param("id")
	if err := h.svc.Update(c.Request().Context(), &a); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) AddFinding(c echo.Context) error {
	var f Finding
	if err := c.Bind(&f); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	a, err := h.svc.AddFinding(c.Request().Context(), c.Param("id"), f)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) DeleteFinding(c echo.Context) error {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "index de constat invalide")
	}
	a, err := h.svc.DeleteFinding(c.Request().Context(), c.Param("id"), index)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) Summary(c echo.Context) error {
	sum, err := h.svc.Summarize(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return c.JSON(http.StatusOK, sum)
}
