package hygiene

import (
	"net/http"

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
	api.GET("/sterilisations", h.ListCycles)
	api.GET("/sterilisations/:id", h.GetCycle)
	api.GET("/dechets", h.ListWaste)
	api.GET("/linge", h.ListLaundry)
	api.GET("/hygiene/summary", h.Summary)

	api.POST("/sterilisations", h.RecordCycle)
	api.POST("/dechets", h.RecordWaste)
	api.POST("/linge", h.RecordLaundry)

	writes := api.Group("", auth.RequireSupervisor())
	writes.PUT("/sterilisations/:id/resultat", h.SetCycleResult)
}

func (h *Handler) ListCycles(c echo.Context) error {
	cycles, err := h.svc.ListCycles(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	p := pagination.FromContext(c)
	start, end := p.Slice(len(cycles))
	return c.JSON(http.StatusOK, pagination.NewResponse(cycles[start:end], len(cycles), p.Limit, p.Offset))
}

func (h *Handler) GetCycle(c echo.Context) error {
	cycle, err := h.svc.GetCycle(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "cycle introuvable")
	}
	return c.JSON(http.StatusOK, cycle)
}

func (h *Handler) RecordCycle(c echo.Context) error {
	var cycle SterilizationCycle
	if err := c.Bind(&cycle); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if cycle.Operator == "" {
		cycle.Operator = auth.UserIDFromContext(c.Request().Context())
	}
	if err := h.svc.RecordCycle(c.Request().Context(), &cycle); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, cycle)
}

type resultRequest struct {
	Result string `json:"result"`
}

func (h *Handler) SetCycleResult(c echo.Context) error {
	var req resultRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	cycle, err := h.svc.SetCycleResult(c.Request().Context(), c.Param("id"), req.Result)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, cycle)
}

func (h *Handler) ListWaste(c echo.Context) error {
	waste, err := h.svc.ListWaste(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	p := pagination.FromContext(c)
	start, end := p.Slice(len(waste))
	return c.JSON(http.StatusOK, pagination.NewResponse(waste[start:end], len(waste), p.Limit, p.Offset))
}

func (h *Handler) RecordWaste(c echo.Context) error {
	var w MedicalWaste
	if err := c.Bind(&w); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.RecordWaste(c.Request().Context(), &w); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, w)
}

func (h *Handler) ListLaundry(c echo.Context) error {
	laundry, err := h.svc.ListLaundry(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	p := pagination.FromContext(c)
	start, end := p.Slice(len(laundry))
	return c.JSON(http.StatusOK, pagination.NewResponse(laundry[start:end], len(laundry), p.Limit, p.Offset))
}

func (h *Handler) RecordLaundry(c echo.Context) error {
	var l LaundryTracking
	if err := c.Bind(&l); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.RecordLaundry(c.Request().Context(), &l); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, l)
}

func (h *Handler) Summary(c echo.Context) error {
	sum, err := h.svc.Summarize(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return c.JSON(http.StatusOK, sum)
}
