package maintenance

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
	api.GET("/maintenances", h.List)
	api.GET("/maintenances/summary", h.Summary)
	api.GET("/maintenances/retards", h.Overdues)
	api.GET("/maintenances/:id", h.Get)
	api.GET("/equipements", h.ListEquipment)
	api.GET("/equipements/:id", h.GetEquipment)

	writes := api.Group("", auth.RequireSupervisor())
	writes.POST("/maintenances", h.Schedule)
	writes.PUT("/maintenances/:id", h.Update)
	writes.PUT("/maintenances/:id/statut", h.UpdateStatus)
	writes.POST("/equipements", h.AddEquipment)
	writes.PUT("/equipements/:id", h.UpdateEquipment)
}

func (h *Handler) List(c echo.Context) error {
	userID := auth.UserIDFromContext(c.Request().Context())
	tasks, err := h.svc.ListVisible(c.Request().Context(), userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	p := pagination.FromContext(c)
	start, end := p.Slice(len(tasks))
	return c.JSON(http.StatusOK, pagination.NewResponse(tasks[start:end], len(tasks), p.Limit, p.Offset))
}

func (h *Handler) Get(c echo.Context) error {
	t, err := h.svc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "intervention introuvable")
	}
	return c.JSON(http.StatusOK, t)
}

func (h *Handler) Schedule(c echo.Context) error {
	var t Task
	if err := c.Bind(&t); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.Schedule(c.Request().Context(), &t); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, t)
}

func (h *Handler) Update(c echo.Context) error {
	var t Task
	if err := c.Bind(&t); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	t.ID = c.Param("id")
	if err := h.svc.Update(c.Request().Context(), &t); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, t)
}

type statusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) UpdateStatus(c echo.Context) error {
	var req statusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	t, err := h.svc.UpdateStatus(c.Request().Context(), c.Param("id"), req.Status)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, t)
}

func (h *Handler) Overdues(c echo.Context) error {
	userID := auth.UserIDFromContext(c.Request().Context())
	tasks, err := h.svc.Overdues(c.Request().Context(), userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return c.JSON(http.StatusOK, tasks)
}

func (h *Handler) Summary(c echo.Context) error {
	userID := auth.UserIDFromContext(c.Request().Context())
	sum, err := h.svc.Summarize(c.Request().Context(), userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return c.JSON(http.StatusOK, sum)
}

func (h *Handler) ListEquipment(c echo.Context) error {
	equipment, err := h.svc.ListEquipment(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	p := pagination.FromContext(c)
	start, end := p.Slice(len(equipment))
	return c.JSON(http.StatusOK, pagination.NewResponse(equipment[start:end], len(equipment), p.Limit, p.Offset))
}

func (h *Handler) GetEquipment(c echo.Context) error {
	e, err := h.svc.GetEquipment(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "équipement introuvable")
	}
	return c.JSON(http.StatusOK, e)
}

func (h *Handler) AddEquipment(c echo.Context) error {
	var e Equipment
	if err := c.Bind(&e); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.AddEquipment(c.Request().Context(), &e); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, e)
}

func (h *Handler) UpdateEquipment(c echo.Context) error {
	var e Equipment
	if err := c.Bind(&e); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	e.ID = c.Param("id")
	if err := h.svc.UpdateEquipment(c.Request().Context(), &e); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, e)
}
