package visitor

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
	api.GET("/visiteurs", h.List)
	api.GET("/visiteurs/stats", h.Stats)
	api.GET("/visiteurs/:id", h.Get)
	api.POST("/visiteurs", h.Register)
	api.PUT("/visiteurs/:id/sortie", h.CheckOut)
}

func (h *Handler) List(c echo.Context) error {
	userID := auth.UserIDFromContext(c.Request().Context())
	visitors, err := h.svc.ListVisible(c.Request().Context(), userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	p := pagination.FromContext(c)
	start, end := p.Slice(len(visitors))
	return c.JSON(http.StatusOK, pagination.NewResponse(visitors[start:end], len(visitors), p.Limit, p.Offset))
}

func (h *Handler) Get(c echo.Context) error {
	v, err := h.svc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "visiteur introuvable")
	}
	return c.JSON(http.StatusOK, v)
}

func (h *Handler) Register(c echo.Context) error {
	var v Visitor
	if err := c.Bind(&v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	registeredBy := auth.UserIDFromContext(c.Request().Context())
	if err := h.svc.Register(c.Request().Context(), &v, registeredBy); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, v)
}

func (h *Handler) CheckOut(c echo.Context) error {
	v, err := h.svc.CheckOut(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, v)
}

func (h *Handler) Stats(c echo.Context) error {
	userID := auth.UserIDFromContext(c.Request().Context())
	stats, err := h.svc.Summarize(c.Request().Context(), userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return c.JSON(http.StatusOK, stats)
}
