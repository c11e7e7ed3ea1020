package booking

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
	api.GET("/reservations", h.List)
	api.GET("/reservations/stats", h.Stats)
	api.GET("/reservations/:id", h.Get)
	api.POST("/reservations", h.Book)
	api.PUT("/reservations/:id/annulation", h.Cancel)
}

func (h *Handler) List(c echo.Context) error {
	bookings, err := h.svc.List(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	p := pagination.FromContext(c)
	start, end := p.Slice(len(bookings))
	return c.JSON(http.StatusOK, pagination.NewResponse(bookings[start:end], len(bookings), p.Limit, p.Offset))
}

func (h *Handler) Get(c echo.Context) error {
	b, err := h.svc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "réservation introuvable")
	}
	return c.JSON(http.StatusOK, b)
}

func (h *Handler) Book(c echo.Context) error {
	var b Booking
	if err := c.Bind(&b); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	bookedBy := auth.UserIDFromContext(c.Request().Context())
	if err := h.svc.Book(c.Request().Context(), &b, bookedBy); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, b)
}

func (h *Handler) Cancel(c echo.Context) error {
	b, err := h.svc.Cancel(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, b)
}

func (h *Handler) Stats(c echo.Context) error {
	stats, err := h.svc.Summarize(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return c.JSON(http.StatusOK, stats)
}
