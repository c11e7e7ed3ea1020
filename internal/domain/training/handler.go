package training

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
	api.GET("/formations", h.List)
	api.GET("/formations/summary", h.Summary)
	api.GET("/formations/:id", h.Get)
	api.GET("/formations/:id/participations", h.Participations)
	api.GET("/competences", h.ListCompetencies)

	writers := api.Group("", auth.RequireSupervisor())
	writers.POST("/formations", h.Create)
	writers.PUT("/formations/:id", h.Update)
	writers.POST("/formations/:id/participations", h.RecordParticipation)
	writers.POST("/competences", h.AddCompetency)
}

func (h *Handler) List(c echo.Context) error {
	trainings, err := h.svc.List(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	p := pagination.FromContext(c)
	start, end := p.Slice(len(trainings))
	return c.JSON(http.StatusOK, pagination.NewResponse(trainings[start:end], len(trainings), p.Limit, p.Offset))
}

func (h *Handler) Get(c echo.Context) error {
	t, err := h.svc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "formation introuvable")
	}
	return c.JSON(http.StatusOK, t)
}

func (h *Handler) Create(c echo.Context) error {
	var t Training
	if err := c.Bind(&t); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.Create(c.Request().Context(), &t); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, t)
}

func (h *Handler) Update(c echo.Context) error {
	var t Training
	if err := c.Bind(&t); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	t.ID = c.Param("id")
	if err := h.svc.Update(c.Request().Context(), &t); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, t)
}

func (h *Handler) Participations(c echo.Context) error {
	views, err := h.svc.Participations(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "formation introuvable")
	}
	return c.JSON(http.StatusOK, views)
}

func (h *Handler) RecordParticipation(c echo.Context) error {
	var p Participation
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	p.TrainingID = c.Param("id")
	if err := h.svc.RecordParticipation(c.Request().Context(), &p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *Handler) ListCompetencies(c echo.Context) error {
	comps, err := h.svc.ListCompetencies(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return c.JSON(http.StatusOK, comps)
}

func (h *Handler) AddCompetency(c echo.Context) error {
	var comp Competency
	if err := c.Bind(&comp); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.AddCompetency(c.Request().Context(), &comp); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, comp)
}

func (h *Handler) Summary(c echo.Context) error {
	sum, err := h.svc.Summarize(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return c.JSON(http.StatusOK, sum)
}
