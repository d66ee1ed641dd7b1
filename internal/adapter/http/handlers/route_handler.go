package handlers

import (
	"errors"
	"net/http"

	request "poolpro/internal/adapter/http/dto/request"
	"poolpro/internal/domain/entities"
	"poolpro/internal/usecase"
	"poolpro/pkg"

	"github.com/gin-gonic/gin"
)

type RouteHandler struct {
	usecase usecase.IRouteUseCase
}

func NewRouteHandler(uc usecase.IRouteUseCase) *RouteHandler {
	return &RouteHandler{usecase: uc}
}

// ListRoutes filters by day and technician_id.
func (h *RouteHandler) ListRoutes(c *gin.Context) {
	f, ok := listFilter(c)
	if !ok {
		return
	}
	routes, err := h.usecase.List(c.Request.Context(), f)
	if err != nil {
		respondError(c, mapRouteError(err))
		return
	}
	if routes == nil {
		routes = []entities.Route{}
	}
	c.JSON(http.StatusOK, routes)
}

func (h *RouteHandler) GetRoute(c *gin.Context) {
	route, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, mapRouteError(err))
		return
	}
	c.JSON(http.StatusOK, route)
}

func (h *RouteHandler) CreateRoute(c *gin.Context) {
	var payload request.RouteRequest
	if !bindJSON(c, &payload) {
		return
	}
	route, err := h.usecase.Create(c.Request.Context(), entities.Weekday(payload.Day), payload.TechnicianID)
	if err != nil {
		respondError(c, mapRouteError(err))
		return
	}
	c.JSON(http.StatusCreated, route)
}

func (h *RouteHandler) AddStop(c *gin.Context) {
	var payload request.StopRequest
	if !bindJSON(c, &payload) {
		return
	}
	route, err := h.usecase.AddStop(c.Request.Context(), c.Param("id"), payload.ToInput())
	if err != nil {
		respondError(c, mapRouteError(err))
		return
	}
	c.JSON(http.StatusCreated, route)
}

func (h *RouteHandler) RemoveStop(c *gin.Context) {
	route, err := h.usecase.RemoveStop(c.Request.Context(), c.Param("id"), c.Param("stop_id"))
	if err != nil {
		respondError(c, mapRouteError(err))
		return
	}
	c.JSON(http.StatusOK, route)
}

func (h *RouteHandler) ReorderStops(c *gin.Context) {
	var payload request.ReorderRequest
	if !bindJSON(c, &payload) {
		return
	}
	route, err := h.usecase.Reorder(c.Request.Context(), c.Param("id"), payload.StopIDs)
	if err != nil {
		respondError(c, mapRouteError(err))
		return
	}
	c.JSON(http.StatusOK, route)
}

func (h *RouteHandler) StartStop(c *gin.Context) {
	route, err := h.usecase.StartStop(c.Request.Context(), c.Param("id"), c.Param("stop_id"))
	if err != nil {
		respondError(c, mapRouteError(err))
		return
	}
	c.JSON(http.StatusOK, route)
}

func (h *RouteHandler) CompleteStop(c *gin.Context) {
	route, err := h.usecase.CompleteStop(c.Request.Context(), c.Param("id"), c.Param("stop_id"))
	if err != nil {
		respondError(c, mapRouteError(err))
		return
	}
	c.JSON(http.StatusOK, route)
}

func mapRouteError(err error) *pkg.AppError {
	if appErr, ok := mapCommonError(err); ok {
		return appErr
	}
	switch {
	case errors.Is(err, usecase.ErrInvalidRouteID):
		return errInvalidRequest
	case errors.Is(err, usecase.ErrRouteNotFound):
		return pkg.NewDomainErrorSimple("ROUTE_NOT_FOUND", "Route not found", http.StatusNotFound)
	case errors.Is(err, entities.ErrStopNotFound):
		return pkg.NewDomainErrorSimple("STOP_NOT_FOUND", "Stop not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrRouteAlreadyExists):
		return pkg.NewDomainErrorSimple("ROUTE_ALREADY_EXISTS", "Technician already has a route on this day", http.StatusConflict)
	case errors.Is(err, entities.ErrDuplicateStop):
		return pkg.NewDomainErrorSimple("DUPLICATE_STOP", "Customer already on this route", http.StatusConflict)
	case errors.Is(err, entities.ErrInvalidStopOrder):
		return pkg.NewDomainError("INVALID_STOP_ORDER", "Stop order must list every stop exactly once", err, http.StatusBadRequest)
	default:
		return internalError(err)
	}
}
