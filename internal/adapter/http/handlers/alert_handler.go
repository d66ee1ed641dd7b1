package handlers

import (
	"errors"
	"net/http"

	"poolpro/internal/domain/entities"
	"poolpro/internal/usecase"
	"poolpro/pkg"

	"github.com/gin-gonic/gin"
)

type AlertHandler struct {
	usecase usecase.IAlertUseCase
}

func NewAlertHandler(uc usecase.IAlertUseCase) *AlertHandler {
	return &AlertHandler{usecase: uc}
}

// ListAlerts filters by status (open, resolved or all), severity, type and
// customer_id.
func (h *AlertHandler) ListAlerts(c *gin.Context) {
	f, ok := listFilter(c)
	if !ok {
		return
	}
	res, err := h.usecase.List(c.Request.Context(), f)
	if err != nil {
		respondError(c, mapAlertError(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *AlertHandler) GetAlert(c *gin.Context) {
	alert, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, mapAlertError(err))
		return
	}
	c.JSON(http.StatusOK, alert)
}

func (h *AlertHandler) ResolveAlert(c *gin.Context) {
	alert, err := h.usecase.Resolve(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, mapAlertError(err))
		return
	}
	c.JSON(http.StatusOK, alert)
}

// GenerateAlerts runs the rules and returns only the alerts that were new.
func (h *AlertHandler) GenerateAlerts(c *gin.Context) {
	created, err := h.usecase.Generate(c.Request.Context())
	if err != nil {
		respondError(c, mapAlertError(err))
		return
	}
	if created == nil {
		created = []entities.Alert{}
	}
	c.JSON(http.StatusOK, gin.H{"created": len(created), "alerts": created})
}

func (h *AlertHandler) AlertStats(c *gin.Context) {
	stats, err := h.usecase.Stats(c.Request.Context())
	if err != nil {
		respondError(c, mapAlertError(err))
		return
	}
	c.JSON(http.StatusOK, stats)
}

func mapAlertError(err error) *pkg.AppError {
	if appErr, ok := mapCommonError(err); ok {
		return appErr
	}
	switch {
	case errors.Is(err, usecase.ErrInvalidAlertID):
		return errInvalidRequest
	case errors.Is(err, usecase.ErrAlertNotFound):
		return pkg.NewDomainErrorSimple("ALERT_NOT_FOUND", "Alert not found", http.StatusNotFound)
	default:
		return internalError(err)
	}
}
