package handlers

import (
	"errors"
	"net/http"

	request "poolpro/internal/adapter/http/dto/request"
	"poolpro/internal/usecase"
	"poolpro/pkg"

	"github.com/gin-gonic/gin"
)

type TechnicianHandler struct {
	usecase usecase.ITechnicianUseCase
}

func NewTechnicianHandler(uc usecase.ITechnicianUseCase) *TechnicianHandler {
	return &TechnicianHandler{usecase: uc}
}

func (h *TechnicianHandler) ListTechnicians(c *gin.Context) {
	f, ok := listFilter(c)
	if !ok {
		return
	}
	res, err := h.usecase.List(c.Request.Context(), f)
	if err != nil {
		respondError(c, mapTechnicianError(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *TechnicianHandler) GetTechnician(c *gin.Context) {
	tech, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, mapTechnicianError(err))
		return
	}
	c.JSON(http.StatusOK, tech)
}

func (h *TechnicianHandler) CreateTechnician(c *gin.Context) {
	var payload request.TechnicianRequest
	if !bindJSON(c, &payload) {
		return
	}
	tech, err := h.usecase.Create(c.Request.Context(), payload.ToInput())
	if err != nil {
		respondError(c, mapTechnicianError(err))
		return
	}
	c.JSON(http.StatusCreated, tech)
}

func (h *TechnicianHandler) UpdateTechnician(c *gin.Context) {
	var payload request.TechnicianRequest
	if !bindJSON(c, &payload) {
		return
	}
	tech, err := h.usecase.Update(c.Request.Context(), c.Param("id"), payload.ToInput())
	if err != nil {
		respondError(c, mapTechnicianError(err))
		return
	}
	c.JSON(http.StatusOK, tech)
}

func mapTechnicianError(err error) *pkg.AppError {
	if appErr, ok := mapCommonError(err); ok {
		return appErr
	}
	if errors.Is(err, usecase.ErrInvalidTechnicianID) {
		return errInvalidRequest
	}
	return internalError(err)
}
