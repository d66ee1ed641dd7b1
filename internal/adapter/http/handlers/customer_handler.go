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

// CustomerHandler serves the customer book and the pools under it.
type CustomerHandler struct {
	usecase usecase.ICustomerUseCase
}

func NewCustomerHandler(uc usecase.ICustomerUseCase) *CustomerHandler {
	return &CustomerHandler{usecase: uc}
}

// ListCustomers answers with the filtered customer array. With counts=true
// it wraps the array with per-status counts for the dashboard tabs.
func (h *CustomerHandler) ListCustomers(c *gin.Context) {
	f, ok := listFilter(c)
	if !ok {
		return
	}
	res, err := h.usecase.List(c.Request.Context(), f)
	if err != nil {
		respondError(c, mapCustomerError(err))
		return
	}
	if c.Query("counts") == "true" {
		c.JSON(http.StatusOK, res)
		return
	}
	if res.Items == nil {
		res.Items = []entities.Customer{}
	}
	c.JSON(http.StatusOK, res.Items)
}

func (h *CustomerHandler) GetCustomer(c *gin.Context) {
	customer, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, mapCustomerError(err))
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	var payload request.CustomerRequest
	if !bindJSON(c, &payload) {
		return
	}
	customer, err := h.usecase.Create(c.Request.Context(), payload.ToInput())
	if err != nil {
		respondError(c, mapCustomerError(err))
		return
	}
	c.JSON(http.StatusCreated, customer)
}

func (h *CustomerHandler) UpdateCustomer(c *gin.Context) {
	var payload request.CustomerRequest
	if !bindJSON(c, &payload) {
		return
	}
	customer, err := h.usecase.Update(c.Request.Context(), c.Param("id"), payload.ToInput())
	if err != nil {
		respondError(c, mapCustomerError(err))
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (h *CustomerHandler) DeactivateCustomer(c *gin.Context) {
	customer, err := h.usecase.Deactivate(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, mapCustomerError(err))
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (h *CustomerHandler) AddPool(c *gin.Context) {
	var payload request.PoolRequest
	if !bindJSON(c, &payload) {
		return
	}
	pool, err := h.usecase.AddPool(c.Request.Context(), c.Param("id"), payload.ToInput())
	if err != nil {
		respondError(c, mapCustomerError(err))
		return
	}
	c.JSON(http.StatusCreated, pool)
}

func (h *CustomerHandler) AddReading(c *gin.Context) {
	var payload request.ReadingRequest
	if !bindJSON(c, &payload) {
		return
	}
	pool, err := h.usecase.AddReading(c.Request.Context(), c.Param("id"), c.Param("pool_id"), payload.ToReading())
	if err != nil {
		respondError(c, mapCustomerError(err))
		return
	}
	c.JSON(http.StatusCreated, pool)
}

func (h *CustomerHandler) ListReadings(c *gin.Context) {
	readings, err := h.usecase.ListReadings(c.Request.Context(), c.Param("id"), c.Param("pool_id"))
	if err != nil {
		respondError(c, mapCustomerError(err))
		return
	}
	c.JSON(http.StatusOK, readings)
}

func (h *CustomerHandler) CustomerStats(c *gin.Context) {
	stats, err := h.usecase.Stats(c.Request.Context())
	if err != nil {
		respondError(c, mapCustomerError(err))
		return
	}
	c.JSON(http.StatusOK, stats)
}

func mapCustomerError(err error) *pkg.AppError {
	if appErr, ok := mapCommonError(err); ok {
		return appErr
	}
	switch {
	case errors.Is(err, usecase.ErrInvalidCustomerID):
		return errInvalidRequest
	case errors.Is(err, entities.ErrPoolNotFound):
		return pkg.NewDomainErrorSimple("POOL_NOT_FOUND", "Pool not found", http.StatusNotFound)
	default:
		return internalError(err)
	}
}
