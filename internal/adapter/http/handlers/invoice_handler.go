package handlers

import (
	"errors"
	"net/http"

	request "poolpro/internal/adapter/http/dto/request"
	"poolpro/internal/usecase"
	"poolpro/pkg"

	"github.com/gin-gonic/gin"
)

// InvoiceHandler serves invoices. Every invoice it returns carries its
// effective status, so unpaid invoices past due read as overdue.
type InvoiceHandler struct {
	usecase usecase.IInvoiceUseCase
}

func NewInvoiceHandler(uc usecase.IInvoiceUseCase) *InvoiceHandler {
	return &InvoiceHandler{usecase: uc}
}

func (h *InvoiceHandler) ListInvoices(c *gin.Context) {
	f, ok := listFilter(c)
	if !ok {
		return
	}
	res, err := h.usecase.List(c.Request.Context(), f)
	if err != nil {
		respondError(c, mapInvoiceError(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	inv, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, mapInvoiceError(err))
		return
	}
	c.JSON(http.StatusOK, inv)
}

func (h *InvoiceHandler) CreateInvoice(c *gin.Context) {
	var payload request.InvoiceRequest
	if !bindJSON(c, &payload) {
		return
	}
	inv, err := h.usecase.Create(c.Request.Context(), payload.ToInput())
	if err != nil {
		respondError(c, mapInvoiceError(err))
		return
	}
	c.JSON(http.StatusCreated, inv)
}

// UpdateInvoice edits a draft invoice and recomputes its totals.
func (h *InvoiceHandler) UpdateInvoice(c *gin.Context) {
	var payload request.InvoiceRequest
	if !bindJSON(c, &payload) {
		return
	}
	inv, err := h.usecase.Update(c.Request.Context(), c.Param("id"), payload.ToInput())
	if err != nil {
		respondError(c, mapInvoiceError(err))
		return
	}
	c.JSON(http.StatusOK, inv)
}

func (h *InvoiceHandler) SendInvoice(c *gin.Context) {
	inv, err := h.usecase.Send(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, mapInvoiceError(err))
		return
	}
	c.JSON(http.StatusOK, inv)
}

func mapInvoiceError(err error) *pkg.AppError {
	if appErr, ok := mapCommonError(err); ok {
		return appErr
	}
	switch {
	case errors.Is(err, usecase.ErrInvalidInvoiceID):
		return errInvalidRequest
	case errors.Is(err, usecase.ErrInvoiceNotFound):
		return pkg.NewDomainErrorSimple("INVOICE_NOT_FOUND", "Invoice not found", http.StatusNotFound)
	default:
		return internalError(err)
	}
}
