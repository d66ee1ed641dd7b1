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

type QuoteHandler struct {
	usecase usecase.IQuoteUseCase
}

func NewQuoteHandler(uc usecase.IQuoteUseCase) *QuoteHandler {
	return &QuoteHandler{usecase: uc}
}

func (h *QuoteHandler) ListQuotes(c *gin.Context) {
	f, ok := listFilter(c)
	if !ok {
		return
	}
	res, err := h.usecase.List(c.Request.Context(), f)
	if err != nil {
		respondError(c, mapQuoteError(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *QuoteHandler) GetQuote(c *gin.Context) {
	quote, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, mapQuoteError(err))
		return
	}
	c.JSON(http.StatusOK, quote)
}

func (h *QuoteHandler) CreateQuote(c *gin.Context) {
	var payload request.QuoteRequest
	if !bindJSON(c, &payload) {
		return
	}
	quote, err := h.usecase.Create(c.Request.Context(), payload.ToInput())
	if err != nil {
		respondError(c, mapQuoteError(err))
		return
	}
	c.JSON(http.StatusCreated, quote)
}

// UpdateQuote edits a pending quote and recomputes its total.
func (h *QuoteHandler) UpdateQuote(c *gin.Context) {
	var payload request.QuoteRequest
	if !bindJSON(c, &payload) {
		return
	}
	quote, err := h.usecase.Update(c.Request.Context(), c.Param("id"), payload.ToInput())
	if err != nil {
		respondError(c, mapQuoteError(err))
		return
	}
	c.JSON(http.StatusOK, quote)
}

// ApproveQuote returns the approved quote together with the job it scheduled.
func (h *QuoteHandler) ApproveQuote(c *gin.Context) {
	res, err := h.usecase.Approve(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, mapQuoteError(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *QuoteHandler) DeclineQuote(c *gin.Context) {
	quote, err := h.usecase.Decline(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, mapQuoteError(err))
		return
	}
	c.JSON(http.StatusOK, quote)
}

func mapQuoteError(err error) *pkg.AppError {
	if appErr, ok := mapCommonError(err); ok {
		return appErr
	}
	switch {
	case errors.Is(err, usecase.ErrInvalidQuoteID):
		return errInvalidRequest
	case errors.Is(err, usecase.ErrQuoteNotFound):
		return pkg.NewDomainErrorSimple("QUOTE_NOT_FOUND", "Quote not found", http.StatusNotFound)
	case errors.Is(err, entities.ErrQuoteExpired):
		return pkg.NewDomainErrorSimple("QUOTE_EXPIRED", "Quote has expired", http.StatusConflict)
	default:
		return internalError(err)
	}
}
