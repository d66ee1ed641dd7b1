package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	request "poolpro/internal/adapter/http/dto/request"
	response "poolpro/internal/adapter/http/dto/response"
	"poolpro/internal/usecase"
	"poolpro/pkg"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// InvoicePaymentHandler settles invoices, either recorded by hand or
// charged through Mercado Pago.
type InvoicePaymentHandler struct {
	invoices usecase.IInvoiceUseCase
	payments usecase.IInvoicePaymentUseCase
	logger   *zap.Logger
}

func NewInvoicePaymentHandler(invoices usecase.IInvoiceUseCase, payments usecase.IInvoicePaymentUseCase, logger *zap.Logger) *InvoicePaymentHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InvoicePaymentHandler{invoices: invoices, payments: payments, logger: logger.Named("payment.handler")}
}

// PayInvoice accepts {"method":"check","reference":"1042","amount":"100"}
// for a manual payment; without amount the whole balance is paid. Any other
// body is a Mercado Pago payment request, bare or wrapped in "mp_payload".
func (h *InvoicePaymentHandler) PayInvoice(c *gin.Context) {
	invoiceID := c.Param("id")
	log := h.logger.With(zap.String("invoice_id", invoiceID))
	log.Info("pay start")

	payload, err := readPayRequest(c)
	if err != nil {
		log.Warn("invalid payload", zap.Error(err))
		respondError(c, errInvalidRequest)
		return
	}

	if payload.Manual() {
		inv, err := h.invoices.RecordPayment(c.Request.Context(), invoiceID, payload.ToInput())
		if err != nil {
			log.Warn("manual payment failed", zap.Error(err))
			respondError(c, mapInvoicePaymentError(err))
			return
		}
		log.Info("manual payment recorded", zap.String("method", inv.PaymentMethod), zap.Stringer("balance_due", inv.BalanceDue))
		c.JSON(http.StatusOK, response.InvoicePaidResponse{Invoice: inv})
		return
	}

	created, err := h.payments.Pay(c.Request.Context(), invoiceID, payload.MPPayload)
	if err != nil {
		log.Warn("card payment failed", zap.Error(err))
		appErr := mapInvoicePaymentError(err)
		if created.ID != "" {
			appErr = appErr.WithDetails(response.FromInvoicePayment(created))
		}
		respondError(c, appErr)
		return
	}
	inv, err := h.invoices.GetByID(c.Request.Context(), invoiceID)
	if err != nil {
		respondError(c, mapInvoicePaymentError(err))
		return
	}
	log.Info("card payment recorded", zap.String("payment_id", created.ID), zap.String("status", string(created.Status)))

	res := response.FromInvoicePayment(created)
	c.JSON(http.StatusOK, response.InvoicePaidResponse{Invoice: inv, Payment: &res})
}

// ListPayments returns the provider payments recorded for an invoice.
func (h *InvoicePaymentHandler) ListPayments(c *gin.Context) {
	invoiceID := c.Param("id")
	if _, err := h.invoices.GetByID(c.Request.Context(), invoiceID); err != nil {
		respondError(c, mapInvoicePaymentError(err))
		return
	}
	payments, err := h.payments.ListByInvoiceID(c.Request.Context(), invoiceID)
	if err != nil {
		respondError(c, mapInvoicePaymentError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromInvoicePayments(payments))
}

func readPayRequest(c *gin.Context) (request.PayInvoiceRequest, error) {
	raw, err := c.GetRawData()
	if err != nil {
		return request.PayInvoiceRequest{}, err
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return request.PayInvoiceRequest{MPPayload: json.RawMessage("{}")}, nil
	}
	if !json.Valid(raw) {
		return request.PayInvoiceRequest{}, errors.New("request body is not valid json")
	}

	var envelope request.PayInvoiceRequest
	if err := json.Unmarshal(raw, &envelope); err == nil {
		if envelope.Manual() {
			return envelope, nil
		}
		if wrapped := strings.TrimSpace(string(envelope.MPPayload)); wrapped != "" {
			if wrapped == "null" {
				return request.PayInvoiceRequest{}, errors.New("mp_payload cannot be empty")
			}
			return envelope, nil
		}
	}
	return request.PayInvoiceRequest{MPPayload: json.RawMessage(raw)}, nil
}

func mapInvoicePaymentError(err error) *pkg.AppError {
	if appErr, ok := mapCommonError(err); ok {
		return appErr
	}
	switch {
	case errors.Is(err, usecase.ErrInvalidInvoiceID), errors.Is(err, usecase.ErrInvalidMPPayload), errors.Is(err, usecase.ErrPaymentGatewayBadRequest):
		return errInvalidRequest
	case errors.Is(err, usecase.ErrPaymentGatewayCustomerNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_CUSTOMER_NOT_FOUND", "Payer not found for this Mercado Pago test context", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayInvalidUsers):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_INVALID_USERS", "Invalid users involved between seller token and payer test user", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayUnauthorized):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_UNAUTHORIZED", "Payment provider unauthorized", http.StatusUnauthorized)
	case errors.Is(err, usecase.ErrPaymentGatewayNotConfigured):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_NOT_CONFIGURED", "Card payments are not configured", http.StatusServiceUnavailable)
	case errors.Is(err, usecase.ErrPaymentRejected):
		return pkg.NewDomainErrorSimple("PAYMENT_REJECTED", "Payment rejected by provider", http.StatusPaymentRequired)
	case errors.Is(err, usecase.ErrInvoiceNotFound):
		return pkg.NewDomainErrorSimple("INVOICE_NOT_FOUND", "Invoice not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrPaymentInProgress):
		return pkg.NewDomainErrorSimple("PAYMENT_IN_PROGRESS", "A payment for this invoice is already in progress", http.StatusConflict)
	case errors.Is(err, usecase.ErrInvoiceNotPayable):
		return pkg.NewDomainErrorSimple("INVOICE_NOT_PAYABLE", "Invoice is not awaiting payment", http.StatusConflict)
	default:
		return internalError(err)
	}
}
