package routes

import (
	"poolpro/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const PathInvoices = "/invoices"

func addBillingRoutes(rg *gin.RouterGroup, invoiceHandler *handlers.InvoiceHandler, paymentHandler *handlers.InvoicePaymentHandler) {
	invoices := rg.Group(PathInvoices)
	{
		invoices.GET("", invoiceHandler.ListInvoices)
		invoices.POST("", invoiceHandler.CreateInvoice)
		invoices.GET("/:id", invoiceHandler.GetInvoice)
		invoices.PUT("/:id", invoiceHandler.UpdateInvoice)
		invoices.POST("/:id/send", invoiceHandler.SendInvoice)
		invoices.POST("/:id/pay", paymentHandler.PayInvoice)
		invoices.GET("/:id/payments", paymentHandler.ListPayments)
	}
}
