package interfaces

import (
	"context"
	"poolpro/internal/domain/entities"
)

// IInvoicePaymentRepository stores gateway payments made against invoices,
// keeping the provider payload for traceability.
type IInvoicePaymentRepository interface {
	Create(ctx context.Context, p entities.InvoicePayment) (entities.InvoicePayment, error)
	GetByID(ctx context.Context, id string) (entities.InvoicePayment, error)
	ListByInvoiceID(ctx context.Context, invoiceID string) ([]entities.InvoicePayment, error)
}
