package interfaces

import (
	"context"
	"encoding/json"
)

// IPaymentGateway abstracts external card payment providers (Mercado Pago).
//
// Invoices paid by card go through it; the provider response payload is kept
// on the InvoicePayment for traceability.
type IPaymentGateway interface {
	CreatePayment(ctx context.Context, requestPayload json.RawMessage) (providerPaymentID string, providerStatus string, providerResponse json.RawMessage, err error)
}
