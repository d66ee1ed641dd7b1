package entities

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus represents the provider outcome of a card payment.
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusApproved PaymentStatus = "approved"
	PaymentStatusRejected PaymentStatus = "rejected"
)

// InvoicePayment records a card payment collected through the payment
// provider for an invoice.
//
// ProviderPayloadRaw keeps the original provider body for reconciliation;
// ProviderPayload is a parsed view of it.
type InvoicePayment struct {
	ID         string          `json:"id"`
	InvoiceID  string          `json:"invoiceId"`
	CustomerID string          `json:"customerId"`
	Amount     decimal.Decimal `json:"amount"`
	Date       time.Time       `json:"date"`
	Status     PaymentStatus   `json:"status"`

	ProviderPayloadRaw json.RawMessage        `json:"providerPayloadRaw,omitempty"`
	ProviderPayload    map[string]interface{} `json:"providerPayload,omitempty"`
}
