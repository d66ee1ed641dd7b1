package response

import (
	"time"

	"poolpro/internal/domain/entities"

	"github.com/shopspring/decimal"
)

type InvoicePaymentResponse struct {
	PaymentID   string          `json:"payment_id"`
	ID          string          `json:"id"`
	InvoiceID   string          `json:"invoice_id"`
	CustomerID  string          `json:"customer_id"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate time.Time       `json:"payment_date"`
	Status      string          `json:"status"`

	MPPayloadRaw string                 `json:"mp_payload_raw,omitempty"`
	MPPayload    map[string]interface{} `json:"mp_payload,omitempty"`
}

func FromInvoicePayment(p entities.InvoicePayment) InvoicePaymentResponse {
	return InvoicePaymentResponse{
		PaymentID:    p.ID,
		ID:           p.ID,
		InvoiceID:    p.InvoiceID,
		CustomerID:   p.CustomerID,
		Amount:       p.Amount,
		PaymentDate:  p.Date,
		Status:       string(p.Status),
		MPPayloadRaw: string(p.ProviderPayloadRaw),
		MPPayload:    p.ProviderPayload,
	}
}

func FromInvoicePayments(ps []entities.InvoicePayment) []InvoicePaymentResponse {
	out := make([]InvoicePaymentResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, FromInvoicePayment(p))
	}
	return out
}

// InvoicePaidResponse answers a pay request: the invoice after settlement
// and, for card payments, the provider record.
type InvoicePaidResponse struct {
	Invoice entities.Invoice        `json:"invoice"`
	Payment *InvoicePaymentResponse `json:"payment,omitempty"`
}
