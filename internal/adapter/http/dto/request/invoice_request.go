package request

import (
	"encoding/json"
	"strings"

	"poolpro/internal/domain/entities"
	"poolpro/internal/usecase"

	"github.com/shopspring/decimal"
)

type InvoiceItemRequest struct {
	Description string          `json:"description" binding:"required"`
	Quantity    int             `json:"quantity" binding:"gt=0"`
	Rate        decimal.Decimal `json:"rate" binding:"dgte0"`
}

type InvoiceRequest struct {
	CustomerID string               `json:"customerId" binding:"required"`
	JobID      string               `json:"jobId"`
	Date       entities.Date        `json:"date"`
	DueDate    entities.Date        `json:"dueDate"`
	Items      []InvoiceItemRequest `json:"items" binding:"required,min=1,dive"`
	TaxRate    *decimal.Decimal     `json:"taxRate" binding:"omitempty,rate"`
}

func (r InvoiceRequest) ToInput() usecase.InvoiceInput {
	items := make([]entities.InvoiceItem, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, entities.InvoiceItem{
			Description: strings.TrimSpace(it.Description),
			Quantity:    it.Quantity,
			Rate:        it.Rate,
			Amount:      it.Rate.Mul(decimal.NewFromInt(int64(it.Quantity))),
		})
	}
	in := usecase.InvoiceInput{
		CustomerID: strings.TrimSpace(r.CustomerID),
		JobID:      strings.TrimSpace(r.JobID),
		Date:       r.Date,
		DueDate:    r.DueDate,
		Items:      items,
	}
	if r.TaxRate != nil {
		in.TaxRate = decimal.NewNullDecimal(*r.TaxRate)
	}
	return in
}

// PayInvoiceRequest settles an invoice. A Method records a manual payment
// (check, cash, autopay) of Amount, or of the whole balance when Amount is
// omitted; otherwise MPPayload is charged through Mercado Pago.
type PayInvoiceRequest struct {
	Method    string           `json:"method"`
	Reference string           `json:"reference"`
	Amount    *decimal.Decimal `json:"amount"`
	MPPayload json.RawMessage  `json:"mp_payload"`
}

func (r PayInvoiceRequest) Manual() bool {
	return strings.TrimSpace(r.Method) != ""
}

func (r PayInvoiceRequest) ToInput() usecase.PaymentInput {
	in := usecase.PaymentInput{
		Method:    strings.TrimSpace(r.Method),
		Reference: strings.TrimSpace(r.Reference),
	}
	if r.Amount != nil {
		in.Amount = decimal.NewNullDecimal(*r.Amount)
	}
	return in
}
