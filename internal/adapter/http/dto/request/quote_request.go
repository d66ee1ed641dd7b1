package request

import (
	"strings"

	"poolpro/internal/domain/entities"
	"poolpro/internal/usecase"

	"github.com/shopspring/decimal"
)

type QuoteItemRequest struct {
	Name     string          `json:"name" binding:"required"`
	Quantity int             `json:"quantity" binding:"gt=0"`
	Price    decimal.Decimal `json:"price" binding:"dgte0"`
}

type QuoteRequest struct {
	CustomerID string             `json:"customerId" binding:"required"`
	Title      string             `json:"title" binding:"required"`
	Items      []QuoteItemRequest `json:"items" binding:"required,min=1,dive"`
	Notes      string             `json:"notes"`
	ExpiryDate *entities.Date     `json:"expiryDate"`
}

func (r QuoteRequest) ToInput() usecase.QuoteInput {
	items := make([]entities.QuoteItem, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, entities.QuoteItem{Name: strings.TrimSpace(it.Name), Quantity: it.Quantity, Price: it.Price})
	}
	in := usecase.QuoteInput{
		CustomerID: strings.TrimSpace(r.CustomerID),
		Title:      strings.TrimSpace(r.Title),
		Items:      items,
		Notes:      r.Notes,
	}
	if r.ExpiryDate != nil && !r.ExpiryDate.IsZero() {
		in.ExpiryDate = r.ExpiryDate
	}
	return in
}
