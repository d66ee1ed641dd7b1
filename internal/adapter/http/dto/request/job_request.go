package request

import (
	"strings"

	"poolpro/internal/domain/entities"
	"poolpro/internal/usecase"

	"github.com/shopspring/decimal"
)

type JobRequest struct {
	CustomerID    string          `json:"customerId" binding:"required"`
	QuoteID       string          `json:"quoteId"`
	Type          string          `json:"type"`
	Title         string          `json:"title" binding:"required"`
	ScheduledDate *entities.Date  `json:"scheduledDate" binding:"required"`
	AssignedTo    string          `json:"assignedTo"`
	EstimatedTime int             `json:"estimatedTime" binding:"gte=0"`
	Price         decimal.Decimal `json:"price" binding:"dgte0"`
	Notes         string          `json:"notes"`
}

func (r JobRequest) ToInput() usecase.JobInput {
	in := usecase.JobInput{
		CustomerID:    strings.TrimSpace(r.CustomerID),
		QuoteID:       strings.TrimSpace(r.QuoteID),
		Type:          r.Type,
		Title:         strings.TrimSpace(r.Title),
		AssignedTo:    strings.TrimSpace(r.AssignedTo),
		EstimatedTime: r.EstimatedTime,
		Price:         r.Price,
		Notes:         r.Notes,
	}
	if r.ScheduledDate != nil {
		in.ScheduledDate = *r.ScheduledDate
	}
	return in
}

// CompleteJobRequest carries the minutes actually spent on site.
type CompleteJobRequest struct {
	ActualTime *int `json:"actualTime" binding:"required,gte=0"`
}
