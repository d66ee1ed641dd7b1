package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

type QuoteItem struct {
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

func (i QuoteItem) Amount() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Quote is a priced proposal. Total is always the sum of its items.
//
// Approval reserves JobID and sets JobPending until the job is stored.
type Quote struct {
	ID           string          `json:"id"`
	CustomerID   string          `json:"customerId"`
	CustomerName string          `json:"customerName"`
	Title        string          `json:"title"`
	Status       QuoteStatus     `json:"status"`
	CreatedDate  Date            `json:"createdDate"`
	ExpiryDate   *Date           `json:"expiryDate,omitempty"`
	ApprovedDate *Date           `json:"approvedDate,omitempty"`
	DeclinedDate *Date           `json:"declinedDate,omitempty"`
	Items        []QuoteItem     `json:"items"`
	Total        decimal.Decimal `json:"total"`
	Notes        string          `json:"notes"`
	JobID        string          `json:"jobId,omitempty"`
	JobPending   bool            `json:"jobPending,omitempty"`
	Version      int             `json:"version"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

func QuoteTotal(items []QuoteItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Amount())
	}
	return total
}

func (q *Quote) Recalculate() {
	q.Total = QuoteTotal(q.Items)
}

// IsExpired reports whether a pending quote is past its expiry date.
func (q Quote) IsExpired(today Date) bool {
	return q.Status == QuoteStatusPending && q.ExpiryDate != nil && q.ExpiryDate.Before(today)
}

// EnsureEditable allows edits only while the quote awaits a decision.
func (q Quote) EnsureEditable() error {
	if q.Status != QuoteStatusPending {
		return notEditable("quote", q.ID, q.Status)
	}
	return nil
}

func (q *Quote) Approve(now time.Time) error {
	if q.Status != QuoteStatusPending {
		return transitionError("quote", q.ID, q.Status, QuoteStatusApproved)
	}
	if q.IsExpired(DateOf(now)) {
		return ErrQuoteExpired
	}
	q.Status = QuoteStatusApproved
	q.ApprovedDate = DatePtr(DateOf(now))
	q.ExpiryDate = nil
	q.UpdatedAt = now
	return nil
}

func (q *Quote) Decline(now time.Time) error {
	if q.Status != QuoteStatusPending {
		return transitionError("quote", q.ID, q.Status, QuoteStatusDeclined)
	}
	q.Status = QuoteStatusDeclined
	q.DeclinedDate = DatePtr(DateOf(now))
	q.ExpiryDate = nil
	q.UpdatedAt = now
	return nil
}
