package entities

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

const PaymentMethodUnpaid = "unpaid"

type InvoiceItem struct {
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
	Amount      decimal.Decimal `json:"amount"`
}

// PendingPayment marks an invoice while a card charge is with the gateway.
type PendingPayment struct {
	Since time.Time `json:"since"`
}

// Invoice bills a customer. Subtotal is the sum of item amounts,
// Total = Subtotal + Tax and BalanceDue = Total - PaidAmount.
//
// Status stores draft, sent or paid. Overdue is never persisted: a sent
// invoice whose due date has passed reports overdue via EffectiveStatus.
// Version increases on every stored update.
type Invoice struct {
	ID               string          `json:"id"`
	CustomerID       string          `json:"customerId"`
	CustomerName     string          `json:"customerName"`
	JobID            string          `json:"jobId,omitempty"`
	Date             Date            `json:"date"`
	DueDate          Date            `json:"dueDate"`
	Status           InvoiceStatus   `json:"status"`
	PaidDate         *Date           `json:"paidDate,omitempty"`
	Items            []InvoiceItem   `json:"items"`
	Subtotal         decimal.Decimal `json:"subtotal"`
	Tax              decimal.Decimal `json:"tax"`
	Total            decimal.Decimal `json:"total"`
	PaidAmount       decimal.Decimal `json:"paidAmount"`
	BalanceDue       decimal.Decimal `json:"balanceDue"`
	PaymentMethod    string          `json:"paymentMethod"`
	PaymentReference string          `json:"paymentReference,omitempty"`
	PendingPayment   *PendingPayment `json:"pendingPayment,omitempty"`
	Version          int             `json:"version"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

// Recalculate derives item amounts, subtotal and total from the items and
// the current tax.
func (inv *Invoice) Recalculate() {
	subtotal := decimal.Zero
	for i := range inv.Items {
		it := &inv.Items[i]
		it.Amount = it.Rate.Mul(decimal.NewFromInt(int64(it.Quantity)))
		subtotal = subtotal.Add(it.Amount)
	}
	inv.Subtotal = subtotal
	inv.Total = subtotal.Add(inv.Tax)
	inv.BalanceDue = inv.Total.Sub(inv.PaidAmount)
}

// ApplyTaxRate sets Tax to subtotal*rate, rounded to cents, and refreshes Total.
func (inv *Invoice) ApplyTaxRate(rate decimal.Decimal) {
	inv.Recalculate()
	inv.Tax = inv.Subtotal.Mul(rate).Round(2)
	inv.Total = inv.Subtotal.Add(inv.Tax)
	inv.BalanceDue = inv.Total.Sub(inv.PaidAmount)
}

// IsOverdue is the single source of truth for overdue: a sent invoice whose
// due date is before today.
func (inv Invoice) IsOverdue(today Date) bool {
	return inv.Status == InvoiceStatusSent && inv.DueDate.Before(today)
}

func (inv Invoice) EffectiveStatus(today Date) InvoiceStatus {
	if inv.IsOverdue(today) {
		return InvoiceStatusOverdue
	}
	return inv.Status
}

// IsOutstanding reports money billed but not collected.
func (inv Invoice) IsOutstanding() bool {
	return inv.Status != InvoiceStatusPaid && inv.Status != InvoiceStatusDraft
}

func (inv *Invoice) Send(now time.Time) error {
	if inv.Status != InvoiceStatusDraft {
		return transitionError("invoice", inv.ID, inv.Status, InvoiceStatusSent)
	}
	inv.Status = InvoiceStatusSent
	inv.UpdatedAt = now
	return nil
}

// EnsureEditable allows item and date edits only while the invoice is a draft.
func (inv Invoice) EnsureEditable() error {
	if inv.Status != InvoiceStatusDraft {
		return notEditable("invoice", inv.ID, inv.Status)
	}
	return nil
}

// RecordPayment applies amount to a sent (possibly overdue) invoice. The
// invoice becomes paid once nothing is left to pay.
func (inv *Invoice) RecordPayment(now time.Time, amount decimal.Decimal, method, reference string) error {
	if inv.Status != InvoiceStatusSent {
		return transitionError("invoice", inv.ID, inv.EffectiveStatus(DateOf(now)), InvoiceStatusPaid)
	}
	if !amount.IsPositive() || amount.GreaterThan(inv.BalanceDue) {
		return fmt.Errorf("%w: %s against a balance of %s", ErrInvalidPayment, amount.StringFixed(2), inv.BalanceDue.StringFixed(2))
	}
	inv.PaidAmount = inv.PaidAmount.Add(amount)
	inv.BalanceDue = inv.Total.Sub(inv.PaidAmount)
	inv.PaymentMethod = method
	inv.PaymentReference = reference
	inv.UpdatedAt = now
	if !inv.BalanceDue.IsPositive() {
		inv.Status = InvoiceStatusPaid
		inv.PaidDate = DatePtr(DateOf(now))
	}
	return nil
}

// PaymentInFlight reports a card charge claimed less than ttl ago.
func (inv Invoice) PaymentInFlight(now time.Time, ttl time.Duration) bool {
	return inv.PendingPayment != nil && now.Sub(inv.PendingPayment.Since) < ttl
}
