package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// Job is a one-off piece of work (repair, install, treatment) scheduled for
// a customer. Times are in minutes.
//
// Completing a job reserves InvoiceID and sets InvoicePending until the
// invoice is stored.
type Job struct {
	ID             string          `json:"id"`
	CustomerID     string          `json:"customerId"`
	CustomerName   string          `json:"customerName"`
	QuoteID        string          `json:"quoteId,omitempty"`
	Type           string          `json:"type"`
	Title          string          `json:"title"`
	Status         JobStatus       `json:"status"`
	ScheduledDate  Date            `json:"scheduledDate"`
	CompletedDate  *Date           `json:"completedDate,omitempty"`
	AssignedTo     string          `json:"assignedTo"`
	EstimatedTime  int             `json:"estimatedTime"`
	ActualTime     int             `json:"actualTime,omitempty"`
	Price          decimal.Decimal `json:"price"`
	Notes          string          `json:"notes"`
	InvoiceID      string          `json:"invoiceId,omitempty"`
	InvoicePending bool            `json:"invoicePending,omitempty"`
	Version        int             `json:"version"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// EnsureEditable allows edits only before work starts.
func (j Job) EnsureEditable() error {
	if j.Status != JobStatusScheduled {
		return notEditable("job", j.ID, j.Status)
	}
	return nil
}

func (j *Job) Start(now time.Time) error {
	if j.Status != JobStatusScheduled {
		return transitionError("job", j.ID, j.Status, JobStatusInProgress)
	}
	j.Status = JobStatusInProgress
	j.UpdatedAt = now
	return nil
}

// Complete records the completion date and the time actually spent.
func (j *Job) Complete(now time.Time, actualMinutes int) error {
	if j.Status != JobStatusInProgress {
		return transitionError("job", j.ID, j.Status, JobStatusCompleted)
	}
	j.Status = JobStatusCompleted
	j.CompletedDate = DatePtr(DateOf(now))
	j.ActualTime = actualMinutes
	j.UpdatedAt = now
	return nil
}
