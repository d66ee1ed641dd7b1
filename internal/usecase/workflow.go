package usecase

import (
	"context"
	"errors"
	"fmt"

	"poolpro/internal/domain/clock"
	"poolpro/internal/domain/entities"
	"poolpro/internal/usecase/interfaces"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// WorkflowHooks is the default reaction to quote approvals and job
// completions: an approved quote becomes a scheduled job, a completed job
// becomes a draft invoice.
type WorkflowHooks struct {
	customers   interfaces.ICustomerRepository
	technicians interfaces.ITechnicianRepository
	jobs        interfaces.IJobRepository
	invoices    interfaces.IInvoiceRepository
	policy      BillingPolicy
	clock       clock.Clock
	logger      *zap.Logger
}

var _ interfaces.IWorkflowHooks = (*WorkflowHooks)(nil)

func NewWorkflowHooks(
	customers interfaces.ICustomerRepository,
	technicians interfaces.ITechnicianRepository,
	jobs interfaces.IJobRepository,
	invoices interfaces.IInvoiceRepository,
	policy BillingPolicy,
	clk clock.Clock,
	logger *zap.Logger,
) *WorkflowHooks {
	return &WorkflowHooks{
		customers:   customers,
		technicians: technicians,
		jobs:        jobs,
		invoices:    invoices,
		policy:      policy,
		clock:       clk,
		logger:      named(logger, "workflow"),
	}
}

// nextServiceDate is the first date strictly after today falling on day.
// An unknown day schedules for tomorrow.
func nextServiceDate(today entities.Date, day entities.Weekday) entities.Date {
	for i := 1; i <= 7; i++ {
		d := today.AddDays(i)
		if !day.Valid() || d.Weekday() == day {
			return d
		}
	}
	return today.AddDays(1)
}

// OnQuoteApproved schedules the quoted work on the customer's next service
// day, assigned to the first active technician covering that day. The job id
// is q.JobID, or one derived from the quote, and a job already stored under
// it is returned as is.
func (h *WorkflowHooks) OnQuoteApproved(ctx context.Context, q entities.Quote) (entities.Job, error) {
	jobID := q.JobID
	if jobID == "" {
		jobID = derivedID("job", q.ID)
	}
	existing, err := h.jobs.GetByID(ctx, jobID)
	if err != nil {
		return entities.Job{}, err
	}
	if existing.ID != "" {
		return existing, nil
	}

	customer, err := h.customers.GetByID(ctx, q.CustomerID)
	if err != nil {
		return entities.Job{}, err
	}
	if customer.ID == "" {
		return entities.Job{}, ErrCustomerNotFound
	}

	now := h.clock.Now()
	scheduled := nextServiceDate(entities.DateOf(now), customer.ServiceDay)
	assignee, err := h.technicianFor(ctx, scheduled.Weekday())
	if err != nil {
		return entities.Job{}, err
	}

	j := entities.Job{
		ID:            jobID,
		CustomerID:    customer.ID,
		CustomerName:  customer.Name,
		QuoteID:       q.ID,
		Type:          "repair",
		Title:         q.Title,
		Status:        entities.JobStatusScheduled,
		ScheduledDate: scheduled,
		AssignedTo:    assignee,
		Price:         q.Total,
		Notes:         fmt.Sprintf("From quote %s", q.ID),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	created, err := h.jobs.Create(ctx, j)
	if errors.Is(err, interfaces.ErrAlreadyExists) {
		return h.jobs.GetByID(ctx, jobID)
	}
	if err != nil {
		h.logger.Error("job create failed", zap.String("quote_id", q.ID), zap.Error(err))
		return entities.Job{}, err
	}
	h.logger.Info("job scheduled from quote",
		zap.String("quote_id", q.ID),
		zap.String("job_id", created.ID),
		zap.Stringer("scheduled_date", created.ScheduledDate),
		zap.String("assigned_to", created.AssignedTo))
	return created, nil
}

func (h *WorkflowHooks) technicianFor(ctx context.Context, day entities.Weekday) (string, error) {
	techs, err := h.technicians.List(ctx)
	if err != nil {
		return "", err
	}
	for _, t := range techs {
		if t.Status == entities.TechnicianStatusActive && t.CoversDay(day) {
			return t.ID, nil
		}
	}
	return "", nil
}

// OnJobCompleted drafts an invoice with a single line for the job price. Like
// OnQuoteApproved it reuses an invoice already stored under j.InvoiceID or
// the id derived from the job.
func (h *WorkflowHooks) OnJobCompleted(ctx context.Context, j entities.Job) (entities.Invoice, error) {
	invoiceID := j.InvoiceID
	if invoiceID == "" {
		invoiceID = derivedID("inv", j.ID)
	}
	existing, err := h.invoices.GetByID(ctx, invoiceID)
	if err != nil {
		return entities.Invoice{}, err
	}
	if existing.ID != "" {
		return existing, nil
	}

	customer, err := h.customers.GetByID(ctx, j.CustomerID)
	if err != nil {
		return entities.Invoice{}, err
	}
	if customer.ID == "" {
		return entities.Invoice{}, ErrCustomerNotFound
	}

	now := h.clock.Now()
	date := entities.DateOf(now)
	if j.CompletedDate != nil {
		date = *j.CompletedDate
	}
	inv := entities.Invoice{
		ID:           invoiceID,
		CustomerID:   customer.ID,
		CustomerName: customer.Name,
		JobID:        j.ID,
		Date:         date,
		DueDate:      date.AddDays(h.policy.NetDays),
		Status:       entities.InvoiceStatusDraft,
		Items: []entities.InvoiceItem{{
			Description: j.Title,
			Quantity:    1,
			Rate:        j.Price,
			Amount:      j.Price,
		}},
		Tax:           decimal.Zero,
		PaymentMethod: defaultPaymentMethod(customer),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	inv.ApplyTaxRate(h.policy.TaxRate)

	created, err := h.invoices.Create(ctx, inv)
	if errors.Is(err, interfaces.ErrAlreadyExists) {
		return h.invoices.GetByID(ctx, invoiceID)
	}
	if err != nil {
		h.logger.Error("invoice create failed", zap.String("job_id", j.ID), zap.Error(err))
		return entities.Invoice{}, err
	}
	h.logger.Info("invoice drafted from job",
		zap.String("job_id", j.ID),
		zap.String("invoice_id", created.ID),
		zap.Stringer("total", created.Total))
	return created, nil
}
