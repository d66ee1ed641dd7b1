package usecase

import (
	"context"
	"errors"
	"strings"

	"poolpro/internal/domain/clock"
	"poolpro/internal/domain/entities"
	"poolpro/internal/domain/query"
	"poolpro/internal/usecase/interfaces"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var (
	ErrInvoiceNotFound  = errors.New("invoice not found")
	ErrInvalidInvoiceID = errors.New("invalid invoice id")
)

type InvoiceInput struct {
	CustomerID string
	JobID      string
	Date       entities.Date
	DueDate    entities.Date
	Items      []entities.InvoiceItem
	// TaxRate overrides the policy rate when valid.
	TaxRate decimal.NullDecimal
}

// PaymentInput records money received outside the card gateway. A null
// Amount pays the whole balance.
type PaymentInput struct {
	Amount    decimal.NullDecimal
	Method    string
	Reference string
}

// IInvoiceUseCase manages invoices. Every invoice it returns carries its
// effective status, so a sent invoice past its due date reads as overdue.
type IInvoiceUseCase interface {
	List(ctx context.Context, f ListFilter) (ListResult[entities.Invoice], error)
	GetByID(ctx context.Context, id string) (entities.Invoice, error)
	Create(ctx context.Context, in InvoiceInput) (entities.Invoice, error)
	Send(ctx context.Context, id string) (entities.Invoice, error)
	Update(ctx context.Context, id string, in InvoiceInput) (entities.Invoice, error)
	RecordPayment(ctx context.Context, id string, in PaymentInput) (entities.Invoice, error)
}

type InvoiceUseCase struct {
	repo      interfaces.IInvoiceRepository
	customers interfaces.ICustomerRepository
	policy    BillingPolicy
	clock     clock.Clock
	logger    *zap.Logger
}

var _ IInvoiceUseCase = (*InvoiceUseCase)(nil)

func NewInvoiceUseCase(
	repo interfaces.IInvoiceRepository,
	customers interfaces.ICustomerRepository,
	policy BillingPolicy,
	clk clock.Clock,
	logger *zap.Logger,
) *InvoiceUseCase {
	return &InvoiceUseCase{repo: repo, customers: customers, policy: policy, clock: clk, logger: named(logger, "invoice.usecase")}
}

func invoiceStatus(inv entities.Invoice) entities.InvoiceStatus { return inv.Status }

func (u *InvoiceUseCase) today() entities.Date { return entities.DateOf(u.clock.Now()) }

func effective(inv entities.Invoice, today entities.Date) entities.Invoice {
	inv.Status = inv.EffectiveStatus(today)
	return inv
}

func (u *InvoiceUseCase) List(ctx context.Context, f ListFilter) (ListResult[entities.Invoice], error) {
	var (
		all []entities.Invoice
		err error
	)
	if id := strings.TrimSpace(f.CustomerID); id != "" {
		all, err = u.repo.ListByCustomerID(ctx, id)
	} else {
		all, err = u.repo.List(ctx)
	}
	if err != nil {
		return ListResult[entities.Invoice]{}, err
	}
	today := u.today()
	for i := range all {
		all[i] = effective(all[i], today)
	}
	matched := query.Search(all, f.Query, query.InvoiceFields)
	return ListResult[entities.Invoice]{
		Items:  query.ByStatus(matched, f.Status, invoiceStatus),
		Counts: query.CountByStatus(matched, entities.InvoiceStatuses(), invoiceStatus),
	}, nil
}

// load returns the stored invoice, whose status is never overdue.
func (u *InvoiceUseCase) load(ctx context.Context, id string) (entities.Invoice, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Invoice{}, ErrInvalidInvoiceID
	}
	inv, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Invoice{}, err
	}
	if inv.ID == "" {
		return entities.Invoice{}, ErrInvoiceNotFound
	}
	return inv, nil
}

func (u *InvoiceUseCase) GetByID(ctx context.Context, id string) (entities.Invoice, error) {
	inv, err := u.load(ctx, id)
	if err != nil {
		return entities.Invoice{}, err
	}
	return effective(inv, u.today()), nil
}

func validateInvoiceItems(items []entities.InvoiceItem) ([]entities.InvoiceItem, error) {
	if len(items) == 0 {
		return nil, invalid("at least one item is required")
	}
	out := make([]entities.InvoiceItem, 0, len(items))
	for i, it := range items {
		it.Description = strings.TrimSpace(it.Description)
		if it.Description == "" {
			return nil, invalid("item %d: description is required", i+1)
		}
		if it.Quantity <= 0 {
			return nil, invalid("item %d: quantity must be positive", i+1)
		}
		if it.Rate.IsNegative() {
			return nil, invalid("item %d: rate must not be negative", i+1)
		}
		out = append(out, it)
	}
	return out, nil
}

// Create drafts an invoice. Date defaults to today and DueDate to Date plus
// the policy's net days.
func (u *InvoiceUseCase) Create(ctx context.Context, in InvoiceInput) (entities.Invoice, error) {
	items, err := validateInvoiceItems(in.Items)
	if err != nil {
		return entities.Invoice{}, err
	}
	rate, err := checkTaxRate(in.TaxRate, u.policy.TaxRate)
	if err != nil {
		return entities.Invoice{}, err
	}
	customer, err := u.customers.GetByID(ctx, strings.TrimSpace(in.CustomerID))
	if err != nil {
		return entities.Invoice{}, err
	}
	if customer.ID == "" {
		return entities.Invoice{}, ErrCustomerNotFound
	}

	now := u.clock.Now()
	date := in.Date
	if date.IsZero() {
		date = entities.DateOf(now)
	}
	due := in.DueDate
	if due.IsZero() {
		due = date.AddDays(u.policy.NetDays)
	}
	if due.Before(date) {
		return entities.Invoice{}, invalid("due date is before invoice date")
	}

	inv := entities.Invoice{
		ID:            newID("inv"),
		CustomerID:    customer.ID,
		CustomerName:  customer.Name,
		JobID:         strings.TrimSpace(in.JobID),
		Date:          date,
		DueDate:       due,
		Status:        entities.InvoiceStatusDraft,
		Items:         items,
		PaymentMethod: defaultPaymentMethod(customer),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	inv.ApplyTaxRate(rate)

	created, err := u.repo.Create(ctx, inv)
	if err != nil {
		u.logger.Error("create failed", zap.String("invoice_id", inv.ID), zap.Error(err))
		return entities.Invoice{}, err
	}
	u.logger.Info("invoice created", zap.String("invoice_id", created.ID), zap.Stringer("total", created.Total))
	return created, nil
}

func checkTaxRate(in decimal.NullDecimal, fallback decimal.Decimal) (decimal.Decimal, error) {
	rate := fallback
	if in.Valid {
		rate = in.Decimal
	}
	if rate.IsNegative() || rate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return decimal.Zero, invalid("tax rate must be in [0, 1)")
	}
	return rate, nil
}

// currentTaxRate recovers the rate a stored invoice was taxed at.
func currentTaxRate(inv entities.Invoice, fallback decimal.Decimal) decimal.Decimal {
	if inv.Subtotal.IsZero() {
		return fallback
	}
	return inv.Tax.Div(inv.Subtotal).Round(4)
}

// Update edits a draft invoice. Omitted dates and tax rate keep their
// current values; the customer may change only to an existing one.
func (u *InvoiceUseCase) Update(ctx context.Context, id string, in InvoiceInput) (entities.Invoice, error) {
	inv, err := u.load(ctx, id)
	if err != nil {
		return entities.Invoice{}, err
	}
	if err := inv.EnsureEditable(); err != nil {
		return entities.Invoice{}, err
	}
	items, err := validateInvoiceItems(in.Items)
	if err != nil {
		return entities.Invoice{}, err
	}
	rate, err := checkTaxRate(in.TaxRate, currentTaxRate(inv, u.policy.TaxRate))
	if err != nil {
		return entities.Invoice{}, err
	}
	if customerID := strings.TrimSpace(in.CustomerID); customerID != "" && customerID != inv.CustomerID {
		customer, err := u.customers.GetByID(ctx, customerID)
		if err != nil {
			return entities.Invoice{}, err
		}
		if customer.ID == "" {
			return entities.Invoice{}, ErrCustomerNotFound
		}
		inv.CustomerID, inv.CustomerName = customer.ID, customer.Name
		inv.PaymentMethod = defaultPaymentMethod(customer)
	}
	if !in.Date.IsZero() {
		inv.Date = in.Date
	}
	if !in.DueDate.IsZero() {
		inv.DueDate = in.DueDate
	}
	if inv.DueDate.Before(inv.Date) {
		return entities.Invoice{}, invalid("due date is before invoice date")
	}
	inv.Items = items
	inv.UpdatedAt = u.clock.Now()
	inv.ApplyTaxRate(rate)

	updated, err := u.save(ctx, inv)
	if err != nil {
		return entities.Invoice{}, err
	}
	u.logger.Info("invoice updated", zap.String("invoice_id", updated.ID), zap.Stringer("total", updated.Total))
	return updated, nil
}

func defaultPaymentMethod(c entities.Customer) string {
	if c.Autopay {
		return "autopay"
	}
	return entities.PaymentMethodUnpaid
}

func (u *InvoiceUseCase) Send(ctx context.Context, id string) (entities.Invoice, error) {
	inv, err := u.load(ctx, id)
	if err != nil {
		return entities.Invoice{}, err
	}
	if err := inv.Send(u.clock.Now()); err != nil {
		return entities.Invoice{}, err
	}
	updated, err := u.save(ctx, inv)
	if err != nil {
		return entities.Invoice{}, err
	}
	u.logger.Info("invoice sent", zap.String("invoice_id", updated.ID))
	return updated, nil
}

// RecordPayment applies a cash, check or transfer payment. The invoice
// turns paid once its balance reaches zero; an amount above the balance is
// rejected.
func (u *InvoiceUseCase) RecordPayment(ctx context.Context, id string, in PaymentInput) (entities.Invoice, error) {
	method := strings.TrimSpace(in.Method)
	if method == "" || method == entities.PaymentMethodUnpaid {
		return entities.Invoice{}, invalid("payment method is required")
	}
	if in.Amount.Valid && !in.Amount.Decimal.IsPositive() {
		return entities.Invoice{}, invalid("amount must be positive")
	}
	inv, err := u.load(ctx, id)
	if err != nil {
		return entities.Invoice{}, err
	}
	now := u.clock.Now()
	if inv.PaymentInFlight(now, paymentClaimTTL) {
		return entities.Invoice{}, ErrPaymentInProgress
	}
	amount := inv.BalanceDue
	if in.Amount.Valid {
		amount = in.Amount.Decimal
	}
	if err := inv.RecordPayment(now, amount, method, strings.TrimSpace(in.Reference)); err != nil {
		if errors.Is(err, entities.ErrInvalidPayment) {
			return entities.Invoice{}, invalid("amount %s exceeds the balance due of %s", amount.StringFixed(2), inv.BalanceDue.StringFixed(2))
		}
		return entities.Invoice{}, err
	}
	updated, err := u.save(ctx, inv)
	if err != nil {
		return entities.Invoice{}, err
	}
	u.logger.Info("payment recorded",
		zap.String("invoice_id", updated.ID),
		zap.String("method", method),
		zap.Stringer("amount", amount),
		zap.Stringer("balance_due", updated.BalanceDue))
	return updated, nil
}

func (u *InvoiceUseCase) save(ctx context.Context, inv entities.Invoice) (entities.Invoice, error) {
	updated, err := u.repo.Update(ctx, inv)
	if err != nil {
		u.logger.Error("update failed", zap.String("invoice_id", inv.ID), zap.Error(err))
		return entities.Invoice{}, err
	}
	if updated.ID == "" {
		return entities.Invoice{}, ErrInvoiceNotFound
	}
	return effective(updated, u.today()), nil
}
