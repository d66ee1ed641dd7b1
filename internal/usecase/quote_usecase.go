package usecase

import (
	"context"
	"errors"
	"strings"

	"poolpro/internal/domain/clock"
	"poolpro/internal/domain/entities"
	"poolpro/internal/domain/query"
	"poolpro/internal/usecase/interfaces"

	"go.uber.org/zap"
)

var (
	ErrQuoteNotFound  = errors.New("quote not found")
	ErrInvalidQuoteID = errors.New("invalid quote id")
)

type QuoteInput struct {
	CustomerID string
	Title      string
	Items      []entities.QuoteItem
	Notes      string
	ExpiryDate *entities.Date
}

// QuoteApproval is the approved quote and the job the approval created.
type QuoteApproval struct {
	Quote entities.Quote `json:"quote"`
	Job   entities.Job   `json:"job"`
}

type IQuoteUseCase interface {
	List(ctx context.Context, f ListFilter) (ListResult[entities.Quote], error)
	GetByID(ctx context.Context, id string) (entities.Quote, error)
	Create(ctx context.Context, in QuoteInput) (entities.Quote, error)
	Update(ctx context.Context, id string, in QuoteInput) (entities.Quote, error)
	Approve(ctx context.Context, id string) (QuoteApproval, error)
	Decline(ctx context.Context, id string) (entities.Quote, error)
}

type QuoteUseCase struct {
	repo      interfaces.IQuoteRepository
	customers interfaces.ICustomerRepository
	hooks     interfaces.IWorkflowHooks
	policy    BillingPolicy
	clock     clock.Clock
	logger    *zap.Logger
}

var _ IQuoteUseCase = (*QuoteUseCase)(nil)

func NewQuoteUseCase(
	repo interfaces.IQuoteRepository,
	customers interfaces.ICustomerRepository,
	hooks interfaces.IWorkflowHooks,
	policy BillingPolicy,
	clk clock.Clock,
	logger *zap.Logger,
) *QuoteUseCase {
	return &QuoteUseCase{
		repo:      repo,
		customers: customers,
		hooks:     hooks,
		policy:    policy,
		clock:     clk,
		logger:    named(logger, "quote.usecase"),
	}
}

func quoteStatus(q entities.Quote) entities.QuoteStatus { return q.Status }

func (u *QuoteUseCase) List(ctx context.Context, f ListFilter) (ListResult[entities.Quote], error) {
	var (
		all []entities.Quote
		err error
	)
	if id := strings.TrimSpace(f.CustomerID); id != "" {
		all, err = u.repo.ListByCustomerID(ctx, id)
	} else {
		all, err = u.repo.List(ctx)
	}
	if err != nil {
		return ListResult[entities.Quote]{}, err
	}
	matched := query.Search(all, f.Query, query.QuoteFields)
	return ListResult[entities.Quote]{
		Items:  query.ByStatus(matched, f.Status, quoteStatus),
		Counts: query.CountByStatus(matched, entities.QuoteStatuses(), quoteStatus),
	}, nil
}

func (u *QuoteUseCase) GetByID(ctx context.Context, id string) (entities.Quote, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Quote{}, ErrInvalidQuoteID
	}
	q, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Quote{}, err
	}
	if q.ID == "" {
		return entities.Quote{}, ErrQuoteNotFound
	}
	return q, nil
}

func validateQuoteItems(items []entities.QuoteItem) ([]entities.QuoteItem, error) {
	if len(items) == 0 {
		return nil, invalid("at least one item is required")
	}
	out := make([]entities.QuoteItem, 0, len(items))
	for i, it := range items {
		it.Name = strings.TrimSpace(it.Name)
		if it.Name == "" {
			return nil, invalid("item %d: name is required", i+1)
		}
		if it.Quantity <= 0 {
			return nil, invalid("item %d: quantity must be positive", i+1)
		}
		if it.Price.IsNegative() {
			return nil, invalid("item %d: price must not be negative", i+1)
		}
		out = append(out, it)
	}
	return out, nil
}

func (u *QuoteUseCase) Create(ctx context.Context, in QuoteInput) (entities.Quote, error) {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return entities.Quote{}, invalid("title is required")
	}
	items, err := validateQuoteItems(in.Items)
	if err != nil {
		return entities.Quote{}, err
	}
	customer, err := u.customers.GetByID(ctx, strings.TrimSpace(in.CustomerID))
	if err != nil {
		return entities.Quote{}, err
	}
	if customer.ID == "" {
		return entities.Quote{}, ErrCustomerNotFound
	}

	now := u.clock.Now()
	today := entities.DateOf(now)
	expiry := in.ExpiryDate
	if expiry == nil && u.policy.QuoteValidityDays > 0 {
		expiry = entities.DatePtr(today.AddDays(u.policy.QuoteValidityDays))
	}
	if expiry != nil && expiry.Before(today) {
		return entities.Quote{}, invalid("expiry date is in the past")
	}

	q := entities.Quote{
		ID:           newID("quote"),
		CustomerID:   customer.ID,
		CustomerName: customer.Name,
		Title:        in.Title,
		Status:       entities.QuoteStatusPending,
		CreatedDate:  today,
		ExpiryDate:   expiry,
		Items:        items,
		Notes:        strings.TrimSpace(in.Notes),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	q.Recalculate()

	created, err := u.repo.Create(ctx, q)
	if err != nil {
		u.logger.Error("create failed", zap.String("quote_id", q.ID), zap.Error(err))
		return entities.Quote{}, err
	}
	u.logger.Info("quote created", zap.String("quote_id", created.ID), zap.Stringer("total", created.Total))
	return created, nil
}

// Update edits a quote that still awaits a decision. Omitted customer and
// expiry keep their current values.
func (u *QuoteUseCase) Update(ctx context.Context, id string, in QuoteInput) (entities.Quote, error) {
	q, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.Quote{}, err
	}
	if err := q.EnsureEditable(); err != nil {
		return entities.Quote{}, err
	}
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return entities.Quote{}, invalid("title is required")
	}
	items, err := validateQuoteItems(in.Items)
	if err != nil {
		return entities.Quote{}, err
	}
	if customerID := strings.TrimSpace(in.CustomerID); customerID != "" && customerID != q.CustomerID {
		customer, err := u.customers.GetByID(ctx, customerID)
		if err != nil {
			return entities.Quote{}, err
		}
		if customer.ID == "" {
			return entities.Quote{}, ErrCustomerNotFound
		}
		q.CustomerID, q.CustomerName = customer.ID, customer.Name
	}

	now := u.clock.Now()
	if in.ExpiryDate != nil {
		if in.ExpiryDate.Before(entities.DateOf(now)) {
			return entities.Quote{}, invalid("expiry date is in the past")
		}
		q.ExpiryDate = in.ExpiryDate
	}
	q.Title = in.Title
	q.Items = items
	q.Notes = strings.TrimSpace(in.Notes)
	q.UpdatedAt = now
	q.Recalculate()

	updated, err := u.save(ctx, q)
	if err != nil {
		return entities.Quote{}, err
	}
	u.logger.Info("quote updated", zap.String("quote_id", updated.ID), zap.Stringer("total", updated.Total))
	return updated, nil
}

// Approve accepts a pending quote and makes sure exactly one job exists for
// it. The approval is stored first, reserving JobID and marking the job as
// pending; a concurrent approval of the same quote loses on the version
// check. The hook then stores the job and the mark is cleared. When the
// hook or the final save fails, approving again resumes from the mark.
func (u *QuoteUseCase) Approve(ctx context.Context, id string) (QuoteApproval, error) {
	q, err := u.GetByID(ctx, id)
	if err != nil {
		return QuoteApproval{}, err
	}
	if !q.JobPending {
		if err := q.Approve(u.clock.Now()); err != nil {
			u.logger.Warn("approve rejected", zap.String("quote_id", q.ID), zap.Error(err))
			return QuoteApproval{}, err
		}
		q.JobID = derivedID("job", q.ID)
		q.JobPending = true
		if q, err = u.save(ctx, q); err != nil {
			u.logger.Warn("approve not stored", zap.String("quote_id", id), zap.Error(err))
			return QuoteApproval{}, err
		}
	}

	job, err := u.hooks.OnQuoteApproved(ctx, q)
	if err != nil {
		u.logger.Error("approval hook failed", zap.String("quote_id", q.ID), zap.Error(err))
		return QuoteApproval{}, err
	}

	q.JobPending = false
	updated, err := u.save(ctx, q)
	if errors.Is(err, ErrConcurrentUpdate) {
		// Another retry may have finished the link first.
		updated, err = u.GetByID(ctx, q.ID)
		if err == nil && updated.JobPending {
			err = ErrConcurrentUpdate
		}
	}
	if err != nil {
		u.logger.Error("approval link failed", zap.String("quote_id", q.ID), zap.String("job_id", job.ID), zap.Error(err))
		return QuoteApproval{}, err
	}
	u.logger.Info("quote approved", zap.String("quote_id", updated.ID), zap.String("job_id", job.ID))
	return QuoteApproval{Quote: updated, Job: job}, nil
}

func (u *QuoteUseCase) Decline(ctx context.Context, id string) (entities.Quote, error) {
	q, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.Quote{}, err
	}
	if err := q.Decline(u.clock.Now()); err != nil {
		return entities.Quote{}, err
	}
	updated, err := u.save(ctx, q)
	if err != nil {
		return entities.Quote{}, err
	}
	u.logger.Info("quote declined", zap.String("quote_id", updated.ID))
	return updated, nil
}

func (u *QuoteUseCase) save(ctx context.Context, q entities.Quote) (entities.Quote, error) {
	updated, err := u.repo.Update(ctx, q)
	if err != nil {
		return entities.Quote{}, err
	}
	if updated.ID == "" {
		return entities.Quote{}, ErrQuoteNotFound
	}
	return updated, nil
}
