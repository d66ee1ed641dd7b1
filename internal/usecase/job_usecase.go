package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"poolpro/internal/domain/clock"
	"poolpro/internal/domain/entities"
	"poolpro/internal/domain/query"
	"poolpro/internal/usecase/interfaces"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var (
	ErrJobNotFound  = errors.New("job not found")
	ErrInvalidJobID = errors.New("invalid job id")
)

type JobInput struct {
	CustomerID    string
	QuoteID       string
	Type          string
	Title         string
	ScheduledDate entities.Date
	AssignedTo    string
	EstimatedTime int
	Price         decimal.Decimal
	Notes         string
}

// JobCompletion is the result of completing a job: the job itself and the
// draft invoice raised for it.
type JobCompletion struct {
	Job     entities.Job     `json:"job"`
	Invoice entities.Invoice `json:"invoice"`
}

type IJobUseCase interface {
	List(ctx context.Context, f ListFilter) (ListResult[entities.Job], error)
	GetByID(ctx context.Context, id string) (entities.Job, error)
	Create(ctx context.Context, in JobInput) (entities.Job, error)
	Update(ctx context.Context, id string, in JobInput) (entities.Job, error)
	Start(ctx context.Context, id string) (entities.Job, error)
	Complete(ctx context.Context, id string, actualMinutes int) (JobCompletion, error)
}

type JobUseCase struct {
	repo        interfaces.IJobRepository
	customers   interfaces.ICustomerRepository
	technicians interfaces.ITechnicianRepository
	hooks       interfaces.IWorkflowHooks
	clock       clock.Clock
	logger      *zap.Logger
}

var _ IJobUseCase = (*JobUseCase)(nil)

func NewJobUseCase(
	repo interfaces.IJobRepository,
	customers interfaces.ICustomerRepository,
	technicians interfaces.ITechnicianRepository,
	hooks interfaces.IWorkflowHooks,
	clk clock.Clock,
	logger *zap.Logger,
) *JobUseCase {
	return &JobUseCase{
		repo:        repo,
		customers:   customers,
		technicians: technicians,
		hooks:       hooks,
		clock:       clk,
		logger:      named(logger, "job.usecase"),
	}
}

func jobStatus(j entities.Job) entities.JobStatus { return j.Status }

func (u *JobUseCase) List(ctx context.Context, f ListFilter) (ListResult[entities.Job], error) {
	var (
		all []entities.Job
		err error
	)
	if id := strings.TrimSpace(f.CustomerID); id != "" {
		all, err = u.repo.ListByCustomerID(ctx, id)
	} else {
		all, err = u.repo.List(ctx)
	}
	if err != nil {
		return ListResult[entities.Job]{}, err
	}
	matched := query.Search(all, f.Query, query.JobFields)
	if f.TechnicianID != "" || !f.Date.IsZero() {
		narrowed := make([]entities.Job, 0, len(matched))
		for _, j := range matched {
			if f.TechnicianID != "" && j.AssignedTo != f.TechnicianID {
				continue
			}
			if !f.Date.IsZero() && !j.ScheduledDate.Equal(f.Date) {
				continue
			}
			narrowed = append(narrowed, j)
		}
		matched = narrowed
	}
	return ListResult[entities.Job]{
		Items:  query.ByStatus(matched, f.Status, jobStatus),
		Counts: query.CountByStatus(matched, entities.JobStatuses(), jobStatus),
	}, nil
}

func (u *JobUseCase) GetByID(ctx context.Context, id string) (entities.Job, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Job{}, ErrInvalidJobID
	}
	j, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Job{}, err
	}
	if j.ID == "" {
		return entities.Job{}, ErrJobNotFound
	}
	return j, nil
}

func validateJobInput(in *JobInput) error {
	in.Title = strings.TrimSpace(in.Title)
	in.Type = strings.TrimSpace(in.Type)
	in.AssignedTo = strings.TrimSpace(in.AssignedTo)
	if in.Title == "" {
		return invalid("title is required")
	}
	if in.ScheduledDate.IsZero() {
		return invalid("scheduled date is required")
	}
	if in.EstimatedTime < 0 {
		return invalid("estimated time must not be negative")
	}
	if in.Price.IsNegative() {
		return invalid("price must not be negative")
	}
	return nil
}

func (u *JobUseCase) checkTechnician(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	tech, err := u.technicians.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if tech.ID == "" {
		return ErrTechnicianNotFound
	}
	return nil
}

func (u *JobUseCase) Create(ctx context.Context, in JobInput) (entities.Job, error) {
	if err := validateJobInput(&in); err != nil {
		return entities.Job{}, err
	}
	customer, err := u.customers.GetByID(ctx, strings.TrimSpace(in.CustomerID))
	if err != nil {
		return entities.Job{}, err
	}
	if customer.ID == "" {
		return entities.Job{}, ErrCustomerNotFound
	}
	if err := u.checkTechnician(ctx, in.AssignedTo); err != nil {
		return entities.Job{}, err
	}

	now := u.clock.Now()
	j := entities.Job{
		ID:            newID("job"),
		CustomerID:    customer.ID,
		CustomerName:  customer.Name,
		QuoteID:       strings.TrimSpace(in.QuoteID),
		Type:          in.Type,
		Title:         in.Title,
		Status:        entities.JobStatusScheduled,
		ScheduledDate: in.ScheduledDate,
		AssignedTo:    in.AssignedTo,
		EstimatedTime: in.EstimatedTime,
		Price:         in.Price,
		Notes:         strings.TrimSpace(in.Notes),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	created, err := u.repo.Create(ctx, j)
	if err != nil {
		u.logger.Error("create failed", zap.String("job_id", j.ID), zap.Error(err))
		return entities.Job{}, err
	}
	u.logger.Info("job created", zap.String("job_id", created.ID), zap.String("customer_id", created.CustomerID))
	return created, nil
}

// Update edits a job that has not started. The customer and quote links
// are kept.
func (u *JobUseCase) Update(ctx context.Context, id string, in JobInput) (entities.Job, error) {
	j, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.Job{}, err
	}
	if err := j.EnsureEditable(); err != nil {
		return entities.Job{}, err
	}
	if err := validateJobInput(&in); err != nil {
		return entities.Job{}, err
	}
	if err := u.checkTechnician(ctx, in.AssignedTo); err != nil {
		return entities.Job{}, err
	}
	j.Type = in.Type
	j.Title = in.Title
	j.ScheduledDate = in.ScheduledDate
	j.AssignedTo = in.AssignedTo
	j.EstimatedTime = in.EstimatedTime
	j.Price = in.Price
	j.Notes = strings.TrimSpace(in.Notes)
	j.UpdatedAt = u.clock.Now()

	updated, err := u.save(ctx, j)
	if err != nil {
		return entities.Job{}, err
	}
	u.logger.Info("job updated", zap.String("job_id", updated.ID))
	return updated, nil
}

func (u *JobUseCase) Start(ctx context.Context, id string) (entities.Job, error) {
	j, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.Job{}, err
	}
	if err := j.Start(u.clock.Now()); err != nil {
		return entities.Job{}, err
	}
	updated, err := u.save(ctx, j)
	if err != nil {
		return entities.Job{}, err
	}
	u.logger.Info("job started", zap.String("job_id", j.ID))
	return updated, nil
}

// Complete finishes an in-progress job and makes sure exactly one invoice is
// raised for it. The completion is stored first with InvoiceID reserved and
// InvoicePending set, so a concurrent completion loses on the version check
// and technician time is counted once. The hook then stores the invoice and
// the mark is cleared. When the hook or the final save fails, completing
// again resumes from the mark.
func (u *JobUseCase) Complete(ctx context.Context, id string, actualMinutes int) (JobCompletion, error) {
	if actualMinutes < 0 {
		return JobCompletion{}, invalid("actual time must not be negative")
	}
	j, err := u.GetByID(ctx, id)
	if err != nil {
		return JobCompletion{}, err
	}
	if !j.InvoicePending {
		now := u.clock.Now()
		if err := j.Complete(now, actualMinutes); err != nil {
			return JobCompletion{}, err
		}
		j.InvoiceID = derivedID("inv", j.ID)
		j.InvoicePending = true
		if j, err = u.save(ctx, j); err != nil {
			u.logger.Warn("completion not stored", zap.String("job_id", id), zap.Error(err))
			return JobCompletion{}, err
		}
		u.logger.Info("job completed", zap.String("job_id", j.ID), zap.Int("actual_minutes", actualMinutes))
		u.recordTechnicianTime(ctx, j, now)
	}

	invoice, err := u.hooks.OnJobCompleted(ctx, j)
	if err != nil {
		u.logger.Error("completion hook failed", zap.String("job_id", j.ID), zap.Error(err))
		return JobCompletion{}, err
	}

	j.InvoicePending = false
	updated, err := u.save(ctx, j)
	if errors.Is(err, ErrConcurrentUpdate) {
		// Another retry may have finished the link first.
		updated, err = u.GetByID(ctx, j.ID)
		if err == nil && updated.InvoicePending {
			err = ErrConcurrentUpdate
		}
	}
	if err != nil {
		u.logger.Error("invoice link failed", zap.String("job_id", j.ID), zap.String("invoice_id", invoice.ID), zap.Error(err))
		return JobCompletion{}, err
	}
	u.logger.Info("job invoiced", zap.String("job_id", updated.ID), zap.String("invoice_id", invoice.ID))
	return JobCompletion{Job: updated, Invoice: invoice}, nil
}

func (u *JobUseCase) save(ctx context.Context, j entities.Job) (entities.Job, error) {
	updated, err := u.repo.Update(ctx, j)
	if err != nil {
		return entities.Job{}, err
	}
	if updated.ID == "" {
		return entities.Job{}, ErrJobNotFound
	}
	return updated, nil
}

// recordTechnicianTime folds the job into the technician's running stats.
// Failures are logged only; the job is already complete.
func (u *JobUseCase) recordTechnicianTime(ctx context.Context, j entities.Job, now time.Time) {
	if j.AssignedTo == "" || u.technicians == nil {
		return
	}
	tech, err := u.technicians.GetByID(ctx, j.AssignedTo)
	if err != nil || tech.ID == "" {
		u.logger.Warn("technician stats not updated", zap.String("technician_id", j.AssignedTo), zap.Error(err))
		return
	}
	tech.RecordCompletion(j.ActualTime, now)
	if _, err := u.technicians.Update(ctx, tech); err != nil {
		u.logger.Warn("technician stats not updated", zap.String("technician_id", tech.ID), zap.Error(err))
	}
}
