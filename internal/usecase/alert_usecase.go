package usecase

import (
	"context"
	"errors"
	"strings"

	"poolpro/internal/domain/alerting"
	"poolpro/internal/domain/clock"
	"poolpro/internal/domain/entities"
	"poolpro/internal/domain/query"
	"poolpro/internal/domain/report"
	"poolpro/internal/usecase/interfaces"

	"go.uber.org/zap"
)

var (
	ErrAlertNotFound  = errors.New("alert not found")
	ErrInvalidAlertID = errors.New("invalid alert id")
)

type IAlertUseCase interface {
	List(ctx context.Context, f ListFilter) (ListResult[entities.Alert], error)
	GetByID(ctx context.Context, id string) (entities.Alert, error)
	Resolve(ctx context.Context, id string) (entities.Alert, error)
	Generate(ctx context.Context) ([]entities.Alert, error)
	Stats(ctx context.Context) (report.AlertStats, error)
}

type AlertUseCase struct {
	repo        interfaces.IAlertRepository
	customers   interfaces.ICustomerRepository
	jobs        interfaces.IJobRepository
	technicians interfaces.ITechnicianRepository
	engine      alerting.Engine
	clock       clock.Clock
	logger      *zap.Logger
}

var _ IAlertUseCase = (*AlertUseCase)(nil)

func NewAlertUseCase(
	repo interfaces.IAlertRepository,
	customers interfaces.ICustomerRepository,
	jobs interfaces.IJobRepository,
	technicians interfaces.ITechnicianRepository,
	engine alerting.Engine,
	clk clock.Clock,
	logger *zap.Logger,
) *AlertUseCase {
	return &AlertUseCase{
		repo:        repo,
		customers:   customers,
		jobs:        jobs,
		technicians: technicians,
		engine:      engine,
		clock:       clk,
		logger:      named(logger, "alert.usecase"),
	}
}

func alertStatus(a entities.Alert) entities.AlertStatus { return a.Status }

func (u *AlertUseCase) List(ctx context.Context, f ListFilter) (ListResult[entities.Alert], error) {
	all, err := u.repo.List(ctx)
	if err != nil {
		return ListResult[entities.Alert]{}, err
	}
	matched := query.Search(all, f.Query, query.AlertFields)
	narrowed := make([]entities.Alert, 0, len(matched))
	for _, a := range matched {
		if f.CustomerID != "" && a.CustomerID != f.CustomerID {
			continue
		}
		if f.Severity != "" && f.Severity != query.All && string(a.Severity) != f.Severity {
			continue
		}
		if f.Type != "" && f.Type != query.All && string(a.Type) != f.Type {
			continue
		}
		narrowed = append(narrowed, a)
	}
	return ListResult[entities.Alert]{
		Items:  query.ByStatus(narrowed, f.Status, alertStatus),
		Counts: query.CountByStatus(narrowed, entities.AlertStatuses(), alertStatus),
	}, nil
}

func (u *AlertUseCase) GetByID(ctx context.Context, id string) (entities.Alert, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Alert{}, ErrInvalidAlertID
	}
	a, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Alert{}, err
	}
	if a.ID == "" {
		return entities.Alert{}, ErrAlertNotFound
	}
	return a, nil
}

func (u *AlertUseCase) Resolve(ctx context.Context, id string) (entities.Alert, error) {
	a, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.Alert{}, err
	}
	if err := a.Resolve(u.clock.Now()); err != nil {
		return entities.Alert{}, err
	}
	updated, err := u.repo.Update(ctx, a)
	if err != nil {
		return entities.Alert{}, err
	}
	if updated.ID == "" {
		return entities.Alert{}, ErrAlertNotFound
	}
	u.logger.Info("alert resolved", zap.String("alert_id", updated.ID))
	return updated, nil
}

// Generate evaluates the rule tables against current data and stores the
// alerts whose condition has not been raised before. It returns only the
// newly stored alerts.
func (u *AlertUseCase) Generate(ctx context.Context) ([]entities.Alert, error) {
	customers, err := u.customers.List(ctx)
	if err != nil {
		return nil, err
	}
	jobs, err := u.jobs.List(ctx)
	if err != nil {
		return nil, err
	}
	techs, err := u.technicians.List(ctx)
	if err != nil {
		return nil, err
	}
	existing, err := u.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	now := u.clock.Now()
	candidates := u.engine.Evaluate(alerting.Input{Customers: customers, Jobs: jobs, Technicians: techs}, now)
	fresh := alerting.Fresh(candidates, existing)
	created := make([]entities.Alert, 0, len(fresh))
	for _, a := range fresh {
		a.ID = newID("alert")
		stored, err := u.repo.Create(ctx, a)
		if err != nil {
			u.logger.Error("alert create failed", zap.String("fingerprint", a.Fingerprint), zap.Error(err))
			return created, err
		}
		created = append(created, stored)
	}
	u.logger.Info("alerts generated", zap.Int("candidates", len(candidates)), zap.Int("created", len(created)))
	return created, nil
}

func (u *AlertUseCase) Stats(ctx context.Context) (report.AlertStats, error) {
	all, err := u.repo.List(ctx)
	if err != nil {
		return report.AlertStats{}, err
	}
	return report.Alerts(all), nil
}
