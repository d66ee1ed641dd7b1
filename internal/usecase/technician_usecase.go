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
	ErrTechnicianNotFound  = errors.New("technician not found")
	ErrInvalidTechnicianID = errors.New("invalid technician id")
)

type TechnicianInput struct {
	Name           string
	Email          string
	Phone          string
	Status         entities.TechnicianStatus
	AssignedRoutes []entities.Weekday
}

type ITechnicianUseCase interface {
	List(ctx context.Context, f ListFilter) (ListResult[entities.Technician], error)
	GetByID(ctx context.Context, id string) (entities.Technician, error)
	Create(ctx context.Context, in TechnicianInput) (entities.Technician, error)
	Update(ctx context.Context, id string, in TechnicianInput) (entities.Technician, error)
}

type TechnicianUseCase struct {
	repo   interfaces.ITechnicianRepository
	clock  clock.Clock
	logger *zap.Logger
}

var _ ITechnicianUseCase = (*TechnicianUseCase)(nil)

func NewTechnicianUseCase(repo interfaces.ITechnicianRepository, clk clock.Clock, logger *zap.Logger) *TechnicianUseCase {
	return &TechnicianUseCase{repo: repo, clock: clk, logger: named(logger, "technician.usecase")}
}

func technicianStatus(t entities.Technician) entities.TechnicianStatus { return t.Status }

func (u *TechnicianUseCase) List(ctx context.Context, f ListFilter) (ListResult[entities.Technician], error) {
	all, err := u.repo.List(ctx)
	if err != nil {
		return ListResult[entities.Technician]{}, err
	}
	matched := query.Search(all, f.Query, query.TechnicianFields)
	if f.Day != "" {
		byDay := make([]entities.Technician, 0, len(matched))
		for _, t := range matched {
			if t.CoversDay(f.Day) {
				byDay = append(byDay, t)
			}
		}
		matched = byDay
	}
	return ListResult[entities.Technician]{
		Items:  query.ByStatus(matched, f.Status, technicianStatus),
		Counts: query.CountByStatus(matched, entities.TechnicianStatuses(), technicianStatus),
	}, nil
}

func (u *TechnicianUseCase) GetByID(ctx context.Context, id string) (entities.Technician, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Technician{}, ErrInvalidTechnicianID
	}
	t, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Technician{}, err
	}
	if t.ID == "" {
		return entities.Technician{}, ErrTechnicianNotFound
	}
	return t, nil
}

func validateTechnician(in *TechnicianInput) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	if in.Name == "" {
		return invalid("name is required")
	}
	if in.Status == "" {
		in.Status = entities.TechnicianStatusActive
	}
	if !in.Status.Valid() {
		return invalid("unknown technician status %q", in.Status)
	}
	seen := map[entities.Weekday]bool{}
	days := make([]entities.Weekday, 0, len(in.AssignedRoutes))
	for _, d := range in.AssignedRoutes {
		if !d.Valid() {
			return invalid("unknown route day %q", d)
		}
		if !seen[d] {
			seen[d] = true
			days = append(days, d)
		}
	}
	in.AssignedRoutes = days
	return nil
}

func (u *TechnicianUseCase) Create(ctx context.Context, in TechnicianInput) (entities.Technician, error) {
	if err := validateTechnician(&in); err != nil {
		return entities.Technician{}, err
	}
	now := u.clock.Now()
	t := entities.Technician{
		ID:             newID("tech"),
		Name:           in.Name,
		Email:          in.Email,
		Phone:          in.Phone,
		Status:         in.Status,
		AssignedRoutes: in.AssignedRoutes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	created, err := u.repo.Create(ctx, t)
	if err != nil {
		u.logger.Error("create failed", zap.String("technician_id", t.ID), zap.Error(err))
		return entities.Technician{}, err
	}
	u.logger.Info("technician created", zap.String("technician_id", created.ID))
	return created, nil
}

func (u *TechnicianUseCase) Update(ctx context.Context, id string, in TechnicianInput) (entities.Technician, error) {
	t, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.Technician{}, err
	}
	if err := validateTechnician(&in); err != nil {
		return entities.Technician{}, err
	}
	t.Name = in.Name
	t.Email = in.Email
	t.Phone = in.Phone
	t.Status = in.Status
	t.AssignedRoutes = in.AssignedRoutes
	t.UpdatedAt = u.clock.Now()
	updated, err := u.repo.Update(ctx, t)
	if err != nil {
		return entities.Technician{}, err
	}
	if updated.ID == "" {
		return entities.Technician{}, ErrTechnicianNotFound
	}
	return updated, nil
}
