package usecase

import (
	"context"
	"errors"
	"strings"

	"poolpro/internal/domain/clock"
	"poolpro/internal/domain/entities"
	"poolpro/internal/usecase/interfaces"

	"go.uber.org/zap"
)

var (
	ErrRouteNotFound      = errors.New("route not found")
	ErrInvalidRouteID     = errors.New("invalid route id")
	ErrRouteAlreadyExists = errors.New("route already exists")
)

type StopInput struct {
	CustomerID    string
	EstimatedTime int
	TimeWindow    string
	Notes         string
}

// IRouteUseCase maintains the weekly service routes. Every mutation keeps
// stop positions dense and 1-based.
type IRouteUseCase interface {
	List(ctx context.Context, f ListFilter) ([]entities.Route, error)
	GetByID(ctx context.Context, id string) (entities.Route, error)
	Create(ctx context.Context, day entities.Weekday, technicianID string) (entities.Route, error)
	AddStop(ctx context.Context, routeID string, in StopInput) (entities.Route, error)
	RemoveStop(ctx context.Context, routeID, stopID string) (entities.Route, error)
	Reorder(ctx context.Context, routeID string, stopIDs []string) (entities.Route, error)
	StartStop(ctx context.Context, routeID, stopID string) (entities.Route, error)
	CompleteStop(ctx context.Context, routeID, stopID string) (entities.Route, error)
}

type RouteUseCase struct {
	repo        interfaces.IRouteRepository
	customers   interfaces.ICustomerRepository
	technicians interfaces.ITechnicianRepository
	clock       clock.Clock
	logger      *zap.Logger
}

var _ IRouteUseCase = (*RouteUseCase)(nil)

func NewRouteUseCase(
	repo interfaces.IRouteRepository,
	customers interfaces.ICustomerRepository,
	technicians interfaces.ITechnicianRepository,
	clk clock.Clock,
	logger *zap.Logger,
) *RouteUseCase {
	return &RouteUseCase{repo: repo, customers: customers, technicians: technicians, clock: clk, logger: named(logger, "route.usecase")}
}

func (u *RouteUseCase) List(ctx context.Context, f ListFilter) ([]entities.Route, error) {
	all, err := u.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]entities.Route, 0, len(all))
	for _, r := range all {
		if f.Day != "" && r.Day != f.Day {
			continue
		}
		if f.TechnicianID != "" && r.TechnicianID != f.TechnicianID {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (u *RouteUseCase) GetByID(ctx context.Context, id string) (entities.Route, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Route{}, ErrInvalidRouteID
	}
	r, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Route{}, err
	}
	if r.ID == "" {
		return entities.Route{}, ErrRouteNotFound
	}
	return r, nil
}

// Create opens the route for (day, technician). There is at most one.
func (u *RouteUseCase) Create(ctx context.Context, day entities.Weekday, technicianID string) (entities.Route, error) {
	if !day.Valid() {
		return entities.Route{}, invalid("unknown day %q", day)
	}
	tech, err := u.technicians.GetByID(ctx, strings.TrimSpace(technicianID))
	if err != nil {
		return entities.Route{}, err
	}
	if tech.ID == "" {
		return entities.Route{}, ErrTechnicianNotFound
	}
	id := entities.RouteID(day, tech.ID)
	if existing, err := u.repo.GetByID(ctx, id); err != nil {
		return entities.Route{}, err
	} else if existing.ID != "" {
		return entities.Route{}, ErrRouteAlreadyExists
	}

	now := u.clock.Now()
	r := entities.Route{
		ID:             id,
		Day:            day,
		TechnicianID:   tech.ID,
		TechnicianName: tech.Name,
		Stops:          []entities.Stop{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	created, err := u.repo.Create(ctx, r)
	if err != nil {
		return entities.Route{}, err
	}
	u.logger.Info("route created", zap.String("route_id", created.ID))
	return created, nil
}

func (u *RouteUseCase) AddStop(ctx context.Context, routeID string, in StopInput) (entities.Route, error) {
	if in.EstimatedTime < 0 {
		return entities.Route{}, invalid("estimated time must not be negative")
	}
	r, err := u.GetByID(ctx, routeID)
	if err != nil {
		return entities.Route{}, err
	}
	customer, err := u.customers.GetByID(ctx, strings.TrimSpace(in.CustomerID))
	if err != nil {
		return entities.Route{}, err
	}
	if customer.ID == "" {
		return entities.Route{}, ErrCustomerNotFound
	}
	stop := entities.Stop{
		ID:            newID("stop"),
		CustomerID:    customer.ID,
		CustomerName:  customer.Name,
		Address:       streetAddress(customer.Address),
		EstimatedTime: in.EstimatedTime,
		TimeWindow:    strings.TrimSpace(in.TimeWindow),
		Notes:         strings.TrimSpace(in.Notes),
	}
	if err := r.AddStop(stop); err != nil {
		return entities.Route{}, err
	}
	return u.save(ctx, r, "stop added", zap.String("stop_id", stop.ID))
}

// streetAddress drops city, state and zip from a full address.
func streetAddress(addr string) string {
	street, _, _ := strings.Cut(addr, ",")
	return strings.TrimSpace(street)
}

func (u *RouteUseCase) RemoveStop(ctx context.Context, routeID, stopID string) (entities.Route, error) {
	r, err := u.GetByID(ctx, routeID)
	if err != nil {
		return entities.Route{}, err
	}
	if err := r.RemoveStop(strings.TrimSpace(stopID)); err != nil {
		return entities.Route{}, err
	}
	return u.save(ctx, r, "stop removed", zap.String("stop_id", stopID))
}

func (u *RouteUseCase) Reorder(ctx context.Context, routeID string, stopIDs []string) (entities.Route, error) {
	r, err := u.GetByID(ctx, routeID)
	if err != nil {
		return entities.Route{}, err
	}
	if err := r.Reorder(stopIDs); err != nil {
		return entities.Route{}, err
	}
	return u.save(ctx, r, "stops reordered")
}

func (u *RouteUseCase) StartStop(ctx context.Context, routeID, stopID string) (entities.Route, error) {
	return u.moveStop(ctx, routeID, stopID, (*entities.Stop).Start, "stop started")
}

func (u *RouteUseCase) CompleteStop(ctx context.Context, routeID, stopID string) (entities.Route, error) {
	return u.moveStop(ctx, routeID, stopID, (*entities.Stop).Complete, "stop completed")
}

func (u *RouteUseCase) moveStop(ctx context.Context, routeID, stopID string, move func(*entities.Stop) error, msg string) (entities.Route, error) {
	r, err := u.GetByID(ctx, routeID)
	if err != nil {
		return entities.Route{}, err
	}
	stop, ok := r.Stop(strings.TrimSpace(stopID))
	if !ok {
		return entities.Route{}, entities.ErrStopNotFound
	}
	if err := move(stop); err != nil {
		return entities.Route{}, err
	}
	return u.save(ctx, r, msg, zap.String("stop_id", stop.ID))
}

func (u *RouteUseCase) save(ctx context.Context, r entities.Route, msg string, fields ...zap.Field) (entities.Route, error) {
	if err := r.ValidatePositions(); err != nil {
		return entities.Route{}, err
	}
	r.UpdatedAt = u.clock.Now()
	updated, err := u.repo.Update(ctx, r)
	if err != nil {
		u.logger.Error("update failed", zap.String("route_id", r.ID), zap.Error(err))
		return entities.Route{}, err
	}
	if updated.ID == "" {
		return entities.Route{}, ErrRouteNotFound
	}
	u.logger.Info(msg, append(fields, zap.String("route_id", updated.ID))...)
	return updated, nil
}
