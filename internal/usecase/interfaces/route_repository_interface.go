package interfaces

import (
	"context"
	"poolpro/internal/domain/entities"
)

// IRouteRepository persists routes with their ordered stops.
type IRouteRepository interface {
	Create(ctx context.Context, r entities.Route) (entities.Route, error)
	GetByID(ctx context.Context, id string) (entities.Route, error)
	List(ctx context.Context) ([]entities.Route, error)
	Update(ctx context.Context, r entities.Route) (entities.Route, error)
}
