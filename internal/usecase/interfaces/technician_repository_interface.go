package interfaces

import (
	"context"
	"poolpro/internal/domain/entities"
)

// ITechnicianRepository persists technicians.
type ITechnicianRepository interface {
	Create(ctx context.Context, t entities.Technician) (entities.Technician, error)
	GetByID(ctx context.Context, id string) (entities.Technician, error)
	List(ctx context.Context) ([]entities.Technician, error)
	Update(ctx context.Context, t entities.Technician) (entities.Technician, error)
}
