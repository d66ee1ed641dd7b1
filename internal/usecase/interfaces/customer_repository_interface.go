package interfaces

import (
	"context"
	"poolpro/internal/domain/entities"
)

// ICustomerRepository persists customers together with their pools and
// readings. GetByID returns a zero Customer and nil error when absent.
type ICustomerRepository interface {
	Create(ctx context.Context, c entities.Customer) (entities.Customer, error)
	GetByID(ctx context.Context, id string) (entities.Customer, error)
	List(ctx context.Context) ([]entities.Customer, error)
	Update(ctx context.Context, c entities.Customer) (entities.Customer, error)
}
