package interfaces

import (
	"context"
	"poolpro/internal/domain/entities"
)

// IAlertRepository persists alerts.
type IAlertRepository interface {
	Create(ctx context.Context, a entities.Alert) (entities.Alert, error)
	GetByID(ctx context.Context, id string) (entities.Alert, error)
	List(ctx context.Context) ([]entities.Alert, error)
	Update(ctx context.Context, a entities.Alert) (entities.Alert, error)
}
