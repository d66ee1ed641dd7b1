package interfaces

import (
	"context"
	"poolpro/internal/domain/entities"
)

// IJobRepository persists jobs. Jobs are never deleted; they move through
// their status lifecycle with Update.
type IJobRepository interface {
	Create(ctx context.Context, j entities.Job) (entities.Job, error)
	GetByID(ctx context.Context, id string) (entities.Job, error)
	List(ctx context.Context) ([]entities.Job, error)
	ListByCustomerID(ctx context.Context, customerID string) ([]entities.Job, error)
	// Update is a compare-and-set on Version: it fails with
	// ErrVersionConflict when the stored version differs and otherwise
	// stores and returns the record with Version incremented. A missing
	// record yields the zero value.
	Update(ctx context.Context, j entities.Job) (entities.Job, error)
}
