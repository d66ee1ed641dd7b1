package interfaces

import (
	"context"
	"poolpro/internal/domain/entities"
)

// IQuoteRepository persists quotes.
type IQuoteRepository interface {
	Create(ctx context.Context, q entities.Quote) (entities.Quote, error)
	GetByID(ctx context.Context, id string) (entities.Quote, error)
	List(ctx context.Context) ([]entities.Quote, error)
	ListByCustomerID(ctx context.Context, customerID string) ([]entities.Quote, error)
	// Update is a compare-and-set on Version: it fails with
	// ErrVersionConflict when the stored version differs and otherwise
	// stores and returns the record with Version incremented. A missing
	// record yields the zero value.
	Update(ctx context.Context, q entities.Quote) (entities.Quote, error)
}
