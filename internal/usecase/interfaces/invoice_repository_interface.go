package interfaces

import (
	"context"
	"poolpro/internal/domain/entities"
)

// IInvoiceRepository persists invoices. The stored status is never
// "overdue"; that is derived when reading.
type IInvoiceRepository interface {
	Create(ctx context.Context, inv entities.Invoice) (entities.Invoice, error)
	GetByID(ctx context.Context, id string) (entities.Invoice, error)
	List(ctx context.Context) ([]entities.Invoice, error)
	ListByCustomerID(ctx context.Context, customerID string) ([]entities.Invoice, error)
	// Update is a compare-and-set on Version: it fails with
	// ErrVersionConflict when the stored version differs and otherwise
	// stores and returns the record with Version incremented. A missing
	// record yields the zero value.
	Update(ctx context.Context, inv entities.Invoice) (entities.Invoice, error)
}
