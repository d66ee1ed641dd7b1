package interfaces

import (
	"context"
	"poolpro/internal/domain/entities"
)

// IWorkflowHooks reacts to lifecycle events. OnQuoteApproved returns the job
// for an approved quote and OnJobCompleted the draft invoice for a completed
// job. Both are idempotent: calling again for the same record returns what
// the first call stored.
type IWorkflowHooks interface {
	OnQuoteApproved(ctx context.Context, q entities.Quote) (entities.Job, error)
	OnJobCompleted(ctx context.Context, j entities.Job) (entities.Invoice, error)
}
