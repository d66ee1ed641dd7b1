package usecase

import (
	"errors"
	"fmt"
	"strings"

	"poolpro/internal/domain/entities"
	"poolpro/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ErrInvalidInput wraps every validation failure raised by a use case.
var ErrInvalidInput = errors.New("invalid input")

// ErrConcurrentUpdate is returned when another request changed the record
// between read and write. The caller may reload and try again.
var ErrConcurrentUpdate = interfaces.ErrVersionConflict

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// ListFilter narrows list operations. Fields that do not apply to a
// collection are ignored.
type ListFilter struct {
	Query        string
	Status       string
	CustomerID   string
	TechnicianID string
	Date         entities.Date
	Day          entities.Weekday
	Severity     string
	Type         string
}

// ListResult is a filtered page of items plus per-status counts computed
// over the search results, so tab labels track the search box.
type ListResult[T any] struct {
	Items  []T            `json:"items"`
	Counts map[string]int `json:"counts"`
}

// BillingPolicy holds the terms applied when the workflow creates records.
type BillingPolicy struct {
	NetDays           int
	TaxRate           decimal.Decimal
	QuoteValidityDays int
}

func DefaultBillingPolicy() BillingPolicy {
	return BillingPolicy{NetDays: 14, TaxRate: decimal.Zero, QuoteValidityDays: 14}
}

func newID(prefix string) string {
	return prefix + "-" + strings.SplitN(uuid.NewString(), "-", 2)[0]
}

// derivedID names a record created on behalf of parentID, so repeating the
// creation finds the first copy instead of adding a second.
func derivedID(prefix, parentID string) string {
	return prefix + "-for-" + parentID
}

func named(logger *zap.Logger, component string) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return logger.With(zap.String("component", component))
}
