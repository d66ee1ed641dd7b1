package display

import (
	"testing"

	"poolpro/internal/domain/entities"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestBalance(t *testing.T) {
	cases := map[string]string{
		"-125.5": "$125.50 (owed)",
		"75":     "$75.00 (credit)",
		"0":      "$0.00",
		"-0.005": "$0.01 (owed)",
	}
	for in, want := range cases {
		assert.Equal(t, want, Balance(decimal.RequireFromString(in)), in)
	}
}

func TestMoney(t *testing.T) {
	assert.Equal(t, "$240.50", Money(decimal.RequireFromString("240.5")))
	assert.Equal(t, "-$12.00", Money(decimal.NewFromInt(-12)))
	assert.Equal(t, "$0.00", Money(decimal.Zero))
}

func TestBadgeTablesCoverEveryVariant(t *testing.T) {
	for _, s := range entities.CustomerStatuses() {
		assert.NotEqual(t, fallback, CustomerBadge(s), s)
	}
	for _, s := range entities.JobStatuses() {
		assert.NotEqual(t, fallback, JobBadge(s), s)
	}
	for _, s := range entities.QuoteStatuses() {
		assert.NotEqual(t, fallback, QuoteBadge(s), s)
	}
	for _, s := range entities.InvoiceStatuses() {
		assert.NotEqual(t, fallback, InvoiceBadge(s), s)
	}
	for _, s := range entities.StopStatuses() {
		assert.NotEqual(t, fallback, StopBadge(s), s)
	}
	for _, s := range entities.TechnicianStatuses() {
		assert.NotEqual(t, fallback, TechnicianBadge(s), s)
	}
	for _, s := range entities.AlertSeverities() {
		assert.NotEqual(t, fallback, SeverityBadge(s), s)
	}
	for _, s := range entities.AlertTypes() {
		assert.NotEqual(t, fallback, AlertTypeBadge(s), s)
	}
	for c := range palette {
		assert.NotEmpty(t, Badge{Label: "x", Color: c}.Render())
	}
}

func TestBadgeFallbacks(t *testing.T) {
	assert.Equal(t, fallback, InvoiceBadge("void"))
	assert.Equal(t, Badge{Label: "winterize", Color: Gray}, JobTypeBadge("winterize"))
	assert.Equal(t, "Overdue", InvoiceBadge(entities.InvoiceStatusOverdue).Label)
}
