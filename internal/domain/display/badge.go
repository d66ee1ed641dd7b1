package display

import (
	"github.com/charmbracelet/lipgloss"

	"poolpro/internal/domain/entities"
)

type Color string

const (
	Green  Color = "green"
	Yellow Color = "yellow"
	Gray   Color = "gray"
	Blue   Color = "blue"
	Purple Color = "purple"
	Red    Color = "red"
	Orange Color = "orange"
)

type swatch struct{ fg, bg string }

var palette = map[Color]swatch{
	Green:  {"#15803D", "#DCFCE7"},
	Yellow: {"#A16207", "#FEF9C3"},
	Gray:   {"#374151", "#F3F4F6"},
	Blue:   {"#1D4ED8", "#DBEAFE"},
	Purple: {"#7E22CE", "#F3E8FF"},
	Red:    {"#B91C1C", "#FEE2E2"},
	Orange: {"#C2410C", "#FFEDD5"},
}

// Badge describes how a status value is shown.
type Badge struct {
	Label string `json:"label"`
	Color Color  `json:"color"`
}

func (b Badge) Style() lipgloss.Style {
	sw, ok := palette[b.Color]
	if !ok {
		sw = palette[Gray]
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(sw.fg)).
		Background(lipgloss.Color(sw.bg)).
		Padding(0, 1)
}

func (b Badge) Render() string { return b.Style().Render(b.Label) }

var fallback = Badge{Label: "Unknown", Color: Gray}

var customerBadges = map[entities.CustomerStatus]Badge{
	entities.CustomerStatusActive:   {"Active", Green},
	entities.CustomerStatusPaused:   {"Paused", Yellow},
	entities.CustomerStatusInactive: {"Inactive", Gray},
}

var jobBadges = map[entities.JobStatus]Badge{
	entities.JobStatusScheduled:  {"Scheduled", Purple},
	entities.JobStatusInProgress: {"In Progress", Blue},
	entities.JobStatusCompleted:  {"Completed", Green},
}

var quoteBadges = map[entities.QuoteStatus]Badge{
	entities.QuoteStatusPending:  {"Pending", Yellow},
	entities.QuoteStatusApproved: {"Approved", Green},
	entities.QuoteStatusDeclined: {"Declined", Red},
}

var invoiceBadges = map[entities.InvoiceStatus]Badge{
	entities.InvoiceStatusDraft:   {"Draft", Gray},
	entities.InvoiceStatusSent:    {"Sent", Blue},
	entities.InvoiceStatusPaid:    {"Paid", Green},
	entities.InvoiceStatusOverdue: {"Overdue", Red},
}

var stopBadges = map[entities.StopStatus]Badge{
	entities.StopStatusScheduled:  {"Scheduled", Purple},
	entities.StopStatusInProgress: {"In Progress", Blue},
	entities.StopStatusCompleted:  {"Completed", Green},
}

var technicianBadges = map[entities.TechnicianStatus]Badge{
	entities.TechnicianStatusActive:   {"Active", Green},
	entities.TechnicianStatusInactive: {"Inactive", Gray},
}

var severityBadges = map[entities.AlertSeverity]Badge{
	entities.AlertSeverityLow:    {"Low", Blue},
	entities.AlertSeverityMedium: {"Medium", Yellow},
	entities.AlertSeverityHigh:   {"High", Red},
}

var alertTypeBadges = map[entities.AlertType]Badge{
	entities.AlertTypeChemical:  {"Chemical", Blue},
	entities.AlertTypeTime:      {"Time", Orange},
	entities.AlertTypeEquipment: {"Equipment", Purple},
}

var jobTypeBadges = map[string]Badge{
	"filter-clean":      {"Filter Clean", Blue},
	"repair":            {"Repair", Orange},
	"equipment-install": {"Equipment Install", Purple},
	"green-pool":        {"Green Pool", Green},
}

func lookup[K comparable](table map[K]Badge, k K) Badge {
	if b, ok := table[k]; ok {
		return b
	}
	return fallback
}

func CustomerBadge(s entities.CustomerStatus) Badge     { return lookup(customerBadges, s) }
func JobBadge(s entities.JobStatus) Badge               { return lookup(jobBadges, s) }
func QuoteBadge(s entities.QuoteStatus) Badge           { return lookup(quoteBadges, s) }
func InvoiceBadge(s entities.InvoiceStatus) Badge       { return lookup(invoiceBadges, s) }
func StopBadge(s entities.StopStatus) Badge             { return lookup(stopBadges, s) }
func TechnicianBadge(s entities.TechnicianStatus) Badge { return lookup(technicianBadges, s) }
func SeverityBadge(s entities.AlertSeverity) Badge      { return lookup(severityBadges, s) }
func AlertTypeBadge(t entities.AlertType) Badge         { return lookup(alertTypeBadges, t) }

// JobTypeBadge falls back to a gray badge labelled with the raw type.
func JobTypeBadge(t string) Badge {
	if b, ok := jobTypeBadges[t]; ok {
		return b
	}
	return Badge{Label: t, Color: Gray}
}
