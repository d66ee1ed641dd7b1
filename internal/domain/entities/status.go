package entities

// Status enums are closed sets; each one exposes its variants so lookups
// keyed by status (labels, badges, counts) can be checked for coverage.

type CustomerStatus string

const (
	CustomerStatusActive   CustomerStatus = "active"
	CustomerStatusPaused   CustomerStatus = "paused"
	CustomerStatusInactive CustomerStatus = "inactive"
)

func CustomerStatuses() []CustomerStatus {
	return []CustomerStatus{CustomerStatusActive, CustomerStatusPaused, CustomerStatusInactive}
}

func (s CustomerStatus) Valid() bool { return contains(CustomerStatuses(), s) }

type JobStatus string

const (
	JobStatusScheduled  JobStatus = "scheduled"
	JobStatusInProgress JobStatus = "in-progress"
	JobStatusCompleted  JobStatus = "completed"
)

func JobStatuses() []JobStatus {
	return []JobStatus{JobStatusScheduled, JobStatusInProgress, JobStatusCompleted}
}

func (s JobStatus) Valid() bool { return contains(JobStatuses(), s) }

type QuoteStatus string

const (
	QuoteStatusPending  QuoteStatus = "pending"
	QuoteStatusApproved QuoteStatus = "approved"
	QuoteStatusDeclined QuoteStatus = "declined"
)

func QuoteStatuses() []QuoteStatus {
	return []QuoteStatus{QuoteStatusPending, QuoteStatusApproved, QuoteStatusDeclined}
}

func (s QuoteStatus) Valid() bool { return contains(QuoteStatuses(), s) }

// InvoiceStatus includes overdue as a reportable variant. Only draft, sent
// and paid are ever stored; overdue is derived by Invoice.EffectiveStatus.
type InvoiceStatus string

const (
	InvoiceStatusDraft   InvoiceStatus = "draft"
	InvoiceStatusSent    InvoiceStatus = "sent"
	InvoiceStatusPaid    InvoiceStatus = "paid"
	InvoiceStatusOverdue InvoiceStatus = "overdue"
)

func InvoiceStatuses() []InvoiceStatus {
	return []InvoiceStatus{InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPaid, InvoiceStatusOverdue}
}

func (s InvoiceStatus) Valid() bool { return contains(InvoiceStatuses(), s) }

type StopStatus string

const (
	StopStatusScheduled  StopStatus = "scheduled"
	StopStatusInProgress StopStatus = "in-progress"
	StopStatusCompleted  StopStatus = "completed"
)

func StopStatuses() []StopStatus {
	return []StopStatus{StopStatusScheduled, StopStatusInProgress, StopStatusCompleted}
}

func (s StopStatus) Valid() bool { return contains(StopStatuses(), s) }

type TechnicianStatus string

const (
	TechnicianStatusActive   TechnicianStatus = "active"
	TechnicianStatusInactive TechnicianStatus = "inactive"
)

func TechnicianStatuses() []TechnicianStatus {
	return []TechnicianStatus{TechnicianStatusActive, TechnicianStatusInactive}
}

func (s TechnicianStatus) Valid() bool { return contains(TechnicianStatuses(), s) }

type AlertType string

const (
	AlertTypeChemical  AlertType = "chemical"
	AlertTypeTime      AlertType = "time"
	AlertTypeEquipment AlertType = "equipment"
)

func AlertTypes() []AlertType {
	return []AlertType{AlertTypeChemical, AlertTypeTime, AlertTypeEquipment}
}

func (t AlertType) Valid() bool { return contains(AlertTypes(), t) }

type AlertSeverity string

const (
	AlertSeverityLow    AlertSeverity = "low"
	AlertSeverityMedium AlertSeverity = "medium"
	AlertSeverityHigh   AlertSeverity = "high"
)

func AlertSeverities() []AlertSeverity {
	return []AlertSeverity{AlertSeverityLow, AlertSeverityMedium, AlertSeverityHigh}
}

func (s AlertSeverity) Valid() bool { return contains(AlertSeverities(), s) }

type AlertStatus string

const (
	AlertStatusOpen     AlertStatus = "open"
	AlertStatusResolved AlertStatus = "resolved"
)

func AlertStatuses() []AlertStatus {
	return []AlertStatus{AlertStatusOpen, AlertStatusResolved}
}

func (s AlertStatus) Valid() bool { return contains(AlertStatuses(), s) }

type Weekday string

const (
	Monday    Weekday = "Monday"
	Tuesday   Weekday = "Tuesday"
	Wednesday Weekday = "Wednesday"
	Thursday  Weekday = "Thursday"
	Friday    Weekday = "Friday"
	Saturday  Weekday = "Saturday"
	Sunday    Weekday = "Sunday"
)

func Weekdays() []Weekday {
	return []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}
}

func (d Weekday) Valid() bool { return contains(Weekdays(), d) }

func contains[T comparable](set []T, v T) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
