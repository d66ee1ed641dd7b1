package entities

import "time"

// Alert flags something on a customer's account that needs attention.
// Fingerprint identifies the condition that produced a generated alert so
// re-running the rules does not open duplicates.
type Alert struct {
	ID           string        `json:"id"`
	CustomerID   string        `json:"customerId"`
	CustomerName string        `json:"customerName"`
	PoolID       string        `json:"poolId,omitempty"`
	PoolName     string        `json:"poolName,omitempty"`
	JobID        string        `json:"jobId,omitempty"`
	Type         AlertType     `json:"type"`
	Severity     AlertSeverity `json:"severity"`
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	Date         Date          `json:"date"`
	Status       AlertStatus   `json:"status"`
	Fingerprint  string        `json:"fingerprint,omitempty"`
	CreatedAt    time.Time     `json:"createdAt"`
	ResolvedAt   *time.Time    `json:"resolvedAt,omitempty"`
}

func (a *Alert) Resolve(now time.Time) error {
	if a.Status != AlertStatusOpen {
		return transitionError("alert", a.ID, a.Status, AlertStatusResolved)
	}
	a.Status = AlertStatusResolved
	a.ResolvedAt = &now
	return nil
}
