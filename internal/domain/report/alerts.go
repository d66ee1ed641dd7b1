package report

import "poolpro/internal/domain/entities"

type AlertStats struct {
	Total      int            `json:"total"`
	Open       int            `json:"open"`
	Resolved   int            `json:"resolved"`
	BySeverity map[string]int `json:"bySeverity"`
	ByType     map[string]int `json:"byType"`
}

// Alerts counts alerts; the severity and type breakdowns cover open alerts only.
func Alerts(alerts []entities.Alert) AlertStats {
	s := AlertStats{
		Total:      len(alerts),
		BySeverity: map[string]int{},
		ByType:     map[string]int{},
	}
	for _, sev := range entities.AlertSeverities() {
		s.BySeverity[string(sev)] = 0
	}
	for _, typ := range entities.AlertTypes() {
		s.ByType[string(typ)] = 0
	}
	for _, a := range alerts {
		if a.Status == entities.AlertStatusResolved {
			s.Resolved++
			continue
		}
		s.Open++
		s.BySeverity[string(a.Severity)]++
		s.ByType[string(a.Type)]++
	}
	return s
}
