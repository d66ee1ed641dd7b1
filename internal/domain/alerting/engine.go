package alerting

import (
	"strings"
	"time"

	"poolpro/internal/domain/entities"
)

// Engine holds the rule tables. A nil Maintenance or ServiceTime rule
// disables that family.
type Engine struct {
	Chemical    []ChemicalRule
	Maintenance *MaintenanceRule
	ServiceTime *ServiceTimeRule
}

// Default checks the chemical table, weekly service and a 15 minute
// service-time margin.
func Default() Engine {
	return Engine{
		Chemical:    DefaultChemicalRules(),
		Maintenance: &MaintenanceRule{Interval: 7},
		ServiceTime: &ServiceTimeRule{Margin: 15},
	}
}

type Input struct {
	Customers   []entities.Customer
	Jobs        []entities.Job
	Technicians []entities.Technician
}

// Fingerprint identifies the condition behind an alert. Chemical and
// maintenance fingerprints include the reading or service date, so a newer
// reading that is still out of range raises a fresh alert.
func Fingerprint(parts ...string) string {
	return strings.Join(parts, ":")
}

// Evaluate runs every rule and returns candidate alerts without IDs, in
// customer, pool, rule order followed by job alerts. Inactive customers are
// skipped.
func (e Engine) Evaluate(in Input, now time.Time) []entities.Alert {
	today := entities.DateOf(now)
	out := []entities.Alert{}

	for _, c := range in.Customers {
		if c.Status == entities.CustomerStatusInactive {
			continue
		}
		for _, p := range c.Pools {
			if reading, ok := p.LatestReading(); ok {
				for _, rule := range e.Chemical {
					f, ok := rule.Check(reading)
					if !ok {
						continue
					}
					dir := "high"
					if f.Distance < 0 {
						dir = "low"
					}
					out = append(out, poolAlert(c, p, entities.AlertTypeChemical, f, now,
						Fingerprint(string(entities.AlertTypeChemical), c.ID, p.ID, string(rule.Metric), dir, reading.Date.String())))
				}
			}
			if e.Maintenance != nil {
				if f, ok := e.Maintenance.Check(p, today); ok {
					out = append(out, poolAlert(c, p, entities.AlertTypeEquipment, f, now,
						Fingerprint(string(entities.AlertTypeEquipment), c.ID, p.ID, "service", p.LastService.String())))
				}
			}
		}
	}

	if e.ServiceTime == nil {
		return out
	}
	techs := make(map[string]entities.Technician, len(in.Technicians))
	for _, t := range in.Technicians {
		techs[t.ID] = t
	}
	names := make(map[string]string, len(in.Customers))
	for _, c := range in.Customers {
		names[c.ID] = c.Name
	}
	for _, j := range in.Jobs {
		f, ok := e.ServiceTime.Check(j, techs[j.AssignedTo])
		if !ok {
			continue
		}
		name := j.CustomerName
		if name == "" {
			name = names[j.CustomerID]
		}
		out = append(out, entities.Alert{
			CustomerID:   j.CustomerID,
			CustomerName: name,
			JobID:        j.ID,
			Type:         entities.AlertTypeTime,
			Severity:     f.Severity,
			Title:        f.Title,
			Description:  f.Detail,
			Date:         today,
			Status:       entities.AlertStatusOpen,
			Fingerprint:  Fingerprint(string(entities.AlertTypeTime), j.ID),
			CreatedAt:    now,
		})
	}
	return out
}

func poolAlert(c entities.Customer, p entities.Pool, typ entities.AlertType, f Finding, now time.Time, fp string) entities.Alert {
	return entities.Alert{
		CustomerID:   c.ID,
		CustomerName: c.Name,
		PoolID:       p.ID,
		PoolName:     p.Name,
		Type:         typ,
		Severity:     f.Severity,
		Title:        f.Title,
		Description:  f.Detail,
		Date:         entities.DateOf(now),
		Status:       entities.AlertStatusOpen,
		Fingerprint:  fp,
		CreatedAt:    now,
	}
}

// Fresh drops candidates whose fingerprint is already held by an existing
// alert, open or resolved, and collapses duplicates within candidates.
func Fresh(candidates, existing []entities.Alert) []entities.Alert {
	seen := make(map[string]struct{}, len(existing))
	for _, a := range existing {
		if a.Fingerprint != "" {
			seen[a.Fingerprint] = struct{}{}
		}
	}
	out := make([]entities.Alert, 0, len(candidates))
	for _, a := range candidates {
		if _, dup := seen[a.Fingerprint]; dup {
			continue
		}
		seen[a.Fingerprint] = struct{}{}
		out = append(out, a)
	}
	return out
}
