// Package alerting turns pool readings, service history and job timings into
// alerts using declarative rule tables.
package alerting

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"poolpro/internal/domain/entities"
)

type Metric string

const (
	MetricFC  Metric = "fc"
	MetricPH  Metric = "ph"
	MetricTA  Metric = "ta"
	MetricCH  Metric = "ch"
	MetricCYA Metric = "cya"
)

// Range is the inclusive acceptable interval for a metric.
type Range struct {
	Min float64
	Max float64
}

// Distance is how far v lies outside the range, signed: negative below Min,
// positive above Max, zero inside.
func (r Range) Distance(v float64) float64 {
	switch {
	case v < r.Min:
		return v - r.Min
	case v > r.Max:
		return v - r.Max
	}
	return 0
}

// Band maps an out-of-range distance up to Within (inclusive) to a severity.
type Band struct {
	Within   float64
	Severity entities.AlertSeverity
}

// ChemicalRule checks one metric of the latest reading against its range.
// Bands are ordered by Within; a distance beyond the last band is Cap, or
// high when Cap is empty.
type ChemicalRule struct {
	Metric    Metric
	Label     string
	Unit      string
	Precision int
	Range     Range
	Bands     []Band
	Cap       entities.AlertSeverity
}

func (r ChemicalRule) value(c entities.ChemReading) float64 {
	switch r.Metric {
	case MetricFC:
		return c.FC
	case MetricPH:
		return c.PH
	case MetricTA:
		return float64(c.TA)
	case MetricCH:
		return float64(c.CH)
	case MetricCYA:
		return float64(c.CYA)
	}
	return math.NaN()
}

// Severity returns the band for distance d, which must be non-zero.
func (r ChemicalRule) Severity(d float64) entities.AlertSeverity {
	d = math.Abs(d)
	for _, b := range r.Bands {
		// readings carry at most two decimals; compare on that grid
		if math.Round(d*100) <= math.Round(b.Within*100) {
			return b.Severity
		}
	}
	if r.Cap != "" {
		return r.Cap
	}
	return entities.AlertSeverityHigh
}

// Finding is a rule violation before it becomes an alert.
type Finding struct {
	Metric   Metric
	Value    float64
	Distance float64
	Severity entities.AlertSeverity
	Title    string
	Detail   string
}

// Check evaluates the rule against a reading. ok is false when the value is
// in range.
func (r ChemicalRule) Check(reading entities.ChemReading) (Finding, bool) {
	v := r.value(reading)
	if math.IsNaN(v) {
		return Finding{}, false
	}
	d := r.Range.Distance(v)
	if d == 0 {
		return Finding{}, false
	}
	dir := "High"
	if d < 0 {
		dir = "Low"
	}
	unit := ""
	if r.Unit != "" {
		unit = " " + r.Unit
	}
	return Finding{
		Metric:   r.Metric,
		Value:    v,
		Distance: d,
		Severity: r.Severity(d),
		Title:    fmt.Sprintf("%s %s", dir, r.Label),
		Detail: fmt.Sprintf("%s is %s at %s%s. Recommended: %s-%s%s.",
			r.Label, strings.ToLower(dir), r.format(v), unit, r.format(r.Range.Min), r.format(r.Range.Max), unit),
	}, true
}

func (r ChemicalRule) format(v float64) string {
	return strconv.FormatFloat(v, 'f', r.Precision, 64)
}

// DefaultChemicalRules is the standard residential pool balance table.
func DefaultChemicalRules() []ChemicalRule {
	return []ChemicalRule{
		{
			Metric: MetricFC, Label: "Free Chlorine", Unit: "ppm", Precision: 1,
			Range: Range{Min: 3.0, Max: 5.0},
			Bands: []Band{{0.5, entities.AlertSeverityLow}, {1.5, entities.AlertSeverityMedium}},
			Cap:   entities.AlertSeverityMedium,
		},
		{
			Metric: MetricPH, Label: "pH", Precision: 1,
			Range: Range{Min: 7.2, Max: 7.6},
			Bands: []Band{{0.1, entities.AlertSeverityLow}, {0.3, entities.AlertSeverityMedium}},
			Cap:   entities.AlertSeverityMedium,
		},
		{
			Metric: MetricTA, Label: "Total Alkalinity", Unit: "ppm",
			Range: Range{Min: 80, Max: 120},
			Bands: []Band{{10, entities.AlertSeverityLow}, {30, entities.AlertSeverityMedium}},
		},
		{
			Metric: MetricCH, Label: "Calcium Hardness", Unit: "ppm",
			Range: Range{Min: 200, Max: 400},
			Bands: []Band{{50, entities.AlertSeverityLow}, {150, entities.AlertSeverityMedium}},
		},
		{
			Metric: MetricCYA, Label: "Cyanuric Acid", Unit: "ppm",
			Range: Range{Min: 30, Max: 50},
			Bands: []Band{{10, entities.AlertSeverityLow}, {30, entities.AlertSeverityMedium}},
		},
	}
}

// MaintenanceRule flags pools whose last service is older than Interval days.
// Severity grows with the number of whole intervals elapsed.
type MaintenanceRule struct {
	Interval int
}

func (r MaintenanceRule) Check(pool entities.Pool, today entities.Date) (Finding, bool) {
	if r.Interval <= 0 || pool.LastService.IsZero() {
		return Finding{}, false
	}
	days := pool.LastService.DaysUntil(today)
	if days <= r.Interval {
		return Finding{}, false
	}
	sev := entities.AlertSeverityLow
	switch n := days / r.Interval; {
	case n >= 3:
		sev = entities.AlertSeverityHigh
	case n >= 2:
		sev = entities.AlertSeverityMedium
	}
	return Finding{
		Value:    float64(days),
		Distance: float64(days - r.Interval),
		Severity: sev,
		Title:    "Service Overdue",
		Detail: fmt.Sprintf("%s was last serviced %d days ago (%s). Service interval is %d days.",
			pool.Name, days, pool.LastService, r.Interval),
	}, true
}

// ServiceTimeRule flags completed jobs that ran more than Margin minutes
// over the assigned technician's average service time. The job's own
// estimate is the baseline when the technician has no average yet.
type ServiceTimeRule struct {
	Margin int
}

func (r ServiceTimeRule) Check(job entities.Job, tech entities.Technician) (Finding, bool) {
	if job.Status != entities.JobStatusCompleted || job.ActualTime <= 0 {
		return Finding{}, false
	}
	baseline := tech.AvgServiceTime
	if baseline <= 0 {
		baseline = job.EstimatedTime
	}
	if baseline <= 0 {
		return Finding{}, false
	}
	over := job.ActualTime - baseline
	if over <= r.Margin {
		return Finding{}, false
	}
	sev := entities.AlertSeverityLow
	if m := r.Margin; m > 0 {
		switch {
		case over > 3*m:
			sev = entities.AlertSeverityHigh
		case over > 2*m:
			sev = entities.AlertSeverityMedium
		}
	}
	return Finding{
		Value:    float64(job.ActualTime),
		Distance: float64(over),
		Severity: sev,
		Title:    "Service Time Exceeded",
		Detail: fmt.Sprintf("%s took %d minutes, %d over the expected %d.",
			job.Title, job.ActualTime, over, baseline),
	}, true
}
