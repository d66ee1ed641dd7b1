package alerting

import (
	"testing"
	"time"

	"poolpro/internal/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 1, 20, 9, 0, 0, 0, time.UTC)

func ruleFor(t *testing.T, m Metric) ChemicalRule {
	t.Helper()
	for _, r := range DefaultChemicalRules() {
		if r.Metric == m {
			return r
		}
	}
	t.Fatalf("no rule for %s", m)
	return ChemicalRule{}
}

func TestChemicalRule_PHSeverityBands(t *testing.T) {
	rule := ruleFor(t, MetricPH)
	cases := []struct {
		ph   float64
		ok   bool
		want entities.AlertSeverity
	}{
		{7.4, false, ""},
		{7.2, false, ""},
		{7.6, false, ""},
		{7.7, true, entities.AlertSeverityLow},
		{7.1, true, entities.AlertSeverityLow},
		{7.9, true, entities.AlertSeverityMedium},
		{6.9, true, entities.AlertSeverityMedium},
		{8.2, true, entities.AlertSeverityMedium},
		{5.0, true, entities.AlertSeverityMedium},
	}
	for _, tc := range cases {
		f, ok := rule.Check(entities.ChemReading{PH: tc.ph})
		require.Equal(t, tc.ok, ok, "ph %.1f", tc.ph)
		if ok {
			assert.Equal(t, tc.want, f.Severity, "ph %.1f", tc.ph)
		}
	}
}

func TestChemicalRule_Messages(t *testing.T) {
	f, ok := ruleFor(t, MetricTA).Check(entities.ChemReading{TA: 70})
	require.True(t, ok)
	assert.Equal(t, entities.AlertSeverityLow, f.Severity)
	assert.Equal(t, "Low Total Alkalinity", f.Title)
	assert.Equal(t, "Total Alkalinity is low at 70 ppm. Recommended: 80-120 ppm.", f.Detail)

	f, ok = ruleFor(t, MetricFC).Check(entities.ChemReading{FC: 0.5})
	require.True(t, ok)
	assert.Equal(t, entities.AlertSeverityMedium, f.Severity)

	f, ok = ruleFor(t, MetricCYA).Check(entities.ChemReading{CYA: 95})
	require.True(t, ok)
	assert.Equal(t, entities.AlertSeverityHigh, f.Severity)
	assert.Equal(t, "High Cyanuric Acid", f.Title)
}

func TestChemicalRule_FCAndPHNeverExceedMedium(t *testing.T) {
	for _, m := range []Metric{MetricFC, MetricPH} {
		rule := ruleFor(t, m)
		for _, d := range []float64{0.01, 0.3, 1.5, 4, 50} {
			sev := rule.Severity(d)
			assert.Contains(t, []entities.AlertSeverity{entities.AlertSeverityLow, entities.AlertSeverityMedium}, sev, "%s distance %.2f", m, d)
		}
		assert.Equal(t, entities.AlertSeverityMedium, rule.Severity(-50), m)
	}
	assert.Equal(t, entities.AlertSeverityHigh, ruleFor(t, MetricTA).Severity(200))
}

func TestMaintenanceRule(t *testing.T) {
	rule := MaintenanceRule{Interval: 7}
	today := entities.MustDate("2025-01-20")

	_, ok := rule.Check(entities.Pool{LastService: entities.MustDate("2025-01-13")}, today)
	assert.False(t, ok)

	f, ok := rule.Check(entities.Pool{Name: "Main Pool", LastService: entities.MustDate("2025-01-10")}, today)
	require.True(t, ok)
	assert.Equal(t, entities.AlertSeverityLow, f.Severity)

	f, ok = rule.Check(entities.Pool{LastService: entities.MustDate("2025-01-05")}, today)
	require.True(t, ok)
	assert.Equal(t, entities.AlertSeverityMedium, f.Severity)

	f, ok = rule.Check(entities.Pool{LastService: entities.MustDate("2024-12-20")}, today)
	require.True(t, ok)
	assert.Equal(t, entities.AlertSeverityHigh, f.Severity)

	_, ok = rule.Check(entities.Pool{}, today)
	assert.False(t, ok)
}

func TestServiceTimeRule(t *testing.T) {
	rule := ServiceTimeRule{Margin: 15}
	tech := entities.Technician{AvgServiceTime: 45}

	_, ok := rule.Check(entities.Job{Status: entities.JobStatusCompleted, ActualTime: 60}, tech)
	assert.False(t, ok)

	f, ok := rule.Check(entities.Job{Status: entities.JobStatusCompleted, ActualTime: 90}, tech)
	require.True(t, ok)
	assert.Equal(t, entities.AlertSeverityMedium, f.Severity)

	_, ok = rule.Check(entities.Job{Status: entities.JobStatusInProgress, ActualTime: 200}, tech)
	assert.False(t, ok)

	f, ok = rule.Check(entities.Job{Status: entities.JobStatusCompleted, EstimatedTime: 60, ActualTime: 120}, entities.Technician{})
	require.True(t, ok)
	assert.Equal(t, entities.AlertSeverityHigh, f.Severity)
}

func sampleInput() Input {
	return Input{
		Customers: []entities.Customer{
			{
				ID: "cust-1", Name: "John Smith", Status: entities.CustomerStatusActive,
				Pools: []entities.Pool{{
					ID: "pool-1", Name: "Main Pool", LastService: entities.MustDate("2025-01-15"),
					ChemReadings: []entities.ChemReading{
						{Date: entities.MustDate("2025-01-15"), FC: 3.5, PH: 7.9, TA: 100, CH: 250, CYA: 40},
						{Date: entities.MustDate("2025-01-08"), FC: 0.5, PH: 7.4, TA: 100, CH: 250, CYA: 40},
					},
				}},
			},
			{
				ID: "cust-2", Name: "Inactive Owner", Status: entities.CustomerStatusInactive,
				Pools: []entities.Pool{{ID: "pool-2", ChemReadings: []entities.ChemReading{{PH: 9}}}},
			},
		},
		Jobs: []entities.Job{
			{ID: "job-1", CustomerID: "cust-1", Title: "Filter clean", Status: entities.JobStatusCompleted, AssignedTo: "tech-1", ActualTime: 80},
		},
		Technicians: []entities.Technician{{ID: "tech-1", AvgServiceTime: 45}},
	}
}

func TestEngine_Evaluate(t *testing.T) {
	alerts := Default().Evaluate(sampleInput(), now)
	require.Len(t, alerts, 2)

	chem := alerts[0]
	assert.Equal(t, entities.AlertTypeChemical, chem.Type)
	assert.Equal(t, entities.AlertSeverityMedium, chem.Severity)
	assert.Equal(t, "pool-1", chem.PoolID)
	assert.Equal(t, "Main Pool", chem.PoolName)
	assert.Equal(t, entities.AlertStatusOpen, chem.Status)
	assert.Equal(t, "chemical:cust-1:pool-1:ph:high:2025-01-15", chem.Fingerprint)

	timing := alerts[1]
	assert.Equal(t, entities.AlertTypeTime, timing.Type)
	assert.Equal(t, "job-1", timing.JobID)
	assert.Equal(t, "John Smith", timing.CustomerName)
	assert.Equal(t, "time:job-1", timing.Fingerprint)
}

func TestEngine_Deterministic(t *testing.T) {
	e := Default()
	assert.Equal(t, e.Evaluate(sampleInput(), now), e.Evaluate(sampleInput(), now))
}

func TestFresh_DoesNotDuplicate(t *testing.T) {
	e := Default()
	first := Fresh(e.Evaluate(sampleInput(), now), nil)
	require.Len(t, first, 2)

	second := Fresh(e.Evaluate(sampleInput(), now), first)
	assert.Empty(t, second)

	first[0].Status = entities.AlertStatusResolved
	assert.Empty(t, Fresh(e.Evaluate(sampleInput(), now), first))
}
