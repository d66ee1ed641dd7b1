package entities

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPool_AddReadingKeepsMostRecentFirst(t *testing.T) {
	p := Pool{LastService: MustDate("2025-01-08")}
	p.AddReading(ChemReading{Date: MustDate("2025-01-08"), FC: 2.8})
	p.AddReading(ChemReading{Date: MustDate("2025-01-15"), FC: 3.2})
	p.AddReading(ChemReading{Date: MustDate("2025-01-01"), FC: 3.5})

	require.Len(t, p.ChemReadings, 3)
	assert.Equal(t, "2025-01-15", p.ChemReadings[0].Date.String())
	assert.Equal(t, "2025-01-08", p.ChemReadings[1].Date.String())
	assert.Equal(t, "2025-01-01", p.ChemReadings[2].Date.String())
	assert.Equal(t, "2025-01-15", p.LastService.String())

	latest, ok := p.LatestReading()
	require.True(t, ok)
	assert.Equal(t, 3.2, latest.FC)
}

func TestPool_LatestReadingEmpty(t *testing.T) {
	_, ok := Pool{}.LatestReading()
	assert.False(t, ok)
}

func TestRoute_StopPositionsStayDense(t *testing.T) {
	r := Route{Day: Monday, TechnicianID: "tech-1"}
	require.NoError(t, r.AddStop(Stop{ID: "stop-1", CustomerID: "cust-1"}))
	require.NoError(t, r.AddStop(Stop{ID: "stop-2", CustomerID: "cust-2"}))
	require.NoError(t, r.AddStop(Stop{ID: "stop-3", CustomerID: "cust-3"}))
	require.ErrorIs(t, r.AddStop(Stop{ID: "stop-4", CustomerID: "cust-2"}), ErrDuplicateStop)
	assertDense(t, r)

	require.NoError(t, r.RemoveStop("stop-2"))
	assertDense(t, r)
	assert.Equal(t, "stop-3", r.Stops[1].ID)
	require.ErrorIs(t, r.RemoveStop("stop-2"), ErrStopNotFound)

	require.NoError(t, r.Reorder([]string{"stop-3", "stop-1"}))
	assertDense(t, r)
	assert.Equal(t, "stop-3", r.Stops[0].ID)

	require.ErrorIs(t, r.Reorder([]string{"stop-3", "stop-3"}), ErrInvalidStopOrder)
	require.ErrorIs(t, r.Reorder([]string{"stop-3"}), ErrInvalidStopOrder)
}

func TestRoute_ValidatePositions(t *testing.T) {
	r := Route{Stops: []Stop{{Position: 1}, {Position: 1}}}
	require.ErrorIs(t, r.ValidatePositions(), ErrInvalidStopOrder)

	r = Route{Stops: []Stop{{Position: 2}, {Position: 3}}}
	require.ErrorIs(t, r.ValidatePositions(), ErrInvalidStopOrder)

	r = Route{Stops: []Stop{{Position: 2}, {Position: 1}}}
	require.NoError(t, r.ValidatePositions())
}

func assertDense(t *testing.T, r Route) {
	t.Helper()
	require.NoError(t, r.ValidatePositions())
	for i, s := range r.Stops {
		assert.Equal(t, i+1, s.Position)
	}
}

func TestDate_JSON(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`"2025-01-15"`), &d))
	assert.Equal(t, "2025-01-15", d.String())
	assert.Equal(t, Wednesday, d.Weekday())
	assert.Equal(t, "2025-01", d.MonthKey())

	require.NoError(t, json.Unmarshal([]byte(`"2025-01-15T10:30:00Z"`), &d))
	assert.Equal(t, "2025-01-15", d.String())

	b, err := json.Marshal(MustDate("2025-02-01"))
	require.NoError(t, err)
	assert.Equal(t, `"2025-02-01"`, string(b))

	require.Error(t, json.Unmarshal([]byte(`"01/15/2025"`), &d))
}

func TestEnumsValid(t *testing.T) {
	assert.True(t, CustomerStatusPaused.Valid())
	assert.False(t, CustomerStatus("archived").Valid())
	assert.True(t, JobStatusInProgress.Valid())
	assert.True(t, InvoiceStatusOverdue.Valid())
	assert.True(t, Saturday.Valid())
	assert.False(t, Weekday("monday").Valid())
}
