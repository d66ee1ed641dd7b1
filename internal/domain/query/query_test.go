package query

import (
	"testing"

	"poolpro/internal/domain/entities"

	"github.com/stretchr/testify/assert"
)

func customers() []entities.Customer {
	return []entities.Customer{
		{ID: "cust-1", Name: "John Anderson", Email: "john.anderson@email.com", Address: "1234 Oak Street", Status: entities.CustomerStatusActive},
		{ID: "cust-2", Name: "Sarah Mitchell", Email: "sarah.mitchell@email.com", Address: "5678 Pine Avenue", Status: entities.CustomerStatusActive},
		{ID: "cust-3", Name: "Michael Torres", Email: "michael.torres@email.com", Address: "9012 Elm Drive", Status: entities.CustomerStatusPaused},
	}
}

func ids(cs []entities.Customer) []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.ID)
	}
	return out
}

func statusOf(c entities.Customer) entities.CustomerStatus { return c.Status }

func TestSearch_CaseInsensitive(t *testing.T) {
	got := Search(customers(), "SARAH", CustomerFields)
	assert.Equal(t, []string{"cust-2"}, ids(got))

	got = Search(customers(), "pine ave", CustomerFields)
	assert.Equal(t, []string{"cust-2"}, ids(got))

	got = Search(customers(), "CUST-3", CustomerFields)
	assert.Equal(t, []string{"cust-3"}, ids(got))

	got = Search(customers(), "email.com", CustomerFields)
	assert.Equal(t, []string{"cust-1", "cust-2", "cust-3"}, ids(got))

	assert.Empty(t, Search(customers(), "nobody", CustomerFields))
	assert.Len(t, Search(customers(), "  ", CustomerFields), 3)
}

func TestByStatus(t *testing.T) {
	all := ByStatus(customers(), All, statusOf)
	assert.Equal(t, ids(customers()), ids(all))

	active := ByStatus(customers(), "active", statusOf)
	assert.Equal(t, []string{"cust-1", "cust-2"}, ids(active))

	assert.Empty(t, ByStatus(customers(), "inactive", statusOf))
}

func TestFilter_IsIntersection(t *testing.T) {
	got := Filter(customers(), "m", "paused", CustomerFields, statusOf)
	assert.Equal(t, []string{"cust-3"}, ids(got))

	got = Filter(customers(), "sarah", "paused", CustomerFields, statusOf)
	assert.Empty(t, got)
}

func TestCountByStatus_MatchesFilteredLengths(t *testing.T) {
	cs := customers()
	counts := CountByStatus(cs, entities.CustomerStatuses(), statusOf)

	assert.Equal(t, 3, counts[All])
	sum := 0
	for _, s := range entities.CustomerStatuses() {
		assert.Equal(t, len(ByStatus(cs, string(s), statusOf)), counts[string(s)], s)
		sum += counts[string(s)]
	}
	assert.Equal(t, counts[All], sum)
	assert.Equal(t, 0, counts["inactive"])
}
