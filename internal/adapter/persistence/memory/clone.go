package memory

import (
	"encoding/json"

	"poolpro/internal/domain/entities"
)

func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	return append(make([]T, 0, len(in)), in...)
}

func cloneDate(d *entities.Date) *entities.Date {
	if d == nil {
		return nil
	}
	c := *d
	return &c
}

func cloneCustomer(c entities.Customer) entities.Customer {
	if c.Pools != nil {
		pools := make([]entities.Pool, len(c.Pools))
		for i, p := range c.Pools {
			p.Equipment = cloneSlice(p.Equipment)
			p.ChemReadings = cloneSlice(p.ChemReadings)
			pools[i] = p
		}
		c.Pools = pools
	}
	return c
}

func cloneTechnician(t entities.Technician) entities.Technician {
	t.AssignedRoutes = cloneSlice(t.AssignedRoutes)
	return t
}

func cloneJob(j entities.Job) entities.Job {
	j.CompletedDate = cloneDate(j.CompletedDate)
	return j
}

func cloneQuote(q entities.Quote) entities.Quote {
	q.Items = cloneSlice(q.Items)
	q.ExpiryDate = cloneDate(q.ExpiryDate)
	q.ApprovedDate = cloneDate(q.ApprovedDate)
	q.DeclinedDate = cloneDate(q.DeclinedDate)
	return q
}

func cloneInvoice(inv entities.Invoice) entities.Invoice {
	inv.Items = cloneSlice(inv.Items)
	inv.PaidDate = cloneDate(inv.PaidDate)
	if inv.PendingPayment != nil {
		pp := *inv.PendingPayment
		inv.PendingPayment = &pp
	}
	return inv
}

func cloneRoute(r entities.Route) entities.Route {
	r.Stops = cloneSlice(r.Stops)
	return r
}

func cloneAlert(a entities.Alert) entities.Alert {
	if a.ResolvedAt != nil {
		t := *a.ResolvedAt
		a.ResolvedAt = &t
	}
	return a
}

func clonePayment(p entities.InvoicePayment) entities.InvoicePayment {
	p.ProviderPayloadRaw = cloneSlice(p.ProviderPayloadRaw)
	if p.ProviderPayload != nil {
		var m map[string]any
		if err := json.Unmarshal(p.ProviderPayloadRaw, &m); err == nil {
			p.ProviderPayload = m
		}
	}
	return p
}
