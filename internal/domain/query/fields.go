package query

import "poolpro/internal/domain/entities"

// Search field sets per collection.

func CustomerFields(c entities.Customer) []string {
	return []string{c.Name, c.Email, c.Address, c.ID}
}

func JobFields(j entities.Job) []string {
	return []string{j.Title, j.CustomerName, j.ID}
}

func QuoteFields(q entities.Quote) []string {
	return []string{q.Title, q.CustomerName, q.ID}
}

func InvoiceFields(inv entities.Invoice) []string {
	return []string{inv.ID, inv.CustomerName}
}

func TechnicianFields(t entities.Technician) []string {
	return []string{t.Name, t.Email, t.ID}
}

func AlertFields(a entities.Alert) []string {
	return []string{a.Title, a.Description, a.CustomerName}
}
