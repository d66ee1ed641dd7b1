package memory

import (
	"context"
	"time"

	"poolpro/internal/domain/entities"

	"github.com/shopspring/decimal"
)

func money(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func day(s string) entities.Date { return entities.MustDate(s) }

func dayPtr(s string) *entities.Date { return entities.DatePtr(entities.MustDate(s)) }

func reading(date string, fc, ph float64, ta, ch, cya int) entities.ChemReading {
	return entities.ChemReading{Date: day(date), FC: fc, PH: ph, TA: ta, CH: ch, CYA: cya}
}

// SeedCustomers is the sample customer book, also used by tests.
func SeedCustomers(now time.Time) []entities.Customer {
	return []entities.Customer{
		{
			ID: "cust-1", Name: "John Anderson", Email: "john.anderson@email.com", Phone: "(555) 123-4567",
			Address: "1234 Oak Street, Austin, TX 78701", Status: entities.CustomerStatusActive,
			AccountBalance: decimal.Zero, ServiceDay: entities.Monday, RoutePosition: 1, Autopay: true,
			Pools: []entities.Pool{{
				ID: "pool-1", Name: "Main Pool", Type: "In-Ground", Color: "#3B82F6", Gallons: 25000,
				Equipment: []string{"Pump", "Filter", "Heater", "Salt Cell"}, LastService: day("2025-01-15"),
				ChemReadings: []entities.ChemReading{
					reading("2025-01-15", 3.2, 7.4, 120, 250, 50),
					reading("2025-01-08", 2.8, 7.6, 115, 240, 50),
					reading("2025-01-01", 3.5, 7.2, 125, 260, 50),
				},
			}},
			CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: "cust-2", Name: "Sarah Mitchell", Email: "sarah.mitchell@email.com", Phone: "(555) 234-5678",
			Address: "5678 Pine Avenue, Austin, TX 78702", Status: entities.CustomerStatusActive,
			AccountBalance: money("-125.50"), ServiceDay: entities.Monday, RoutePosition: 2,
			Pools: []entities.Pool{
				{
					ID: "pool-2", Name: "Main Pool", Type: "In-Ground", Color: "#3B82F6", Gallons: 18000,
					Equipment: []string{"Pump", "Filter", "Salt Cell"}, LastService: day("2025-01-15"),
					ChemReadings: []entities.ChemReading{
						reading("2025-01-15", 2.5, 7.8, 140, 280, 60),
						reading("2025-01-08", 2.2, 7.9, 145, 290, 60),
					},
				},
				{
					ID: "pool-3", Name: "Spa", Type: "Spa/Hot Tub", Color: "#F59E0B", Gallons: 400,
					Equipment: []string{"Heater", "Jets"}, LastService: day("2025-01-15"),
					ChemReadings: []entities.ChemReading{reading("2025-01-15", 4.0, 7.5, 100, 180, 30)},
				},
			},
			CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: "cust-3", Name: "Michael Torres", Email: "michael.torres@email.com", Phone: "(555) 345-6789",
			Address: "9012 Elm Drive, Austin, TX 78703", Status: entities.CustomerStatusActive,
			AccountBalance: money("75.00"), ServiceDay: entities.Tuesday, RoutePosition: 1, Autopay: true,
			Pools: []entities.Pool{{
				ID: "pool-4", Name: "Pool", Type: "Above-Ground", Color: "#10B981", Gallons: 15000,
				Equipment: []string{"Pump", "Filter"}, LastService: day("2025-01-14"),
				ChemReadings: []entities.ChemReading{reading("2025-01-14", 3.0, 7.3, 110, 230, 45)},
			}},
			CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: "cust-4", Name: "Emily Roberts", Email: "emily.roberts@email.com", Phone: "(555) 456-7890",
			Address: "3456 Maple Court, Austin, TX 78704", Status: entities.CustomerStatusActive,
			AccountBalance: decimal.Zero, ServiceDay: entities.Wednesday, RoutePosition: 1, Autopay: true,
			Pools: []entities.Pool{{
				ID: "pool-5", Name: "Main Pool", Type: "In-Ground", Color: "#3B82F6", Gallons: 30000,
				Equipment: []string{"Pump", "Filter", "Heater", "Salt Cell", "Automation"}, LastService: day("2025-01-13"),
				ChemReadings: []entities.ChemReading{reading("2025-01-13", 3.8, 7.2, 105, 220, 40)},
			}},
			CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: "cust-5", Name: "David Chen", Email: "david.chen@email.com", Phone: "(555) 567-8901",
			Address: "7890 Cedar Lane, Austin, TX 78705", Status: entities.CustomerStatusPaused,
			AccountBalance: decimal.Zero, ServiceDay: entities.Thursday, RoutePosition: 1,
			Pools: []entities.Pool{{
				ID: "pool-6", Name: "Pool", Type: "In-Ground", Color: "#3B82F6", Gallons: 22000,
				Equipment: []string{"Pump", "Filter"}, LastService: day("2024-12-28"),
				ChemReadings: []entities.ChemReading{reading("2024-12-28", 2.9, 7.5, 115, 245, 55)},
			}},
			CreatedAt: now, UpdatedAt: now,
		},
	}
}

func seedTechnicians(now time.Time) []entities.Technician {
	return []entities.Technician{
		{ID: "tech-1", Name: "Mike Johnson", Email: "mike.j@poolpro.com", Phone: "(555) 111-2222",
			Status: entities.TechnicianStatusActive, AssignedRoutes: []entities.Weekday{entities.Monday, entities.Tuesday},
			CompletedJobs: 245, AvgServiceTime: 32, CreatedAt: now, UpdatedAt: now},
		{ID: "tech-2", Name: "Carlos Rodriguez", Email: "carlos.r@poolpro.com", Phone: "(555) 222-3333",
			Status: entities.TechnicianStatusActive, AssignedRoutes: []entities.Weekday{entities.Wednesday, entities.Thursday},
			CompletedJobs: 198, AvgServiceTime: 28, CreatedAt: now, UpdatedAt: now},
		{ID: "tech-3", Name: "Sarah Kim", Email: "sarah.k@poolpro.com", Phone: "(555) 333-4444",
			Status: entities.TechnicianStatusActive, AssignedRoutes: []entities.Weekday{entities.Friday},
			CompletedJobs: 167, AvgServiceTime: 30, CreatedAt: now, UpdatedAt: now},
	}
}

func seedJobs(now time.Time) []entities.Job {
	return []entities.Job{
		{ID: "job-1", CustomerID: "cust-1", CustomerName: "John Anderson", Type: "filter-clean",
			Title: "Filter Clean + Salt Cell", Status: entities.JobStatusScheduled, ScheduledDate: day("2025-01-18"),
			AssignedTo: "tech-1", EstimatedTime: 60, Price: money("125.00"),
			Notes: "Customer mentioned filter pressure has been high", CreatedAt: now, UpdatedAt: now},
		{ID: "job-2", CustomerID: "cust-2", CustomerName: "Sarah Mitchell", Type: "repair",
			Title: "Pool Pump Repair", Status: entities.JobStatusInProgress, ScheduledDate: day("2025-01-16"),
			AssignedTo: "tech-2", EstimatedTime: 120, Price: money("350.00"),
			Notes: "Pump making loud noise, possible bearing issue", CreatedAt: now, UpdatedAt: now},
		{ID: "job-3", CustomerID: "cust-4", CustomerName: "Emily Roberts", Type: "equipment-install",
			Title: "Install New Pool Light", Status: entities.JobStatusCompleted, ScheduledDate: day("2025-01-15"),
			CompletedDate: dayPtr("2025-01-15"), AssignedTo: "tech-1", EstimatedTime: 90, ActualTime: 85,
			Price: money("425.00"), Notes: "LED color-changing light installation", CreatedAt: now, UpdatedAt: now},
		{ID: "job-4", CustomerID: "cust-3", CustomerName: "Michael Torres", Type: "green-pool",
			Title: "Green Pool Treatment", Status: entities.JobStatusScheduled, ScheduledDate: day("2025-01-17"),
			AssignedTo: "tech-2", EstimatedTime: 45, Price: money("150.00"),
			Notes: "Pool turned green after owner was away", CreatedAt: now, UpdatedAt: now},
	}
}

func seedQuotes(now time.Time) []entities.Quote {
	quotes := []entities.Quote{
		{ID: "quote-1", CustomerID: "cust-1", CustomerName: "John Anderson", Title: "Heater Replacement",
			Status: entities.QuoteStatusPending, CreatedDate: day("2025-01-14"), ExpiryDate: dayPtr("2025-01-28"),
			Items: []entities.QuoteItem{
				{Name: "Hayward H400 Heater", Quantity: 1, Price: money("2500.00")},
				{Name: "Installation & Labor", Quantity: 1, Price: money("500.00")},
				{Name: "Gas Line Connection", Quantity: 1, Price: money("300.00")},
			},
			Notes: "Current heater is 15 years old and inefficient", CreatedAt: now, UpdatedAt: now},
		{ID: "quote-2", CustomerID: "cust-2", CustomerName: "Sarah Mitchell", Title: "Weekly Pool Service",
			Status: entities.QuoteStatusApproved, CreatedDate: day("2025-01-10"), ApprovedDate: dayPtr("2025-01-12"),
			Items: []entities.QuoteItem{{Name: "Weekly Service (Monthly)", Quantity: 1, Price: money("150.00")}},
			Notes: "Started service on 01/15/2025", CreatedAt: now, UpdatedAt: now},
		{ID: "quote-3", CustomerID: "cust-4", CustomerName: "Emily Roberts", Title: "Salt Cell Replacement",
			Status: entities.QuoteStatusDeclined, CreatedDate: day("2025-01-08"), DeclinedDate: dayPtr("2025-01-10"),
			Items: []entities.QuoteItem{
				{Name: "Pentair IC40 Salt Cell", Quantity: 1, Price: money("750.00")},
				{Name: "Installation", Quantity: 1, Price: money("100.00")},
			},
			Notes: "Customer decided to wait until spring", CreatedAt: now, UpdatedAt: now},
	}
	for i := range quotes {
		quotes[i].Recalculate()
	}
	return quotes
}

func invoiceItem(desc string, qty int, rate string) entities.InvoiceItem {
	r := money(rate)
	return entities.InvoiceItem{Description: desc, Quantity: qty, Rate: r, Amount: r.Mul(decimal.NewFromInt(int64(qty)))}
}

// seedInvoices stores inv-1002 as sent; it reads as overdue once its due
// date has passed.
func seedInvoices(now time.Time) []entities.Invoice {
	invoices := []entities.Invoice{
		{ID: "inv-1001", CustomerID: "cust-1", CustomerName: "John Anderson", Date: day("2025-01-15"),
			DueDate: day("2025-02-01"), Status: entities.InvoiceStatusPaid, PaidDate: dayPtr("2025-01-16"),
			Items: []entities.InvoiceItem{
				invoiceItem("Weekly Pool Service", 4, "37.50"),
				invoiceItem("Chemicals (Chlorine)", 1, "25.00"),
			},
			PaymentMethod: "credit-card", CreatedAt: now, UpdatedAt: now},
		{ID: "inv-1002", CustomerID: "cust-2", CustomerName: "Sarah Mitchell", Date: day("2025-01-15"),
			DueDate: day("2025-02-01"), Status: entities.InvoiceStatusSent,
			Items: []entities.InvoiceItem{
				invoiceItem("Weekly Pool Service", 4, "37.50"),
				invoiceItem("Chemicals (Acid)", 1, "15.50"),
				invoiceItem("Filter Clean", 1, "75.00"),
			},
			PaymentMethod: entities.PaymentMethodUnpaid, CreatedAt: now, UpdatedAt: now},
		{ID: "inv-1003", CustomerID: "cust-3", CustomerName: "Michael Torres", Date: day("2025-01-14"),
			DueDate: day("2025-02-01"), Status: entities.InvoiceStatusSent,
			Items:         []entities.InvoiceItem{invoiceItem("Weekly Pool Service", 4, "35.00")},
			PaymentMethod: entities.PaymentMethodUnpaid, CreatedAt: now, UpdatedAt: now},
		{ID: "inv-1004", CustomerID: "cust-4", CustomerName: "Emily Roberts", Date: day("2025-01-13"),
			DueDate: day("2025-02-01"), Status: entities.InvoiceStatusDraft,
			Items: []entities.InvoiceItem{
				invoiceItem("Weekly Pool Service", 4, "40.00"),
				invoiceItem("Pool Light Installation", 1, "425.00"),
			},
			PaymentMethod: entities.PaymentMethodUnpaid, CreatedAt: now, UpdatedAt: now},
	}
	for i := range invoices {
		invoices[i].Recalculate()
		if invoices[i].Status == entities.InvoiceStatusPaid {
			invoices[i].PaidAmount = invoices[i].Total
			invoices[i].BalanceDue = decimal.Zero
		}
	}
	return invoices
}

func seedRoutes(now time.Time) []entities.Route {
	return []entities.Route{
		{ID: entities.RouteID(entities.Monday, "tech-1"), Day: entities.Monday, TechnicianID: "tech-1", TechnicianName: "Mike Johnson",
			Stops: []entities.Stop{
				{ID: "stop-1", CustomerID: "cust-1", CustomerName: "John Anderson", Address: "1234 Oak Street", Position: 1,
					EstimatedTime: 30, Status: entities.StopStatusCompleted, TimeWindow: "8:00 AM - 9:00 AM", Notes: "Code 1234 for gate"},
				{ID: "stop-2", CustomerID: "cust-2", CustomerName: "Sarah Mitchell", Address: "5678 Pine Avenue", Position: 2,
					EstimatedTime: 35, Status: entities.StopStatusCompleted, TimeWindow: "9:30 AM - 10:30 AM", Notes: "Two pools - Main + Spa"},
			},
			CreatedAt: now, UpdatedAt: now},
		{ID: entities.RouteID(entities.Tuesday, "tech-1"), Day: entities.Tuesday, TechnicianID: "tech-1", TechnicianName: "Mike Johnson",
			Stops: []entities.Stop{
				{ID: "stop-3", CustomerID: "cust-3", CustomerName: "Michael Torres", Address: "9012 Elm Drive", Position: 1,
					EstimatedTime: 25, Status: entities.StopStatusInProgress, TimeWindow: "8:00 AM - 9:00 AM", Notes: "Above ground pool"},
			},
			CreatedAt: now, UpdatedAt: now},
		{ID: entities.RouteID(entities.Wednesday, "tech-2"), Day: entities.Wednesday, TechnicianID: "tech-2", TechnicianName: "Carlos Rodriguez",
			Stops: []entities.Stop{
				{ID: "stop-4", CustomerID: "cust-4", CustomerName: "Emily Roberts", Address: "3456 Maple Court", Position: 1,
					EstimatedTime: 35, Status: entities.StopStatusScheduled, TimeWindow: "8:00 AM - 9:00 AM", Notes: "Large pool with automation"},
			},
			CreatedAt: now, UpdatedAt: now},
	}
}

func seedAlerts(now time.Time) []entities.Alert {
	return []entities.Alert{
		{ID: "alert-1", CustomerID: "cust-2", CustomerName: "Sarah Mitchell", PoolID: "pool-2", PoolName: "Main Pool",
			Type: entities.AlertTypeChemical, Severity: entities.AlertSeverityHigh, Title: "High pH Reading",
			Description: "pH reading of 7.8 is above recommended range (7.2-7.6)", Date: day("2025-01-15"),
			Status: entities.AlertStatusOpen, CreatedAt: now},
		{ID: "alert-2", CustomerID: "cust-2", CustomerName: "Sarah Mitchell", PoolID: "pool-2", PoolName: "Main Pool",
			Type: entities.AlertTypeChemical, Severity: entities.AlertSeverityMedium, Title: "Low Free Chlorine",
			Description: "FC reading of 2.5 is below optimal range (3.0-5.0)", Date: day("2025-01-15"),
			Status: entities.AlertStatusOpen, CreatedAt: now},
		{ID: "alert-3", CustomerID: "cust-1", CustomerName: "John Anderson", PoolID: "pool-1", PoolName: "Main Pool",
			Type: entities.AlertTypeTime, Severity: entities.AlertSeverityLow, Title: "Service Time Extended",
			Description: "Service took 45 minutes (avg: 30 minutes)", Date: day("2025-01-15"),
			Status: entities.AlertStatusOpen, CreatedAt: now},
		{ID: "alert-4", CustomerID: "cust-1", CustomerName: "John Anderson", PoolID: "pool-1", PoolName: "Main Pool",
			Type: entities.AlertTypeEquipment, Severity: entities.AlertSeverityHigh, Title: "Filter Clean Due",
			Description: "Filter clean is 2 weeks overdue", Date: day("2025-01-14"),
			Status: entities.AlertStatusOpen, CreatedAt: now},
	}
}

// Seed loads the sample book of business into repos.
func Seed(ctx context.Context, repos *Repositories, now time.Time) error {
	for _, c := range SeedCustomers(now) {
		if _, err := repos.Customers.Create(ctx, c); err != nil {
			return err
		}
	}
	for _, t := range seedTechnicians(now) {
		if _, err := repos.Technicians.Create(ctx, t); err != nil {
			return err
		}
	}
	for _, j := range seedJobs(now) {
		if _, err := repos.Jobs.Create(ctx, j); err != nil {
			return err
		}
	}
	for _, q := range seedQuotes(now) {
		if _, err := repos.Quotes.Create(ctx, q); err != nil {
			return err
		}
	}
	for _, inv := range seedInvoices(now) {
		if _, err := repos.Invoices.Create(ctx, inv); err != nil {
			return err
		}
	}
	for _, r := range seedRoutes(now) {
		if _, err := repos.Routes.Create(ctx, r); err != nil {
			return err
		}
	}
	for _, a := range seedAlerts(now) {
		if _, err := repos.Alerts.Create(ctx, a); err != nil {
			return err
		}
	}
	return nil
}
