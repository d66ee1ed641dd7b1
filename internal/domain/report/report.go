// Package report aggregates collections into the figures shown on the
// dashboard and reports pages. Currency is summed exactly with decimals;
// rounding is left to presentation.
package report

import (
	"sort"

	"poolpro/internal/domain/entities"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// percent returns part/whole*100 rounded to two places, 0 when whole is 0.
func percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	f, _ := decimal.NewFromInt(int64(part)).Mul(hundred).Div(decimal.NewFromInt(int64(whole))).Round(2).Float64()
	return f
}

type RevenueSummary struct {
	TotalRevenue       decimal.Decimal `json:"totalRevenue"`
	PaidRevenue        decimal.Decimal `json:"paidRevenue"`
	OutstandingRevenue decimal.Decimal `json:"outstandingRevenue"`
	TotalInvoices      int             `json:"totalInvoices"`
}

type RevenuePeriod struct {
	Period      string          `json:"period"`
	Total       decimal.Decimal `json:"total"`
	Paid        decimal.Decimal `json:"paid"`
	Outstanding decimal.Decimal `json:"outstanding"`
	Count       int             `json:"count"`
}

type RevenueReport struct {
	Summary   RevenueSummary  `json:"summary"`
	Breakdown []RevenuePeriod `json:"breakdown"`
}

// Revenue sums invoice totals. Paid is status=paid; outstanding is every
// invoice that is neither paid nor draft (sent and overdue alike).
func Revenue(invoices []entities.Invoice) RevenueReport {
	sum := RevenueSummary{
		TotalRevenue:       decimal.Zero,
		PaidRevenue:        decimal.Zero,
		OutstandingRevenue: decimal.Zero,
		TotalInvoices:      len(invoices),
	}
	periods := map[string]*RevenuePeriod{}
	for _, inv := range invoices {
		sum.TotalRevenue = sum.TotalRevenue.Add(inv.Total)
		if inv.Status == entities.InvoiceStatusPaid {
			sum.PaidRevenue = sum.PaidRevenue.Add(inv.Total)
		}
		if inv.IsOutstanding() {
			sum.OutstandingRevenue = sum.OutstandingRevenue.Add(inv.Total)
		}

		key := inv.Date.MonthKey()
		if key == "" {
			continue
		}
		p, ok := periods[key]
		if !ok {
			p = &RevenuePeriod{Period: key, Total: decimal.Zero, Paid: decimal.Zero, Outstanding: decimal.Zero}
			periods[key] = p
		}
		p.Total = p.Total.Add(inv.Total)
		p.Count++
		if inv.Status == entities.InvoiceStatusPaid {
			p.Paid = p.Paid.Add(inv.Total)
		}
		if inv.IsOutstanding() {
			p.Outstanding = p.Outstanding.Add(inv.Total)
		}
	}

	breakdown := make([]RevenuePeriod, 0, len(periods))
	for _, p := range periods {
		breakdown = append(breakdown, *p)
	}
	sort.Slice(breakdown, func(i, j int) bool { return breakdown[i].Period < breakdown[j].Period })
	return RevenueReport{Summary: sum, Breakdown: breakdown}
}

type CustomerStats struct {
	TotalCustomers      int     `json:"totalCustomers"`
	ActiveCustomers     int     `json:"activeCustomers"`
	PausedCustomers     int     `json:"pausedCustomers"`
	InactiveCustomers   int     `json:"inactiveCustomers"`
	TotalPools          int     `json:"totalPools"`
	AvgPoolsPerCustomer float64 `json:"avgPoolsPerCustomer"`
	AutopayCustomers    int     `json:"autopayCustomers"`
	AutopayPercentage   float64 `json:"autopayPercentage"`
}

func Customers(customers []entities.Customer) CustomerStats {
	s := CustomerStats{TotalCustomers: len(customers)}
	for _, c := range customers {
		switch c.Status {
		case entities.CustomerStatusActive:
			s.ActiveCustomers++
		case entities.CustomerStatusPaused:
			s.PausedCustomers++
		case entities.CustomerStatusInactive:
			s.InactiveCustomers++
		}
		if c.Autopay {
			s.AutopayCustomers++
		}
		s.TotalPools += len(c.Pools)
	}
	if s.TotalCustomers > 0 {
		s.AvgPoolsPerCustomer, _ = decimal.NewFromInt(int64(s.TotalPools)).
			Div(decimal.NewFromInt(int64(s.TotalCustomers))).Round(2).Float64()
	}
	s.AutopayPercentage = percent(s.AutopayCustomers, s.TotalCustomers)
	return s
}

type JobTypeBreakdown struct {
	Type       string `json:"type"`
	Total      int    `json:"total"`
	Completed  int    `json:"completed"`
	InProgress int    `json:"inProgress"`
	Scheduled  int    `json:"scheduled"`
}

type JobPerformanceReport struct {
	TotalJobs      int                `json:"totalJobs"`
	CompletedJobs  int                `json:"completedJobs"`
	InProgressJobs int                `json:"inProgressJobs"`
	ScheduledJobs  int                `json:"scheduledJobs"`
	CompletionRate float64            `json:"completionRate"`
	ByType         []JobTypeBreakdown `json:"byType"`
}

func JobPerformance(jobs []entities.Job) JobPerformanceReport {
	r := JobPerformanceReport{TotalJobs: len(jobs), ByType: []JobTypeBreakdown{}}
	index := map[string]int{}
	for _, j := range jobs {
		typ := j.Type
		if typ == "" {
			typ = "other"
		}
		i, ok := index[typ]
		if !ok {
			i = len(r.ByType)
			index[typ] = i
			r.ByType = append(r.ByType, JobTypeBreakdown{Type: typ})
		}
		b := &r.ByType[i]
		b.Total++
		switch j.Status {
		case entities.JobStatusCompleted:
			r.CompletedJobs++
			b.Completed++
		case entities.JobStatusInProgress:
			r.InProgressJobs++
			b.InProgress++
		case entities.JobStatusScheduled:
			r.ScheduledJobs++
			b.Scheduled++
		}
	}
	r.CompletionRate = percent(r.CompletedJobs, r.TotalJobs)
	return r
}

type TechnicianPerformanceRow struct {
	TechnicianID   string  `json:"technicianId"`
	TechnicianName string  `json:"technicianName"`
	TotalJobs      int     `json:"totalJobs"`
	CompletedJobs  int     `json:"completedJobs"`
	InProgressJobs int     `json:"inProgressJobs"`
	ScheduledJobs  int     `json:"scheduledJobs"`
	CompletionRate float64 `json:"completionRate"`
	AvgActualTime  int     `json:"avgActualTime"`
}

// TechnicianPerformance keeps the technician order given and includes
// technicians with no jobs.
func TechnicianPerformance(technicians []entities.Technician, jobs []entities.Job) []TechnicianPerformanceRow {
	byTech := map[string][]entities.Job{}
	for _, j := range jobs {
		byTech[j.AssignedTo] = append(byTech[j.AssignedTo], j)
	}
	rows := make([]TechnicianPerformanceRow, 0, len(technicians))
	for _, t := range technicians {
		row := TechnicianPerformanceRow{TechnicianID: t.ID, TechnicianName: t.Name}
		timed, minutes := 0, 0
		for _, j := range byTech[t.ID] {
			row.TotalJobs++
			switch j.Status {
			case entities.JobStatusCompleted:
				row.CompletedJobs++
				if j.ActualTime > 0 {
					timed++
					minutes += j.ActualTime
				}
			case entities.JobStatusInProgress:
				row.InProgressJobs++
			case entities.JobStatusScheduled:
				row.ScheduledJobs++
			}
		}
		row.CompletionRate = percent(row.CompletedJobs, row.TotalJobs)
		if timed > 0 {
			row.AvgActualTime = minutes / timed
		}
		rows = append(rows, row)
	}
	return rows
}

type InvoiceFinancials struct {
	TotalInvoiced    decimal.Decimal `json:"totalInvoiced"`
	TotalPaid        decimal.Decimal `json:"totalPaid"`
	TotalOutstanding decimal.Decimal `json:"totalOutstanding"`
	OverdueAmount    decimal.Decimal `json:"overdueAmount"`
	DraftCount       int             `json:"draftCount"`
	SentCount        int             `json:"sentCount"`
	PaidCount        int             `json:"paidCount"`
	OverdueCount     int             `json:"overdueCount"`
}

type QuoteFinancials struct {
	TotalQuotes    int     `json:"totalQuotes"`
	PendingQuotes  int     `json:"pendingQuotes"`
	ApprovedQuotes int     `json:"approvedQuotes"`
	DeclinedQuotes int     `json:"declinedQuotes"`
	ConversionRate float64 `json:"conversionRate"`
}

type FinancialSummaryReport struct {
	Invoices InvoiceFinancials `json:"invoices"`
	Quotes   QuoteFinancials   `json:"quotes"`
}

// FinancialSummary classifies invoices by effective status as of today, so
// sent invoices past due count as overdue.
func FinancialSummary(invoices []entities.Invoice, quotes []entities.Quote, today entities.Date) FinancialSummaryReport {
	inv := InvoiceFinancials{
		TotalInvoiced:    decimal.Zero,
		TotalPaid:        decimal.Zero,
		TotalOutstanding: decimal.Zero,
		OverdueAmount:    decimal.Zero,
	}
	for _, i := range invoices {
		inv.TotalInvoiced = inv.TotalInvoiced.Add(i.Total)
		if i.IsOutstanding() {
			inv.TotalOutstanding = inv.TotalOutstanding.Add(i.Total)
		}
		switch i.EffectiveStatus(today) {
		case entities.InvoiceStatusDraft:
			inv.DraftCount++
		case entities.InvoiceStatusSent:
			inv.SentCount++
		case entities.InvoiceStatusPaid:
			inv.PaidCount++
			inv.TotalPaid = inv.TotalPaid.Add(i.Total)
		case entities.InvoiceStatusOverdue:
			inv.OverdueCount++
			inv.OverdueAmount = inv.OverdueAmount.Add(i.Total)
		}
	}

	q := QuoteFinancials{TotalQuotes: len(quotes)}
	for _, qt := range quotes {
		switch qt.Status {
		case entities.QuoteStatusPending:
			q.PendingQuotes++
		case entities.QuoteStatusApproved:
			q.ApprovedQuotes++
		case entities.QuoteStatusDeclined:
			q.DeclinedQuotes++
		}
	}
	q.ConversionRate = percent(q.ApprovedQuotes, q.TotalQuotes)
	return FinancialSummaryReport{Invoices: inv, Quotes: q}
}

type DashboardStats struct {
	Customers struct {
		Total  int `json:"total"`
		Active int `json:"active"`
	} `json:"customers"`
	Jobs struct {
		Total     int `json:"total"`
		Completed int `json:"completed"`
		Today     int `json:"today"`
	} `json:"jobs"`
	Alerts struct {
		Open int `json:"open"`
	} `json:"alerts"`
	Revenue RevenueSummary `json:"revenue"`
	Quotes  struct {
		Pending int `json:"pending"`
	} `json:"quotes"`
}

// Dashboard gathers the headline numbers. Jobs.Today counts jobs scheduled
// for today that are not yet completed.
func Dashboard(customers []entities.Customer, jobs []entities.Job, alerts []entities.Alert, invoices []entities.Invoice, quotes []entities.Quote, today entities.Date) DashboardStats {
	var d DashboardStats
	cs := Customers(customers)
	d.Customers.Total = cs.TotalCustomers
	d.Customers.Active = cs.ActiveCustomers

	d.Jobs.Total = len(jobs)
	for _, j := range jobs {
		if j.Status == entities.JobStatusCompleted {
			d.Jobs.Completed++
		} else if j.ScheduledDate.Equal(today) {
			d.Jobs.Today++
		}
	}
	for _, a := range alerts {
		if a.Status == entities.AlertStatusOpen {
			d.Alerts.Open++
		}
	}
	for _, q := range quotes {
		if q.Status == entities.QuoteStatusPending {
			d.Quotes.Pending++
		}
	}
	d.Revenue = Revenue(invoices).Summary
	return d
}
