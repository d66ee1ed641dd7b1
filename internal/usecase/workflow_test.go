package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"poolpro/internal/adapter/persistence/memory"
	"poolpro/internal/domain/alerting"
	"poolpro/internal/domain/clock"
	"poolpro/internal/domain/entities"
	"poolpro/internal/usecase/interfaces"

	"github.com/shopspring/decimal"
)

type fixture struct {
	repos     *memory.Repositories
	clock     clock.Clock
	hooks     *WorkflowHooks
	customers *CustomerUseCase
	jobs      *JobUseCase
	quotes    *QuoteUseCase
	invoices  *InvoiceUseCase
	routes    *RouteUseCase
	alerts    *AlertUseCase
	reports   *ReportUseCase
}

func newFixture(t *testing.T, now time.Time) *fixture {
	t.Helper()
	repos := memory.New()
	if err := memory.Seed(context.Background(), repos, now); err != nil {
		t.Fatalf("seed: %v", err)
	}
	clk := clock.Fixed(now)
	policy := DefaultBillingPolicy()
	hooks := NewWorkflowHooks(repos.Customers, repos.Technicians, repos.Jobs, repos.Invoices, policy, clk, nil)
	return &fixture{
		repos:     repos,
		clock:     clk,
		hooks:     hooks,
		customers: NewCustomerUseCase(repos.Customers, clk, nil),
		jobs:      NewJobUseCase(repos.Jobs, repos.Customers, repos.Technicians, hooks, clk, nil),
		quotes:    NewQuoteUseCase(repos.Quotes, repos.Customers, hooks, policy, clk, nil),
		invoices:  NewInvoiceUseCase(repos.Invoices, repos.Customers, policy, clk, nil),
		routes:    NewRouteUseCase(repos.Routes, repos.Customers, repos.Technicians, clk, nil),
		alerts:    NewAlertUseCase(repos.Alerts, repos.Customers, repos.Jobs, repos.Technicians, alerting.Default(), clk, nil),
		reports:   NewReportUseCase(repos.Customers, repos.Technicians, repos.Jobs, repos.Quotes, repos.Invoices, repos.Alerts, clk),
	}
}

func TestNextServiceDate(t *testing.T) {
	monday := entities.MustDate("2025-01-20")
	cases := []struct {
		day  entities.Weekday
		want string
	}{
		{entities.Monday, "2025-01-27"},
		{entities.Tuesday, "2025-01-21"},
		{entities.Sunday, "2025-01-26"},
		{entities.Weekday(""), "2025-01-21"},
	}
	for _, tc := range cases {
		if got := nextServiceDate(monday, tc.day).String(); got != tc.want {
			t.Fatalf("%q: expected %s, got %s", tc.day, tc.want, got)
		}
	}
}

func TestWorkflow_QuoteApprovalCreatesOneJob(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, testNow)

	res, err := f.quotes.Approve(ctx, "quote-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	job := res.Job
	if job.QuoteID != "quote-1" || res.Quote.JobID != job.ID {
		t.Fatalf("quote and job not linked: %+v / %+v", res.Quote, job)
	}
	if !job.Price.Equal(decimal.RequireFromString("3300")) {
		t.Fatalf("expected price 3300, got %s", job.Price)
	}
	if job.ScheduledDate.String() != "2025-01-27" || job.AssignedTo != "tech-1" {
		t.Fatalf("unexpected schedule: %s by %q", job.ScheduledDate, job.AssignedTo)
	}
	if job.Status != entities.JobStatusScheduled || job.CustomerName != "John Anderson" {
		t.Fatalf("unexpected job: %+v", job)
	}

	if _, err := f.quotes.Approve(ctx, "quote-1"); !errors.Is(err, entities.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition on second approve, got %v", err)
	}

	jobs, err := f.repos.Jobs.List(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	linked := 0
	for _, j := range jobs {
		if j.QuoteID == "quote-1" {
			linked++
		}
	}
	if linked != 1 || len(jobs) != 5 {
		t.Fatalf("expected exactly one linked job out of 5, got %d of %d", linked, len(jobs))
	}

	stored, err := f.quotes.GetByID(ctx, "quote-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.Status != entities.QuoteStatusApproved || stored.JobID != job.ID {
		t.Fatalf("quote not persisted: %+v", stored)
	}
}

func TestWorkflow_JobCompletionDraftsInvoice(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, testNow)

	res, err := f.jobs.Complete(ctx, "job-2", 130)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	inv := res.Invoice
	if inv.Status != entities.InvoiceStatusDraft || inv.JobID != "job-2" || inv.CustomerID != "cust-2" {
		t.Fatalf("unexpected invoice: %+v", inv)
	}
	if len(inv.Items) != 1 || !inv.Total.Equal(decimal.RequireFromString("350")) {
		t.Fatalf("unexpected invoice lines: %+v", inv.Items)
	}
	if inv.DueDate.String() != "2025-02-03" || inv.PaymentMethod != entities.PaymentMethodUnpaid {
		t.Fatalf("unexpected terms: due %s method %s", inv.DueDate, inv.PaymentMethod)
	}

	tech, err := f.repos.Technicians.GetByID(ctx, "tech-2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tech.CompletedJobs != 199 || tech.AvgServiceTime != 28 {
		t.Fatalf("unexpected technician stats: %+v", tech)
	}

	if _, err := f.jobs.Complete(ctx, "job-2", 130); !errors.Is(err, entities.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition on second complete, got %v", err)
	}
	all, err := f.repos.Invoices.List(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 5 {
		t.Fatalf("expected 5 invoices, got %d", len(all))
	}
}

func TestWorkflow_AutopayCustomerInvoice(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, testNow)

	if _, err := f.jobs.Start(ctx, "job-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	res, err := f.jobs.Complete(ctx, "job-1", 55)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Invoice.PaymentMethod != "autopay" {
		t.Fatalf("expected autopay, got %s", res.Invoice.PaymentMethod)
	}
}

func TestInvoices_OverdueIsDerived(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, time.Date(2025, time.February, 10, 12, 0, 0, 0, time.UTC))

	res, err := f.invoices.List(ctx, ListFilter{Status: "overdue"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Items) != 2 || res.Counts["overdue"] != 2 || res.Counts["sent"] != 0 {
		t.Fatalf("unexpected overdue listing: %d items, counts %v", len(res.Items), res.Counts)
	}

	stored, err := f.repos.Invoices.GetByID(ctx, "inv-1002")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.Status != entities.InvoiceStatusSent {
		t.Fatalf("overdue leaked into storage: %s", stored.Status)
	}

	paid, err := f.invoices.RecordPayment(ctx, "inv-1002", PaymentInput{Method: "check", Reference: "1042"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if paid.Status != entities.InvoiceStatusPaid || paid.PaidDate.String() != "2025-02-10" {
		t.Fatalf("unexpected paid invoice: %+v", paid)
	}
	if _, err := f.invoices.Send(ctx, "inv-1002"); !errors.Is(err, entities.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestInvoices_PartialPayments(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, testNow)
	pay := func(amount string) PaymentInput {
		return PaymentInput{Amount: decimal.NewNullDecimal(decimal.RequireFromString(amount)), Method: "cash"}
	}

	inv, err := f.invoices.RecordPayment(ctx, "inv-1002", pay("100"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inv.Status != entities.InvoiceStatusSent || !inv.BalanceDue.Equal(decimal.RequireFromString("140.5")) {
		t.Fatalf("unexpected invoice after partial payment: %+v", inv)
	}
	if _, err := f.invoices.RecordPayment(ctx, "inv-1002", pay("140.51")); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for overpayment, got %v", err)
	}
	if _, err := f.invoices.RecordPayment(ctx, "inv-1002", pay("0")); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for zero amount, got %v", err)
	}

	inv, err = f.invoices.RecordPayment(ctx, "inv-1002", pay("140.50"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inv.Status != entities.InvoiceStatusPaid || !inv.PaidAmount.Equal(inv.Total) || !inv.BalanceDue.IsZero() {
		t.Fatalf("unexpected settled invoice: %+v", inv)
	}
	if inv.PaidDate == nil || inv.PaidDate.String() != "2025-01-20" {
		t.Fatalf("unexpected paid date: %v", inv.PaidDate)
	}
}

func TestInvoices_EditDraftOnly(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, testNow)
	items := []entities.InvoiceItem{{Description: "Weekly Pool Service", Quantity: 4, Rate: decimal.RequireFromString("40")}}

	inv, err := f.invoices.Update(ctx, "inv-1004", InvoiceInput{Items: items, TaxRate: decimal.NewNullDecimal(decimal.RequireFromString("0.05"))})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !inv.Subtotal.Equal(decimal.RequireFromString("160")) || !inv.Tax.Equal(decimal.RequireFromString("8")) {
		t.Fatalf("unexpected totals: subtotal %s tax %s", inv.Subtotal, inv.Tax)
	}
	if !inv.BalanceDue.Equal(decimal.RequireFromString("168")) || inv.DueDate.String() != "2025-02-01" {
		t.Fatalf("unexpected invoice: %+v", inv)
	}

	if _, err := f.invoices.Update(ctx, "inv-1002", InvoiceInput{Items: items}); !errors.Is(err, entities.ErrNotEditable) {
		t.Fatalf("expected ErrNotEditable for a sent invoice, got %v", err)
	}
}

// failingQuoteUpdates lets the first passes Update calls through and fails
// the next one.
type failingQuoteUpdates struct {
	interfaces.IQuoteRepository
	passes int
	failed bool
}

func (r *failingQuoteUpdates) Update(ctx context.Context, q entities.Quote) (entities.Quote, error) {
	if r.passes == 0 && !r.failed {
		r.failed = true
		return entities.Quote{}, errors.New("write timeout")
	}
	r.passes--
	return r.IQuoteRepository.Update(ctx, q)
}

type failingJobUpdates struct {
	interfaces.IJobRepository
	passes int
	failed bool
}

func (r *failingJobUpdates) Update(ctx context.Context, j entities.Job) (entities.Job, error) {
	if r.passes == 0 && !r.failed {
		r.failed = true
		return entities.Job{}, errors.New("write timeout")
	}
	r.passes--
	return r.IJobRepository.Update(ctx, j)
}

func TestWorkflow_ApprovalRetryAfterFailedSave(t *testing.T) {
	for _, passes := range []int{0, 1} {
		ctx := context.Background()
		f := newFixture(t, testNow)
		repo := &failingQuoteUpdates{IQuoteRepository: f.repos.Quotes, passes: passes}
		quotes := NewQuoteUseCase(repo, f.repos.Customers, f.hooks, DefaultBillingPolicy(), f.clock, nil)

		if _, err := quotes.Approve(ctx, "quote-1"); err == nil {
			t.Fatalf("passes=%d: expected the failed save to surface", passes)
		}
		res, err := quotes.Approve(ctx, "quote-1")
		if err != nil {
			t.Fatalf("passes=%d: retry failed: %v", passes, err)
		}
		if res.Quote.JobPending || res.Quote.JobID != res.Job.ID {
			t.Fatalf("passes=%d: quote not linked: %+v", passes, res.Quote)
		}

		jobs, _ := f.repos.Jobs.List(ctx)
		linked := 0
		for _, j := range jobs {
			if j.QuoteID == "quote-1" {
				linked++
			}
		}
		if linked != 1 {
			t.Fatalf("passes=%d: expected one job for quote-1, got %d", passes, linked)
		}
	}
}

func TestWorkflow_CompletionRetryAfterFailedSave(t *testing.T) {
	for _, passes := range []int{0, 1} {
		ctx := context.Background()
		f := newFixture(t, testNow)
		repo := &failingJobUpdates{IJobRepository: f.repos.Jobs, passes: passes}
		jobs := NewJobUseCase(repo, f.repos.Customers, f.repos.Technicians, f.hooks, f.clock, nil)

		if _, err := jobs.Complete(ctx, "job-2", 130); err == nil {
			t.Fatalf("passes=%d: expected the failed save to surface", passes)
		}
		res, err := jobs.Complete(ctx, "job-2", 130)
		if err != nil {
			t.Fatalf("passes=%d: retry failed: %v", passes, err)
		}
		if res.Job.InvoicePending || res.Job.InvoiceID != res.Invoice.ID {
			t.Fatalf("passes=%d: job not linked: %+v", passes, res.Job)
		}

		invoices, _ := f.repos.Invoices.ListByCustomerID(ctx, "cust-2")
		drafted := 0
		for _, inv := range invoices {
			if inv.JobID == "job-2" {
				drafted++
			}
		}
		if drafted != 1 {
			t.Fatalf("passes=%d: expected one invoice for job-2, got %d", passes, drafted)
		}
		tech, _ := f.repos.Technicians.GetByID(ctx, "tech-2")
		if tech.CompletedJobs != 199 {
			t.Fatalf("passes=%d: technician counted %d jobs", passes, tech.CompletedJobs)
		}
	}
}

func TestWorkflow_ConcurrentApprovalsCreateOneJob(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, testNow)

	var wg sync.WaitGroup
	results := make([]QuoteApproval, 8)
	errs := make([]error, len(results))
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = f.quotes.Approve(ctx, "quote-1")
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for i, err := range errs {
		if err != nil {
			if !errors.Is(err, ErrConcurrentUpdate) && !errors.Is(err, entities.ErrInvalidTransition) {
				t.Fatalf("unexpected error: %v", err)
			}
			continue
		}
		succeeded++
		if results[i].Job.ID != "job-for-quote-1" {
			t.Fatalf("unexpected job: %+v", results[i].Job)
		}
	}
	if succeeded == 0 {
		t.Fatalf("expected at least one approval to succeed")
	}

	jobs, _ := f.repos.Jobs.List(ctx)
	linked := 0
	for _, j := range jobs {
		if j.QuoteID == "quote-1" {
			linked++
		}
	}
	if linked != 1 {
		t.Fatalf("expected one job for quote-1, got %d", linked)
	}
}

func TestWorkflow_ConcurrentCompletionsDraftOneInvoice(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, testNow)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = f.jobs.Complete(ctx, "job-2", 130)
		}()
	}
	wg.Wait()

	invoices, _ := f.repos.Invoices.List(ctx)
	drafted := 0
	for _, inv := range invoices {
		if inv.JobID == "job-2" {
			drafted++
		}
	}
	tech, _ := f.repos.Technicians.GetByID(ctx, "tech-2")
	if drafted != 1 || tech.CompletedJobs != 199 {
		t.Fatalf("expected one invoice and one counted job, got %d invoices and %d jobs", drafted, tech.CompletedJobs)
	}
}

func TestCustomers_SearchAndCounts(t *testing.T) {
	f := newFixture(t, testNow)

	res, err := f.customers.List(context.Background(), ListFilter{Query: "austin", Status: "active"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Items) != 4 || res.Counts["paused"] != 1 || res.Counts["all"] != 5 {
		t.Fatalf("unexpected result: %d items, counts %v", len(res.Items), res.Counts)
	}
}

func TestRoutes_EditKeepsPositionsDense(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, testNow)
	id := entities.RouteID(entities.Monday, "tech-1")

	r, err := f.routes.Reorder(ctx, id, []string{"stop-2", "stop-1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Stops[0].ID != "stop-2" || r.Stops[0].Position != 1 || r.Stops[1].Position != 2 {
		t.Fatalf("unexpected order: %+v", r.Stops)
	}

	r, err = f.routes.AddStop(ctx, id, StopInput{CustomerID: "cust-3", EstimatedTime: 25})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(r.Stops) != 3 || r.Stops[2].Position != 3 || r.Stops[2].Address != "9012 Elm Drive" {
		t.Fatalf("unexpected stops: %+v", r.Stops)
	}

	r, err = f.routes.RemoveStop(ctx, id, "stop-2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, s := range r.Stops {
		if s.Position != i+1 {
			t.Fatalf("position gap at %d: %+v", i, r.Stops)
		}
	}

	if _, err := f.routes.AddStop(ctx, id, StopInput{CustomerID: "cust-1"}); !errors.Is(err, entities.ErrDuplicateStop) {
		t.Fatalf("expected ErrDuplicateStop, got %v", err)
	}
	if _, err := f.routes.Reorder(ctx, id, []string{"stop-1"}); !errors.Is(err, entities.ErrInvalidStopOrder) {
		t.Fatalf("expected ErrInvalidStopOrder, got %v", err)
	}
	if _, err := f.routes.Create(ctx, entities.Monday, "tech-1"); !errors.Is(err, ErrRouteAlreadyExists) {
		t.Fatalf("expected ErrRouteAlreadyExists, got %v", err)
	}
}

func TestAlerts_GenerateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, testNow)

	first, err := f.alerts.Generate(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(first) == 0 {
		t.Fatalf("expected generated alerts from sample readings")
	}
	for _, a := range first {
		if a.ID == "" || a.Fingerprint == "" || a.Status != entities.AlertStatusOpen {
			t.Fatalf("unexpected alert: %+v", a)
		}
	}

	if _, err := f.alerts.Resolve(ctx, first[0].ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := f.alerts.Generate(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(second) != 0 {
		t.Fatalf("expected no duplicates, got %d", len(second))
	}

	stats, err := f.alerts.Stats(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.Total != 4+len(first) || stats.Resolved != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestReports_Dashboard(t *testing.T) {
	f := newFixture(t, testNow)

	d, err := f.reports.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Customers.Total != 5 || d.Customers.Active != 4 {
		t.Fatalf("unexpected customers: %+v", d.Customers)
	}
	if d.Jobs.Total != 4 || d.Jobs.Completed != 1 || d.Alerts.Open != 4 || d.Quotes.Pending != 1 {
		t.Fatalf("unexpected dashboard: %+v", d)
	}

	rev, err := f.reports.Revenue(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !rev.Summary.PaidRevenue.Equal(decimal.RequireFromString("175")) {
		t.Fatalf("unexpected paid revenue: %s", rev.Summary.PaidRevenue)
	}
}
