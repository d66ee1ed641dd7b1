package memory

import (
	"context"

	"poolpro/internal/domain/entities"
	"poolpro/internal/usecase/interfaces"
)

type CustomerRepository struct{ s *store[entities.Customer] }

var _ interfaces.ICustomerRepository = (*CustomerRepository)(nil)

func NewCustomerRepository() *CustomerRepository {
	return &CustomerRepository{s: newStore(func(c entities.Customer) string { return c.ID }, cloneCustomer)}
}

func (r *CustomerRepository) Create(_ context.Context, c entities.Customer) (entities.Customer, error) {
	return r.s.create(c)
}

func (r *CustomerRepository) GetByID(_ context.Context, id string) (entities.Customer, error) {
	return r.s.get(id), nil
}

func (r *CustomerRepository) List(_ context.Context) ([]entities.Customer, error) {
	return r.s.list(nil), nil
}

func (r *CustomerRepository) Update(_ context.Context, c entities.Customer) (entities.Customer, error) {
	return r.s.update(c)
}

type TechnicianRepository struct{ s *store[entities.Technician] }

var _ interfaces.ITechnicianRepository = (*TechnicianRepository)(nil)

func NewTechnicianRepository() *TechnicianRepository {
	return &TechnicianRepository{s: newStore(func(t entities.Technician) string { return t.ID }, cloneTechnician)}
}

func (r *TechnicianRepository) Create(_ context.Context, t entities.Technician) (entities.Technician, error) {
	return r.s.create(t)
}

func (r *TechnicianRepository) GetByID(_ context.Context, id string) (entities.Technician, error) {
	return r.s.get(id), nil
}

func (r *TechnicianRepository) List(_ context.Context) ([]entities.Technician, error) {
	return r.s.list(nil), nil
}

func (r *TechnicianRepository) Update(_ context.Context, t entities.Technician) (entities.Technician, error) {
	return r.s.update(t)
}

type JobRepository struct{ s *store[entities.Job] }

var _ interfaces.IJobRepository = (*JobRepository)(nil)

func NewJobRepository() *JobRepository {
	s := newStore(func(j entities.Job) string { return j.ID }, cloneJob).
		versioned(func(j entities.Job) int { return j.Version }, func(j entities.Job, v int) entities.Job { j.Version = v; return j })
	return &JobRepository{s: s}
}

func (r *JobRepository) Create(_ context.Context, j entities.Job) (entities.Job, error) {
	return r.s.create(j)
}

func (r *JobRepository) GetByID(_ context.Context, id string) (entities.Job, error) {
	return r.s.get(id), nil
}

func (r *JobRepository) List(_ context.Context) ([]entities.Job, error) {
	return r.s.list(nil), nil
}

func (r *JobRepository) ListByCustomerID(_ context.Context, customerID string) ([]entities.Job, error) {
	return r.s.list(func(j entities.Job) bool { return j.CustomerID == customerID }), nil
}

func (r *JobRepository) Update(_ context.Context, j entities.Job) (entities.Job, error) {
	return r.s.update(j)
}

type QuoteRepository struct{ s *store[entities.Quote] }

var _ interfaces.IQuoteRepository = (*QuoteRepository)(nil)

func NewQuoteRepository() *QuoteRepository {
	s := newStore(func(q entities.Quote) string { return q.ID }, cloneQuote).
		versioned(func(q entities.Quote) int { return q.Version }, func(q entities.Quote, v int) entities.Quote { q.Version = v; return q })
	return &QuoteRepository{s: s}
}

func (r *QuoteRepository) Create(_ context.Context, q entities.Quote) (entities.Quote, error) {
	return r.s.create(q)
}

func (r *QuoteRepository) GetByID(_ context.Context, id string) (entities.Quote, error) {
	return r.s.get(id), nil
}

func (r *QuoteRepository) List(_ context.Context) ([]entities.Quote, error) {
	return r.s.list(nil), nil
}

func (r *QuoteRepository) ListByCustomerID(_ context.Context, customerID string) ([]entities.Quote, error) {
	return r.s.list(func(q entities.Quote) bool { return q.CustomerID == customerID }), nil
}

func (r *QuoteRepository) Update(_ context.Context, q entities.Quote) (entities.Quote, error) {
	return r.s.update(q)
}

type InvoiceRepository struct{ s *store[entities.Invoice] }

var _ interfaces.IInvoiceRepository = (*InvoiceRepository)(nil)

func NewInvoiceRepository() *InvoiceRepository {
	s := newStore(func(inv entities.Invoice) string { return inv.ID }, cloneInvoice).
		versioned(func(inv entities.Invoice) int { return inv.Version }, func(inv entities.Invoice, v int) entities.Invoice { inv.Version = v; return inv })
	return &InvoiceRepository{s: s}
}

func (r *InvoiceRepository) Create(_ context.Context, inv entities.Invoice) (entities.Invoice, error) {
	return r.s.create(inv)
}

func (r *InvoiceRepository) GetByID(_ context.Context, id string) (entities.Invoice, error) {
	return r.s.get(id), nil
}

func (r *InvoiceRepository) List(_ context.Context) ([]entities.Invoice, error) {
	return r.s.list(nil), nil
}

func (r *InvoiceRepository) ListByCustomerID(_ context.Context, customerID string) ([]entities.Invoice, error) {
	return r.s.list(func(inv entities.Invoice) bool { return inv.CustomerID == customerID }), nil
}

func (r *InvoiceRepository) Update(_ context.Context, inv entities.Invoice) (entities.Invoice, error) {
	return r.s.update(inv)
}

type InvoicePaymentRepository struct {
	s *store[entities.InvoicePayment]
}

var _ interfaces.IInvoicePaymentRepository = (*InvoicePaymentRepository)(nil)

func NewInvoicePaymentRepository() *InvoicePaymentRepository {
	return &InvoicePaymentRepository{s: newStore(func(p entities.InvoicePayment) string { return p.ID }, clonePayment)}
}

func (r *InvoicePaymentRepository) Create(_ context.Context, p entities.InvoicePayment) (entities.InvoicePayment, error) {
	return r.s.create(p)
}

func (r *InvoicePaymentRepository) GetByID(_ context.Context, id string) (entities.InvoicePayment, error) {
	return r.s.get(id), nil
}

func (r *InvoicePaymentRepository) ListByInvoiceID(_ context.Context, invoiceID string) ([]entities.InvoicePayment, error) {
	return r.s.list(func(p entities.InvoicePayment) bool { return p.InvoiceID == invoiceID }), nil
}

type RouteRepository struct{ s *store[entities.Route] }

var _ interfaces.IRouteRepository = (*RouteRepository)(nil)

func NewRouteRepository() *RouteRepository {
	return &RouteRepository{s: newStore(func(r entities.Route) string { return r.ID }, cloneRoute)}
}

func (r *RouteRepository) Create(_ context.Context, rt entities.Route) (entities.Route, error) {
	return r.s.create(rt)
}

func (r *RouteRepository) GetByID(_ context.Context, id string) (entities.Route, error) {
	return r.s.get(id), nil
}

func (r *RouteRepository) List(_ context.Context) ([]entities.Route, error) {
	return r.s.list(nil), nil
}

func (r *RouteRepository) Update(_ context.Context, rt entities.Route) (entities.Route, error) {
	return r.s.update(rt)
}

type AlertRepository struct{ s *store[entities.Alert] }

var _ interfaces.IAlertRepository = (*AlertRepository)(nil)

func NewAlertRepository() *AlertRepository {
	return &AlertRepository{s: newStore(func(a entities.Alert) string { return a.ID }, cloneAlert)}
}

func (r *AlertRepository) Create(_ context.Context, a entities.Alert) (entities.Alert, error) {
	return r.s.create(a)
}

func (r *AlertRepository) GetByID(_ context.Context, id string) (entities.Alert, error) {
	return r.s.get(id), nil
}

func (r *AlertRepository) List(_ context.Context) ([]entities.Alert, error) {
	return r.s.list(nil), nil
}

func (r *AlertRepository) Update(_ context.Context, a entities.Alert) (entities.Alert, error) {
	return r.s.update(a)
}

// Repositories bundles one repository per aggregate.
type Repositories struct {
	Customers   *CustomerRepository
	Technicians *TechnicianRepository
	Jobs        *JobRepository
	Quotes      *QuoteRepository
	Invoices    *InvoiceRepository
	Payments    *InvoicePaymentRepository
	Routes      *RouteRepository
	Alerts      *AlertRepository
}

func New() *Repositories {
	return &Repositories{
		Customers:   NewCustomerRepository(),
		Technicians: NewTechnicianRepository(),
		Jobs:        NewJobRepository(),
		Quotes:      NewQuoteRepository(),
		Invoices:    NewInvoiceRepository(),
		Payments:    NewInvoicePaymentRepository(),
		Routes:      NewRouteRepository(),
		Alerts:      NewAlertRepository(),
	}
}
