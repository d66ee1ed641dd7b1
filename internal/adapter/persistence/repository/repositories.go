package repository

import (
	"context"

	"poolpro/internal/domain/entities"
	"poolpro/internal/usecase/interfaces"
)

type CustomerDynamoRepository struct {
	t *documentTable[entities.Customer]
}

var _ interfaces.ICustomerRepository = (*CustomerDynamoRepository)(nil)

func customerKeys(c entities.Customer) keys {
	return keys{
		ID:        c.ID,
		Status:    string(c.Status),
		CreatedAt: c.CreatedAt,
	}
}

func NewCustomerDynamoRepository(ddb DynamoAPI, tableName string) *CustomerDynamoRepository {
	return &CustomerDynamoRepository{t: newDocumentTable(ddb, tableName, customerKeys)}
}

func (r *CustomerDynamoRepository) Create(ctx context.Context, c entities.Customer) (entities.Customer, error) {
	return r.t.create(ctx, c)
}

func (r *CustomerDynamoRepository) GetByID(ctx context.Context, id string) (entities.Customer, error) {
	return r.t.get(ctx, id)
}

func (r *CustomerDynamoRepository) List(ctx context.Context) ([]entities.Customer, error) {
	return r.t.list(ctx)
}

func (r *CustomerDynamoRepository) Update(ctx context.Context, c entities.Customer) (entities.Customer, error) {
	return r.t.update(ctx, c)
}

type TechnicianDynamoRepository struct {
	t *documentTable[entities.Technician]
}

var _ interfaces.ITechnicianRepository = (*TechnicianDynamoRepository)(nil)

func technicianKeys(t entities.Technician) keys {
	return keys{
		ID:        t.ID,
		Status:    string(t.Status),
		CreatedAt: t.CreatedAt,
	}
}

func NewTechnicianDynamoRepository(ddb DynamoAPI, tableName string) *TechnicianDynamoRepository {
	return &TechnicianDynamoRepository{t: newDocumentTable(ddb, tableName, technicianKeys)}
}

func (r *TechnicianDynamoRepository) Create(ctx context.Context, t entities.Technician) (entities.Technician, error) {
	return r.t.create(ctx, t)
}

func (r *TechnicianDynamoRepository) GetByID(ctx context.Context, id string) (entities.Technician, error) {
	return r.t.get(ctx, id)
}

func (r *TechnicianDynamoRepository) List(ctx context.Context) ([]entities.Technician, error) {
	return r.t.list(ctx)
}

func (r *TechnicianDynamoRepository) Update(ctx context.Context, t entities.Technician) (entities.Technician, error) {
	return r.t.update(ctx, t)
}

type JobDynamoRepository struct{ t *documentTable[entities.Job] }

var _ interfaces.IJobRepository = (*JobDynamoRepository)(nil)

func jobKeys(j entities.Job) keys {
	return keys{
		ID:         j.ID,
		CustomerID: j.CustomerID,
		Status:     string(j.Status),
		CreatedAt:  j.CreatedAt,
	}
}

func NewJobDynamoRepository(ddb DynamoAPI, tableName string) *JobDynamoRepository {
	t := newDocumentTable(ddb, tableName, jobKeys).
		versioned(func(j entities.Job) int { return j.Version }, func(j entities.Job, v int) entities.Job { j.Version = v; return j })
	return &JobDynamoRepository{t: t}
}

func (r *JobDynamoRepository) Create(ctx context.Context, j entities.Job) (entities.Job, error) {
	return r.t.create(ctx, j)
}

func (r *JobDynamoRepository) GetByID(ctx context.Context, id string) (entities.Job, error) {
	return r.t.get(ctx, id)
}

func (r *JobDynamoRepository) List(ctx context.Context) ([]entities.Job, error) {
	return r.t.list(ctx)
}

func (r *JobDynamoRepository) Update(ctx context.Context, j entities.Job) (entities.Job, error) {
	return r.t.update(ctx, j)
}

func (r *JobDynamoRepository) ListByCustomerID(ctx context.Context, customerID string) ([]entities.Job, error) {
	return r.t.listBy(ctx, "customer_id", customerID)
}

type QuoteDynamoRepository struct {
	t *documentTable[entities.Quote]
}

var _ interfaces.IQuoteRepository = (*QuoteDynamoRepository)(nil)

func quoteKeys(q entities.Quote) keys {
	return keys{
		ID:         q.ID,
		CustomerID: q.CustomerID,
		Status:     string(q.Status),
		CreatedAt:  q.CreatedAt,
	}
}

func NewQuoteDynamoRepository(ddb DynamoAPI, tableName string) *QuoteDynamoRepository {
	t := newDocumentTable(ddb, tableName, quoteKeys).
		versioned(func(q entities.Quote) int { return q.Version }, func(q entities.Quote, v int) entities.Quote { q.Version = v; return q })
	return &QuoteDynamoRepository{t: t}
}

func (r *QuoteDynamoRepository) Create(ctx context.Context, q entities.Quote) (entities.Quote, error) {
	return r.t.create(ctx, q)
}

func (r *QuoteDynamoRepository) GetByID(ctx context.Context, id string) (entities.Quote, error) {
	return r.t.get(ctx, id)
}

func (r *QuoteDynamoRepository) List(ctx context.Context) ([]entities.Quote, error) {
	return r.t.list(ctx)
}

func (r *QuoteDynamoRepository) Update(ctx context.Context, q entities.Quote) (entities.Quote, error) {
	return r.t.update(ctx, q)
}

func (r *QuoteDynamoRepository) ListByCustomerID(ctx context.Context, customerID string) ([]entities.Quote, error) {
	return r.t.listBy(ctx, "customer_id", customerID)
}

type InvoiceDynamoRepository struct {
	t *documentTable[entities.Invoice]
}

var _ interfaces.IInvoiceRepository = (*InvoiceDynamoRepository)(nil)

func invoiceKeys(inv entities.Invoice) keys {
	return keys{
		ID:         inv.ID,
		CustomerID: inv.CustomerID,
		Status:     string(inv.Status),
		CreatedAt:  inv.CreatedAt,
	}
}

func NewInvoiceDynamoRepository(ddb DynamoAPI, tableName string) *InvoiceDynamoRepository {
	t := newDocumentTable(ddb, tableName, invoiceKeys).
		versioned(func(inv entities.Invoice) int { return inv.Version }, func(inv entities.Invoice, v int) entities.Invoice { inv.Version = v; return inv })
	return &InvoiceDynamoRepository{t: t}
}

func (r *InvoiceDynamoRepository) Create(ctx context.Context, inv entities.Invoice) (entities.Invoice, error) {
	return r.t.create(ctx, inv)
}

func (r *InvoiceDynamoRepository) GetByID(ctx context.Context, id string) (entities.Invoice, error) {
	return r.t.get(ctx, id)
}

func (r *InvoiceDynamoRepository) List(ctx context.Context) ([]entities.Invoice, error) {
	return r.t.list(ctx)
}

func (r *InvoiceDynamoRepository) Update(ctx context.Context, inv entities.Invoice) (entities.Invoice, error) {
	return r.t.update(ctx, inv)
}

func (r *InvoiceDynamoRepository) ListByCustomerID(ctx context.Context, customerID string) ([]entities.Invoice, error) {
	return r.t.listBy(ctx, "customer_id", customerID)
}

type RouteDynamoRepository struct {
	t *documentTable[entities.Route]
}

var _ interfaces.IRouteRepository = (*RouteDynamoRepository)(nil)

func routeKeys(r entities.Route) keys {
	return keys{
		ID:        r.ID,
		CreatedAt: r.CreatedAt,
	}
}

func NewRouteDynamoRepository(ddb DynamoAPI, tableName string) *RouteDynamoRepository {
	return &RouteDynamoRepository{t: newDocumentTable(ddb, tableName, routeKeys)}
}

func (r *RouteDynamoRepository) Create(ctx context.Context, route entities.Route) (entities.Route, error) {
	return r.t.create(ctx, route)
}

func (r *RouteDynamoRepository) GetByID(ctx context.Context, id string) (entities.Route, error) {
	return r.t.get(ctx, id)
}

func (r *RouteDynamoRepository) List(ctx context.Context) ([]entities.Route, error) {
	return r.t.list(ctx)
}

func (r *RouteDynamoRepository) Update(ctx context.Context, route entities.Route) (entities.Route, error) {
	return r.t.update(ctx, route)
}

type AlertDynamoRepository struct {
	t *documentTable[entities.Alert]
}

var _ interfaces.IAlertRepository = (*AlertDynamoRepository)(nil)

func alertKeys(a entities.Alert) keys {
	return keys{
		ID:         a.ID,
		CustomerID: a.CustomerID,
		Status:     string(a.Status),
		CreatedAt:  a.CreatedAt,
	}
}

func NewAlertDynamoRepository(ddb DynamoAPI, tableName string) *AlertDynamoRepository {
	return &AlertDynamoRepository{t: newDocumentTable(ddb, tableName, alertKeys)}
}

func (r *AlertDynamoRepository) Create(ctx context.Context, a entities.Alert) (entities.Alert, error) {
	return r.t.create(ctx, a)
}

func (r *AlertDynamoRepository) GetByID(ctx context.Context, id string) (entities.Alert, error) {
	return r.t.get(ctx, id)
}

func (r *AlertDynamoRepository) List(ctx context.Context) ([]entities.Alert, error) {
	return r.t.list(ctx)
}

func (r *AlertDynamoRepository) Update(ctx context.Context, a entities.Alert) (entities.Alert, error) {
	return r.t.update(ctx, a)
}

type InvoicePaymentDynamoRepository struct {
	t *documentTable[entities.InvoicePayment]
}

var _ interfaces.IInvoicePaymentRepository = (*InvoicePaymentDynamoRepository)(nil)

func invoicePaymentKeys(p entities.InvoicePayment) keys {
	return keys{
		ID:         p.ID,
		CustomerID: p.CustomerID,
		InvoiceID:  p.InvoiceID,
		Status:     string(p.Status),
		CreatedAt:  p.Date,
	}
}

func NewInvoicePaymentDynamoRepository(ddb DynamoAPI, tableName string) *InvoicePaymentDynamoRepository {
	return &InvoicePaymentDynamoRepository{t: newDocumentTable(ddb, tableName, invoicePaymentKeys)}
}

func (r *InvoicePaymentDynamoRepository) Create(ctx context.Context, p entities.InvoicePayment) (entities.InvoicePayment, error) {
	return r.t.create(ctx, p)
}

func (r *InvoicePaymentDynamoRepository) GetByID(ctx context.Context, id string) (entities.InvoicePayment, error) {
	return r.t.get(ctx, id)
}

func (r *InvoicePaymentDynamoRepository) ListByInvoiceID(ctx context.Context, invoiceID string) ([]entities.InvoicePayment, error) {
	return r.t.listBy(ctx, "invoice_id", invoiceID)
}
