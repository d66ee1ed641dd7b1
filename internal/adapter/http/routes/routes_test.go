package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"poolpro/internal/adapter/persistence/memory"
	"poolpro/internal/domain/alerting"
	"poolpro/internal/domain/clock"
	"poolpro/internal/domain/entities"
	"poolpro/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 1, 20, 9, 0, 0, 0, time.UTC)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx := context.Background()
	clk := clock.Fixed(testNow)
	repos := memory.New()
	require.NoError(t, memory.Seed(ctx, repos, testNow))

	policy := usecase.DefaultBillingPolicy()
	hooks := usecase.NewWorkflowHooks(repos.Customers, repos.Technicians, repos.Jobs, repos.Invoices, policy, clk, nil)
	invoices := usecase.NewInvoiceUseCase(repos.Invoices, repos.Customers, policy, clk, nil)
	return NewRouter(UseCases{
		Customers:   usecase.NewCustomerUseCase(repos.Customers, clk, nil),
		Technicians: usecase.NewTechnicianUseCase(repos.Technicians, clk, nil),
		Jobs:        usecase.NewJobUseCase(repos.Jobs, repos.Customers, repos.Technicians, hooks, clk, nil),
		Quotes:      usecase.NewQuoteUseCase(repos.Quotes, repos.Customers, hooks, policy, clk, nil),
		Invoices:    invoices,
		Payments:    usecase.NewInvoicePaymentUseCase(repos.Payments, repos.Invoices, nil, usecase.PaymentSettings{Mock: true}, clk, nil),
		Routes:      usecase.NewRouteUseCase(repos.Routes, repos.Customers, repos.Technicians, clk, nil),
		Alerts:      usecase.NewAlertUseCase(repos.Alerts, repos.Customers, repos.Jobs, repos.Technicians, alerting.Default(), clk, nil),
		Reports:     usecase.NewReportUseCase(repos.Customers, repos.Technicians, repos.Jobs, repos.Quotes, repos.Invoices, repos.Alerts, clk),
	}, nil)
}

func do(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var buf *bytes.Buffer
	if body != "" {
		buf = bytes.NewBufferString(body)
	} else {
		buf = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRouter_PingAndRequestID(t *testing.T) {
	r := newTestRouter(t)
	w := do(t, r, http.MethodGet, "/api/ping", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRouter_CustomersBareArray(t *testing.T) {
	r := newTestRouter(t)
	w := do(t, r, http.MethodGet, "/api/customers", "")
	require.Equal(t, http.StatusOK, w.Code)

	var customers []entities.Customer
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &customers))
	assert.Len(t, customers, 5)
}

func TestRouter_CustomerSearchCounts(t *testing.T) {
	r := newTestRouter(t)
	w := do(t, r, http.MethodGet, "/api/customers?q=austin&status=active&counts=true", "")
	require.Equal(t, http.StatusOK, w.Code)

	var res usecase.ListResult[entities.Customer]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Len(t, res.Items, 4)
	assert.Equal(t, 1, res.Counts["paused"])
}

func TestRouter_RoutePositionIsUniquePerDay(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodPost, "/api/customers", `{"name":"Ana Lopez","serviceDay":"Monday","routePosition":1}`)
	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "cust-1")

	w = do(t, r, http.MethodPost, "/api/customers", `{"name":"Ana Lopez","serviceDay":"Monday","routePosition":3}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = do(t, r, http.MethodPut, "/api/customers/cust-3", `{"name":"Michael Torres","serviceDay":"Monday","routePosition":2}`)
	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

	w = do(t, r, http.MethodPut, "/api/customers/cust-3", `{"name":"Michael Torres","serviceDay":"Tuesday","routePosition":1}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestRouter_CustomerUpdateKeepsStatus(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodPut, "/api/customers/cust-5", `{"name":"David Chen","serviceDay":"Thursday","routePosition":1}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var c entities.Customer
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &c))
	assert.Equal(t, entities.CustomerStatusPaused, c.Status)
}

func TestRouter_PartialPayments(t *testing.T) {
	r := newTestRouter(t)
	pay := func(body string) (int, entities.Invoice) {
		w := do(t, r, http.MethodPost, "/api/invoices/inv-1003/pay", body)
		var res struct {
			Invoice entities.Invoice `json:"invoice"`
		}
		_ = json.Unmarshal(w.Body.Bytes(), &res)
		return w.Code, res.Invoice
	}

	code, inv := pay(`{"method":"cash","amount":"40"}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, entities.InvoiceStatusSent, inv.Status)
	assert.Equal(t, "100", inv.BalanceDue.String())

	code, _ = pay(`{"method":"cash","amount":"100.01"}`)
	require.Equal(t, http.StatusBadRequest, code)

	code, inv = pay(`{"method":"check","reference":"2211"}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, entities.InvoiceStatusPaid, inv.Status)
	assert.Equal(t, "140", inv.PaidAmount.String())
}

func TestRouter_EditsFollowStatus(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodPut, "/api/quotes/quote-2", `{"customerId":"cust-2","title":"Weekly","items":[{"name":"Service","quantity":1,"price":150}]}`)
	assert.Equal(t, http.StatusConflict, w.Code, w.Body.String())
	w = do(t, r, http.MethodPut, "/api/quotes/quote-1", `{"customerId":"cust-1","title":"Heater Replacement","items":[{"name":"Heater","quantity":1,"price":2600}]}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var q entities.Quote
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &q))
	assert.Equal(t, "2600", q.Total.String())

	w = do(t, r, http.MethodPut, "/api/jobs/job-2", `{"customerId":"cust-2","title":"Pump","scheduledDate":"2025-01-21"}`)
	assert.Equal(t, http.StatusConflict, w.Code, w.Body.String())
	w = do(t, r, http.MethodPut, "/api/jobs/job-1", `{"customerId":"cust-1","title":"Filter Clean","scheduledDate":"2025-01-21"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(t, r, http.MethodPut, "/api/invoices/inv-1003", `{"customerId":"cust-3","items":[{"description":"Service","quantity":1,"rate":10}]}`)
	assert.Equal(t, http.StatusConflict, w.Code, w.Body.String())
	w = do(t, r, http.MethodPut, "/api/invoices/inv-1004", `{"customerId":"cust-4","items":[{"description":"Pool Light Installation","quantity":1,"rate":400}]}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var inv entities.Invoice
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &inv))
	assert.Equal(t, "400", inv.Subtotal.String())
	assert.Equal(t, entities.InvoiceStatusDraft, inv.Status)
}

func TestRouter_QuoteApprovalSchedulesJob(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodPost, "/api/quotes", `{"customerId":"cust-1","title":"Heater install","items":[{"name":"Heater","quantity":1,"price":2800}]}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var quote entities.Quote
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &quote))

	w = do(t, r, http.MethodPost, "/api/quotes/"+quote.ID+"/approve", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var approval usecase.QuoteApproval
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &approval))
	assert.Equal(t, quote.ID, approval.Job.QuoteID)
	assert.Equal(t, entities.JobStatusScheduled, approval.Job.Status)

	w = do(t, r, http.MethodPost, "/api/quotes/"+quote.ID+"/approve", "")
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRouter_ValidationDetails(t *testing.T) {
	r := newTestRouter(t)
	w := do(t, r, http.MethodPost, "/api/invoices", `{"customerId":"cust-1","items":[{"description":"Service","quantity":1,"rate":-5}]}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"field":"items[0].rate"`)
	assert.Contains(t, w.Body.String(), `"rule":"dgte0"`)
}

func TestRouter_OverdueListing(t *testing.T) {
	r := newTestRouter(t)
	w := do(t, r, http.MethodGet, "/api/invoices?status=all", "")
	require.Equal(t, http.StatusOK, w.Code)

	var res usecase.ListResult[entities.Invoice]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.NotEmpty(t, res.Items)
	assert.Contains(t, res.Counts, string(entities.InvoiceStatusOverdue))
}

func TestRouter_Reports(t *testing.T) {
	r := newTestRouter(t)
	for _, path := range []string{
		"/api/reports/revenue",
		"/api/reports/jobs-performance",
		"/api/reports/customer-stats",
		"/api/reports/technician-performance",
		"/api/reports/financial-summary",
		"/api/reports/dashboard",
		"/api/customers/stats",
		"/api/alerts/stats",
	} {
		w := do(t, r, http.MethodGet, path, "")
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}
