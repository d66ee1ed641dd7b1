package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	request "poolpro/internal/adapter/http/dto/request"
	"poolpro/internal/adapter/http/handlers/mocks"
	"poolpro/internal/domain/entities"
	"poolpro/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/mock/gomock"
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		request.RegisterValidations(v)
	}
}

func newCustomerRouter(t *testing.T) (*gin.Engine, *mocks.MockICustomerUseCase) {
	t.Helper()
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockICustomerUseCase(ctrl)
	h := NewCustomerHandler(uc)

	r := gin.New()
	r.GET("/api/customers", h.ListCustomers)
	r.POST("/api/customers", h.CreateCustomer)
	r.GET("/api/customers/:id", h.GetCustomer)
	r.POST("/api/customers/:id/pools/:pool_id/readings", h.AddReading)
	r.GET("/api/customers/:id/pools/:pool_id/readings", h.ListReadings)
	return r, uc
}

func TestCustomerHandler_ListCustomers(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("default returns the bare array", func(t *testing.T) {
		r, uc := newCustomerRouter(t)
		uc.EXPECT().List(gomock.Any(), usecase.ListFilter{}).
			Return(usecase.ListResult[entities.Customer]{Items: []entities.Customer{{ID: "cust-1", Name: "John Anderson"}}, Counts: map[string]int{"all": 1}}, nil)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/customers", nil))

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body []map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("expected array body: %v (%s)", err, w.Body.String())
		}
		if len(body) != 1 || body[0]["name"] != "John Anderson" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("no customers is an empty array", func(t *testing.T) {
		r, uc := newCustomerRouter(t)
		uc.EXPECT().List(gomock.Any(), gomock.Any()).Return(usecase.ListResult[entities.Customer]{}, nil)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/customers", nil))

		if w.Body.String() != "[]" {
			t.Fatalf("expected [], got %s", w.Body.String())
		}
	})

	t.Run("counts wraps items with tab counts", func(t *testing.T) {
		r, uc := newCustomerRouter(t)
		uc.EXPECT().List(gomock.Any(), usecase.ListFilter{Status: "active"}).
			Return(usecase.ListResult[entities.Customer]{Items: []entities.Customer{{ID: "cust-1"}}, Counts: map[string]int{"all": 3, "active": 1}}, nil)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/customers?status=active&counts=true", nil))

		var body struct {
			Items  []map[string]any `json:"items"`
			Counts map[string]int   `json:"counts"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("expected object body: %v (%s)", err, w.Body.String())
		}
		if len(body.Items) != 1 || body.Counts["all"] != 3 {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("filters reach the use case", func(t *testing.T) {
		r, uc := newCustomerRouter(t)
		uc.EXPECT().List(gomock.Any(), usecase.ListFilter{Query: "austin", Status: "paused"}).
			Return(usecase.ListResult[entities.Customer]{Items: []entities.Customer{}, Counts: map[string]int{"all": 0}}, nil)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/customers?q=austin&status=paused", nil))

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("bad date filter", func(t *testing.T) {
		r, _ := newCustomerRouter(t)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/customers?date=tomorrow", nil))

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})
}

func TestCustomerHandler_CreateCustomer(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("validation details", func(t *testing.T) {
		r, _ := newCustomerRouter(t)

		req := httptest.NewRequest(http.MethodPost, "/api/customers", bytes.NewBufferString(`{"name":"Pat","email":"not-an-email","routePosition":-1}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		var body struct {
			Error struct {
				Code    string               `json:"code"`
				Details []request.FieldError `json:"details"`
			} `json:"error"`
		}
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body.Error.Code != "INVALID_REQUEST" || len(body.Error.Details) != 2 {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
		if body.Error.Details[0] != (request.FieldError{Field: "email", Rule: "email"}) {
			t.Fatalf("unexpected first detail: %+v", body.Error.Details[0])
		}
	})

	t.Run("malformed balance", func(t *testing.T) {
		r, _ := newCustomerRouter(t)

		req := httptest.NewRequest(http.MethodPost, "/api/customers", bytes.NewBufferString(`{"name":"Pat","accountBalance":"abc"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("use case validation message", func(t *testing.T) {
		r, uc := newCustomerRouter(t)
		uc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.Customer{}, usecase.ErrInvalidInput)

		req := httptest.NewRequest(http.MethodPost, "/api/customers", bytes.NewBufferString(`{"name":"Pat"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("created", func(t *testing.T) {
		r, uc := newCustomerRouter(t)
		uc.EXPECT().Create(gomock.Any(), usecase.CustomerInput{Name: "Pat Lee", ServiceDay: entities.Tuesday, Autopay: true}).
			Return(entities.Customer{ID: "cust-9", Name: "Pat Lee"}, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/customers", bytes.NewBufferString(`{"name":" Pat Lee ","serviceDay":"Tuesday","autopay":true}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d (%s)", w.Code, w.Body.String())
		}
	})
}

func TestCustomerHandler_Readings(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("unknown pool", func(t *testing.T) {
		r, uc := newCustomerRouter(t)
		uc.EXPECT().ListReadings(gomock.Any(), "cust-1", "pool-9").Return(nil, entities.ErrPoolNotFound)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/customers/cust-1/pools/pool-9/readings", nil))

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("out of range ph never reaches the use case", func(t *testing.T) {
		r, _ := newCustomerRouter(t)

		req := httptest.NewRequest(http.MethodPost, "/api/customers/cust-1/pools/pool-1/readings", bytes.NewBufferString(`{"fc":2,"ph":19}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("recorded", func(t *testing.T) {
		r, uc := newCustomerRouter(t)
		uc.EXPECT().AddReading(gomock.Any(), "cust-1", "pool-1", entities.ChemReading{Date: entities.MustDate("2025-01-20"), FC: 2, PH: 7.4, TA: 90}).
			Return(entities.Pool{ID: "pool-1"}, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/customers/cust-1/pools/pool-1/readings", bytes.NewBufferString(`{"date":"2025-01-20","fc":2,"ph":7.4,"ta":90}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d (%s)", w.Code, w.Body.String())
		}
	})
}

func TestCustomerHandler_GetCustomer_NotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r, uc := newCustomerRouter(t)
	uc.EXPECT().GetByID(gomock.Any(), "cust-404").Return(entities.Customer{}, usecase.ErrCustomerNotFound)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/customers/cust-404", nil))

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}
