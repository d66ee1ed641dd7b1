package request

import (
	"encoding/json"
	"testing"

	"poolpro/internal/domain/entities"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newValidator() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	RegisterValidations(v)
	return v
}

func TestQuoteRequest_Validation(t *testing.T) {
	v := newValidator()

	t.Run("negative price reports the item field", func(t *testing.T) {
		req := QuoteRequest{
			CustomerID: "cust-1",
			Title:      "Heater",
			Items:      []QuoteItemRequest{{Name: "Heater", Quantity: 1, Price: decimal.NewFromInt(-5)}},
		}
		errs := FieldErrors(v.Struct(req))
		require.Len(t, errs, 1)
		assert.Equal(t, FieldError{Field: "items[0].price", Rule: "dgte0"}, errs[0])
	})

	t.Run("items are required", func(t *testing.T) {
		errs := FieldErrors(v.Struct(QuoteRequest{CustomerID: "cust-1", Title: "Heater"}))
		require.Len(t, errs, 1)
		assert.Equal(t, "items", errs[0].Field)
		assert.Equal(t, "required", errs[0].Rule)
	})

	t.Run("valid request maps to input", func(t *testing.T) {
		expiry := entities.MustDate("2025-03-01")
		req := QuoteRequest{
			CustomerID: " cust-1 ",
			Title:      "Heater",
			Items:      []QuoteItemRequest{{Name: "Heater", Quantity: 2, Price: decimal.NewFromInt(1500)}},
			ExpiryDate: &expiry,
		}
		require.NoError(t, v.Struct(req))
		in := req.ToInput()
		assert.Equal(t, "cust-1", in.CustomerID)
		require.NotNil(t, in.ExpiryDate)
		assert.True(t, in.ExpiryDate.Equal(expiry))
		assert.True(t, in.Items[0].Amount().Equal(decimal.NewFromInt(3000)))
	})
}

func TestInvoiceRequest_TaxRate(t *testing.T) {
	v := newValidator()
	rate := decimal.RequireFromString("1.5")
	req := InvoiceRequest{
		CustomerID: "cust-1",
		Items:      []InvoiceItemRequest{{Description: "Service", Quantity: 1, Rate: decimal.NewFromInt(100)}},
		TaxRate:    &rate,
	}
	errs := FieldErrors(v.Struct(req))
	require.Len(t, errs, 1)
	assert.Equal(t, FieldError{Field: "taxRate", Rule: "rate"}, errs[0])

	ok := decimal.RequireFromString("0.08")
	req.TaxRate = &ok
	require.NoError(t, v.Struct(req))
	in := req.ToInput()
	assert.True(t, in.TaxRate.Valid)
	assert.True(t, in.Items[0].Amount.Equal(decimal.NewFromInt(100)))
}

func TestReadingRequest(t *testing.T) {
	v := newValidator()
	errs := FieldErrors(v.Struct(ReadingRequest{PH: 15}))
	require.Len(t, errs, 1)
	assert.Equal(t, FieldError{Field: "ph", Rule: "lte"}, errs[0])

	day := entities.MustDate("2025-01-20")
	r := ReadingRequest{Date: day, FC: 2.5, PH: 7.4, TA: 90}.ToReading()
	assert.True(t, r.Date.Equal(day))
	assert.Equal(t, 90, r.TA)
}

func TestFieldErrors_TypeMismatch(t *testing.T) {
	var req CompleteJobRequest
	err := json.Unmarshal([]byte(`{"actualTime":"abc"}`), &req)
	require.Error(t, err)
	assert.Equal(t, []FieldError{{Field: "actualTime", Rule: "type"}}, FieldErrors(err))

	assert.Equal(t, []FieldError{{Field: "body", Rule: "json"}}, FieldErrors(json.Unmarshal([]byte(`{`), &req)))
}

func TestPayInvoiceRequest_Manual(t *testing.T) {
	assert.True(t, PayInvoiceRequest{Method: "check"}.Manual())
	assert.False(t, PayInvoiceRequest{Method: "  "}.Manual())
}
