package response

import (
	"encoding/json"
	"testing"
	"time"

	"poolpro/internal/domain/entities"

	"github.com/shopspring/decimal"
)

func TestFromInvoicePayment(t *testing.T) {
	now := time.Now().UTC()
	payload := map[string]interface{}{"a": "b"}
	raw := json.RawMessage(`{"id":123}`)

	p := entities.InvoicePayment{
		ID:                 "pay-1",
		InvoiceID:          "inv-1",
		CustomerID:         "cust-1",
		Amount:             decimal.NewFromInt(140),
		Date:               now,
		Status:             entities.PaymentStatusApproved,
		ProviderPayloadRaw: raw,
		ProviderPayload:    payload,
	}

	res := FromInvoicePayment(p)
	if res.ID != "pay-1" || res.PaymentID != "pay-1" {
		t.Fatalf("unexpected ids: %+v", res)
	}
	if res.InvoiceID != "inv-1" || res.CustomerID != "cust-1" || res.Status != "approved" {
		t.Fatalf("unexpected fields: %+v", res)
	}
	if !res.Amount.Equal(decimal.NewFromInt(140)) {
		t.Fatalf("unexpected amount: %s", res.Amount)
	}
	if !res.PaymentDate.Equal(now) {
		t.Fatalf("unexpected date: %+v", res)
	}
	if res.MPPayloadRaw != string(raw) {
		t.Fatalf("unexpected raw payload: %s", res.MPPayloadRaw)
	}
	if res.MPPayload["a"] != "b" {
		t.Fatalf("unexpected parsed payload: %+v", res.MPPayload)
	}
}

func TestFromInvoicePayments_Empty(t *testing.T) {
	res := FromInvoicePayments(nil)
	if res == nil || len(res) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", res)
	}
}
