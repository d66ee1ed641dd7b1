package payments

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
)

func TestNewMercadoPagoGateway_MissingToken(t *testing.T) {
	_, err := NewMercadoPagoGateway("", nil)
	if !errors.Is(err, ErrMissingMercadoPagoAccessToken) {
		t.Fatalf("expected ErrMissingMercadoPagoAccessToken, got %v", err)
	}
}

func TestMercadoPagoGateway_NotConfigured(t *testing.T) {
	var g *MercadoPagoGateway
	_, _, _, err := g.CreatePayment(context.Background(), json.RawMessage(`{}`))
	if !errors.Is(err, ErrMercadoPagoGatewayNotConfigured) {
		t.Fatalf("expected ErrMercadoPagoGatewayNotConfigured, got %v", err)
	}
}

func TestMercadoPagoGateway_InvalidPayload(t *testing.T) {
	g, err := NewMercadoPagoGateway("TEST-token", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, _, _, err := g.CreatePayment(context.Background(), json.RawMessage(`{`)); err == nil {
		t.Fatalf("expected unmarshal error")
	}
}
