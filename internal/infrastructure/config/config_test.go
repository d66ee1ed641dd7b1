package config

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, StorageMemory, cfg.StorageBackend)
	assert.True(t, cfg.SeedData)
	assert.Equal(t, 14, cfg.Billing.NetDays)
	assert.True(t, cfg.Billing.TaxRate.IsZero())
	assert.Equal(t, "poolpro_", cfg.DynamoDB.TablePrefix)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "dynamodb")
	t.Setenv("INVOICE_TAX_RATE", "0.0825")
	t.Setenv("INVOICE_NET_DAYS", "30")
	t.Setenv("MERCADOPAGO_ACCESS_TOKEN", "TEST-123")
	t.Setenv("PAYMENT_GATEWAY_MOCK", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StorageDynamoDB, cfg.StorageBackend)
	assert.True(t, cfg.Billing.TaxRate.Equal(decimal.RequireFromString("0.0825")))
	assert.Equal(t, 30, cfg.Billing.NetDays)
	assert.True(t, cfg.Payments.Sandbox())
	assert.True(t, cfg.Payments.Mock)
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string][2]string{
		"unknown backend": {"STORAGE_BACKEND", "postgres"},
		"tax rate of one": {"INVOICE_TAX_RATE", "1"},
		"negative days":   {"INVOICE_NET_DAYS", "-1"},
		"bad number":      {"QUOTE_VALIDITY_DAYS", "two weeks"},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv(kv[0], kv[1])
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
