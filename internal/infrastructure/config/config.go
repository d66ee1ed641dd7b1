// Package config reads the service settings from the environment.
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/shopspring/decimal"
)

const (
	StorageMemory   = "memory"
	StorageDynamoDB = "dynamodb"
)

type Config struct {
	Port           string `env:"PORT" envDefault:"8080"`
	StorageBackend string `env:"STORAGE_BACKEND" envDefault:"memory"`
	SeedData       bool   `env:"SEED_DATA" envDefault:"true"`

	DynamoDB DynamoDBConfig
	Billing  BillingConfig
	Payments PaymentsConfig
	Log      LogConfig
}

type DynamoDBConfig struct {
	Region          string `env:"AWS_REGION" envDefault:"us-east-1"`
	AccessKeyID     string `env:"AWS_ACCESS_KEY_ID" envDefault:"local"`
	SecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY" envDefault:"local"`
	// Endpoint points the client at DynamoDB Local, e.g. http://dynamodb:8000.
	Endpoint    string `env:"DYNAMODB_ENDPOINT"`
	TablePrefix string `env:"DYNAMODB_TABLE_PREFIX" envDefault:"poolpro_"`
}

type BillingConfig struct {
	NetDays           int             `env:"INVOICE_NET_DAYS" envDefault:"14"`
	TaxRate           decimal.Decimal `env:"INVOICE_TAX_RATE" envDefault:"0"`
	QuoteValidityDays int             `env:"QUOTE_VALIDITY_DAYS" envDefault:"14"`
}

type PaymentsConfig struct {
	AccessToken     string `env:"MERCADOPAGO_ACCESS_TOKEN"`
	Mock            bool   `env:"PAYMENT_GATEWAY_MOCK" envDefault:"false"`
	TestPayerEmail  string `env:"MERCADOPAGO_TEST_PAYER_EMAIL"`
	TestPayerUserID string `env:"MERCADOPAGO_TEST_PAYER_USER_ID"`
}

// Sandbox reports whether the access token belongs to a test account.
func (p PaymentsConfig) Sandbox() bool {
	return strings.HasPrefix(p.AccessToken, "TEST-")
}

type LogConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"console"`
}

// Load parses the environment and checks the values the service cannot
// run without.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.StorageBackend {
	case StorageMemory, StorageDynamoDB:
	default:
		return fmt.Errorf("STORAGE_BACKEND must be %q or %q, got %q", StorageMemory, StorageDynamoDB, c.StorageBackend)
	}
	if c.Billing.NetDays < 0 {
		return fmt.Errorf("INVOICE_NET_DAYS must not be negative")
	}
	if c.Billing.QuoteValidityDays < 0 {
		return fmt.Errorf("QUOTE_VALIDITY_DAYS must not be negative")
	}
	if c.Billing.TaxRate.IsNegative() || c.Billing.TaxRate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return fmt.Errorf("INVOICE_TAX_RATE must be in [0, 1)")
	}
	return nil
}
