// Package config loads the service configuration from the environment and an
// optional YAML file named by CONFIG_FILE.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port         int
	Log          LogConfig
	AWS          AWSConfig
	Tables       TablesConfig
	MercadoPago  MercadoPagoConfig
	ExchangeRate ExchangeRateConfig
	// MissingValue replaces blank fields in generated document values.
	MissingValue string
}

type LogConfig struct {
	Level  string
	Format string
}

type AWSConfig struct {
	Region           string
	AccessKeyID      string
	SecretAccessKey  string
	DynamoDBEndpoint string
}

type TablesConfig struct {
	Estimates string
	Payments  string
	Catalogs  string
}

type MercadoPagoConfig struct {
	AccessToken     string
	TestPayerEmail  string
	TestPayerUserID string
	Mock            bool
}

// SandboxToken reports whether the access token belongs to a Mercado Pago test account.
func (c MercadoPagoConfig) SandboxToken() bool {
	return strings.HasPrefix(strings.TrimSpace(c.AccessToken), "TEST-")
}

type ExchangeRateConfig struct {
	URL       string
	Mock      bool
	MockValue float64
	Timeout   time.Duration
}

var defaults = map[string]any{
	"PORT":                           8080,
	"LOG_LEVEL":                      "info",
	"LOG_FORMAT":                     "json",
	"AWS_REGION":                     "us-east-1",
	"AWS_ACCESS_KEY_ID":              "local",
	"AWS_SECRET_ACCESS_KEY":          "local",
	"DYNAMODB_ENDPOINT":              "",
	"ESTIMATES_TABLE":                "estimates",
	"PAYMENTS_TABLE":                 "payments",
	"CATALOGS_TABLE":                 "team_catalogs",
	"MERCADOPAGO_ACCESS_TOKEN":       "",
	"MERCADOPAGO_TEST_PAYER_EMAIL":   "",
	"MERCADOPAGO_TEST_PAYER_USER_ID": "",
	"PAYMENT_GATEWAY_MOCK":           "",
	"MERCADOPAGO_MOCK":               "",
	"EXCHANGE_RATE_URL":              "https://api.frankfurter.app/latest?from=EUR&to=USD",
	"EXCHANGE_RATE_MOCK":             "",
	"EXCHANGE_RATE_MOCK_VALUE":       1.08,
	"EXCHANGE_RATE_TIMEOUT":          "5s",
	"PDF_MISSING_VALUE":              "",
}

// Load reads the configuration. Environment variables win over the file.
func Load() (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if path := v.GetString("CONFIG_FILE"); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	}

	cfg := &Config{
		Port: v.GetInt("PORT"),
		Log: LogConfig{
			Level:  strings.ToLower(v.GetString("LOG_LEVEL")),
			Format: strings.ToLower(v.GetString("LOG_FORMAT")),
		},
		AWS: AWSConfig{
			Region:           v.GetString("AWS_REGION"),
			AccessKeyID:      v.GetString("AWS_ACCESS_KEY_ID"),
			SecretAccessKey:  v.GetString("AWS_SECRET_ACCESS_KEY"),
			DynamoDBEndpoint: v.GetString("DYNAMODB_ENDPOINT"),
		},
		Tables: TablesConfig{
			Estimates: v.GetString("ESTIMATES_TABLE"),
			Payments:  v.GetString("PAYMENTS_TABLE"),
			Catalogs:  v.GetString("CATALOGS_TABLE"),
		},
		MercadoPago: MercadoPagoConfig{
			AccessToken:     strings.TrimSpace(v.GetString("MERCADOPAGO_ACCESS_TOKEN")),
			TestPayerEmail:  strings.TrimSpace(v.GetString("MERCADOPAGO_TEST_PAYER_EMAIL")),
			TestPayerUserID: strings.TrimSpace(v.GetString("MERCADOPAGO_TEST_PAYER_USER_ID")),
			Mock:            flagEnabled(v.GetString("PAYMENT_GATEWAY_MOCK")) || flagEnabled(v.GetString("MERCADOPAGO_MOCK")),
		},
		ExchangeRate: ExchangeRateConfig{
			URL:       v.GetString("EXCHANGE_RATE_URL"),
			Mock:      flagEnabled(v.GetString("EXCHANGE_RATE_MOCK")),
			MockValue: v.GetFloat64("EXCHANGE_RATE_MOCK_VALUE"),
			Timeout:   v.GetDuration("EXCHANGE_RATE_TIMEOUT"),
		},
		MissingValue: v.GetString("PDF_MISSING_VALUE"),
	}

	if cfg.Port <= 0 {
		return nil, fmt.Errorf("invalid PORT: %d", cfg.Port)
	}
	if cfg.ExchangeRate.Timeout <= 0 {
		return nil, fmt.Errorf("invalid EXCHANGE_RATE_TIMEOUT: %s", v.GetString("EXCHANGE_RATE_TIMEOUT"))
	}
	return cfg, nil
}

func flagEnabled(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "yes", "on", "mock":
		return true
	}
	return false
}
