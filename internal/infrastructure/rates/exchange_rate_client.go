package rates

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"cstone_estimating/internal/config"
	"cstone_estimating/internal/domain/pricing"

	"go.uber.org/zap"
)

var (
	ErrRateUnavailable   = errors.New("exchange rate unavailable")
	ErrRateNotConfigured = errors.New("exchange rate provider not configured")
)

// latestResponse is the Frankfurter /latest body:
// {"amount":1.0,"base":"EUR","date":"2025-03-04","rates":{"USD":1.0823}}
type latestResponse struct {
	Base  string             `json:"base"`
	Date  string             `json:"date"`
	Rates map[string]float64 `json:"rates"`
}

// ExchangeRateClient fetches the live EUR→USD rate.
type ExchangeRateClient struct {
	httpClient *http.Client
	url        string
	mockMode   bool
	mockValue  float64
	logger     *zap.Logger
	now        func() time.Time
}

func NewExchangeRateClient(cfg config.ExchangeRateConfig, logger *zap.Logger) *ExchangeRateClient {
	if cfg.Mock {
		logger.Info("[rates][client] mock mode enabled", zap.Float64("rate", cfg.MockValue))
	}
	return &ExchangeRateClient{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		url:        cfg.URL,
		mockMode:   cfg.Mock,
		mockValue:  cfg.MockValue,
		logger:     logger,
		now:        time.Now,
	}
}

func (c *ExchangeRateClient) EURToUSD(ctx context.Context) (pricing.LiveRate, error) {
	if c.mockMode {
		return pricing.LiveRate{Rate: c.mockValue, AsOf: c.now().UTC().Format("2006-01-02")}, nil
	}
	if c.url == "" {
		return pricing.LiveRate{}, ErrRateNotConfigured
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return pricing.LiveRate{}, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("[rates][client] request failed", zap.Error(err))
		return pricing.LiveRate{}, fmt.Errorf("%w: %v", ErrRateUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return pricing.LiveRate{}, fmt.Errorf("%w: %v", ErrRateUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("[rates][client] unexpected status", zap.Int("status", resp.StatusCode))
		return pricing.LiveRate{}, fmt.Errorf("%w: status %d", ErrRateUnavailable, resp.StatusCode)
	}

	var parsed latestResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return pricing.LiveRate{}, fmt.Errorf("%w: %v", ErrRateUnavailable, err)
	}
	rate, ok := parsed.Rates["USD"]
	if !ok || rate <= 0 {
		return pricing.LiveRate{}, fmt.Errorf("%w: no USD rate in response", ErrRateUnavailable)
	}

	asOf := parsed.Date
	if asOf == "" {
		asOf = c.now().UTC().Format("2006-01-02")
	}
	c.logger.Debug("[rates][client] live rate fetched", zap.Float64("rate", rate), zap.String("as_of", asOf))
	return pricing.LiveRate{Rate: rate, AsOf: asOf}, nil
}
