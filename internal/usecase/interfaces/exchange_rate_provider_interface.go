package interfaces

import (
	"context"

	"cstone_estimating/internal/domain/pricing"
)

//go:generate mockgen -source=exchange_rate_provider_interface.go -destination=mocks/mock_exchange_rate_provider_interface.go -package=mock_interfaces

// IExchangeRateProvider returns the live EUR→USD rate.
type IExchangeRateProvider interface {
	EURToUSD(ctx context.Context) (pricing.LiveRate, error)
}
