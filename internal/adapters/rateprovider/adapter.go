// Package rateprovider contains the adapter variants that translate each
// external rate source's idiosyncratic schema into the canonical RateMap
// shape, plus the factory selecting the variant for a provider record.
package rateprovider

import (
	"context"
	"fmt"
	"time"

	"github.com/i-golovko/bb-currency/internal/apperrors"
	"github.com/i-golovko/bb-currency/internal/core/domain"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// RateAdapter is the capability contract every rate source fulfills.
//
// Adapters fail with apperrors.ErrProvider when the resource answers but
// carries no usable rate data; the orchestrator absorbs that and falls
// through to the next provider. Structural configuration problems surface as
// apperrors.ErrConfiguration from the constructors instead and always abort
// the whole fetch.
type RateAdapter interface {
	// GetLatestRate fetches the most recent rate for a single currency pair.
	GetLatestRate(ctx context.Context, sourceCode, exchangedCode string) (decimal.Decimal, error)

	// GetLatestRates fetches the most recent rates of sourceCode against
	// several currencies at once. The returned mapping may contain more
	// codes than requested when the source reports them anyway.
	GetLatestRates(ctx context.Context, sourceCode string, exchangedCodes []string) (map[string]decimal.Decimal, error)

	// GetHistoricalRates fetches rates for one valuation date. A nil map
	// with a nil error means the resource has no data for that date and
	// base; that is an ordinary miss, not an error.
	GetHistoricalRates(ctx context.Context, sourceCode string, exchangedCodes []string, valuationDate time.Time) (*domain.RateMap, error)
}

// Factory builds the adapter matching a provider's resource type.
type Factory func(provider domain.Provider) (RateAdapter, error)

// NewFactory returns a Factory over the closed set of adapter variants.
// The timeout bounds every HTTP call so a hung provider cannot block
// fallback to the next one.
func NewFactory(timeout time.Duration) Factory {
	return func(provider domain.Provider) (RateAdapter, error) {
		switch provider.ResourceType {
		case domain.ResourceTypeHTTP:
			return NewHTTPAdapter(provider.Address, provider.Config, timeout)
		case domain.ResourceTypeJSON:
			return NewFileAdapter(provider.Address, provider.Config)
		default:
			return nil, fmt.Errorf("%w: unknown provider resource type %q", apperrors.ErrConfiguration, provider.ResourceType)
		}
	}
}

func validateConfig(cfg domain.ProviderConfig) error {
	if cfg.Endpoints.Latest.Request.Path == "" {
		return fmt.Errorf("%w: latest endpoint path is empty", apperrors.ErrConfiguration)
	}
	if cfg.Endpoints.Historical.Request.Path == "" {
		return fmt.Errorf("%w: historical endpoint path is empty", apperrors.ErrConfiguration)
	}
	return nil
}
