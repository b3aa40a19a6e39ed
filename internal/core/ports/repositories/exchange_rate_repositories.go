package repositories

import (
	"context"
	"time"

	"github.com/i-golovko/bb-currency/internal/core/domain"
)

// ExchangeRateReader defines read operations over persisted rate history
type ExchangeRateReader interface {
	// FindRatesInRange retrieves rate rows with a valuation date inside the
	// inclusive [from, to] range, ordered by ascending valuation date.
	// sourceCode narrows to one source currency when non-nil;
	// exchangedCodes narrows the exchanged side when non-empty.
	FindRatesInRange(ctx context.Context, sourceCode *string, exchangedCodes []string, from, to time.Time) ([]domain.ExchangeRate, error)
}

// ExchangeRateWriter defines write operations for rate history
type ExchangeRateWriter interface {
	// SaveExchangeRates bulk-persists rate rows atomically, overwriting any
	// previous row for the same (source, exchanged, valuation date) key.
	SaveExchangeRates(ctx context.Context, rates []domain.ExchangeRate) error
}

// ExchangeRateRepositoryFacade combines all exchange-rate repository interfaces
type ExchangeRateRepositoryFacade interface {
	ExchangeRateReader
	ExchangeRateWriter
}
