package services

import (
	"context"
	"time"

	"github.com/i-golovko/bb-currency/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RateFetchSvc walks the configured providers in priority order and returns
// the first usable result. A nil result with a nil error means every provider
// was exhausted without data; callers must treat that as "rate unavailable".
type RateFetchSvc interface {
	// FetchLatestRate fetches the most recent sourceCode->exchangedCode rate.
	FetchLatestRate(ctx context.Context, sourceCode, exchangedCode string) (*decimal.Decimal, error)

	// FetchHistoricalRates fetches rates of sourceCode against exchangedCodes
	// for one valuation date and persists the result on success.
	FetchHistoricalRates(ctx context.Context, sourceCode string, exchangedCodes []string, valuationDate time.Time) (*domain.RateMap, error)
}

// RateHistorySvc serves per-day rate maps for a date range out of the
// persisted history.
type RateHistorySvc interface {
	// GetRatesForPeriod returns one RateMap per day with stored data inside
	// the inclusive [dateFrom, dateTo] range, ascending by date. It never
	// reaches out to providers.
	GetRatesForPeriod(ctx context.Context, sourceCode string, exchangedCodes []string, dateFrom, dateTo time.Time) ([]domain.RateMap, error)

	// GetRatesForPeriodWithBackfill behaves like GetRatesForPeriod but, when
	// the store holds nothing for the range, back-fills it day by day through
	// the provider chain.
	GetRatesForPeriodWithBackfill(ctx context.Context, sourceCode string, exchangedCodes []string, dateFrom, dateTo time.Time) ([]domain.RateMap, error)
}

// TwrrSvc derives time-weighted return series from rate history.
type TwrrSvc interface {
	// GetWeightedROR computes the daily time-weighted rate of return for an
	// amount moved from sourceCode into exchangedCode on startDate, up to
	// today.
	GetWeightedROR(ctx context.Context, sourceCode, exchangedCode string, amount decimal.Decimal, startDate time.Time) (*domain.WeightedReturn, error)
}
