// Package fxmath holds the pure rate arithmetic: cross-rate rebasing,
// reverse-rate transforms and time-weighted return accumulation.
package fxmath

import (
	"fmt"
	"time"

	"github.com/i-golovko/bb-currency/internal/apperrors"
	"github.com/i-golovko/bb-currency/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RatePoint is one element of a chronological rate series.
type RatePoint struct {
	Date time.Time
	Rate decimal.Decimal
}

// Round rounds a rate or return value to the persisted precision.
func Round(v decimal.Decimal) decimal.Decimal {
	return v.Round(domain.RatePrecision)
}

// CrossRate derives the sourceCode->exchangedCode rate from a mapping of
// rates expressed against some other base currency. Both codes must be
// present and the exchanged rate must be non-zero.
func CrossRate(rates map[string]decimal.Decimal, sourceCode, exchangedCode string) (decimal.Decimal, error) {
	source, ok := rates[sourceCode]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: currency %s missing from provider rates", apperrors.ErrDataIntegrity, sourceCode)
	}
	exchanged, ok := rates[exchangedCode]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: currency %s missing from provider rates", apperrors.ErrDataIntegrity, exchangedCode)
	}
	if exchanged.IsZero() {
		return decimal.Zero, fmt.Errorf("%w: zero rate for %s used as divisor", apperrors.ErrDataIntegrity, exchangedCode)
	}
	return source.Div(exchanged), nil
}

// ReverseRates rebases a rate mapping from its reported base onto sourceCode:
// every remaining currency c becomes round(rates[c]/rates[sourceCode], 6) and
// the sourceCode entry itself is dropped (it is now the implicit 1).
// An empty map is returned when sourceCode is absent, which callers treat as
// "this provider had nothing usable".
func ReverseRates(sourceCode string, rates map[string]decimal.Decimal) (map[string]decimal.Decimal, error) {
	base, ok := rates[sourceCode]
	if !ok {
		return map[string]decimal.Decimal{}, nil
	}
	if base.IsZero() {
		return nil, fmt.Errorf("%w: zero rate for %s used as rebasing divisor", apperrors.ErrDataIntegrity, sourceCode)
	}
	reversed := make(map[string]decimal.Decimal, len(rates)-1)
	for code, rate := range rates {
		if code == sourceCode {
			continue
		}
		reversed[code] = Round(rate.Div(base))
	}
	return reversed, nil
}

// CalculateTWRR compounds the daily returns of a chronological rate series
// into a time-weighted return series for the given amount. Fewer than two
// points yield an empty series. A zero rate acting as a divisor is corrupt
// input and surfaces as a data integrity error.
func CalculateTWRR(series []RatePoint, amount decimal.Decimal) ([]domain.TwrrPoint, error) {
	points := make([]domain.TwrrPoint, 0, max(len(series)-1, 0))
	totalReturn := decimal.NewFromInt(1)

	for i := 1; i < len(series); i++ {
		previous := series[i-1].Rate
		if previous.IsZero() {
			return nil, fmt.Errorf("%w: zero rate on %s used as divisor in TWRR",
				apperrors.ErrDataIntegrity, series[i-1].Date.Format("2006-01-02"))
		}
		dailyReturn := series[i].Rate.Div(previous)
		totalReturn = totalReturn.Mul(dailyReturn)
		points = append(points, domain.TwrrPoint{
			Date:      series[i].Date,
			RateValue: series[i].Rate,
			Twrr:      Round(totalReturn.Mul(amount)),
		})
	}
	return points, nil
}
