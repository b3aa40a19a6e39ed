package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RatePrecision is the number of fractional digits persisted rate values and
// derived return values are rounded to.
const RatePrecision = 6

// ExchangeRate records that 1 unit of SourceCurrencyCode was worth RateValue
// units of ExchangedCurrencyCode on ValuationDate. Rows are written once by
// the historical fetch path and treated as immutable facts afterwards.
type ExchangeRate struct {
	ExchangeRateID        string          `json:"exchangeRateID"` // Primary Key (UUID)
	SourceCurrencyCode    string          `json:"sourceCurrencyCode"`
	ExchangedCurrencyCode string          `json:"exchangedCurrencyCode"`
	ValuationDate         time.Time       `json:"valuationDate"` // calendar date, time part zero
	RateValue             decimal.Decimal `json:"rateValue"`
	AuditFields
}

// RateMap is the canonical per-day rate shape every adapter normalizes into:
// rates of one base currency against a set of others on a single date.
type RateMap struct {
	Date  time.Time                  `json:"date"`
	Base  string                     `json:"base"`
	Rates map[string]decimal.Decimal `json:"rates"`
}

// Empty reports whether the map carries no usable rates.
func (m *RateMap) Empty() bool {
	return m == nil || len(m.Rates) == 0
}

// TwrrPoint is one point of a derived time-weighted return series.
type TwrrPoint struct {
	Date      time.Time       `json:"date"`
	RateValue decimal.Decimal `json:"rateValue"`
	Twrr      decimal.Decimal `json:"twrr"`
}

// WeightedReturn is the result of a time-weighted rate of return calculation
// for an amount invested from Base into Exchanged since StartDate.
type WeightedReturn struct {
	Base      string          `json:"base"`
	Exchanged string          `json:"exchanged"`
	Amount    decimal.Decimal `json:"amount"`
	StartDate time.Time       `json:"startDate"`
	Twrr      []TwrrPoint     `json:"twrr"`
}
