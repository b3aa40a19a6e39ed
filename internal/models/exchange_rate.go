package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate stores the conversion rate between two currencies for a
// specific valuation date.
type ExchangeRate struct {
	ExchangeRateID        string          `json:"exchangeRateID"` // Primary Key (UUID)
	SourceCurrencyCode    string          `json:"sourceCurrencyCode"`    // FK -> Currency.currencyCode
	ExchangedCurrencyCode string          `json:"exchangedCurrencyCode"` // FK -> Currency.currencyCode
	ValuationDate         time.Time       `json:"valuationDate"`
	RateValue             decimal.Decimal `json:"rateValue"`
	AuditFields
}
