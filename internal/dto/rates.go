package dto

import (
	"github.com/i-golovko/bb-currency/internal/core/domain"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// RatesForPeriodRequest are the query parameters of the period rate listing.
type RatesForPeriodRequest struct {
	SourceCurrency string `form:"source_currency" binding:"required,currencycode"`
	DateFrom       string `form:"date_from" binding:"required,datetime=2006-01-02"`
	DateTo         string `form:"date_to" binding:"required,datetime=2006-01-02"`
}

// ConvertRequest are the query parameters of the currency converter.
type ConvertRequest struct {
	SourceCurrency    string `form:"source_currency" binding:"required,currencycode"`
	ExchangedCurrency string `form:"exchanged_currency" binding:"required,currencycode"`
	Amount            string `form:"amount" binding:"required"`
}

// TwrrRequest are the query parameters of the weighted rate of return view.
type TwrrRequest struct {
	SourceCurrency    string `form:"source_currency" binding:"required,currencycode"`
	ExchangedCurrency string `form:"exchanged_currency" binding:"required,currencycode"`
	Amount            string `form:"amount" binding:"required"`
	StartDate         string `form:"start_date" binding:"required,datetime=2006-01-02"`
}

// RateMapResponse is one day of rates for a base currency.
type RateMapResponse struct {
	Date  string                     `json:"date"`
	Base  string                     `json:"base"`
	Rates map[string]decimal.Decimal `json:"rates"`
}

// ToRateMapResponse converts a domain RateMap to its response shape.
func ToRateMapResponse(m domain.RateMap) RateMapResponse {
	return RateMapResponse{
		Date:  m.Date.Format(dateLayout),
		Base:  m.Base,
		Rates: m.Rates,
	}
}

// ToListRateMapResponse converts a slice of RateMaps to response DTOs.
func ToListRateMapResponse(maps []domain.RateMap) []RateMapResponse {
	res := make([]RateMapResponse, len(maps))
	for i, m := range maps {
		res[i] = ToRateMapResponse(m)
	}
	return res
}

// ConvertResponse is the result of converting an amount at the latest rate.
type ConvertResponse struct {
	SourceCurrency    string          `json:"sourceCurrency"`
	ExchangedCurrency string          `json:"exchangedCurrency"`
	Amount            decimal.Decimal `json:"amount"`
	Rate              decimal.Decimal `json:"rate"`
	ConvertedAmount   decimal.Decimal `json:"convertedAmount"`
}

// TwrrPointResponse is a single point of a weighted return series.
type TwrrPointResponse struct {
	Date      string          `json:"date"`
	RateValue decimal.Decimal `json:"rateValue"`
	Twrr      decimal.Decimal `json:"twrr"`
}

// TwrrResponse is the weighted rate of return series for an invested amount.
type TwrrResponse struct {
	Base      string              `json:"base"`
	Exchanged string              `json:"exchanged"`
	Amount    decimal.Decimal     `json:"amount"`
	StartDate string              `json:"startDate"`
	Twrr      []TwrrPointResponse `json:"twrr"`
}

// ToTwrrResponse converts a domain WeightedReturn to its response shape.
func ToTwrrResponse(w *domain.WeightedReturn) TwrrResponse {
	points := make([]TwrrPointResponse, len(w.Twrr))
	for i, p := range w.Twrr {
		points[i] = TwrrPointResponse{
			Date:      p.Date.Format(dateLayout),
			RateValue: p.RateValue,
			Twrr:      p.Twrr,
		}
	}
	return TwrrResponse{
		Base:      w.Base,
		Exchanged: w.Exchanged,
		Amount:    w.Amount,
		StartDate: w.StartDate.Format(dateLayout),
		Twrr:      points,
	}
}
