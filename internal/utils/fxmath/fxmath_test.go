package fxmath_test

import (
	"testing"
	"time"

	"github.com/i-golovko/bb-currency/internal/apperrors"
	"github.com/i-golovko/bb-currency/internal/utils/fxmath"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func day(dayOfMonth int) time.Time {
	return time.Date(2024, time.January, dayOfMonth, 0, 0, 0, 0, time.UTC)
}

func TestCrossRate(t *testing.T) {
	rates := map[string]decimal.Decimal{
		"USD": d("1.1"),
		"GBP": d("0.9"),
	}

	rate, err := fxmath.CrossRate(rates, "USD", "GBP")
	require.NoError(t, err)
	assert.True(t, fxmath.Round(rate).Equal(d("1.222222")), "got %s", rate)
}

func TestCrossRate_MissingCurrency(t *testing.T) {
	rates := map[string]decimal.Decimal{"USD": d("1.1")}

	_, err := fxmath.CrossRate(rates, "USD", "GBP")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrDataIntegrity)
}

func TestCrossRate_ZeroDivisor(t *testing.T) {
	rates := map[string]decimal.Decimal{
		"USD": d("1.1"),
		"GBP": decimal.Zero,
	}

	_, err := fxmath.CrossRate(rates, "USD", "GBP")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrDataIntegrity)
}

func TestReverseRates(t *testing.T) {
	raw := map[string]decimal.Decimal{
		"USD": d("1.082573"),
		"CHF": d("0.939527"),
		"GBP": d("0.852586"),
	}

	reversed, err := fxmath.ReverseRates("USD", raw)
	require.NoError(t, err)

	require.Len(t, reversed, 2)
	assert.True(t, reversed["CHF"].Equal(d("0.867865")), "CHF: got %s", reversed["CHF"])
	assert.True(t, reversed["GBP"].Equal(d("0.787555")), "GBP: got %s", reversed["GBP"])
	_, hasSource := reversed["USD"]
	assert.False(t, hasSource, "source currency must be dropped")
}

func TestReverseRates_SourceMissing(t *testing.T) {
	raw := map[string]decimal.Decimal{"CHF": d("0.939527")}

	reversed, err := fxmath.ReverseRates("USD", raw)
	require.NoError(t, err)
	assert.Empty(t, reversed)
}

func TestReverseRates_ZeroBase(t *testing.T) {
	raw := map[string]decimal.Decimal{
		"USD": decimal.Zero,
		"CHF": d("0.939527"),
	}

	_, err := fxmath.ReverseRates("USD", raw)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrDataIntegrity)
}

// Rebasing A->B and then B->A recovers the original rates within rounding.
func TestReverseRates_RoundTrip(t *testing.T) {
	raw := map[string]decimal.Decimal{
		"USD": d("1.082573"),
		"CHF": d("0.939527"),
		"GBP": d("0.852586"),
	}

	reversed, err := fxmath.ReverseRates("USD", raw)
	require.NoError(t, err)
	// Re-add the implied unit entry before rebasing back.
	reversed["USD"] = decimal.NewFromInt(1)
	reversed["EUR"] = fxmath.Round(decimal.NewFromInt(1).Div(raw["USD"]))

	back, err := fxmath.ReverseRates("EUR", reversed)
	require.NoError(t, err)

	tolerance := d("0.00001")
	for _, code := range []string{"USD", "CHF", "GBP"} {
		diff := back[code].Sub(raw[code]).Abs()
		assert.True(t, diff.LessThan(tolerance), "%s drifted by %s", code, diff)
	}
}

func TestCalculateTWRR(t *testing.T) {
	series := []fxmath.RatePoint{
		{Date: day(1), Rate: d("1.0")},
		{Date: day(2), Rate: d("1.1")},
		{Date: day(3), Rate: d("0.99")},
	}
	amount := decimal.NewFromInt(1000)

	points, err := fxmath.CalculateTWRR(series, amount)
	require.NoError(t, err)
	require.Len(t, points, 2)

	assert.Equal(t, day(2), points[0].Date)
	assert.True(t, points[0].RateValue.Equal(d("1.1")))
	assert.True(t, points[0].Twrr.Equal(d("1100")), "got %s", points[0].Twrr)

	assert.Equal(t, day(3), points[1].Date)
	assert.True(t, points[1].Twrr.Equal(d("990")), "got %s", points[1].Twrr)
}

// Each point equals amount * product of daily returns up to that point.
func TestCalculateTWRR_Compounding(t *testing.T) {
	series := []fxmath.RatePoint{
		{Date: day(1), Rate: d("0.92")},
		{Date: day(2), Rate: d("0.95")},
		{Date: day(3), Rate: d("0.91")},
		{Date: day(4), Rate: d("1.02")},
	}
	amount := decimal.NewFromInt(500)

	points, err := fxmath.CalculateTWRR(series, amount)
	require.NoError(t, err)
	require.Len(t, points, len(series)-1)

	running := decimal.NewFromInt(1)
	for i, p := range points {
		running = running.Mul(series[i+1].Rate.Div(series[i].Rate))
		expected := fxmath.Round(running.Mul(amount))
		assert.True(t, p.Twrr.Equal(expected), "point %d: got %s want %s", i, p.Twrr, expected)
	}
}

func TestCalculateTWRR_ShortSeries(t *testing.T) {
	amount := decimal.NewFromInt(100)

	points, err := fxmath.CalculateTWRR(nil, amount)
	require.NoError(t, err)
	assert.Empty(t, points)

	points, err = fxmath.CalculateTWRR([]fxmath.RatePoint{{Date: day(1), Rate: d("1.0")}}, amount)
	require.NoError(t, err)
	assert.Empty(t, points)
}

func TestCalculateTWRR_ZeroRate(t *testing.T) {
	series := []fxmath.RatePoint{
		{Date: day(1), Rate: d("1.0")},
		{Date: day(2), Rate: decimal.Zero},
		{Date: day(3), Rate: d("1.1")},
	}

	_, err := fxmath.CalculateTWRR(series, decimal.NewFromInt(1000))
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrDataIntegrity)
}
