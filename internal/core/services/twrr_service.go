package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/i-golovko/bb-currency/internal/apperrors"
	"github.com/i-golovko/bb-currency/internal/core/domain"
	portssvc "github.com/i-golovko/bb-currency/internal/core/ports/services"
	"github.com/i-golovko/bb-currency/internal/utils/fxmath"
)

// TwrrService derives time-weighted return series from rate history.
type TwrrService struct {
	historySvc portssvc.RateHistorySvc
	now        func() time.Time
}

// NewTwrrService creates a new TwrrService. now is injectable so tests can
// pin "today"; pass time.Now in production.
func NewTwrrService(historySvc portssvc.RateHistorySvc, now func() time.Time) *TwrrService {
	if now == nil {
		now = time.Now
	}
	return &TwrrService{historySvc: historySvc, now: now}
}

// GetWeightedROR computes the daily time-weighted rate of return for an
// amount moved from sourceCode into exchangedCode on startDate, up to today.
// Fewer than two days of rate data yield an empty series, not an error.
func (s *TwrrService) GetWeightedROR(ctx context.Context, sourceCode, exchangedCode string, amount decimal.Decimal, startDate time.Time) (*domain.WeightedReturn, error) {
	today := s.now().UTC().Truncate(24 * time.Hour)

	rateMaps, err := s.historySvc.GetRatesForPeriodWithBackfill(ctx, sourceCode, []string{exchangedCode}, startDate, today)
	if err != nil {
		return nil, err
	}

	series := make([]fxmath.RatePoint, 0, len(rateMaps))
	for _, m := range rateMaps {
		rate, ok := m.Rates[exchangedCode]
		if !ok {
			return nil, fmt.Errorf("%w: no %s rate in the %s rate set",
				apperrors.ErrDataIntegrity, exchangedCode, m.Date.Format("2006-01-02"))
		}
		series = append(series, fxmath.RatePoint{Date: m.Date, Rate: rate})
	}

	twrr, err := fxmath.CalculateTWRR(series, amount)
	if err != nil {
		return nil, err
	}

	return &domain.WeightedReturn{
		Base:      sourceCode,
		Exchanged: exchangedCode,
		Amount:    amount,
		StartDate: startDate,
		Twrr:      twrr,
	}, nil
}
