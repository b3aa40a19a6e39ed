package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/i-golovko/bb-currency/internal/apperrors"
	"github.com/i-golovko/bb-currency/internal/core/domain"
	portsrepo "github.com/i-golovko/bb-currency/internal/core/ports/repositories"
	portssvc "github.com/i-golovko/bb-currency/internal/core/ports/services"
	"github.com/i-golovko/bb-currency/internal/middleware"
	"github.com/i-golovko/bb-currency/internal/utils/fxmath"
)

// RateHistoryService serves per-day rate maps out of persisted history.
// History rows are stored against one fixed base currency; queries for any
// other source currency are answered by rebasing the stored rows onto the
// requested source.
type RateHistoryService struct {
	rateRepo    portsrepo.ExchangeRateReader
	fetchSvc    portssvc.RateFetchSvc
	storageBase string
}

// NewRateHistoryService creates a new RateHistoryService. storageBase is the
// currency the persisted rows are quoted against, normally EUR.
func NewRateHistoryService(rateRepo portsrepo.ExchangeRateReader, fetchSvc portssvc.RateFetchSvc, storageBase string) *RateHistoryService {
	return &RateHistoryService{
		rateRepo:    rateRepo,
		fetchSvc:    fetchSvc,
		storageBase: storageBase,
	}
}

// GetRatesForPeriod returns one RateMap per day with stored data inside the
// inclusive [dateFrom, dateTo] range, ascending by date. Days without data
// are simply absent. It never reaches out to providers.
func (s *RateHistoryService) GetRatesForPeriod(ctx context.Context, sourceCode string, exchangedCodes []string, dateFrom, dateTo time.Time) ([]domain.RateMap, error) {
	if sourceCode == s.storageBase {
		rows, err := s.rateRepo.FindRatesInRange(ctx, &sourceCode, exchangedCodes, dateFrom, dateTo)
		if err != nil {
			return nil, fmt.Errorf("failed to read rate history: %w", err)
		}
		return groupByDate(rows, sourceCode), nil
	}

	// Rebase path: read every stored pair for the range and derive the
	// requested source's view from the stored base's rows.
	rows, err := s.rateRepo.FindRatesInRange(ctx, &s.storageBase, nil, dateFrom, dateTo)
	if err != nil {
		return nil, fmt.Errorf("failed to read rate history: %w", err)
	}

	result := make([]domain.RateMap, 0)
	for _, stored := range groupByDate(rows, s.storageBase) {
		denominator, ok := stored.Rates[sourceCode]
		if !ok {
			return nil, fmt.Errorf("%w: no %s rate stored for %s to rebase on",
				apperrors.ErrDataIntegrity, sourceCode, stored.Date.Format("2006-01-02"))
		}

		rebased, err := fxmath.ReverseRates(sourceCode, stored.Rates)
		if err != nil {
			return nil, err
		}
		// The stored base itself becomes an ordinary quoted currency of the
		// rebased map.
		one := decimal.NewFromInt(1)
		rebased[s.storageBase] = fxmath.Round(one.Div(denominator))

		result = append(result, domain.RateMap{
			Date:  stored.Date,
			Base:  sourceCode,
			Rates: rebased,
		})
	}
	return result, nil
}

// GetRatesForPeriodWithBackfill behaves like GetRatesForPeriod but, when the
// store holds nothing at all for the range, walks the range day by day
// through the provider chain. Days no provider can serve are skipped.
func (s *RateHistoryService) GetRatesForPeriodWithBackfill(ctx context.Context, sourceCode string, exchangedCodes []string, dateFrom, dateTo time.Time) ([]domain.RateMap, error) {
	maps, err := s.GetRatesForPeriod(ctx, sourceCode, exchangedCodes, dateFrom, dateTo)
	if err != nil {
		return nil, err
	}
	if len(maps) > 0 {
		return maps, nil
	}

	logger := middleware.GetLoggerFromCtx(ctx)
	logger.Info("No stored rates for period, backfilling from providers",
		slog.String("source", sourceCode),
		slog.String("date_from", dateFrom.Format("2006-01-02")),
		slog.String("date_to", dateTo.Format("2006-01-02")))

	result := make([]domain.RateMap, 0)
	for day := dateFrom; !day.After(dateTo); day = day.AddDate(0, 0, 1) {
		rateMap, err := s.fetchSvc.FetchHistoricalRates(ctx, sourceCode, exchangedCodes, day)
		if err != nil {
			return nil, err
		}
		if rateMap.Empty() {
			continue
		}
		result = append(result, *rateMap)
	}
	return result, nil
}

// groupByDate folds flat rate rows into one RateMap per valuation date,
// preserving the rows' ascending date order.
func groupByDate(rows []domain.ExchangeRate, base string) []domain.RateMap {
	result := make([]domain.RateMap, 0)
	byDate := make(map[time.Time]int)

	for _, row := range rows {
		date := row.ValuationDate
		idx, ok := byDate[date]
		if !ok {
			idx = len(result)
			byDate[date] = idx
			result = append(result, domain.RateMap{
				Date:  date,
				Base:  base,
				Rates: make(map[string]decimal.Decimal),
			})
		}
		result[idx].Rates[row.ExchangedCurrencyCode] = row.RateValue
	}
	return result
}
