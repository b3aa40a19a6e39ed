package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/i-golovko/bb-currency/internal/adapters/rateprovider"
	"github.com/i-golovko/bb-currency/internal/apperrors"
	"github.com/i-golovko/bb-currency/internal/core/domain"
	portsrepo "github.com/i-golovko/bb-currency/internal/core/ports/repositories"
	"github.com/i-golovko/bb-currency/internal/metrics"
	"github.com/i-golovko/bb-currency/internal/middleware"
	"github.com/i-golovko/bb-currency/internal/utils/fxmath"
)

// RateFetchService walks the configured providers in ascending priority order
// and returns the first usable result. Provider failures (ErrProvider) are
// absorbed and the next provider is tried; configuration and data integrity
// failures abort the whole fetch. When every provider is exhausted the result
// is (nil, nil), never an error.
type RateFetchService struct {
	providerRepo portsrepo.ProviderReader
	currencyRepo portsrepo.CurrencyReader
	rateRepo     portsrepo.ExchangeRateWriter
	newAdapter   rateprovider.Factory
}

// NewRateFetchService creates a new RateFetchService.
func NewRateFetchService(
	providerRepo portsrepo.ProviderReader,
	currencyRepo portsrepo.CurrencyReader,
	rateRepo portsrepo.ExchangeRateWriter,
	newAdapter rateprovider.Factory,
) *RateFetchService {
	return &RateFetchService{
		providerRepo: providerRepo,
		currencyRepo: currencyRepo,
		rateRepo:     rateRepo,
		newAdapter:   newAdapter,
	}
}

// FetchLatestRate fetches the most recent sourceCode->exchangedCode rate from
// the first provider able to serve it. Latest rates are served directly and
// not persisted.
func (s *RateFetchService) FetchLatestRate(ctx context.Context, sourceCode, exchangedCode string) (*decimal.Decimal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	providers, err := s.providerRepo.ListProvidersByPriority(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list providers for rate fetch: %w", err)
	}

	for _, provider := range providers {
		adapter, err := s.newAdapter(provider)
		if err != nil {
			// Misconfigured providers abort the fetch rather than being
			// silently skipped.
			return nil, err
		}

		start := time.Now()
		rate, err := s.latestFromProvider(ctx, adapter, provider, sourceCode, exchangedCode)
		metrics.ProviderFetchDuration.WithLabelValues(provider.Name).Observe(time.Since(start).Seconds())
		if err != nil {
			if errors.Is(err, apperrors.ErrProvider) {
				metrics.ProviderFetchTotal.WithLabelValues(provider.Name, metrics.OutcomeError).Inc()
				logger.Warn("Provider failed, trying next", slog.String("provider", provider.Name), slog.String("error", err.Error()))
				continue
			}
			return nil, err
		}
		if rate == nil || rate.IsZero() {
			metrics.ProviderFetchTotal.WithLabelValues(provider.Name, metrics.OutcomeMiss).Inc()
			continue
		}

		metrics.ProviderFetchTotal.WithLabelValues(provider.Name, metrics.OutcomeSuccess).Inc()
		return rate, nil
	}

	logger.Warn("All providers exhausted for latest rate",
		slog.String("source", sourceCode), slog.String("exchanged", exchangedCode))
	return nil, nil
}

func (s *RateFetchService) latestFromProvider(ctx context.Context, adapter rateprovider.RateAdapter, provider domain.Provider, sourceCode, exchangedCode string) (*decimal.Decimal, error) {
	forced := provider.ForceBaseCurrency
	if forced != "" && forced != sourceCode {
		// The provider only quotes against its fixed base, so ask for both
		// legs in one request and derive the cross rate.
		rates, err := adapter.GetLatestRates(ctx, forced, []string{sourceCode, exchangedCode})
		if err != nil {
			return nil, err
		}
		rate, err := fxmath.CrossRate(rates, sourceCode, exchangedCode)
		if err != nil {
			return nil, err
		}
		return &rate, nil
	}

	rate, err := adapter.GetLatestRate(ctx, sourceCode, exchangedCode)
	if err != nil {
		return nil, err
	}
	return &rate, nil
}

// FetchHistoricalRates fetches rates of sourceCode against exchangedCodes for
// one valuation date. A successful fetch is persisted before returning so
// later period queries are served out of storage.
func (s *RateFetchService) FetchHistoricalRates(ctx context.Context, sourceCode string, exchangedCodes []string, valuationDate time.Time) (*domain.RateMap, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	providers, err := s.providerRepo.ListProvidersByPriority(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list providers for rate fetch: %w", err)
	}

	var result *domain.RateMap
	for _, provider := range providers {
		adapter, err := s.newAdapter(provider)
		if err != nil {
			return nil, err
		}

		start := time.Now()
		rateMap, err := s.historicalFromProvider(ctx, adapter, provider, sourceCode, exchangedCodes, valuationDate)
		metrics.ProviderFetchDuration.WithLabelValues(provider.Name).Observe(time.Since(start).Seconds())
		if err != nil {
			if errors.Is(err, apperrors.ErrProvider) {
				metrics.ProviderFetchTotal.WithLabelValues(provider.Name, metrics.OutcomeError).Inc()
				logger.Warn("Provider failed, trying next", slog.String("provider", provider.Name), slog.String("error", err.Error()))
				continue
			}
			return nil, err
		}
		if rateMap.Empty() {
			metrics.ProviderFetchTotal.WithLabelValues(provider.Name, metrics.OutcomeMiss).Inc()
			continue
		}

		metrics.ProviderFetchTotal.WithLabelValues(provider.Name, metrics.OutcomeSuccess).Inc()
		result = rateMap
		break
	}

	if result == nil {
		logger.Warn("All providers exhausted for historical rates",
			slog.String("source", sourceCode), slog.String("date", valuationDate.Format("2006-01-02")))
		return nil, nil
	}

	if err := s.persistRates(ctx, result); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *RateFetchService) historicalFromProvider(ctx context.Context, adapter rateprovider.RateAdapter, provider domain.Provider, sourceCode string, exchangedCodes []string, valuationDate time.Time) (*domain.RateMap, error) {
	forced := provider.ForceBaseCurrency
	if forced == "" || forced == sourceCode {
		return adapter.GetHistoricalRates(ctx, sourceCode, exchangedCodes, valuationDate)
	}

	// Fetch against the forced base including the wanted source currency,
	// then rebase everything onto the source.
	raw, err := adapter.GetHistoricalRates(ctx, forced, append([]string{sourceCode}, exchangedCodes...), valuationDate)
	if err != nil || raw.Empty() {
		return raw, err
	}

	reversed, err := fxmath.ReverseRates(sourceCode, raw.Rates)
	if err != nil {
		return nil, err
	}
	return &domain.RateMap{
		Date:  raw.Date,
		Base:  sourceCode,
		Rates: reversed,
	}, nil
}

// persistRates writes one row per exchanged currency, overwriting earlier
// rows for the same (source, exchanged, valuation date) key. A provider
// reporting a currency missing from the reference table signals divergent
// data sets and aborts the write.
func (s *RateFetchService) persistRates(ctx context.Context, rateMap *domain.RateMap) error {
	currencies, err := s.currencyRepo.ListCurrencies(ctx)
	if err != nil {
		return fmt.Errorf("failed to list currencies for rate persistence: %w", err)
	}
	known := make(map[string]struct{}, len(currencies))
	for _, c := range currencies {
		known[c.CurrencyCode] = struct{}{}
	}

	if _, ok := known[rateMap.Base]; !ok {
		return fmt.Errorf("%w: source currency %q is not configured", apperrors.ErrDataIntegrity, rateMap.Base)
	}

	now := time.Now()
	rows := make([]domain.ExchangeRate, 0, len(rateMap.Rates))
	for code, rate := range rateMap.Rates {
		if _, ok := known[code]; !ok {
			return fmt.Errorf("%w: provider reported unknown currency %q", apperrors.ErrDataIntegrity, code)
		}
		rows = append(rows, domain.ExchangeRate{
			ExchangeRateID:        uuid.NewString(),
			SourceCurrencyCode:    rateMap.Base,
			ExchangedCurrencyCode: code,
			ValuationDate:         rateMap.Date,
			RateValue:             rate,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				LastUpdatedAt: now,
			},
		})
	}

	if err := s.rateRepo.SaveExchangeRates(ctx, rows); err != nil {
		return fmt.Errorf("failed to persist fetched rates: %w", err)
	}
	metrics.RatesStoredTotal.Add(float64(len(rows)))
	return nil
}
