// Package tasks contains the background jobs run alongside the HTTP server.
package tasks

import (
	"context"
	"log/slog"
	"time"

	portssvc "github.com/i-golovko/bb-currency/internal/core/ports/services"
	"github.com/i-golovko/bb-currency/internal/middleware"
)

// RateRefresher periodically pulls the previous day's rates for every
// configured currency so period queries are served from storage instead of
// hitting providers on demand.
type RateRefresher struct {
	currencySvc portssvc.CurrencyReaderSvc
	fetchSvc    portssvc.RateFetchSvc
	interval    time.Duration
	logger      *slog.Logger
}

// NewRateRefresher creates a refresher running once per interval.
func NewRateRefresher(currencySvc portssvc.CurrencyReaderSvc, fetchSvc portssvc.RateFetchSvc, interval time.Duration, logger *slog.Logger) *RateRefresher {
	return &RateRefresher{
		currencySvc: currencySvc,
		fetchSvc:    fetchSvc,
		interval:    interval,
		logger:      logger,
	}
}

// Run blocks until ctx is cancelled, refreshing once immediately and then on
// every tick. Intended to be started in its own goroutine.
func (r *RateRefresher) Run(ctx context.Context) {
	ctx = middleware.WithLogger(ctx, r.logger)

	r.refreshOnce(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			r.logger.Info("Rate refresher stopping")
			return
		case <-ticker.C:
			r.refreshOnce(ctx)
		}
	}
}

// refreshOnce fetches yesterday's rates once per configured source currency.
// A failure for one source does not stop the others.
func (r *RateRefresher) refreshOnce(ctx context.Context) {
	currencies, err := r.currencySvc.ListCurrencies(ctx)
	if err != nil {
		r.logger.Error("Rate refresh failed to list currencies", slog.String("error", err.Error()))
		return
	}
	if len(currencies) < 2 {
		r.logger.Warn("Rate refresh skipped, fewer than two currencies configured")
		return
	}

	codes := make([]string, len(currencies))
	for i, c := range currencies {
		codes[i] = c.CurrencyCode
	}
	yesterday := time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, -1)

	for _, source := range codes {
		others := make([]string, 0, len(codes)-1)
		for _, code := range codes {
			if code != source {
				others = append(others, code)
			}
		}

		rateMap, err := r.fetchSvc.FetchHistoricalRates(ctx, source, others, yesterday)
		if err != nil {
			r.logger.Error("Rate refresh failed for source currency",
				slog.String("source", source), slog.String("error", err.Error()))
			continue
		}
		if rateMap.Empty() {
			r.logger.Warn("Rate refresh found no data for source currency",
				slog.String("source", source), slog.String("date", yesterday.Format("2006-01-02")))
			continue
		}
		r.logger.Info("Rates refreshed",
			slog.String("source", source),
			slog.String("date", yesterday.Format("2006-01-02")),
			slog.Int("count", len(rateMap.Rates)))
	}
}
