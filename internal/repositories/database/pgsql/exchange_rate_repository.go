package pgsql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/i-golovko/bb-currency/internal/core/domain"
	portsrepo "github.com/i-golovko/bb-currency/internal/core/ports/repositories"
	"github.com/i-golovko/bb-currency/internal/models"
	"github.com/i-golovko/bb-currency/internal/utils/mapping"
)

type PgxExchangeRateRepository struct {
	BaseRepository
}

// newPgxExchangeRateRepository creates a new repository for rate history.
func newPgxExchangeRateRepository(pool *pgxpool.Pool) portsrepo.ExchangeRateRepositoryFacade {
	return &PgxExchangeRateRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.ExchangeRateRepositoryFacade = (*PgxExchangeRateRepository)(nil)

// upsertRateQuery overwrites an existing row for the same pair and valuation
// date, so a re-fetch of the same day never produces duplicates.
const upsertRateQuery = `
	INSERT INTO exchange_rates (exchange_rate_id, source_currency_code, exchanged_currency_code, valuation_date, rate_value, created_at, last_updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	ON CONFLICT (source_currency_code, exchanged_currency_code, valuation_date) DO UPDATE SET
		rate_value = EXCLUDED.rate_value,
		last_updated_at = EXCLUDED.last_updated_at;
`

// SaveExchangeRates bulk-persists rate rows in one batch inside a single
// transaction, so a fetched day is stored either completely or not at all.
func (r *PgxExchangeRateRepository) SaveExchangeRates(ctx context.Context, rates []domain.ExchangeRate) error {
	if len(rates) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, rate := range rates {
		modelRate := mapping.ToModelExchangeRate(rate)
		batch.Queue(upsertRateQuery,
			modelRate.ExchangeRateID,
			modelRate.SourceCurrencyCode,
			modelRate.ExchangedCurrencyCode,
			modelRate.ValuationDate,
			modelRate.RateValue,
			modelRate.CreatedAt,
			modelRate.LastUpdatedAt,
		)
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	br := tx.SendBatch(ctx, batch)
	for i := range rates {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return fmt.Errorf("failed to save exchange rate batch entry %d: %w", i, err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to close exchange rate batch: %w", err)
	}

	return r.Commit(ctx, tx)
}

// FindRatesInRange retrieves rate rows inside the inclusive date range,
// ordered by ascending valuation date. Both filters are optional.
func (r *PgxExchangeRateRepository) FindRatesInRange(ctx context.Context, sourceCode *string, exchangedCodes []string, from, to time.Time) ([]domain.ExchangeRate, error) {
	var sb strings.Builder
	sb.WriteString(`
		SELECT exchange_rate_id, source_currency_code, exchanged_currency_code, valuation_date, rate_value, created_at, last_updated_at
		FROM exchange_rates
		WHERE valuation_date BETWEEN $1 AND $2`)
	args := []interface{}{from, to}

	if sourceCode != nil {
		args = append(args, *sourceCode)
		fmt.Fprintf(&sb, " AND source_currency_code = $%d", len(args))
	}
	if len(exchangedCodes) > 0 {
		args = append(args, exchangedCodes)
		fmt.Fprintf(&sb, " AND exchanged_currency_code = ANY($%d)", len(args))
	}
	sb.WriteString(" ORDER BY valuation_date, exchanged_currency_code;")

	rows, err := r.Pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query exchange rates: %w", err)
	}
	defer rows.Close()

	var result []domain.ExchangeRate
	for rows.Next() {
		var modelRate models.ExchangeRate
		if err := rows.Scan(
			&modelRate.ExchangeRateID,
			&modelRate.SourceCurrencyCode,
			&modelRate.ExchangedCurrencyCode,
			&modelRate.ValuationDate,
			&modelRate.RateValue,
			&modelRate.CreatedAt,
			&modelRate.LastUpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan exchange rate row: %w", err)
		}
		result = append(result, mapping.ToDomainExchangeRate(modelRate))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating exchange rate rows: %w", err)
	}

	return result, nil
}
