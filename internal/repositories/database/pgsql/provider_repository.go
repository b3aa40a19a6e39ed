package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/i-golovko/bb-currency/internal/apperrors"
	"github.com/i-golovko/bb-currency/internal/core/domain"
	portsrepo "github.com/i-golovko/bb-currency/internal/core/ports/repositories"
	"github.com/i-golovko/bb-currency/internal/models"
	"github.com/i-golovko/bb-currency/internal/utils/mapping"
)

type PgxProviderRepository struct {
	BaseRepository
}

// newPgxProviderRepository creates a new repository for provider configuration.
func newPgxProviderRepository(pool *pgxpool.Pool) portsrepo.ProviderRepositoryFacade {
	return &PgxProviderRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.ProviderRepositoryFacade = (*PgxProviderRepository)(nil)

// SaveProvider inserts a new provider. Provider names are unique.
func (r *PgxProviderRepository) SaveProvider(ctx context.Context, provider domain.Provider) error {
	modelProv, err := mapping.ToModelProvider(provider)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO providers (provider_id, name, priority, address, resource_type, force_base_currency, config, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err = r.Pool.Exec(ctx, query,
		modelProv.ProviderID,
		modelProv.Name,
		modelProv.Priority,
		modelProv.Address,
		modelProv.ResourceType,
		modelProv.ForceBaseCurrency,
		modelProv.Config,
		modelProv.CreatedAt,
		modelProv.LastUpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: provider with name %s already exists", apperrors.ErrDuplicate, modelProv.Name)
		}
		return fmt.Errorf("failed to save provider %s: %w", modelProv.Name, err)
	}
	return nil
}

// UpdateProvider replaces the stored configuration of an existing provider.
func (r *PgxProviderRepository) UpdateProvider(ctx context.Context, provider domain.Provider) error {
	modelProv, err := mapping.ToModelProvider(provider)
	if err != nil {
		return err
	}

	query := `
		UPDATE providers
		SET priority = $2, address = $3, resource_type = $4, force_base_currency = $5, config = $6, last_updated_at = $7
		WHERE name = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		modelProv.Name,
		modelProv.Priority,
		modelProv.Address,
		modelProv.ResourceType,
		modelProv.ForceBaseCurrency,
		modelProv.Config,
		modelProv.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update provider %s: %w", modelProv.Name, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: provider %s", apperrors.ErrNotFound, modelProv.Name)
	}
	return nil
}

// FindProviderByName retrieves a provider by its unique name.
func (r *PgxProviderRepository) FindProviderByName(ctx context.Context, name string) (*domain.Provider, error) {
	query := `
		SELECT provider_id, name, priority, address, resource_type, force_base_currency, config, created_at, last_updated_at
		FROM providers
		WHERE name = $1;
	`
	var modelProv models.Provider
	err := r.Pool.QueryRow(ctx, query, name).Scan(
		&modelProv.ProviderID,
		&modelProv.Name,
		&modelProv.Priority,
		&modelProv.Address,
		&modelProv.ResourceType,
		&modelProv.ForceBaseCurrency,
		&modelProv.Config,
		&modelProv.CreatedAt,
		&modelProv.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find provider by name %s: %w", name, err)
	}

	domainProv, err := mapping.ToDomainProvider(modelProv)
	if err != nil {
		return nil, err
	}
	return &domainProv, nil
}

// ListProvidersByPriority retrieves all providers ordered by ascending priority.
func (r *PgxProviderRepository) ListProvidersByPriority(ctx context.Context) ([]domain.Provider, error) {
	query := `
		SELECT provider_id, name, priority, address, resource_type, force_base_currency, config, created_at, last_updated_at
		FROM providers
		ORDER BY priority;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list providers: %w", err)
	}
	defer rows.Close()

	var result []domain.Provider
	for rows.Next() {
		var modelProv models.Provider
		if err := rows.Scan(
			&modelProv.ProviderID,
			&modelProv.Name,
			&modelProv.Priority,
			&modelProv.Address,
			&modelProv.ResourceType,
			&modelProv.ForceBaseCurrency,
			&modelProv.Config,
			&modelProv.CreatedAt,
			&modelProv.LastUpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan provider row: %w", err)
		}
		domainProv, err := mapping.ToDomainProvider(modelProv)
		if err != nil {
			return nil, err
		}
		result = append(result, domainProv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating provider rows: %w", err)
	}

	return result, nil
}
