package repositories

import (
	"context"

	"github.com/i-golovko/bb-currency/internal/core/domain"
)

// ProviderReader defines read operations for provider configuration
type ProviderReader interface {
	// FindProviderByName retrieves a specific provider by its unique name.
	FindProviderByName(ctx context.Context, name string) (*domain.Provider, error)

	// ListProvidersByPriority retrieves all providers ordered by ascending
	// priority (lower values first).
	ListProvidersByPriority(ctx context.Context) ([]domain.Provider, error)
}

// ProviderWriter defines write operations for provider configuration
type ProviderWriter interface {
	// SaveProvider persists a new provider.
	SaveProvider(ctx context.Context, provider domain.Provider) error

	// UpdateProvider replaces the stored configuration of an existing provider.
	UpdateProvider(ctx context.Context, provider domain.Provider) error
}

// ProviderRepositoryFacade combines all provider-related repository interfaces
type ProviderRepositoryFacade interface {
	ProviderReader
	ProviderWriter
}
