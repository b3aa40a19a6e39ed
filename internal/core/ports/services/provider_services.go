package services

import (
	"context"

	"github.com/i-golovko/bb-currency/internal/core/domain"
	"github.com/i-golovko/bb-currency/internal/dto"
)

// ProviderReaderSvc defines read operations for provider configuration
type ProviderReaderSvc interface {
	// GetProviderByName retrieves a specific provider by its unique name.
	GetProviderByName(ctx context.Context, name string) (*domain.Provider, error)

	// ListProviders retrieves all providers ordered by ascending priority.
	ListProviders(ctx context.Context) ([]domain.Provider, error)
}

// ProviderWriterSvc defines write operations for provider configuration
type ProviderWriterSvc interface {
	// CreateProvider persists a new provider configuration.
	CreateProvider(ctx context.Context, req dto.CreateProviderRequest) (*domain.Provider, error)

	// UpdateProvider replaces the configuration of an existing provider.
	UpdateProvider(ctx context.Context, name string, req dto.UpdateProviderRequest) (*domain.Provider, error)
}

// ProviderSvcFacade combines all provider-related service interfaces
type ProviderSvcFacade interface {
	ProviderReaderSvc
	ProviderWriterSvc
}
