package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/i-golovko/bb-currency/internal/apperrors"
	"github.com/i-golovko/bb-currency/internal/core/domain"
	portsrepo "github.com/i-golovko/bb-currency/internal/core/ports/repositories"
	"github.com/i-golovko/bb-currency/internal/dto"
	"github.com/i-golovko/bb-currency/internal/middleware"
)

// ProviderService provides business logic for rate provider configuration.
type ProviderService struct {
	providerRepo portsrepo.ProviderRepositoryFacade
}

// NewProviderService creates a new ProviderService.
func NewProviderService(providerRepo portsrepo.ProviderRepositoryFacade) *ProviderService {
	return &ProviderService{providerRepo: providerRepo}
}

// CreateProvider registers a new rate provider.
func (s *ProviderService) CreateProvider(ctx context.Context, req dto.CreateProviderRequest) (*domain.Provider, error) {
	if err := validateProviderConfig(req.ResourceType, req.Config); err != nil {
		return nil, err
	}

	now := time.Now()
	provider := domain.Provider{
		ProviderID:        uuid.NewString(),
		Name:              req.Name,
		Priority:          req.Priority,
		Address:           req.Address,
		ResourceType:      domain.ResourceType(req.ResourceType),
		ForceBaseCurrency: strings.ToUpper(req.ForceBaseCurrency),
		Config:            req.Config,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.providerRepo.SaveProvider(ctx, provider); err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to save provider", "error", err, "provider_name", provider.Name)
		return nil, fmt.Errorf("failed to create provider in service: %w", err)
	}

	return &provider, nil
}

// UpdateProvider replaces the configuration of an existing provider.
func (s *ProviderService) UpdateProvider(ctx context.Context, name string, req dto.UpdateProviderRequest) (*domain.Provider, error) {
	if err := validateProviderConfig(req.ResourceType, req.Config); err != nil {
		return nil, err
	}

	existing, err := s.providerRepo.FindProviderByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to find provider %q for update: %w", name, err)
	}

	existing.Priority = req.Priority
	existing.Address = req.Address
	existing.ResourceType = domain.ResourceType(req.ResourceType)
	existing.ForceBaseCurrency = strings.ToUpper(req.ForceBaseCurrency)
	existing.Config = req.Config
	existing.LastUpdatedAt = time.Now()

	if err := s.providerRepo.UpdateProvider(ctx, *existing); err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to update provider", "error", err, "provider_name", name)
		return nil, fmt.Errorf("failed to update provider in service: %w", err)
	}

	return existing, nil
}

// GetProviderByName retrieves a specific provider by its unique name.
func (s *ProviderService) GetProviderByName(ctx context.Context, name string) (*domain.Provider, error) {
	provider, err := s.providerRepo.FindProviderByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to get provider by name in service: %w", err)
	}
	return provider, nil
}

// ListProviders retrieves all providers ordered by ascending priority.
func (s *ProviderService) ListProviders(ctx context.Context) ([]domain.Provider, error) {
	providers, err := s.providerRepo.ListProvidersByPriority(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list providers in service: %w", err)
	}
	if providers == nil {
		return []domain.Provider{}, nil
	}
	return providers, nil
}

// validateProviderConfig rejects configurations the adapters could never
// serve, so broken providers are caught at registration time rather than
// during a fetch.
func validateProviderConfig(resourceType string, cfg domain.ProviderConfig) error {
	switch domain.ResourceType(resourceType) {
	case domain.ResourceTypeHTTP, domain.ResourceTypeJSON:
	default:
		return fmt.Errorf("%w: unsupported resource type %q", apperrors.ErrValidation, resourceType)
	}
	if cfg.Endpoints.Latest.Request.Path == "" || cfg.Endpoints.Historical.Request.Path == "" {
		return fmt.Errorf("%w: provider config must name both endpoint paths", apperrors.ErrValidation)
	}
	return nil
}
