package dto

import (
	"time"

	"github.com/i-golovko/bb-currency/internal/core/domain"
)

// CreateProviderRequest defines the data needed to register a rate provider.
type CreateProviderRequest struct {
	Name              string                `json:"name" binding:"required"`
	Priority          int                   `json:"priority" binding:"required"`
	Address           string                `json:"address" binding:"required"`
	ResourceType      string                `json:"resourceType" binding:"required,oneof=http json"`
	ForceBaseCurrency string                `json:"forceBaseCurrency,omitempty" binding:"omitempty,currencycode"`
	Config            domain.ProviderConfig `json:"config" binding:"required"`
}

// UpdateProviderRequest carries a full replacement configuration for an
// existing provider.
type UpdateProviderRequest struct {
	Priority          int                   `json:"priority" binding:"required"`
	Address           string                `json:"address" binding:"required"`
	ResourceType      string                `json:"resourceType" binding:"required,oneof=http json"`
	ForceBaseCurrency string                `json:"forceBaseCurrency,omitempty" binding:"omitempty,currencycode"`
	Config            domain.ProviderConfig `json:"config" binding:"required"`
}

// ProviderResponse defines the data returned for a provider.
type ProviderResponse struct {
	Name              string                `json:"name"`
	Priority          int                   `json:"priority"`
	Address           string                `json:"address"`
	ResourceType      string                `json:"resourceType"`
	ForceBaseCurrency string                `json:"forceBaseCurrency,omitempty"`
	Config            domain.ProviderConfig `json:"config"`
	CreatedAt         time.Time             `json:"createdAt"`
	LastUpdatedAt     time.Time             `json:"lastUpdatedAt"`
}

// ToProviderResponse converts a domain.Provider to ProviderResponse DTO
func ToProviderResponse(p *domain.Provider) ProviderResponse {
	return ProviderResponse{
		Name:              p.Name,
		Priority:          p.Priority,
		Address:           p.Address,
		ResourceType:      string(p.ResourceType),
		ForceBaseCurrency: p.ForceBaseCurrency,
		Config:            p.Config,
		CreatedAt:         p.CreatedAt,
		LastUpdatedAt:     p.LastUpdatedAt,
	}
}

// ToListProviderResponse converts a slice of domain providers to DTOs
func ToListProviderResponse(providers []domain.Provider) []ProviderResponse {
	res := make([]ProviderResponse, len(providers))
	for i, p := range providers {
		res[i] = ToProviderResponse(&p)
	}
	return res
}
