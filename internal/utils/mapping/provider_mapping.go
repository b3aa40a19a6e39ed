package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/i-golovko/bb-currency/internal/core/domain"
	"github.com/i-golovko/bb-currency/internal/models"
)

// ToModelProvider converts a domain Provider to a model Provider, serializing
// the endpoint configuration for the JSONB column.
func ToModelProvider(d domain.Provider) (models.Provider, error) {
	rawConfig, err := json.Marshal(d.Config)
	if err != nil {
		return models.Provider{}, fmt.Errorf("failed to marshal provider config: %w", err)
	}
	return models.Provider{
		ProviderID:        d.ProviderID,
		Name:              d.Name,
		Priority:          d.Priority,
		Address:           d.Address,
		ResourceType:      string(d.ResourceType),
		ForceBaseCurrency: d.ForceBaseCurrency,
		Config:            rawConfig,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}, nil
}

// ToDomainProvider converts a model Provider to a domain Provider.
func ToDomainProvider(m models.Provider) (domain.Provider, error) {
	var cfg domain.ProviderConfig
	if len(m.Config) > 0 {
		if err := json.Unmarshal(m.Config, &cfg); err != nil {
			return domain.Provider{}, fmt.Errorf("failed to unmarshal config of provider %s: %w", m.Name, err)
		}
	}
	return domain.Provider{
		ProviderID:        m.ProviderID,
		Name:              m.Name,
		Priority:          m.Priority,
		Address:           m.Address,
		ResourceType:      domain.ResourceType(m.ResourceType),
		ForceBaseCurrency: m.ForceBaseCurrency,
		Config:            cfg,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}, nil
}
