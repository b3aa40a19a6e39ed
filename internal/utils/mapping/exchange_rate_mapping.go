package mapping

import (
	"github.com/i-golovko/bb-currency/internal/core/domain"
	"github.com/i-golovko/bb-currency/internal/models"
)

// ToModelExchangeRate converts a domain ExchangeRate to a model ExchangeRate
func ToModelExchangeRate(d domain.ExchangeRate) models.ExchangeRate {
	return models.ExchangeRate{
		ExchangeRateID:        d.ExchangeRateID,
		SourceCurrencyCode:    d.SourceCurrencyCode,
		ExchangedCurrencyCode: d.ExchangedCurrencyCode,
		ValuationDate:         d.ValuationDate,
		RateValue:             d.RateValue,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

// ToDomainExchangeRate converts a model ExchangeRate to a domain ExchangeRate
func ToDomainExchangeRate(m models.ExchangeRate) domain.ExchangeRate {
	return domain.ExchangeRate{
		ExchangeRateID:        m.ExchangeRateID,
		SourceCurrencyCode:    m.SourceCurrencyCode,
		ExchangedCurrencyCode: m.ExchangedCurrencyCode,
		ValuationDate:         m.ValuationDate,
		RateValue:             m.RateValue,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}
