package services

import (
	"time"

	"github.com/i-golovko/bb-currency/internal/adapters/rateprovider"
	portsrepo "github.com/i-golovko/bb-currency/internal/core/ports/repositories"
	portssvc "github.com/i-golovko/bb-currency/internal/core/ports/services"
	"github.com/i-golovko/bb-currency/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Currency = NewCurrencyService(repos.CurrencyRepo)
	container.Provider = NewProviderService(repos.ProviderRepo)

	adapterFactory := rateprovider.NewFactory(cfg.ProviderTimeout)
	container.RateFetch = NewRateFetchService(
		repos.ProviderRepo,
		repos.CurrencyRepo,
		repos.ExchangeRateRepo,
		adapterFactory,
	)
	container.RateHistory = NewRateHistoryService(
		repos.ExchangeRateRepo,
		container.RateFetch,
		cfg.StorageBaseCurrency,
	)
	container.Twrr = NewTwrrService(container.RateHistory, time.Now)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.CurrencySvcFacade = (*CurrencyService)(nil)
	_ portssvc.ProviderSvcFacade = (*ProviderService)(nil)
	_ portssvc.RateFetchSvc      = (*RateFetchService)(nil)
	_ portssvc.RateHistorySvc    = (*RateHistoryService)(nil)
	_ portssvc.TwrrSvc           = (*TwrrService)(nil)
)
