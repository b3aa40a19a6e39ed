package services

// ServiceContainer holds all service interfaces needed by the HTTP layer and
// background tasks.
type ServiceContainer struct {
	Currency    CurrencySvcFacade
	Provider    ProviderSvcFacade
	RateFetch   RateFetchSvc
	RateHistory RateHistorySvc
	Twrr        TwrrSvc
}
