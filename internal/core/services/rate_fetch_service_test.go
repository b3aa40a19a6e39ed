package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/i-golovko/bb-currency/internal/adapters/rateprovider"
	"github.com/i-golovko/bb-currency/internal/apperrors"
	"github.com/i-golovko/bb-currency/internal/core/domain"
	"github.com/i-golovko/bb-currency/internal/core/services"
)

// --- Mock ProviderRepository ---
type MockProviderRepository struct {
	mock.Mock
}

func (m *MockProviderRepository) FindProviderByName(ctx context.Context, name string) (*domain.Provider, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Provider), args.Error(1)
}

func (m *MockProviderRepository) ListProvidersByPriority(ctx context.Context) ([]domain.Provider, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Provider), args.Error(1)
}

func (m *MockProviderRepository) SaveProvider(ctx context.Context, provider domain.Provider) error {
	args := m.Called(ctx, provider)
	return args.Error(0)
}

func (m *MockProviderRepository) UpdateProvider(ctx context.Context, provider domain.Provider) error {
	args := m.Called(ctx, provider)
	return args.Error(0)
}

// --- Mock ExchangeRateRepository ---
type MockExchangeRateRepository struct {
	mock.Mock
}

func (m *MockExchangeRateRepository) FindRatesInRange(ctx context.Context, sourceCode *string, exchangedCodes []string, from, to time.Time) ([]domain.ExchangeRate, error) {
	args := m.Called(ctx, sourceCode, exchangedCodes, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) SaveExchangeRates(ctx context.Context, rates []domain.ExchangeRate) error {
	args := m.Called(ctx, rates)
	return args.Error(0)
}

// --- Stub adapter ---

// stubAdapter lets each test script adapter behavior per provider name.
type stubAdapter struct {
	latest      func(ctx context.Context, sourceCode, exchangedCode string) (decimal.Decimal, error)
	latestMulti func(ctx context.Context, sourceCode string, exchangedCodes []string) (map[string]decimal.Decimal, error)
	historical  func(ctx context.Context, sourceCode string, exchangedCodes []string, valuationDate time.Time) (*domain.RateMap, error)
}

func (s *stubAdapter) GetLatestRate(ctx context.Context, sourceCode, exchangedCode string) (decimal.Decimal, error) {
	return s.latest(ctx, sourceCode, exchangedCode)
}

func (s *stubAdapter) GetLatestRates(ctx context.Context, sourceCode string, exchangedCodes []string) (map[string]decimal.Decimal, error) {
	return s.latestMulti(ctx, sourceCode, exchangedCodes)
}

func (s *stubAdapter) GetHistoricalRates(ctx context.Context, sourceCode string, exchangedCodes []string, valuationDate time.Time) (*domain.RateMap, error) {
	return s.historical(ctx, sourceCode, exchangedCodes, valuationDate)
}

func factoryFor(adapters map[string]rateprovider.RateAdapter) rateprovider.Factory {
	return func(provider domain.Provider) (rateprovider.RateAdapter, error) {
		adapter, ok := adapters[provider.Name]
		if !ok {
			return nil, apperrors.ErrConfiguration
		}
		return adapter, nil
	}
}

// --- Test Suite ---
type RateFetchServiceTestSuite struct {
	suite.Suite
	mockProviderRepo *MockProviderRepository
	mockCurrencyRepo *MockCurrencyRepository
	mockRateRepo     *MockExchangeRateRepository
}

func (suite *RateFetchServiceTestSuite) SetupTest() {
	suite.mockProviderRepo = new(MockProviderRepository)
	suite.mockCurrencyRepo = new(MockCurrencyRepository)
	suite.mockRateRepo = new(MockExchangeRateRepository)
}

func (suite *RateFetchServiceTestSuite) newService(adapters map[string]rateprovider.RateAdapter) *services.RateFetchService {
	return services.NewRateFetchService(
		suite.mockProviderRepo,
		suite.mockCurrencyRepo,
		suite.mockRateRepo,
		factoryFor(adapters),
	)
}

func provider(name string, priority int, forcedBase string) domain.Provider {
	return domain.Provider{
		Name:              name,
		Priority:          priority,
		ResourceType:      domain.ResourceTypeHTTP,
		ForceBaseCurrency: forcedBase,
	}
}

func (suite *RateFetchServiceTestSuite) TestFetchLatestRate_FirstProviderWins() {
	ctx := context.Background()
	providers := []domain.Provider{provider("primary", 1, ""), provider("secondary", 2, "")}
	suite.mockProviderRepo.On("ListProvidersByPriority", ctx).Return(providers, nil).Once()

	adapters := map[string]rateprovider.RateAdapter{
		"primary": &stubAdapter{
			latest: func(_ context.Context, _, _ string) (decimal.Decimal, error) {
				return decimal.RequireFromString("1.087"), nil
			},
		},
	}
	svc := suite.newService(adapters)

	rate, err := svc.FetchLatestRate(ctx, "EUR", "USD")

	suite.Require().NoError(err)
	suite.Require().NotNil(rate)
	suite.True(rate.Equal(decimal.RequireFromString("1.087")))
	suite.mockProviderRepo.AssertExpectations(suite.T())
}

func (suite *RateFetchServiceTestSuite) TestFetchLatestRate_FallsBackOnProviderError() {
	ctx := context.Background()
	providers := []domain.Provider{provider("flaky", 1, ""), provider("stable", 2, "")}
	suite.mockProviderRepo.On("ListProvidersByPriority", ctx).Return(providers, nil).Once()

	adapters := map[string]rateprovider.RateAdapter{
		"flaky": &stubAdapter{
			latest: func(_ context.Context, _, _ string) (decimal.Decimal, error) {
				return decimal.Zero, apperrors.ErrProvider
			},
		},
		"stable": &stubAdapter{
			latest: func(_ context.Context, _, _ string) (decimal.Decimal, error) {
				return decimal.RequireFromString("0.92"), nil
			},
		},
	}
	svc := suite.newService(adapters)

	rate, err := svc.FetchLatestRate(ctx, "EUR", "USD")

	suite.Require().NoError(err)
	suite.Require().NotNil(rate)
	suite.True(rate.Equal(decimal.RequireFromString("0.92")))
}

func (suite *RateFetchServiceTestSuite) TestFetchLatestRate_SkipsZeroResults() {
	ctx := context.Background()
	providers := []domain.Provider{provider("empty", 1, ""), provider("full", 2, "")}
	suite.mockProviderRepo.On("ListProvidersByPriority", ctx).Return(providers, nil).Once()

	adapters := map[string]rateprovider.RateAdapter{
		"empty": &stubAdapter{
			latest: func(_ context.Context, _, _ string) (decimal.Decimal, error) {
				return decimal.Zero, nil
			},
		},
		"full": &stubAdapter{
			latest: func(_ context.Context, _, _ string) (decimal.Decimal, error) {
				return decimal.RequireFromString("1.1"), nil
			},
		},
	}
	svc := suite.newService(adapters)

	rate, err := svc.FetchLatestRate(ctx, "EUR", "USD")

	suite.Require().NoError(err)
	suite.Require().NotNil(rate)
	suite.True(rate.Equal(decimal.RequireFromString("1.1")), "got %s", rate)
}

func (suite *RateFetchServiceTestSuite) TestFetchLatestRate_Exhaustion() {
	ctx := context.Background()
	providers := []domain.Provider{provider("a", 1, ""), provider("b", 2, "")}
	suite.mockProviderRepo.On("ListProvidersByPriority", ctx).Return(providers, nil).Once()

	failing := &stubAdapter{
		latest: func(_ context.Context, _, _ string) (decimal.Decimal, error) {
			return decimal.Zero, apperrors.ErrProvider
		},
	}
	svc := suite.newService(map[string]rateprovider.RateAdapter{"a": failing, "b": failing})

	rate, err := svc.FetchLatestRate(ctx, "EUR", "USD")

	suite.Require().NoError(err)
	suite.Nil(rate)
}

func (suite *RateFetchServiceTestSuite) TestFetchLatestRate_ConfigurationErrorAborts() {
	ctx := context.Background()
	providers := []domain.Provider{provider("broken", 1, ""), provider("never-reached", 2, "")}
	suite.mockProviderRepo.On("ListProvidersByPriority", ctx).Return(providers, nil).Once()

	// Factory knows neither provider, so adapter construction fails.
	svc := suite.newService(map[string]rateprovider.RateAdapter{})

	rate, err := svc.FetchLatestRate(ctx, "EUR", "USD")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConfiguration)
	suite.Nil(rate)
}

func (suite *RateFetchServiceTestSuite) TestFetchLatestRate_ForcedBaseRebasing() {
	ctx := context.Background()
	providers := []domain.Provider{provider("usd-only", 1, "USD")}
	suite.mockProviderRepo.On("ListProvidersByPriority", ctx).Return(providers, nil).Once()

	adapters := map[string]rateprovider.RateAdapter{
		"usd-only": &stubAdapter{
			latestMulti: func(_ context.Context, sourceCode string, _ []string) (map[string]decimal.Decimal, error) {
				suite.Equal("USD", sourceCode)
				return map[string]decimal.Decimal{
					"EUR": decimal.RequireFromString("1.1"),
					"GBP": decimal.RequireFromString("0.9"),
				}, nil
			},
		},
	}
	svc := suite.newService(adapters)

	rate, err := svc.FetchLatestRate(ctx, "EUR", "GBP")

	suite.Require().NoError(err)
	suite.Require().NotNil(rate)
	// 1.1 / 0.9 rounded to six decimal places
	suite.True(rate.Round(6).Equal(decimal.RequireFromString("1.222222")), "got %s", rate)
}

func (suite *RateFetchServiceTestSuite) TestFetchHistoricalRates_PersistsOnSuccess() {
	ctx := context.Background()
	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	providers := []domain.Provider{provider("primary", 1, "")}
	suite.mockProviderRepo.On("ListProvidersByPriority", ctx).Return(providers, nil).Once()
	suite.mockCurrencyRepo.On("ListCurrencies", ctx).Return([]domain.Currency{
		{CurrencyCode: "EUR"}, {CurrencyCode: "USD"}, {CurrencyCode: "GBP"},
	}, nil).Once()
	suite.mockRateRepo.On("SaveExchangeRates", ctx, mock.MatchedBy(func(rows []domain.ExchangeRate) bool {
		if len(rows) != 2 {
			return false
		}
		for _, row := range rows {
			if row.SourceCurrencyCode != "EUR" || !row.ValuationDate.Equal(date) {
				return false
			}
		}
		return true
	})).Return(nil).Once()

	adapters := map[string]rateprovider.RateAdapter{
		"primary": &stubAdapter{
			historical: func(_ context.Context, sourceCode string, _ []string, valuationDate time.Time) (*domain.RateMap, error) {
				return &domain.RateMap{
					Date: valuationDate,
					Base: sourceCode,
					Rates: map[string]decimal.Decimal{
						"USD": decimal.RequireFromString("1.087"),
						"GBP": decimal.RequireFromString("0.856"),
					},
				}, nil
			},
		},
	}
	svc := suite.newService(adapters)

	rateMap, err := svc.FetchHistoricalRates(ctx, "EUR", []string{"USD", "GBP"}, date)

	suite.Require().NoError(err)
	suite.Require().NotNil(rateMap)
	suite.Equal("EUR", rateMap.Base)
	suite.Len(rateMap.Rates, 2)
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *RateFetchServiceTestSuite) TestFetchHistoricalRates_UnknownCurrencyIsFatal() {
	ctx := context.Background()
	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	providers := []domain.Provider{provider("primary", 1, "")}
	suite.mockProviderRepo.On("ListProvidersByPriority", ctx).Return(providers, nil).Once()
	suite.mockCurrencyRepo.On("ListCurrencies", ctx).Return([]domain.Currency{
		{CurrencyCode: "EUR"},
	}, nil).Once()

	adapters := map[string]rateprovider.RateAdapter{
		"primary": &stubAdapter{
			historical: func(_ context.Context, sourceCode string, _ []string, valuationDate time.Time) (*domain.RateMap, error) {
				return &domain.RateMap{
					Date:  valuationDate,
					Base:  sourceCode,
					Rates: map[string]decimal.Decimal{"XXX": decimal.RequireFromString("42")},
				}, nil
			},
		},
	}
	svc := suite.newService(adapters)

	rateMap, err := svc.FetchHistoricalRates(ctx, "EUR", []string{"XXX"}, date)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDataIntegrity)
	suite.Nil(rateMap)
	suite.mockRateRepo.AssertNotCalled(suite.T(), "SaveExchangeRates")
}

func (suite *RateFetchServiceTestSuite) TestFetchHistoricalRates_SkipsEmptyResults() {
	ctx := context.Background()
	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	providers := []domain.Provider{provider("empty", 1, ""), provider("full", 2, "")}
	suite.mockProviderRepo.On("ListProvidersByPriority", ctx).Return(providers, nil).Once()
	suite.mockCurrencyRepo.On("ListCurrencies", ctx).Return([]domain.Currency{
		{CurrencyCode: "EUR"}, {CurrencyCode: "USD"},
	}, nil).Once()
	suite.mockRateRepo.On("SaveExchangeRates", ctx, mock.Anything).Return(nil).Once()

	adapters := map[string]rateprovider.RateAdapter{
		"empty": &stubAdapter{
			historical: func(_ context.Context, _ string, _ []string, _ time.Time) (*domain.RateMap, error) {
				return nil, nil
			},
		},
		"full": &stubAdapter{
			historical: func(_ context.Context, sourceCode string, _ []string, valuationDate time.Time) (*domain.RateMap, error) {
				return &domain.RateMap{
					Date:  valuationDate,
					Base:  sourceCode,
					Rates: map[string]decimal.Decimal{"USD": decimal.RequireFromString("1.09")},
				}, nil
			},
		},
	}
	svc := suite.newService(adapters)

	rateMap, err := svc.FetchHistoricalRates(ctx, "EUR", []string{"USD"}, date)

	suite.Require().NoError(err)
	suite.Require().NotNil(rateMap)
	suite.True(rateMap.Rates["USD"].Equal(decimal.RequireFromString("1.09")))
}

func (suite *RateFetchServiceTestSuite) TestFetchHistoricalRates_Exhaustion() {
	ctx := context.Background()
	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	providers := []domain.Provider{provider("a", 1, "")}
	suite.mockProviderRepo.On("ListProvidersByPriority", ctx).Return(providers, nil).Once()

	adapters := map[string]rateprovider.RateAdapter{
		"a": &stubAdapter{
			historical: func(_ context.Context, _ string, _ []string, _ time.Time) (*domain.RateMap, error) {
				return nil, apperrors.ErrProvider
			},
		},
	}
	svc := suite.newService(adapters)

	rateMap, err := svc.FetchHistoricalRates(ctx, "EUR", []string{"USD"}, date)

	suite.Require().NoError(err)
	suite.Nil(rateMap)
	suite.mockRateRepo.AssertNotCalled(suite.T(), "SaveExchangeRates")
}

func TestRateFetchServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RateFetchServiceTestSuite))
}
