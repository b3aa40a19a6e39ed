package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/i-golovko/bb-currency/internal/apperrors"
	"github.com/i-golovko/bb-currency/internal/core/domain"
	"github.com/i-golovko/bb-currency/internal/core/services"
)

// --- Mock RateHistorySvc ---
type MockRateHistorySvc struct {
	mock.Mock
}

func (m *MockRateHistorySvc) GetRatesForPeriod(ctx context.Context, sourceCode string, exchangedCodes []string, dateFrom, dateTo time.Time) ([]domain.RateMap, error) {
	args := m.Called(ctx, sourceCode, exchangedCodes, dateFrom, dateTo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RateMap), args.Error(1)
}

func (m *MockRateHistorySvc) GetRatesForPeriodWithBackfill(ctx context.Context, sourceCode string, exchangedCodes []string, dateFrom, dateTo time.Time) ([]domain.RateMap, error) {
	args := m.Called(ctx, sourceCode, exchangedCodes, dateFrom, dateTo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RateMap), args.Error(1)
}

// --- Test Suite ---
type TwrrServiceTestSuite struct {
	suite.Suite
	mockHistory *MockRateHistorySvc
	service     *services.TwrrService
	today       time.Time
}

func (suite *TwrrServiceTestSuite) SetupTest() {
	suite.mockHistory = new(MockRateHistorySvc)
	suite.today = time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)
	suite.service = services.NewTwrrService(suite.mockHistory, func() time.Time { return suite.today })
}

func rateDay(date time.Time, code, rate string) domain.RateMap {
	return domain.RateMap{
		Date: date,
		Base: "EUR",
		Rates: map[string]decimal.Decimal{
			code: decimal.RequireFromString(rate),
		},
	}
}

func (suite *TwrrServiceTestSuite) TestGetWeightedROR() {
	ctx := context.Background()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	amount := decimal.NewFromInt(1000)

	suite.mockHistory.On("GetRatesForPeriodWithBackfill", ctx, "EUR", []string{"USD"}, start, suite.today).
		Return([]domain.RateMap{
			rateDay(start, "USD", "1.0"),
			rateDay(start.AddDate(0, 0, 1), "USD", "1.1"),
			rateDay(suite.today, "USD", "0.99"),
		}, nil).Once()

	result, err := suite.service.GetWeightedROR(ctx, "EUR", "USD", amount, start)

	suite.Require().NoError(err)
	suite.Require().NotNil(result)
	suite.Equal("EUR", result.Base)
	suite.Equal("USD", result.Exchanged)
	suite.True(result.Amount.Equal(amount))
	suite.Equal(start, result.StartDate)

	suite.Require().Len(result.Twrr, 2)
	suite.True(result.Twrr[0].Twrr.Equal(decimal.RequireFromString("1100")), "got %s", result.Twrr[0].Twrr)
	suite.True(result.Twrr[1].Twrr.Equal(decimal.RequireFromString("990")), "got %s", result.Twrr[1].Twrr)
	suite.mockHistory.AssertExpectations(suite.T())
}

func (suite *TwrrServiceTestSuite) TestGetWeightedROR_EmptyHistory() {
	ctx := context.Background()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	suite.mockHistory.On("GetRatesForPeriodWithBackfill", ctx, "EUR", []string{"USD"}, start, suite.today).
		Return([]domain.RateMap{}, nil).Once()

	result, err := suite.service.GetWeightedROR(ctx, "EUR", "USD", decimal.NewFromInt(100), start)

	suite.Require().NoError(err)
	suite.Require().NotNil(result)
	suite.Empty(result.Twrr)
}

func (suite *TwrrServiceTestSuite) TestGetWeightedROR_MissingExchangedRate() {
	ctx := context.Background()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	suite.mockHistory.On("GetRatesForPeriodWithBackfill", ctx, "EUR", []string{"USD"}, start, suite.today).
		Return([]domain.RateMap{
			rateDay(start, "USD", "1.0"),
			rateDay(start.AddDate(0, 0, 1), "GBP", "0.85"),
		}, nil).Once()

	result, err := suite.service.GetWeightedROR(ctx, "EUR", "USD", decimal.NewFromInt(100), start)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDataIntegrity)
	suite.Nil(result)
}

func (suite *TwrrServiceTestSuite) TestGetWeightedROR_HistoryError() {
	ctx := context.Background()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	suite.mockHistory.On("GetRatesForPeriodWithBackfill", ctx, "EUR", []string{"USD"}, start, suite.today).
		Return(nil, apperrors.ErrDataIntegrity).Once()

	result, err := suite.service.GetWeightedROR(ctx, "EUR", "USD", decimal.NewFromInt(100), start)

	suite.Require().Error(err)
	suite.Nil(result)
}

func TestTwrrServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TwrrServiceTestSuite))
}
