package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/i-golovko/bb-currency/internal/apperrors"
	portssvc "github.com/i-golovko/bb-currency/internal/core/ports/services"
	"github.com/i-golovko/bb-currency/internal/dto"
	"github.com/i-golovko/bb-currency/internal/middleware"
	"github.com/i-golovko/bb-currency/internal/utils/fxmath"
)

const dateLayout = "2006-01-02"

// rateHandler handles HTTP requests for rate listings, conversion and
// weighted return series.
type rateHandler struct {
	currencyService portssvc.CurrencySvcFacade
	fetchService    portssvc.RateFetchSvc
	historyService  portssvc.RateHistorySvc
	twrrService     portssvc.TwrrSvc
}

// registerRateRoutes registers the rate query routes.
func registerRateRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := &rateHandler{
		currencyService: services.Currency,
		fetchService:    services.RateFetch,
		historyService:  services.RateHistory,
		twrrService:     services.Twrr,
	}

	rg.GET("/rates", h.listRatesForPeriod)
	rg.GET("/convert", h.convertAmount)
	rg.GET("/twrr", h.getWeightedROR)
}

// listRatesForPeriod godoc
// @Summary List exchange rates for a period
// @Description Returns the daily rates of the source currency against every other configured currency for the given date range
// @Tags rates
// @Produce  json
// @Param   source_currency query string true "Source currency code"
// @Param   date_from query string true "Start date (YYYY-MM-DD)"
// @Param   date_to query string true "End date (YYYY-MM-DD)"
// @Success 200 {array} dto.RateMapResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Failed to retrieve rates"
// @Router /rates [get]
func (h *rateHandler) listRatesForPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RatesForPeriodRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	sourceCode := strings.ToUpper(req.SourceCurrency)

	dateFrom, err := time.Parse(dateLayout, req.DateFrom)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date_from must be formatted as YYYY-MM-DD"})
		return
	}
	dateTo, err := time.Parse(dateLayout, req.DateTo)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date_to must be formatted as YYYY-MM-DD"})
		return
	}
	if dateTo.Before(dateFrom) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date_to must not precede date_from"})
		return
	}

	otherCurrencies, err := h.otherCurrencyCodes(c, sourceCode)
	if err != nil {
		logger.Error("Failed to list currencies", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve rates"})
		return
	}

	rateMaps, err := h.historyService.GetRatesForPeriodWithBackfill(
		c.Request.Context(), sourceCode, otherCurrencies, dateFrom, dateTo)
	if err != nil {
		logger.Error("Failed to get rates for period", slog.String("error", err.Error()), slog.String("source", sourceCode))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve rates"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListRateMapResponse(rateMaps))
}

// convertAmount godoc
// @Summary Convert an amount at the latest rate
// @Description Converts an amount of the source currency into the exchanged currency using the latest available rate
// @Tags rates
// @Produce  json
// @Param   source_currency query string true "Source currency code"
// @Param   exchanged_currency query string true "Exchanged currency code"
// @Param   amount query string true "Amount to convert"
// @Success 200 {object} dto.ConvertResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 502 {object} map[string]string "No provider could serve the rate"
// @Failure 500 {object} map[string]string "Failed to convert"
// @Router /convert [get]
func (h *rateHandler) convertAmount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ConvertRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	sourceCode := strings.ToUpper(req.SourceCurrency)
	exchangedCode := strings.ToUpper(req.ExchangedCurrency)

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || amount.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be a non-negative number"})
		return
	}

	rate, err := h.fetchService.FetchLatestRate(c.Request.Context(), sourceCode, exchangedCode)
	if err != nil {
		logger.Error("Failed to fetch latest rate", slog.String("error", err.Error()),
			slog.String("source", sourceCode), slog.String("exchanged", exchangedCode))
		if errors.Is(err, apperrors.ErrConfiguration) || errors.Is(err, apperrors.ErrDataIntegrity) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch latest rates"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to convert"})
		}
		return
	}
	if rate == nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch latest rates"})
		return
	}

	c.JSON(http.StatusOK, dto.ConvertResponse{
		SourceCurrency:    sourceCode,
		ExchangedCurrency: exchangedCode,
		Amount:            amount,
		Rate:              *rate,
		ConvertedAmount:   fxmath.Round(amount.Mul(*rate)),
	})
}

// getWeightedROR godoc
// @Summary Time-weighted rate of return
// @Description Daily time-weighted rates of return for an amount invested from the source currency into the exchanged one, from the start date until today
// @Tags rates
// @Produce  json
// @Param   source_currency query string true "Source currency code"
// @Param   exchanged_currency query string true "Exchanged currency code"
// @Param   amount query string true "Invested amount"
// @Param   start_date query string true "Investment date (YYYY-MM-DD)"
// @Success 200 {object} dto.TwrrResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Failed to compute series"
// @Router /twrr [get]
func (h *rateHandler) getWeightedROR(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.TwrrRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	sourceCode := strings.ToUpper(req.SourceCurrency)
	exchangedCode := strings.ToUpper(req.ExchangedCurrency)

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || amount.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be a non-negative number"})
		return
	}
	startDate, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_date must be formatted as YYYY-MM-DD"})
		return
	}

	result, err := h.twrrService.GetWeightedROR(
		c.Request.Context(), sourceCode, exchangedCode, amount, startDate)
	if err != nil {
		logger.Error("Failed to compute weighted ROR", slog.String("error", err.Error()),
			slog.String("source", sourceCode), slog.String("exchanged", exchangedCode))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute weighted rate of return"})
		return
	}

	c.JSON(http.StatusOK, dto.ToTwrrResponse(result))
}

// otherCurrencyCodes returns every configured currency code except the given
// one, mirroring the "all other currencies" scope of the period listing.
func (h *rateHandler) otherCurrencyCodes(c *gin.Context, except string) ([]string, error) {
	currencies, err := h.currencyService.ListCurrencies(c.Request.Context())
	if err != nil {
		return nil, err
	}
	codes := make([]string, 0, len(currencies))
	for _, curr := range currencies {
		if curr.CurrencyCode == except {
			continue
		}
		codes = append(codes, curr.CurrencyCode)
	}
	return codes, nil
}
