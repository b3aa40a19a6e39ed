package rateprovider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/i-golovko/bb-currency/internal/apperrors"
	"github.com/i-golovko/bb-currency/internal/core/domain"
	"github.com/shopspring/decimal"
)

// HTTPAdapter queries a remote JSON rate API. Request paths, query argument
// names, the access key and the response field holding the rate mapping all
// come from the provider configuration; historical paths may carry a $date
// token that is substituted per call.
type HTTPAdapter struct {
	address string
	cfg     domain.ProviderConfig
	client  *http.Client
}

// NewHTTPAdapter validates the endpoint configuration and builds the adapter.
func NewHTTPAdapter(address string, cfg domain.ProviderConfig, timeout time.Duration) (*HTTPAdapter, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	if cfg.Endpoints.Latest.Request.Args.SourceCurrencyCode == "" ||
		cfg.Endpoints.Latest.Request.Args.ExchangedCurrencyCode == "" {
		return nil, fmt.Errorf("%w: latest endpoint argument names are empty", apperrors.ErrConfiguration)
	}
	if cfg.Endpoints.Historical.Request.Args.SourceCurrencyCode == "" ||
		cfg.Endpoints.Historical.Request.Args.ExchangedCurrencyCode == "" {
		return nil, fmt.Errorf("%w: historical endpoint argument names are empty", apperrors.ErrConfiguration)
	}
	if cfg.Endpoints.Latest.Response.Path == "" || cfg.Endpoints.Historical.Response.Path == "" {
		return nil, fmt.Errorf("%w: response field name is empty", apperrors.ErrConfiguration)
	}
	return &HTTPAdapter{
		address: address,
		cfg:     cfg,
		client:  &http.Client{Timeout: timeout},
	}, nil
}

// GetLatestRate fetches the most recent rate for a single currency pair.
func (a *HTTPAdapter) GetLatestRate(ctx context.Context, sourceCode, exchangedCode string) (decimal.Decimal, error) {
	rates, err := a.fetchLatest(ctx, sourceCode, exchangedCode)
	if err != nil {
		return decimal.Zero, err
	}
	rate, ok := rates[exchangedCode]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: no rate for %s in response", apperrors.ErrProvider, exchangedCode)
	}
	return rate, nil
}

// GetLatestRates fetches the most recent rates against several currencies in
// one request; the codes are comma-joined on the wire, as the providers
// expect.
func (a *HTTPAdapter) GetLatestRates(ctx context.Context, sourceCode string, exchangedCodes []string) (map[string]decimal.Decimal, error) {
	return a.fetchLatest(ctx, sourceCode, strings.Join(exchangedCodes, ","))
}

// GetHistoricalRates fetches rates for one valuation date.
func (a *HTTPAdapter) GetHistoricalRates(ctx context.Context, sourceCode string, exchangedCodes []string, valuationDate time.Time) (*domain.RateMap, error) {
	endpoint := a.cfg.Endpoints.Historical
	path := strings.ReplaceAll(endpoint.Request.Path, "$date", valuationDate.Format(dateLayout))

	rates, err := a.doRequest(ctx, path, endpoint, sourceCode, strings.Join(exchangedCodes, ","))
	if err != nil {
		return nil, err
	}
	return &domain.RateMap{
		Date:  valuationDate,
		Base:  sourceCode,
		Rates: rates,
	}, nil
}

func (a *HTTPAdapter) fetchLatest(ctx context.Context, sourceCode, exchangedParam string) (map[string]decimal.Decimal, error) {
	endpoint := a.cfg.Endpoints.Latest
	return a.doRequest(ctx, endpoint.Request.Path, endpoint, sourceCode, exchangedParam)
}

// doRequest performs the parameterized GET and extracts the configured
// response field. Transport failures and non-2xx statuses are provider
// errors: a dead source must not abort the fallback chain.
func (a *HTTPAdapter) doRequest(ctx context.Context, path string, endpoint domain.EndpointConfig, sourceCode, exchangedParam string) (map[string]decimal.Decimal, error) {
	query := url.Values{}
	query.Set("access_key", a.cfg.Auth.AccessKey)
	query.Set(endpoint.Request.Args.SourceCurrencyCode, sourceCode)
	query.Set(endpoint.Request.Args.ExchangedCurrencyCode, exchangedParam)

	requestURL := a.address + path + "?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid request URL %s", apperrors.ErrConfiguration, requestURL)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: request failed: %v", apperrors.ErrProvider, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: unexpected status %d", apperrors.ErrProvider, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response body: %v", apperrors.ErrProvider, err)
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: undecodable response body: %v", apperrors.ErrProvider, err)
	}

	rawRates, ok := payload[endpoint.Response.Path]
	if !ok {
		return nil, fmt.Errorf("%w: response field %q missing", apperrors.ErrProvider, endpoint.Response.Path)
	}

	var rates map[string]decimal.Decimal
	if err := json.Unmarshal(rawRates, &rates); err != nil {
		return nil, fmt.Errorf("%w: undecodable rates field: %v", apperrors.ErrProvider, err)
	}
	if len(rates) == 0 {
		return nil, fmt.Errorf("%w: provider did not return any rates", apperrors.ErrProvider)
	}
	return rates, nil
}
