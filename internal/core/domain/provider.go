package domain

// ResourceType identifies the adapter variant a provider is served by.
type ResourceType string

const (
	// ResourceTypeHTTP is a remote JSON API queried over HTTP.
	ResourceTypeHTTP ResourceType = "http"
	// ResourceTypeJSON is a local JSON snapshot file.
	ResourceTypeJSON ResourceType = "json"
)

// Provider is the configuration record for one external rate source.
// Providers are edited administratively and read-only at fetch time; lower
// Priority values are tried first.
type Provider struct {
	ProviderID string `json:"providerID"` // Primary Key (UUID)
	Name       string `json:"name"`       // unique
	Priority   int    `json:"priority"`
	// Address is the base URL for http providers or the filesystem root for
	// json providers.
	Address      string       `json:"address"`
	ResourceType ResourceType `json:"resourceType"`
	// ForceBaseCurrency is set when the provider only reports rates relative
	// to one fixed base currency; empty otherwise.
	ForceBaseCurrency string         `json:"forceBaseCurrency,omitempty"`
	Config            ProviderConfig `json:"config"`
	AuditFields
}

// ProviderConfig describes how to talk to a provider's latest and historical
// endpoints and where its responses keep the rate mapping.
type ProviderConfig struct {
	Auth      AuthConfig      `json:"auth"`
	Endpoints EndpointsConfig `json:"endpoints"`
}

type AuthConfig struct {
	AccessKey string `json:"access_key"`
}

type EndpointsConfig struct {
	Latest     EndpointConfig `json:"latest"`
	Historical EndpointConfig `json:"historical"`
}

type EndpointConfig struct {
	Request  RequestConfig  `json:"request"`
	Response ResponseConfig `json:"response"`
}

// RequestConfig holds the endpoint path (historical paths may contain a $date
// token) and the provider's names for the query arguments.
type RequestConfig struct {
	Path string     `json:"path"`
	Args ArgsConfig `json:"args"`
}

type ArgsConfig struct {
	SourceCurrencyCode    string `json:"source_currency_code"`
	ExchangedCurrencyCode string `json:"exchanged_currency_code"`
}

// ResponseConfig names the response field that carries the rate mapping.
type ResponseConfig struct {
	Path string `json:"path"`
}
