package models

// Provider stores the configuration of one external rate source. The endpoint
// description lives in a JSONB column and is unmarshalled by the repository.
type Provider struct {
	ProviderID        string `json:"providerID"` // Primary Key (UUID)
	Name              string `json:"name"`
	Priority          int    `json:"priority"`
	Address           string `json:"address"`
	ResourceType      string `json:"resourceType"`
	ForceBaseCurrency string `json:"forceBaseCurrency,omitempty"`
	Config            []byte `json:"config"` // raw JSONB payload
	AuditFields
}
