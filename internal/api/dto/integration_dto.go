package dto

import "github.com/supportflow/opsdash/internal/domain"

// CreateIntegrationRequest payload.
type CreateIntegrationRequest struct {
	PlatformID  string           `json:"platformId"`
	Name        string           `json:"name"`
	APIEndpoint string           `json:"apiEndpoint"`
	Username    *string          `json:"username"`
	APIToken    string           `json:"apiToken"`
	Config      *domain.Document `json:"config"`
	IsActive    *bool            `json:"isActive"`
}

// Validate returns per-field problems, or nil when the payload is valid.
func (r CreateIntegrationRequest) Validate() map[string]any {
	details := map[string]any{}
	requireString(details, "platformId", r.PlatformID)
	requireString(details, "name", r.Name)
	requireString(details, "apiEndpoint", r.APIEndpoint)
	requireString(details, "apiToken", r.APIToken)
	if len(details) == 0 {
		return nil
	}
	return details
}

// ToDomain builds the integration with defaults resolved. LastSync is
// always nil on create.
func (r CreateIntegrationRequest) ToDomain() domain.Integration {
	integration := domain.Integration{
		PlatformID:  r.PlatformID,
		Name:        r.Name,
		APIEndpoint: r.APIEndpoint,
		APIToken:    r.APIToken,
		IsActive:    true,
	}
	if r.Username != nil {
		integration.Username = *r.Username
	}
	if r.Config != nil {
		integration.Config = r.Config.Clone()
	}
	if r.IsActive != nil {
		integration.IsActive = *r.IsActive
	}
	return integration
}
