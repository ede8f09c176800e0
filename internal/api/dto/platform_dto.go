package dto

import "github.com/supportflow/opsdash/internal/domain"

// CreatePlatformRequest payload.
type CreatePlatformRequest struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Icon     string `json:"icon"`
	Color    string `json:"color"`
	IsActive *bool  `json:"isActive"`
}

// Validate returns per-field problems, or nil when the payload is valid.
func (r CreatePlatformRequest) Validate() map[string]any {
	details := map[string]any{}
	requireString(details, "name", r.Name)
	requireString(details, "type", r.Type)
	requireString(details, "icon", r.Icon)
	requireString(details, "color", r.Color)
	if len(details) == 0 {
		return nil
	}
	return details
}

// ToDomain builds the platform with defaults resolved.
func (r CreatePlatformRequest) ToDomain() domain.Platform {
	isActive := true
	if r.IsActive != nil {
		isActive = *r.IsActive
	}
	return domain.Platform{
		Name:     r.Name,
		Type:     r.Type,
		Icon:     r.Icon,
		Color:    r.Color,
		IsActive: isActive,
	}
}
