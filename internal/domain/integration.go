package domain

import "time"

// Integration is a configured connection instance to a specific platform,
// carrying credentials and settings. LastSync is nil until a connection
// test succeeds.
type Integration struct {
	ID          string     `json:"id"`
	PlatformID  string     `json:"platformId"`
	Name        string     `json:"name"`
	APIEndpoint string     `json:"apiEndpoint"`
	Username    string     `json:"username"`
	APIToken    string     `json:"apiToken"`
	Config      Document   `json:"config"`
	IsActive    bool       `json:"isActive"`
	LastSync    *time.Time `json:"lastSync"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// IntegrationUpdate carries a partial integration; nil fields are left
// untouched by the merge.
type IntegrationUpdate struct {
	Name        *string
	APIEndpoint *string
	Username    *string
	APIToken    *string
	Config      *Document
	IsActive    *bool
	LastSync    *time.Time
}
