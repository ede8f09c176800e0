package domain

// Platform is a ticketing system category (Jira, ServiceNow, Zoho, ...)
// that integrations and tickets are associated with.
type Platform struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	Icon     string `json:"icon"`
	Color    string `json:"color"`
	IsActive bool   `json:"isActive"`
}
