package domain

import "time"

// AutomationRule describes a trigger/action pair evaluated against
// incoming tickets on a platform. Conditions and Actions are open
// documents authored from the rule builder UI.
type AutomationRule struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Conditions  Document  `json:"conditions"`
	Actions     Document  `json:"actions"`
	IsActive    bool      `json:"isActive"`
	PlatformID  string    `json:"platformId"`
	Priority    int       `json:"priority"`
	CreatedAt   time.Time `json:"createdAt"`
}

// AutomationRuleUpdate carries a partial rule; nil fields are left
// untouched by the merge.
type AutomationRuleUpdate struct {
	Name        *string
	Description *string
	Conditions  *Document
	Actions     *Document
	IsActive    *bool
	PlatformID  *string
	Priority    *int
}
