package dto

import "github.com/supportflow/opsdash/internal/domain"

// CreateAutomationRuleRequest payload.
type CreateAutomationRuleRequest struct {
	Name        string           `json:"name"`
	Description *string          `json:"description"`
	Conditions  *domain.Document `json:"conditions"`
	Actions     *domain.Document `json:"actions"`
	IsActive    *bool            `json:"isActive"`
	PlatformID  *string          `json:"platformId"`
	Priority    *int             `json:"priority"`
}

// Validate returns per-field problems, or nil when the payload is valid.
func (r CreateAutomationRuleRequest) Validate() map[string]any {
	details := map[string]any{}
	requireString(details, "name", r.Name)
	if r.Conditions == nil {
		details["conditions"] = "required"
	}
	if r.Actions == nil {
		details["actions"] = "required"
	}
	if len(details) == 0 {
		return nil
	}
	return details
}

// ToDomain builds the rule with defaults resolved.
func (r CreateAutomationRuleRequest) ToDomain() domain.AutomationRule {
	rule := domain.AutomationRule{
		Name:     r.Name,
		IsActive: true,
		Priority: 1,
	}
	if r.Description != nil {
		rule.Description = *r.Description
	}
	if r.Conditions != nil {
		rule.Conditions = r.Conditions.Clone()
	}
	if r.Actions != nil {
		rule.Actions = r.Actions.Clone()
	}
	if r.IsActive != nil {
		rule.IsActive = *r.IsActive
	}
	if r.PlatformID != nil {
		rule.PlatformID = *r.PlatformID
	}
	if r.Priority != nil {
		rule.Priority = *r.Priority
	}
	return rule
}
