package dto

import "github.com/supportflow/opsdash/internal/domain"

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	TicketNumber  string                 `json:"ticketNumber"`
	Subject       string                 `json:"subject"`
	Description   *string                `json:"description"`
	Priority      *domain.TicketPriority `json:"priority"`
	Status        *domain.TicketStatus   `json:"status"`
	AssignedTo    *string                `json:"assignedTo"`
	PlatformID    *string                `json:"platformId"`
	IntegrationID *string                `json:"integrationId"`
	AccountID     *string                `json:"accountId"`
	IsAutomated   *bool                  `json:"isAutomated"`
}

// Validate returns per-field problems, or nil when the payload is valid.
func (r CreateTicketRequest) Validate() map[string]any {
	details := map[string]any{}
	requireString(details, "ticketNumber", r.TicketNumber)
	requireString(details, "subject", r.Subject)
	if r.Priority != nil && !domain.ValidTicketPriority(*r.Priority) {
		details["priority"] = "must be one of low, medium, high, critical"
	}
	if r.Status != nil && !domain.ValidTicketStatus(*r.Status) {
		details["status"] = "must be one of open, in_progress, resolved, closed, escalated"
	}
	if len(details) == 0 {
		return nil
	}
	return details
}

// ToDomain builds the ticket with defaults resolved: status "open",
// priority "medium", everything else empty.
func (r CreateTicketRequest) ToDomain() domain.Ticket {
	ticket := domain.Ticket{
		TicketNumber: r.TicketNumber,
		Subject:      r.Subject,
		Priority:     domain.TicketPriorityMedium,
		Status:       domain.TicketStatusOpen,
	}
	if r.Description != nil {
		ticket.Description = *r.Description
	}
	if r.Priority != nil {
		ticket.Priority = *r.Priority
	}
	if r.Status != nil {
		ticket.Status = *r.Status
	}
	if r.AssignedTo != nil {
		ticket.AssignedTo = *r.AssignedTo
	}
	if r.PlatformID != nil {
		ticket.PlatformID = *r.PlatformID
	}
	if r.IntegrationID != nil {
		ticket.IntegrationID = *r.IntegrationID
	}
	if r.AccountID != nil {
		ticket.AccountID = *r.AccountID
	}
	if r.IsAutomated != nil {
		ticket.IsAutomated = *r.IsAutomated
	}
	return ticket
}

// UpdateTicketRequest carries a partial ticket for PATCH.
type UpdateTicketRequest struct {
	TicketNumber  *string                `json:"ticketNumber"`
	Subject       *string                `json:"subject"`
	Description   *string                `json:"description"`
	Priority      *domain.TicketPriority `json:"priority"`
	Status        *domain.TicketStatus   `json:"status"`
	AssignedTo    *string                `json:"assignedTo"`
	PlatformID    *string                `json:"platformId"`
	IntegrationID *string                `json:"integrationId"`
	AccountID     *string                `json:"accountId"`
	IsAutomated   *bool                  `json:"isAutomated"`
}

// Validate checks enum membership of the supplied fields only.
func (r UpdateTicketRequest) Validate() map[string]any {
	details := map[string]any{}
	if r.Priority != nil && !domain.ValidTicketPriority(*r.Priority) {
		details["priority"] = "must be one of low, medium, high, critical"
	}
	if r.Status != nil && !domain.ValidTicketStatus(*r.Status) {
		details["status"] = "must be one of open, in_progress, resolved, closed, escalated"
	}
	if len(details) == 0 {
		return nil
	}
	return details
}

// ToUpdate maps the request onto the storage update shape.
func (r UpdateTicketRequest) ToUpdate() domain.TicketUpdate {
	return domain.TicketUpdate{
		TicketNumber:  r.TicketNumber,
		Subject:       r.Subject,
		Description:   r.Description,
		Priority:      r.Priority,
		Status:        r.Status,
		AssignedTo:    r.AssignedTo,
		PlatformID:    r.PlatformID,
		IntegrationID: r.IntegrationID,
		AccountID:     r.AccountID,
		IsAutomated:   r.IsAutomated,
	}
}
