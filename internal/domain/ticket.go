package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "open"
	TicketStatusInProgress TicketStatus = "in_progress"
	TicketStatusResolved   TicketStatus = "resolved"
	TicketStatusClosed     TicketStatus = "closed"
	TicketStatusEscalated  TicketStatus = "escalated"
)

// ValidTicketStatus reports whether s is a known status.
func ValidTicketStatus(s TicketStatus) bool {
	switch s {
	case TicketStatusOpen, TicketStatusInProgress, TicketStatusResolved, TicketStatusClosed, TicketStatusEscalated:
		return true
	}
	return false
}

// TicketPriority enumerates urgency levels.
type TicketPriority string

const (
	TicketPriorityLow      TicketPriority = "low"
	TicketPriorityMedium   TicketPriority = "medium"
	TicketPriorityHigh     TicketPriority = "high"
	TicketPriorityCritical TicketPriority = "critical"
)

// ValidTicketPriority reports whether p is a known priority.
func ValidTicketPriority(p TicketPriority) bool {
	switch p {
	case TicketPriorityLow, TicketPriorityMedium, TicketPriorityHigh, TicketPriorityCritical:
		return true
	}
	return false
}

// Ticket is the aggregate for support requests flowing through the
// dashboard. PlatformID, IntegrationID and AccountID are loose references;
// a dangling id is tolerated and rendered as "Unknown" by the client.
type Ticket struct {
	ID            string         `json:"id"`
	TicketNumber  string         `json:"ticketNumber"`
	Subject       string         `json:"subject"`
	Description   string         `json:"description"`
	Priority      TicketPriority `json:"priority"`
	Status        TicketStatus   `json:"status"`
	AssignedTo    string         `json:"assignedTo"`
	PlatformID    string         `json:"platformId"`
	IntegrationID string         `json:"integrationId"`
	AccountID     string         `json:"accountId"`
	IsAutomated   bool           `json:"isAutomated"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
	ResolvedAt    *time.Time     `json:"resolvedAt"`
}

// TicketUpdate carries a partial ticket; nil fields are left untouched
// by the merge. Setting Status to "resolved" re-stamps ResolvedAt even
// if the ticket is already resolved.
type TicketUpdate struct {
	TicketNumber  *string
	Subject       *string
	Description   *string
	Priority      *TicketPriority
	Status        *TicketStatus
	AssignedTo    *string
	PlatformID    *string
	IntegrationID *string
	AccountID     *string
	IsAutomated   *bool
}
