package events

import (
	"time"

	"github.com/supportflow/opsdash/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated       EventType = "ticket_created"
	EventTicketStatusChanged EventType = "ticket_status_changed"
	EventIntegrationTested   EventType = "integration_tested"
)

// Event represents a domain event emitted by handlers and services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	SubjectID string      `json:"subject_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	TicketNumber string                `json:"ticket_number"`
	PlatformID   string                `json:"platform_id,omitempty"`
	Priority     domain.TicketPriority `json:"priority"`
	IsAutomated  bool                  `json:"is_automated"`
}

// TicketStatusChangedPayload payload.
type TicketStatusChangedPayload struct {
	OldStatus domain.TicketStatus `json:"old_status"`
	NewStatus domain.TicketStatus `json:"new_status"`
}

// IntegrationTestedPayload payload.
type IntegrationTestedPayload struct {
	PlatformID string `json:"platform_id"`
	Success    bool   `json:"success"`
}
