package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/supportflow/opsdash/internal/api/dto"
	"github.com/supportflow/opsdash/internal/domain"
	"github.com/supportflow/opsdash/internal/events"
	"github.com/supportflow/opsdash/internal/storage"
	apperrors "github.com/supportflow/opsdash/pkg/util"
)

// TicketsHandler manages ticket endpoints.
type TicketsHandler struct {
	store      storage.Store
	dispatcher events.Dispatcher
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(store storage.Store, dispatcher events.Dispatcher) *TicketsHandler {
	return &TicketsHandler{store: store, dispatcher: dispatcher}
}

// List GET /api/tickets.
func (h *TicketsHandler) List(c *fiber.Ctx) error {
	tickets, err := h.store.ListTickets(c.UserContext())
	if err != nil {
		return apperrors.NewInternal("Failed to fetch tickets", err)
	}
	return c.JSON(tickets)
}

// ListByStatus GET /api/tickets/status/:status. An unknown status value
// simply matches nothing.
func (h *TicketsHandler) ListByStatus(c *fiber.Ctx) error {
	status := domain.TicketStatus(c.Params("status"))
	tickets, err := h.store.ListTicketsByStatus(c.UserContext(), status)
	if err != nil {
		return apperrors.NewInternal("Failed to fetch tickets by status", err)
	}
	return c.JSON(tickets)
}

// ListByPlatform GET /api/tickets/platform/:platformId.
func (h *TicketsHandler) ListByPlatform(c *fiber.Ctx) error {
	tickets, err := h.store.ListTicketsByPlatform(c.UserContext(), c.Params("platformId"))
	if err != nil {
		return apperrors.NewInternal("Failed to fetch platform tickets", err)
	}
	return c.JSON(tickets)
}

// Create POST /api/tickets.
func (h *TicketsHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid ticket data", nil)
	}
	if details := req.Validate(); details != nil {
		return apperrors.NewValidationError("Invalid ticket data", details)
	}

	ticket := req.ToDomain()
	if err := h.store.CreateTicket(c.UserContext(), &ticket); err != nil {
		if errors.Is(err, storage.ErrConflict) {
			return apperrors.NewConflict(err.Error(), nil)
		}
		return apperrors.NewValidationError("Invalid ticket data", nil)
	}

	h.publish(c, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventTicketCreated,
		SubjectID: ticket.ID,
		Timestamp: time.Now(),
		Payload: events.TicketCreatedPayload{
			TicketNumber: ticket.TicketNumber,
			PlatformID:   ticket.PlatformID,
			Priority:     ticket.Priority,
			IsAutomated:  ticket.IsAutomated,
		},
	})
	return c.Status(http.StatusCreated).JSON(ticket)
}

// Update PATCH /api/tickets/:id.
func (h *TicketsHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Failed to update ticket", nil)
	}
	if details := req.Validate(); details != nil {
		return apperrors.NewValidationError("Failed to update ticket", details)
	}

	id := c.Params("id")
	var oldStatus domain.TicketStatus
	if req.Status != nil {
		existing, err := h.store.GetTicket(c.UserContext(), id)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return apperrors.NewNotFound("Ticket not found")
			}
			return apperrors.NewValidationError("Failed to update ticket", nil)
		}
		oldStatus = existing.Status
	}

	ticket, err := h.store.UpdateTicket(c.UserContext(), id, req.ToUpdate())
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return apperrors.NewNotFound("Ticket not found")
		}
		return apperrors.NewValidationError("Failed to update ticket", nil)
	}

	if req.Status != nil && *req.Status != oldStatus {
		h.publish(c, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventTicketStatusChanged,
			SubjectID: ticket.ID,
			Timestamp: time.Now(),
			Payload: events.TicketStatusChangedPayload{
				OldStatus: oldStatus,
				NewStatus: ticket.Status,
			},
		})
	}
	return c.JSON(ticket)
}

func (h *TicketsHandler) publish(c *fiber.Ctx, event events.Event) {
	if h.dispatcher == nil {
		return
	}
	_ = h.dispatcher.Publish(c.UserContext(), event)
}
