package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/supportflow/opsdash/internal/api/dto"
	"github.com/supportflow/opsdash/internal/service"
	"github.com/supportflow/opsdash/internal/storage"
	apperrors "github.com/supportflow/opsdash/pkg/util"
)

// IntegrationsHandler manages integration endpoints, including the
// simulated connection test.
type IntegrationsHandler struct {
	store       storage.Store
	connections *service.IntegrationService
}

// NewIntegrationsHandler constructs handler.
func NewIntegrationsHandler(store storage.Store, connections *service.IntegrationService) *IntegrationsHandler {
	return &IntegrationsHandler{store: store, connections: connections}
}

// List GET /api/integrations.
func (h *IntegrationsHandler) List(c *fiber.Ctx) error {
	integrations, err := h.store.ListIntegrations(c.UserContext())
	if err != nil {
		return apperrors.NewInternal("Failed to fetch integrations", err)
	}
	return c.JSON(integrations)
}

// ListByPlatform GET /api/integrations/platform/:platformId.
func (h *IntegrationsHandler) ListByPlatform(c *fiber.Ctx) error {
	integrations, err := h.store.ListIntegrationsByPlatform(c.UserContext(), c.Params("platformId"))
	if err != nil {
		return apperrors.NewInternal("Failed to fetch platform integrations", err)
	}
	return c.JSON(integrations)
}

// Create POST /api/integrations.
func (h *IntegrationsHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateIntegrationRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid integration data", nil)
	}
	if details := req.Validate(); details != nil {
		return apperrors.NewValidationError("Invalid integration data", details)
	}

	integration := req.ToDomain()
	if err := h.store.CreateIntegration(c.UserContext(), &integration); err != nil {
		return apperrors.NewValidationError("Invalid integration data", nil)
	}
	return c.Status(http.StatusCreated).JSON(integration)
}

// TestConnection POST /api/integrations/:id/test.
func (h *IntegrationsHandler) TestConnection(c *fiber.Ctx) error {
	success, err := h.connections.TestConnection(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return apperrors.NewNotFound("Integration not found")
		}
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Connection test failed",
		})
	}
	if !success {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Connection failed: Invalid credentials",
		})
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Connection successful",
	})
}
