package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/supportflow/opsdash/internal/api/dto"
	"github.com/supportflow/opsdash/internal/storage"
	apperrors "github.com/supportflow/opsdash/pkg/util"
)

// PlatformsHandler manages platform endpoints.
type PlatformsHandler struct {
	store storage.Store
}

// NewPlatformsHandler constructs handler.
func NewPlatformsHandler(store storage.Store) *PlatformsHandler {
	return &PlatformsHandler{store: store}
}

// List GET /api/platforms.
func (h *PlatformsHandler) List(c *fiber.Ctx) error {
	platforms, err := h.store.ListPlatforms(c.UserContext())
	if err != nil {
		return apperrors.NewInternal("Failed to fetch platforms", err)
	}
	return c.JSON(platforms)
}

// Create POST /api/platforms.
func (h *PlatformsHandler) Create(c *fiber.Ctx) error {
	var req dto.CreatePlatformRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid platform data", nil)
	}
	if details := req.Validate(); details != nil {
		return apperrors.NewValidationError("Invalid platform data", details)
	}

	platform := req.ToDomain()
	if err := h.store.CreatePlatform(c.UserContext(), &platform); err != nil {
		return apperrors.NewValidationError("Invalid platform data", nil)
	}
	return c.Status(http.StatusCreated).JSON(platform)
}
