package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/supportflow/opsdash/internal/api/dto"
	"github.com/supportflow/opsdash/internal/storage"
	apperrors "github.com/supportflow/opsdash/pkg/util"
)

// AutomationRulesHandler manages automation rule endpoints.
type AutomationRulesHandler struct {
	store storage.Store
}

// NewAutomationRulesHandler constructs handler.
func NewAutomationRulesHandler(store storage.Store) *AutomationRulesHandler {
	return &AutomationRulesHandler{store: store}
}

// List GET /api/automation-rules.
func (h *AutomationRulesHandler) List(c *fiber.Ctx) error {
	rules, err := h.store.ListAutomationRules(c.UserContext())
	if err != nil {
		return apperrors.NewInternal("Failed to fetch automation rules", err)
	}
	return c.JSON(rules)
}

// Create POST /api/automation-rules.
func (h *AutomationRulesHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateAutomationRuleRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid automation rule data", nil)
	}
	if details := req.Validate(); details != nil {
		return apperrors.NewValidationError("Invalid automation rule data", details)
	}

	rule := req.ToDomain()
	if err := h.store.CreateAutomationRule(c.UserContext(), &rule); err != nil {
		return apperrors.NewValidationError("Invalid automation rule data", nil)
	}
	return c.Status(http.StatusCreated).JSON(rule)
}
