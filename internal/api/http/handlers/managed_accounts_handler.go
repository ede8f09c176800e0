package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/supportflow/opsdash/internal/api/dto"
	"github.com/supportflow/opsdash/internal/storage"
	apperrors "github.com/supportflow/opsdash/pkg/util"
)

// ManagedAccountsHandler manages account onboarding endpoints.
type ManagedAccountsHandler struct {
	store storage.Store
}

// NewManagedAccountsHandler constructs handler.
func NewManagedAccountsHandler(store storage.Store) *ManagedAccountsHandler {
	return &ManagedAccountsHandler{store: store}
}

// List GET /api/managed-accounts.
func (h *ManagedAccountsHandler) List(c *fiber.Ctx) error {
	accounts, err := h.store.ListManagedAccounts(c.UserContext())
	if err != nil {
		return apperrors.NewInternal("Failed to fetch managed accounts", err)
	}
	return c.JSON(accounts)
}

// Create POST /api/managed-accounts.
func (h *ManagedAccountsHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateManagedAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid account data", nil)
	}
	if details := req.Validate(); details != nil {
		return apperrors.NewValidationError("Invalid account data", details)
	}

	account := req.ToDomain()
	if err := h.store.CreateManagedAccount(c.UserContext(), &account); err != nil {
		return apperrors.NewValidationError("Invalid account data", nil)
	}
	return c.Status(http.StatusCreated).JSON(account)
}

// Update PATCH /api/managed-accounts/:id.
func (h *ManagedAccountsHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateManagedAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Failed to update account", nil)
	}
	if details := req.Validate(); details != nil {
		return apperrors.NewValidationError("Failed to update account", details)
	}

	account, err := h.store.UpdateManagedAccount(c.UserContext(), c.Params("id"), req.ToUpdate())
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return apperrors.NewNotFound("Account not found")
		}
		return apperrors.NewValidationError("Failed to update account", nil)
	}
	return c.JSON(account)
}
