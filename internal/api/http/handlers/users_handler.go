package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/supportflow/opsdash/internal/api/dto"
	"github.com/supportflow/opsdash/internal/auth"
	"github.com/supportflow/opsdash/internal/storage"
	apperrors "github.com/supportflow/opsdash/pkg/util"
)

// UsersHandler manages user endpoints.
type UsersHandler struct {
	store storage.Store
}

// NewUsersHandler constructs handler.
func NewUsersHandler(store storage.Store) *UsersHandler {
	return &UsersHandler{store: store}
}

// List GET /api/users.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	users, err := h.store.ListUsers(c.UserContext())
	if err != nil {
		return apperrors.NewInternal("Failed to fetch users", err)
	}
	return c.JSON(users)
}

// Create POST /api/users.
func (h *UsersHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid user data", nil)
	}
	if details := req.Validate(); details != nil {
		return apperrors.NewValidationError("Invalid user data", details)
	}

	user := req.ToDomain()
	hashed, err := auth.HashPassword(user.Password)
	if err != nil {
		return apperrors.NewValidationError("Invalid user data", nil)
	}
	user.Password = hashed

	if err := h.store.CreateUser(c.UserContext(), &user); err != nil {
		if errors.Is(err, storage.ErrConflict) {
			return apperrors.NewConflict(err.Error(), nil)
		}
		return apperrors.NewValidationError("Invalid user data", nil)
	}
	return c.Status(http.StatusCreated).JSON(user)
}
