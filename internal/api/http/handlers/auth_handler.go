package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/supportflow/opsdash/internal/api/dto"
	"github.com/supportflow/opsdash/internal/auth"
)

// AuthHandler serves the placeholder static login.
type AuthHandler struct {
	credentials *auth.StaticCredentials
}

// NewAuthHandler constructs handler.
func NewAuthHandler(credentials *auth.StaticCredentials) *AuthHandler {
	return &AuthHandler{credentials: credentials}
}

// Login POST /api/login. Success and failure both use the
// {success, ...} body shape the dashboard client expects, so errors are
// answered directly instead of through the error middleware.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "Invalid username or password",
		})
	}

	token, ok := h.credentials.Authenticate(req.Username, req.Password)
	if !ok {
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "Invalid username or password",
		})
	}
	return c.JSON(fiber.Map{
		"success": true,
		"token":   token,
	})
}
