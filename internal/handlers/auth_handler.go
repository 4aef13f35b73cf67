package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"Stowed/internal/dto"
	"Stowed/internal/services"
)

type AuthHandler struct {
	service services.AuthService
}

func NewAuthHandler(service services.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(map[string]interface{}{"error": err.Error()})
	}
	token, user, err := h.service.Login(req.Email, req.Password)
	if err != nil {
		if services.IsValidation(err) {
			return c.Status(http.StatusUnauthorized).JSON(map[string]interface{}{"error": err.Error()})
		}
		return writeServiceError(c, err)
	}
	return c.JSON(dto.LoginResponse{Token: token, User: *user})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user := c.Locals("user")
	if user == nil {
		return c.Status(http.StatusUnauthorized).JSON(map[string]interface{}{"error": "unauthorized"})
	}
	return c.JSON(dto.MeResponse{User: *user.(*dto.User)})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	// Tokens are stateless; the client discards its copy.
	return c.JSON(dto.MessageResponse{Message: "logged out"})
}

// RequireAuth verifies the bearer token and stores the account on the
// request context. A 401 anywhere tears down the client session.
func (h *AuthHandler) RequireAuth(c *fiber.Ctx) error {
	header := c.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return c.Status(http.StatusUnauthorized).JSON(map[string]interface{}{"error": "missing bearer token"})
	}
	user, err := h.service.Verify(strings.TrimPrefix(header, "Bearer "))
	if err != nil {
		return c.Status(http.StatusUnauthorized).JSON(map[string]interface{}{"error": err.Error()})
	}
	c.Locals("user", user)
	return c.Next()
}
