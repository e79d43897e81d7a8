package handlers

import (
	"catalog/internal/apperror"
	"catalog/internal/serializers"
	"catalog/internal/services"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for registration and token issuance.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// RegisterRoutes registers the authentication routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/auth/register", h.HandleRegister)
	router.Post("/token", h.HandleLogin)
	router.Post("/token/refresh", h.HandleRefresh)
}

// RegisterRequest represents the request body for registration.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=150"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest represents the request body for a token refresh.
type RefreshRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

// parseRequest decodes the JSON body into req and validates it.
func parseRequest(c *fiber.Ctx, req interface{}) error {
	if err := c.BodyParser(req); err != nil {
		return apperror.FieldError("non_field_errors", "Invalid request body")
	}
	return serializers.ValidateStruct(req)
}

// HandleRegister handles new user registration.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := parseRequest(c, &req); err != nil {
		return err
	}

	user, err := h.authService.RegisterUser(req.Username, req.Password)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully",
		"user":    user,
	})
}

// HandleLogin checks the credentials and issues an access/refresh token pair.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := parseRequest(c, &req); err != nil {
		return err
	}

	tokens, err := h.authService.LoginUser(req.Username, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(tokens)
}

// HandleRefresh exchanges a refresh token for a new access token.
func (h *AuthHandler) HandleRefresh(c *fiber.Ctx) error {
	var req RefreshRequest
	if err := parseRequest(c, &req); err != nil {
		return err
	}

	access, err := h.authService.RefreshAccessToken(req.Refresh)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"access": access})
}
