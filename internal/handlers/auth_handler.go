package handlers

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"catalogo/internal/services"
	"catalogo/internal/validation"
)

const (
	msgLoginOK     = "Inicio de sesión exitoso"
	msgLoginFailed = "Credenciales inválidas"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
	log         zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validation.New(),
		log:         logger,
	}
}

// RegisterRoutes registers the authentication routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/login", h.HandleLogin)
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Password string `json:"password" validate:"required"`
}

// HandleLogin checks the admin password and issues a JWT token.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}

	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(Envelope{
			Success: false,
			Message: msgInvalidInput,
			Error:   msgInvalidInput,
			Errors:  validation.Describe(err),
		})
	}

	token, err := h.authService.Login(req.Password)
	if err != nil {
		if !errors.Is(err, services.ErrInvalidCredentials) {
			h.log.Error().Err(err).Msg("failed to issue token")
			return failure(c, fiber.StatusInternalServerError, msgLoginFailed, err)
		}
		h.log.Warn().Str("ip", c.IP()).Msg("rejected login attempt")
		return failure(c, fiber.StatusUnauthorized, msgLoginFailed, nil)
	}

	return ok(c, fiber.StatusOK, fiber.Map{"token": token}, msgLoginOK)
}
