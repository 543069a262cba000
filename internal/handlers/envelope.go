package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"catalogo/internal/services"
)

const (
	msgInvalidInput = "Datos de entrada inválidos"
	msgInvalidBody  = "Cuerpo de la solicitud inválido"
	msgNotFound     = "Ruta no encontrada"
)

// Envelope is the uniform response body of every API route.
type Envelope struct {
	Success    bool              `json:"success"`
	Data       any               `json:"data"`
	Message    string            `json:"message"`
	Error      string            `json:"error,omitempty"`
	Details    string            `json:"details,omitempty"`
	Errors     map[string]string `json:"errors,omitempty"`
	Count      *int              `json:"count,omitempty"`
	SearchTerm string            `json:"searchTerm,omitempty"`
}

func ok(c *fiber.Ctx, status int, data any, message string) error {
	return c.Status(status).JSON(Envelope{Success: true, Data: data, Message: message})
}

func okList[T any](c *fiber.Ctx, data []T, message string) error {
	n := len(data)
	return c.Status(fiber.StatusOK).JSON(Envelope{Success: true, Data: data, Message: message, Count: &n})
}

func failure(c *fiber.Ctx, status int, message string, err error) error {
	env := Envelope{Success: false, Message: message}
	if err != nil {
		env.Error = err.Error()
	}
	return c.Status(status).JSON(env)
}

// NotFound answers unknown API routes.
func NotFound(c *fiber.Ctx) error {
	return failure(c, fiber.StatusNotFound, msgNotFound, nil)
}

// badBody answers a body that could not be decoded.
func badBody(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(Envelope{
		Success: false,
		Message: msgInvalidBody,
		Error:   msgInvalidBody,
		Details: err.Error(),
	})
}

// respondError maps a service error onto the envelope and status code.
// fallback is the message used for unexpected faults.
func respondError(c *fiber.Ctx, logger zerolog.Logger, msgs services.Messages, fallback string, err error) error {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(Envelope{
			Success: false,
			Message: msgInvalidInput,
			Error:   msgInvalidInput,
			Details: verr.Error(),
			Errors:  verr.Fields,
		})
	case errors.Is(err, services.ErrDuplicate):
		return failure(c, fiber.StatusBadRequest, msgs.Duplicate, nil)
	case errors.Is(err, services.ErrNotFound):
		return failure(c, fiber.StatusNotFound, msgs.NotFound, nil)
	}

	logger.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg(fallback)
	return failure(c, fiber.StatusInternalServerError, fallback, err)
}
