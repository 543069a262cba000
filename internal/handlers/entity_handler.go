package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"catalogo/internal/repositories"
	"catalogo/internal/services"
)

// EntityService is what an EntityHandler needs from a service.
type EntityService[T any, P any] interface {
	Kind() services.Kind
	List(ctx context.Context, filter repositories.Filter) ([]T, error)
	GetByID(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, in P) (*T, error)
	Update(ctx context.Context, id string, in P) (*T, error)
	Delete(ctx context.Context, id string) (*T, error)
}

// EntityHandler handles the CRUD routes of one entity kind.
type EntityHandler[T any, P any] struct {
	service EntityService[T, P]
	path    string
	msgs    services.Messages
	log     zerolog.Logger
}

// NewEntityHandler creates a handler serving service under path, e.g. "/books".
func NewEntityHandler[T any, P any](service EntityService[T, P], path string, logger zerolog.Logger) *EntityHandler[T, P] {
	kind := service.Kind()
	return &EntityHandler[T, P]{
		service: service,
		path:    path,
		msgs:    kind.Messages,
		log:     logger.With().Str("kind", kind.Name).Logger(),
	}
}

// RegisterRoutes registers the CRUD routes. guard protects the mutating ones.
func (h *EntityHandler[T, P]) RegisterRoutes(router fiber.Router, guard fiber.Handler) {
	group := router.Group(h.path)
	group.Get("/", h.HandleList)
	h.registerItemRoutes(group, guard)
}

func (h *EntityHandler[T, P]) registerItemRoutes(group fiber.Router, guard fiber.Handler) {
	group.Post("/", guard, h.HandleCreate)
	group.Get("/:id", h.HandleGetByID)
	group.Patch("/:id", guard, h.HandleUpdate)
	group.Delete("/:id", guard, h.HandleDelete)
}

// HandleList retrieves every record of the kind.
func (h *EntityHandler[T, P]) HandleList(c *fiber.Ctx) error {
	records, err := h.service.List(c.UserContext(), repositories.Filter{})
	if err != nil {
		return respondError(c, h.log, h.msgs, h.msgs.ListFailed, err)
	}
	return okList(c, records, h.msgs.Listed)
}

// HandleGetByID retrieves a single record by its ID.
func (h *EntityHandler[T, P]) HandleGetByID(c *fiber.Ctx) error {
	record, err := h.service.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, h.msgs, h.msgs.GetFailed, err)
	}
	return ok(c, fiber.StatusOK, record, h.msgs.Found)
}

// HandleCreate creates a new record.
func (h *EntityHandler[T, P]) HandleCreate(c *fiber.Ctx) error {
	var in P
	if err := c.BodyParser(&in); err != nil {
		return badBody(c, err)
	}

	record, err := h.service.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, h.log, h.msgs, h.msgs.CreateFailed, err)
	}
	return ok(c, fiber.StatusCreated, record, h.msgs.Created)
}

// HandleUpdate applies a partial update to an existing record.
func (h *EntityHandler[T, P]) HandleUpdate(c *fiber.Ctx) error {
	var in P
	if err := c.BodyParser(&in); err != nil {
		return badBody(c, err)
	}

	record, err := h.service.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, h.log, h.msgs, h.msgs.UpdateFailed, err)
	}
	return ok(c, fiber.StatusOK, record, h.msgs.Updated)
}

// HandleDelete removes a record and returns it.
func (h *EntityHandler[T, P]) HandleDelete(c *fiber.Ctx) error {
	record, err := h.service.Delete(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, h.msgs, h.msgs.DeleteFailed, err)
	}
	return ok(c, fiber.StatusOK, record, h.msgs.Deleted)
}
