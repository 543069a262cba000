package handlers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"catalogo/internal/filters"
	"catalogo/internal/models"
	"catalogo/internal/services"
)

const (
	msgSearchTermMissing  = "El parámetro de búsqueda 'q' es requerido"
	msgSearchTermTooShort = "El término de búsqueda debe tener al menos 2 caracteres"
	msgSearchFailed       = "Error al buscar productos"
	msgCategoriesListed   = "Categorías obtenidas exitosamente"
	msgCategoriesFailed   = "Error al obtener las categorías"
)

// ProductHandler adds filtering, search and categories to the product CRUD routes.
type ProductHandler struct {
	*EntityHandler[models.Product, models.ProductPayload]
	products *services.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		EntityHandler: NewEntityHandler[models.Product, models.ProductPayload](service, "/products", logger),
		products:      service,
	}
}

// RegisterRoutes registers the product routes. The fixed paths come before /:id.
func (h *ProductHandler) RegisterRoutes(router fiber.Router, guard fiber.Handler) {
	group := router.Group(h.path)
	group.Get("/search", h.HandleSearch)
	group.Get("/categories", h.HandleCategories)
	group.Get("/", h.HandleList)
	h.registerItemRoutes(group, guard)
}

// HandleList lists products filtered by the search, category, minPrice, maxPrice
// and available query parameters.
func (h *ProductHandler) HandleList(c *fiber.Ctx) error {
	params := filters.ProductListParams{
		Search:   c.Query("search"),
		Category: c.Query("category"),
		MinPrice: c.Query("minPrice"),
		MaxPrice: c.Query("maxPrice"),
	}
	if c.Context().QueryArgs().Has("available") {
		available := c.Query("available")
		params.Available = &available
	}

	products, err := h.products.ListFiltered(c.UserContext(), params)
	if err != nil {
		return respondError(c, h.log, h.msgs, h.msgs.ListFailed, err)
	}

	message := h.msgs.Listed
	if params.Search != "" {
		message = foundMessage(len(products), params.Search)
	}
	return okList(c, products, message)
}

// HandleSearch finds available products by name or description.
func (h *ProductHandler) HandleSearch(c *fiber.Ctx) error {
	products, term, err := h.products.Search(c.UserContext(), c.Query("q"))
	if err != nil {
		switch {
		case errors.Is(err, filters.ErrSearchTermMissing):
			return failure(c, fiber.StatusBadRequest, msgSearchTermMissing, nil)
		case errors.Is(err, filters.ErrSearchTermTooShort):
			return failure(c, fiber.StatusBadRequest, msgSearchTermTooShort, nil)
		}
		return respondError(c, h.log, h.msgs, msgSearchFailed, err)
	}

	n := len(products)
	return c.Status(fiber.StatusOK).JSON(Envelope{
		Success:    true,
		Data:       products,
		Message:    foundMessage(n, term),
		Count:      &n,
		SearchTerm: term,
	})
}

// HandleCategories lists the distinct categories in use.
func (h *ProductHandler) HandleCategories(c *fiber.Ctx) error {
	categories, err := h.products.Categories(c.UserContext())
	if err != nil {
		return respondError(c, h.log, h.msgs, msgCategoriesFailed, err)
	}
	return ok(c, fiber.StatusOK, categories, msgCategoriesListed)
}

func foundMessage(n int, term string) string {
	return fmt.Sprintf("Se encontraron %d productos para %q", n, term)
}
