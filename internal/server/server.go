// Package server assembles the Fiber application: middleware, API routes, health,
// metrics and the static frontend.
package server

import (
	"errors"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"catalogo/internal/config"
	"catalogo/internal/handlers"
	"catalogo/internal/metrics"
	"catalogo/internal/middleware"
	"catalogo/internal/models"
	"catalogo/internal/repositories"
	"catalogo/internal/services"
)

// Services are the application services the HTTP surface exposes.
type Services struct {
	Products   *services.ProductService
	Books      *services.BookService
	Volunteers *services.VolunteerService
	// Auth is nil when write protection is disabled.
	Auth *services.AuthService
}

// NewServices builds the entity services over db.
func NewServices(db *gorm.DB, deps services.Dependencies) *Services {
	return &Services{
		Products:   services.NewProductService(repositories.NewGORMRepository[models.Product](db, "product"), deps),
		Books:      services.NewBookService(repositories.NewGORMRepository[models.Book](db, "book"), deps),
		Volunteers: services.NewVolunteerService(repositories.NewGORMRepository[models.Volunteer](db, "volunteer"), deps),
	}
}

// New creates the Fiber app with every route registered. m may be nil.
func New(cfg *config.Config, svc *Services, m *metrics.Metrics, logger zerolog.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ErrorHandler: errorHandler(logger),
	})

	// --- Middleware ---
	app.Use(recover.New())
	app.Use(helmet.New())
	app.Use(cors.New(cors.Config{AllowOrigins: cfg.HTTP.CORSOrigins}))
	app.Use(middleware.RequestLogger(logger))
	if m != nil {
		app.Use(m.Middleware())
		app.Get("/metrics", m.Handler())
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		status, code, database := "healthy", fiber.StatusOK, "up"
		if err := svc.Products.Ping(c.UserContext()); err != nil {
			logger.Error().Err(err).Msg("health check failed")
			status, code, database = "unhealthy", fiber.StatusServiceUnavailable, "down"
		}
		return c.Status(code).JSON(fiber.Map{
			"status":   status,
			"database": database,
			"time":     time.Now().Format(time.RFC3339),
		})
	})

	// --- API Routes ---
	api := app.Group("/api")
	api.Get("/", welcome)

	if svc.Auth != nil {
		handlers.NewAuthHandler(svc.Auth, logger).RegisterRoutes(api)
	}
	guard := middleware.AuthRequired(svc.Auth)

	handlers.NewProductHandler(svc.Products, logger).RegisterRoutes(api, guard)
	handlers.NewEntityHandler[models.Book, models.BookPayload](svc.Books, "/books", logger).RegisterRoutes(api, guard)
	handlers.NewEntityHandler[models.Volunteer, models.VolunteerPayload](svc.Volunteers, "/volunteers", logger).RegisterRoutes(api, guard)

	api.Use(handlers.NotFound)

	// --- Static frontend ---
	if dir := cfg.HTTP.PublicDir; dir != "" {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			app.Static("/", dir)
		} else {
			logger.Debug().Str("dir", dir).Msg("public directory not found, static files disabled")
		}
	}

	return app
}

func welcome(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "Bienvenido a la API del Catálogo",
		"endpoints": fiber.Map{
			"products": fiber.Map{
				"list":       "GET /api/products",
				"search":     "GET /api/products/search?q=",
				"categories": "GET /api/products/categories",
				"get":        "GET /api/products/:id",
				"create":     "POST /api/products",
				"update":     "PATCH /api/products/:id",
				"delete":     "DELETE /api/products/:id",
			},
			"books": fiber.Map{
				"list":   "GET /api/books",
				"get":    "GET /api/books/:id",
				"create": "POST /api/books",
				"update": "PATCH /api/books/:id",
				"delete": "DELETE /api/books/:id",
			},
			"volunteers": fiber.Map{
				"list":   "GET /api/volunteers",
				"get":    "GET /api/volunteers/:id",
				"create": "POST /api/volunteers",
				"update": "PATCH /api/volunteers/:id",
				"delete": "DELETE /api/volunteers/:id",
			},
		},
	})
}

// errorHandler renders errors that escape a handler, including recovered panics,
// as a failure envelope.
func errorHandler(logger zerolog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Error en el servidor"
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
			message = fe.Message
		}
		if code >= fiber.StatusInternalServerError {
			logger.Error().Err(err).Str("path", c.Path()).Msg("unhandled error")
		}
		return c.Status(code).JSON(handlers.Envelope{
			Success: false,
			Message: message,
			Error:   err.Error(),
		})
	}
}
