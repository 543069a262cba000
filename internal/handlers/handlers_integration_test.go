package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"catalogo/internal/config"
	"catalogo/internal/database"
	"catalogo/internal/server"
	"catalogo/internal/services"
)

const adminPassword = "admin123"

// envelope mirrors handlers.Envelope with a raw data field for per-test decoding.
type envelope struct {
	Success    bool              `json:"success"`
	Data       json.RawMessage   `json:"data"`
	Message    string            `json:"message"`
	Error      string            `json:"error"`
	Details    string            `json:"details"`
	Errors     map[string]string `json:"errors"`
	Count      *int              `json:"count"`
	SearchTerm string            `json:"searchTerm"`
}

type record struct {
	ID          string  `json:"_id"`
	Name        string  `json:"name"`
	Title       string  `json:"title"`
	Email       string  `json:"email"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	Available   bool    `json:"available"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
}

// setupApp builds the full application over an in-memory SQLite database.
func setupApp(t *testing.T, withAuth bool) *fiber.App {
	t.Helper()

	v := viper.New()
	config.SetDefaults(v)
	v.Set("DATABASE_DSN", "file:"+uuid.NewString()+"?mode=memory&cache=shared")
	v.Set("DB_MAX_OPEN_CONNS", 1)
	v.Set("DB_QUIET", true)
	v.Set("PUBLIC_DIR", "")
	cfg := config.FromViper(v)

	db, err := database.Open(cfg.DB)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	svc := server.NewServices(db, services.Dependencies{Logger: zerolog.Nop()})
	if withAuth {
		hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.MinCost)
		require.NoError(t, err)
		svc.Auth = services.NewAuthService(string(hash), "test_jwt_secret", time.Hour)
	}
	return server.New(cfg, svc, nil, zerolog.Nop())
}

func call(t *testing.T, app *fiber.App, method, path string, body any, headers ...string) (int, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	}
	return resp.StatusCode, env
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

func TestProductFlow(t *testing.T) {
	app := setupApp(t, false)

	laptop := map[string]any{
		"name": "Laptop", "description": "Portátil ligero", "price": 999.99,
		"category": "Electrónicos", "stock": 5,
	}

	// Create
	status, env := call(t, app, http.MethodPost, "/api/products", laptop)
	require.Equal(t, http.StatusCreated, status, env.Error)
	assert.True(t, env.Success)
	assert.Equal(t, "Producto creado exitosamente", env.Message)
	created := decode[record](t, env.Data)
	assert.NotEmpty(t, created.ID)
	assert.True(t, created.Available)

	// Duplicate name in another case
	dup := map[string]any{"name": "LAPTOP", "description": "x", "price": 1, "category": "Otros"}
	status, env = call(t, app, http.MethodPost, "/api/products", dup)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.False(t, env.Success)
	assert.Equal(t, "Ya existe un producto con este nombre", env.Message)
	assert.Equal(t, "null", string(env.Data))

	status, _ = call(t, app, http.MethodPost, "/api/products", map[string]any{
		"name": "Camisa 100%", "description": "Algodón", "price": 20, "category": "Ropa", "available": false,
	})
	require.Equal(t, http.StatusCreated, status)

	// List with filters
	status, env = call(t, app, http.MethodGet, "/api/products?search=lap", nil)
	assert.Equal(t, http.StatusOK, status)
	require.NotNil(t, env.Count)
	assert.Equal(t, 1, *env.Count)
	assert.Equal(t, `Se encontraron 1 productos para "lap"`, env.Message)

	status, env = call(t, app, http.MethodGet, "/api/products?search=%25", nil)
	assert.Equal(t, http.StatusOK, status)
	list := decode[[]record](t, env.Data)
	require.Len(t, list, 1, "the percent sign is matched literally")
	assert.Equal(t, "Camisa 100%", list[0].Name)

	_, env = call(t, app, http.MethodGet, "/api/products?minPrice=100&maxPrice=abc", nil)
	list = decode[[]record](t, env.Data)
	require.Len(t, list, 1)
	assert.Equal(t, "Laptop", list[0].Name)

	_, env = call(t, app, http.MethodGet, "/api/products?available=yes", nil)
	list = decode[[]record](t, env.Data)
	require.Len(t, list, 1)
	assert.Equal(t, "Camisa 100%", list[0].Name)

	_, env = call(t, app, http.MethodGet, "/api/products?category=Hogar", nil)
	assert.Equal(t, 0, *env.Count)
	assert.Equal(t, "[]", string(env.Data))

	_, env = call(t, app, http.MethodGet, "/api/products", nil)
	list = decode[[]record](t, env.Data)
	require.Len(t, list, 2)
	assert.Equal(t, "Productos obtenidos exitosamente", env.Message)

	// Search by name only returns available products
	status, env = call(t, app, http.MethodGet, "/api/products/search?q=%20algod%C3%B3n%20", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "algodón", env.SearchTerm)
	assert.Equal(t, 0, *env.Count)

	status, env = call(t, app, http.MethodGet, "/api/products/search?q=PORT", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, 1, *env.Count)

	status, env = call(t, app, http.MethodGet, "/api/products/search?q=a", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "El término de búsqueda debe tener al menos 2 caracteres", env.Message)

	status, env = call(t, app, http.MethodGet, "/api/products/search", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "El parámetro de búsqueda 'q' es requerido", env.Message)

	// Categories
	status, env = call(t, app, http.MethodGet, "/api/products/categories", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.ElementsMatch(t, []string{"Electrónicos", "Ropa"}, decode[[]string](t, env.Data))

	// Get, update, delete
	status, env = call(t, app, http.MethodGet, "/api/products/"+created.ID, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Producto encontrado exitosamente", env.Message)

	status, env = call(t, app, http.MethodPatch, "/api/products/"+created.ID, map[string]any{"price": 899.5})
	require.Equal(t, http.StatusOK, status, env.Error)
	updated := decode[record](t, env.Data)
	assert.Equal(t, 899.5, updated.Price)
	assert.Equal(t, "Laptop", updated.Name)
	assert.Equal(t, 5, updated.Stock)

	status, env = call(t, app, http.MethodPatch, "/api/products/"+created.ID, map[string]any{"category": "Comida"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, env.Errors, "category")

	status, env = call(t, app, http.MethodDelete, "/api/products/"+created.ID, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, created.ID, decode[record](t, env.Data).ID)

	status, env = call(t, app, http.MethodGet, "/api/products/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Producto no encontrado", env.Message)

	status, _ = call(t, app, http.MethodPatch, "/api/products/"+created.ID, map[string]any{"price": 1})
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = call(t, app, http.MethodDelete, "/api/products/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestProductValidation(t *testing.T) {
	app := setupApp(t, false)

	status, env := call(t, app, http.MethodPost, "/api/products", map[string]any{"name": "L", "price": -5})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.False(t, env.Success)
	assert.Equal(t, "Datos de entrada inválidos", env.Message)
	assert.Contains(t, env.Errors, "description")
	assert.Contains(t, env.Errors, "category")

	req := httptest.NewRequest(http.MethodPost, "/api/products", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	status, env = call(t, app, http.MethodGet, "/api/products/not-a-uuid", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Producto no encontrado", env.Message)
}

func TestBookDuplicateTitle(t *testing.T) {
	app := setupApp(t, false)

	book := map[string]any{"title": "Rayuela", "author": "Julio Cortázar", "publishedYear": 1963}
	status, env := call(t, app, http.MethodPost, "/api/books", book)
	require.Equal(t, http.StatusCreated, status, env.Error)

	status, env = call(t, app, http.MethodPost, "/api/books", book)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Ya existe un libro con este título", env.Message)

	status, env = call(t, app, http.MethodPost, "/api/books", map[string]any{
		"title": "Futuro", "author": "Nadie", "publishedYear": time.Now().Year() + 1,
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, env.Errors, "publishedYear")

	status, env = call(t, app, http.MethodGet, "/api/books", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, 1, *env.Count)
	assert.Equal(t, "Libros obtenidos exitosamente", env.Message)
}

func TestVolunteerEmailIsCaseInsensitive(t *testing.T) {
	app := setupApp(t, false)

	status, env := call(t, app, http.MethodPost, "/api/volunteers", map[string]any{
		"name": "Ana", "email": "Ana@Example.com", "activity": "Salud",
	})
	require.Equal(t, http.StatusCreated, status, env.Error)
	assert.Equal(t, "ana@example.com", decode[record](t, env.Data).Email)

	status, env = call(t, app, http.MethodPost, "/api/volunteers", map[string]any{
		"name": "Otra Ana", "email": "ANA@example.com", "activity": "Cultura",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Ya existe un voluntario registrado con este email", env.Message)

	status, env = call(t, app, http.MethodPost, "/api/volunteers", map[string]any{
		"name": "Luis", "email": "luis@", "activity": "Pintura",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, env.Errors, "email")
	assert.Contains(t, env.Errors, "activity")
}

func TestUnknownRoutes(t *testing.T) {
	app := setupApp(t, false)

	status, env := call(t, app, http.MethodGet, "/api/orders", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Ruta no encontrada", env.Message)

	status, env = call(t, app, http.MethodPut, "/api/books/"+uuid.NewString(), map[string]any{})
	assert.Equal(t, http.StatusNotFound, status)
	assert.False(t, env.Success)

	req := httptest.NewRequest(http.MethodGet, "/api", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestWriteRoutesRequireToken(t *testing.T) {
	app := setupApp(t, true)
	book := map[string]any{"title": "Ficciones", "author": "Jorge Luis Borges"}

	status, _ := call(t, app, http.MethodPost, "/api/books", book)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = call(t, app, http.MethodGet, "/api/books", nil)
	assert.Equal(t, http.StatusOK, status, "reads stay open")

	status, env := call(t, app, http.MethodPost, "/api/auth/login", map[string]any{"password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Credenciales inválidas", env.Message)

	status, env = call(t, app, http.MethodPost, "/api/auth/login", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, env.Errors, "password")

	status, env = call(t, app, http.MethodPost, "/api/auth/login", map[string]any{"password": adminPassword})
	require.Equal(t, http.StatusOK, status)
	token := decode[map[string]string](t, env.Data)["token"]
	require.NotEmpty(t, token)

	status, _ = call(t, app, http.MethodPost, "/api/books", book, "Authorization", "Bearer "+token)
	assert.Equal(t, http.StatusCreated, status)

	status, _ = call(t, app, http.MethodPost, "/api/books", book, "Authorization", "Bearer not.a.token")
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestMouseFlow(t *testing.T) {
	app := setupApp(t, false)

	status, env := call(t, app, http.MethodPost, "/api/products", map[string]any{
		"name": "Mouse", "description": "Inalámbrico", "price": 15, "category": "Electrónicos",
	})
	require.Equal(t, http.StatusCreated, status, env.Error)
	mouse := decode[record](t, env.Data)

	status, _ = call(t, app, http.MethodPost, "/api/products", map[string]any{
		"name": "mouse", "description": "Otro", "price": 12, "category": "Electrónicos",
	})
	assert.Equal(t, http.StatusBadRequest, status)

	_, env = call(t, app, http.MethodGet, "/api/products/search?q=mo", nil)
	assert.Equal(t, "Mouse", decode[[]record](t, env.Data)[0].Name)

	_, env = call(t, app, http.MethodGet, "/api/products?minPrice=10&maxPrice=20", nil)
	assert.Equal(t, mouse.ID, decode[[]record](t, env.Data)[0].ID)

	status, _ = call(t, app, http.MethodDelete, "/api/products/"+mouse.ID, nil)
	assert.Equal(t, http.StatusOK, status)
	status, _ = call(t, app, http.MethodGet, "/api/products/"+mouse.ID, nil)
	assert.Equal(t, http.StatusNotFound, status)
}
