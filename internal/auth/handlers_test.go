package auth

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"onlyfounders-backend/internal/middleware"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAuthHandlers(t *testing.T) (*Handlers, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	db := setupAuthTest(t)
	seedLoginUser(t, db, "ada@example.com", "Pass123!")

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return &Handlers{
		Finder: &GormParticipantFinder{DB: db},
		Rdb:    rdb,
		Config: middleware.SessionConfig{},
	}, mr
}

func TestLoginEndpoint_Success(t *testing.T) {
	h, _ := setupAuthHandlers(t)
	app := fiber.New()
	app.Post("/login", h.Login)

	body, _ := json.Marshal(map[string]string{"email": "ada@example.com", "password": "Pass123!"})
	req := httptest.NewRequest("POST", "/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var result map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&result)
	assert.Equal(t, "success", result["status"])

	// Session cookie is set.
	cookies := resp.Header.Values("Set-Cookie")
	require.NotEmpty(t, cookies)
}

func TestLoginEndpoint_WrongPassword(t *testing.T) {
	h, _ := setupAuthHandlers(t)
	app := fiber.New()
	app.Post("/login", h.Login)

	body, _ := json.Marshal(map[string]string{"email": "ada@example.com", "password": "nope"})
	req := httptest.NewRequest("POST", "/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}

func TestLoginEndpoint_MissingFields(t *testing.T) {
	h, _ := setupAuthHandlers(t)
	app := fiber.New()
	app.Post("/login", h.Login)

	body, _ := json.Marshal(map[string]string{})
	req := httptest.NewRequest("POST", "/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestMeEndpoint_NotAuthenticated(t *testing.T) {
	h, _ := setupAuthHandlers(t)
	app := fiber.New()
	app.Get("/me", h.Me)

	resp, err := app.Test(httptest.NewRequest("GET", "/me", nil))
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}

func TestMeEndpoint_WithSession(t *testing.T) {
	h, _ := setupAuthHandlers(t)
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user", map[string]interface{}{
			"user_id":  "550e8400-e29b-41d4-a716-446655440000",
			"fullname": "Ada",
			"email":    "ada@example.com",
			"role":     "participant",
		})
		return c.Next()
	})
	app.Get("/me", h.Me)

	resp, err := app.Test(httptest.NewRequest("GET", "/me", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}
