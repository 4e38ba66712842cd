package middleware

import (
	"net/http/httptest"
	"testing"

	"onlyfounders-backend/internal/constants"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func permissionApp(permission, role string) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if role != "" {
			c.Locals("user", map[string]interface{}{
				"user_id": "550e8400-e29b-41d4-a716-446655440000",
				"role":    role,
			})
		}
		return c.Next()
	})
	app.Get("/guarded", AuthorizePermission(permission), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func TestAuthorizePermission_Allowed(t *testing.T) {
	app := permissionApp(constants.VerifyGatePass, constants.Verifier)
	resp, err := app.Test(httptest.NewRequest("GET", "/guarded", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}

func TestAuthorizePermission_Forbidden(t *testing.T) {
	app := permissionApp(constants.ManageClusters, constants.Participant)
	resp, err := app.Test(httptest.NewRequest("GET", "/guarded", nil))
	require.NoError(t, err)
	assert.Equal(t, 403, resp.StatusCode)
}

func TestAuthorizePermission_NoSession(t *testing.T) {
	app := permissionApp(constants.VerifyGatePass, "")
	resp, err := app.Test(httptest.NewRequest("GET", "/guarded", nil))
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}

func TestAuthorizePermission_UnknownPermission(t *testing.T) {
	app := permissionApp("does-not-exist", constants.Admin)
	resp, err := app.Test(httptest.NewRequest("GET", "/guarded", nil))
	require.NoError(t, err)
	assert.Equal(t, 500, resp.StatusCode)
}

func TestGetActor(t *testing.T) {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user", map[string]interface{}{
			"user_id": "550e8400-e29b-41d4-a716-446655440000",
			"role":    "participant",
			"team_id": "660e8400-e29b-41d4-a716-446655440000",
		})
		return c.Next()
	})
	app.Get("/", func(c *fiber.Ctx) error {
		actor := GetActor(c)
		require.NotNil(t, actor)
		assert.Equal(t, "participant", actor.Role)
		assert.Equal(t, "660e8400-e29b-41d4-a716-446655440000", actor.TeamID)
		return c.SendString("ok")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}
