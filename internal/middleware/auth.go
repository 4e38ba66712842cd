package middleware

import (
	"onlyfounders-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

const userLocal = "user"

// RequireAuth ensures a user is in the session. Returns 401 with standard error format if not.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := c.Locals(userLocal)
		if user == nil {
			return response.Unauthorized(c, "Unauthorized")
		}
		c.Locals("auth", user)
		return c.Next()
	}
}

// GetUser returns the session user from Locals (nil if not logged in).
func GetUser(c *fiber.Ctx) interface{} {
	return c.Locals(userLocal)
}

// Actor is the authenticated principal extracted from the session map.
type Actor struct {
	UserID string
	Role   string
	TeamID string
}

// GetActor returns the session user as a typed actor, or nil when the
// session map is missing or has no user_id.
func GetActor(c *fiber.Ctx) *Actor {
	u := GetUser(c)
	if u == nil {
		return nil
	}
	m, ok := u.(map[string]interface{})
	if !ok {
		return nil
	}
	userID, _ := m["user_id"].(string)
	if userID == "" {
		return nil
	}
	role, _ := m["role"].(string)
	teamID := ""
	if t, ok := m["team_id"]; ok && t != nil {
		if s, ok := t.(string); ok {
			teamID = s
		}
	}
	return &Actor{UserID: userID, Role: role, TeamID: teamID}
}
