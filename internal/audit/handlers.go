package audit

import (
	"onlyfounders-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *Service
}

// List GET /api/v1/audit/events?type=&limit= — admin-only event feed.
func (h *Handlers) List(c *fiber.Ctx) error {
	events, err := h.Service.List(c.Context(), c.Query("type"), c.QueryInt("limit"))
	if err != nil {
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Audit events", fiber.Map{"events": events}, nil)
}
