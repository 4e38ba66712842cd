package gatepass

import (
	"onlyfounders-backend/internal/audit"
	"onlyfounders-backend/internal/middleware"
	"onlyfounders-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type Handlers struct {
	Service *Service
}

// Issue POST /api/v1/gatepass/issue — sign a fresh pass for the session user.
func (h *Handlers) Issue(c *fiber.Ctx) error {
	actor := middleware.GetActor(c)
	if actor == nil {
		return response.Unauthorized(c, "Unauthorized")
	}
	userID, err := uuid.Parse(actor.UserID)
	if err != nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	token, err := h.Service.Issue(c.Context(), userID)
	if err != nil {
		return mapIssueError(c, err)
	}
	return response.Success(c, "Gate pass issued", fiber.Map{"token": token}, nil)
}

// Mine GET /api/v1/gatepass/mine — return the stored pass (issue lazily).
func (h *Handlers) Mine(c *fiber.Ctx) error {
	actor := middleware.GetActor(c)
	if actor == nil {
		return response.Unauthorized(c, "Unauthorized")
	}
	userID, err := uuid.Parse(actor.UserID)
	if err != nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	token, err := h.Service.Current(c.Context(), userID)
	if err != nil {
		return mapIssueError(c, err)
	}
	return response.Success(c, "Gate pass", fiber.Map{"token": token}, nil)
}

// Verify POST /api/v1/gatepass/verify — scan check at the gate (verifier role).
func (h *Handlers) Verify(c *fiber.Ctx) error {
	var body struct {
		Token string `json:"token"`
	}
	if err := c.BodyParser(&body); err != nil || body.Token == "" {
		return response.Error(c, "Token is required", 400, nil)
	}

	result, err := h.Service.Verify(c.Context(), body.Token)
	if err != nil {
		switch err {
		case ErrMalformedToken:
			return response.Error(c, err.Error(), 400, nil)
		case ErrExpired, ErrInvalidSignature:
			return response.Error(c, err.Error(), 401, nil)
		case ErrNotFound:
			return response.Error(c, err.Error(), 404, nil)
		}
		return response.Error(c, "Internal Server Error", 500, nil)
	}

	log.Info().Str("entity_id", result.EntityID).Msg("Gate pass verified")
	return response.Success(c, "Gate pass valid", result, nil)
}

// Revoke POST /api/v1/gatepass/revoke — invalidate the session user's
// outstanding passes via the watermark, then record the action.
func (h *Handlers) Revoke(c *fiber.Ctx) error {
	actor := middleware.GetActor(c)
	if actor == nil {
		return response.Unauthorized(c, "Unauthorized")
	}
	userID, err := uuid.Parse(actor.UserID)
	if err != nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	if err := h.Service.Revoke(c.Context(), userID); err != nil {
		return mapIssueError(c, err)
	}
	_ = audit.Append(h.Service.DB.WithContext(c.Context()), "gatepass.revoke", actor.UserID, actor.UserID, nil)
	return response.Success(c, "Gate passes revoked", fiber.Map{}, nil)
}

func mapIssueError(c *fiber.Ctx, err error) error {
	switch err {
	case ErrNotFound:
		return response.Error(c, err.Error(), 404, nil)
	case ErrNotOnboarded:
		return response.Error(c, err.Error(), 409, nil)
	}
	return response.Error(c, "Internal Server Error", 500, nil)
}
