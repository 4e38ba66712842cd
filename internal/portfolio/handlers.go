package portfolio

import (
	"onlyfounders-backend/internal/middleware"
	"onlyfounders-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type Handlers struct {
	Service *Service
}

type commitRequest struct {
	Allocations []struct {
		TargetTeamID string  `json:"target_team_id"`
		Amount       float64 `json:"amount"`
	} `json:"allocations"`
}

// Commit POST /api/v1/portfolio/commit — one-shot allocation for the session
// user's team. The service enforces that the actor is the team lead.
func (h *Handlers) Commit(c *fiber.Ctx) error {
	actor := middleware.GetActor(c)
	if actor == nil {
		return response.Unauthorized(c, "Unauthorized")
	}
	actorID, err := uuid.Parse(actor.UserID)
	if err != nil {
		return response.Unauthorized(c, "Unauthorized")
	}
	if actor.TeamID == "" {
		return response.Error(c, "User not associated with a team", 403, nil)
	}
	teamID, err := uuid.Parse(actor.TeamID)
	if err != nil {
		return response.Error(c, "Invalid UUID format for team_id", 400, nil)
	}

	var body commitRequest
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Allocations are required", 400, nil)
	}
	if len(body.Allocations) == 0 {
		return response.Error(c, "Allocations are required", 400, nil)
	}

	allocations := make([]Allocation, 0, len(body.Allocations))
	for _, a := range body.Allocations {
		targetID, err := uuid.Parse(a.TargetTeamID)
		if err != nil {
			return response.Error(c, "Invalid UUID format for target_team_id", 400, nil)
		}
		allocations = append(allocations, Allocation{TargetTeamID: targetID, Amount: a.Amount})
	}

	result, err := h.Service.Commit(c.Context(), actorID, teamID, allocations)
	if err != nil {
		statusMap := map[error]int{
			ErrForbidden:           403,
			ErrTeamNotFound:        404,
			ErrAlreadyFinalized:    409,
			ErrMarketClosed:        409,
			ErrInvalidAllocation:   400,
			ErrInsufficientBalance: 400,
		}
		if code, ok := statusMap[err]; ok {
			return response.Error(c, err.Error(), code, nil)
		}
		return response.Error(c, "Internal Server Error", 500, nil)
	}

	log.Info().Str("team_id", result.TeamID).Float64("total_invested", result.TotalInvested).Msg("Portfolio committed")
	return response.Success(c, "Portfolio committed", result, nil)
}

// View GET /api/v1/portfolio/view — session user's team portfolio.
func (h *Handlers) View(c *fiber.Ctx) error {
	actor := middleware.GetActor(c)
	if actor == nil {
		return response.Unauthorized(c, "Unauthorized")
	}
	if actor.TeamID == "" {
		return response.Error(c, "User not associated with a team", 403, nil)
	}
	teamID, err := uuid.Parse(actor.TeamID)
	if err != nil {
		return response.Error(c, "Invalid UUID format for team_id", 400, nil)
	}

	p, err := h.Service.View(c.Context(), teamID)
	if err != nil {
		if err == ErrTeamNotFound {
			return response.Error(c, err.Error(), 404, nil)
		}
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Portfolio", p, nil)
}
