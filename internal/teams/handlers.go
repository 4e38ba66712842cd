package teams

import (
	"onlyfounders-backend/internal/middleware"
	"onlyfounders-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *Service
}

type createRequest struct {
	Name      string  `json:"name"`
	CollegeID *string `json:"college_id"`
}

// Create POST /api/v1/teams/create-team
func (h *Handlers) Create(c *fiber.Ctx) error {
	actor := middleware.GetActor(c)
	if actor == nil {
		return response.Unauthorized(c, "Unauthorized")
	}
	userID, err := uuid.Parse(actor.UserID)
	if err != nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req createRequest
	if err := c.BodyParser(&req); err != nil || req.Name == "" {
		return response.Error(c, "Team name is required", 400, nil)
	}
	in := CreateInput{Name: req.Name}
	if req.CollegeID != nil {
		collegeID, err := uuid.Parse(*req.CollegeID)
		if err != nil {
			return response.Error(c, "Invalid UUID format for college_id", 400, nil)
		}
		in.CollegeID = &collegeID
	}

	team, err := h.Service.Create(c.Context(), userID, in)
	if err != nil {
		if err == ErrAlreadyInTeam {
			return response.Error(c, err.Error(), 409, nil)
		}
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	refreshSessionTeam(c, team.TeamID.String())
	return response.SuccessCreated(c, "Team created successfully", fiber.Map{"team": team}, nil)
}

type joinRequest struct {
	Code string `json:"code"`
}

// Join POST /api/v1/teams/join-team
func (h *Handlers) Join(c *fiber.Ctx) error {
	actor := middleware.GetActor(c)
	if actor == nil {
		return response.Unauthorized(c, "Unauthorized")
	}
	userID, err := uuid.Parse(actor.UserID)
	if err != nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req joinRequest
	if err := c.BodyParser(&req); err != nil || req.Code == "" {
		return response.Error(c, "Team code is required", 400, nil)
	}

	team, err := h.Service.Join(c.Context(), userID, req.Code)
	if err != nil {
		statusMap := map[error]int{
			ErrAlreadyInTeam: 409,
			ErrInvalidCode:   404,
		}
		if code, ok := statusMap[err]; ok {
			return response.Error(c, err.Error(), code, nil)
		}
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	refreshSessionTeam(c, team.TeamID.String())
	return response.Success(c, "Joined team", fiber.Map{"team": team}, nil)
}

// Leave POST /api/v1/teams/leave-team
func (h *Handlers) Leave(c *fiber.Ctx) error {
	actor := middleware.GetActor(c)
	if actor == nil {
		return response.Unauthorized(c, "Unauthorized")
	}
	userID, err := uuid.Parse(actor.UserID)
	if err != nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	if err := h.Service.Leave(c.Context(), userID); err != nil {
		statusMap := map[error]int{
			ErrNotInTeam:       409,
			ErrLeadCannotLeave: 403,
		}
		if code, ok := statusMap[err]; ok {
			return response.Error(c, err.Error(), code, nil)
		}
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	refreshSessionTeam(c, "")
	return response.Success(c, "Left team", fiber.Map{}, nil)
}

// Get GET /api/v1/teams/view-team/:team_id
func (h *Handlers) Get(c *fiber.Ctx) error {
	teamID, err := uuid.Parse(c.Params("team_id"))
	if err != nil {
		return response.Error(c, "Invalid UUID format for team_id", 400, nil)
	}
	view, err := h.Service.Get(c.Context(), teamID)
	if err != nil {
		if err == ErrNotFound {
			return response.Error(c, err.Error(), 404, nil)
		}
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Team", view, nil)
}

type renameRequest struct {
	Name string `json:"name"`
}

// Rename PATCH /api/v1/teams/rename-team/:team_id — lead only.
func (h *Handlers) Rename(c *fiber.Ctx) error {
	actor := middleware.GetActor(c)
	if actor == nil {
		return response.Unauthorized(c, "Unauthorized")
	}
	userID, err := uuid.Parse(actor.UserID)
	if err != nil {
		return response.Unauthorized(c, "Unauthorized")
	}
	teamID, err := uuid.Parse(c.Params("team_id"))
	if err != nil {
		return response.Error(c, "Invalid UUID format for team_id", 400, nil)
	}

	var req renameRequest
	if err := c.BodyParser(&req); err != nil || req.Name == "" {
		return response.Error(c, "Team name is required", 400, nil)
	}

	team, err := h.Service.Rename(c.Context(), userID, teamID, req.Name)
	if err != nil {
		statusMap := map[error]int{
			ErrNotFound: 404,
			ErrNotLead:  403,
		}
		if code, ok := statusMap[err]; ok {
			return response.Error(c, err.Error(), code, nil)
		}
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Team renamed", fiber.Map{"team": team}, nil)
}

// refreshSessionTeam keeps the session's team_id in sync after join/leave so
// portfolio routes see the new membership without a re-login.
func refreshSessionTeam(c *fiber.Ctx, teamID string) {
	u := middleware.GetUser(c)
	m, ok := u.(map[string]interface{})
	if !ok {
		return
	}
	user := middleware.SessionUser{
		UserID:   str(m["user_id"]),
		Fullname: str(m["fullname"]),
		Email:    str(m["email"]),
		Role:     str(m["role"]),
	}
	if teamID != "" {
		user.TeamID = &teamID
	}
	middleware.SetSessionUser(c, user)
}

func str(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}
