package participants

import (
	"onlyfounders-backend/internal/middleware"
	"onlyfounders-backend/internal/pkg/response"
	"onlyfounders-backend/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const userSessionsPrefix = "user_sessions:"

type Handlers struct {
	Service *Service
	Rdb     *redis.Client
	Config  middleware.SessionConfig
}

type registerRequest struct {
	Fullname string `json:"fullname"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register POST /api/v1/participants/register — create account + session.
func (h *Handlers) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Missing required fields", 400, nil)
	}
	if req.Fullname == "" || req.Email == "" || req.Password == "" {
		return response.Error(c, "Missing required fields", 400, nil)
	}
	if !validation.IsValidEmail(req.Email) {
		return response.Error(c, "Invalid email format", 400, nil)
	}
	if !validation.IsValidFullname(req.Fullname) {
		return response.Error(c, "Invalid fullname", 400, nil)
	}
	if !validation.IsValidPassword(req.Password) {
		return response.Error(c, "Password must be at least 8 characters with a letter, number and special character", 400, nil)
	}

	p, err := h.Service.Register(c.Context(), RegisterInput{
		Fullname: req.Fullname,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if err == ErrEmailTaken {
			return response.Error(c, err.Error(), 409, nil)
		}
		return response.Error(c, "Internal Server Error", 500, nil)
	}

	sid := middleware.RegenerateSessionID(c)
	middleware.SetSessionUser(c, middleware.SessionUser{
		UserID:   p.UserID.String(),
		Fullname: p.Fullname,
		Email:    p.Email,
		Role:     p.Role,
	})
	if h.Rdb != nil {
		_ = h.Rdb.SAdd(c.Context(), userSessionsPrefix+p.UserID.String(), sid).Err()
	}
	cookie := middleware.SessionCookieConfig(h.Config)
	cookie.Value = sid
	c.Cookie(&cookie)

	return response.SuccessCreated(c, "Participant registered successfully", fiber.Map{"participant": p}, nil)
}

// Me GET /api/v1/participants/me — full profile of the session user.
func (h *Handlers) Me(c *fiber.Ctx) error {
	actor := middleware.GetActor(c)
	if actor == nil {
		return response.Unauthorized(c, "Unauthorized")
	}
	userID, err := uuid.Parse(actor.UserID)
	if err != nil {
		return response.Unauthorized(c, "Unauthorized")
	}
	p, err := h.Service.Get(c.Context(), userID)
	if err != nil {
		return mapError(c, err)
	}
	return response.Success(c, "Participant", fiber.Map{"participant": p}, nil)
}

type updateRequest struct {
	Fullname  *string `json:"fullname"`
	CollegeID *string `json:"college_id"`
}

// Update PATCH /api/v1/participants/me — edit profile fields.
func (h *Handlers) Update(c *fiber.Ctx) error {
	actor := middleware.GetActor(c)
	if actor == nil {
		return response.Unauthorized(c, "Unauthorized")
	}
	userID, err := uuid.Parse(actor.UserID)
	if err != nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req updateRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	in := UpdateInput{Fullname: req.Fullname}
	if req.CollegeID != nil {
		collegeID, err := uuid.Parse(*req.CollegeID)
		if err != nil {
			return response.Error(c, "Invalid UUID format for college_id", 400, nil)
		}
		in.CollegeID = &collegeID
	}

	p, err := h.Service.Update(c.Context(), userID, in)
	if err != nil {
		return mapError(c, err)
	}
	return response.Success(c, "Participant updated", fiber.Map{"participant": p}, nil)
}

// CompleteOnboarding POST /api/v1/participants/onboarding — assign entity id.
func (h *Handlers) CompleteOnboarding(c *fiber.Ctx) error {
	actor := middleware.GetActor(c)
	if actor == nil {
		return response.Unauthorized(c, "Unauthorized")
	}
	userID, err := uuid.Parse(actor.UserID)
	if err != nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	p, err := h.Service.CompleteOnboarding(c.Context(), userID)
	if err != nil {
		if err == ErrAlreadyOnboarded {
			return response.Error(c, err.Error(), 409, nil)
		}
		return mapError(c, err)
	}
	return response.Success(c, "Onboarding complete", fiber.Map{"entity_id": p.EntityID}, nil)
}

// Roster GET /api/v1/participants/roster/:college_id — college admin listing.
func (h *Handlers) Roster(c *fiber.Ctx) error {
	collegeID, err := uuid.Parse(c.Params("college_id"))
	if err != nil {
		return response.Error(c, "Invalid UUID format for college_id", 400, nil)
	}
	list, err := h.Service.ListByCollege(c.Context(), collegeID)
	if err != nil {
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Roster", fiber.Map{"participants": list}, nil)
}

func mapError(c *fiber.Ctx, err error) error {
	if err == ErrNotFound {
		return response.Error(c, err.Error(), 404, nil)
	}
	return response.Error(c, "Internal Server Error", 500, nil)
}
