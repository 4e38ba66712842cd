package colleges

import (
	"onlyfounders-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *Service
}

type createRequest struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// Create POST /api/v1/colleges/create-college — superadmin only.
func (h *Handlers) Create(c *fiber.Ctx) error {
	var req createRequest
	if err := c.BodyParser(&req); err != nil || req.Name == "" || req.Code == "" {
		return response.Error(c, "Name and code are required", 400, nil)
	}
	college, err := h.Service.Create(c.Context(), req.Name, req.Code)
	if err != nil {
		if err == ErrNameTaken {
			return response.Error(c, err.Error(), 409, nil)
		}
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.SuccessCreated(c, "College created successfully", fiber.Map{"college": college}, nil)
}

// Get GET /api/v1/colleges/view-college/:college_id
func (h *Handlers) Get(c *fiber.Ctx) error {
	collegeID, err := uuid.Parse(c.Params("college_id"))
	if err != nil {
		return response.Error(c, "Invalid UUID format for college_id", 400, nil)
	}
	college, err := h.Service.Get(c.Context(), collegeID)
	if err != nil {
		if err == ErrNotFound {
			return response.Error(c, err.Error(), 404, nil)
		}
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "College", fiber.Map{"college": college}, nil)
}

// List GET /api/v1/colleges/get-all-colleges
func (h *Handlers) List(c *fiber.Ctx) error {
	list, err := h.Service.List(c.Context())
	if err != nil {
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Colleges", fiber.Map{"colleges": list}, nil)
}
