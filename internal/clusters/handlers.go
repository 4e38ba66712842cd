package clusters

import (
	"onlyfounders-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *Service
}

var statusMap = map[error]int{
	ErrNotFound:         404,
	ErrTeamNotFound:     404,
	ErrInvalidStage:     409,
	ErrTeamHasCommitted: 409,
}

func mapError(c *fiber.Ctx, err error) error {
	if code, ok := statusMap[err]; ok {
		return response.Error(c, err.Error(), code, nil)
	}
	return response.Error(c, "Internal Server Error", 500, nil)
}

type createRequest struct {
	Name string `json:"name"`
}

// Create POST /api/v1/clusters/create-cluster
func (h *Handlers) Create(c *fiber.Ctx) error {
	var req createRequest
	if err := c.BodyParser(&req); err != nil || req.Name == "" {
		return response.Error(c, "Cluster name is required", 400, nil)
	}
	cluster, err := h.Service.Create(c.Context(), req.Name)
	if err != nil {
		return mapError(c, err)
	}
	return response.SuccessCreated(c, "Cluster created successfully", fiber.Map{"cluster": cluster}, nil)
}

type assignRequest struct {
	TeamID string `json:"team_id"`
}

// AssignTeam POST /api/v1/clusters/:cluster_id/assign-team
func (h *Handlers) AssignTeam(c *fiber.Ctx) error {
	clusterID, err := uuid.Parse(c.Params("cluster_id"))
	if err != nil {
		return response.Error(c, "Invalid UUID format for cluster_id", 400, nil)
	}
	var req assignRequest
	if err := c.BodyParser(&req); err != nil || req.TeamID == "" {
		return response.Error(c, "team_id is required", 400, nil)
	}
	teamID, err := uuid.Parse(req.TeamID)
	if err != nil {
		return response.Error(c, "Invalid UUID format for team_id", 400, nil)
	}
	if err := h.Service.AssignTeam(c.Context(), clusterID, teamID); err != nil {
		return mapError(c, err)
	}
	return response.Success(c, "Team assigned to cluster", fiber.Map{}, nil)
}

// AdvanceStage POST /api/v1/clusters/:cluster_id/advance-stage
func (h *Handlers) AdvanceStage(c *fiber.Ctx) error {
	clusterID, err := uuid.Parse(c.Params("cluster_id"))
	if err != nil {
		return response.Error(c, "Invalid UUID format for cluster_id", 400, nil)
	}
	cluster, err := h.Service.AdvanceStage(c.Context(), clusterID)
	if err != nil {
		return mapError(c, err)
	}
	return response.Success(c, "Stage advanced", fiber.Map{"cluster": cluster}, nil)
}

type biddingRequest struct {
	Open bool `json:"open"`
}

// SetBidding PATCH /api/v1/clusters/:cluster_id/bidding
func (h *Handlers) SetBidding(c *fiber.Ctx) error {
	clusterID, err := uuid.Parse(c.Params("cluster_id"))
	if err != nil {
		return response.Error(c, "Invalid UUID format for cluster_id", 400, nil)
	}
	var req biddingRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	cluster, err := h.Service.SetBidding(c.Context(), clusterID, req.Open)
	if err != nil {
		return mapError(c, err)
	}
	return response.Success(c, "Bidding window updated", fiber.Map{"cluster": cluster}, nil)
}

// Leaderboard GET /api/v1/clusters/:cluster_id/leaderboard
func (h *Handlers) Leaderboard(c *fiber.Ctx) error {
	clusterID, err := uuid.Parse(c.Params("cluster_id"))
	if err != nil {
		return response.Error(c, "Invalid UUID format for cluster_id", 400, nil)
	}
	teams, err := h.Service.Leaderboard(c.Context(), clusterID)
	if err != nil {
		return mapError(c, err)
	}
	return response.Success(c, "Leaderboard", fiber.Map{"teams": teams}, nil)
}

// List GET /api/v1/clusters/get-all-clusters
func (h *Handlers) List(c *fiber.Ctx) error {
	clusters, err := h.Service.List(c.Context())
	if err != nil {
		return mapError(c, err)
	}
	return response.Success(c, "Clusters", fiber.Map{"clusters": clusters}, nil)
}
