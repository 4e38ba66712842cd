package clusters

import (
	"context"
	"errors"

	"onlyfounders-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrNotFound         = errors.New("Cluster not found")
	ErrTeamNotFound     = errors.New("Team not found")
	ErrInvalidStage     = errors.New("Invalid stage transition")
	ErrTeamHasCommitted = errors.New("Team has already committed its portfolio")
)

// stageOrder defines the one-way progression of a cluster's market.
var stageOrder = map[string]string{
	models.StageOnboarding: models.StageBidding,
	models.StageBidding:    models.StageClosed,
}

type Service struct {
	DB *gorm.DB
}

// Create makes a cluster in the onboarding stage with bidding closed.
func (s *Service) Create(ctx context.Context, name string) (*models.Cluster, error) {
	cluster := &models.Cluster{
		Name:         name,
		CurrentStage: models.StageOnboarding,
	}
	if err := s.DB.WithContext(ctx).Create(cluster).Error; err != nil {
		return nil, err
	}
	return cluster, nil
}

// AssignTeam places a team into a cluster. A team that has already committed
// cannot be moved between markets.
func (s *Service) AssignTeam(ctx context.Context, clusterID, teamID uuid.UUID) error {
	var cluster models.Cluster
	if err := s.DB.WithContext(ctx).Where("cluster_id = ?", clusterID).First(&cluster).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrNotFound
		}
		return err
	}
	var team models.Team
	if err := s.DB.WithContext(ctx).Where("team_id = ?", teamID).First(&team).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrTeamNotFound
		}
		return err
	}
	if team.IsFinalized {
		return ErrTeamHasCommitted
	}
	team.ClusterID = &cluster.ClusterID
	return s.DB.WithContext(ctx).Save(&team).Error
}

// AdvanceStage moves the cluster to the next stage. Moving out of bidding
// also closes the bidding window.
func (s *Service) AdvanceStage(ctx context.Context, clusterID uuid.UUID) (*models.Cluster, error) {
	var cluster models.Cluster
	if err := s.DB.WithContext(ctx).Where("cluster_id = ?", clusterID).First(&cluster).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	next, ok := stageOrder[cluster.CurrentStage]
	if !ok {
		return nil, ErrInvalidStage
	}
	cluster.CurrentStage = next
	if next != models.StageBidding {
		cluster.BiddingOpen = false
	}
	if err := s.DB.WithContext(ctx).Save(&cluster).Error; err != nil {
		return nil, err
	}
	return &cluster, nil
}

// SetBidding opens or closes the bidding window. Opening requires the
// bidding stage; closing is always allowed.
func (s *Service) SetBidding(ctx context.Context, clusterID uuid.UUID, open bool) (*models.Cluster, error) {
	var cluster models.Cluster
	if err := s.DB.WithContext(ctx).Where("cluster_id = ?", clusterID).First(&cluster).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if open && cluster.CurrentStage != models.StageBidding {
		return nil, ErrInvalidStage
	}
	cluster.BiddingOpen = open
	if err := s.DB.WithContext(ctx).Save(&cluster).Error; err != nil {
		return nil, err
	}
	return &cluster, nil
}

// Leaderboard returns the cluster's teams ordered by received investment.
func (s *Service) Leaderboard(ctx context.Context, clusterID uuid.UUID) ([]models.Team, error) {
	var cluster models.Cluster
	if err := s.DB.WithContext(ctx).Where("cluster_id = ?", clusterID).First(&cluster).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var teams []models.Team
	if err := s.DB.WithContext(ctx).Where("cluster_id = ?", clusterID).Order("total_received DESC").Find(&teams).Error; err != nil {
		return nil, err
	}
	return teams, nil
}

// List returns all clusters.
func (s *Service) List(ctx context.Context) ([]models.Cluster, error) {
	var clusters []models.Cluster
	if err := s.DB.WithContext(ctx).Order("name ASC").Find(&clusters).Error; err != nil {
		return nil, err
	}
	return clusters, nil
}
