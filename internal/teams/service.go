package teams

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"

	"onlyfounders-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrNotFound        = errors.New("Team not found")
	ErrAlreadyInTeam   = errors.New("Participant is already in a team")
	ErrNotInTeam       = errors.New("Participant is not in a team")
	ErrNotLead         = errors.New("Only the team lead can do this")
	ErrLeadCannotLeave = errors.New("Team lead cannot leave the team")
	ErrInvalidCode     = errors.New("Invalid team code")
)

// Starting virtual balance for the investment market.
const initialBalance = 1_000_000

type Service struct {
	DB *gorm.DB
}

type CreateInput struct {
	Name      string
	CollegeID *uuid.UUID
}

// Create makes a team with the acting participant as lead and member.
func (s *Service) Create(ctx context.Context, leadUserID uuid.UUID, in CreateInput) (*models.Team, error) {
	var result *models.Team
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var lead models.Participant
		if err := tx.Where("user_id = ?", leadUserID).First(&lead).Error; err != nil {
			return err
		}
		if lead.TeamID != nil {
			return ErrAlreadyInTeam
		}

		team := &models.Team{
			Name:      in.Name,
			Code:      randomCode(4),
			CollegeID: in.CollegeID,
			LeadID:    leadUserID,
			Balance:   initialBalance,
		}
		if err := tx.Create(team).Error; err != nil {
			return err
		}

		lead.TeamID = &team.TeamID
		if err := tx.Save(&lead).Error; err != nil {
			return err
		}
		result = team
		return nil
	})
	return result, err
}

// Join adds the participant to the team with the given join code.
func (s *Service) Join(ctx context.Context, userID uuid.UUID, code string) (*models.Team, error) {
	var result *models.Team
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p models.Participant
		if err := tx.Where("user_id = ?", userID).First(&p).Error; err != nil {
			return err
		}
		if p.TeamID != nil {
			return ErrAlreadyInTeam
		}

		var team models.Team
		if err := tx.Where("code = ?", strings.ToUpper(strings.TrimSpace(code))).First(&team).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrInvalidCode
			}
			return err
		}

		p.TeamID = &team.TeamID
		if err := tx.Save(&p).Error; err != nil {
			return err
		}
		result = &team
		return nil
	})
	return result, err
}

// Leave removes the participant from their team. The lead cannot leave.
func (s *Service) Leave(ctx context.Context, userID uuid.UUID) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p models.Participant
		if err := tx.Where("user_id = ?", userID).First(&p).Error; err != nil {
			return err
		}
		if p.TeamID == nil {
			return ErrNotInTeam
		}

		var team models.Team
		if err := tx.Where("team_id = ?", *p.TeamID).First(&team).Error; err != nil {
			return err
		}
		if team.LeadID == userID {
			return ErrLeadCannotLeave
		}

		p.TeamID = nil
		return tx.Save(&p).Error
	})
}

// TeamView is a team plus its member roster.
type TeamView struct {
	Team    models.Team          `json:"team"`
	Members []models.Participant `json:"members"`
}

// Get returns the team and its members.
func (s *Service) Get(ctx context.Context, teamID uuid.UUID) (*TeamView, error) {
	var team models.Team
	if err := s.DB.WithContext(ctx).Where("team_id = ?", teamID).First(&team).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var members []models.Participant
	if err := s.DB.WithContext(ctx).Where("team_id = ?", teamID).Order("fullname ASC").Find(&members).Error; err != nil {
		return nil, err
	}
	return &TeamView{Team: team, Members: members}, nil
}

// Rename changes the team name. Lead only.
func (s *Service) Rename(ctx context.Context, actorUserID, teamID uuid.UUID, name string) (*models.Team, error) {
	var team models.Team
	if err := s.DB.WithContext(ctx).Where("team_id = ?", teamID).First(&team).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if team.LeadID != actorUserID {
		return nil, ErrNotLead
	}
	team.Name = name
	if err := s.DB.WithContext(ctx).Save(&team).Error; err != nil {
		return nil, err
	}
	return &team, nil
}

func randomCode(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return strings.ToUpper(hex.EncodeToString(b))
}
