package portfolio

import (
	"context"
	"math"

	"onlyfounders-backend/internal/audit"
	"onlyfounders-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service struct {
	DB *gorm.DB
}

// Allocation is one investor->target line of a portfolio commit.
type Allocation struct {
	TargetTeamID uuid.UUID `json:"target_team_id"`
	Amount       float64   `json:"amount"`
}

// CommitResult reports the finalized portfolio.
type CommitResult struct {
	TeamID        string  `json:"team_id"`
	TotalInvested float64 `json:"total_invested"`
	Balance       float64 `json:"balance"`
}

// Commit locks in a team's allocation: deducts the balance, writes the
// Investment rows, and flips is_finalized, all in one transaction.
//
// The finalize step runs first as a conditional update on is_finalized=false
// with a balance guard; an affected-row count of 0 means either a concurrent
// commit won the race or the balance no longer covers the sum, so a retry
// after a timeout can never double-deduct.
func (s *Service) Commit(ctx context.Context, actorUserID, teamID uuid.UUID, allocations []Allocation) (*CommitResult, error) {
	var team models.Team
	if err := s.DB.WithContext(ctx).Where("team_id = ?", teamID).First(&team).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}

	if team.LeadID != actorUserID {
		return nil, ErrForbidden
	}
	if team.IsFinalized {
		return nil, ErrAlreadyFinalized
	}
	if team.ClusterID == nil {
		return nil, ErrMarketClosed
	}
	var cluster models.Cluster
	if err := s.DB.WithContext(ctx).Where("cluster_id = ?", *team.ClusterID).First(&cluster).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrMarketClosed
		}
		return nil, err
	}
	if !cluster.MarketOpen() {
		return nil, ErrMarketClosed
	}

	if len(allocations) == 0 {
		return nil, ErrInvalidAllocation
	}
	total := 0.0
	for _, a := range allocations {
		if a.TargetTeamID == teamID {
			return nil, ErrInvalidAllocation
		}
		if a.Amount > 0 {
			total = round2(total + a.Amount)
		}
	}
	if total > team.Balance {
		return nil, ErrInsufficientBalance
	}

	var result CommitResult
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Finalize first. The WHERE clause makes the commit at-most-once:
		// a second attempt (double click, retry) matches zero rows.
		res := tx.Model(&models.Team{}).
			Where("team_id = ? AND is_finalized = ? AND balance >= ?", teamID, false, total).
			Updates(map[string]interface{}{
				"balance":        gorm.Expr("balance - ?", total),
				"total_invested": gorm.Expr("total_invested + ?", total),
				"is_finalized":   true,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrAlreadyFinalized
		}

		for _, a := range allocations {
			if a.Amount <= 0 {
				continue
			}
			if err := upsertInvestment(tx, teamID, a.TargetTeamID, a.Amount, *team.ClusterID); err != nil {
				return err
			}
			if err := recomputeReceived(tx, a.TargetTeamID); err != nil {
				return err
			}
		}

		var committed models.Team
		if err := tx.Where("team_id = ?", teamID).First(&committed).Error; err != nil {
			return err
		}
		result = CommitResult{
			TeamID:        committed.TeamID.String(),
			TotalInvested: committed.TotalInvested,
			Balance:       committed.Balance,
		}

		return audit.Append(tx, "portfolio.commit", actorUserID.String(), teamID.String(), map[string]interface{}{
			"allocations": allocations,
			"total":       total,
		})
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// upsertInvestment writes the single (investor, target) row, overwriting any
// previous amount (replace semantics, not a top-up). The target must be a
// different team in the same cluster.
func upsertInvestment(tx *gorm.DB, investorID, targetID uuid.UUID, amount float64, clusterID uuid.UUID) error {
	var target models.Team
	if err := tx.Where("team_id = ?", targetID).First(&target).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrInvalidAllocation
		}
		return err
	}
	if target.ClusterID == nil || *target.ClusterID != clusterID {
		return ErrInvalidAllocation
	}

	var inv models.Investment
	err := tx.Where("investor_team_id = ? AND target_team_id = ?", investorID, targetID).First(&inv).Error
	if err == gorm.ErrRecordNotFound {
		return tx.Create(&models.Investment{
			InvestorTeamID: investorID,
			TargetTeamID:   targetID,
			Amount:         round2(amount),
		}).Error
	} else if err != nil {
		return err
	}
	inv.Amount = round2(amount)
	return tx.Save(&inv).Error
}

// recomputeReceived rebuilds the target's total_received from the Investment
// rows inside the commit transaction, so concurrent commits toward the same
// target serialize on the row instead of losing updates.
func recomputeReceived(tx *gorm.DB, targetID uuid.UUID) error {
	var sum float64
	if err := tx.Model(&models.Investment{}).
		Where("target_team_id = ?", targetID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&sum).Error; err != nil {
		return err
	}
	return tx.Model(&models.Team{}).
		Where("team_id = ?", targetID).
		Update("total_received", round2(sum)).Error
}

// Portfolio is the read view of a team's market position.
type Portfolio struct {
	TeamID        string              `json:"team_id"`
	Balance       float64             `json:"balance"`
	TotalInvested float64             `json:"total_invested"`
	TotalReceived float64             `json:"total_received"`
	IsFinalized   bool                `json:"is_finalized"`
	Investments   []models.Investment `json:"investments"`
}

// View returns the team's balance and outbound investments.
func (s *Service) View(ctx context.Context, teamID uuid.UUID) (*Portfolio, error) {
	var team models.Team
	if err := s.DB.WithContext(ctx).Where("team_id = ?", teamID).First(&team).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	var investments []models.Investment
	if err := s.DB.WithContext(ctx).Where("investor_team_id = ?", teamID).Order("created_at ASC").Find(&investments).Error; err != nil {
		return nil, err
	}
	return &Portfolio{
		TeamID:        team.TeamID.String(),
		Balance:       team.Balance,
		TotalInvested: team.TotalInvested,
		TotalReceived: team.TotalReceived,
		IsFinalized:   team.IsFinalized,
		Investments:   investments,
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
