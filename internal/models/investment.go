package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Investment is one investor->target allocation. At most one row exists per
// (investor, target) pair; a re-submitted allocation overwrites the amount.
type Investment struct {
	InvestmentID   uuid.UUID `gorm:"column:investment_id;type:uuid;primaryKey" json:"investment_id"`
	InvestorTeamID uuid.UUID `gorm:"column:investor_team_id;type:uuid;not null;uniqueIndex:idx_investor_target" json:"investor_team_id"`
	TargetTeamID   uuid.UUID `gorm:"column:target_team_id;type:uuid;not null;uniqueIndex:idx_investor_target;index" json:"target_team_id"`
	Amount         float64   `gorm:"column:amount;type:decimal(18,2);not null;default:0" json:"amount"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func (Investment) TableName() string {
	return "Investments"
}

func (i *Investment) BeforeCreate(tx *gorm.DB) error {
	if i.InvestmentID == uuid.Nil {
		i.InvestmentID = uuid.New()
	}
	return nil
}
