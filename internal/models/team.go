package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Team holds the virtual trading balance for the investment market.
// is_finalized flips false->true exactly once, at portfolio commit; the
// conditional update in the portfolio service relies on that column.
type Team struct {
	TeamID        uuid.UUID      `gorm:"column:team_id;type:uuid;primaryKey" json:"team_id"`
	Name          string         `gorm:"column:name;not null" json:"name"`
	Code          string         `gorm:"column:code;type:varchar(10);not null;uniqueIndex" json:"code"`
	CollegeID     *uuid.UUID     `gorm:"column:college_id;type:uuid" json:"college_id"`
	ClusterID     *uuid.UUID     `gorm:"column:cluster_id;type:uuid" json:"cluster_id"`
	LeadID        uuid.UUID      `gorm:"column:lead_id;type:uuid;not null" json:"lead_id"`
	Balance       float64        `gorm:"column:balance;type:decimal(18,2);not null;default:0" json:"balance"`
	TotalInvested float64        `gorm:"column:total_invested;type:decimal(18,2);not null;default:0" json:"total_invested"`
	TotalReceived float64        `gorm:"column:total_received;type:decimal(18,2);not null;default:0" json:"total_received"`
	IsFinalized   bool           `gorm:"column:is_finalized;not null;default:false" json:"is_finalized"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Team) TableName() string {
	return "Teams"
}

func (t *Team) BeforeCreate(tx *gorm.DB) error {
	if t.TeamID == uuid.Nil {
		t.TeamID = uuid.New()
	}
	return nil
}
