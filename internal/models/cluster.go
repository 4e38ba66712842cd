package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Cluster stages for the investment market.
const (
	StageOnboarding = "onboarding"
	StageBidding    = "bidding"
	StageClosed     = "closed"
)

// Cluster groups teams into an isolated market. Investments are only
// accepted while current_stage == bidding and bidding_open is true.
type Cluster struct {
	ClusterID    uuid.UUID `gorm:"column:cluster_id;type:uuid;primaryKey" json:"cluster_id"`
	Name         string    `gorm:"column:name;not null;uniqueIndex" json:"name"`
	CurrentStage string    `gorm:"column:current_stage;not null;default:onboarding" json:"current_stage"`
	BiddingOpen  bool      `gorm:"column:bidding_open;not null;default:false" json:"bidding_open"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (Cluster) TableName() string {
	return "Clusters"
}

func (cl *Cluster) BeforeCreate(tx *gorm.DB) error {
	if cl.ClusterID == uuid.Nil {
		cl.ClusterID = uuid.New()
	}
	return nil
}

// MarketOpen reports whether the cluster currently accepts investments.
func (cl *Cluster) MarketOpen() bool {
	return cl.CurrentStage == StageBidding && cl.BiddingOpen
}
