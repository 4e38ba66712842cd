package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Participant is a registered event attendee. The entity_id is assigned once
// at onboarding and never changes; the gate token columns hold the most
// recently issued pass for display in the app.
type Participant struct {
	UserID            uuid.UUID      `gorm:"column:user_id;type:uuid;primaryKey" json:"user_id"`
	Fullname          string         `gorm:"column:fullname;not null" json:"fullname"`
	Email             string         `gorm:"column:email;not null;uniqueIndex" json:"email"`
	PasswordHash      string         `gorm:"column:password_hash;not null" json:"-"`
	Role              string         `gorm:"column:role;not null;default:participant" json:"role"`
	CollegeID         *uuid.UUID     `gorm:"column:college_id;type:uuid" json:"college_id"`
	TeamID            *uuid.UUID     `gorm:"column:team_id;type:uuid" json:"team_id"`
	EntityID          *string        `gorm:"column:entity_id;uniqueIndex" json:"entity_id"`
	GateToken         *string        `gorm:"column:gate_token" json:"-"`
	GateTokenIssuedAt *time.Time     `gorm:"column:gate_token_issued_at" json:"gate_token_issued_at"`
	MinValidIssuedAt  *time.Time     `gorm:"column:min_valid_issued_at" json:"-"`
	CreatedAt         time.Time      `json:"createdAt"`
	UpdatedAt         time.Time      `json:"updatedAt"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Participant) TableName() string {
	return "Participants"
}

// BeforeCreate sets UUID if not set (for DBs without gen_random_uuid).
func (p *Participant) BeforeCreate(tx *gorm.DB) error {
	if p.UserID == uuid.Nil {
		p.UserID = uuid.New()
	}
	return nil
}
