package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AuditEvent is an append-only record of privileged actions (portfolio
// commits, gate pass revocations). Never updated or deleted.
type AuditEvent struct {
	EventID   uuid.UUID      `gorm:"column:event_id;type:uuid;primaryKey" json:"event_id"`
	EventType string         `gorm:"column:event_type;not null;index" json:"event_type"`
	ActorID   string         `gorm:"column:actor_id;not null" json:"actor_id"`
	TargetID  string         `gorm:"column:target_id" json:"target_id"`
	Metadata  datatypes.JSON `gorm:"column:metadata" json:"metadata"`
	CreatedAt time.Time      `json:"createdAt"`
}

func (AuditEvent) TableName() string {
	return "AuditEvents"
}

func (e *AuditEvent) BeforeCreate(tx *gorm.DB) error {
	if e.EventID == uuid.Nil {
		e.EventID = uuid.New()
	}
	return nil
}
