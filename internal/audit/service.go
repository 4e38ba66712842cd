package audit

import (
	"context"
	"encoding/json"

	"onlyfounders-backend/internal/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Append writes one audit event. Pass a transaction handle to make the event
// part of an atomic unit (the portfolio commit does this).
func Append(db *gorm.DB, eventType, actorID, targetID string, metadata interface{}) error {
	event := models.AuditEvent{
		EventType: eventType,
		ActorID:   actorID,
		TargetID:  targetID,
	}
	if metadata != nil {
		b, err := json.Marshal(metadata)
		if err != nil {
			return err
		}
		event.Metadata = datatypes.JSON(b)
	}
	return db.Create(&event).Error
}

type Service struct {
	DB *gorm.DB
}

// List returns events newest first, optionally filtered by type.
func (s *Service) List(ctx context.Context, eventType string, limit int) ([]models.AuditEvent, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	q := s.DB.WithContext(ctx).Order("created_at DESC").Limit(limit)
	if eventType != "" {
		q = q.Where("event_type = ?", eventType)
	}
	var events []models.AuditEvent
	if err := q.Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}
