package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// College is the institution a participant or team belongs to.
type College struct {
	CollegeID uuid.UUID `gorm:"column:college_id;type:uuid;primaryKey" json:"college_id"`
	Name      string    `gorm:"column:name;not null;uniqueIndex" json:"name"`
	Code      string    `gorm:"column:code;type:varchar(10);not null;uniqueIndex" json:"code"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (College) TableName() string {
	return "Colleges"
}

func (c *College) BeforeCreate(tx *gorm.DB) error {
	if c.CollegeID == uuid.Nil {
		c.CollegeID = uuid.New()
	}
	return nil
}
