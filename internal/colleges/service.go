package colleges

import (
	"context"
	"errors"
	"strings"

	"onlyfounders-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrNotFound  = errors.New("College not found")
	ErrNameTaken = errors.New("College name or code already exists")
)

type Service struct {
	DB *gorm.DB
}

// Create registers a college. Codes are short and uppercase ("VIT", "NITT").
func (s *Service) Create(ctx context.Context, name, code string) (*models.College, error) {
	code = strings.ToUpper(strings.TrimSpace(code))

	var existing models.College
	err := s.DB.WithContext(ctx).Where("name = ? OR code = ?", name, code).First(&existing).Error
	if err == nil {
		return nil, ErrNameTaken
	} else if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	college := &models.College{Name: name, Code: code}
	if err := s.DB.WithContext(ctx).Create(college).Error; err != nil {
		return nil, err
	}
	return college, nil
}

// Get returns one college by id.
func (s *Service) Get(ctx context.Context, collegeID uuid.UUID) (*models.College, error) {
	var college models.College
	if err := s.DB.WithContext(ctx).Where("college_id = ?", collegeID).First(&college).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &college, nil
}

// List returns all colleges.
func (s *Service) List(ctx context.Context) ([]models.College, error) {
	var list []models.College
	if err := s.DB.WithContext(ctx).Order("name ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}
