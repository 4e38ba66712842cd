package participants

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"onlyfounders-backend/internal/constants"
	"onlyfounders-backend/internal/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken       = errors.New("Email already registered")
	ErrNotFound         = errors.New("Participant not found")
	ErrAlreadyOnboarded = errors.New("Participant is already onboarded")
)

type Service struct {
	DB *gorm.DB
	// Now is the clock; nil means time.Now. Tests pin it for entity id years.
	Now func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

type RegisterInput struct {
	Fullname string
	Email    string
	Password string
}

// Register creates a participant account with a bcrypt password hash.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*models.Participant, error) {
	normalized := strings.ToLower(strings.TrimSpace(in.Email))

	var existing models.Participant
	err := s.DB.WithContext(ctx).Where("email = ?", normalized).First(&existing).Error
	if err == nil {
		return nil, ErrEmailTaken
	} else if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	p := &models.Participant{
		Fullname:     in.Fullname,
		Email:        normalized,
		PasswordHash: string(hash),
		Role:         constants.Participant,
	}
	if err := s.DB.WithContext(ctx).Create(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

// Get returns one participant by id.
func (s *Service) Get(ctx context.Context, userID uuid.UUID) (*models.Participant, error) {
	var p models.Participant
	if err := s.DB.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

type UpdateInput struct {
	Fullname  *string
	CollegeID *uuid.UUID
}

// Update edits mutable profile fields. The entity id is never touched here.
func (s *Service) Update(ctx context.Context, userID uuid.UUID, in UpdateInput) (*models.Participant, error) {
	p, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if in.Fullname != nil && *in.Fullname != "" {
		p.Fullname = *in.Fullname
	}
	if in.CollegeID != nil {
		p.CollegeID = in.CollegeID
	}
	if err := s.DB.WithContext(ctx).Save(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

// CompleteOnboarding assigns the one-time entity id. Immutable once set:
// a second call fails instead of reassigning.
func (s *Service) CompleteOnboarding(ctx context.Context, userID uuid.UUID) (*models.Participant, error) {
	p, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p.EntityID != nil && *p.EntityID != "" {
		return nil, ErrAlreadyOnboarded
	}

	year := s.now().Year()
	// uniqueIndex on entity_id backstops the existence check below.
	for attempt := 0; attempt < 5; attempt++ {
		candidate := fmt.Sprintf("OF-%d-%s", year, randomHexUpper(2))
		var clash models.Participant
		err := s.DB.WithContext(ctx).Where("entity_id = ?", candidate).First(&clash).Error
		if err == gorm.ErrRecordNotFound {
			p.EntityID = &candidate
			if err := s.DB.WithContext(ctx).Save(p).Error; err != nil {
				return nil, err
			}
			return p, nil
		} else if err != nil {
			return nil, err
		}
	}
	return nil, errors.New("Could not assign a unique entity id")
}

// ListByCollege returns the roster for a college (college admin view).
func (s *Service) ListByCollege(ctx context.Context, collegeID uuid.UUID) ([]models.Participant, error) {
	var list []models.Participant
	if err := s.DB.WithContext(ctx).Where("college_id = ?", collegeID).Order("fullname ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func randomHexUpper(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return strings.ToUpper(hex.EncodeToString(b))
}
