package auth

import (
	"onlyfounders-backend/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// LoginInput for login request body.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SessionUserShape is the object stored in session and returned by /me.
type SessionUserShape struct {
	UserID   string  `json:"user_id"`
	Fullname string  `json:"fullname"`
	Email    string  `json:"email"`
	Role     string  `json:"role"`
	TeamID   *string `json:"team_id"`
}

// ParticipantFinder abstracts lookup by email+password (GORM in production, doubles in tests).
type ParticipantFinder interface {
	FindByEmailAndPassword(email, password string) (*models.Participant, error)
}

// GormParticipantFinder implements ParticipantFinder using GORM and bcrypt.
type GormParticipantFinder struct{ DB *gorm.DB }

func (g *GormParticipantFinder) FindByEmailAndPassword(email, password string) (*models.Participant, error) {
	return Login(g.DB, LoginInput{Email: email, Password: password})
}

// Login finds a participant by email and verifies the password.
func Login(db *gorm.DB, input LoginInput) (*models.Participant, error) {
	if input.Email == "" || input.Password == "" {
		return nil, ErrEmailPasswordRequired
	}
	var p models.Participant
	if err := db.Where("email = ?", input.Email).First(&p).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrInvalidEmail
		}
		return nil, err
	}
	if p.PasswordHash == "" {
		return nil, ErrInvalidEmail
	}
	if err := bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrIncorrectPassword
	}
	return &p, nil
}

// VerifySessionUser validates the session map and returns the shape for /me.
func VerifySessionUser(sessionUser interface{}) (*SessionUserShape, error) {
	if sessionUser == nil {
		return nil, ErrNotAuthenticated
	}
	m, ok := sessionUser.(map[string]interface{})
	if !ok {
		return nil, ErrNotAuthenticated
	}
	userID, _ := m["user_id"].(string)
	if userID == "" {
		return nil, ErrNotAuthenticated
	}
	out := &SessionUserShape{
		UserID:   userID,
		Fullname: str(m["fullname"]),
		Email:    str(m["email"]),
		Role:     str(m["role"]),
	}
	if t, ok := m["team_id"]; ok && t != nil {
		if s, ok := t.(string); ok {
			out.TeamID = &s
		}
	}
	return out, nil
}

func str(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}
