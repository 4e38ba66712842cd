package auth

import (
	"testing"

	"onlyfounders-backend/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func setupAuthTest(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Participant{}))
	return db
}

func seedLoginUser(t *testing.T, db *gorm.DB, email, password string) *models.Participant {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	p := &models.Participant{
		Fullname:     "Test User",
		Email:        email,
		PasswordHash: string(hash),
		Role:         "participant",
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

func TestLogin_Valid(t *testing.T) {
	db := setupAuthTest(t)
	seeded := seedLoginUser(t, db, "ada@example.com", "Pass123!")

	p, err := Login(db, LoginInput{Email: "ada@example.com", Password: "Pass123!"})
	require.NoError(t, err)
	assert.Equal(t, seeded.UserID, p.UserID)
}

func TestLogin_MissingFields(t *testing.T) {
	db := setupAuthTest(t)
	_, err := Login(db, LoginInput{})
	assert.Equal(t, ErrEmailPasswordRequired, err)
}

func TestLogin_UnknownEmail(t *testing.T) {
	db := setupAuthTest(t)
	_, err := Login(db, LoginInput{Email: "nobody@example.com", Password: "x"})
	assert.Equal(t, ErrInvalidEmail, err)
}

func TestLogin_WrongPassword(t *testing.T) {
	db := setupAuthTest(t)
	seedLoginUser(t, db, "ada@example.com", "Pass123!")

	_, err := Login(db, LoginInput{Email: "ada@example.com", Password: "wrong"})
	assert.Equal(t, ErrIncorrectPassword, err)
}

func TestVerifySessionUser_Nil(t *testing.T) {
	u, err := VerifySessionUser(nil)
	assert.Nil(t, u)
	assert.Equal(t, ErrNotAuthenticated, err)
}

func TestVerifySessionUser_NoUserID(t *testing.T) {
	u, err := VerifySessionUser(map[string]interface{}{
		"fullname": "Test",
		"email":    "a@b.com",
	})
	assert.Nil(t, u)
	assert.Equal(t, ErrNotAuthenticated, err)
}

func TestVerifySessionUser_Valid(t *testing.T) {
	u, err := VerifySessionUser(map[string]interface{}{
		"user_id":  "550e8400-e29b-41d4-a716-446655440000",
		"fullname": "Test User",
		"email":    "test@example.com",
		"role":     "participant",
		"team_id":  "660e8400-e29b-41d4-a716-446655440000",
	})
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "550e8400-e29b-41d4-a716-446655440000", u.UserID)
	assert.Equal(t, "participant", u.Role)
	require.NotNil(t, u.TeamID)
	assert.Equal(t, "660e8400-e29b-41d4-a716-446655440000", *u.TeamID)
}

func TestVerifySessionUser_NilTeamID(t *testing.T) {
	u, err := VerifySessionUser(map[string]interface{}{
		"user_id":  "550e8400-e29b-41d4-a716-446655440000",
		"fullname": "Test",
		"email":    "a@b.com",
		"role":     "participant",
	})
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Nil(t, u.TeamID)
}
