package participants

import (
	"context"
	"regexp"
	"testing"
	"time"

	"onlyfounders-backend/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupParticipantTest(t *testing.T) (*Service, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Participant{}, &models.College{}))
	return &Service{DB: db}, db
}

func TestRegister(t *testing.T) {
	svc, _ := setupParticipantTest(t)

	p, err := svc.Register(context.Background(), RegisterInput{
		Fullname: "Ada Lovelace",
		Email:    "Ada@Example.com",
		Password: "Pass123!",
	})
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", p.Email)
	assert.Equal(t, "participant", p.Role)
	assert.NotEqual(t, "Pass123!", p.PasswordHash)
	assert.Nil(t, p.EntityID)
}

func TestRegister_EmailTaken(t *testing.T) {
	svc, _ := setupParticipantTest(t)

	_, err := svc.Register(context.Background(), RegisterInput{
		Fullname: "Ada", Email: "ada@example.com", Password: "Pass123!",
	})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), RegisterInput{
		Fullname: "Other", Email: "ADA@example.com", Password: "Pass123!",
	})
	assert.Equal(t, ErrEmailTaken, err)
}

func TestCompleteOnboarding_AssignsEntityID(t *testing.T) {
	svc, _ := setupParticipantTest(t)
	svc.Now = func() time.Time { return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC) }

	p, err := svc.Register(context.Background(), RegisterInput{
		Fullname: "Ada", Email: "ada@example.com", Password: "Pass123!",
	})
	require.NoError(t, err)

	onboarded, err := svc.CompleteOnboarding(context.Background(), p.UserID)
	require.NoError(t, err)
	require.NotNil(t, onboarded.EntityID)
	assert.Regexp(t, regexp.MustCompile(`^OF-2026-[0-9A-F]{4}$`), *onboarded.EntityID)
}

func TestCompleteOnboarding_Immutable(t *testing.T) {
	svc, _ := setupParticipantTest(t)

	p, err := svc.Register(context.Background(), RegisterInput{
		Fullname: "Ada", Email: "ada@example.com", Password: "Pass123!",
	})
	require.NoError(t, err)

	first, err := svc.CompleteOnboarding(context.Background(), p.UserID)
	require.NoError(t, err)

	_, err = svc.CompleteOnboarding(context.Background(), p.UserID)
	assert.Equal(t, ErrAlreadyOnboarded, err)

	// Entity id unchanged.
	again, err := svc.Get(context.Background(), p.UserID)
	require.NoError(t, err)
	assert.Equal(t, *first.EntityID, *again.EntityID)
}

func TestCompleteOnboarding_UnknownUser(t *testing.T) {
	svc, _ := setupParticipantTest(t)
	_, err := svc.CompleteOnboarding(context.Background(), uuid.New())
	assert.Equal(t, ErrNotFound, err)
}

func TestUpdate(t *testing.T) {
	svc, db := setupParticipantTest(t)

	college := &models.College{Name: "VIT", Code: "VIT"}
	require.NoError(t, db.Create(college).Error)

	p, err := svc.Register(context.Background(), RegisterInput{
		Fullname: "Ada", Email: "ada@example.com", Password: "Pass123!",
	})
	require.NoError(t, err)

	name := "Ada King"
	updated, err := svc.Update(context.Background(), p.UserID, UpdateInput{
		Fullname:  &name,
		CollegeID: &college.CollegeID,
	})
	require.NoError(t, err)
	assert.Equal(t, "Ada King", updated.Fullname)
	require.NotNil(t, updated.CollegeID)
	assert.Equal(t, college.CollegeID, *updated.CollegeID)
}

func TestListByCollege(t *testing.T) {
	svc, db := setupParticipantTest(t)

	college := &models.College{Name: "VIT", Code: "VIT"}
	require.NoError(t, db.Create(college).Error)

	for _, name := range []string{"Beta", "Alpha"} {
		p, err := svc.Register(context.Background(), RegisterInput{
			Fullname: name, Email: name + "@example.com", Password: "Pass123!",
		})
		require.NoError(t, err)
		_, err = svc.Update(context.Background(), p.UserID, UpdateInput{CollegeID: &college.CollegeID})
		require.NoError(t, err)
	}

	list, err := svc.ListByCollege(context.Background(), college.CollegeID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Alpha", list[0].Fullname)
}
