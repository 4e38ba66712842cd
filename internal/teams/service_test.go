package teams

import (
	"context"
	"testing"

	"onlyfounders-backend/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTeamTest(t *testing.T) (*Service, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Participant{}, &models.Team{}))
	return &Service{DB: db}, db
}

func seedMember(t *testing.T, db *gorm.DB, email string) *models.Participant {
	p := &models.Participant{Fullname: "Member", Email: email, PasswordHash: "x", Role: "participant"}
	require.NoError(t, db.Create(p).Error)
	return p
}

func TestCreate(t *testing.T) {
	svc, db := setupTeamTest(t)
	lead := seedMember(t, db, "lead@example.com")

	team, err := svc.Create(context.Background(), lead.UserID, CreateInput{Name: "Moonshot"})
	require.NoError(t, err)
	assert.Equal(t, "Moonshot", team.Name)
	assert.Equal(t, lead.UserID, team.LeadID)
	assert.Equal(t, float64(1000000), team.Balance)
	assert.Len(t, team.Code, 8)
	assert.False(t, team.IsFinalized)

	var stored models.Participant
	require.NoError(t, db.Where("user_id = ?", lead.UserID).First(&stored).Error)
	require.NotNil(t, stored.TeamID)
	assert.Equal(t, team.TeamID, *stored.TeamID)
}

func TestCreate_AlreadyInTeam(t *testing.T) {
	svc, db := setupTeamTest(t)
	lead := seedMember(t, db, "lead@example.com")

	_, err := svc.Create(context.Background(), lead.UserID, CreateInput{Name: "First"})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), lead.UserID, CreateInput{Name: "Second"})
	assert.Equal(t, ErrAlreadyInTeam, err)
}

func TestJoin(t *testing.T) {
	svc, db := setupTeamTest(t)
	lead := seedMember(t, db, "lead@example.com")
	member := seedMember(t, db, "member@example.com")

	team, err := svc.Create(context.Background(), lead.UserID, CreateInput{Name: "Moonshot"})
	require.NoError(t, err)

	joined, err := svc.Join(context.Background(), member.UserID, team.Code)
	require.NoError(t, err)
	assert.Equal(t, team.TeamID, joined.TeamID)

	view, err := svc.Get(context.Background(), team.TeamID)
	require.NoError(t, err)
	assert.Len(t, view.Members, 2)
}

func TestJoin_InvalidCode(t *testing.T) {
	svc, db := setupTeamTest(t)
	member := seedMember(t, db, "member@example.com")

	_, err := svc.Join(context.Background(), member.UserID, "NOPE1234")
	assert.Equal(t, ErrInvalidCode, err)
}

func TestLeave(t *testing.T) {
	svc, db := setupTeamTest(t)
	lead := seedMember(t, db, "lead@example.com")
	member := seedMember(t, db, "member@example.com")

	team, err := svc.Create(context.Background(), lead.UserID, CreateInput{Name: "Moonshot"})
	require.NoError(t, err)
	_, err = svc.Join(context.Background(), member.UserID, team.Code)
	require.NoError(t, err)

	require.NoError(t, svc.Leave(context.Background(), member.UserID))

	var stored models.Participant
	require.NoError(t, db.Where("user_id = ?", member.UserID).First(&stored).Error)
	assert.Nil(t, stored.TeamID)
}

func TestLeave_LeadCannot(t *testing.T) {
	svc, db := setupTeamTest(t)
	lead := seedMember(t, db, "lead@example.com")

	_, err := svc.Create(context.Background(), lead.UserID, CreateInput{Name: "Moonshot"})
	require.NoError(t, err)

	assert.Equal(t, ErrLeadCannotLeave, svc.Leave(context.Background(), lead.UserID))
}

func TestRename_LeadOnly(t *testing.T) {
	svc, db := setupTeamTest(t)
	lead := seedMember(t, db, "lead@example.com")

	team, err := svc.Create(context.Background(), lead.UserID, CreateInput{Name: "Moonshot"})
	require.NoError(t, err)

	_, err = svc.Rename(context.Background(), uuid.New(), team.TeamID, "Starshot")
	assert.Equal(t, ErrNotLead, err)

	renamed, err := svc.Rename(context.Background(), lead.UserID, team.TeamID, "Starshot")
	require.NoError(t, err)
	assert.Equal(t, "Starshot", renamed.Name)
}
