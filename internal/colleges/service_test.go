package colleges

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

func setupCollegeTest(t *testing.T) *Service {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.College{}))
	return &Service{DB: db}
}

func TestCreate_NormalizesCode(t *testing.T) {
	svc := setupCollegeTest(t)

	college, err := svc.Create(context.Background(), "Vellore Institute of Technology", " vit ")
	require.NoError(t, err)
	assert.Equal(t, "VIT", college.Code)
}

func TestCreate_DuplicateNameOrCode(t *testing.T) {
	svc := setupCollegeTest(t)

	_, err := svc.Create(context.Background(), "VIT", "VIT")
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), "VIT", "OTHER")
	assert.Equal(t, ErrNameTaken, err)

	_, err = svc.Create(context.Background(), "Other College", "VIT")
	assert.Equal(t, ErrNameTaken, err)
}

func TestGet_NotFound(t *testing.T) {
	svc := setupCollegeTest(t)
	_, err := svc.Get(context.Background(), uuid.New())
	assert.Equal(t, ErrNotFound, err)
}

func TestList_Ordered(t *testing.T) {
	svc := setupCollegeTest(t)
	_, err := svc.Create(context.Background(), "Zeta", "Z1")
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), "Alpha", "A1")
	require.NoError(t, err)

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Alpha", list[0].Name)
}
