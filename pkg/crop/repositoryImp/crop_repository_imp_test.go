package repositoryImp

import (
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"farmwise/entities"
	"farmwise/pkg/crop/repository"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&entities.User{},
		&entities.Crop{},
		&entities.Activity{},
		&entities.AdviceRecord{},
	))
	return db
}

func TestCreateStampsIDAndDefaults(t *testing.T) {
	repo := New(newTestDB(t))

	cr := &entities.Crop{UserID: "u1", Name: "Rice"}
	require.NoError(t, repo.Create(cr))

	assert.NotEmpty(t, cr.ID)
	assert.Equal(t, "planted", cr.CurrentStage)
	assert.Equal(t, "good", cr.HealthStatus)
	assert.False(t, cr.CreatedAt.IsZero())

	cr2 := &entities.Crop{UserID: "u1", Name: "Banana"}
	require.NoError(t, repo.Create(cr2))
	assert.NotEqual(t, cr.ID, cr2.ID)

	got, err := repo.FindByID(cr.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rice", got.Name)
	assert.Equal(t, "u1", got.UserID)
}

func TestListByUser(t *testing.T) {
	repo := New(newTestDB(t))

	require.NoError(t, repo.Create(&entities.Crop{UserID: "u1", Name: "Rice"}))
	require.NoError(t, repo.Create(&entities.Crop{UserID: "u1", Name: "Coconut"}))
	require.NoError(t, repo.Create(&entities.Crop{UserID: "u2", Name: "Banana"}))

	out, err := repo.ListByUser("u1")
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "Rice", out[0].Name)
	assert.Equal(t, "Coconut", out[1].Name)
}

func TestUpdatePartial(t *testing.T) {
	repo := New(newTestDB(t))

	cr := &entities.Crop{UserID: "u1", Name: "Rice"}
	require.NoError(t, repo.Create(cr))

	stage := "vegetative"
	got, err := repo.Update(cr.ID, repository.CropPatch{CurrentStage: &stage})
	require.NoError(t, err)
	assert.Equal(t, "vegetative", got.CurrentStage)
	assert.Equal(t, "Rice", got.Name) // untouched

	_, err = repo.Update("missing", repository.CropPatch{CurrentStage: &stage})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestDeleteCascades(t *testing.T) {
	db := newTestDB(t)
	repo := New(db)

	kept := &entities.Crop{UserID: "u1", Name: "Coconut"}
	doomed := &entities.Crop{UserID: "u1", Name: "Rice"}
	require.NoError(t, repo.Create(kept))
	require.NoError(t, repo.Create(doomed))

	for _, cropID := range []string{kept.ID, doomed.ID} {
		require.NoError(t, db.Create(&entities.Activity{CropID: cropID, Type: "watering", Description: "morning round"}).Error)
		require.NoError(t, db.Create(&entities.AdviceRecord{CropID: cropID, AdviceText: "water more"}).Error)
	}

	require.NoError(t, repo.Delete(doomed.ID))

	_, err := repo.FindByID(doomed.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var acts []entities.Activity
	require.NoError(t, db.Where("crop_id = ?", doomed.ID).Find(&acts).Error)
	assert.Empty(t, acts)
	var advs []entities.AdviceRecord
	require.NoError(t, db.Where("crop_id = ?", doomed.ID).Find(&advs).Error)
	assert.Empty(t, advs)

	// the other crop's children are untouched
	require.NoError(t, db.Where("crop_id = ?", kept.ID).Find(&acts).Error)
	assert.Len(t, acts, 1)
	require.NoError(t, db.Where("crop_id = ?", kept.ID).Find(&advs).Error)
	assert.Len(t, advs, 1)

	assert.ErrorIs(t, repo.Delete(doomed.ID), gorm.ErrRecordNotFound)
}

func TestTouchLastActivity(t *testing.T) {
	repo := New(newTestDB(t))

	cr := &entities.Crop{UserID: "u1", Name: "Rice"}
	require.NoError(t, repo.Create(cr))

	now := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, repo.TouchLastActivity(cr.ID, now))

	got, err := repo.FindByID(cr.ID)
	require.NoError(t, err)
	require.NotNil(t, got.LastActivity)
	assert.WithinDuration(t, now, *got.LastActivity, time.Second)

	// unknown crop matches zero rows, silently
	require.NoError(t, repo.TouchLastActivity("missing", now))
}
