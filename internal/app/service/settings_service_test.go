package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sweetcrumb/cakeshop-backend/internal/app/model"
	"github.com/sweetcrumb/cakeshop-backend/internal/app/repository"
	"github.com/sweetcrumb/cakeshop-backend/internal/db"
)

func setupSettingsServiceTest(t *testing.T) SettingsService {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	return NewSettingsService(repository.NewSettingsRepository(testDB))
}

func TestSettingsService_GetMinimumDeliveryDays_DefaultWhenMissing(t *testing.T) {
	service := setupSettingsServiceTest(t)

	// No settings row yet: checkout validation still gets a floor
	assert.Equal(t, model.DefaultMinimumDeliveryDays, service.GetMinimumDeliveryDays())
}

func TestSettingsService_UpdateAndGet(t *testing.T) {
	service := setupSettingsServiceTest(t)

	updated, err := service.UpdateSettings("Sweet Crumb Cakes", 4)
	require.NoError(t, err)
	assert.Equal(t, 4, updated.MinimumDeliveryDays)

	settings, err := service.GetSettings()
	require.NoError(t, err)
	assert.Equal(t, "Sweet Crumb Cakes", settings.StoreName)
	assert.Equal(t, 4, settings.MinimumDeliveryDays)
	assert.Equal(t, 4, service.GetMinimumDeliveryDays())
}

func TestSettingsService_UpdateSettings_RejectsInvalidLeadTime(t *testing.T) {
	service := setupSettingsServiceTest(t)

	_, err := service.UpdateSettings("Sweet Crumb Cakes", 0)
	assert.ErrorIs(t, err, ErrInvalidLeadTime)

	_, err = service.UpdateSettings("Sweet Crumb Cakes", -3)
	assert.ErrorIs(t, err, ErrInvalidLeadTime)
}

func TestSettingsService_UpdateSettings_SingletonRow(t *testing.T) {
	service := setupSettingsServiceTest(t)

	_, err := service.UpdateSettings("First Name", 2)
	require.NoError(t, err)
	_, err = service.UpdateSettings("Second Name", 3)
	require.NoError(t, err)

	settings, err := service.GetSettings()
	require.NoError(t, err)
	assert.Equal(t, model.SettingsRowID, settings.ID)
	assert.Equal(t, "Second Name", settings.StoreName)
}
