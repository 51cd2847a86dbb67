package repository

import (
	"github.com/sweetcrumb/cakeshop-backend/internal/app/model"
	"github.com/sweetcrumb/cakeshop-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SettingsRepository interface {
	Get() (*model.StoreSettings, error)
	Upsert(settings *model.StoreSettings) error
}

type settingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) Get() (*model.StoreSettings, error) {
	logger.Debug("Finding store settings in database")

	var settings model.StoreSettings
	if err := r.db.First(&settings, model.SettingsRowID).Error; err != nil {
		logger.Error("Failed to find store settings in database", err)
		return nil, err
	}

	logger.Debug("Store settings found in database", map[string]interface{}{
		"store_name":            settings.StoreName,
		"minimum_delivery_days": settings.MinimumDeliveryDays,
	})
	return &settings, nil
}

// Upsert writes the singleton row, creating it on first save
func (r *settingsRepository) Upsert(settings *model.StoreSettings) error {
	logger.Debug("Upserting store settings in database", map[string]interface{}{
		"store_name":            settings.StoreName,
		"minimum_delivery_days": settings.MinimumDeliveryDays,
	})

	settings.ID = model.SettingsRowID
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(settings).Error
	if err != nil {
		logger.Error("Failed to upsert store settings in database", err)
		return err
	}

	logger.Debug("Store settings upserted in database", map[string]interface{}{
		"store_name":            settings.StoreName,
		"minimum_delivery_days": settings.MinimumDeliveryDays,
	})
	return nil
}
