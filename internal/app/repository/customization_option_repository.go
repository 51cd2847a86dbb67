package repository

import (
	"github.com/sweetcrumb/cakeshop-backend/internal/app/model"
	"github.com/sweetcrumb/cakeshop-backend/pkg/logger"
	"gorm.io/gorm"
)

type CustomizationOptionRepository interface {
	Create(option *model.CustomizationOption) error
	FindAll() ([]model.CustomizationOption, error)
	FindActive() ([]model.CustomizationOption, error)
	FindByID(id uint) (*model.CustomizationOption, error)
	Update(option *model.CustomizationOption) error
	Delete(id uint) error
}

type customizationOptionRepository struct {
	db *gorm.DB
}

func NewCustomizationOptionRepository(db *gorm.DB) CustomizationOptionRepository {
	return &customizationOptionRepository{db: db}
}

func (r *customizationOptionRepository) Create(option *model.CustomizationOption) error {
	logger.Debug("Creating customization option in database", map[string]interface{}{
		"category":         option.Category,
		"name":             option.Name,
		"price_adjustment": option.PriceAdjustment,
	})

	if err := r.db.Create(option).Error; err != nil {
		logger.Error("Failed to create customization option in database", err, map[string]interface{}{
			"category": option.Category,
			"name":     option.Name,
		})
		return err
	}

	logger.Debug("Customization option created in database", map[string]interface{}{
		"option_id": option.ID,
		"category":  option.Category,
		"name":      option.Name,
	})
	return nil
}

func (r *customizationOptionRepository) FindAll() ([]model.CustomizationOption, error) {
	logger.Debug("Finding all customization options in database")

	var options []model.CustomizationOption
	err := r.db.Order("category ASC, display_order ASC").Find(&options).Error
	if err != nil {
		logger.Error("Failed to find customization options in database", err)
		return nil, err
	}

	logger.Debug("Customization options found in database", map[string]interface{}{
		"count": len(options),
	})
	return options, nil
}

func (r *customizationOptionRepository) FindActive() ([]model.CustomizationOption, error) {
	logger.Debug("Finding active customization options in database")

	var options []model.CustomizationOption
	err := r.db.Where("is_active = ?", true).
		Order("category ASC, display_order ASC").
		Find(&options).Error
	if err != nil {
		logger.Error("Failed to find active customization options in database", err)
		return nil, err
	}

	logger.Debug("Active customization options found in database", map[string]interface{}{
		"count": len(options),
	})
	return options, nil
}

func (r *customizationOptionRepository) FindByID(id uint) (*model.CustomizationOption, error) {
	logger.Debug("Finding customization option by ID in database", map[string]interface{}{
		"option_id": id,
	})

	var option model.CustomizationOption
	if err := r.db.First(&option, id).Error; err != nil {
		logger.Error("Failed to find customization option by ID in database", err, map[string]interface{}{
			"option_id": id,
		})
		return nil, err
	}

	logger.Debug("Customization option found by ID in database", map[string]interface{}{
		"option_id": option.ID,
		"category":  option.Category,
		"name":      option.Name,
	})
	return &option, nil
}

func (r *customizationOptionRepository) Update(option *model.CustomizationOption) error {
	logger.Debug("Updating customization option in database", map[string]interface{}{
		"option_id":        option.ID,
		"category":         option.Category,
		"name":             option.Name,
		"price_adjustment": option.PriceAdjustment,
		"is_active":        option.IsActive,
	})

	if err := r.db.Save(option).Error; err != nil {
		logger.Error("Failed to update customization option in database", err, map[string]interface{}{
			"option_id": option.ID,
		})
		return err
	}

	logger.Debug("Customization option updated in database", map[string]interface{}{
		"option_id": option.ID,
	})
	return nil
}

func (r *customizationOptionRepository) Delete(id uint) error {
	logger.Debug("Deleting customization option from database", map[string]interface{}{
		"option_id": id,
	})

	if err := r.db.Delete(&model.CustomizationOption{}, id).Error; err != nil {
		logger.Error("Failed to delete customization option from database", err, map[string]interface{}{
			"option_id": id,
		})
		return err
	}

	logger.Debug("Customization option deleted from database", map[string]interface{}{
		"option_id": id,
	})
	return nil
}
