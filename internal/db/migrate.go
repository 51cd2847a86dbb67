package db

import (
	"github.com/sweetcrumb/cakeshop-backend/internal/app/model"
	"github.com/sweetcrumb/cakeshop-backend/pkg/logger"
)

// Migrate runs database migrations
func Migrate() error {
	logger.Info("Running database migrations...")

	models := []interface{}{
		&model.User{},
		&model.Product{},
		&model.CustomizationOption{},
		&model.CartItem{},
		&model.Order{},
		&model.OrderItem{},
		&model.StoreSettings{},
	}

	if err := DB.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	if err := seedInitialData(); err != nil {
		logger.Error("Failed to seed initial data during migration", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}

// Seed adds initial data to the database (optional)
func Seed() error {
	return seedInitialData()
}

func seedInitialData() error {
	logger.Info("Seeding initial data...")

	if err := seedStoreSettings(); err != nil {
		logger.Error("Failed to seed store settings", err)
		return err
	}

	if err := seedCustomizationOptions(); err != nil {
		logger.Error("Failed to seed customization options", err)
		return err
	}

	logger.Info("Initial data seeded successfully")
	return nil
}

// seedStoreSettings creates the singleton settings row if missing
func seedStoreSettings() error {
	var count int64
	if err := DB.Model(&model.StoreSettings{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	settings := model.DefaultStoreSettings()
	if err := DB.Create(settings).Error; err != nil {
		return err
	}

	logger.Info("Store settings seeded", map[string]interface{}{
		"store_name":            settings.StoreName,
		"minimum_delivery_days": settings.MinimumDeliveryDays,
	})
	return nil
}

// seedCustomizationOptions creates the default price list. The values
// mirror the degraded-mode fallback table so a fresh install prices
// identically with or without the option rows.
func seedCustomizationOptions() error {
	var count int64
	if err := DB.Model(&model.CustomizationOption{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		logger.Info("Customization options already seeded, skipping...", map[string]interface{}{
			"existing_count": count,
		})
		return nil
	}

	options := []model.CustomizationOption{
		{Category: model.OptionCategorySize, Name: "Small", PriceAdjustment: 0, IsActive: true, DisplayOrder: 1},
		{Category: model.OptionCategorySize, Name: "Medium", PriceAdjustment: 10, IsActive: true, DisplayOrder: 2},
		{Category: model.OptionCategorySize, Name: "Large", PriceAdjustment: 20, IsActive: true, DisplayOrder: 3},

		{Category: model.OptionCategoryTopping, Name: "Fresh Strawberries", PriceAdjustment: 3, IsActive: true, DisplayOrder: 1},
		{Category: model.OptionCategoryTopping, Name: "Chocolate Shavings", PriceAdjustment: 3, IsActive: true, DisplayOrder: 2},
		{Category: model.OptionCategoryTopping, Name: "Sprinkles", PriceAdjustment: 3, IsActive: true, DisplayOrder: 3},
		{Category: model.OptionCategoryTopping, Name: "Edible Flowers", PriceAdjustment: 3, IsActive: true, DisplayOrder: 4},
		{Category: model.OptionCategoryTopping, Name: "Macarons", PriceAdjustment: 3, IsActive: true, DisplayOrder: 5},

		{Category: model.OptionCategoryColor, Name: "Classic White", PriceAdjustment: 0, IsActive: true, DisplayOrder: 1},
		{Category: model.OptionCategoryColor, Name: "Pink", PriceAdjustment: 0, IsActive: true, DisplayOrder: 2},
		{Category: model.OptionCategoryColor, Name: "Blue", PriceAdjustment: 0, IsActive: true, DisplayOrder: 3},
		{Category: model.OptionCategoryColor, Name: "Gold", PriceAdjustment: 0, IsActive: true, DisplayOrder: 4},

		{Category: model.OptionCategoryFlavor, Name: "Vanilla", PriceAdjustment: 0, IsActive: true, DisplayOrder: 1},
		{Category: model.OptionCategoryFlavor, Name: "Chocolate", PriceAdjustment: 0, IsActive: true, DisplayOrder: 2},
		{Category: model.OptionCategoryFlavor, Name: "Red Velvet", PriceAdjustment: 0, IsActive: true, DisplayOrder: 3},
		{Category: model.OptionCategoryFlavor, Name: "Lemon", PriceAdjustment: 0, IsActive: true, DisplayOrder: 4},
	}

	for _, option := range options {
		if err := DB.Create(&option).Error; err != nil {
			logger.Error("Failed to create customization option", err, map[string]interface{}{
				"category": option.Category,
				"name":     option.Name,
			})
			return err
		}
	}

	logger.Info("Customization options seeded successfully", map[string]interface{}{
		"total_options": len(options),
	})
	return nil
}
