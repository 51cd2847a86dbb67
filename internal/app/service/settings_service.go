package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/sweetcrumb/cakeshop-backend/internal/app/model"
	"github.com/sweetcrumb/cakeshop-backend/internal/app/repository"
	"github.com/sweetcrumb/cakeshop-backend/pkg/logger"
	"github.com/sweetcrumb/cakeshop-backend/pkg/redis"
)

var ErrInvalidLeadTime = errors.New("minimum delivery days must be at least 1")

const (
	settingsCacheKey = "store:settings"
	settingsCacheTTL = 5 * time.Minute
)

type SettingsService interface {
	GetSettings() (*model.StoreSettings, error)
	UpdateSettings(storeName string, minimumDeliveryDays int) (*model.StoreSettings, error)
	GetMinimumDeliveryDays() int
}

type settingsService struct {
	settingsRepo repository.SettingsRepository
}

func NewSettingsService(settingsRepo repository.SettingsRepository) SettingsService {
	return &settingsService{settingsRepo: settingsRepo}
}

func (s *settingsService) GetSettings() (*model.StoreSettings, error) {
	ctx := context.Background()

	if cached, ok := redis.CacheGet(ctx, settingsCacheKey); ok {
		var settings model.StoreSettings
		if err := json.Unmarshal([]byte(cached), &settings); err == nil {
			logger.Debug("Store settings served from cache")
			return &settings, nil
		}
		redis.CacheDelete(ctx, settingsCacheKey)
	}

	settings, err := s.settingsRepo.Get()
	if err != nil {
		logger.Error("Failed to fetch store settings", err)
		return nil, err
	}

	if payload, err := json.Marshal(settings); err == nil {
		redis.CacheSet(ctx, settingsCacheKey, string(payload), settingsCacheTTL)
	}

	logger.Debug("Store settings fetched", map[string]interface{}{
		"store_name":            settings.StoreName,
		"minimum_delivery_days": settings.MinimumDeliveryDays,
	})
	return settings, nil
}

func (s *settingsService) UpdateSettings(storeName string, minimumDeliveryDays int) (*model.StoreSettings, error) {
	logger.Info("Updating store settings", map[string]interface{}{
		"store_name":            storeName,
		"minimum_delivery_days": minimumDeliveryDays,
	})

	if minimumDeliveryDays < 1 {
		logger.Warn("Rejected store settings update: invalid lead time", map[string]interface{}{
			"minimum_delivery_days": minimumDeliveryDays,
		})
		return nil, ErrInvalidLeadTime
	}

	settings := &model.StoreSettings{
		StoreName:           storeName,
		MinimumDeliveryDays: minimumDeliveryDays,
	}
	if err := s.settingsRepo.Upsert(settings); err != nil {
		logger.Error("Failed to update store settings", err)
		return nil, err
	}

	redis.CacheDelete(context.Background(), settingsCacheKey)

	logger.Info("Store settings updated successfully", map[string]interface{}{
		"store_name":            settings.StoreName,
		"minimum_delivery_days": settings.MinimumDeliveryDays,
	})
	return settings, nil
}

// GetMinimumDeliveryDays never fails; an unreadable settings row
// degrades to the default so checkout validation still runs.
func (s *settingsService) GetMinimumDeliveryDays() int {
	settings, err := s.GetSettings()
	if err != nil {
		logger.Warn("Store settings unavailable, using default lead time", map[string]interface{}{
			"default_days": model.DefaultMinimumDeliveryDays,
			"error":        err.Error(),
		})
		return model.DefaultMinimumDeliveryDays
	}
	if settings.MinimumDeliveryDays < 1 {
		return model.DefaultMinimumDeliveryDays
	}
	return settings.MinimumDeliveryDays
}
