package controller

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sweetcrumb/cakeshop-backend/internal/app/service"
	"github.com/sweetcrumb/cakeshop-backend/internal/errors"
	"github.com/sweetcrumb/cakeshop-backend/internal/middleware"
)

type SettingsController struct {
	settingsService service.SettingsService
}

func NewSettingsController(settingsService service.SettingsService) *SettingsController {
	return &SettingsController{
		settingsService: settingsService,
	}
}

type UpdateSettingsRequest struct {
	StoreName           string `json:"store_name" binding:"required"`
	MinimumDeliveryDays int    `json:"minimum_delivery_days" binding:"required"`
}

// GetSettings returns the store settings. Public so the storefront
// can show the store name and delivery lead time.
// GET /api/v1/settings
func (ctrl *SettingsController) GetSettings(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	settings, err := ctrl.settingsService.GetSettings()
	if err != nil {
		log.Error("Failed to fetch store settings", err, nil)
		errors.InternalError(c, "Failed to fetch store settings")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"settings": settings,
	})
}

// UpdateSettings writes the store settings
// PUT /api/v1/manage/settings
func (ctrl *SettingsController) UpdateSettings(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid update settings request", map[string]interface{}{
			"error": err.Error(),
		})
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid request data")
		return
	}

	settings, err := ctrl.settingsService.UpdateSettings(req.StoreName, req.MinimumDeliveryDays)
	if err != nil {
		if stderrors.Is(err, service.ErrInvalidLeadTime) {
			log.Warn("Rejected settings update: invalid lead time", map[string]interface{}{
				"minimum_delivery_days": req.MinimumDeliveryDays,
			})
			errors.BadRequest(c, errors.SettingsInvalidLeadTime, "Minimum delivery days must be at least 1")
			return
		}
		log.Error("Failed to update store settings", err, nil)
		errors.InternalError(c, "Failed to update store settings")
		return
	}

	log.Info("Store settings updated successfully", map[string]interface{}{
		"store_name":            settings.StoreName,
		"minimum_delivery_days": settings.MinimumDeliveryDays,
	})

	c.JSON(http.StatusOK, gin.H{
		"message":  "Store settings updated successfully",
		"settings": settings,
	})
}
