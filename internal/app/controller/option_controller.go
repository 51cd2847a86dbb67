package controller

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sweetcrumb/cakeshop-backend/internal/app/model"
	"github.com/sweetcrumb/cakeshop-backend/internal/app/service"
	"github.com/sweetcrumb/cakeshop-backend/internal/errors"
	"github.com/sweetcrumb/cakeshop-backend/internal/middleware"
)

type OptionController struct {
	optionService service.OptionService
}

func NewOptionController(optionService service.OptionService) *OptionController {
	return &OptionController{
		optionService: optionService,
	}
}

type OptionRequest struct {
	Category        model.OptionCategory `json:"category" binding:"required"`
	Name            string               `json:"name" binding:"required"`
	PriceAdjustment float64              `json:"price_adjustment"`
	IsActive        *bool                `json:"is_active"`
	DisplayOrder    int                  `json:"display_order"`
}

func (r *OptionRequest) toInput() service.OptionInput {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return service.OptionInput{
		Category:        r.Category,
		Name:            r.Name,
		PriceAdjustment: r.PriceAdjustment,
		IsActive:        active,
		DisplayOrder:    r.DisplayOrder,
	}
}

// GetActiveOptions returns the active price list for the storefront
// GET /api/v1/options
func (ctrl *OptionController) GetActiveOptions(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	options, err := ctrl.optionService.GetActiveOptions()
	if err != nil {
		log.Error("Failed to fetch active options", err, nil)
		errors.InternalError(c, "Failed to fetch customization options")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"options": options,
		"count":   len(options),
	})
}

// GetAllOptions returns every option, active or not
// GET /api/v1/manage/options
func (ctrl *OptionController) GetAllOptions(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	options, err := ctrl.optionService.GetAllOptions()
	if err != nil {
		log.Error("Failed to fetch options", err, nil)
		errors.InternalError(c, "Failed to fetch customization options")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"options": options,
		"count":   len(options),
	})
}

// CreateOption adds an entry to the price list
// POST /api/v1/manage/options
func (ctrl *OptionController) CreateOption(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req OptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid create option request", map[string]interface{}{
			"error": err.Error(),
		})
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid request data")
		return
	}

	option, err := ctrl.optionService.CreateOption(req.toInput())
	if err != nil {
		switch {
		case stderrors.Is(err, service.ErrInvalidOptionCategory):
			errors.BadRequest(c, errors.OptionInvalidCategory, "Category must be size, topping, color or flavor")
		case stderrors.Is(err, service.ErrInvalidOptionData):
			errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid option data")
		default:
			log.Error("Failed to create option", err, map[string]interface{}{
				"category": req.Category,
				"name":     req.Name,
			})
			errors.InternalError(c, "Failed to create customization option")
		}
		return
	}

	log.Info("Customization option created successfully", map[string]interface{}{
		"option_id": option.ID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "Customization option created successfully",
		"option":  option,
	})
}

// UpdateOption edits a price list entry
// PUT /api/v1/manage/options/:id
func (ctrl *OptionController) UpdateOption(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req OptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid update option request", map[string]interface{}{
			"option_id": id,
			"error":     err.Error(),
		})
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid request data")
		return
	}

	option, err := ctrl.optionService.UpdateOption(id, req.toInput())
	if err != nil {
		switch {
		case stderrors.Is(err, service.ErrOptionNotFound):
			errors.NotFound(c, errors.OptionNotFound, "Customization option not found")
		case stderrors.Is(err, service.ErrInvalidOptionCategory):
			errors.BadRequest(c, errors.OptionInvalidCategory, "Category must be size, topping, color or flavor")
		case stderrors.Is(err, service.ErrInvalidOptionData):
			errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid option data")
		default:
			log.Error("Failed to update option", err, map[string]interface{}{
				"option_id": id,
			})
			errors.InternalError(c, "Failed to update customization option")
		}
		return
	}

	log.Info("Customization option updated successfully", map[string]interface{}{
		"option_id": option.ID,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Customization option updated successfully",
		"option":  option,
	})
}

// DeleteOption removes a price list entry
// DELETE /api/v1/manage/options/:id
func (ctrl *OptionController) DeleteOption(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.optionService.DeleteOption(id); err != nil {
		if stderrors.Is(err, service.ErrOptionNotFound) {
			errors.NotFound(c, errors.OptionNotFound, "Customization option not found")
			return
		}
		log.Error("Failed to delete option", err, map[string]interface{}{
			"option_id": id,
		})
		errors.InternalError(c, "Failed to delete customization option")
		return
	}

	log.Info("Customization option deleted successfully", map[string]interface{}{
		"option_id": id,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Customization option deleted successfully",
	})
}
