package service

import (
	"errors"
	"strings"

	"github.com/sweetcrumb/cakeshop-backend/internal/app/model"
	"github.com/sweetcrumb/cakeshop-backend/internal/app/repository"
	"github.com/sweetcrumb/cakeshop-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrOptionNotFound        = errors.New("customization option not found")
	ErrInvalidOptionCategory = errors.New("invalid option category")
	ErrInvalidOptionData     = errors.New("invalid option data")
)

// OptionInput carries the manager-editable option fields
type OptionInput struct {
	Category        model.OptionCategory
	Name            string
	PriceAdjustment float64
	IsActive        bool
	DisplayOrder    int
}

type OptionService interface {
	GetAllOptions() ([]model.CustomizationOption, error)
	GetActiveOptions() ([]model.CustomizationOption, error)
	CreateOption(input OptionInput) (*model.CustomizationOption, error)
	UpdateOption(id uint, input OptionInput) (*model.CustomizationOption, error)
	DeleteOption(id uint) error
}

type optionService struct {
	optionRepo repository.CustomizationOptionRepository
}

func NewOptionService(optionRepo repository.CustomizationOptionRepository) OptionService {
	return &optionService{optionRepo: optionRepo}
}

func (s *optionService) GetAllOptions() ([]model.CustomizationOption, error) {
	logger.Debug("Fetching all customization options")

	options, err := s.optionRepo.FindAll()
	if err != nil {
		logger.Error("Failed to fetch customization options", err)
		return nil, err
	}

	logger.Info("Customization options fetched successfully", map[string]interface{}{
		"count": len(options),
	})
	return options, nil
}

func (s *optionService) GetActiveOptions() ([]model.CustomizationOption, error) {
	logger.Debug("Fetching active customization options")

	options, err := s.optionRepo.FindActive()
	if err != nil {
		logger.Error("Failed to fetch active customization options", err)
		return nil, err
	}

	logger.Debug("Active customization options fetched", map[string]interface{}{
		"count": len(options),
	})
	return options, nil
}

func (s *optionService) CreateOption(input OptionInput) (*model.CustomizationOption, error) {
	logger.Info("Creating customization option", map[string]interface{}{
		"category":         input.Category,
		"name":             input.Name,
		"price_adjustment": input.PriceAdjustment,
	})

	if err := validateOptionInput(input); err != nil {
		logger.Warn("Rejected option creation: invalid data", map[string]interface{}{
			"category": input.Category,
			"name":     input.Name,
		})
		return nil, err
	}

	option := &model.CustomizationOption{
		Category:        input.Category,
		Name:            input.Name,
		PriceAdjustment: input.PriceAdjustment,
		IsActive:        input.IsActive,
		DisplayOrder:    input.DisplayOrder,
	}

	if err := s.optionRepo.Create(option); err != nil {
		logger.Error("Failed to create customization option", err, map[string]interface{}{
			"category": input.Category,
			"name":     input.Name,
		})
		return nil, err
	}

	logger.Info("Customization option created successfully", map[string]interface{}{
		"option_id": option.ID,
	})
	return option, nil
}

func (s *optionService) UpdateOption(id uint, input OptionInput) (*model.CustomizationOption, error) {
	logger.Info("Updating customization option", map[string]interface{}{
		"option_id": id,
		"category":  input.Category,
		"name":      input.Name,
	})

	if err := validateOptionInput(input); err != nil {
		logger.Warn("Rejected option update: invalid data", map[string]interface{}{
			"option_id": id,
		})
		return nil, err
	}

	option, err := s.optionRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Customization option not found for update", map[string]interface{}{
				"option_id": id,
			})
			return nil, ErrOptionNotFound
		}
		logger.Error("Failed to fetch customization option for update", err, map[string]interface{}{
			"option_id": id,
		})
		return nil, err
	}

	option.Category = input.Category
	option.Name = input.Name
	option.PriceAdjustment = input.PriceAdjustment
	option.IsActive = input.IsActive
	option.DisplayOrder = input.DisplayOrder

	if err := s.optionRepo.Update(option); err != nil {
		logger.Error("Failed to update customization option", err, map[string]interface{}{
			"option_id": id,
		})
		return nil, err
	}

	logger.Info("Customization option updated successfully", map[string]interface{}{
		"option_id": option.ID,
	})
	return option, nil
}

func (s *optionService) DeleteOption(id uint) error {
	logger.Info("Deleting customization option", map[string]interface{}{
		"option_id": id,
	})

	if _, err := s.optionRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Customization option not found for deletion", map[string]interface{}{
				"option_id": id,
			})
			return ErrOptionNotFound
		}
		logger.Error("Failed to fetch customization option for deletion", err, map[string]interface{}{
			"option_id": id,
		})
		return err
	}

	if err := s.optionRepo.Delete(id); err != nil {
		logger.Error("Failed to delete customization option", err, map[string]interface{}{
			"option_id": id,
		})
		return err
	}

	logger.Info("Customization option deleted successfully", map[string]interface{}{
		"option_id": id,
	})
	return nil
}

func validateOptionInput(input OptionInput) error {
	if !model.ValidOptionCategory(input.Category) {
		return ErrInvalidOptionCategory
	}
	if strings.TrimSpace(input.Name) == "" {
		return ErrInvalidOptionData
	}
	return nil
}
