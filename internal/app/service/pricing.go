package service

import (
	"strings"

	"github.com/sweetcrumb/cakeshop-backend/internal/app/model"
)

// Fallback price adjustments used when no active option rows exist for
// a category. Keeps checkout working if the manager wipes the price
// list or the option table is unreachable.
var fallbackSizeAdjustments = map[string]float64{
	"small":  0,
	"medium": 10,
	"large":  20,
}

const fallbackToppingPrice = 3.0

// QuoteUnitPrice computes the price of one unit of a product with the
// given customization against the active option price list. Option
// names match case-insensitively. Missing names cost nothing. The
// result never goes below zero.
func QuoteUnitPrice(basePrice float64, customization *model.Customization, options []model.CustomizationOption) float64 {
	price := basePrice

	if customization != nil {
		price += adjustmentFor(model.OptionCategorySize, customization.Size, options, sizeFallback)
		for _, topping := range customization.Toppings {
			price += adjustmentFor(model.OptionCategoryTopping, topping, options, toppingFallback)
		}
		price += adjustmentFor(model.OptionCategoryColor, customization.Color, options, zeroFallback)
		price += adjustmentFor(model.OptionCategoryFlavor, customization.Flavor, options, zeroFallback)
	}

	if price < 0 {
		price = 0
	}
	return price
}

// adjustmentFor resolves one selection against the option rows for its
// category, falling back when the category has no rows at all.
func adjustmentFor(category model.OptionCategory, name string, options []model.CustomizationOption, fallback func(string) float64) float64 {
	if name == "" {
		return 0
	}

	hasCategory := false
	for _, option := range options {
		if option.Category != category {
			continue
		}
		hasCategory = true
		if strings.EqualFold(option.Name, name) {
			return option.PriceAdjustment
		}
	}

	if !hasCategory {
		return fallback(name)
	}
	// Category has rows but none match this name
	return 0
}

func sizeFallback(name string) float64 {
	return fallbackSizeAdjustments[strings.ToLower(name)]
}

func toppingFallback(string) float64 {
	return fallbackToppingPrice
}

func zeroFallback(string) float64 {
	return 0
}
