package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/sweetcrumb/cakeshop-backend/internal/app/model"
)

func activeOptions() []model.CustomizationOption {
	return []model.CustomizationOption{
		{Category: model.OptionCategorySize, Name: "Small", PriceAdjustment: 0, IsActive: true},
		{Category: model.OptionCategorySize, Name: "Medium", PriceAdjustment: 10, IsActive: true},
		{Category: model.OptionCategorySize, Name: "Large", PriceAdjustment: 20, IsActive: true},
		{Category: model.OptionCategoryTopping, Name: "Fresh Strawberries", PriceAdjustment: 3, IsActive: true},
		{Category: model.OptionCategoryTopping, Name: "Sprinkles", PriceAdjustment: 3, IsActive: true},
		{Category: model.OptionCategoryColor, Name: "Pink", PriceAdjustment: 0, IsActive: true},
	}
}

func TestQuoteUnitPrice_NoCustomization(t *testing.T) {
	price := QuoteUnitPrice(45, nil, activeOptions())
	assert.InDelta(t, 45.0, price, 0.001)
}

func TestQuoteUnitPrice_SizeAndToppings(t *testing.T) {
	// 45 base + 10 medium + 3 + 3 toppings = 61
	customization := &model.Customization{
		Size:     "medium",
		Toppings: []string{"Fresh Strawberries", "Sprinkles"},
	}
	price := QuoteUnitPrice(45, customization, activeOptions())
	assert.InDelta(t, 61.0, price, 0.001)
}

func TestQuoteUnitPrice_CaseInsensitiveMatch(t *testing.T) {
	customization := &model.Customization{Size: "MEDIUM"}
	price := QuoteUnitPrice(45, customization, activeOptions())
	assert.InDelta(t, 55.0, price, 0.001)
}

func TestQuoteUnitPrice_UnknownNameCostsNothing(t *testing.T) {
	customization := &model.Customization{
		Size:     "medium",
		Toppings: []string{"Gold Leaf"},
	}
	price := QuoteUnitPrice(45, customization, activeOptions())
	assert.InDelta(t, 55.0, price, 0.001)
}

func TestQuoteUnitPrice_FallbackTable(t *testing.T) {
	// No option rows at all: hardcoded size and topping prices apply
	customization := &model.Customization{
		Size:     "large",
		Toppings: []string{"anything", "else"},
	}
	price := QuoteUnitPrice(45, customization, nil)
	assert.InDelta(t, 71.0, price, 0.001)
}

func TestQuoteUnitPrice_FallbackUnknownSize(t *testing.T) {
	customization := &model.Customization{Size: "gigantic"}
	price := QuoteUnitPrice(45, customization, nil)
	assert.InDelta(t, 45.0, price, 0.001)
}

func TestQuoteUnitPrice_NeverNegative(t *testing.T) {
	options := []model.CustomizationOption{
		{Category: model.OptionCategorySize, Name: "Promo", PriceAdjustment: -100, IsActive: true},
	}
	customization := &model.Customization{Size: "Promo"}
	price := QuoteUnitPrice(45, customization, options)
	assert.InDelta(t, 0.0, price, 0.001)
}

func TestQuoteUnitPrice_ColorAndFlavorAdjustments(t *testing.T) {
	options := append(activeOptions(),
		model.CustomizationOption{Category: model.OptionCategoryFlavor, Name: "Pistachio", PriceAdjustment: 5, IsActive: true},
	)
	customization := &model.Customization{
		Size:   "small",
		Color:  "Pink",
		Flavor: "Pistachio",
	}
	price := QuoteUnitPrice(45, customization, options)
	assert.InDelta(t, 50.0, price, 0.001)
}
