package model

import (
	"time"

	"gorm.io/gorm"
)

type OptionCategory string

const (
	OptionCategorySize    OptionCategory = "size"
	OptionCategoryTopping OptionCategory = "topping"
	OptionCategoryColor   OptionCategory = "color"
	OptionCategoryFlavor  OptionCategory = "flavor"
)

// ValidOptionCategory reports whether c is one of the four fixed categories
func ValidOptionCategory(c OptionCategory) bool {
	switch c {
	case OptionCategorySize, OptionCategoryTopping, OptionCategoryColor, OptionCategoryFlavor:
		return true
	}
	return false
}

// CustomizationOption is one selectable entry in the price list.
// The active set per category is the authoritative source for
// price adjustments; pricing falls back to a fixed table when the
// list is unavailable.
type CustomizationOption struct {
	ID              uint           `gorm:"primarykey" json:"id"`
	Category        OptionCategory `gorm:"type:varchar(20);not null;index" json:"category"`
	Name            string         `gorm:"not null" json:"name"`
	PriceAdjustment float64        `gorm:"default:0" json:"price_adjustment"`
	IsActive        bool           `gorm:"default:true" json:"is_active"`
	DisplayOrder    int            `gorm:"default:0" json:"display_order"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

func (CustomizationOption) TableName() string {
	return "customization_options"
}
