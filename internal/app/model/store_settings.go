package model

import (
	"time"
)

const (
	// DefaultMinimumDeliveryDays applies when the settings row is
	// unreadable; delivery-date validation must still run.
	DefaultMinimumDeliveryDays = 2

	// SettingsRowID pins the singleton row
	SettingsRowID uint = 1
)

// StoreSettings is a process-wide singleton record, read at storefront
// load and checkout validation, mutated only through the manager
// settings panel.
type StoreSettings struct {
	ID                  uint      `gorm:"primarykey" json:"id"`
	StoreName           string    `gorm:"not null" json:"store_name"`
	MinimumDeliveryDays int       `gorm:"not null;default:2" json:"minimum_delivery_days"` // >= 1
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

func (StoreSettings) TableName() string {
	return "store_settings"
}

// DefaultStoreSettings is what the singleton is seeded with
func DefaultStoreSettings() *StoreSettings {
	return &StoreSettings{
		ID:                  SettingsRowID,
		StoreName:           "Sweet Crumb Cakes",
		MinimumDeliveryDays: DefaultMinimumDeliveryDays,
	}
}
