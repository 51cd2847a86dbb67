package model

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleUser    UserRole = "user"    // storefront customer
	RoleManager UserRole = "manager" // administrative role: catalog, orders, settings
)

type User struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"not null" json:"-"`
	Name         string         `gorm:"not null" json:"name"`
	Phone        string         `json:"phone"`
	Role         UserRole       `gorm:"type:varchar(20);default:'user'" json:"role"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	Orders    []Order    `gorm:"foreignKey:UserID" json:"-"`
	CartItems []CartItem `gorm:"foreignKey:UserID" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// IsManager reports whether the user holds the administrative role
func (u *User) IsManager() bool {
	return u.Role == RoleManager
}
