package model

import (
	"time"

	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"   // placed, awaiting confirmation
	OrderStatusConfirmed OrderStatus = "confirmed" // accepted by the shop
	OrderStatusPreparing OrderStatus = "preparing" // in the kitchen
	OrderStatusReady     OrderStatus = "ready"     // ready for delivery/pickup
	OrderStatusDelivered OrderStatus = "delivered" // terminal
	OrderStatusCancelled OrderStatus = "cancelled" // terminal, only from pending/confirmed
)

// ValidOrderStatus reports whether s is a known status value
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusPreparing,
		OrderStatusReady, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// NextStatuses returns the legal next states from s. The workflow is
// a forward-only chain with a cancellation shortcut out of the first
// two states; terminal states return nil.
func (s OrderStatus) NextStatuses() []OrderStatus {
	switch s {
	case OrderStatusPending:
		return []OrderStatus{OrderStatusConfirmed, OrderStatusCancelled}
	case OrderStatusConfirmed:
		return []OrderStatus{OrderStatusPreparing, OrderStatusCancelled}
	case OrderStatusPreparing:
		return []OrderStatus{OrderStatusReady}
	case OrderStatusReady:
		return []OrderStatus{OrderStatusDelivered}
	}
	return nil
}

// CanTransitionTo reports whether moving from s to next is legal
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range s.NextStatuses() {
		if allowed == next {
			return true
		}
	}
	return false
}

// Order is created once at checkout from the basket contents and the
// submitted form. Status (and UpdatedAt) are the only fields mutated
// afterwards, by the manager workflow.
type Order struct {
	ID                  uint           `gorm:"primarykey" json:"id"`
	UserID              uint           `gorm:"not null;index" json:"user_id"`
	Status              OrderStatus    `gorm:"type:varchar(20);default:'pending'" json:"status"`
	TotalAmount         float64        `gorm:"not null" json:"total_amount"`
	CustomerName        string         `gorm:"not null" json:"customer_name"`
	CustomerEmail       string         `gorm:"not null" json:"customer_email"`
	CustomerPhone       string         `json:"customer_phone,omitempty"`
	DeliveryAddress     string         `gorm:"type:text" json:"delivery_address,omitempty"`
	DeliveryDate        *time.Time     `json:"delivery_date,omitempty"`
	SpecialInstructions string         `gorm:"type:text" json:"special_instructions,omitempty"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
	DeletedAt           gorm.DeletedAt `gorm:"index" json:"-"`

	User       User        `gorm:"foreignKey:UserID" json:"user,omitempty"`
	OrderItems []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"order_items,omitempty"`
}

func (Order) TableName() string {
	return "orders"
}

// OrderItem is a snapshot of one basket line at order time.
// PricePerItem is the line total divided by quantity; items are never
// mutated or deleted individually.
type OrderItem struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	OrderID      uint           `gorm:"not null;index" json:"order_id"`
	ProductID    uint           `gorm:"not null;index" json:"product_id"`
	Quantity     int            `gorm:"not null" json:"quantity"`
	PricePerItem float64        `gorm:"not null" json:"price_per_item"`
	CreatedAt    time.Time      `json:"created_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	Order   Order   `gorm:"foreignKey:OrderID" json:"-"`
	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
