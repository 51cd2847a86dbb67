package service

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/sweetcrumb/cakeshop-backend/internal/app/model"
	"github.com/sweetcrumb/cakeshop-backend/internal/app/repository"
	"github.com/sweetcrumb/cakeshop-backend/pkg/logger"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrContactRequired   = errors.New("customer name and email are required")
	ErrInvalidStatus     = errors.New("invalid order status")
	ErrInvalidTransition = errors.New("invalid order status transition")
)

// LeadTimeError reports a delivery date that does not leave the
// kitchen enough days. MinDays is the configured minimum so callers
// can tell the customer what to pick instead.
type LeadTimeError struct {
	MinDays int
}

func (e *LeadTimeError) Error() string {
	return fmt.Sprintf("delivery date must be at least %d days out", e.MinDays)
}

// PlaceOrderInput is the checkout form
type PlaceOrderInput struct {
	CustomerName        string
	CustomerEmail       string
	CustomerPhone       string
	DeliveryAddress     string
	DeliveryDate        *time.Time
	SpecialInstructions string
}

// OrderEventBroadcaster pushes order lifecycle events to connected
// manager dashboards. A nil broadcaster disables the feed.
type OrderEventBroadcaster interface {
	BroadcastOrderEvent(eventType string, order *model.Order)
}

type OrderService interface {
	PlaceOrder(userID uint, input PlaceOrderInput) (*model.Order, error)
	GetUserOrders(userID uint) ([]model.Order, error)
	GetOrderByID(userID, orderID uint) (*model.Order, error)
	GetAllOrders(status string) ([]model.Order, error)
	UpdateOrderStatus(orderID uint, status model.OrderStatus) (*model.Order, error)
	ExportOrders(status string) (*excelize.File, error)
}

type orderService struct {
	orderRepo       repository.OrderRepository
	cartRepo        repository.CartRepository
	settingsService SettingsService
	broadcaster     OrderEventBroadcaster
	db              *gorm.DB
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	settingsService SettingsService,
	db *gorm.DB,
	broadcaster OrderEventBroadcaster,
) OrderService {
	return &orderService{
		orderRepo:       orderRepo,
		cartRepo:        cartRepo,
		settingsService: settingsService,
		broadcaster:     broadcaster,
		db:              db,
	}
}

// PlaceOrder turns the basket into a pending order. Order, items and
// cart clearing happen in one transaction so a failure leaves the
// basket untouched.
func (s *orderService) PlaceOrder(userID uint, input PlaceOrderInput) (*model.Order, error) {
	logger.Info("Placing order", map[string]interface{}{
		"user_id":       userID,
		"delivery_date": input.DeliveryDate,
	})

	// Precondition order matters: an empty basket always wins over
	// form problems, so the customer is told to add a cake before
	// being asked to fix contact details or the delivery date.
	cartItems, err := s.cartRepo.FindByUserID(userID)
	if err != nil {
		logger.Error("Failed to fetch cart items", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	if len(cartItems) == 0 {
		logger.Warn("Cannot place order: cart is empty", map[string]interface{}{
			"user_id": userID,
		})
		return nil, ErrEmptyCart
	}

	if strings.TrimSpace(input.CustomerName) == "" || strings.TrimSpace(input.CustomerEmail) == "" {
		logger.Warn("Cannot place order: contact details missing", map[string]interface{}{
			"user_id": userID,
		})
		return nil, ErrContactRequired
	}

	if input.DeliveryDate != nil {
		minDays := s.settingsService.GetMinimumDeliveryDays()
		if leadDays(time.Now(), *input.DeliveryDate) < minDays {
			logger.Warn("Cannot place order: delivery date too soon", map[string]interface{}{
				"user_id":       userID,
				"delivery_date": input.DeliveryDate,
				"minimum_days":  minDays,
			})
			return nil, &LeadTimeError{MinDays: minDays}
		}
	}

	logger.Debug("Processing cart items for order", map[string]interface{}{
		"user_id":    userID,
		"item_count": len(cartItems),
	})

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			logger.Error("Panic during order placement, rolling back", fmt.Errorf("panic: %v", r), map[string]interface{}{
				"user_id": userID,
			})
		}
	}()

	var totalAmount float64
	orderItems := make([]model.OrderItem, 0, len(cartItems))
	for _, cartItem := range cartItems {
		orderItems = append(orderItems, model.OrderItem{
			ProductID:    cartItem.ProductID,
			Quantity:     cartItem.Quantity,
			PricePerItem: cartItem.TotalPrice / float64(cartItem.Quantity),
		})
		totalAmount += cartItem.TotalPrice
	}

	order := &model.Order{
		UserID:              userID,
		Status:              model.OrderStatusPending,
		TotalAmount:         totalAmount,
		CustomerName:        input.CustomerName,
		CustomerEmail:       input.CustomerEmail,
		CustomerPhone:       input.CustomerPhone,
		DeliveryAddress:     input.DeliveryAddress,
		DeliveryDate:        input.DeliveryDate,
		SpecialInstructions: input.SpecialInstructions,
		OrderItems:          orderItems,
	}

	if err := tx.Create(order).Error; err != nil {
		tx.Rollback()
		logger.Error("Failed to create order", err, map[string]interface{}{
			"user_id":      userID,
			"total_amount": totalAmount,
		})
		return nil, err
	}

	if err := tx.Where("user_id = ?", userID).Delete(&model.CartItem{}).Error; err != nil {
		tx.Rollback()
		logger.Error("Failed to clear cart after order creation", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		logger.Error("Failed to commit order transaction", err, map[string]interface{}{
			"user_id":  userID,
			"order_id": order.ID,
		})
		return nil, err
	}

	logger.Info("Order placed successfully", map[string]interface{}{
		"user_id":      userID,
		"order_id":     order.ID,
		"total_amount": totalAmount,
		"item_count":   len(orderItems),
	})

	placed, err := s.orderRepo.FindByID(order.ID)
	if err != nil {
		return nil, err
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastOrderEvent("order_placed", placed)
	}
	return placed, nil
}

// leadDays counts calendar days of notice, rounding partial days up so
// a delivery 47 hours out counts as 2 days.
func leadDays(now, delivery time.Time) int {
	hours := delivery.Sub(now).Hours()
	if hours <= 0 {
		return 0
	}
	return int(math.Ceil(hours / 24))
}

func (s *orderService) GetUserOrders(userID uint) ([]model.Order, error) {
	logger.Debug("Fetching user orders", map[string]interface{}{
		"user_id": userID,
	})

	orders, err := s.orderRepo.FindByUserID(userID)
	if err != nil {
		logger.Error("Failed to fetch user orders", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Info("User orders fetched successfully", map[string]interface{}{
		"user_id": userID,
		"count":   len(orders),
	})
	return orders, nil
}

func (s *orderService) GetOrderByID(userID, orderID uint) (*model.Order, error) {
	logger.Debug("Fetching order by ID", map[string]interface{}{
		"user_id":  userID,
		"order_id": orderID,
	})

	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Order not found", map[string]interface{}{
				"user_id":  userID,
				"order_id": orderID,
			})
			return nil, ErrOrderNotFound
		}
		logger.Error("Failed to fetch order", err, map[string]interface{}{
			"user_id":  userID,
			"order_id": orderID,
		})
		return nil, err
	}

	if order.UserID != userID {
		logger.Warn("Order access denied: ownership mismatch", map[string]interface{}{
			"user_id":  userID,
			"order_id": orderID,
			"owner_id": order.UserID,
		})
		return nil, ErrOrderNotFound
	}

	logger.Debug("Order fetched successfully", map[string]interface{}{
		"user_id":  userID,
		"order_id": orderID,
		"status":   order.Status,
	})
	return order, nil
}

func (s *orderService) GetAllOrders(status string) ([]model.Order, error) {
	logger.Debug("Fetching all orders", map[string]interface{}{
		"status": status,
	})

	if status != "" && !model.ValidOrderStatus(model.OrderStatus(status)) {
		logger.Warn("Invalid status filter", map[string]interface{}{
			"status": status,
		})
		return nil, ErrInvalidStatus
	}

	orders, err := s.orderRepo.FindAll(status)
	if err != nil {
		logger.Error("Failed to fetch all orders", err, map[string]interface{}{
			"status": status,
		})
		return nil, err
	}

	logger.Info("All orders fetched successfully", map[string]interface{}{
		"status": status,
		"count":  len(orders),
	})
	return orders, nil
}

// UpdateOrderStatus moves an order along the workflow. Transitions
// outside the allowed table are rejected before any write.
func (s *orderService) UpdateOrderStatus(orderID uint, status model.OrderStatus) (*model.Order, error) {
	logger.Info("Updating order status", map[string]interface{}{
		"order_id":   orderID,
		"new_status": status,
	})

	if !model.ValidOrderStatus(status) {
		logger.Warn("Unknown order status", map[string]interface{}{
			"order_id": orderID,
			"status":   status,
		})
		return nil, ErrInvalidStatus
	}

	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Order not found for status update", map[string]interface{}{
				"order_id": orderID,
			})
			return nil, ErrOrderNotFound
		}
		logger.Error("Failed to fetch order for status update", err, map[string]interface{}{
			"order_id": orderID,
		})
		return nil, err
	}

	if !order.Status.CanTransitionTo(status) {
		logger.Warn("Rejected order status transition", map[string]interface{}{
			"order_id":    orderID,
			"from_status": order.Status,
			"to_status":   status,
			"allowed":     order.Status.NextStatuses(),
		})
		return nil, ErrInvalidTransition
	}

	if err := s.orderRepo.UpdateStatus(orderID, status); err != nil {
		logger.Error("Failed to update order status", err, map[string]interface{}{
			"order_id":   orderID,
			"new_status": status,
		})
		return nil, err
	}

	logger.Info("Order status updated successfully", map[string]interface{}{
		"order_id":    orderID,
		"from_status": order.Status,
		"to_status":   status,
	})

	updated, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		return nil, err
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastOrderEvent("order_status_changed", updated)
	}
	return updated, nil
}

// ExportOrders builds an xlsx workbook of orders for the back office
func (s *orderService) ExportOrders(status string) (*excelize.File, error) {
	logger.Info("Exporting orders to spreadsheet", map[string]interface{}{
		"status": status,
	})

	orders, err := s.GetAllOrders(status)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	sheet := "Orders"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Order ID", "Customer", "Email", "Phone", "Status", "Total", "Delivery Date", "Items", "Placed At"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, header)
	}

	for row, order := range orders {
		deliveryDate := ""
		if order.DeliveryDate != nil {
			deliveryDate = order.DeliveryDate.Format("2006-01-02")
		}

		var items []string
		for _, item := range order.OrderItems {
			items = append(items, fmt.Sprintf("%s x%d", item.Product.Name, item.Quantity))
		}

		values := []interface{}{
			order.ID,
			order.CustomerName,
			order.CustomerEmail,
			order.CustomerPhone,
			string(order.Status),
			order.TotalAmount,
			deliveryDate,
			strings.Join(items, ", "),
			order.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, value)
		}
	}

	logger.Info("Orders exported successfully", map[string]interface{}{
		"status": status,
		"count":  len(orders),
	})
	return f, nil
}
