package controller

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sweetcrumb/cakeshop-backend/internal/app/model"
	"github.com/sweetcrumb/cakeshop-backend/internal/app/service"
	"github.com/sweetcrumb/cakeshop-backend/internal/errors"
	"github.com/sweetcrumb/cakeshop-backend/internal/middleware"
)

type OrderController struct {
	orderService service.OrderService
}

func NewOrderController(orderService service.OrderService) *OrderController {
	return &OrderController{
		orderService: orderService,
	}
}

type PlaceOrderRequest struct {
	CustomerName        string     `json:"customer_name" binding:"required"`
	CustomerEmail       string     `json:"customer_email" binding:"required,email"`
	CustomerPhone       string     `json:"customer_phone"`
	DeliveryAddress     string     `json:"delivery_address"`
	DeliveryDate        *time.Time `json:"delivery_date"`
	SpecialInstructions string     `json:"special_instructions"`
}

type UpdateOrderStatusRequest struct {
	Status model.OrderStatus `json:"status" binding:"required"`
}

// PlaceOrder creates an order from the user's cart
// POST /api/v1/orders
func (ctrl *OrderController) PlaceOrder(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		log.Warn("Unauthorized attempt to place order", nil)
		errors.Unauthorized(c, "")
		return
	}

	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid place order request", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid request data")
		return
	}

	log.Debug("Placing order", map[string]interface{}{
		"user_id":       userID,
		"delivery_date": req.DeliveryDate,
	})

	order, err := ctrl.orderService.PlaceOrder(userID, service.PlaceOrderInput{
		CustomerName:        req.CustomerName,
		CustomerEmail:       req.CustomerEmail,
		CustomerPhone:       req.CustomerPhone,
		DeliveryAddress:     req.DeliveryAddress,
		DeliveryDate:        req.DeliveryDate,
		SpecialInstructions: req.SpecialInstructions,
	})
	if err != nil {
		var leadErr *service.LeadTimeError
		switch {
		case stderrors.Is(err, service.ErrEmptyCart):
			log.Warn("Order rejected: empty cart", map[string]interface{}{
				"user_id": userID,
			})
			errors.BadRequest(c, errors.CartEmpty, "Your cart is empty")
		case stderrors.Is(err, service.ErrContactRequired):
			errors.BadRequest(c, errors.OrderContactRequired, "Customer name and email are required")
		case stderrors.As(err, &leadErr):
			log.Warn("Order rejected: delivery date too soon", map[string]interface{}{
				"user_id":  userID,
				"min_days": leadErr.MinDays,
			})
			c.JSON(http.StatusBadRequest, gin.H{
				"error":    errors.OrderLeadTime,
				"message":  fmt.Sprintf("Delivery date must be at least %d days out", leadErr.MinDays),
				"min_days": leadErr.MinDays,
			})
		default:
			log.Error("Failed to place order", err, map[string]interface{}{
				"user_id": userID,
			})
			errors.InternalError(c, "Failed to place order")
		}
		return
	}

	log.Info("Order placed successfully", map[string]interface{}{
		"user_id":      userID,
		"order_id":     order.ID,
		"total_amount": order.TotalAmount,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed successfully",
		"order":   order,
	})
}

// GetUserOrders returns the authenticated user's orders
// GET /api/v1/orders
func (ctrl *OrderController) GetUserOrders(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		log.Warn("Unauthorized access to orders", nil)
		errors.Unauthorized(c, "")
		return
	}

	orders, err := ctrl.orderService.GetUserOrders(userID)
	if err != nil {
		log.Error("Failed to fetch user orders", err, map[string]interface{}{
			"user_id": userID,
		})
		errors.InternalError(c, "Failed to fetch orders")
		return
	}

	log.Info("User orders fetched successfully", map[string]interface{}{
		"user_id": userID,
		"count":   len(orders),
	})

	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"count":  len(orders),
	})
}

// GetOrder returns one of the user's orders
// GET /api/v1/orders/:id
func (ctrl *OrderController) GetOrder(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		log.Warn("Unauthorized access to order", nil)
		errors.Unauthorized(c, "")
		return
	}

	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	order, err := ctrl.orderService.GetOrderByID(userID, orderID)
	if err != nil {
		if stderrors.Is(err, service.ErrOrderNotFound) {
			log.Warn("Order not found", map[string]interface{}{
				"user_id":  userID,
				"order_id": orderID,
			})
			errors.NotFound(c, errors.OrderNotFound, "Order not found")
			return
		}
		log.Error("Failed to fetch order", err, map[string]interface{}{
			"user_id":  userID,
			"order_id": orderID,
		})
		errors.InternalError(c, "Failed to fetch order")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order":         order,
		"next_statuses": order.Status.NextStatuses(),
	})
}

// GetAllOrders returns every order, optionally filtered by status
// GET /api/v1/manage/orders?status=pending
func (ctrl *OrderController) GetAllOrders(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	status := c.Query("status")
	orders, err := ctrl.orderService.GetAllOrders(status)
	if err != nil {
		if stderrors.Is(err, service.ErrInvalidStatus) {
			errors.BadRequest(c, errors.OrderInvalidStatus, "Unknown order status")
			return
		}
		log.Error("Failed to fetch all orders", err, map[string]interface{}{
			"status": status,
		})
		errors.InternalError(c, "Failed to fetch orders")
		return
	}

	log.Info("All orders fetched successfully", map[string]interface{}{
		"status": status,
		"count":  len(orders),
	})

	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"count":  len(orders),
	})
}

// UpdateOrderStatus moves an order along the workflow
// PATCH /api/v1/manage/orders/:id/status
func (ctrl *OrderController) UpdateOrderStatus(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid status update request", map[string]interface{}{
			"order_id": orderID,
			"error":    err.Error(),
		})
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid request data")
		return
	}

	log.Debug("Updating order status", map[string]interface{}{
		"order_id": orderID,
		"status":   req.Status,
	})

	order, err := ctrl.orderService.UpdateOrderStatus(orderID, req.Status)
	if err != nil {
		switch {
		case stderrors.Is(err, service.ErrOrderNotFound):
			errors.NotFound(c, errors.OrderNotFound, "Order not found")
		case stderrors.Is(err, service.ErrInvalidStatus):
			errors.BadRequest(c, errors.OrderInvalidStatus, "Unknown order status")
		case stderrors.Is(err, service.ErrInvalidTransition):
			log.Warn("Invalid order status transition", map[string]interface{}{
				"order_id": orderID,
				"status":   req.Status,
			})
			errors.Conflict(c, errors.OrderInvalidTransition, "This status change is not allowed")
		default:
			log.Error("Failed to update order status", err, map[string]interface{}{
				"order_id": orderID,
			})
			errors.InternalError(c, "Failed to update order status")
		}
		return
	}

	log.Info("Order status updated successfully", map[string]interface{}{
		"order_id": orderID,
		"status":   order.Status,
	})

	c.JSON(http.StatusOK, gin.H{
		"message":       "Order status updated successfully",
		"order":         order,
		"next_statuses": order.Status.NextStatuses(),
	})
}

// ExportOrders streams an xlsx of orders
// GET /api/v1/manage/orders/export?status=pending
func (ctrl *OrderController) ExportOrders(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	status := c.Query("status")
	file, err := ctrl.orderService.ExportOrders(status)
	if err != nil {
		if stderrors.Is(err, service.ErrInvalidStatus) {
			errors.BadRequest(c, errors.OrderInvalidStatus, "Unknown order status")
			return
		}
		log.Error("Failed to export orders", err, map[string]interface{}{
			"status": status,
		})
		errors.RespondWithError(c, http.StatusInternalServerError, errors.OrderExportFailed, "Failed to export orders")
		return
	}

	filename := fmt.Sprintf("orders-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := file.Write(c.Writer); err != nil {
		log.Error("Failed to write orders export", err, nil)
		return
	}

	log.Info("Orders exported successfully", map[string]interface{}{
		"status":   status,
		"filename": filename,
	})
}
