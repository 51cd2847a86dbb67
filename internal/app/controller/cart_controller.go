package controller

import (
	stderrors "errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sweetcrumb/cakeshop-backend/internal/app/model"
	"github.com/sweetcrumb/cakeshop-backend/internal/app/service"
	"github.com/sweetcrumb/cakeshop-backend/internal/errors"
	"github.com/sweetcrumb/cakeshop-backend/internal/middleware"
)

type CartController struct {
	cartService service.CartService
}

func NewCartController(cartService service.CartService) *CartController {
	return &CartController{
		cartService: cartService,
	}
}

type AddToCartRequest struct {
	ProductID     uint                 `json:"product_id" binding:"required"`
	Customization *model.Customization `json:"customization"`
	Quantity      int                  `json:"quantity" binding:"required,gt=0"`
}

type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// GetCart returns the user's cart with totals
// GET /api/v1/cart
func (ctrl *CartController) GetCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		log.Warn("Unauthorized access to cart", nil)
		errors.Unauthorized(c, "")
		return
	}

	cartItems, err := ctrl.cartService.GetUserCart(userID)
	if err != nil {
		log.Error("Failed to fetch cart", err, map[string]interface{}{
			"user_id": userID,
		})
		errors.InternalError(c, "Failed to fetch cart")
		return
	}

	totals, err := ctrl.cartService.GetCartTotals(userID)
	if err != nil {
		log.Error("Failed to compute cart totals", err, map[string]interface{}{
			"user_id": userID,
		})
		errors.InternalError(c, "Failed to fetch cart")
		return
	}

	log.Info("Cart fetched successfully", map[string]interface{}{
		"user_id":    userID,
		"count":      len(cartItems),
		"item_count": totals.ItemCount,
		"total":      totals.TotalPrice,
	})

	c.JSON(http.StatusOK, gin.H{
		"cart_items": cartItems,
		"item_count": totals.ItemCount,
		"total":      totals.TotalPrice,
	})
}

// AddToCart adds a product with optional customization to the cart
// POST /api/v1/cart
func (ctrl *CartController) AddToCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		log.Warn("Unauthorized attempt to add to cart", nil)
		errors.Unauthorized(c, "")
		return
	}

	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid add to cart request", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid request data")
		return
	}

	log.Debug("Adding item to cart", map[string]interface{}{
		"user_id":    userID,
		"product_id": req.ProductID,
		"quantity":   req.Quantity,
	})

	err := ctrl.cartService.AddToCart(userID, req.ProductID, req.Customization, req.Quantity)
	if err != nil {
		if stderrors.Is(err, service.ErrProductNotFound) {
			log.Warn("Product not found for cart", map[string]interface{}{
				"user_id":    userID,
				"product_id": req.ProductID,
			})
			errors.NotFound(c, errors.ProductNotFound, "Product not found")
			return
		}
		if stderrors.Is(err, service.ErrInvalidQuantity) {
			errors.BadRequest(c, errors.CartInvalidQuantity, "Quantity must be at least 1")
			return
		}
		log.Error("Failed to add item to cart", err, map[string]interface{}{
			"user_id":    userID,
			"product_id": req.ProductID,
		})
		errors.InternalError(c, "Failed to add item to cart")
		return
	}

	log.Info("Item added to cart successfully", map[string]interface{}{
		"user_id":    userID,
		"product_id": req.ProductID,
		"quantity":   req.Quantity,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "Item added to cart successfully",
	})
}

// UpdateQuantity sets the quantity for all lines of a product.
// Zero or negative removes the product.
// PUT /api/v1/cart/products/:productId
func (ctrl *CartController) UpdateQuantity(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		log.Warn("Unauthorized attempt to update cart", nil)
		errors.Unauthorized(c, "")
		return
	}

	productID, ok := parseIDParam(c, "productId")
	if !ok {
		return
	}

	var req UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid update quantity request", map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
			"error":      err.Error(),
		})
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid request data")
		return
	}

	log.Debug("Updating cart quantity", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
		"quantity":   *req.Quantity,
	})

	err := ctrl.cartService.UpdateQuantity(userID, productID, *req.Quantity)
	if err != nil {
		if stderrors.Is(err, service.ErrCartItemNotFound) {
			log.Warn("Cart item not found for quantity update", map[string]interface{}{
				"user_id":    userID,
				"product_id": productID,
			})
			errors.NotFound(c, errors.CartItemNotFound, "Cart item not found")
			return
		}
		if stderrors.Is(err, service.ErrProductNotFound) {
			errors.NotFound(c, errors.ProductNotFound, "Product not found")
			return
		}
		log.Error("Failed to update cart quantity", err, map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		errors.InternalError(c, "Failed to update cart")
		return
	}

	log.Info("Cart quantity updated successfully", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
		"quantity":   *req.Quantity,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart updated successfully",
	})
}

// RemoveProduct removes every line of a product from the cart
// DELETE /api/v1/cart/products/:productId
func (ctrl *CartController) RemoveProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		log.Warn("Unauthorized attempt to remove cart item", nil)
		errors.Unauthorized(c, "")
		return
	}

	productID, ok := parseIDParam(c, "productId")
	if !ok {
		return
	}

	log.Debug("Removing product from cart", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
	})

	err := ctrl.cartService.RemoveProduct(userID, productID)
	if err != nil {
		if stderrors.Is(err, service.ErrCartItemNotFound) {
			log.Warn("Cart item not found for removal", map[string]interface{}{
				"user_id":    userID,
				"product_id": productID,
			})
			errors.NotFound(c, errors.CartItemNotFound, "Cart item not found")
			return
		}
		log.Error("Failed to remove product from cart", err, map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		errors.InternalError(c, "Failed to remove product from cart")
		return
	}

	log.Info("Product removed from cart successfully", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Product removed from cart successfully",
	})
}

// ClearCart clears all items from the cart
// DELETE /api/v1/cart
func (ctrl *CartController) ClearCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		log.Warn("Unauthorized attempt to clear cart", nil)
		errors.Unauthorized(c, "")
		return
	}

	log.Debug("Clearing cart", map[string]interface{}{
		"user_id": userID,
	})

	if err := ctrl.cartService.ClearCart(userID); err != nil {
		log.Error("Failed to clear cart", err, map[string]interface{}{
			"user_id": userID,
		})
		errors.InternalError(c, "Failed to clear cart")
		return
	}

	log.Info("Cart cleared successfully", map[string]interface{}{
		"user_id": userID,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart cleared successfully",
	})
}

// parseIDParam parses a uint path parameter, writing the error
// response itself on failure.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	idStr := c.Param(name)
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		errors.BadRequest(c, errors.ValidationInvalidID, "Invalid ID")
		return 0, false
	}
	return uint(id), true
}
