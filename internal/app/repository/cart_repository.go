package repository

import (
	"time"

	"github.com/sweetcrumb/cakeshop-backend/internal/app/model"
	"github.com/sweetcrumb/cakeshop-backend/pkg/logger"
	"gorm.io/gorm"
)

type CartRepository interface {
	Create(cartItem *model.CartItem) error
	FindByUserID(userID uint) ([]model.CartItem, error)
	FindByID(id uint) (*model.CartItem, error)
	FindForMerge(userID, productID uint, customizationKey string) (*model.CartItem, error)
	FindByUserAndProduct(userID, productID uint) ([]model.CartItem, error)
	Update(cartItem *model.CartItem) error
	MergeIncrement(id uint, quantity int, totalPrice float64) error
	Delete(id uint) error
	DeleteByUserAndProduct(userID, productID uint) (int64, error)
	DeleteByUserID(userID uint) error
	DeleteStale(olderThan time.Time) (int64, error)
}

type cartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

func (r *cartRepository) Create(cartItem *model.CartItem) error {
	logger.Debug("Creating cart item in database", map[string]interface{}{
		"user_id":           cartItem.UserID,
		"product_id":        cartItem.ProductID,
		"customization_key": cartItem.CustomizationKey,
		"quantity":          cartItem.Quantity,
	})

	if err := r.db.Create(cartItem).Error; err != nil {
		logger.Error("Failed to create cart item in database", err, map[string]interface{}{
			"user_id":    cartItem.UserID,
			"product_id": cartItem.ProductID,
			"quantity":   cartItem.Quantity,
		})
		return err
	}

	logger.Debug("Cart item created in database", map[string]interface{}{
		"cart_item_id": cartItem.ID,
		"user_id":      cartItem.UserID,
		"product_id":   cartItem.ProductID,
	})
	return nil
}

func (r *cartRepository) FindByUserID(userID uint) ([]model.CartItem, error) {
	logger.Debug("Finding cart items by user ID in database", map[string]interface{}{
		"user_id": userID,
	})

	var cartItems []model.CartItem
	err := r.db.Where("user_id = ?", userID).
		Preload("Product").
		Order("created_at ASC").
		Find(&cartItems).Error
	if err != nil {
		logger.Error("Failed to find cart items by user ID in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Debug("Cart items found by user ID in database", map[string]interface{}{
		"user_id": userID,
		"count":   len(cartItems),
	})
	return cartItems, nil
}

func (r *cartRepository) FindByID(id uint) (*model.CartItem, error) {
	logger.Debug("Finding cart item by ID in database", map[string]interface{}{
		"cart_item_id": id,
	})

	var cartItem model.CartItem
	err := r.db.Preload("Product").First(&cartItem, id).Error
	if err != nil {
		logger.Error("Failed to find cart item by ID in database", err, map[string]interface{}{
			"cart_item_id": id,
		})
		return nil, err
	}

	logger.Debug("Cart item found by ID in database", map[string]interface{}{
		"cart_item_id": cartItem.ID,
		"user_id":      cartItem.UserID,
		"product_id":   cartItem.ProductID,
	})
	return &cartItem, nil
}

// FindForMerge looks up the single line matching the merge identity of
// product plus canonical customization key.
func (r *cartRepository) FindForMerge(userID, productID uint, customizationKey string) (*model.CartItem, error) {
	logger.Debug("Finding cart item for merge in database", map[string]interface{}{
		"user_id":           userID,
		"product_id":        productID,
		"customization_key": customizationKey,
	})

	var cartItem model.CartItem
	err := r.db.Where("user_id = ? AND product_id = ? AND customization_key = ?",
		userID, productID, customizationKey).
		First(&cartItem).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			logger.Error("Failed to find cart item for merge in database", err, map[string]interface{}{
				"user_id":    userID,
				"product_id": productID,
			})
		}
		return nil, err
	}

	logger.Debug("Cart item found for merge in database", map[string]interface{}{
		"cart_item_id": cartItem.ID,
		"user_id":      userID,
		"product_id":   productID,
	})
	return &cartItem, nil
}

func (r *cartRepository) FindByUserAndProduct(userID, productID uint) ([]model.CartItem, error) {
	logger.Debug("Finding cart items by user and product in database", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
	})

	var cartItems []model.CartItem
	err := r.db.Where("user_id = ? AND product_id = ?", userID, productID).
		Order("created_at ASC").
		Find(&cartItems).Error
	if err != nil {
		logger.Error("Failed to find cart items by user and product in database", err, map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		return nil, err
	}

	logger.Debug("Cart items found by user and product in database", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
		"count":      len(cartItems),
	})
	return cartItems, nil
}

func (r *cartRepository) Update(cartItem *model.CartItem) error {
	logger.Debug("Updating cart item in database", map[string]interface{}{
		"cart_item_id": cartItem.ID,
		"user_id":      cartItem.UserID,
		"product_id":   cartItem.ProductID,
		"quantity":     cartItem.Quantity,
	})

	if err := r.db.Save(cartItem).Error; err != nil {
		logger.Error("Failed to update cart item in database", err, map[string]interface{}{
			"cart_item_id": cartItem.ID,
			"user_id":      cartItem.UserID,
			"product_id":   cartItem.ProductID,
		})
		return err
	}

	logger.Debug("Cart item updated in database", map[string]interface{}{
		"cart_item_id": cartItem.ID,
		"user_id":      cartItem.UserID,
		"product_id":   cartItem.ProductID,
	})
	return nil
}

// MergeIncrement bumps quantity and total price in a single UPDATE so
// concurrent adds to the same line do not lose increments.
func (r *cartRepository) MergeIncrement(id uint, quantity int, totalPrice float64) error {
	logger.Debug("Incrementing cart item in database", map[string]interface{}{
		"cart_item_id": id,
		"quantity":     quantity,
		"total_price":  totalPrice,
	})

	err := r.db.Model(&model.CartItem{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"quantity":    gorm.Expr("quantity + ?", quantity),
			"total_price": gorm.Expr("total_price + ?", totalPrice),
		}).Error
	if err != nil {
		logger.Error("Failed to increment cart item in database", err, map[string]interface{}{
			"cart_item_id": id,
		})
		return err
	}

	logger.Debug("Cart item incremented in database", map[string]interface{}{
		"cart_item_id": id,
	})
	return nil
}

func (r *cartRepository) Delete(id uint) error {
	logger.Debug("Deleting cart item from database", map[string]interface{}{
		"cart_item_id": id,
	})

	if err := r.db.Delete(&model.CartItem{}, id).Error; err != nil {
		logger.Error("Failed to delete cart item from database", err, map[string]interface{}{
			"cart_item_id": id,
		})
		return err
	}

	logger.Debug("Cart item deleted from database", map[string]interface{}{
		"cart_item_id": id,
	})
	return nil
}

// DeleteByUserAndProduct removes every line for the product, regardless
// of customization, and reports how many were removed.
func (r *cartRepository) DeleteByUserAndProduct(userID, productID uint) (int64, error) {
	logger.Debug("Deleting cart items by user and product from database", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
	})

	result := r.db.Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&model.CartItem{})
	if result.Error != nil {
		logger.Error("Failed to delete cart items by user and product from database", result.Error, map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		return 0, result.Error
	}

	logger.Debug("Cart items deleted by user and product from database", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
		"count":      result.RowsAffected,
	})
	return result.RowsAffected, nil
}

func (r *cartRepository) DeleteByUserID(userID uint) error {
	logger.Debug("Deleting cart items by user ID from database", map[string]interface{}{
		"user_id": userID,
	})

	if err := r.db.Where("user_id = ?", userID).Delete(&model.CartItem{}).Error; err != nil {
		logger.Error("Failed to delete cart items by user ID from database", err, map[string]interface{}{
			"user_id": userID,
		})
		return err
	}

	logger.Debug("Cart items deleted by user ID from database", map[string]interface{}{
		"user_id": userID,
	})
	return nil
}

// DeleteStale removes cart lines not touched since olderThan. Used by
// the nightly purge job.
func (r *cartRepository) DeleteStale(olderThan time.Time) (int64, error) {
	logger.Debug("Deleting stale cart items from database", map[string]interface{}{
		"older_than": olderThan,
	})

	result := r.db.Where("updated_at < ?", olderThan).Delete(&model.CartItem{})
	if result.Error != nil {
		logger.Error("Failed to delete stale cart items from database", result.Error, map[string]interface{}{
			"older_than": olderThan,
		})
		return 0, result.Error
	}

	logger.Debug("Stale cart items deleted from database", map[string]interface{}{
		"older_than": olderThan,
		"count":      result.RowsAffected,
	})
	return result.RowsAffected, nil
}
