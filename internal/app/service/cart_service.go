package service

import (
	"errors"
	"time"

	"github.com/sweetcrumb/cakeshop-backend/internal/app/model"
	"github.com/sweetcrumb/cakeshop-backend/internal/app/repository"
	apperrors "github.com/sweetcrumb/cakeshop-backend/internal/errors"
	"github.com/sweetcrumb/cakeshop-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrInvalidQuantity  = errors.New("quantity must be at least 1")
)

// CartTotals summarizes the basket for badges and the checkout screen
type CartTotals struct {
	ItemCount  int     `json:"item_count"`
	TotalPrice float64 `json:"total_price"`
}

type CartService interface {
	GetUserCart(userID uint) ([]model.CartItem, error)
	GetCartTotals(userID uint) (*CartTotals, error)
	AddToCart(userID, productID uint, customization *model.Customization, quantity int) error
	UpdateQuantity(userID, productID uint, quantity int) error
	RemoveProduct(userID, productID uint) error
	ClearCart(userID uint) error
	PurgeStaleItems(olderThan time.Time) (int64, error)
}

type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	optionRepo  repository.CustomizationOptionRepository
}

func NewCartService(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	optionRepo repository.CustomizationOptionRepository,
) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		optionRepo:  optionRepo,
	}
}

func (s *cartService) GetUserCart(userID uint) ([]model.CartItem, error) {
	logger.Debug("Fetching user cart", map[string]interface{}{
		"user_id": userID,
	})

	cartItems, err := s.cartRepo.FindByUserID(userID)
	if err != nil {
		logger.Error("Failed to fetch user cart", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Info("User cart fetched successfully", map[string]interface{}{
		"user_id": userID,
		"count":   len(cartItems),
	})
	return cartItems, nil
}

func (s *cartService) GetCartTotals(userID uint) (*CartTotals, error) {
	cartItems, err := s.cartRepo.FindByUserID(userID)
	if err != nil {
		logger.Error("Failed to fetch cart for totals", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	totals := &CartTotals{}
	for _, item := range cartItems {
		totals.ItemCount += item.Quantity
		totals.TotalPrice += item.TotalPrice
	}

	logger.Debug("Cart totals computed", map[string]interface{}{
		"user_id":     userID,
		"item_count":  totals.ItemCount,
		"total_price": totals.TotalPrice,
	})
	return totals, nil
}

// AddToCart merges into an existing line when the product and
// customization match exactly, otherwise starts a new line.
func (s *cartService) AddToCart(userID, productID uint, customization *model.Customization, quantity int) error {
	logger.Info("Adding item to cart", map[string]interface{}{
		"user_id":           userID,
		"product_id":        productID,
		"quantity":          quantity,
		"customization_key": customization.Key(),
	})

	if quantity < 1 {
		logger.Warn("Cannot add to cart: invalid quantity", map[string]interface{}{
			"user_id":  userID,
			"quantity": quantity,
		})
		return ErrInvalidQuantity
	}

	product, err := s.productRepo.FindByID(productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cannot add to cart: product not found", map[string]interface{}{
				"user_id":    userID,
				"product_id": productID,
			})
			return ErrProductNotFound
		}
		logger.Error("Failed to fetch product", err, map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		return err
	}

	unitPrice, err := s.quote(product.Price, customization)
	if err != nil {
		return err
	}

	existingItem, err := s.cartRepo.FindForMerge(userID, productID, customization.Key())
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("Failed to check existing cart item", err, map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		return err
	}

	if existingItem != nil {
		logger.Debug("Merging into existing cart item", map[string]interface{}{
			"cart_item_id": existingItem.ID,
			"old_qty":      existingItem.Quantity,
			"added_qty":    quantity,
		})
		if err := s.cartRepo.MergeIncrement(existingItem.ID, quantity, unitPrice*float64(quantity)); err != nil {
			logger.Error("Failed to merge cart item", err, map[string]interface{}{
				"cart_item_id": existingItem.ID,
			})
			return err
		}
		return nil
	}

	cartItem := &model.CartItem{
		UserID:           userID,
		ProductID:        productID,
		Customization:    customization,
		CustomizationKey: customization.Key(),
		Quantity:         quantity,
		UnitPrice:        unitPrice,
		TotalPrice:       unitPrice * float64(quantity),
	}

	if err := s.cartRepo.Create(cartItem); err != nil {
		// Two first-time adds of the same configuration can race past
		// the merge lookup; the unique merge identity rejects the
		// second insert, which then folds into the winner's line.
		if apperrors.IsDuplicateKey(err) {
			winner, findErr := s.cartRepo.FindForMerge(userID, productID, customization.Key())
			if findErr != nil {
				logger.Error("Failed to recover duplicate cart line", findErr, map[string]interface{}{
					"user_id":    userID,
					"product_id": productID,
				})
				return findErr
			}
			logger.Debug("Duplicate cart line detected, merging into winner", map[string]interface{}{
				"cart_item_id": winner.ID,
				"added_qty":    quantity,
			})
			return s.cartRepo.MergeIncrement(winner.ID, quantity, unitPrice*float64(quantity))
		}
		logger.Error("Failed to create cart item", err, map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		return err
	}

	logger.Info("Cart item added successfully", map[string]interface{}{
		"cart_item_id": cartItem.ID,
		"unit_price":   unitPrice,
	})
	return nil
}

// UpdateQuantity sets the quantity on every line for the product. A
// quantity of zero or less removes the product entirely. Prices are
// re-quoted against the current price list.
func (s *cartService) UpdateQuantity(userID, productID uint, quantity int) error {
	logger.Info("Updating cart quantity", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
		"quantity":   quantity,
	})

	if quantity <= 0 {
		return s.RemoveProduct(userID, productID)
	}

	cartItems, err := s.cartRepo.FindByUserAndProduct(userID, productID)
	if err != nil {
		logger.Error("Failed to fetch cart items for update", err, map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		return err
	}
	if len(cartItems) == 0 {
		logger.Warn("Cart item not found for quantity update", map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		return ErrCartItemNotFound
	}

	product, err := s.productRepo.FindByID(productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		logger.Error("Failed to fetch product for re-quote", err, map[string]interface{}{
			"product_id": productID,
		})
		return err
	}

	for i := range cartItems {
		item := &cartItems[i]

		unitPrice, err := s.quote(product.Price, item.Customization)
		if err != nil {
			return err
		}

		item.Quantity = quantity
		item.UnitPrice = unitPrice
		item.TotalPrice = unitPrice * float64(quantity)
		if err := s.cartRepo.Update(item); err != nil {
			logger.Error("Failed to update cart item quantity", err, map[string]interface{}{
				"cart_item_id": item.ID,
			})
			return err
		}
	}

	logger.Info("Cart quantity updated successfully", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
		"lines":      len(cartItems),
		"quantity":   quantity,
	})
	return nil
}

// RemoveProduct deletes every line for the product, customized or not
func (s *cartService) RemoveProduct(userID, productID uint) error {
	logger.Info("Removing product from cart", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
	})

	count, err := s.cartRepo.DeleteByUserAndProduct(userID, productID)
	if err != nil {
		logger.Error("Failed to remove product from cart", err, map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		return err
	}
	if count == 0 {
		logger.Warn("No cart lines found for product removal", map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		return ErrCartItemNotFound
	}

	logger.Info("Product removed from cart", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
		"lines":      count,
	})
	return nil
}

func (s *cartService) ClearCart(userID uint) error {
	logger.Info("Clearing user cart", map[string]interface{}{
		"user_id": userID,
	})

	if err := s.cartRepo.DeleteByUserID(userID); err != nil {
		logger.Error("Failed to clear cart", err, map[string]interface{}{
			"user_id": userID,
		})
		return err
	}

	logger.Info("User cart cleared", map[string]interface{}{
		"user_id": userID,
	})
	return nil
}

// PurgeStaleItems drops cart lines that have not been touched since
// the cutoff. Called from the nightly scheduler.
func (s *cartService) PurgeStaleItems(olderThan time.Time) (int64, error) {
	count, err := s.cartRepo.DeleteStale(olderThan)
	if err != nil {
		logger.Error("Failed to purge stale cart items", err, map[string]interface{}{
			"older_than": olderThan,
		})
		return 0, err
	}

	logger.Info("Stale cart items purged", map[string]interface{}{
		"older_than": olderThan,
		"count":      count,
	})
	return count, nil
}

// quote prices one unit against the active option list. An unreadable
// option list degrades to the fallback table rather than failing.
func (s *cartService) quote(basePrice float64, customization *model.Customization) (float64, error) {
	options, err := s.optionRepo.FindActive()
	if err != nil {
		logger.Warn("Option list unavailable, using fallback pricing", map[string]interface{}{
			"error": err.Error(),
		})
		options = nil
	}
	return QuoteUnitPrice(basePrice, customization, options), nil
}
