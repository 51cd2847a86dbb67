package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sweetcrumb/cakeshop-backend/internal/app/model"
	"github.com/sweetcrumb/cakeshop-backend/internal/app/repository"
	"github.com/sweetcrumb/cakeshop-backend/internal/db"
	"gorm.io/gorm"
)

func setupCartServiceTest(t *testing.T) (*gorm.DB, CartService, *model.User, *model.Product) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	cartRepo := repository.NewCartRepository(testDB)
	productRepo := repository.NewProductRepository(testDB)
	optionRepo := repository.NewCustomizationOptionRepository(testDB)

	service := NewCartService(cartRepo, productRepo, optionRepo)

	user := &model.User{
		Email:        "customer@example.com",
		PasswordHash: "hash",
		Name:         "Customer",
		Role:         model.RoleUser,
	}
	testDB.Create(user)

	product := &model.Product{
		Name:     "Chocolate Dream",
		Price:    45,
		Category: "chocolate",
	}
	testDB.Create(product)

	options := []model.CustomizationOption{
		{Category: model.OptionCategorySize, Name: "Medium", PriceAdjustment: 10, IsActive: true},
		{Category: model.OptionCategorySize, Name: "Large", PriceAdjustment: 20, IsActive: true},
		{Category: model.OptionCategoryTopping, Name: "Sprinkles", PriceAdjustment: 3, IsActive: true},
		{Category: model.OptionCategoryTopping, Name: "Macarons", PriceAdjustment: 3, IsActive: true},
	}
	for i := range options {
		testDB.Create(&options[i])
	}

	return testDB, service, user, product
}

func TestCartService_AddToCart_NewLine(t *testing.T) {
	_, service, user, product := setupCartServiceTest(t)

	customization := &model.Customization{Size: "medium", Toppings: []string{"Sprinkles"}}
	err := service.AddToCart(user.ID, product.ID, customization, 2)
	require.NoError(t, err)

	items, err := service.GetUserCart(user.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.InDelta(t, 58.0, items[0].UnitPrice, 0.001)
	assert.InDelta(t, 116.0, items[0].TotalPrice, 0.001)
}

func TestCartService_AddToCart_MergesSameCustomization(t *testing.T) {
	_, service, user, product := setupCartServiceTest(t)

	first := &model.Customization{Size: "large", Toppings: []string{"Sprinkles", "Macarons"}}
	require.NoError(t, service.AddToCart(user.ID, product.ID, first, 1))

	// Same selections with toppings in a different order merge
	second := &model.Customization{Size: "large", Toppings: []string{"Macarons", "Sprinkles"}}
	require.NoError(t, service.AddToCart(user.ID, product.ID, second, 2))

	items, err := service.GetUserCart(user.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
	assert.InDelta(t, 71.0, items[0].UnitPrice, 0.001)
	assert.InDelta(t, 213.0, items[0].TotalPrice, 0.001)
}

// raceCartRepo makes the merge lookup miss a set number of times,
// reproducing the window where two first-time adds of the same
// configuration both pass the lookup and race to insert.
type raceCartRepo struct {
	repository.CartRepository
	misses int
}

func (r *raceCartRepo) FindForMerge(userID, productID uint, customizationKey string) (*model.CartItem, error) {
	if r.misses > 0 {
		r.misses--
		return nil, gorm.ErrRecordNotFound
	}
	return r.CartRepository.FindForMerge(userID, productID, customizationKey)
}

func TestCartService_AddToCart_ConcurrentFirstAddsMerge(t *testing.T) {
	testDB, _, user, product := setupCartServiceTest(t)

	cartRepo := &raceCartRepo{CartRepository: repository.NewCartRepository(testDB), misses: 2}
	productRepo := repository.NewProductRepository(testDB)
	optionRepo := repository.NewCustomizationOptionRepository(testDB)
	service := NewCartService(cartRepo, productRepo, optionRepo)

	customization := &model.Customization{Size: "medium", Toppings: []string{"Sprinkles"}}
	require.NoError(t, service.AddToCart(user.ID, product.ID, customization, 1))
	// The second add also misses the lookup, hits the unique merge
	// identity on insert and folds into the first line instead
	require.NoError(t, service.AddToCart(user.ID, product.ID, customization, 2))

	items, err := service.GetUserCart(user.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
	assert.InDelta(t, 174.0, items[0].TotalPrice, 0.001)
}

func TestCartService_AddToCart_DifferentCustomizationNewLine(t *testing.T) {
	_, service, user, product := setupCartServiceTest(t)

	require.NoError(t, service.AddToCart(user.ID, product.ID, &model.Customization{Size: "medium"}, 1))
	require.NoError(t, service.AddToCart(user.ID, product.ID, &model.Customization{Size: "large"}, 1))
	require.NoError(t, service.AddToCart(user.ID, product.ID, nil, 1))

	items, err := service.GetUserCart(user.ID)
	require.NoError(t, err)
	assert.Len(t, items, 3)
}

func TestCartService_AddToCart_ProductNotFound(t *testing.T) {
	_, service, user, _ := setupCartServiceTest(t)

	err := service.AddToCart(user.ID, 9999, nil, 1)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCartService_AddToCart_InvalidQuantity(t *testing.T) {
	_, service, user, product := setupCartServiceTest(t)

	err := service.AddToCart(user.ID, product.ID, nil, 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestCartService_UpdateQuantity_Requotes(t *testing.T) {
	testDB, service, user, product := setupCartServiceTest(t)

	customization := &model.Customization{Size: "medium"}
	require.NoError(t, service.AddToCart(user.ID, product.ID, customization, 1))

	// Manager raises the medium surcharge; quantity update re-quotes
	testDB.Model(&model.CustomizationOption{}).
		Where("category = ? AND name = ?", model.OptionCategorySize, "Medium").
		Update("price_adjustment", 15)

	require.NoError(t, service.UpdateQuantity(user.ID, product.ID, 3))

	items, err := service.GetUserCart(user.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
	assert.InDelta(t, 60.0, items[0].UnitPrice, 0.001)
	assert.InDelta(t, 180.0, items[0].TotalPrice, 0.001)
}

func TestCartService_UpdateQuantity_ZeroRemoves(t *testing.T) {
	_, service, user, product := setupCartServiceTest(t)

	require.NoError(t, service.AddToCart(user.ID, product.ID, nil, 2))
	require.NoError(t, service.UpdateQuantity(user.ID, product.ID, 0))

	items, err := service.GetUserCart(user.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestCartService_UpdateQuantity_NotFound(t *testing.T) {
	_, service, user, product := setupCartServiceTest(t)

	err := service.UpdateQuantity(user.ID, product.ID, 2)
	assert.ErrorIs(t, err, ErrCartItemNotFound)
}

func TestCartService_RemoveProduct_AllLines(t *testing.T) {
	_, service, user, product := setupCartServiceTest(t)

	// Two lines with different customizations for the same product
	require.NoError(t, service.AddToCart(user.ID, product.ID, &model.Customization{Size: "medium"}, 1))
	require.NoError(t, service.AddToCart(user.ID, product.ID, &model.Customization{Size: "large"}, 1))

	require.NoError(t, service.RemoveProduct(user.ID, product.ID))

	items, err := service.GetUserCart(user.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestCartService_RemoveProduct_NotFound(t *testing.T) {
	_, service, user, product := setupCartServiceTest(t)

	err := service.RemoveProduct(user.ID, product.ID)
	assert.ErrorIs(t, err, ErrCartItemNotFound)
}

func TestCartService_GetCartTotals(t *testing.T) {
	_, service, user, product := setupCartServiceTest(t)

	require.NoError(t, service.AddToCart(user.ID, product.ID, &model.Customization{Size: "medium"}, 2)) // 55 * 2
	require.NoError(t, service.AddToCart(user.ID, product.ID, nil, 1))                                  // 45

	totals, err := service.GetCartTotals(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, totals.ItemCount)
	assert.InDelta(t, 155.0, totals.TotalPrice, 0.001)
}

func TestCartService_ClearCart(t *testing.T) {
	_, service, user, product := setupCartServiceTest(t)

	require.NoError(t, service.AddToCart(user.ID, product.ID, nil, 2))
	require.NoError(t, service.ClearCart(user.ID))

	items, err := service.GetUserCart(user.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}
