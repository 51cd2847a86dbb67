package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sweetcrumb/cakeshop-backend/internal/app/model"
	"github.com/sweetcrumb/cakeshop-backend/internal/app/repository"
	"github.com/sweetcrumb/cakeshop-backend/internal/db"
)

func setupProductServiceTest(t *testing.T) ProductService {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	return NewProductService(repository.NewProductRepository(testDB))
}

func TestProductService_CreateAndGet(t *testing.T) {
	service := setupProductServiceTest(t)

	created, err := service.CreateProduct(ProductInput{
		Name:        "Vanilla Wedding",
		Description: "Three-tier vanilla cake",
		Price:       120,
		Category:    "wedding",
		Rating:      4.9,
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	found, err := service.GetProductByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Vanilla Wedding", found.Name)
	assert.InDelta(t, 120.0, found.Price, 0.001)
}

func TestProductService_CreateProduct_Invalid(t *testing.T) {
	service := setupProductServiceTest(t)

	_, err := service.CreateProduct(ProductInput{Name: "", Price: 10})
	assert.ErrorIs(t, err, ErrInvalidProductData)

	_, err = service.CreateProduct(ProductInput{Name: "Bad", Price: -5})
	assert.ErrorIs(t, err, ErrInvalidProductData)
}

func TestProductService_GetAllProducts_CategoryFilter(t *testing.T) {
	service := setupProductServiceTest(t)

	_, err := service.CreateProduct(ProductInput{Name: "Chocolate Lava", Price: 28, Category: "chocolate"})
	require.NoError(t, err)
	_, err = service.CreateProduct(ProductInput{Name: "Lemon Sunshine", Price: 32, Category: "fruit"})
	require.NoError(t, err)

	all, err := service.GetAllProducts("")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	chocolate, err := service.GetAllProducts("chocolate")
	require.NoError(t, err)
	require.Len(t, chocolate, 1)
	assert.Equal(t, "Chocolate Lava", chocolate[0].Name)
}

func TestProductService_UpdateProduct(t *testing.T) {
	service := setupProductServiceTest(t)

	created, err := service.CreateProduct(ProductInput{Name: "Tiramisu Delight", Price: 48, Category: "specialty"})
	require.NoError(t, err)

	updated, err := service.UpdateProduct(created.ID, ProductInput{
		Name:     "Tiramisu Delight",
		Price:    52,
		Category: "specialty",
	})
	require.NoError(t, err)
	assert.InDelta(t, 52.0, updated.Price, 0.001)
}

func TestProductService_UpdateProduct_NotFound(t *testing.T) {
	service := setupProductServiceTest(t)

	_, err := service.UpdateProduct(9999, ProductInput{Name: "Ghost", Price: 1})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestProductService_DeleteProduct(t *testing.T) {
	service := setupProductServiceTest(t)

	created, err := service.CreateProduct(ProductInput{Name: "Carrot Garden", Price: 40, Category: "classic"})
	require.NoError(t, err)

	require.NoError(t, service.DeleteProduct(created.ID))

	_, err = service.GetProductByID(created.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestOptionService_Validation(t *testing.T) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	service := NewOptionService(repository.NewCustomizationOptionRepository(testDB))

	_, err = service.CreateOption(OptionInput{Category: "garnish", Name: "Mint"})
	assert.ErrorIs(t, err, ErrInvalidOptionCategory)

	_, err = service.CreateOption(OptionInput{Category: model.OptionCategoryTopping, Name: " "})
	assert.ErrorIs(t, err, ErrInvalidOptionData)

	option, err := service.CreateOption(OptionInput{
		Category:        model.OptionCategoryTopping,
		Name:            "Edible Flowers",
		PriceAdjustment: 3,
		IsActive:        true,
	})
	require.NoError(t, err)
	assert.NotZero(t, option.ID)

	active, err := service.GetActiveOptions()
	require.NoError(t, err)
	assert.Len(t, active, 1)
}
