package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sweetcrumb/cakeshop-backend/internal/app/model"
	"github.com/sweetcrumb/cakeshop-backend/internal/app/repository"
	"github.com/sweetcrumb/cakeshop-backend/internal/app/service"
	"github.com/sweetcrumb/cakeshop-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupOrderControllerTest(t *testing.T) (*OrderController, *gin.Engine, *gorm.DB, *model.User, *model.Product) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	require.NoError(t, testDB.Create(model.DefaultStoreSettings()).Error)

	cartRepo := repository.NewCartRepository(testDB)
	orderRepo := repository.NewOrderRepository(testDB)
	settingsRepo := repository.NewSettingsRepository(testDB)
	settingsService := service.NewSettingsService(settingsRepo)
	orderService := service.NewOrderService(orderRepo, cartRepo, settingsService, testDB, nil)
	orderController := NewOrderController(orderService)

	user := &model.User{
		Email:        "buyer@example.com",
		PasswordHash: "hash",
		Name:         "Buyer",
		Role:         model.RoleUser,
	}
	testDB.Create(user)

	product := &model.Product{
		Name:     "Chocolate Dream",
		Price:    45,
		Category: "chocolate",
	}
	testDB.Create(product)

	gin.SetMode(gin.TestMode)
	router := gin.New()

	return orderController, router, testDB, user, product
}

func addCartLine(t *testing.T, testDB *gorm.DB, userID, productID uint, qty int, unitPrice float64) {
	t.Helper()
	require.NoError(t, testDB.Create(&model.CartItem{
		UserID:     userID,
		ProductID:  productID,
		Quantity:   qty,
		UnitPrice:  unitPrice,
		TotalPrice: unitPrice * float64(qty),
	}).Error)
}

func TestOrderController_PlaceOrder_Success(t *testing.T) {
	controller, router, testDB, user, product := setupOrderControllerTest(t)

	addCartLine(t, testDB, user.ID, product.ID, 2, 61)

	router.POST("/orders", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.PlaceOrder(c)
	})

	deliveryDate := time.Now().AddDate(0, 0, 7)
	body, _ := json.Marshal(PlaceOrderRequest{
		CustomerName:  "Buyer",
		CustomerEmail: "buyer@example.com",
		DeliveryDate:  &deliveryDate,
	})
	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	order := response["order"].(map[string]interface{})
	assert.Equal(t, float64(122), order["total_amount"])
	assert.Equal(t, "pending", order["status"])

	// Cart is emptied by checkout
	var count int64
	testDB.Model(&model.CartItem{}).Where("user_id = ?", user.ID).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestOrderController_PlaceOrder_EmptyCart(t *testing.T) {
	controller, router, _, user, _ := setupOrderControllerTest(t)

	router.POST("/orders", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.PlaceOrder(c)
	})

	body, _ := json.Marshal(PlaceOrderRequest{
		CustomerName:  "Buyer",
		CustomerEmail: "buyer@example.com",
	})
	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.Equal(t, "CART_EMPTY", response["error"])
}

func TestOrderController_PlaceOrder_LeadTimeTooShort(t *testing.T) {
	controller, router, testDB, user, product := setupOrderControllerTest(t)

	addCartLine(t, testDB, user.ID, product.ID, 1, 45)

	router.POST("/orders", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.PlaceOrder(c)
	})

	deliveryDate := time.Now().Add(12 * time.Hour)
	body, _ := json.Marshal(PlaceOrderRequest{
		CustomerName:  "Buyer",
		CustomerEmail: "buyer@example.com",
		DeliveryDate:  &deliveryDate,
	})
	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.Equal(t, "ORDER_LEAD_TIME", response["error"])
	assert.Equal(t, float64(2), response["min_days"])

	// Cart survives a rejected checkout
	var count int64
	testDB.Model(&model.CartItem{}).Where("user_id = ?", user.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestOrderController_UpdateOrderStatus_Success(t *testing.T) {
	controller, router, testDB, user, product := setupOrderControllerTest(t)

	addCartLine(t, testDB, user.ID, product.ID, 1, 45)
	orderRepo := repository.NewOrderRepository(testDB)
	order := &model.Order{
		UserID:        user.ID,
		Status:        model.OrderStatusPending,
		TotalAmount:   45,
		CustomerName:  "Buyer",
		CustomerEmail: "buyer@example.com",
	}
	require.NoError(t, orderRepo.Create(order))

	router.PATCH("/manage/orders/:id/status", controller.UpdateOrderStatus)

	body, _ := json.Marshal(UpdateOrderStatusRequest{Status: model.OrderStatusConfirmed})
	req := httptest.NewRequest(http.MethodPatch, fmt.Sprintf("/manage/orders/%d/status", order.ID), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	updated := response["order"].(map[string]interface{})
	assert.Equal(t, "confirmed", updated["status"])
	assert.NotEmpty(t, response["next_statuses"])
}

func TestOrderController_UpdateOrderStatus_InvalidTransition(t *testing.T) {
	controller, router, testDB, user, _ := setupOrderControllerTest(t)

	orderRepo := repository.NewOrderRepository(testDB)
	order := &model.Order{
		UserID:        user.ID,
		Status:        model.OrderStatusPending,
		TotalAmount:   45,
		CustomerName:  "Buyer",
		CustomerEmail: "buyer@example.com",
	}
	require.NoError(t, orderRepo.Create(order))

	router.PATCH("/manage/orders/:id/status", controller.UpdateOrderStatus)

	// pending cannot jump straight to delivered
	body, _ := json.Marshal(UpdateOrderStatusRequest{Status: model.OrderStatusDelivered})
	req := httptest.NewRequest(http.MethodPatch, fmt.Sprintf("/manage/orders/%d/status", order.ID), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.Equal(t, "ORDER_INVALID_TRANSITION", response["error"])
}

func TestOrderController_GetUserOrders(t *testing.T) {
	controller, router, testDB, user, _ := setupOrderControllerTest(t)

	orderRepo := repository.NewOrderRepository(testDB)
	for i := 0; i < 2; i++ {
		require.NoError(t, orderRepo.Create(&model.Order{
			UserID:        user.ID,
			Status:        model.OrderStatusPending,
			TotalAmount:   45,
			CustomerName:  "Buyer",
			CustomerEmail: "buyer@example.com",
		}))
	}

	router.GET("/orders", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.GetUserOrders(c)
	})

	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.Equal(t, float64(2), response["count"])
}

func TestOrderController_GetAllOrders_InvalidStatus(t *testing.T) {
	controller, router, _, _, _ := setupOrderControllerTest(t)

	router.GET("/manage/orders", controller.GetAllOrders)

	req := httptest.NewRequest(http.MethodGet, "/manage/orders?status=bogus", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.Equal(t, "ORDER_INVALID_STATUS", response["error"])
}
