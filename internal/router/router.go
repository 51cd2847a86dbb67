package router

import (
	"github.com/gin-gonic/gin"
	"github.com/sweetcrumb/cakeshop-backend/config"
	"github.com/sweetcrumb/cakeshop-backend/internal/app/controller"
	"github.com/sweetcrumb/cakeshop-backend/internal/middleware"
)

type Router struct {
	authController     *controller.AuthController
	productController  *controller.ProductController
	optionController   *controller.OptionController
	cartController     *controller.CartController
	orderController    *controller.OrderController
	settingsController *controller.SettingsController
	uploadController   *controller.UploadController
	eventsController   *controller.EventsController
	authMiddleware     *middleware.AuthMiddleware
	config             *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	productController *controller.ProductController,
	optionController *controller.OptionController,
	cartController *controller.CartController,
	orderController *controller.OrderController,
	settingsController *controller.SettingsController,
	uploadController *controller.UploadController,
	eventsController *controller.EventsController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:     authController,
		productController:  productController,
		optionController:   optionController,
		cartController:     cartController,
		orderController:    orderController,
		settingsController: settingsController,
		uploadController:   uploadController,
		eventsController:   eventsController,
		authMiddleware:     authMiddleware,
		config:             cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "Sweet Crumb API is running",
		})
	})

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authController.Register)
			auth.POST("/login", r.authController.Login)
			auth.POST("/logout", r.authMiddleware.Authenticate(), r.authController.Logout)
			auth.GET("/me", r.authMiddleware.Authenticate(), r.authController.GetMe)
			auth.PUT("/me", r.authMiddleware.Authenticate(), r.authController.UpdateMe)
		}

		// Public storefront reads
		products := v1.Group("/products")
		{
			products.GET("", r.productController.GetProducts)
			products.GET("/:id", r.productController.GetProduct)
		}

		v1.GET("/options", r.optionController.GetActiveOptions)
		v1.GET("/settings", r.settingsController.GetSettings)

		cart := v1.Group("/cart")
		cart.Use(r.authMiddleware.Authenticate())
		{
			cart.GET("", r.cartController.GetCart)
			cart.POST("", r.cartController.AddToCart)
			cart.PUT("/products/:productId", r.cartController.UpdateQuantity)
			cart.DELETE("/products/:productId", r.cartController.RemoveProduct)
			cart.DELETE("", r.cartController.ClearCart)
		}

		orders := v1.Group("/orders")
		orders.Use(r.authMiddleware.Authenticate())
		{
			orders.POST("", r.orderController.PlaceOrder)
			orders.GET("", r.orderController.GetUserOrders)
			orders.GET("/:id", r.orderController.GetOrder)
		}

		// Manager console
		manage := v1.Group("/manage")
		manage.Use(r.authMiddleware.Authenticate(), r.authMiddleware.RequireRole("manager"))
		{
			manage.POST("/products", r.productController.CreateProduct)
			manage.PUT("/products/:id", r.productController.UpdateProduct)
			manage.DELETE("/products/:id", r.productController.DeleteProduct)

			manage.GET("/options", r.optionController.GetAllOptions)
			manage.POST("/options", r.optionController.CreateOption)
			manage.PUT("/options/:id", r.optionController.UpdateOption)
			manage.DELETE("/options/:id", r.optionController.DeleteOption)

			manage.PUT("/settings", r.settingsController.UpdateSettings)

			manage.GET("/orders", r.orderController.GetAllOrders)
			manage.GET("/orders/export", r.orderController.ExportOrders)
			manage.GET("/orders/events", r.eventsController.StreamOrderEvents)
			manage.PATCH("/orders/:id/status", r.orderController.UpdateOrderStatus)

			manage.POST("/uploads/presign", r.uploadController.PresignUpload)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
