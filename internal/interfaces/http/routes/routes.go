// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/your-org/delivery-backend/internal/config"
	"github.com/your-org/delivery-backend/internal/interfaces/http/handlers"
	"github.com/your-org/delivery-backend/internal/interfaces/http/middleware"
)

// SetupRoutes wires every API route group.
func SetupRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	SetupAuthRoutes(rg, db, cfg)
	SetupStorefrontRoutes(rg, db, redisClient, cfg)
	SetupDashboardRoutes(rg, db, redisClient, cfg)
}

// SetupAuthRoutes sets up merchant authentication routes
func SetupAuthRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	authHandler := handlers.NewAuthHandler(db, cfg)

	auth := rg.Group("/auth")
	{
		// Public auth endpoints
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.RefreshToken)

		// Protected auth endpoints
		protected := auth.Group("")
		protected.Use(middleware.AuthMiddleware(cfg))
		{
			protected.GET("/profile", authHandler.GetProfile)
			protected.PUT("/password", authHandler.ChangePassword)
		}
	}
}

// SetupStorefrontRoutes sets up the public customer-facing routes. Everything
// is scoped under the store slug; no authentication is required.
func SetupStorefrontRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	storeHandler := handlers.NewStoreHandler(db, cfg)
	productHandler := handlers.NewProductHandler(db, cfg)
	cartHandler := handlers.NewCartHandler(db, redisClient, cfg)
	checkoutHandler := handlers.NewCheckoutHandler(db, redisClient, cfg)
	orderHandler := handlers.NewOrderHandler(db, cfg)
	cepHandler := handlers.NewCEPHandler()

	// Postal-code lookup is store-independent
	rg.GET("/cep/:code", cepHandler.Lookup)

	stores := rg.Group("/stores/:slug")
	{
		stores.GET("", storeHandler.GetStore)

		stores.GET("/products", productHandler.ListProducts)
		stores.GET("/products/:id", productHandler.GetProduct)
		stores.GET("/categories", productHandler.ListCategories)

		cart := stores.Group("/cart")
		{
			cart.GET("", cartHandler.GetCart)
			cart.POST("/items", cartHandler.AddToCart)
			cart.PUT("/items/:id", cartHandler.UpdateQuantity)
			cart.DELETE("/items/:id", cartHandler.RemoveFromCart)
			cart.DELETE("", cartHandler.ClearCart)
		}

		checkout := stores.Group("/checkout")
		{
			checkout.POST("/summary", checkoutHandler.GetSummary)
			checkout.POST("", checkoutHandler.Submit)
		}

		orders := stores.Group("/orders")
		{
			orders.GET("", orderHandler.ListCustomerOrders)
			orders.GET("/:number", orderHandler.GetOrder)
		}
	}
}

// SetupDashboardRoutes sets up the merchant dashboard routes. All routes
// require a valid merchant token scoped to the store in the path.
func SetupDashboardRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	storeHandler := handlers.NewStoreHandler(db, cfg)
	productHandler := handlers.NewProductHandler(db, cfg)
	orderHandler := handlers.NewOrderHandler(db, cfg)
	uploadHandler := handlers.NewUploadHandler(db, cfg)

	dashboard := rg.Group("/dashboard/stores/:slug")
	dashboard.Use(middleware.AuthMiddleware(cfg))
	dashboard.Use(middleware.StoreAccessMiddleware())
	{
		dashboard.PUT("/settings", storeHandler.UpdateSettings)

		products := dashboard.Group("/products")
		{
			products.GET("", productHandler.DashboardListProducts)
			products.POST("", productHandler.CreateProduct)
			products.PUT("/:id", productHandler.UpdateProduct)
			products.PUT("/:id/composition", productHandler.UpdateComposition)
			products.DELETE("/:id", productHandler.DeleteProduct)
		}

		categories := dashboard.Group("/categories")
		{
			categories.GET("", productHandler.DashboardListCategories)
			categories.POST("", productHandler.CreateCategory)
			categories.PUT("/:id", productHandler.UpdateCategory)
			categories.DELETE("/:id", productHandler.DeleteCategory)
		}

		orders := dashboard.Group("/orders")
		{
			orders.GET("", orderHandler.DashboardListOrders)
			orders.GET("/:number", orderHandler.GetOrder)
			orders.PUT("/:number/status", orderHandler.UpdateStatus)
			orders.PUT("/:number/cancel", orderHandler.CancelOrder)
			orders.PUT("/:number/paid", orderHandler.MarkPaid)
			orders.GET("/:number/receipt", orderHandler.GetReceipt)
		}

		assets := dashboard.Group("/assets")
		{
			assets.POST("", uploadHandler.UploadAsset)
			assets.GET("", uploadHandler.ListAssets)
			assets.DELETE("/:id", uploadHandler.DeleteAsset)
		}
	}
}
