package main

import (
	"log"
	"time"

	"go-shop-backend/internal/config"
	"go-shop-backend/internal/database"
	"go-shop-backend/internal/handlers"
	"go-shop-backend/internal/middleware"
	"go-shop-backend/internal/orders"
	"go-shop-backend/internal/otp"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

func main() {
	// Money fields serialize as JSON numbers, not strings
	decimal.MarshalJSONWithoutQuotes = true

	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Sync()

	database.Connect(cfg.DBDSN)

	store := orders.NewGormStore(database.DB)
	orderSvc := orders.NewService(store, logger)
	otpSvc := otp.NewService(database.DB, &otp.LogSender{Logger: logger})
	handlers.Init(cfg, logger, orderSvc, store, otpSvc)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "online"}) })
	r.Static("/uploads", "./uploads")

	// Credential and OTP routes are throttled per client IP
	authRoutes := r.Group("/")
	authRoutes.Use(middleware.RateLimit(rate.Every(time.Second), 5))
	{
		authRoutes.POST("/login", handlers.Login)
		authRoutes.POST("/admin/login", handlers.AdminLogin)
		authRoutes.POST("/otp/request", handlers.RequestOTP)
		authRoutes.POST("/otp/verify", handlers.VerifyOTP)

		// Only opens if we explicitly allow it in .env
		if cfg.AllowRegistration {
			authRoutes.POST("/register", handlers.Register)
			log.Println("⚠️ WARNING: Registration route is OPEN. Disable this in production!")
		} else {
			log.Println("🔒 Registration route is safely DISABLED.")
		}
	}

	// Public storefront reads
	r.GET("/products/:slug", handlers.GetProductBySlug)
	r.GET("/categories", handlers.GetPOSCategories)
	r.GET("/brands", handlers.GetPOSBrands)

	// --- PROTECTED ROUTES ---
	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware())
	{
		// CUSTOMER SURFACE
		api.POST("/cart/sync", handlers.SyncCart)
		api.GET("/cart", handlers.GetCart)
		api.POST("/wishlist/toggle", handlers.ToggleWishlist)
		api.GET("/wishlist", handlers.GetWishlist)

		api.POST("/addresses", handlers.CreateAddress)
		api.GET("/addresses", handlers.ListAddresses)
		api.PUT("/addresses/:id", handlers.UpdateAddress)
		api.DELETE("/addresses/:id", handlers.DeleteAddress)

		api.POST("/apply-coupon", handlers.ApplyCoupon)
		api.POST("/payment/order", handlers.CreatePaymentOrder)
		api.POST("/payment/verify", handlers.VerifyPayment)

		api.POST("/orders", handlers.SaveOrder)
		api.GET("/orders", handlers.GetMyOrders)
		api.GET("/orders/:id", handlers.GetMyOrder)

		// ADMIN ONLY
		admin := api.Group("/admin")
		admin.Use(middleware.RequireRole("admin"))
		{
			admin.POST("/categories", handlers.CreateCategory)
			admin.GET("/categories", handlers.ListCategories)
			admin.GET("/categories/:id", handlers.GetCategory)
			admin.PUT("/categories/:id", handlers.UpdateCategory)
			admin.DELETE("/categories/:id", handlers.DeleteCategory)

			admin.POST("/brands", handlers.CreateBrand)
			admin.GET("/brands", handlers.ListBrands)
			admin.GET("/brands/:id", handlers.GetBrand)
			admin.PUT("/brands/:id", handlers.UpdateBrand)
			admin.DELETE("/brands/:id", handlers.DeleteBrand)

			admin.POST("/products", handlers.CreateProduct)
			admin.GET("/products", handlers.ListProducts)
			admin.GET("/products/:id", handlers.GetProduct)
			admin.PUT("/products/:id", handlers.UpdateProduct)
			admin.PUT("/products/:id/publish", handlers.PublishProduct)
			admin.POST("/products/:id/variants", handlers.SyncVariants)
			admin.PUT("/variants/:variantId", handlers.UpdateVariant)
			admin.PUT("/products/:id/tax", handlers.UpdateProductTax)
			admin.PUT("/products/:id/meta", handlers.UpdateProductMeta)

			admin.POST("/coupons", handlers.CreateCoupon)
			admin.GET("/coupons", handlers.ListCoupons)
			admin.GET("/coupons/:id", handlers.GetCoupon)
			admin.PUT("/coupons/:id", handlers.UpdateCoupon)
			admin.DELETE("/coupons/:id", handlers.DeleteCoupon)

			admin.GET("/orders", handlers.ListOrders)
			admin.GET("/orders/counts", handlers.GetOrderStatusCounts)
			admin.GET("/orders/:id", handlers.GetOrderDetail)
			admin.PUT("/orders/:id/status", handlers.UpdateOrderStatus)

			admin.GET("/pos/products", handlers.GetPOSProducts)
			admin.GET("/pos/categories", handlers.GetPOSCategories)
			admin.GET("/pos/brands", handlers.GetPOSBrands)
			admin.POST("/pos/orders", handlers.CreatePOSOrder)
			admin.GET("/pos/orders", handlers.ListPOSOrders)
			admin.GET("/pos/orders/:id", handlers.GetPOSOrder)

			admin.GET("/reports", handlers.GetSalesReport)
			admin.GET("/reports/low-stock", handlers.GetLowStockReport)

			admin.GET("/settings/application", handlers.GetApplicationSettings)
			admin.PUT("/settings/application", handlers.UpdateApplicationSettings)
			admin.GET("/settings/payment", handlers.GetPaymentSettings)
			admin.PUT("/settings/payment", handlers.UpdatePaymentSettings)
			admin.GET("/settings/social", handlers.GetSocialSettings)
			admin.PUT("/settings/social", handlers.UpdateSocialSettings)
		}
	}

	log.Println("🚀 Server starting on " + cfg.BaseURL)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Server failed to start:", err)
	}
}
