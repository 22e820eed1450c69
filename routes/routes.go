package routes

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"marketplace/controllers"
	"marketplace/middleware"
	"marketplace/models"
	"marketplace/services"
)

func SetupRoutes(router *gin.Engine, cartService *services.CartService, orderService *services.OrderService, cloudinary *models.CloudinaryService) {
	authCtrl := controllers.NewAuthController(cloudinary)
	userCtrl := controllers.NewUserController()
	productCtrl := controllers.NewProductController(cloudinary)
	cartCtrl := controllers.NewCartController(cartService)
	orderCtrl := controllers.NewOrderController(orderService)
	reviewCtrl := controllers.NewReviewController()
	couponCtrl := controllers.NewCouponController()
	dashboardCtrl := controllers.NewDashboardController()

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })

	router.POST("/auth/register", authCtrl.Register)
	router.POST("/auth/login", authCtrl.Login)

	router.GET("/categories", productCtrl.GetCategories)
	router.GET("/products", productCtrl.GetProducts)
	router.GET("/products/slug/:slug", productCtrl.GetProductBySlug)
	router.GET("/products/:id", productCtrl.GetProduct)
	router.GET("/products/:id/reviews", reviewCtrl.GetProductReviews)
	router.GET("/coupons/validate", couponCtrl.ValidateCoupon)

	// Cart endpoints work for both logged-in users and guests carrying
	// an X-Cart-Session header.
	cartGroup := router.Group("/cart")
	cartGroup.Use(middleware.CartOwnerMiddleware())
	{
		cartGroup.GET("", cartCtrl.GetCart)
		cartGroup.POST("/items", cartCtrl.AddItem)
		cartGroup.PATCH("/items", cartCtrl.UpdateItem)
		cartGroup.DELETE("/items", cartCtrl.RemoveItems)
		cartGroup.DELETE("", cartCtrl.ClearCart)
		cartGroup.PUT("", cartCtrl.ReplaceCart)
	}

	auth := router.Group("/")
	auth.Use(middleware.AuthMiddleware())
	{
		auth.GET("/auth/profile", authCtrl.GetProfile)
		auth.PATCH("/auth/profile", authCtrl.UpdateProfile)
		auth.POST("/auth/profile/photo", authCtrl.UpdateProfilePhoto)
		auth.POST("/auth/change-password", authCtrl.ChangePassword)

		auth.POST("/checkout", orderCtrl.Checkout)
		auth.GET("/orders", orderCtrl.GetMyOrders)
		auth.GET("/orders/:id", orderCtrl.GetMyOrder)

		auth.POST("/products/:id/reviews", reviewCtrl.CreateReview)
		auth.PATCH("/products/:id/reviews", reviewCtrl.UpdateReview)
		auth.DELETE("/products/:id/reviews", reviewCtrl.DeleteReview)
	}

	seller := router.Group("/seller")
	seller.Use(middleware.AuthMiddleware(), middleware.SellerMiddleware())
	{
		seller.GET("/dashboard", dashboardCtrl.GetSellerDashboard)

		seller.GET("/products", productCtrl.GetSellerProducts)
		seller.POST("/products", productCtrl.CreateProduct)
		seller.PATCH("/products/:id", productCtrl.UpdateProduct)
		seller.POST("/products/:id/image", productCtrl.UploadProductImage)
		seller.DELETE("/products/:id", productCtrl.DeleteProduct)

		seller.GET("/orders", orderCtrl.GetSellerOrders)
		seller.PATCH("/orders/:id/status", orderCtrl.UpdateOrderStatus)
	}

	admin := router.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		admin.GET("/dashboard", dashboardCtrl.GetAdminDashboard)

		admin.GET("/users", userCtrl.GetAllUsers)
		admin.GET("/users/:id", userCtrl.GetUserByID)
		admin.POST("/users", userCtrl.CreateUser)
		admin.PATCH("/users/:id", userCtrl.UpdateUser)
		admin.DELETE("/users/:id", userCtrl.DeleteUser)

		admin.GET("/orders", orderCtrl.GetAllOrders)
		admin.GET("/orders/:id", orderCtrl.GetOrderByID)
		admin.PATCH("/orders/:id/status", orderCtrl.UpdateOrderStatus)

		admin.GET("/coupons", couponCtrl.GetAllCoupons)
		admin.POST("/coupons", couponCtrl.CreateCoupon)
		admin.DELETE("/coupons/:id", couponCtrl.DeactivateCoupon)
	}

	router.Static("/uploads", "./uploads")
}
