// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"agriconnect/internal/delivery/api/middleware"
	"agriconnect/internal/delivery/api/router/handler"
	"agriconnect/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler     *handler.AuthHandler
	LocationHandler *handler.LocationHandler
	FarmerHandler   *handler.FarmerHandler
	ProductHandler  *handler.ProductHandler
	OrderHandler    *handler.OrderHandler
	ReviewHandler   *handler.ReviewHandler
	InsightHandler  *handler.InsightHandler
	AdminHandler    *handler.AdminHandler
	AuthMiddleware  *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler     *handler.AuthHandler
	locationHandler *handler.LocationHandler
	farmerHandler   *handler.FarmerHandler
	productHandler  *handler.ProductHandler
	orderHandler    *handler.OrderHandler
	reviewHandler   *handler.ReviewHandler
	insightHandler  *handler.InsightHandler
	adminHandler    *handler.AdminHandler
	authMiddleware  *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:     params.AuthHandler,
		locationHandler: params.LocationHandler,
		farmerHandler:   params.FarmerHandler,
		productHandler:  params.ProductHandler,
		orderHandler:    params.OrderHandler,
		reviewHandler:   params.ReviewHandler,
		insightHandler:  params.InsightHandler,
		adminHandler:    params.AdminHandler,
		authMiddleware:  params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
// Static segments such as /me and /categories win over /:id in echo's router.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)

	api := e.Group("/api")
	authenticate := r.authMiddleware.Authenticate

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/signup", r.authHandler.Signup)
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.POST("/google", r.authHandler.GoogleLogin)
		authGroup.POST("/logout", r.authHandler.Logout, authenticate)
		authGroup.GET("/user", r.authHandler.CurrentUser, authenticate)
		authGroup.PATCH("/user", r.authHandler.UpdateCurrentUser, authenticate)
	}

	locationsGroup := api.Group("/locations")
	{
		locationsGroup.GET("/provinces", r.locationHandler.ListProvinces)
		locationsGroup.GET("/districts/:provinceId", r.locationHandler.ListDistricts)
		locationsGroup.GET("/sectors/:districtId", r.locationHandler.ListSectors)
	}

	farmersGroup := api.Group("/farmers")
	{
		farmersGroup.POST("", r.farmerHandler.CreateFarmer, authenticate)
		farmersGroup.GET("/search", r.farmerHandler.SearchFarmers)
		farmersGroup.GET("/me", r.farmerHandler.GetMyFarmer, authenticate)
		farmersGroup.PATCH("/me", r.farmerHandler.UpdateMyFarmer, authenticate)
		farmersGroup.GET("/:id", r.farmerHandler.GetFarmer)
		farmersGroup.GET("/:id/qr", r.farmerHandler.FarmerQRCode)
	}

	productsGroup := api.Group("/products")
	{
		productsGroup.POST("", r.productHandler.CreateProduct, authenticate)
		productsGroup.GET("/categories", r.productHandler.ListCategories)
		productsGroup.GET("/search", r.productHandler.SearchProducts)
		productsGroup.GET("/farmer/:id", r.productHandler.ProductsByFarmer)
		productsGroup.GET("/price-comparison/:categoryId", r.productHandler.ComparePrices)
		productsGroup.GET("/:id", r.productHandler.GetProduct)
		productsGroup.PATCH("/:id", r.productHandler.UpdateProduct, authenticate)
	}

	// Order routes all require authentication
	ordersGroup := api.Group("/orders")
	ordersGroup.Use(authenticate)
	{
		ordersGroup.POST("", r.orderHandler.CreateOrder)
		ordersGroup.GET("/customer", r.orderHandler.CustomerOrders)
		ordersGroup.GET("/farmer", r.orderHandler.FarmerOrders)
		ordersGroup.PATCH("/:id/status", r.orderHandler.UpdateStatus)
	}

	reviewsGroup := api.Group("/reviews")
	{
		reviewsGroup.POST("", r.reviewHandler.CreateReview, authenticate)
		reviewsGroup.GET("/farmer/:id", r.reviewHandler.FarmerReviews)
	}

	insightsGroup := api.Group("/ml")
	{
		insightsGroup.GET("/demand-predictions", r.insightHandler.DemandPredictions)
		insightsGroup.GET("/recommendations", r.insightHandler.Recommendations, authenticate)
		insightsGroup.POST("/recommendations/refresh", r.insightHandler.RefreshRecommendations, authenticate)
	}

	// Admin routes require authentication and the "admin" role
	adminGroup := api.Group("/admin")
	adminGroup.Use(authenticate)                                   // First, check if logged in
	adminGroup.Use(r.authMiddleware.RequireRole(entity.RoleAdmin)) // Then, check for the role
	{
		adminGroup.GET("/users", r.adminHandler.Users)
		adminGroup.GET("/orders", r.adminHandler.Orders)
		adminGroup.GET("/products", r.adminHandler.Products)
		adminGroup.GET("/statistics", r.adminHandler.Statistics)
	}
}
