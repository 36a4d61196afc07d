package routes

import (
	"app/handlers"
	"app/middleware"

	"github.com/gofiber/fiber/v2"
)

// SetupRoutes defines all the routes for the application.
func SetupRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	// --- Authentication Routes ---
	auth := api.Group("/auth")
	auth.Post("/login", handlers.HandleLogin)
	auth.Post("/init", handlers.HandleInitializeAdmin)

	// --- Merchant Routes ---
	merchant := api.Group("/merchant", middleware.JWTMiddleware, middleware.MerchantRequired)

	// Shop Management
	merchant.Get("/shops", handlers.HandleListShops)
	merchant.Get("/shops/:shopId", handlers.HandleGetShopByID)
	merchant.Put("/shops/:shopId/location", handlers.HandleUpdateShopLocation)

	// Sales
	merchant.Post("/sales", handlers.HandleCreateSale)
	merchant.Get("/shops/:shopId/sales", handlers.HandleListSalesForShop)

	// Forecasting
	merchant.Get("/shops/:shopId/forecast", handlers.HandleGetSalesForecast)
	merchant.Get("/shops/:shopId/forecast/commentary", handlers.HandleGetForecastCommentary)
}
