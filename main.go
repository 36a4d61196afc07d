package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"app/config"
	"app/database"
	"app/forecast"
	"app/handlers"
	"app/repository"
	"app/routes"
	"app/scheduler"
	"app/weather"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	// Load configuration (.env file or environment variables)
	if err := config.Load(); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Initialize database
	database.Connect(config.AppConfig.DatabaseURL)
	defer database.Close()

	// Shared HTTP client for outbound weather calls.
	httpClient := &http.Client{Timeout: 15 * time.Second}
	weatherClient := weather.NewClient(httpClient, config.AppConfig.WeatherArchiveURL, config.AppConfig.WeatherForecastURL)

	// Repositories and the forecasting pipeline.
	shopRepo := repository.NewStoreRepository(database.GetDB())
	salesRepo := repository.NewSalesRepository(database.GetDB())
	cache := forecast.NewCache(2 * config.AppConfig.ForecastRefreshInterval)

	forecastService := forecast.NewService(
		shopRepo,
		salesRepo,
		weatherClient,
		cache,
		config.AppConfig.ReportingTimezone,
		config.AppConfig.CurrencyCode,
		nil,
	)
	handlers.ForecastService = forecastService
	handlers.Shops = shopRepo

	// Warm-cache scheduler.
	sched := scheduler.New(shopRepo, config.AppConfig.ForecastRefreshInterval, forecastService)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	app := fiber.New()

	// Add CORS middleware
	app.Use(cors.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Setup routes
	routes.SetupRoutes(app)

	// Start server
	go func() {
		if err := app.Listen(":" + config.AppConfig.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
