package handlers

import (
	"errors"
	"log"

	"app/forecast"
	"app/weather"

	"github.com/gofiber/fiber/v2"
)

// ForecastService is the shared forecasting pipeline, wired in main.
var ForecastService *forecast.Service

// HandleGetSalesForecast runs the weather-aware backtest + forecast
// pipeline for a shop and returns the chronological point sequence,
// the 14-day weather horizon, and the generated insights.
func HandleGetSalesForecast(c *fiber.Ctx) error {
	shopID := c.Params("shopId")

	// Dashboards may ask for the warm cache to avoid a full pipeline run.
	if c.QueryBool("cached") {
		if result, err := ForecastService.Cached(shopID); err == nil {
			return c.JSON(fiber.Map{"status": "success", "data": result})
		}
		// Fall through to a fresh run when the cache is cold.
	}

	result, err := ForecastService.Run(c.Context(), shopID)
	if err != nil {
		switch {
		case errors.Is(err, forecast.ErrNoStoreLocation):
			return c.Status(fiber.StatusPreconditionFailed).JSON(fiber.Map{
				"status":  "error",
				"message": "Set the store location to enable weather-aware forecasting",
			})
		case errors.Is(err, weather.ErrNoForecastData):
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"status":  "error",
				"message": err.Error(),
			})
		case errors.Is(err, forecast.ErrSuperseded):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"status":  "error",
				"message": "A newer forecast request replaced this one",
			})
		}
		log.Printf("Error running forecast for shop %s: %v", shopID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to generate forecast",
		})
	}

	return c.JSON(fiber.Map{"status": "success", "data": result})
}
