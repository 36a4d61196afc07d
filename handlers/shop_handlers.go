package handlers

import (
	"errors"
	"log"

	"app/models"
	"app/repository"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
)

var validate = validator.New()

// Shops is the shared shop repository, wired in main.
var Shops *repository.StoreRepository

// HandleGetShopByID retrieves a single shop profile.
func HandleGetShopByID(c *fiber.Ctx) error {
	shopID := c.Params("shopId")

	shop, err := Shops.GetStore(c.Context(), shopID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "Shop not found"})
		}
		log.Printf("Error fetching shop %s: %v", shopID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to retrieve shop"})
	}

	return c.JSON(fiber.Map{"status": "success", "data": shop})
}

// UpdateShopLocationInput carries the coordinates for a shop.
type UpdateShopLocationInput struct {
	Latitude  float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" validate:"gte=-180,lte=180"`
}

// HandleUpdateShopLocation sets the coordinates used by the
// weather-aware forecast.
func HandleUpdateShopLocation(c *fiber.Ctx) error {
	shopID := c.Params("shopId")

	var input UpdateShopLocationInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Invalid request body"})
	}
	if err := validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": err.Error()})
	}

	query := `
		UPDATE shops
		SET latitude = $1, longitude = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING id
	`
	var id string
	if err := Shops.DB().QueryRow(c.Context(), query, input.Latitude, input.Longitude, shopID).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "Shop not found"})
		}
		log.Printf("Error updating shop location for %s: %v", shopID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to update shop location"})
	}

	shop, err := Shops.GetStore(c.Context(), shopID)
	if err != nil {
		log.Printf("Error re-fetching shop %s: %v", shopID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to retrieve shop"})
	}

	return c.JSON(fiber.Map{"status": "success", "data": shop})
}

// HandleListShops lists shops for the authenticated merchant.
func HandleListShops(c *fiber.Ctx) error {
	merchantID, ok := c.Locals("userID").(string)
	if !ok || merchantID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"status": "error", "message": "Unauthorized"})
	}

	shops, err := Shops.ListByMerchant(c.Context(), merchantID)
	if err != nil {
		log.Printf("Error listing shops for merchant %s: %v", merchantID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to retrieve shops"})
	}
	if shops == nil {
		shops = []models.Shop{}
	}

	return c.JSON(fiber.Map{"status": "success", "data": shops})
}
