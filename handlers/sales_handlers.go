package handlers

import (
	"log"

	"app/database"
	"app/models"
	"app/utils"

	"github.com/gofiber/fiber/v2"
)

// CreateSaleInput defines the expected input for recording a new sale.
type CreateSaleInput struct {
	ShopID      string  `json:"shopId"`
	TotalAmount float64 `json:"totalAmount"`
	PaymentType string  `json:"paymentType"`
}

// HandleCreateSale records a completed POS transaction.
func HandleCreateSale(c *fiber.Ctx) error {
	db := database.GetDB()

	var input CreateSaleInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Invalid request body"})
	}
	if input.ShopID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "shopId is required"})
	}
	if input.TotalAmount < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "totalAmount must not be negative"})
	}

	query := `
		INSERT INTO sales (shop_id, merchant_id, total_amount, payment_type)
		VALUES ($1, (SELECT merchant_id FROM shops WHERE id = $1), $2, $3)
		RETURNING id, merchant_id, sale_date, created_at, updated_at
	`
	var sale models.Sale
	sale.ShopID = input.ShopID
	sale.TotalAmount = input.TotalAmount
	sale.PaymentType = input.PaymentType

	if err := db.QueryRow(c.Context(), query, input.ShopID, input.TotalAmount, input.PaymentType).Scan(
		&sale.ID, &sale.MerchantID, &sale.SaleDate, &sale.CreatedAt, &sale.UpdatedAt,
	); err != nil {
		log.Printf("Error creating sale: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to create sale"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "success", "data": sale})
}

// HandleListSalesForShop lists sales for a specific shop.
func HandleListSalesForShop(c *fiber.Ctx) error {
	db := database.GetDB()

	shopID := c.Params("shopId")
	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("pageSize", 10)
	offset := (page - 1) * pageSize

	query := `
		SELECT id, shop_id, merchant_id, sale_date, total_amount, payment_type, created_at, updated_at
		FROM sales
		WHERE shop_id = $1
		ORDER BY sale_date DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := db.Query(c.Context(), query, shopID, pageSize, offset)
	if err != nil {
		log.Printf("Error listing sales for shop %s: %v", shopID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to retrieve sales"})
	}
	defer rows.Close()

	sales := make([]models.Sale, 0)
	for rows.Next() {
		var sale models.Sale
		if err := rows.Scan(&sale.ID, &sale.ShopID, &sale.MerchantID, &sale.SaleDate, &sale.TotalAmount, &sale.PaymentType, &sale.CreatedAt, &sale.UpdatedAt); err != nil {
			log.Printf("Error scanning sale: %v", err)
			continue
		}
		sales = append(sales, sale)
	}

	var totalItems int
	countQuery := "SELECT COUNT(*) FROM sales WHERE shop_id = $1"
	if err := db.QueryRow(c.Context(), countQuery, shopID).Scan(&totalItems); err != nil {
		log.Printf("Error counting sales: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to count sales"})
	}

	response := models.PaginatedSalesResponse{
		Items:      sales,
		Pagination: *utils.CreatePagination(totalItems, page, pageSize),
	}

	return c.JSON(fiber.Map{"status": "success", "data": response})
}
