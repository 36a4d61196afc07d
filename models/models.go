package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// --- JWT & Auth ---

type JwtClaims struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	UserType string `json:"userType"`
}

// --- Core Models ---

// User represents a user in the system (Admin or Merchant)
type User struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	IsActive   bool      `json:"is_active"`
	Phone      *string   `json:"phone,omitempty"`
	MerchantID *string   `json:"merchant_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Shop represents a single retail location owned by a merchant.
// Latitude/Longitude are optional; without them the weather-aware
// forecast cannot run for the shop.
type Shop struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	MerchantID string    `json:"merchant_id"`
	Address    *string   `json:"address,omitempty"`
	Phone      *string   `json:"phone,omitempty"`
	Latitude   *float64  `json:"latitude,omitempty"`
	Longitude  *float64  `json:"longitude,omitempty"`
	IsActive   bool      `json:"is_active"`
	IsPrimary  bool      `json:"is_primary"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Sale represents a completed POS transaction for a shop.
type Sale struct {
	ID          string    `json:"id"`
	ShopID      string    `json:"shop_id"`
	MerchantID  string    `json:"merchant_id"`
	SaleDate    time.Time `json:"sale_date"`
	TotalAmount float64   `json:"total_amount"`
	PaymentType string    `json:"payment_type"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TransactionRecord is the minimal slice of a sale the forecasting
// engine consumes. Total is nil when the stored amount is NULL; such
// records contribute nothing to the daily aggregate.
type TransactionRecord struct {
	Date  time.Time `json:"date"`
	Total *float64  `json:"total"`
}

// PaginatedSalesResponse wraps a page of sales with pagination metadata.
type PaginatedSalesResponse struct {
	Items      []Sale     `json:"items"`
	Pagination Pagination `json:"pagination"`
}

// Pagination holds metadata for paginated responses.
type Pagination struct {
	TotalItems  int `json:"totalItems"`
	CurrentPage int `json:"currentPage"`
	PageSize    int `json:"pageSize"`
	TotalPages  int `json:"totalPages"`
}
