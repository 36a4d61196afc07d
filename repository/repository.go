package repository

import (
	"context"
	"database/sql"
	"time"

	"app/models"
	"app/utils"

	"github.com/jackc/pgx/v5/pgxpool"
)

// StoreRepository reads shop profiles from Postgres.
type StoreRepository struct {
	db *pgxpool.Pool
}

func NewStoreRepository(db *pgxpool.Pool) *StoreRepository {
	return &StoreRepository{db: db}
}

// GetStore fetches one shop by id, including its coordinates.
func (r *StoreRepository) GetStore(ctx context.Context, shopID string) (*models.Shop, error) {
	query := `
		SELECT id, name, merchant_id, address, phone, latitude, longitude, is_active, is_primary, created_at, updated_at
		FROM shops
		WHERE id = $1
	`
	var shop models.Shop
	var address, phone sql.NullString
	var lat, lon sql.NullFloat64

	err := r.db.QueryRow(ctx, query, shopID).Scan(
		&shop.ID, &shop.Name, &shop.MerchantID, &address, &phone, &lat, &lon,
		&shop.IsActive, &shop.IsPrimary, &shop.CreatedAt, &shop.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	shop.Address = utils.NullStringToStringPtr(address)
	shop.Phone = utils.NullStringToStringPtr(phone)
	shop.Latitude = utils.NullFloatToFloatPtr(lat)
	shop.Longitude = utils.NullFloatToFloatPtr(lon)
	return &shop, nil
}

// DB exposes the underlying pool for one-off statements.
func (r *StoreRepository) DB() *pgxpool.Pool {
	return r.db
}

// ListByMerchant returns every shop owned by a merchant.
func (r *StoreRepository) ListByMerchant(ctx context.Context, merchantID string) ([]models.Shop, error) {
	query := `
		SELECT id, name, merchant_id, address, phone, latitude, longitude, is_active, is_primary, created_at, updated_at
		FROM shops
		WHERE merchant_id = $1
		ORDER BY created_at
	`
	rows, err := r.db.Query(ctx, query, merchantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var shops []models.Shop
	for rows.Next() {
		var shop models.Shop
		var address, phone sql.NullString
		var lat, lon sql.NullFloat64
		if err := rows.Scan(
			&shop.ID, &shop.Name, &shop.MerchantID, &address, &phone, &lat, &lon,
			&shop.IsActive, &shop.IsPrimary, &shop.CreatedAt, &shop.UpdatedAt,
		); err != nil {
			return nil, err
		}
		shop.Address = utils.NullStringToStringPtr(address)
		shop.Phone = utils.NullStringToStringPtr(phone)
		shop.Latitude = utils.NullFloatToFloatPtr(lat)
		shop.Longitude = utils.NullFloatToFloatPtr(lon)
		shops = append(shops, shop)
	}
	return shops, rows.Err()
}

// ListForecastableShopIDs returns active shops that have coordinates
// set, i.e. the ones the warm-cache scheduler can refresh.
func (r *StoreRepository) ListForecastableShopIDs(ctx context.Context) ([]string, error) {
	query := `
		SELECT id
		FROM shops
		WHERE is_active = true AND latitude IS NOT NULL AND longitude IS NOT NULL
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// SalesRepository reads sale totals from Postgres.
type SalesRepository struct {
	db *pgxpool.Pool
}

func NewSalesRepository(db *pgxpool.Pool) *SalesRepository {
	return &SalesRepository{db: db}
}

// ListTransactions returns the date and total of every sale for a shop
// in [start, end).
func (r *SalesRepository) ListTransactions(ctx context.Context, shopID string, start, end time.Time) ([]models.TransactionRecord, error) {
	query := `
		SELECT sale_date, total_amount
		FROM sales
		WHERE shop_id = $1 AND sale_date >= $2 AND sale_date < $3
		ORDER BY sale_date
	`
	rows, err := r.db.Query(ctx, query, shopID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txs []models.TransactionRecord
	for rows.Next() {
		var tx models.TransactionRecord
		var total sql.NullFloat64
		if err := rows.Scan(&tx.Date, &total); err != nil {
			return nil, err
		}
		tx.Total = utils.NullFloatToFloatPtr(total)
		txs = append(txs, tx)
	}
	return txs, rows.Err()
}
