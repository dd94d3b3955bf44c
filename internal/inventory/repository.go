package inventory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/stylesphere/storefront/internal/domain"
)

// Repository holds the authoritative available-stock counter per variant.
// It is read-mostly: the only write is the conditioned decrement executed
// inside the order placement transaction. Restocking is handled outside
// this system.
type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetStock(ctx context.Context, variantID string) (*domain.StockLevel, error) {
	stock := &domain.StockLevel{}

	err := r.db.QueryRowContext(ctx, `
		SELECT id, sku, available_stock
		FROM product_variants
		WHERE id = $1
	`, variantID).Scan(&stock.VariantID, &stock.SKU, &stock.Available)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return stock, nil
}

// ProductStock sums available stock across a product's variants, the
// figure the catalog shows on listing pages.
func (r *Repository) ProductStock(ctx context.Context, productID string) (int, error) {
	var total int
	err := r.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(available_stock), 0)
		FROM product_variants
		WHERE product_id = $1
	`, productID).Scan(&total)
	if err != nil {
		return 0, err
	}
	return total, nil
}

// DecrementTx takes qty units off a variant inside the caller's
// transaction. The WHERE clause refuses to drive stock negative; zero
// rows affected means the variant is gone or under-stocked, and the
// caller must roll back.
func DecrementTx(ctx context.Context, tx *sql.Tx, variantID string, qty int) error {
	result, err := tx.ExecContext(ctx, `
		UPDATE product_variants
		SET available_stock = available_stock - $2
		WHERE id = $1 AND available_stock >= $2
	`, variantID, qty)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return fmt.Errorf("variant %s: %w", variantID, domain.ErrInsufficientStock)
	}

	return nil
}
