package cart

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/stylesphere/storefront/internal/domain"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// AddOrUpdateItem sets the absolute quantity for a variant in the
// customer's cart. Last write wins: an existing line is overwritten, not
// incremented, and its unit price is re-snapshotted from the product's
// current price. The stock check here is advisory only; nothing is
// reserved until the order is placed.
func (r *Repository) AddOrUpdateItem(ctx context.Context, customerID, variantID string, quantity int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	cartID, err := ensureCart(ctx, tx, customerID)
	if err != nil {
		return err
	}

	var available int
	var unitPrice int64
	err = tx.QueryRowContext(ctx, `
		SELECT pv.available_stock, p.price
		FROM product_variants pv
		JOIN products p ON p.id = pv.product_id
		WHERE pv.id = $1
	`, variantID).Scan(&available, &unitPrice)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrVariantNotFound
	}
	if err != nil {
		return err
	}

	if quantity > available {
		return fmt.Errorf("variant %s has %d in stock: %w", variantID, available, domain.ErrInsufficientStock)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO cart_items (id, cart_id, variant_id, quantity, unit_price)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (cart_id, variant_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, unit_price = EXCLUDED.unit_price
	`, uuid.New().String(), cartID, variantID, quantity, unitPrice)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// ensureCart returns the customer's cart id, creating the cart row on
// first use.
func ensureCart(ctx context.Context, tx *sql.Tx, customerID string) (string, error) {
	var cartID string
	err := tx.QueryRowContext(ctx, `
		SELECT id FROM carts WHERE customer_id = $1
	`, customerID).Scan(&cartID)
	if errors.Is(err, sql.ErrNoRows) {
		cartID = uuid.New().String()
		_, err = tx.ExecContext(ctx, `
			INSERT INTO carts (id, customer_id) VALUES ($1, $2)
		`, cartID, customerID)
		if err != nil {
			return "", err
		}
		return cartID, nil
	}
	if err != nil {
		return "", err
	}
	return cartID, nil
}

// RemoveItem deletes a cart line. Deleting an absent line is not an error.
func (r *Repository) RemoveItem(ctx context.Context, customerID, variantID string) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM cart_items ci
		USING carts c
		WHERE ci.cart_id = c.id AND c.customer_id = $1 AND ci.variant_id = $2
	`, customerID, variantID)
	return err
}

func (r *Repository) GetItems(ctx context.Context, customerID string) ([]domain.CartItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT ci.id, ci.quantity, ci.unit_price, ci.subtotal,
		       p.id, p.name, pv.id, pv.sku, COALESCE(pi.image_url, '')
		FROM cart_items ci
		JOIN carts c ON c.id = ci.cart_id
		JOIN product_variants pv ON pv.id = ci.variant_id
		JOIN products p ON p.id = pv.product_id
		LEFT JOIN LATERAL (
			SELECT image_url FROM product_images
			WHERE product_id = p.id AND is_primary
			ORDER BY display_order
			LIMIT 1
		) pi ON true
		WHERE c.customer_id = $1
		ORDER BY ci.id
	`, customerID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	items := []domain.CartItem{}
	for rows.Next() {
		var item domain.CartItem
		if err := rows.Scan(
			&item.ID, &item.Quantity, &item.UnitPrice, &item.Subtotal,
			&item.ProductID, &item.ProductName, &item.VariantID, &item.SKU, &item.ImageURL,
		); err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

// Subtotal sums the frozen line subtotals of the customer's cart. An
// absent or empty cart yields zero.
func (r *Repository) Subtotal(ctx context.Context, customerID string) (int64, error) {
	var subtotal int64
	err := r.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(ci.quantity * ci.unit_price), 0)
		FROM cart_items ci
		JOIN carts c ON c.id = ci.cart_id
		WHERE c.customer_id = $1
	`, customerID).Scan(&subtotal)
	if err != nil {
		return 0, err
	}
	return subtotal, nil
}
