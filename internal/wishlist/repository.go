package wishlist

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/stylesphere/storefront/internal/domain"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Add saves a product to the customer's wishlist. Re-adding an already
// saved product is a no-op.
func (r *Repository) Add(ctx context.Context, customerID, productID string) error {
	var exists bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)
	`, productID).Scan(&exists)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrProductNotFound
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO wishlists (id, customer_id, product_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (customer_id, product_id) DO NOTHING
	`, uuid.New().String(), customerID, productID)
	return err
}

// Remove deletes a wishlist entry. Removing a product that is not on the
// list succeeds silently.
func (r *Repository) Remove(ctx context.Context, customerID, productID string) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM wishlists WHERE customer_id = $1 AND product_id = $2
	`, customerID, productID)
	return err
}

func (r *Repository) List(ctx context.Context, customerID string) ([]domain.WishlistEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT w.id, w.product_id, p.name, p.price,
			COALESCE((
				SELECT pi.image_url FROM product_images pi
				WHERE pi.product_id = p.id
				ORDER BY pi.is_primary DESC, pi.display_order
				LIMIT 1
			), '')
		FROM wishlists w
		JOIN products p ON p.id = w.product_id
		WHERE w.customer_id = $1
		ORDER BY p.name
	`, customerID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	entries := []domain.WishlistEntry{}
	for rows.Next() {
		var e domain.WishlistEntry
		if err := rows.Scan(&e.ID, &e.ProductID, &e.ProductName, &e.Price, &e.ImageURL); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
