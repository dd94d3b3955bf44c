package orders

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/stylesphere/storefront/internal/domain"
	"github.com/stylesphere/storefront/internal/inventory"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Place converts the customer's cart into an immutable order in a single
// transaction: validate cart and address, total the frozen line prices,
// insert the order and its items, decrement stock, drop purchased
// products from the wishlist and empty the cart. Any failure rolls the
// whole thing back; the caller never sees partial state.
func (r *Repository) Place(ctx context.Context, customerID, addressID, shippingMethod string) (*domain.Order, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	var cartID string
	err = tx.QueryRowContext(ctx, `
		SELECT id FROM carts WHERE customer_id = $1
	`, customerID).Scan(&cartID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrCartNotFound
	}
	if err != nil {
		return nil, err
	}

	// SKU and product name ride along so the order.placed event carries
	// everything the confirmation email needs.
	rows, err := tx.QueryContext(ctx, `
		SELECT ci.variant_id, ci.quantity, ci.unit_price, pv.sku, p.name
		FROM cart_items ci
		JOIN product_variants pv ON pv.id = ci.variant_id
		JOIN products p ON p.id = pv.product_id
		WHERE ci.cart_id = $1
	`, cartID)
	if err != nil {
		return nil, err
	}

	var items []domain.OrderItem
	var subtotal int64
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.VariantID, &item.Quantity, &item.UnitPrice, &item.SKU, &item.ProductName); err != nil {
			_ = rows.Close()
			return nil, err
		}
		subtotal += int64(item.Quantity) * item.UnitPrice
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, err
	}
	_ = rows.Close()

	if len(items) == 0 {
		return nil, domain.ErrEmptyCart
	}

	var addressOK bool
	err = tx.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM addresses WHERE id = $1 AND customer_id = $2)
	`, addressID, customerID).Scan(&addressOK)
	if err != nil {
		return nil, err
	}
	if !addressOK {
		return nil, domain.ErrInvalidAddress
	}

	var customerEmail string
	err = tx.QueryRowContext(ctx, `
		SELECT email FROM customers WHERE id = $1
	`, customerID).Scan(&customerEmail)
	if err != nil {
		return nil, err
	}

	order := &domain.Order{
		ID:             uuid.New().String(),
		CustomerID:     customerID,
		CustomerEmail:  customerEmail,
		AddressID:      addressID,
		Items:          items,
		Total:          subtotal + ShippingCost(shippingMethod),
		ShippingMethod: shippingMethod,
		Status:         domain.OrderStatusPending,
		OrderDate:      time.Now().UTC(),
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (id, customer_id, address_id, total, shipping_method, status, order_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, order.ID, order.CustomerID, order.AddressID, order.Total, order.ShippingMethod, order.Status, order.OrderDate)
	if err != nil {
		return nil, err
	}

	for i := range items {
		items[i].ID = uuid.New().String()
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (id, order_id, variant_id, quantity, unit_price)
			VALUES ($1, $2, $3, $4, $5)
		`, items[i].ID, order.ID, items[i].VariantID, items[i].Quantity, items[i].UnitPrice)
		if err != nil {
			return nil, err
		}
	}

	// The decrement re-checks sufficiency; concurrent orders draining the
	// same variant abort here instead of overselling.
	for _, item := range items {
		if err := inventory.DecrementTx(ctx, tx, item.VariantID, item.Quantity); err != nil {
			return nil, err
		}
	}

	_, err = tx.ExecContext(ctx, `
		DELETE FROM wishlists w
		USING product_variants pv, cart_items ci
		WHERE pv.product_id = w.product_id
		  AND ci.variant_id = pv.id
		  AND ci.cart_id = $1
		  AND w.customer_id = $2
	`, cartID, customerID)
	if err != nil {
		return nil, err
	}

	// The cart row itself persists; only its lines go.
	_, err = tx.ExecContext(ctx, `
		DELETE FROM cart_items WHERE cart_id = $1
	`, cartID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return order, nil
}

// ListByCustomer returns a customer's orders newest first, each with its
// items. Two queries composed in application code, keyed by order id.
func (r *Repository) ListByCustomer(ctx context.Context, customerID string) ([]domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, address_id, total, shipping_method, status, order_date
		FROM orders
		WHERE customer_id = $1
		ORDER BY order_date DESC
	`, customerID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	orderMap := make(map[string]*domain.Order)
	var orderIDs []string

	for rows.Next() {
		order := domain.Order{CustomerID: customerID}
		if err := rows.Scan(&order.ID, &order.AddressID, &order.Total, &order.ShippingMethod, &order.Status, &order.OrderDate); err != nil {
			return nil, err
		}
		order.Items = []domain.OrderItem{}
		orderMap[order.ID] = &order
		orderIDs = append(orderIDs, order.ID)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(orderIDs) == 0 {
		return []domain.Order{}, nil
	}

	itemRows, err := r.db.QueryContext(ctx, `
		SELECT oi.order_id, oi.id, oi.variant_id, oi.quantity, oi.unit_price, pv.sku, p.name
		FROM order_items oi
		JOIN product_variants pv ON pv.id = oi.variant_id
		JOIN products p ON p.id = pv.product_id
		WHERE oi.order_id = ANY($1)
	`, pq.Array(orderIDs))
	if err != nil {
		return nil, err
	}
	defer func() { _ = itemRows.Close() }()

	for itemRows.Next() {
		var orderID string
		var item domain.OrderItem
		if err := itemRows.Scan(&orderID, &item.ID, &item.VariantID, &item.Quantity, &item.UnitPrice, &item.SKU, &item.ProductName); err != nil {
			return nil, err
		}
		order := orderMap[orderID]
		order.Items = append(order.Items, item)
	}

	if err := itemRows.Err(); err != nil {
		return nil, err
	}

	orders := make([]domain.Order, 0, len(orderIDs))
	for _, id := range orderIDs {
		orders = append(orders, *orderMap[id])
	}

	return orders, nil
}
