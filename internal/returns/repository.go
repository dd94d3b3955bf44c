package returns

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/stylesphere/storefront/internal/domain"
)

// ReturnWindow is how long after the order date a return or exchange may
// be submitted. The storefront advertises the same 30 days; here it is
// enforced.
const ReturnWindow = 30 * 24 * time.Hour

// Submission is a customer's requested return or exchange against one
// order.
type Submission struct {
	RequestType  domain.ReturnType
	Reason       string
	ExchangeMode domain.ExchangeMode
	Items        []SubmissionItem
}

type SubmissionItem struct {
	OrderItemID          string
	Quantity             int
	ReplacementVariantID string
}

type Repository struct {
	db  *sql.DB
	now func() time.Time
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db, now: time.Now}
}

// Submit records a return request in Pending state. Every item must
// belong to the order and stay within its ordered quantity, and the order
// must still be inside the return window. Later transitions (Approved,
// Rejected, Completed) belong to the staff workflow.
func (r *Repository) Submit(ctx context.Context, orderID string, sub Submission) (*domain.ReturnRequest, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	var orderDate time.Time
	err = tx.QueryRowContext(ctx, `
		SELECT order_date FROM orders WHERE id = $1
	`, orderID).Scan(&orderDate)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	if r.now().UTC().Sub(orderDate) > ReturnWindow {
		return nil, domain.ErrReturnWindowClosed
	}

	for _, item := range sub.Items {
		var ordered int
		err = tx.QueryRowContext(ctx, `
			SELECT quantity FROM order_items WHERE id = $1 AND order_id = $2
		`, item.OrderItemID, orderID).Scan(&ordered)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("order item %s: %w", item.OrderItemID, domain.ErrOrderItemNotFound)
		}
		if err != nil {
			return nil, err
		}
		if item.Quantity < 1 || item.Quantity > ordered {
			return nil, fmt.Errorf("order item %s: requested %d of %d: %w",
				item.OrderItemID, item.Quantity, ordered, domain.ErrInvalidReturnQuantity)
		}
	}

	request := &domain.ReturnRequest{
		ID:           uuid.New().String(),
		OrderID:      orderID,
		RequestType:  sub.RequestType,
		Reason:       sub.Reason,
		Status:       domain.ReturnStatusPending,
		ExchangeMode: sub.ExchangeMode,
		CreatedAt:    r.now().UTC(),
	}

	var exchangeMode sql.NullString
	if request.ExchangeMode != "" {
		exchangeMode = sql.NullString{String: string(request.ExchangeMode), Valid: true}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO return_requests (id, order_id, request_type, reason, status, exchange_mode, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, request.ID, request.OrderID, request.RequestType, request.Reason, request.Status, exchangeMode, request.CreatedAt)
	if err != nil {
		return nil, err
	}

	for _, item := range sub.Items {
		var replacement sql.NullString
		if item.ReplacementVariantID != "" {
			replacement = sql.NullString{String: item.ReplacementVariantID, Valid: true}
		}

		requestItem := domain.ReturnRequestItem{
			ID:                   uuid.New().String(),
			OrderItemID:          item.OrderItemID,
			Quantity:             item.Quantity,
			ReplacementVariantID: item.ReplacementVariantID,
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO return_request_items (id, return_id, order_item_id, quantity, replacement_variant_id)
			VALUES ($1, $2, $3, $4, $5)
		`, requestItem.ID, request.ID, requestItem.OrderItemID, requestItem.Quantity, replacement)
		if err != nil {
			return nil, err
		}

		request.Items = append(request.Items, requestItem)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return request, nil
}
