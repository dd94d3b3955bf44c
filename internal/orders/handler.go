package orders

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/stylesphere/storefront/internal/domain"
)

type Store interface {
	Place(ctx context.Context, customerID, addressID, shippingMethod string) (*domain.Order, error)
	ListByCustomer(ctx context.Context, customerID string) ([]domain.Order, error)
}

// Publisher pushes the placed-order event onto the bus. A nil publisher
// disables eventing entirely.
type Publisher interface {
	Publish(ctx context.Context, key string, event any) error
}

type Handler struct {
	store     Store
	publisher Publisher
	logger    *slog.Logger
}

func NewHandler(store Store, publisher Publisher, logger *slog.Logger) *Handler {
	return &Handler{store: store, publisher: publisher, logger: logger}
}

type checkoutRequest struct {
	CustomerID     string `json:"customerId"`
	AddressID      string `json:"addressId"`
	ShippingMethod string `json:"shippingMethod"`
}

func (h *Handler) HandleCheckout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.CustomerID == "" || req.AddressID == "" {
		h.writeError(w, http.StatusBadRequest, "customerId and addressId are required")
		return
	}
	if req.ShippingMethod == "" {
		req.ShippingMethod = "standard"
	}

	order, err := h.store.Place(r.Context(), req.CustomerID, req.AddressID, req.ShippingMethod)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrCartNotFound):
			h.writeError(w, http.StatusNotFound, "cart not found for customer")
		case errors.Is(err, domain.ErrEmptyCart):
			h.writeError(w, http.StatusBadRequest, "cart is empty")
		case errors.Is(err, domain.ErrInvalidAddress):
			h.writeError(w, http.StatusBadRequest, "address not valid for this customer")
		case errors.Is(err, domain.ErrInsufficientStock):
			h.writeError(w, http.StatusConflict, "insufficient stock")
		default:
			h.logger.Error("failed to place order", "error", err, "customer_id", req.CustomerID)
			h.writeError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	if h.publisher != nil {
		event := domain.OrderPlacedEvent{
			OrderID:        order.ID,
			CustomerID:     order.CustomerID,
			CustomerEmail:  order.CustomerEmail,
			Items:          order.Items,
			Total:          order.Total,
			ShippingMethod: order.ShippingMethod,
			Timestamp:      order.OrderDate,
		}
		if err := h.publisher.Publish(r.Context(), order.ID, event); err != nil {
			// The order is committed; a lost event only costs the email.
			h.logger.Error("failed to publish order placed event", "error", err, "order_id", order.ID)
		}
	}

	h.logger.Info("order placed", "order_id", order.ID, "customer_id", order.CustomerID, "total", order.Total)
	h.writeJSON(w, http.StatusCreated, map[string]string{"orderId": order.ID})
}

func (h *Handler) HandleListByCustomer(w http.ResponseWriter, r *http.Request) {
	customerID := r.PathValue("customerId")
	if customerID == "" {
		h.writeError(w, http.StatusBadRequest, "missing customer id")
		return
	}

	orders, err := h.store.ListByCustomer(r.Context(), customerID)
	if err != nil {
		h.logger.Error("failed to list orders", "error", err, "customer_id", customerID)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.writeJSON(w, http.StatusOK, orders)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
