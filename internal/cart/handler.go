package cart

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/stylesphere/storefront/internal/domain"
)

// Store is the slice of the cart repository the handler needs.
type Store interface {
	AddOrUpdateItem(ctx context.Context, customerID, variantID string, quantity int) error
	RemoveItem(ctx context.Context, customerID, variantID string) error
	GetItems(ctx context.Context, customerID string) ([]domain.CartItem, error)
}

type Handler struct {
	store  Store
	logger *slog.Logger
}

func NewHandler(store Store, logger *slog.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

type updateItemRequest struct {
	CustomerID string `json:"customerId"`
	VariantID  string `json:"variantId"`
	Quantity   int    `json:"quantity"`
}

func (h *Handler) HandleUpdateItem(w http.ResponseWriter, r *http.Request) {
	var req updateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.CustomerID == "" || req.VariantID == "" || req.Quantity < 1 {
		h.writeError(w, http.StatusBadRequest, "customerId, variantId and a positive quantity are required")
		return
	}

	if err := h.store.AddOrUpdateItem(r.Context(), req.CustomerID, req.VariantID, req.Quantity); err != nil {
		switch {
		case errors.Is(err, domain.ErrVariantNotFound):
			h.writeError(w, http.StatusNotFound, "variant not found")
		case errors.Is(err, domain.ErrInsufficientStock):
			h.writeError(w, http.StatusConflict, "requested quantity exceeds stock")
		default:
			h.logger.Error("failed to update cart item", "error", err, "customer_id", req.CustomerID)
			h.writeError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	h.logger.Info("cart updated", "customer_id", req.CustomerID, "variant_id", req.VariantID, "quantity", req.Quantity)
	h.writeJSON(w, http.StatusOK, map[string]string{"message": "cart updated"})
}

func (h *Handler) HandleRemoveItem(w http.ResponseWriter, r *http.Request) {
	customerID := r.PathValue("customerId")
	variantID := r.PathValue("variantId")
	if customerID == "" || variantID == "" {
		h.writeError(w, http.StatusBadRequest, "missing customer or variant id")
		return
	}

	if err := h.store.RemoveItem(r.Context(), customerID, variantID); err != nil {
		h.logger.Error("failed to remove cart item", "error", err, "customer_id", customerID)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.logger.Info("cart item removed", "customer_id", customerID, "variant_id", variantID)
	h.writeJSON(w, http.StatusOK, map[string]string{"message": "item removed from cart"})
}

func (h *Handler) HandleGetCart(w http.ResponseWriter, r *http.Request) {
	customerID := r.PathValue("customerId")
	if customerID == "" {
		h.writeError(w, http.StatusBadRequest, "missing customer id")
		return
	}

	items, err := h.store.GetItems(r.Context(), customerID)
	if err != nil {
		h.logger.Error("failed to load cart", "error", err, "customer_id", customerID)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.writeJSON(w, http.StatusOK, items)
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
