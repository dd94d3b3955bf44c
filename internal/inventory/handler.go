package inventory

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/stylesphere/storefront/internal/domain"
)

type Store interface {
	GetStock(ctx context.Context, variantID string) (*domain.StockLevel, error)
	ProductStock(ctx context.Context, productID string) (int, error)
}

type Handler struct {
	store  Store
	logger *slog.Logger
}

func NewHandler(store Store, logger *slog.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

func (h *Handler) HandleGetStock(w http.ResponseWriter, r *http.Request) {
	variantID := r.PathValue("variantId")
	if variantID == "" {
		h.writeError(w, http.StatusBadRequest, "missing variant id")
		return
	}

	stock, err := h.store.GetStock(r.Context(), variantID)
	if err != nil {
		h.logger.Error("failed to get stock", "error", err, "variant_id", variantID)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if stock == nil {
		h.writeError(w, http.StatusNotFound, "variant not found")
		return
	}

	h.writeJSON(w, http.StatusOK, stock)
}

// HandleGetProductStock reports stock summed across all of a product's
// variants, the number the listing page shows.
func (h *Handler) HandleGetProductStock(w http.ResponseWriter, r *http.Request) {
	productID := r.PathValue("productId")
	if productID == "" {
		h.writeError(w, http.StatusBadRequest, "missing product id")
		return
	}

	total, err := h.store.ProductStock(r.Context(), productID)
	if err != nil {
		h.logger.Error("failed to get product stock", "error", err, "product_id", productID)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"product_id":  productID,
		"total_stock": total,
	})
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
