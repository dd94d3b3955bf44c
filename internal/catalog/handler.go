package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/stylesphere/storefront/internal/domain"
)

type Store interface {
	CategoryTree(ctx context.Context) ([]*domain.CategoryNode, error)
	Sizes(ctx context.Context) ([]domain.Size, error)
	Products(ctx context.Context, filter ProductFilter) ([]domain.ProductSummary, error)
	ProductByID(ctx context.Context, productID string) (*domain.ProductDetail, error)
}

type Handler struct {
	store  Store
	logger *slog.Logger
}

func NewHandler(store Store, logger *slog.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

func (h *Handler) HandleCategoryTree(w http.ResponseWriter, r *http.Request) {
	tree, err := h.store.CategoryTree(r.Context())
	if err != nil {
		h.logger.Error("failed to load category tree", "error", err)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	h.writeJSON(w, http.StatusOK, tree)
}

func (h *Handler) HandleSizes(w http.ResponseWriter, r *http.Request) {
	sizes, err := h.store.Sizes(r.Context())
	if err != nil {
		h.logger.Error("failed to load sizes", "error", err)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	h.writeJSON(w, http.StatusOK, sizes)
}

func (h *Handler) HandleListProducts(w http.ResponseWriter, r *http.Request) {
	filter := ProductFilter{
		CategoryID: r.URL.Query().Get("categoryId"),
		Search:     r.URL.Query().Get("search"),
	}

	products, err := h.store.Products(r.Context(), filter)
	if err != nil {
		h.logger.Error("failed to list products", "error", err)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	h.writeJSON(w, http.StatusOK, products)
}

func (h *Handler) HandleGetProduct(w http.ResponseWriter, r *http.Request) {
	productID := r.PathValue("productId")
	if productID == "" {
		h.writeError(w, http.StatusBadRequest, "missing product id")
		return
	}

	detail, err := h.store.ProductByID(r.Context(), productID)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			h.writeError(w, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Error("failed to load product", "error", err, "product_id", productID)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	h.writeJSON(w, http.StatusOK, detail)
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
