package returns

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/stylesphere/storefront/internal/domain"
)

type Store interface {
	Submit(ctx context.Context, orderID string, sub Submission) (*domain.ReturnRequest, error)
}

type Handler struct {
	store  Store
	logger *slog.Logger
}

func NewHandler(store Store, logger *slog.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

type submitRequest struct {
	RequestType  string `json:"requestType"`
	Reason       string `json:"reason"`
	ExchangeMode string `json:"exchangeMode"`
	Items        []struct {
		OrderItemID          string `json:"orderItemId"`
		Quantity             int    `json:"quantity"`
		ReplacementVariantID string `json:"replacementVariantId"`
	} `json:"items"`
}

func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	orderID := r.PathValue("orderId")
	if orderID == "" {
		h.writeError(w, http.StatusBadRequest, "missing order id")
		return
	}

	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sub, err := buildSubmission(req)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	request, err := h.store.Submit(r.Context(), orderID, sub)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrOrderNotFound):
			h.writeError(w, http.StatusNotFound, "order not found")
		case errors.Is(err, domain.ErrReturnWindowClosed):
			h.writeError(w, http.StatusBadRequest, "return window has closed for this order")
		case errors.Is(err, domain.ErrOrderItemNotFound):
			h.writeError(w, http.StatusBadRequest, "item does not belong to this order")
		case errors.Is(err, domain.ErrInvalidReturnQuantity):
			h.writeError(w, http.StatusBadRequest, "return quantity exceeds ordered quantity")
		default:
			h.logger.Error("failed to submit return request", "error", err, "order_id", orderID)
			h.writeError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	h.logger.Info("return request submitted",
		"return_id", request.ID, "order_id", orderID, "type", request.RequestType)
	h.writeJSON(w, http.StatusCreated, map[string]string{"returnId": request.ID})
}

func buildSubmission(req submitRequest) (Submission, error) {
	sub := Submission{Reason: req.Reason}

	switch domain.ReturnType(req.RequestType) {
	case domain.ReturnTypeRefund:
		sub.RequestType = domain.ReturnTypeRefund
		if req.ExchangeMode != "" {
			return sub, errors.New("exchangeMode is only valid for exchanges")
		}
	case domain.ReturnTypeExchange:
		sub.RequestType = domain.ReturnTypeExchange
		switch domain.ExchangeMode(req.ExchangeMode) {
		case domain.ExchangeModeInStore, domain.ExchangeModeOnline:
			sub.ExchangeMode = domain.ExchangeMode(req.ExchangeMode)
		default:
			return sub, errors.New("exchangeMode must be InStore or Online")
		}
	default:
		return sub, errors.New("requestType must be Refund or Exchange")
	}

	if len(req.Items) == 0 {
		return sub, errors.New("at least one item is required")
	}
	for _, item := range req.Items {
		if item.OrderItemID == "" {
			return sub, errors.New("orderItemId is required for every item")
		}
		sub.Items = append(sub.Items, SubmissionItem{
			OrderItemID:          item.OrderItemID,
			Quantity:             item.Quantity,
			ReplacementVariantID: item.ReplacementVariantID,
		})
	}

	return sub, nil
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
