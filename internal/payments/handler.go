package payments

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/stripe/stripe-go/v83"
	"github.com/stripe/stripe-go/v83/paymentintent"

	"github.com/stylesphere/storefront/internal/orders"
)

// CartTotals supplies the server-side amount for a payment intent. The
// client never sends an amount; the cart subtotal plus shipping is
// computed here so a tampered request cannot underpay.
type CartTotals interface {
	Subtotal(ctx context.Context, customerID string) (int64, error)
}

type Handler struct {
	totals CartTotals
	logger *slog.Logger
}

func NewHandler(totals CartTotals, logger *slog.Logger) *Handler {
	return &Handler{totals: totals, logger: logger}
}

// intentAmount is the Stripe charge in paisa: live cart subtotal plus
// the flat shipping rate for the chosen method. The client only names
// the method; both figures stay under server control.
func intentAmount(subtotal int64, shippingMethod string) int64 {
	return (subtotal + orders.ShippingCost(shippingMethod)) * 100
}

type createIntentRequest struct {
	CustomerID     string `json:"customerId"`
	ShippingMethod string `json:"shippingMethod"`
}

func (h *Handler) HandleCreateIntent(w http.ResponseWriter, r *http.Request) {
	var req createIntentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.CustomerID == "" {
		h.writeError(w, http.StatusBadRequest, "customerId is required")
		return
	}

	subtotal, err := h.totals.Subtotal(r.Context(), req.CustomerID)
	if err != nil {
		h.logger.Error("failed to compute cart subtotal", "error", err, "customer_id", req.CustomerID)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if subtotal == 0 {
		h.writeError(w, http.StatusBadRequest, "cart is empty")
		return
	}

	if stripe.Key == "" {
		h.logger.Error("stripe key not configured")
		h.writeError(w, http.StatusInternalServerError, "payments are not configured")
		return
	}

	amount := intentAmount(subtotal, req.ShippingMethod)

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amount),
		Currency: stripe.String("pkr"),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.AddMetadata("customer_id", req.CustomerID)

	intent, err := paymentintent.New(params)
	if err != nil {
		h.logger.Error("failed to create payment intent", "error", err, "customer_id", req.CustomerID)
		h.writeError(w, http.StatusInternalServerError, "failed to create payment intent")
		return
	}

	h.logger.Info("payment intent created", "intent_id", intent.ID, "amount", amount)
	h.writeJSON(w, http.StatusOK, map[string]string{
		"clientSecret":    intent.ClientSecret,
		"paymentIntentId": intent.ID,
	})
}

type updateIntentRequest struct {
	PaymentIntentID string `json:"paymentIntentId"`
	CustomerID      string `json:"customerId"`
	ShippingMethod  string `json:"shippingMethod"`
}

// HandleUpdateIntent re-prices an existing intent, typically after the
// customer switches shipping method on the checkout page.
func (h *Handler) HandleUpdateIntent(w http.ResponseWriter, r *http.Request) {
	var req updateIntentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.PaymentIntentID == "" || req.CustomerID == "" {
		h.writeError(w, http.StatusBadRequest, "paymentIntentId and customerId are required")
		return
	}

	subtotal, err := h.totals.Subtotal(r.Context(), req.CustomerID)
	if err != nil {
		h.logger.Error("failed to compute cart subtotal", "error", err, "customer_id", req.CustomerID)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if subtotal == 0 {
		h.writeError(w, http.StatusBadRequest, "cart is empty")
		return
	}

	if stripe.Key == "" {
		h.logger.Error("stripe key not configured")
		h.writeError(w, http.StatusInternalServerError, "payments are not configured")
		return
	}

	intent, err := paymentintent.Update(req.PaymentIntentID, &stripe.PaymentIntentParams{
		Amount: stripe.Int64(intentAmount(subtotal, req.ShippingMethod)),
	})
	if err != nil {
		h.logger.Error("failed to update payment intent", "error", err, "intent_id", req.PaymentIntentID)
		h.writeError(w, http.StatusInternalServerError, "failed to update payment intent")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"clientSecret":    intent.ClientSecret,
		"paymentIntentId": intent.ID,
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
