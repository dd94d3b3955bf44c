package returns

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stylesphere/storefront/internal/domain"
)

type stubStore struct {
	request *domain.ReturnRequest
	err     error

	lastOrderID    string
	lastSubmission Submission
}

func (s *stubStore) Submit(_ context.Context, orderID string, sub Submission) (*domain.ReturnRequest, error) {
	s.lastOrderID = orderID
	s.lastSubmission = sub
	if s.err != nil {
		return nil, s.err
	}
	return s.request, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func submit(t *testing.T, handler *Handler, body string) *httptest.ResponseRecorder {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /orders/{orderId}/return", handler.HandleSubmit)

	req := httptest.NewRequest(http.MethodPost, "/orders/o-1/return", strings.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestHandler_HandleSubmit(t *testing.T) {
	t.Run("submits refund request", func(t *testing.T) {
		store := &stubStore{request: &domain.ReturnRequest{ID: "r-1", Status: domain.ReturnStatusPending}}
		handler := NewHandler(store, testLogger())

		body := `{"requestType":"Refund","reason":"wrong size","items":[{"orderItemId":"oi-1","quantity":1}]}`
		rec := submit(t, handler, body)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
		}

		var resp map[string]string
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if resp["returnId"] != "r-1" {
			t.Errorf("expected returnId r-1, got %q", resp["returnId"])
		}
		if store.lastOrderID != "o-1" {
			t.Errorf("expected order id o-1, got %q", store.lastOrderID)
		}
		if store.lastSubmission.RequestType != domain.ReturnTypeRefund {
			t.Errorf("expected refund submission, got %q", store.lastSubmission.RequestType)
		}
	})

	t.Run("exchange requires a mode", func(t *testing.T) {
		handler := NewHandler(&stubStore{}, testLogger())

		body := `{"requestType":"Exchange","items":[{"orderItemId":"oi-1","quantity":1}]}`
		rec := submit(t, handler, body)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d", rec.Code)
		}
	})

	t.Run("refund rejects exchange mode", func(t *testing.T) {
		handler := NewHandler(&stubStore{}, testLogger())

		body := `{"requestType":"Refund","exchangeMode":"Online","items":[{"orderItemId":"oi-1","quantity":1}]}`
		rec := submit(t, handler, body)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d", rec.Code)
		}
	})

	t.Run("exchange carries replacement variant", func(t *testing.T) {
		store := &stubStore{request: &domain.ReturnRequest{ID: "r-2"}}
		handler := NewHandler(store, testLogger())

		body := `{"requestType":"Exchange","exchangeMode":"Online","items":[{"orderItemId":"oi-1","quantity":1,"replacementVariantId":"v-9"}]}`
		rec := submit(t, handler, body)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if got := store.lastSubmission.Items[0].ReplacementVariantID; got != "v-9" {
			t.Errorf("expected replacement variant v-9, got %q", got)
		}
	})

	t.Run("rejects unknown request type", func(t *testing.T) {
		handler := NewHandler(&stubStore{}, testLogger())

		body := `{"requestType":"StoreCredit","items":[{"orderItemId":"oi-1","quantity":1}]}`
		rec := submit(t, handler, body)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d", rec.Code)
		}
	})

	t.Run("rejects empty item list", func(t *testing.T) {
		handler := NewHandler(&stubStore{}, testLogger())

		body := `{"requestType":"Refund","items":[]}`
		rec := submit(t, handler, body)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d", rec.Code)
		}
	})

	t.Run("maps domain errors to statuses", func(t *testing.T) {
		tests := []struct {
			name string
			err  error
			want int
		}{
			{"order not found", domain.ErrOrderNotFound, http.StatusNotFound},
			{"window closed", domain.ErrReturnWindowClosed, http.StatusBadRequest},
			{"item not on order", domain.ErrOrderItemNotFound, http.StatusBadRequest},
			{"quantity too high", domain.ErrInvalidReturnQuantity, http.StatusBadRequest},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				handler := NewHandler(&stubStore{err: tt.err}, testLogger())

				body := `{"requestType":"Refund","items":[{"orderItemId":"oi-1","quantity":1}]}`
				rec := submit(t, handler, body)

				if rec.Code != tt.want {
					t.Errorf("expected status %d, got %d", tt.want, rec.Code)
				}
			})
		}
	})
}
