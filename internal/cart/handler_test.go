package cart

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
	addErr    error
	removeErr error
	items     []domain.CartItem

	addCalls    int
	removeCalls int
	lastQty     int
}

func (s *stubStore) AddOrUpdateItem(_ context.Context, _, _ string, quantity int) error {
	s.addCalls++
	s.lastQty = quantity
	return s.addErr
}

func (s *stubStore) RemoveItem(_ context.Context, _, _ string) error {
	s.removeCalls++
	return s.removeErr
}

func (s *stubStore) GetItems(_ context.Context, _ string) ([]domain.CartItem, error) {
	return s.items, nil
}

func newTestHandler(store Store) *Handler {
	return NewHandler(store, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestHandler_HandleUpdateItem(t *testing.T) {
	t.Run("sets absolute quantity", func(t *testing.T) {
		store := &stubStore{}
		handler := newTestHandler(store)

		body := `{"customerId":"c-1","variantId":"v-1","quantity":3}`
		req := httptest.NewRequest(http.MethodPost, "/cart", strings.NewReader(body))
		rec := httptest.NewRecorder()

		handler.HandleUpdateItem(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("expected status 200, got %d", rec.Code)
		}
		if store.addCalls != 1 || store.lastQty != 3 {
			t.Errorf("expected one add call with quantity 3, got %d calls, quantity %d", store.addCalls, store.lastQty)
		}
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		handler := newTestHandler(&stubStore{})

		req := httptest.NewRequest(http.MethodPost, "/cart", strings.NewReader(`{"customerId":"c-1"}`))
		rec := httptest.NewRecorder()

		handler.HandleUpdateItem(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d", rec.Code)
		}
	})

	t.Run("unknown variant maps to 404", func(t *testing.T) {
		handler := newTestHandler(&stubStore{addErr: domain.ErrVariantNotFound})

		body := `{"customerId":"c-1","variantId":"nope","quantity":1}`
		req := httptest.NewRequest(http.MethodPost, "/cart", strings.NewReader(body))
		rec := httptest.NewRecorder()

		handler.HandleUpdateItem(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("expected status 404, got %d", rec.Code)
		}
	})

	t.Run("insufficient stock maps to 409", func(t *testing.T) {
		handler := newTestHandler(&stubStore{addErr: domain.ErrInsufficientStock})

		body := `{"customerId":"c-1","variantId":"v-1","quantity":999}`
		req := httptest.NewRequest(http.MethodPost, "/cart", strings.NewReader(body))
		rec := httptest.NewRecorder()

		handler.HandleUpdateItem(rec, req)

		if rec.Code != http.StatusConflict {
			t.Errorf("expected status 409, got %d", rec.Code)
		}
	})
}

func TestHandler_HandleRemoveItem(t *testing.T) {
	t.Run("removal is idempotent", func(t *testing.T) {
		store := &stubStore{}
		handler := newTestHandler(store)

		mux := http.NewServeMux()
		mux.HandleFunc("DELETE /cart/{customerId}/{variantId}", handler.HandleRemoveItem)

		for i := 0; i < 2; i++ {
			req := httptest.NewRequest(http.MethodDelete, "/cart/c-1/v-1", nil)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			if rec.Code != http.StatusOK {
				t.Errorf("call %d: expected status 200, got %d", i+1, rec.Code)
			}
		}

		if store.removeCalls != 2 {
			t.Errorf("expected 2 remove calls, got %d", store.removeCalls)
		}
	})
}

func TestHandler_HandleGetCart(t *testing.T) {
	store := &stubStore{items: []domain.CartItem{
		{ID: "ci-1", VariantID: "v-1", Quantity: 2, UnitPrice: 100, Subtotal: 200},
	}}
	handler := newTestHandler(store)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /cart/{customerId}", handler.HandleGetCart)

	req := httptest.NewRequest(http.MethodGet, "/cart/c-1", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var items []domain.CartItem
	if err := json.NewDecoder(rec.Body).Decode(&items); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(items) != 1 || items[0].Quantity != 2 || items[0].Subtotal != 200 {
		t.Errorf("unexpected items: %+v", items)
	}
}
