package customers

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
	customer *domain.Customer
	err      error

	lastAddress domain.Address
}

func (s *stubStore) Register(_ context.Context, _, _, _, _ string) (*domain.Customer, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.customer, nil
}

func (s *stubStore) Authenticate(_ context.Context, _, _ string) (*domain.Customer, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.customer, nil
}

func (s *stubStore) AddAddress(_ context.Context, address domain.Address) (string, error) {
	s.lastAddress = address
	if s.err != nil {
		return "", s.err
	}
	return "a-1", nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestHandler_HandleRegister(t *testing.T) {
	t.Run("creates customer", func(t *testing.T) {
		handler := NewHandler(&stubStore{customer: &domain.Customer{ID: "c-1"}}, testLogger())

		body := `{"fullName":"Ada Khan","email":"ada@example.com","phone":"0300","password":"secret"}`
		req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body))
		rec := httptest.NewRecorder()

		handler.HandleRegister(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
		}

		var resp map[string]string
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if resp["customerId"] != "c-1" {
			t.Errorf("expected customerId c-1, got %q", resp["customerId"])
		}
	})

	t.Run("rejects duplicate email with 409", func(t *testing.T) {
		handler := NewHandler(&stubStore{err: domain.ErrDuplicateEmail}, testLogger())

		body := `{"fullName":"Ada Khan","email":"ada@example.com","password":"secret"}`
		req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body))
		rec := httptest.NewRecorder()

		handler.HandleRegister(rec, req)

		if rec.Code != http.StatusConflict {
			t.Errorf("expected status 409, got %d", rec.Code)
		}
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		handler := NewHandler(&stubStore{}, testLogger())

		body := `{"email":"ada@example.com"}`
		req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body))
		rec := httptest.NewRecorder()

		handler.HandleRegister(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d", rec.Code)
		}
	})
}

func TestHandler_HandleLogin(t *testing.T) {
	t.Run("returns profile on success", func(t *testing.T) {
		handler := NewHandler(&stubStore{customer: &domain.Customer{
			ID:        "c-1",
			FirstName: "Ada",
			LastName:  "Khan",
			Email:     "ada@example.com",
			Phone:     "0300",
		}}, testLogger())

		body := `{"email":"ada@example.com","password":"secret"}`
		req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
		rec := httptest.NewRecorder()

		handler.HandleLogin(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rec.Code)
		}

		var resp map[string]string
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if resp["fullName"] != "Ada Khan" {
			t.Errorf("expected fullName 'Ada Khan', got %q", resp["fullName"])
		}
	})

	t.Run("rejects bad credentials with 401", func(t *testing.T) {
		handler := NewHandler(&stubStore{err: domain.ErrInvalidCredentials}, testLogger())

		body := `{"email":"ada@example.com","password":"wrong"}`
		req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
		rec := httptest.NewRecorder()

		handler.HandleLogin(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("expected status 401, got %d", rec.Code)
		}
	})
}

func TestHandler_HandleAddAddress(t *testing.T) {
	store := &stubStore{}
	handler := NewHandler(store, testLogger())

	body := `{"customerId":"c-1","street":"1 Mall Road","city":"Lahore","postalCode":"54000","country":"PK"}`
	req := httptest.NewRequest(http.MethodPost, "/user/address", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler.HandleAddAddress(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if store.lastAddress.City != "Lahore" {
		t.Errorf("expected city Lahore, got %q", store.lastAddress.City)
	}

	var resp map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["addressId"] != "a-1" {
		t.Errorf("expected addressId a-1, got %q", resp["addressId"])
	}
}

func TestNameSplitting(t *testing.T) {
	tests := []struct {
		full  string
		first string
		last  string
	}{
		{"Ada Khan", "Ada", "Khan"},
		{"Ada", "Ada", ""},
		{"Ada Lovelace Khan", "Ada", "Lovelace Khan"},
	}

	for _, tt := range tests {
		if got := firstName(tt.full); got != tt.first {
			t.Errorf("firstName(%q) = %q, want %q", tt.full, got, tt.first)
		}
		if got := lastName(tt.full); got != tt.last {
			t.Errorf("lastName(%q) = %q, want %q", tt.full, got, tt.last)
		}
	}
}
