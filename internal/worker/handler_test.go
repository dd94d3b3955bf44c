package worker

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stylesphere/storefront/internal/domain"
)

type stubMailer struct {
	err error

	to      string
	subject string
	body    string
	sends   int
}

func (m *stubMailer) Send(_ context.Context, to, subject, body string) error {
	m.sends++
	m.to = to
	m.subject = subject
	m.body = body
	return m.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func event() domain.OrderPlacedEvent {
	return domain.OrderPlacedEvent{
		OrderID:       "o-1",
		CustomerID:    "c-1",
		CustomerEmail: "c1@example.com",
		Items: []domain.OrderItem{
			{SKU: "TS-M-BLK", Quantity: 2, UnitPrice: 100},
			{SKU: "TS-L-WHT", Quantity: 1, UnitPrice: 250},
		},
		Total:          750,
		ShippingMethod: "express",
		Timestamp:      time.Now().UTC(),
	}
}

func TestConfirmationHandler_Handle(t *testing.T) {
	t.Run("sends confirmation email", func(t *testing.T) {
		mailer := &stubMailer{}
		handler := NewConfirmationHandler(mailer, testLogger())

		payload, _ := json.Marshal(event())
		if err := handler.Handle(context.Background(), payload); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if mailer.to != "c1@example.com" {
			t.Errorf("expected recipient c1@example.com, got %q", mailer.to)
		}
		if !strings.Contains(mailer.subject, "o-1") {
			t.Errorf("expected subject to mention order id, got %q", mailer.subject)
		}
		if !strings.Contains(mailer.body, "TS-M-BLK") || !strings.Contains(mailer.body, "Rs. 750") {
			t.Errorf("body missing items or total: %s", mailer.body)
		}
	})

	t.Run("mail failure does not stop the consumer", func(t *testing.T) {
		mailer := &stubMailer{err: errors.New("smtp down")}
		handler := NewConfirmationHandler(mailer, testLogger())

		payload, _ := json.Marshal(event())
		if err := handler.Handle(context.Background(), payload); err != nil {
			t.Errorf("expected nil error, got %v", err)
		}
	})

	t.Run("garbage payload is skipped", func(t *testing.T) {
		mailer := &stubMailer{}
		handler := NewConfirmationHandler(mailer, testLogger())

		if err := handler.Handle(context.Background(), []byte("not json")); err != nil {
			t.Errorf("expected nil error, got %v", err)
		}
		if mailer.sends != 0 {
			t.Errorf("expected no send attempts, got %d", mailer.sends)
		}
	})

	t.Run("missing email is skipped", func(t *testing.T) {
		mailer := &stubMailer{}
		handler := NewConfirmationHandler(mailer, testLogger())

		e := event()
		e.CustomerEmail = ""
		payload, _ := json.Marshal(e)

		if err := handler.Handle(context.Background(), payload); err != nil {
			t.Errorf("expected nil error, got %v", err)
		}
		if mailer.sends != 0 {
			t.Errorf("expected no send attempts, got %d", mailer.sends)
		}
	})
}
