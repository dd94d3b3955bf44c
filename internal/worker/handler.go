package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/wneessen/go-mail"

	"github.com/stylesphere/storefront/internal/domain"
)

// Mailer sends one email. Split out so the handler can be tested without
// an SMTP server.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type SMTPMailer struct {
	client *mail.Client
	from   string
}

func NewSMTPMailer(cfg SMTPConfig) (*SMTPMailer, error) {
	client, err := mail.NewClient(cfg.Host,
		mail.WithPort(cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(cfg.Username),
		mail.WithPassword(cfg.Password),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return nil, err
	}
	return &SMTPMailer{client: client, from: cfg.From}, nil
}

func (m *SMTPMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)

	return m.client.DialAndSendWithContext(ctx, msg)
}

// ConfirmationHandler turns order placed events into confirmation
// emails. Mail failures are logged and swallowed: a dead SMTP server
// must not wedge the consumer group on one message forever.
type ConfirmationHandler struct {
	mailer Mailer
	logger *slog.Logger
}

func NewConfirmationHandler(mailer Mailer, logger *slog.Logger) *ConfirmationHandler {
	return &ConfirmationHandler{mailer: mailer, logger: logger}
}

func (h *ConfirmationHandler) Handle(ctx context.Context, payload []byte) error {
	var event domain.OrderPlacedEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		h.logger.Error("failed to unmarshal order placed event", "error", err)
		return nil
	}

	if event.CustomerEmail == "" {
		h.logger.Warn("order placed event without customer email", "order_id", event.OrderID)
		return nil
	}

	subject := fmt.Sprintf("Order confirmed: %s", event.OrderID)
	body := confirmationBody(event)

	if err := h.mailer.Send(ctx, event.CustomerEmail, subject, body); err != nil {
		h.logger.Error("failed to send confirmation email",
			"error", err, "order_id", event.OrderID, "to", event.CustomerEmail)
		return nil
	}

	h.logger.Info("confirmation email sent", "order_id", event.OrderID, "to", event.CustomerEmail)
	return nil
}

func confirmationBody(event domain.OrderPlacedEvent) string {
	var rows strings.Builder
	for _, item := range event.Items {
		fmt.Fprintf(&rows, `<tr><td>%s</td><td>%d</td><td>Rs. %d</td><td>Rs. %d</td></tr>`,
			item.SKU, item.Quantity, item.UnitPrice, int64(item.Quantity)*item.UnitPrice)
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif;">
	<h2>Thank you for your order</h2>
	<p>Your order <strong>%s</strong> has been placed and is being prepared.</p>
	<table border="1" cellpadding="8" cellspacing="0">
		<thead><tr><th>Item</th><th>Qty</th><th>Price</th><th>Subtotal</th></tr></thead>
		<tbody>%s</tbody>
	</table>
	<p>Shipping: %s</p>
	<p><strong>Total: Rs. %d</strong></p>
</body>
</html>`, event.OrderID, rows.String(), event.ShippingMethod, event.Total)
}
