package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-faster/errors"
	"gopkg.in/gomail.v2"
)

// SMTPConfig holds the mail server settings for order notifications.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	To       string
}

// Enabled reports whether enough configuration is present to send mail.
func (c SMTPConfig) Enabled() bool {
	return c.Host != "" && c.From != "" && c.To != ""
}

var _ Notifier = (*SMTPNotifier)(nil)

// SMTPNotifier emails the shop owner about each placed order.
type SMTPNotifier struct {
	cfg  SMTPConfig
	send func(*gomail.Message) error
}

// NewSMTPNotifier creates a notifier that dials the configured SMTP server
// for each message.
func NewSMTPNotifier(cfg SMTPConfig) *SMTPNotifier {
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	return &SMTPNotifier{
		cfg:  cfg,
		send: func(m *gomail.Message) error { return d.DialAndSend(m) },
	}
}

// OrderPlaced sends the order summary email. The context deadline is honored
// only coarsely: gomail dials synchronously, so callers should invoke this
// from a goroutine they are prepared to abandon.
func (n *SMTPNotifier) OrderPlaced(ctx context.Context, e OrderEmail) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", n.cfg.From)
	m.SetHeader("To", n.cfg.To)
	m.SetHeader("Subject", fmt.Sprintf("New Order Received - #%s", e.OrderID))
	m.SetBody("text/html", orderEmailBody(e))

	if err := n.send(m); err != nil {
		return errors.Wrap(err, "send order email")
	}
	return nil
}

func orderEmailBody(e OrderEmail) string {
	var b strings.Builder
	b.WriteString("<h1>New Order Received</h1>")
	fmt.Fprintf(&b, "<p><strong>Order ID:</strong> %s</p>", e.OrderID)
	fmt.Fprintf(&b, "<p><strong>Customer Phone:</strong> %s</p>", e.CustomerPhone)
	fmt.Fprintf(&b, "<p><strong>Transaction ID:</strong> %s</p>", e.TransactionID)
	b.WriteString("<p><strong>Services:</strong></p><ul>")
	for _, name := range e.ServiceNames {
		fmt.Fprintf(&b, "<li>%s</li>", name)
	}
	b.WriteString("</ul>")
	fmt.Fprintf(&b, "<p><strong>Total Amount:</strong> KSh %s</p>", e.Total.StringFixed(2))
	b.WriteString("<p><strong>Status:</strong> Payment Received</p><hr>")
	b.WriteString("<p>Please log in to the admin dashboard to manage this order.</p>")
	return b.String()
}
