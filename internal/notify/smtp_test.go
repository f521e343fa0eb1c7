package notify

import (
	"context"
	"testing"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

func TestSMTPConfig_Enabled(t *testing.T) {
	assert.False(t, SMTPConfig{}.Enabled())
	assert.False(t, SMTPConfig{Host: "smtp.example.com"}.Enabled())
	assert.True(t, SMTPConfig{
		Host: "smtp.example.com",
		From: "shop@example.com",
		To:   "owner@example.com",
	}.Enabled())
}

func TestNewSMTPNotifier_WiresDialer(t *testing.T) {
	n := NewSMTPNotifier(SMTPConfig{
		Host: "smtp.example.com",
		Port: 587,
		From: "shop@example.com",
		To:   "owner@example.com",
	})

	require.NotNil(t, n.send)
	assert.Equal(t, "smtp.example.com", n.cfg.Host)
}

func TestOrderPlaced_BuildsMessage(t *testing.T) {
	var sent *gomail.Message
	n := &SMTPNotifier{
		cfg: SMTPConfig{
			Host: "smtp.example.com",
			From: "shop@example.com",
			To:   "owner@example.com",
		},
		send: func(m *gomail.Message) error {
			sent = m
			return nil
		},
	}

	err := n.OrderPlaced(context.Background(), OrderEmail{
		OrderID:       "ord-1",
		CustomerPhone: "0712345678",
		ServiceNames:  []string{"Web Development"},
		Total:         decimal.NewFromInt(15000),
		TransactionID: "TXN-abc",
	})
	require.NoError(t, err)
	require.NotNil(t, sent)

	assert.Equal(t, []string{"New Order Received - #ord-1"}, sent.GetHeader("Subject"))
	assert.Equal(t, []string{"shop@example.com"}, sent.GetHeader("From"))
	assert.Equal(t, []string{"owner@example.com"}, sent.GetHeader("To"))
}

func TestOrderPlaced_WrapsSendError(t *testing.T) {
	n := &SMTPNotifier{
		send: func(*gomail.Message) error { return errors.New("dial tcp: refused") },
	}

	err := n.OrderPlaced(context.Background(), OrderEmail{OrderID: "ord-1"})
	assert.ErrorContains(t, err, "send order email")
}

func TestOrderPlaced_HonorsCancelledContext(t *testing.T) {
	n := &SMTPNotifier{
		send: func(*gomail.Message) error {
			t.Fatal("send must not be called with a cancelled context")
			return nil
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := n.OrderPlaced(ctx, OrderEmail{OrderID: "ord-1"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestOrderEmailBody_ListsServicesAndTotal(t *testing.T) {
	body := orderEmailBody(OrderEmail{
		OrderID:       "ord-1",
		CustomerPhone: "0712345678",
		ServiceNames:  []string{"Good Conduct Certificate", "Web Development"},
		Total:         decimal.NewFromInt(16500),
		TransactionID: "TXN-abc",
	})

	assert.Contains(t, body, "<li>Good Conduct Certificate</li>")
	assert.Contains(t, body, "<li>Web Development</li>")
	assert.Contains(t, body, "KSh 16500.00")
	assert.Contains(t, body, "ord-1")
	assert.Contains(t, body, "0712345678")
}
