package notifications

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	mail "github.com/wneessen/go-mail"

	"github.com/amaclone/storefront/internal/localization"
	"github.com/amaclone/storefront/pkg/config"
	"github.com/amaclone/storefront/pkg/db/models"
)

func sampleOrder() *models.Order {
	return &models.Order{
		ID:    uuid.MustParse("8a4f9a02-3c38-4b7a-9d1e-1d1e5c8f0a11"),
		Total: decimal.RequireFromString("659.97"),
		Shipping: models.ShippingDetails{
			FullName: "Sam <Admin>",
			Email:    "sam@example.com",
			Address:  "1 Main St",
			City:     "Springfield",
			State:    "IL",
			ZipCode:  "62701",
			Country:  "US",
		},
		Items: []models.OrderItem{
			{Name: "Headphones", Quantity: 2, Price: decimal.RequireFromString("299.99")},
			{Name: "Mug", Quantity: 1, Price: decimal.RequireFromString("59.99")},
		},
	}
}

func defaultTables(t *testing.T) localization.Tables {
	t.Helper()
	tables, err := localization.DefaultTables()
	if err != nil {
		t.Fatalf("load tables: %v", err)
	}
	return tables
}

func TestRenderOrderConfirmationEnglish(t *testing.T) {
	msg, err := RenderOrderConfirmation(defaultTables(t), "en", sampleOrder(), nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	if len(msg.To) != 1 || msg.To[0] != "sam@example.com" {
		t.Fatalf("expected recipient sam@example.com, got %v", msg.To)
	}
	if msg.Subject != "Order confirmation #8a4f9a02-3c38-4b7a-9d1e-1d1e5c8f0a11" {
		t.Fatalf("unexpected subject %q", msg.Subject)
	}
	for _, want := range []string{
		"Headphones x 2 - $599.98",
		"Mug x 1 - $59.99",
		"Total: $659.97",
		`dir="ltr"`,
		"Sam &lt;Admin&gt;",
	} {
		if !strings.Contains(msg.HTML, want) {
			t.Errorf("html missing %q", want)
		}
	}
}

func TestRenderOrderConfirmationArabicAndUnknownLocale(t *testing.T) {
	tables := defaultTables(t)

	ar, err := RenderOrderConfirmation(tables, "ar", sampleOrder(), &models.User{Name: "Sam"})
	if err != nil {
		t.Fatalf("render ar: %v", err)
	}
	if !strings.Contains(ar.HTML, `dir="rtl"`) {
		t.Errorf("expected rtl document, got %s", ar.HTML)
	}
	if !strings.HasPrefix(ar.Subject, "تأكيد الطلب") {
		t.Errorf("unexpected arabic subject %q", ar.Subject)
	}

	fallback, err := RenderOrderConfirmation(tables, "fr", sampleOrder(), nil)
	if err != nil {
		t.Fatalf("render fr: %v", err)
	}
	if !strings.Contains(fallback.Subject, "Order confirmation") {
		t.Errorf("expected english fallback subject, got %q", fallback.Subject)
	}

	if _, err := RenderOrderConfirmation(tables, "en", nil, nil); err == nil {
		t.Fatal("expected error for nil order")
	}
}

func TestNewMailerWithoutHostIsNoop(t *testing.T) {
	m, err := NewMailer(config.SMTPConfig{})
	if err != nil {
		t.Fatalf("new mailer: %v", err)
	}
	if _, ok := m.(NoopMailer); !ok {
		t.Fatalf("expected NoopMailer, got %T", m)
	}
	if err := m.Send(context.Background(), Message{}); err != nil {
		t.Fatalf("noop send: %v", err)
	}
}

func TestNewSMTPMailerRejectsBadFrom(t *testing.T) {
	if _, err := NewSMTPMailer(config.SMTPConfig{Host: "smtp.local", Port: 2525, From: "not an address"}); err == nil {
		t.Fatal("expected from address error")
	}
}

type capturingClient struct {
	sent []*mail.Msg
	err  error
}

func (c *capturingClient) DialAndSendWithContext(_ context.Context, messages ...*mail.Msg) error {
	if c.err != nil {
		return c.err
	}
	c.sent = append(c.sent, messages...)
	return nil
}

func newTestMailer(t *testing.T, client deliverer) *SMTPMailer {
	t.Helper()
	m, err := NewSMTPMailer(config.SMTPConfig{Host: "smtp.local", Port: 2525, User: "u", Password: "p", From: "Store <store@example.com>"})
	if err != nil {
		t.Fatalf("new smtp mailer: %v", err)
	}
	m.client = client
	return m
}

func TestSMTPMailerSendWritesStandardHeaders(t *testing.T) {
	client := &capturingClient{}
	m := newTestMailer(t, client)

	err := m.Send(context.Background(), Message{To: []string{"a@example.com"}, Subject: "شكراً", HTML: "<p>hi</p>"})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if len(client.sent) != 1 {
		t.Fatalf("expected one message, got %d", len(client.sent))
	}

	var buf bytes.Buffer
	if _, err := client.sent[0].WriteTo(&buf); err != nil {
		t.Fatalf("write message: %v", err)
	}
	raw := buf.String()
	for _, want := range []string{"Date: ", "Message-ID: <", "Subject: =?UTF-8?q?", "To: <a@example.com>", "text/html"} {
		if !strings.Contains(raw, want) {
			t.Errorf("message missing %q:\n%s", want, raw)
		}
	}
	if !strings.Contains(raw, `"Store" <store@example.com>`) && !strings.Contains(raw, "Store <store@example.com>") {
		t.Errorf("unexpected from header:\n%s", raw)
	}

	rcpts, err := client.sent[0].GetRecipients()
	if err != nil || len(rcpts) != 1 || rcpts[0] != "a@example.com" {
		t.Fatalf("unexpected recipients %v (%v)", rcpts, err)
	}
}

func TestSMTPMailerRejectsInjectedRecipient(t *testing.T) {
	client := &capturingClient{}
	m := newTestMailer(t, client)

	err := m.Send(context.Background(), Message{To: []string{"a@example.com\r\nBcc: victim@example.com"}, Subject: "x"})
	if err == nil {
		t.Fatal("expected crafted recipient to be rejected")
	}
	if len(client.sent) != 0 {
		t.Fatalf("nothing should be sent, got %d", len(client.sent))
	}
}

func TestSMTPMailerSendErrors(t *testing.T) {
	m := newTestMailer(t, &capturingClient{err: errors.New("relay down")})

	err := m.Send(context.Background(), Message{To: []string{"a@example.com"}})
	if err == nil || !strings.Contains(err.Error(), "relay down") {
		t.Fatalf("expected relay error, got %v", err)
	}
	if err := m.Send(context.Background(), Message{}); err == nil {
		t.Fatal("expected error without recipients")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := m.Send(ctx, Message{To: []string{"a@example.com"}}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context canceled, got %v", err)
	}
}
