package notifications

import (
	"context"
	"fmt"
	"strings"
	"time"

	mail "github.com/wneessen/go-mail"

	"github.com/amaclone/storefront/pkg/config"
)

const smtpTimeout = 15 * time.Second

// Message is a single outbound HTML email.
type Message struct {
	To      []string
	Subject string
	HTML    string
}

// Mailer delivers messages.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// NoopMailer drops every message. Used when SMTP is not configured.
type NoopMailer struct{}

func (NoopMailer) Send(context.Context, Message) error { return nil }

type deliverer interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

// SMTPMailer sends messages through an SMTP relay with opportunistic STARTTLS.
type SMTPMailer struct {
	client deliverer
	from   string
}

// NewMailer returns an SMTPMailer when cfg has a host and a NoopMailer otherwise.
func NewMailer(cfg config.SMTPConfig) (Mailer, error) {
	if !cfg.Enabled() {
		return NoopMailer{}, nil
	}
	return NewSMTPMailer(cfg)
}

func NewSMTPMailer(cfg config.SMTPConfig) (*SMTPMailer, error) {
	host := strings.TrimSpace(cfg.Host)
	if host == "" {
		return nil, fmt.Errorf("smtp host required")
	}
	if err := mail.NewMsg().From(cfg.From); err != nil {
		return nil, fmt.Errorf("parse smtp from address: %w", err)
	}

	opts := []mail.Option{
		mail.WithTLSPolicy(mail.TLSOpportunistic),
		mail.WithTimeout(smtpTimeout),
	}
	if cfg.Port > 0 {
		opts = append(opts, mail.WithPort(cfg.Port))
	}
	if cfg.User != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.User),
			mail.WithPassword(cfg.Password),
		)
	}
	client, err := mail.NewClient(host, opts...)
	if err != nil {
		return nil, fmt.Errorf("create smtp client: %w", err)
	}
	return &SMTPMailer{client: client, from: cfg.From}, nil
}

func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	out, err := m.compose(msg)
	if err != nil {
		return err
	}
	if err := m.client.DialAndSendWithContext(ctx, out); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

// compose builds the wire message. Recipients go through address parsing, so
// header injection via a crafted address is rejected here.
func (m *SMTPMailer) compose(msg Message) (*mail.Msg, error) {
	if len(msg.To) == 0 {
		return nil, fmt.Errorf("message has no recipients")
	}
	out := mail.NewMsg()
	if err := out.From(m.from); err != nil {
		return nil, fmt.Errorf("set from address: %w", err)
	}
	if err := out.To(msg.To...); err != nil {
		return nil, fmt.Errorf("set recipients: %w", err)
	}
	out.Subject(msg.Subject)
	out.SetDate()
	out.SetMessageID()
	out.SetBodyString(mail.TypeTextHTML, msg.HTML)
	return out, nil
}
