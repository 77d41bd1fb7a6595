// Package email sends customer notifications over SMTP.
package email

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/core/application/notification"

	"github.com/wneessen/go-mail"
)

var ErrNoRecipientEmail = errors.New("recipient has no email address")

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type sender interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

type Channel struct {
	client sender
	from   string
}

var _ notification.Channel = (*Channel)(nil)

func NewChannel(cfg Config) (*Channel, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("create smtp client: %w", err)
	}

	from := cfg.From
	if from == "" {
		from = cfg.Username
	}
	return newChannel(client, from), nil
}

func newChannel(client sender, from string) *Channel {
	return &Channel{client: client, from: from}
}

func (c *Channel) Name() string { return "email" }

func (c *Channel) Send(ctx context.Context, msg notification.Message, to notification.Recipient) error {
	if to.Email == "" {
		return ErrNoRecipientEmail
	}

	m := mail.NewMsg()
	if err := m.From(c.from); err != nil {
		return fmt.Errorf("invalid sender %q: %w", c.from, err)
	}
	if to.Name != "" {
		if err := m.AddToFormat(to.Name, to.Email); err != nil {
			return fmt.Errorf("invalid recipient %q: %w", to.Email, err)
		}
	} else if err := m.To(to.Email); err != nil {
		return fmt.Errorf("invalid recipient %q: %w", to.Email, err)
	}

	m.Subject(msg.Subject)
	m.SetBodyString(mail.TypeTextPlain, msg.Text)
	if msg.HTML != "" {
		m.AddAlternativeString(mail.TypeTextHTML, msg.HTML)
	}

	return c.client.DialAndSendWithContext(ctx, m)
}
