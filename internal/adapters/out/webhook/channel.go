// Package webhook posts plain-text notifications to a messaging gateway
// such as a WhatsApp Business API endpoint.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"storefront/internal/core/application/notification"
)

var ErrNoRecipientPhone = errors.New("recipient has no phone number")

type Config struct {
	Name    string
	URL     string
	Token   string
	Timeout time.Duration
}

type Channel struct {
	name   string
	url    string
	token  string
	client *http.Client
}

var _ notification.Channel = (*Channel)(nil)

type payload struct {
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

func NewChannel(cfg Config) *Channel {
	name := cfg.Name
	if name == "" {
		name = "whatsapp"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = notification.DefaultTimeout
	}
	return &Channel{
		name:   name,
		url:    cfg.URL,
		token:  cfg.Token,
		client: &http.Client{Timeout: timeout},
	}
}

func (c *Channel) Name() string { return c.name }

func (c *Channel) Send(ctx context.Context, msg notification.Message, to notification.Recipient) error {
	if to.Phone == "" {
		return ErrNoRecipientPhone
	}

	body, err := json.Marshal(payload{Phone: to.Phone, Message: msg.Text})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook responded %d", resp.StatusCode)
	}
	return nil
}
