package email

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/delanoso/safetyhub/pkg/config"
)

const sendPath = "/v3/mail/send"

// ErrNotConfigured is returned when no API key or sender is set.
var ErrNotConfigured = errors.New("email is not configured")

// Message is a single transactional email.
type Message struct {
	To      string
	ToName  string
	Subject string
	Text    string
	HTML    string
}

// Sender is what services need to deliver links; *Client satisfies it.
type Sender interface {
	Configured() bool
	Send(ctx context.Context, msg Message) error
}

// Client sends mail through the SendGrid v3 API.
type Client struct {
	http     *resty.Client
	from     address
	disabled bool
}

type address struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type content struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type personalization struct {
	To []address `json:"to"`
}

type sendRequest struct {
	Personalizations []personalization `json:"personalizations"`
	From             address           `json:"from"`
	Subject          string            `json:"subject"`
	Content          []content         `json:"content"`
}

// NewClient builds a client. An unconfigured client is returned rather than an
// error so callers can still answer with the signing link.
func NewClient(cfg config.EmailConfig) *Client {
	client := &Client{
		from:     address{Email: cfg.FromEmail, Name: cfg.FromName},
		disabled: !cfg.Configured(),
	}
	client.http = resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetAuthToken(cfg.SendgridAPIKey).
		SetTimeout(15*time.Second).
		SetHeader("Content-Type", "application/json")
	return client
}

// Configured reports whether Send can deliver mail.
func (c *Client) Configured() bool {
	return c != nil && !c.disabled
}

// Send delivers msg. SendGrid answers 202 on acceptance.
func (c *Client) Send(ctx context.Context, msg Message) error {
	if !c.Configured() {
		return ErrNotConfigured
	}
	if strings.TrimSpace(msg.To) == "" {
		return fmt.Errorf("recipient is required")
	}

	body := sendRequest{
		Personalizations: []personalization{{To: []address{{Email: msg.To, Name: msg.ToName}}}},
		From:             c.from,
		Subject:          msg.Subject,
	}
	if msg.Text != "" {
		body.Content = append(body.Content, content{Type: "text/plain", Value: msg.Text})
	}
	if msg.HTML != "" {
		body.Content = append(body.Content, content{Type: "text/html", Value: msg.HTML})
	}
	if len(body.Content) == 0 {
		return fmt.Errorf("message body is required")
	}

	resp, err := c.http.R().SetContext(ctx).SetBody(body).Post(sendPath)
	if err != nil {
		return fmt.Errorf("sendgrid request: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("sendgrid returned %s: %s", resp.Status(), strings.TrimSpace(resp.String()))
	}
	return nil
}
