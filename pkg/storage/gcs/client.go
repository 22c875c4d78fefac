package gcs

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/delanoso/safetyhub/pkg/config"
	"github.com/delanoso/safetyhub/pkg/logger"
)

const (
	defaultAPIBase    = "https://storage.googleapis.com"
	defaultPublicBase = "https://storage.googleapis.com"
	requestTimeout    = 30 * time.Second
	pingTimeout       = 5 * time.Second
)

// Client talks to the Cloud Storage JSON API.
type Client struct {
	http       *resty.Client
	bucket     string
	publicBase string
	tokens     TokenSource
}

type Pinger interface {
	Ping(ctx context.Context) error
}

// Option customises the client, mostly for tests.
type Option func(*Client)

// WithAPIBase points the client at a different API origin.
func WithAPIBase(base string) Option {
	return func(c *Client) {
		c.http.SetBaseURL(strings.TrimRight(base, "/"))
	}
}

// WithTokenSource replaces the credential lookup.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) {
		c.tokens = ts
	}
}

// NewClient builds a client for the configured bucket. Credentials come from
// inline JSON, a credentials file, or the metadata server, in that order.
func NewClient(ctx context.Context, cfg config.GCSConfig, gcp config.GCPConfig, logg *logger.Logger, opts ...Option) (*Client, error) {
	if !cfg.Configured() {
		return nil, errors.New("gcs bucket name is required")
	}

	httpClient := &http.Client{Timeout: requestTimeout}
	client := &Client{
		http:       resty.NewWithClient(httpClient).SetBaseURL(defaultAPIBase),
		bucket:     cfg.BucketName,
		publicBase: strings.TrimRight(cfg.PublicBaseURL, "/"),
	}
	if client.publicBase == "" {
		client.publicBase = defaultPublicBase + "/" + cfg.BucketName
	}
	for _, opt := range opts {
		opt(client)
	}

	if client.tokens == nil {
		ts, err := tokenSourceFromConfig(httpClient, gcp)
		if err != nil {
			return nil, err
		}
		client.tokens = ts
	}

	if logg != nil {
		logg.Info(logg.WithField(ctx, "bucket", cfg.BucketName), "gcs client initialized")
	}
	return client, nil
}

func (c *Client) Bucket() string {
	if c == nil {
		return ""
	}
	return c.bucket
}

// PublicURL is the address a stored object is served from.
func (c *Client) PublicURL(objectName string) string {
	return c.publicBase + "/" + escapeObjectPath(objectName)
}

// ObjectName reverses PublicURL. ok is false for URLs outside the bucket.
func (c *Client) ObjectName(publicURL string) (string, bool) {
	prefix := c.publicBase + "/"
	if !strings.HasPrefix(publicURL, prefix) {
		return "", false
	}
	name, err := url.PathUnescape(strings.TrimPrefix(publicURL, prefix))
	if err != nil {
		return "", false
	}
	return name, true
}

// Upload stores body under objectName and returns its public URL.
func (c *Client) Upload(ctx context.Context, objectName, contentType string, body []byte) (string, error) {
	req, err := c.request(ctx)
	if err != nil {
		return "", err
	}
	resp, err := req.
		SetHeader("Content-Type", contentType).
		SetQueryParams(map[string]string{"uploadType": "media", "name": objectName}).
		SetBody(body).
		Post("/upload/storage/v1/b/" + url.PathEscape(c.bucket) + "/o")
	if err != nil {
		return "", fmt.Errorf("gcs upload %s: %w", objectName, err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("gcs upload %s: %s: %s", objectName, resp.Status(), truncate(resp.String()))
	}
	return c.PublicURL(objectName), nil
}

// Delete removes an object. A missing object is not an error.
func (c *Client) Delete(ctx context.Context, objectName string) error {
	req, err := c.request(ctx)
	if err != nil {
		return err
	}
	resp, err := req.Delete("/storage/v1/b/" + url.PathEscape(c.bucket) + "/o/" + url.PathEscape(objectName))
	if err != nil {
		return fmt.Errorf("gcs delete %s: %w", objectName, err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil
	}
	if resp.IsError() {
		return fmt.Errorf("gcs delete %s: %s", objectName, resp.Status())
	}
	return nil
}

// Ping lists at most one object to prove credentials and bucket access.
func (c *Client) Ping(ctx context.Context) error {
	if c == nil || c.tokens == nil {
		return errors.New("gcs client not initialized")
	}
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	req, err := c.request(ctx)
	if err != nil {
		return err
	}
	resp, err := req.
		SetQueryParam("maxResults", "1").
		SetHeader("Accept", "application/json").
		Get("/storage/v1/b/" + url.PathEscape(c.bucket) + "/o")
	if err != nil {
		return err
	}
	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("gcs object check failed: %s: %s", resp.Status(), truncate(resp.String()))
	}
	return nil
}

func (c *Client) request(ctx context.Context) (*resty.Request, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("gcs token: %w", err)
	}
	return c.http.R().SetContext(ctx).SetAuthToken(token), nil
}

func escapeObjectPath(name string) string {
	parts := strings.Split(name, "/")
	for i, part := range parts {
		parts[i] = url.PathEscape(part)
	}
	return strings.Join(parts, "/")
}

func truncate(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > 512 {
		return s[:512]
	}
	return s
}
