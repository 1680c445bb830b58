package mailer

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"

	"avenqor/pkg/httpx"
	"avenqor/pkg/logx"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals

const requestTimeout = 10 * time.Second

type Config struct {
	BaseURL   string
	APIToken  string
	FromName  string
	FromEmail string
	// ResetURLBase is the storefront page the reset token is appended to.
	ResetURLBase string
}

// Client talks to the transactional mail provider's HTTP API.
type Client struct {
	httpClient *http.Client
	cfg        Config
}

func NewClient(cfg Config, masker interface{ Mask([]byte) []byte }) *Client {
	transport := httpx.NewAuthBearerRoundTripper(
		httpx.NewLoggingRoundTripper(
			http.DefaultTransport,
			httpx.WithSensitiveDataMasker(masker),
		),
		httpx.StaticTokenAuthenticator{Token: cfg.APIToken},
	)

	return &Client{
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   requestTimeout,
		},
		cfg: cfg,
	}
}

type sendPayload struct {
	FromName  string `json:"fromName"`
	FromEmail string `json:"fromEmail"`
	To        string `json:"to"`
	Subject   string `json:"subject"`
	TextBody  string `json:"textBody"`
}

// SendPasswordReset mails a one-shot reset link.
func (c *Client) SendPasswordReset(ctx context.Context, email, token string) error {
	link := c.cfg.ResetURLBase + "?token=" + token

	body := fmt.Sprintf(
		"We received a request to reset your password.\n\n"+
			"Open the link below to choose a new one. The link expires shortly and works once.\n\n%s\n\n"+
			"If you did not request this, ignore this message.",
		link,
	)

	return c.send(ctx, sendPayload{
		FromName:  c.cfg.FromName,
		FromEmail: c.cfg.FromEmail,
		To:        email,
		Subject:   "Reset your password",
		TextBody:  body,
	})
}

func (c *Client) send(ctx context.Context, payload sendPayload) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/v1/send", bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("http.NewRequestWithContext: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("httpClient.Do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))

		logger(ctx).Error("mail provider rejected message",
			logx.FieldResponseStatus, resp.StatusCode)

		return fmt.Errorf("mail provider returned %d: %s", resp.StatusCode, snippet)
	}

	return nil
}
