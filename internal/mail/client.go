package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/graniteware/storefront/internal/config"
)

// Notifier delivers a composed message. Delivery failures are reported to
// the caller and never retried here.
type Notifier interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

const sendEndpoint = "https://api.mailjet.com/v3.1/send"

type Client struct {
	apiKey     string
	secretKey  string
	fromEmail  string
	fromName   string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a new Mailjet send-API client
func NewClient(cfg config.MailConfig, logger *zap.Logger) *Client {
	return &Client{
		apiKey:    cfg.APIKey,
		secretKey: cfg.SecretKey,
		fromEmail: cfg.FromEmail,
		fromName:  cfg.FromName,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

type sendRequest struct {
	Messages []message `json:"Messages"`
}

type message struct {
	From     address   `json:"From"`
	To       []address `json:"To"`
	Subject  string    `json:"Subject"`
	HTMLPart string    `json:"HTMLPart"`
}

type address struct {
	Email string `json:"Email"`
	Name  string `json:"Name,omitempty"`
}

type sendResponse struct {
	Messages []struct {
		Status string `json:"Status"`
	} `json:"Messages"`
}

// Send delivers one HTML message through the send API
func (c *Client) Send(ctx context.Context, to, subject, htmlBody string) error {
	reqBody := sendRequest{
		Messages: []message{
			{
				From:     address{Email: c.fromEmail, Name: c.fromName},
				To:       []address{{Email: to}},
				Subject:  subject,
				HTMLPart: htmlBody,
			},
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", sendEndpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.apiKey, c.secretKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("mail API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	var sendResp sendResponse
	if err := json.Unmarshal(body, &sendResp); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}

	for _, m := range sendResp.Messages {
		if m.Status != "success" {
			return fmt.Errorf("mail API rejected message: status %s", m.Status)
		}
	}

	c.logger.Info("Mail dispatched",
		zap.String("to", to),
		zap.String("subject", subject),
	)

	return nil
}
