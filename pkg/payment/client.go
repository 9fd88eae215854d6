// Package payment is the calling-client SDK for the Vertex payment API:
// trigger an STK push, then poll the status endpoint until a terminal verdict.
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/captainblair/vertex/pkg/daraja"
	"github.com/captainblair/vertex/pkg/httpclient"
	"go.uber.org/zap"
)

const (
	defaultPollInterval = 2 * time.Second
	defaultMaxAttempts  = 30
)

type Verdict string

const (
	VerdictSuccess Verdict = "SUCCESS"
	VerdictFailed  Verdict = "FAILED"
)

type Config struct {
	BaseURL      string        `mapstructure:"base_url"`
	PollInterval time.Duration `mapstructure:"poll_interval"`
	MaxAttempts  int           `mapstructure:"max_attempts"`
}

type Client struct {
	config Config
	client httpclient.HTTPClient
	logger *zap.Logger
}

func NewClient(cfg Config, httpClient httpclient.HTTPClient, logger *zap.Logger) *Client {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = defaultPollInterval
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = defaultMaxAttempts
	}

	return &Client{config: cfg, client: httpClient, logger: logger}
}

type stkPushBody struct {
	PhoneNumber string `json:"phoneNumber"`
	Amount      int64  `json:"amount"`
}

// TriggerStkPush submits a push for the given subscriber and amount and
// returns the processor's raw response. The CheckoutRequestID in the response
// is the handle for VerifyPayment.
func (c *Client) TriggerStkPush(ctx context.Context, phoneNumber string, amount int64) (daraja.PushResponse, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(stkPushBody{PhoneNumber: phoneNumber, Amount: amount}); err != nil {
		return daraja.PushResponse{}, fmt.Errorf("encoding error: %w", err)
	}

	headers := map[string]string{"Content-Type": "application/json"}

	resp, err := c.client.Post(ctx, c.config.BaseURL+"/api/stkpush", &buf, headers)
	if err != nil {
		return daraja.PushResponse{}, err
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return daraja.PushResponse{}, fmt.Errorf("payment server returned %d", resp.StatusCode)
	}

	var response daraja.PushResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return daraja.PushResponse{}, fmt.Errorf("decoding error: %w", err)
	}

	return response, nil
}

// VerifyPayment polls the status endpoint at the configured interval until a
// terminal answer arrives or attempts run out. Timeout counts as FAILED, not
// as pending. Transient polling errors consume an attempt and retry.
func (c *Client) VerifyPayment(ctx context.Context, checkoutRequestID string) Verdict {
	for attempt := 1; attempt <= c.config.MaxAttempts; attempt++ {
		status, err := c.queryStatus(ctx, checkoutRequestID)
		if err != nil {
			c.logger.Warn("Status poll failed, retrying",
				zap.Error(err),
				zap.Int("attempt", attempt),
				zap.String("checkoutRequestID", checkoutRequestID))
		} else {
			switch status {
			// COMPLETED is the legacy spelling some deployments still emit.
			case "SUCCESS", "COMPLETED":
				return VerdictSuccess
			case "FAILED":
				return VerdictFailed
			}
		}

		if attempt == c.config.MaxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			c.logger.Warn("Verification cancelled",
				zap.String("checkoutRequestID", checkoutRequestID))
			return VerdictFailed
		case <-time.After(c.config.PollInterval):
		}
	}

	c.logger.Warn("Verification timed out",
		zap.Int("attempts", c.config.MaxAttempts),
		zap.String("checkoutRequestID", checkoutRequestID))

	return VerdictFailed
}

func (c *Client) queryStatus(ctx context.Context, checkoutRequestID string) (string, error) {
	resp, err := c.client.Get(ctx, c.config.BaseURL+"/api/status/"+checkoutRequestID, nil)
	if err != nil {
		return "", err
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("status endpoint returned %d", resp.StatusCode)
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decoding error: %w", err)
	}

	return body.Status, nil
}
