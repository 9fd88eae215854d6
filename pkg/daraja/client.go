package daraja

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/captainblair/vertex/pkg/httpclient"
	"go.uber.org/zap"
)

const (
	tokenEndpoint = "/oauth/v1/generate?grant_type=client_credentials"
	pushEndpoint  = "/mpesa/stkpush/v1/processrequest"
)

// Client initiates STK push requests against the payment processor.
type Client interface {
	STKPush(ctx context.Context, request PushRequest) (PushResponse, error)
}

type client struct {
	config Config
	client httpclient.HTTPClient
	logger *zap.Logger
	now    func() time.Time
}

func NewClient(cfg Config, httpClient httpclient.HTTPClient, logger *zap.Logger) Client {
	return &client{config: cfg, client: httpClient, logger: logger, now: time.Now}
}

// Timestamp renders t in the YYYYMMDDHHmmss form the processor expects,
// using local time.
func Timestamp(t time.Time) string {
	return t.Format("20060102150405")
}

// Password computes the per-request digest: base64(shortcode|passkey|timestamp).
// The timestamp changes every call, so the result is never cacheable.
func Password(shortCode, passkey, timestamp string) string {
	return base64.StdEncoding.EncodeToString([]byte(shortCode + passkey + timestamp))
}

func (c *client) STKPush(ctx context.Context, request PushRequest) (PushResponse, error) {
	token, err := c.token(ctx)
	if err != nil {
		return PushResponse{}, err
	}

	timestamp := Timestamp(c.now())
	payload := stkPushPayload{
		BusinessShortCode: c.config.ShortCode,
		Password:          Password(c.config.ShortCode, c.config.Passkey, timestamp),
		Timestamp:         timestamp,
		TransactionType:   TransactionTypePayBill,
		Amount:            request.Amount,
		PartyA:            request.PhoneNumber,
		PartyB:            c.config.ShortCode,
		PhoneNumber:       request.PhoneNumber,
		CallBackURL:       c.config.CallbackURL,
		AccountReference:  request.AccountReference,
		TransactionDesc:   request.TransactionDesc,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		return PushResponse{}, fmt.Errorf("encoding error: %w", err)
	}

	headers := map[string]string{
		"Content-Type":  "application/json",
		"Authorization": "Bearer " + token,
	}

	resp, err := c.client.Post(ctx, c.config.BaseURL+pushEndpoint, &buf, headers)
	if err != nil {
		c.logger.Warn("STK push request failed in transit", zap.Error(err))
		return PushResponse{}, fmt.Errorf("%w: %v", ErrPushRequestFailed, err)
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		details, _ := io.ReadAll(resp.Body)
		c.logger.Warn("STK push rejected by processor",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("details", details))
		return PushResponse{}, &PushError{StatusCode: resp.StatusCode, Details: details}
	}

	var response PushResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return PushResponse{}, fmt.Errorf("%w: decoding error: %v", ErrPushRequestFailed, err)
	}

	return response, nil
}

// token exchanges the configured key/secret pair for a short-lived bearer
// token. There is no caching; each push cycle fetches a fresh token.
func (c *client) token(ctx context.Context) (string, error) {
	auth := base64.StdEncoding.EncodeToString([]byte(c.config.ConsumerKey + ":" + c.config.ConsumerSecret))

	resp, err := c.client.Get(ctx, c.config.BaseURL+tokenEndpoint, map[string]string{
		"Authorization": "Basic " + auth,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAuthenticationFailed, err)
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: token endpoint returned %d", ErrAuthenticationFailed, resp.StatusCode)
	}

	var body tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("%w: decoding error: %v", ErrAuthenticationFailed, err)
	}

	if body.AccessToken == "" {
		return "", fmt.Errorf("%w: empty access token", ErrAuthenticationFailed)
	}

	return body.AccessToken, nil
}
