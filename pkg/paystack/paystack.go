package paystack

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client talks to the Paystack REST API. Amounts are in the minor currency
// unit (kobo) on the wire.
type Client struct {
	BaseURL   string
	SecretKey string
	client    *http.Client
}

func New(baseURL, secretKey string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = "https://api.paystack.co"
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		BaseURL:   baseURL,
		SecretKey: secretKey,
		client:    &http.Client{Timeout: timeout},
	}
}

type InitializeRequest struct {
	Amount      int64  `json:"amount"` // minor units
	Email       string `json:"email"`
	Reference   string `json:"reference"`
	CallbackURL string `json:"callback_url,omitempty"`
}

type InitializeData struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

type initializeEnvelope struct {
	Status  bool           `json:"status"`
	Message string         `json:"message"`
	Data    InitializeData `json:"data"`
}

// InitializeTransaction creates a hosted-checkout session and returns the
// redirect URL. Gateway rejections surface with the gateway's own message.
func (c *Client) InitializeTransaction(ctx context.Context, req InitializeRequest) (*InitializeData, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/transaction/initialize", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.SecretKey)
	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("paystack initialize: %w", err)
	}
	defer resp.Body.Close()
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("paystack initialize: read response: %w", err)
	}
	var out initializeEnvelope
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, fmt.Errorf("paystack initialize: status %d: %w", resp.StatusCode, err)
	}
	if !out.Status || resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("paystack initialize: %s", out.Message)
	}
	return &out.Data, nil
}

type VerifyData struct {
	ID        int64  `json:"id"`
	Status    string `json:"status"` // success | failed | abandoned | ...
	Reference string `json:"reference"`
	Amount    int64  `json:"amount"` // minor units
	PaidAt    string `json:"paid_at"`
	Channel   string `json:"channel"`
}

type verifyEnvelope struct {
	Status  bool       `json:"status"`
	Message string     `json:"message"`
	Data    VerifyData `json:"data"`
}

// VerifyTransaction looks up a transaction by reference. Always hits the live
// endpoint; payment status changes over time so this must never be cached.
func (c *Client) VerifyTransaction(ctx context.Context, reference string) (*VerifyData, error) {
	endpoint := c.BaseURL + "/transaction/verify/" + url.PathEscape(reference)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.SecretKey)
	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("paystack verify: %w", err)
	}
	defer resp.Body.Close()
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("paystack verify: read response: %w", err)
	}
	var out verifyEnvelope
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, fmt.Errorf("paystack verify: status %d: %w", resp.StatusCode, err)
	}
	if !out.Status || resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("paystack verify: %s", out.Message)
	}
	return &out.Data, nil
}

// Signature computes the webhook signature: HMAC-SHA512 over the raw body,
// hex-encoded. Must be fed the exact bytes received; re-serialized JSON
// produces a different digest.
func Signature(secret string, body []byte) string {
	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature compares a supplied signature header against the expected
// digest in constant time.
func VerifySignature(secret string, body []byte, signature string) bool {
	expected := Signature(secret, body)
	return hmac.Equal([]byte(signature), []byte(expected))
}
