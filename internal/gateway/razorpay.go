package gateway

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultBaseURL = "https://api.razorpay.com/v1"

// RazorpayClient talks to the Razorpay orders API and checks callback
// signatures. It holds the only copy of the gateway secret.
type RazorpayClient struct {
	keyID     string
	keySecret string
	baseURL   string
	http      *http.Client
}

// NewRazorpayClient creates a gateway client from the key pair
func NewRazorpayClient(keyID, keySecret string) *RazorpayClient {
	return &RazorpayClient{
		keyID:     keyID,
		keySecret: keySecret,
		baseURL:   defaultBaseURL,
		http:      &http.Client{Timeout: 15 * time.Second},
	}
}

// NewRazorpayClientWithBaseURL is NewRazorpayClient against a custom endpoint
func NewRazorpayClientWithBaseURL(keyID, keySecret, baseURL string) *RazorpayClient {
	c := NewRazorpayClient(keyID, keySecret)
	c.baseURL = baseURL
	return c
}

type intentRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

// CreateIntent asks the gateway for a payment intent and returns its
// response body verbatim. Amount is in the smallest currency unit; the
// gateway is the source of truth for amount/currency legality.
func (c *RazorpayClient) CreateIntent(ctx context.Context, amount int64, currency, receipt string) (json.RawMessage, error) {
	payload, err := json.Marshal(intentRequest{Amount: amount, Currency: currency, Receipt: receipt})
	if err != nil {
		return nil, fmt.Errorf("failed to encode intent request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/orders", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.SetBasicAuth(c.keyID, c.keySecret)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach payment gateway: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read gateway response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gateway error (%d): %s", resp.StatusCode, string(body))
	}

	return json.RawMessage(body), nil
}

// VerifySignature authenticates a payment callback. The signed payload is
// the concatenation gatewayOrderID + "|" + gatewayPaymentID; the signature
// is its HMAC-SHA256 hex digest under the shared key secret. The compare is
// constant-time.
func (c *RazorpayClient) VerifySignature(gatewayOrderID, gatewayPaymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(c.keySecret))
	mac.Write([]byte(gatewayOrderID + "|" + gatewayPaymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
