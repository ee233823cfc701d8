package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifySignature(t *testing.T) {
	c := NewRazorpayClient("test_key", "test_secret")

	// HMAC-SHA256("test_secret", "order_abc|pay_xyz")
	good := "a734976b4a9aa4403181acd25d87b09ad8cb31f7d73be91e2bb9eb5c517ca319"

	assert.True(t, c.VerifySignature("order_abc", "pay_xyz", good))
	assert.False(t, c.VerifySignature("order_abc", "pay_xyz", "deadbeef"))
	assert.False(t, c.VerifySignature("order_abc", "pay_other", good))
	assert.False(t, c.VerifySignature("order_abc", "pay_xyz", ""))
}

func TestCreateIntent(t *testing.T) {
	gatewayBody := `{"id":"order_abc123","amount":25000,"currency":"INR","status":"created"}`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/orders", r.URL.Path)

		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "test_key", user)
		assert.Equal(t, "test_secret", pass)

		var req intentRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, int64(25000), req.Amount)
		assert.Equal(t, "INR", req.Currency)
		assert.Equal(t, "receipt_1", req.Receipt)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(gatewayBody))
	}))
	defer srv.Close()

	c := NewRazorpayClientWithBaseURL("test_key", "test_secret", srv.URL)

	intent, err := c.CreateIntent(context.Background(), 25000, "INR", "receipt_1")
	require.NoError(t, err)
	assert.JSONEq(t, gatewayBody, string(intent))
}

func TestCreateIntentGatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"description":"amount must be at least 100"}}`))
	}))
	defer srv.Close()

	c := NewRazorpayClientWithBaseURL("test_key", "test_secret", srv.URL)

	_, err := c.CreateIntent(context.Background(), 1, "INR", "receipt_1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
}
