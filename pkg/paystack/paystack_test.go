package paystack

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeTransaction(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/transaction/initialize", r.URL.Path)
		require.Equal(t, "Bearer sk_test", r.Header.Get("Authorization"))
		var req InitializeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.EqualValues(t, 500000, req.Amount)
		assert.Equal(t, "donor@example.org", req.Email)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  true,
			"message": "Authorization URL created",
			"data": map[string]interface{}{
				"authorization_url": "https://checkout.example.org/xyz",
				"access_code":       "xyz",
				"reference":         req.Reference,
			},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, "sk_test", time.Second)
	data, err := c.InitializeTransaction(context.Background(), InitializeRequest{
		Amount:    500000,
		Email:     "donor@example.org",
		Reference: "ref-42",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://checkout.example.org/xyz", data.AuthorizationURL)
	assert.Equal(t, "ref-42", data.Reference)
}

func TestInitializeTransactionGatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  false,
			"message": "Invalid amount passed",
		})
	}))
	defer srv.Close()

	c := New(srv.URL, "sk_test", time.Second)
	_, err := c.InitializeTransaction(context.Background(), InitializeRequest{Amount: 0, Email: "x@y.z"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid amount passed")
}

func TestInitializeTransactionTruncatedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// promise more bytes than we send, then hang up
		w.Header().Set("Content-Length", "500")
		w.Write([]byte(`{"status":true`))
	}))
	defer srv.Close()

	c := New(srv.URL, "sk_test", time.Second)
	_, err := c.InitializeTransaction(context.Background(), InitializeRequest{Amount: 100, Email: "x@y.z"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read response")
}

func TestVerifyTransaction(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/transaction/verify/ref-42", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  true,
			"message": "Verification successful",
			"data": map[string]interface{}{
				"id":        99,
				"status":    "success",
				"reference": "ref-42",
				"amount":    500000,
			},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, "sk_test", time.Second)
	data, err := c.VerifyTransaction(context.Background(), "ref-42")
	require.NoError(t, err)
	assert.Equal(t, "success", data.Status)
	assert.EqualValues(t, 99, data.ID)
	assert.EqualValues(t, 500000, data.Amount)
}

func TestSignatureRoundTrip(t *testing.T) {
	body := []byte(`{"event":"charge.success","data":{"reference":"TXN123","id":99}}`)
	sig := Signature("secret", body)
	assert.Len(t, sig, 128) // sha512 hex

	assert.True(t, VerifySignature("secret", body, sig))
	assert.False(t, VerifySignature("other-secret", body, sig))
	assert.False(t, VerifySignature("secret", body, ""))

	// any change to the raw bytes breaks the digest
	tampered := append([]byte{}, body...)
	tampered[10] ^= 0x01
	assert.False(t, VerifySignature("secret", tampered, sig))
}
