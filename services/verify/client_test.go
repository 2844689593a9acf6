package verify

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

func vendorServer(t *testing.T, checkStatus string) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		w.Header().Set("Content-Type", "application/json")

		switch r.URL.Path {
		case "/Services/svc-1/Verifications":
			assert.Equal(t, "+15551234567", r.FormValue("To"))
			assert.Equal(t, "sms", r.FormValue("Channel"))
			json.NewEncoder(w).Encode(map[string]string{"sid": "ver-123", "status": "pending"})
		case "/Services/svc-1/VerificationCheck":
			assert.Equal(t, "+15551234567", r.FormValue("To"))
			assert.NotEmpty(t, r.FormValue("Code"))
			json.NewEncoder(w).Encode(map[string]string{"sid": "ver-123", "status": checkStatus})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestSendCode(t *testing.T) {
	server := vendorServer(t, "approved")
	defer server.Close()

	client := NewClient(server.URL, "test-key", "svc-1")
	sid, err := client.SendCode(context.Background(), "+15551234567")
	require.NoError(t, err)
	assert.Equal(t, "ver-123", sid)
}

func TestCheckCodeApproved(t *testing.T) {
	server := vendorServer(t, "approved")
	defer server.Close()

	client := NewClient(server.URL, "test-key", "svc-1")
	approved, err := client.CheckCode(context.Background(), "+15551234567", "123456")
	require.NoError(t, err)
	assert.True(t, approved)
}

func TestCheckCodeRejected(t *testing.T) {
	server := vendorServer(t, "pending")
	defer server.Close()

	client := NewClient(server.URL, "test-key", "svc-1")
	approved, err := client.CheckCode(context.Background(), "+15551234567", "000000")
	require.NoError(t, err)
	assert.False(t, approved)
}

func TestVendorFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "svc-1")

	_, err := client.SendCode(context.Background(), "+15551234567")
	assert.ErrorIs(t, err, ErrVendor)

	_, err = client.CheckCode(context.Background(), "+15551234567", "123456")
	assert.ErrorIs(t, err, ErrVendor)
}

func TestRateLimiter(t *testing.T) {
	limiter := NewRateLimiter(50 * time.Millisecond)

	assert.True(t, limiter.Allow("+15551234567"))
	assert.False(t, limiter.Allow("+15551234567"))

	// Different keys don't interfere.
	assert.True(t, limiter.Allow("+15559876543"))

	time.Sleep(60 * time.Millisecond)
	assert.True(t, limiter.Allow("+15551234567"))
}
