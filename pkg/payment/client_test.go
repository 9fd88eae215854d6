package payment_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/captainblair/vertex/pkg/httpclient"
	"github.com/captainblair/vertex/pkg/payment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newPoller(baseURL string) *payment.Client {
	cfg := payment.Config{
		BaseURL:      baseURL,
		PollInterval: time.Millisecond,
		MaxAttempts:  30,
	}
	return payment.NewClient(cfg, httpclient.NewHTTPClient(time.Second), zap.NewNop())
}

func TestClient_TriggerStkPush(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/stkpush", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		w.Write([]byte(`{"MerchantRequestID": "MRID-1", "CheckoutRequestID": "CRID-1", "ResponseCode": "0"}`))
	}))
	defer server.Close()

	resp, err := newPoller(server.URL).TriggerStkPush(context.Background(), "254712345678", 500)
	require.NoError(t, err)
	assert.Equal(t, "CRID-1", resp.CheckoutRequestID)
	assert.Equal(t, "0", resp.ResponseCode)
}

func TestClient_TriggerStkPush_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "STK Push Failed"}`))
	}))
	defer server.Close()

	_, err := newPoller(server.URL).TriggerStkPush(context.Background(), "254712345678", 500)
	require.Error(t, err)
}

func TestClient_VerifyPayment(t *testing.T) {
	t.Run("success on sixth poll stops polling immediately", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) < 6 {
				w.Write([]byte(`{"status": "PENDING"}`))
				return
			}
			w.Write([]byte(`{"status": "SUCCESS"}`))
		}))
		defer server.Close()

		verdict := newPoller(server.URL).VerifyPayment(context.Background(), "CRID-1")

		assert.Equal(t, payment.VerdictSuccess, verdict)
		assert.Equal(t, int32(6), calls.Load())
	})

	t.Run("legacy COMPLETED spelling counts as success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"status": "COMPLETED"}`))
		}))
		defer server.Close()

		verdict := newPoller(server.URL).VerifyPayment(context.Background(), "CRID-1")
		assert.Equal(t, payment.VerdictSuccess, verdict)
	})

	t.Run("failed answer returns immediately", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.Write([]byte(`{"status": "FAILED"}`))
		}))
		defer server.Close()

		verdict := newPoller(server.URL).VerifyPayment(context.Background(), "CRID-1")

		assert.Equal(t, payment.VerdictFailed, verdict)
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("exhausting all attempts yields failure", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.Write([]byte(`{"status": "UNKNOWN"}`))
		}))
		defer server.Close()

		verdict := newPoller(server.URL).VerifyPayment(context.Background(), "CRID-1")

		assert.Equal(t, payment.VerdictFailed, verdict)
		assert.Equal(t, int32(30), calls.Load())
	})

	t.Run("transient errors consume attempts without aborting", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) < 3 {
				w.WriteHeader(http.StatusBadGateway)
				return
			}
			w.Write([]byte(`{"status": "SUCCESS"}`))
		}))
		defer server.Close()

		verdict := newPoller(server.URL).VerifyPayment(context.Background(), "CRID-1")

		assert.Equal(t, payment.VerdictSuccess, verdict)
		assert.Equal(t, int32(3), calls.Load())
	})
}
