package razorpay

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func signHex(t *testing.T, payload, secret string) string {
	t.Helper()
	mac := hmac.New(sha256.New, []byte(secret))
	_, err := mac.Write([]byte(payload))
	require.NoError(t, err)
	return hex.EncodeToString(mac.Sum(nil))
}

func newTestClient(baseURL string) *Client {
	return NewClient(baseURL, "key_id", "key_secret", "webhook_secret", 5*time.Second, nopLogger{})
}

func TestVerifyPaymentSignature(t *testing.T) {
	client := newTestClient("")

	valid := signHex(t, "order_abc|pay_xyz", "key_secret")
	assert.True(t, client.VerifyPaymentSignature("order_abc", "pay_xyz", valid))

	// Подпись другим секретом
	forged := signHex(t, "order_abc|pay_xyz", "wrong_secret")
	assert.False(t, client.VerifyPaymentSignature("order_abc", "pay_xyz", forged))

	// Подпись от другой пары идентификаторов
	assert.False(t, client.VerifyPaymentSignature("order_other", "pay_xyz", valid))

	assert.False(t, client.VerifyPaymentSignature("order_abc", "pay_xyz", ""))
}

func TestVerifyWebhookSignature(t *testing.T) {
	client := newTestClient("")

	body := []byte(`{"event":"payment.captured"}`)
	valid := signHex(t, string(body), "webhook_secret")

	assert.True(t, client.VerifyWebhookSignature(body, valid))
	assert.False(t, client.VerifyWebhookSignature([]byte(`{"event":"tampered"}`), valid))
	assert.False(t, client.VerifyWebhookSignature(body, "not-hex"))
}

func TestCreateOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/orders", r.URL.Path)

		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "key_id", user)
		assert.Equal(t, "key_secret", pass)

		var req CreateOrderRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "pay-1", req.Receipt)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(Order{
			ID:       "order_abc",
			Amount:   req.Amount,
			Currency: req.Currency,
			Receipt:  req.Receipt,
			Status:   "created",
		})
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)

	order, err := client.CreateOrder(t.Context(), &CreateOrderRequest{
		Amount:   15000,
		Currency: "INR",
		Receipt:  "pay-1",
	})
	require.NoError(t, err)

	assert.Equal(t, "order_abc", order.ID)
	assert.Equal(t, int64(15000), order.Amount)
}

func TestCreateOrder_ServerErrorIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)

	_, err := client.CreateOrder(t.Context(), &CreateOrderRequest{Amount: 100, Currency: "INR", Receipt: "pay-1"})
	assert.ErrorIs(t, err, ErrProviderUnavailable)
}
