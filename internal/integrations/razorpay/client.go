package razorpay

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

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент платежного провайдера Razorpay.
// Реализует протокол, от которого зависит координатор бронирования:
// создание заказа, проверка подписи подтверждения, проверка подписи webhook.
type Client struct {
	baseURL       string
	keyID         string
	keySecret     string
	webhookSecret string
	httpClient    *http.Client
	log           Logger
}

// NewClient создает новый экземпляр клиента Razorpay
func NewClient(baseURL, keyID, keySecret, webhookSecret string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL:       baseURL,
		keyID:         keyID,
		keySecret:     keySecret,
		webhookSecret: webhookSecret,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// CreateOrder создает заказ у провайдера.
// Receipt используется как idempotency key: провайдер возвращает
// существующий заказ при повторе с тем же receipt.
func (c *Client) CreateOrder(ctx context.Context, req *CreateOrderRequest) (*Order, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/orders", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.SetBasicAuth(c.keyID, c.keySecret)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		if resp.StatusCode >= http.StatusInternalServerError {
			return nil, fmt.Errorf("%w: status code %d: %s", ErrProviderUnavailable, resp.StatusCode, string(respBody))
		}
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}

	var order Order
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	c.log.Info("Razorpay order created: order_id=%s, receipt=%s, amount=%d", order.ID, order.Receipt, order.Amount)
	return &order, nil
}

// VerifyPaymentSignature проверяет подпись подтверждения оплаты:
// HMAC-SHA256 hex от "orderId|paymentId" на секретном ключе
func (c *Client) VerifyPaymentSignature(orderID, paymentID, signature string) bool {
	expected := hmacHex([]byte(orderID+"|"+paymentID), c.keySecret)
	return hmac.Equal([]byte(expected), []byte(signature))
}

// VerifyWebhookSignature проверяет подпись webhook:
// HMAC-SHA256 hex от сырого тела запроса на webhook-секрете
func (c *Client) VerifyWebhookSignature(body []byte, signature string) bool {
	expected := hmacHex(body, c.webhookSecret)
	return hmac.Equal([]byte(expected), []byte(signature))
}

// hmacHex вычисляет HMAC-SHA256 в hex-кодировке
func hmacHex(payload []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}
