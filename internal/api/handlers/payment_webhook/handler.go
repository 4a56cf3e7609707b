package payment_webhook

import (
	"errors"
	"io"
	"net/http"

	"github.com/m04kA/LCP-AppointmentService/internal/api/handlers"
	paymentWebhook "github.com/m04kA/LCP-AppointmentService/internal/usecase/payment_webhook"
)

const (
	msgInvalidSignature = "подпись вебхука не прошла проверку"
	msgInvalidPayload   = "некорректное тело вебхука"

	headerSignature = "X-Razorpay-Signature"

	// maxBodySize ограничивает размер тела вебхука
	maxBodySize = 1 << 20
)

type Handler struct {
	useCase PaymentWebhookUseCase
	logger  Logger
}

func NewHandler(useCase PaymentWebhookUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/webhooks/payments
//
// Подпись считается по сырому телу, поэтому тело читается целиком
// до какого-либо разбора JSON.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		h.logger.Warn("POST /webhooks/payments - Failed to read body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPayload)
		return
	}
	defer r.Body.Close()

	result, err := h.useCase.Execute(r.Context(), &paymentWebhook.Request{
		Body:      body,
		Signature: r.Header.Get(headerSignature),
	})
	if err != nil {
		switch {
		case errors.Is(err, paymentWebhook.ErrInvalidSignature):
			h.logger.Warn("POST /webhooks/payments - Invalid signature")
			handlers.RespondBadRequest(w, msgInvalidSignature)

		case errors.Is(err, paymentWebhook.ErrInvalidPayload):
			h.logger.Warn("POST /webhooks/payments - Invalid payload: %v", err)
			handlers.RespondBadRequest(w, msgInvalidPayload)

		default:
			h.logger.Error("POST /webhooks/payments - Failed to process webhook: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /webhooks/payments - Webhook acknowledged: event=%s, processed=%t",
		result.Event, result.Processed)
	handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
