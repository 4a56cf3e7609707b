package confirm_payment

import (
	"errors"
	"net/http"

	"github.com/m04kA/LCP-AppointmentService/internal/api/handlers"
	confirmPayment "github.com/m04kA/LCP-AppointmentService/internal/usecase/confirm_payment"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidSignature   = "подпись платежа не прошла проверку"
	msgPaymentNotFound    = "платеж не найден"
	msgPaymentFailed      = "платеж уже помечен как неуспешный"
	msgInvalidInput       = "некорректные данные подтверждения"
	msgNotConfirmable     = "запись не ожидает оплаты"
)

type Handler struct {
	useCase ConfirmPaymentUseCase
	logger  Logger
}

func NewHandler(useCase ConfirmPaymentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/payments/confirm
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req ConfirmPaymentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /payments/confirm - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, confirmPayment.ErrInvalidSignature):
			h.logger.Warn("POST /payments/confirm - Invalid signature: appointment_id=%s", req.AppointmentID)
			handlers.RespondBadRequest(w, msgInvalidSignature)

		case errors.Is(err, confirmPayment.ErrPaymentNotFound):
			h.logger.Warn("POST /payments/confirm - Payment not found: appointment_id=%s", req.AppointmentID)
			handlers.RespondNotFound(w, msgPaymentNotFound)

		case errors.Is(err, confirmPayment.ErrPaymentFailed):
			h.logger.Warn("POST /payments/confirm - Payment already failed: appointment_id=%s", req.AppointmentID)
			handlers.RespondConflict(w, msgPaymentFailed)

		case errors.Is(err, confirmPayment.ErrAppointmentNotConfirmable):
			h.logger.Warn("POST /payments/confirm - Appointment not awaiting payment: appointment_id=%s", req.AppointmentID)
			handlers.RespondConflict(w, msgNotConfirmable)

		case errors.Is(err, confirmPayment.ErrInvalidInput):
			h.logger.Warn("POST /payments/confirm - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /payments/confirm - Failed to confirm payment: appointment_id=%s, error=%v",
				req.AppointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /payments/confirm - Payment confirmed: payment_id=%s, appointment_id=%s",
		result.PaymentID, result.AppointmentID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
