package payment_webhook

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/m04kA/LCP-AppointmentService/internal/domain"
	apptstorage "github.com/m04kA/LCP-AppointmentService/internal/infra/storage/appointment"
	storage "github.com/m04kA/LCP-AppointmentService/internal/infra/storage/payment"
)

// Завершающие и неуспешные события провайдера. Остальные типы
// подтверждаются без обработки.
const (
	eventPaymentCaptured = "payment.captured"
	eventOrderPaid       = "order.paid"
	eventPaymentFailed   = "payment.failed"
)

// UseCase асинхронная обработка вебхуков платежного провайдера
type UseCase struct {
	payments     PaymentRepository
	appointments AppointmentRepository
	verifier     SignatureVerifier
	txManager    TransactionManager
	logger       Logger
}

func NewUseCase(
	payments PaymentRepository,
	appointments AppointmentRepository,
	verifier SignatureVerifier,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		payments:     payments,
		appointments: appointments,
		verifier:     verifier,
		txManager:    txManager,
		logger:       logger,
	}
}

// Execute проверяет подпись вебхука и применяет переход состояния платежа.
// Неизвестные типы событий и события по неизвестным платежам подтверждаются
// без ошибки, чтобы провайдер не ретраил их бесконечно. Повторная доставка
// уже обработанного события безопасна.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Подпись считается по сырому телу запроса
	if !uc.verifier.VerifyWebhookSignature(req.Body, req.Signature) {
		uc.logger.Warn("payment_webhook: signature mismatch, possible tampering")
		return nil, ErrInvalidSignature
	}

	// 2. Разбор конверта события
	var envelope webhookEnvelope
	if err := json.Unmarshal(req.Body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if envelope.Event == "" {
		return nil, fmt.Errorf("%w: missing event type", ErrInvalidPayload)
	}

	resp := &Response{Event: envelope.Event}

	switch envelope.Event {
	case eventPaymentCaptured, eventOrderPaid:
		processed, err := uc.applyCompletion(ctx, envelope.Payload.Payment.Entity)
		if err != nil {
			return nil, err
		}
		resp.Processed = processed
	case eventPaymentFailed:
		processed, err := uc.applyFailure(ctx, envelope.Payload.Payment.Entity)
		if err != nil {
			return nil, err
		}
		resp.Processed = processed
	default:
		uc.logger.Info("payment_webhook: unhandled event %s, acknowledged", envelope.Event)
	}

	return resp, nil
}

// applyCompletion переводит платеж в COMPLETED и подтверждает запись
func (uc *UseCase) applyCompletion(ctx context.Context, entity paymentEntity) (bool, error) {
	if entity.OrderID == "" && entity.ID == "" {
		return false, fmt.Errorf("%w: payment entity has no identifiers", ErrInvalidPayload)
	}

	processed := false
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		payment, txErr := uc.findPayment(txCtx, entity)
		if txErr != nil {
			return txErr
		}
		if payment == nil {
			uc.logger.Warn("payment_webhook: no payment order for provider order %s, acknowledged", entity.OrderID)
			return nil
		}

		if payment.Status == domain.PaymentCompleted {
			uc.logger.Info("payment_webhook: payment %s already completed, no-op", payment.ID)
			return nil
		}

		// Запись блокируется и проверяется до перевода платежа: отмененная
		// или завершенная запись не возвращается в CONFIRMED, захват средств
		// при этом фиксируется для последующей сверки и возврата
		confirmAppointment := false
		if payment.AppointmentID != nil {
			appointment, txErr := uc.appointments.GetByID(txCtx, *payment.AppointmentID)
			switch {
			case txErr == nil && appointment.IsTerminal():
				uc.logger.Warn("payment_webhook: appointment %s is %s, payment %s recorded without confirmation",
					appointment.ID, appointment.Status, payment.ID)
			case txErr == nil:
				confirmAppointment = true
			case errors.Is(txErr, apptstorage.ErrAppointmentNotFound):
				uc.logger.Warn("payment_webhook: appointment %s for payment %s not found, completing payment only",
					*payment.AppointmentID, payment.ID)
			default:
				return fmt.Errorf("%w: applyCompletion - get appointment: %v", ErrInternal, txErr)
			}
		}

		if txErr := uc.payments.MarkCompleted(txCtx, payment.ID, entity.ID, nil); txErr != nil {
			return fmt.Errorf("%w: applyCompletion - mark completed: %v", ErrInternal, txErr)
		}

		if confirmAppointment {
			if txErr := uc.appointments.Confirm(txCtx, *payment.AppointmentID, payment.ID); txErr != nil {
				return fmt.Errorf("%w: applyCompletion - confirm appointment: %v", ErrInternal, txErr)
			}
		}

		uc.logger.Info("payment_webhook: payment %s completed via webhook", payment.ID)
		processed = true
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInternal) || errors.Is(err, ErrInvalidPayload) {
			return false, err
		}
		return false, fmt.Errorf("%w: applyCompletion - transaction: %v", ErrInternal, err)
	}

	return processed, nil
}

// applyFailure помечает платеж неуспешным
func (uc *UseCase) applyFailure(ctx context.Context, entity paymentEntity) (bool, error) {
	processed := false
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		payment, txErr := uc.findPayment(txCtx, entity)
		if txErr != nil {
			return txErr
		}
		if payment == nil {
			uc.logger.Warn("payment_webhook: no payment order for failed provider payment %s, acknowledged", entity.ID)
			return nil
		}

		// Завершенный платеж не откатывается задним числом
		if payment.IsTerminal() {
			uc.logger.Info("payment_webhook: payment %s already terminal (%s), no-op", payment.ID, payment.Status)
			return nil
		}

		if txErr := uc.payments.MarkFailed(txCtx, payment.ID); txErr != nil {
			return fmt.Errorf("%w: applyFailure - mark failed: %v", ErrInternal, txErr)
		}

		uc.logger.Info("payment_webhook: payment %s marked failed via webhook", payment.ID)
		processed = true
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInternal) {
			return false, err
		}
		return false, fmt.Errorf("%w: applyFailure - transaction: %v", ErrInternal, err)
	}

	return processed, nil
}

// findPayment ищет платеж по идентификатору заказа провайдера,
// затем по идентификатору платежа. Возвращает nil без ошибки,
// если платеж не найден.
func (uc *UseCase) findPayment(ctx context.Context, entity paymentEntity) (*domain.PaymentOrder, error) {
	if entity.OrderID != "" {
		payment, err := uc.payments.GetByProviderOrderID(ctx, entity.OrderID)
		if err == nil {
			return payment, nil
		}
		if !errors.Is(err, storage.ErrPaymentNotFound) {
			return nil, fmt.Errorf("%w: findPayment - by provider order: %v", ErrInternal, err)
		}
	}

	if entity.ID != "" {
		payment, err := uc.payments.GetByProviderPaymentID(ctx, entity.ID)
		if err == nil {
			return payment, nil
		}
		if !errors.Is(err, storage.ErrPaymentNotFound) {
			return nil, fmt.Errorf("%w: findPayment - by provider payment: %v", ErrInternal, err)
		}
	}

	return nil, nil
}
