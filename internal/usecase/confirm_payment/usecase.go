package confirm_payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/LCP-AppointmentService/internal/domain"
	storage "github.com/m04kA/LCP-AppointmentService/internal/infra/storage/payment"
	"github.com/m04kA/LCP-AppointmentService/pkg/ptr"
)

// UseCase синхронное подтверждение оплаты после успешного чекаута
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

// Execute проверяет подпись провайдера и переводит платеж в COMPLETED,
// а связанную запись в CONFIRMED. Повторный вызов для уже завершенного
// платежа возвращает успех без изменений.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	// 2. Проверка подписи до обращения к хранилищу
	if !uc.verifier.VerifyPaymentSignature(req.ProviderOrderID, req.ProviderPaymentID, req.Signature) {
		uc.logger.Warn("confirm_payment: signature mismatch for order %s, possible tampering", req.ProviderOrderID)
		return nil, fmt.Errorf("%w: order %s", ErrInvalidSignature, req.ProviderOrderID)
	}

	// 3. Атомарный переход платежа и записи
	resp := &Response{AppointmentID: req.AppointmentID}
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		payment, txErr := uc.payments.GetByAppointmentID(txCtx, req.AppointmentID)
		if txErr != nil {
			if errors.Is(txErr, storage.ErrPaymentNotFound) {
				return fmt.Errorf("%w: appointment %s", ErrPaymentNotFound, req.AppointmentID)
			}
			return fmt.Errorf("%w: Execute - get payment: %v", ErrInternal, txErr)
		}

		resp.PaymentID = payment.ID

		switch payment.Status {
		case domain.PaymentCompleted:
			resp.AlreadyCompleted = true
			return nil
		case domain.PaymentFailed:
			return fmt.Errorf("%w: payment %s", ErrPaymentFailed, payment.ID)
		}

		// Отмененная или завершенная запись не возвращается в CONFIRMED.
		// Платеж остается PENDING, захват средств зафиксирует вебхук.
		appointment, txErr := uc.appointments.GetByID(txCtx, req.AppointmentID)
		if txErr != nil {
			return fmt.Errorf("%w: Execute - get appointment: %v", ErrInternal, txErr)
		}
		if appointment.IsTerminal() {
			uc.logger.Warn("confirm_payment: appointment %s is %s, refusing to confirm payment %s",
				appointment.ID, appointment.Status, payment.ID)
			return fmt.Errorf("%w: appointment %s is %s", ErrAppointmentNotConfirmable, appointment.ID, appointment.Status)
		}

		if txErr := uc.payments.MarkCompleted(txCtx, payment.ID, req.ProviderPaymentID, ptr.Ptr(req.Signature)); txErr != nil {
			return fmt.Errorf("%w: Execute - mark completed: %v", ErrInternal, txErr)
		}

		if txErr := uc.appointments.Confirm(txCtx, req.AppointmentID, payment.ID); txErr != nil {
			return fmt.Errorf("%w: Execute - confirm appointment: %v", ErrInternal, txErr)
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, ErrPaymentNotFound) || errors.Is(err, ErrPaymentFailed) ||
			errors.Is(err, ErrAppointmentNotConfirmable) || errors.Is(err, ErrInternal) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: Execute - transaction: %v", ErrInternal, err)
	}

	if resp.AlreadyCompleted {
		uc.logger.Info("confirm_payment: payment %s already completed, no-op", resp.PaymentID)
	} else {
		uc.logger.Info("confirm_payment: payment %s completed, appointment %s confirmed", resp.PaymentID, req.AppointmentID)
	}

	return resp, nil
}
