package book_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/LCP-AppointmentService/internal/domain"
	"github.com/m04kA/LCP-AppointmentService/internal/integrations/profileservice"
	"github.com/m04kA/LCP-AppointmentService/internal/integrations/razorpay"
	"github.com/m04kA/LCP-AppointmentService/pkg/ptr"
)

// UseCase создание записи на консультацию с платежным заказом
type UseCase struct {
	appointments AppointmentRepository
	payments     PaymentRepository
	profileSvc   ProfileServiceClient
	provider     PaymentProviderClient
	txManager    TransactionManager
	timeProvider TimeProvider
	currency     string
	defaultFee   int64
	logger       Logger
}

func NewUseCase(
	appointments AppointmentRepository,
	payments PaymentRepository,
	profileSvc ProfileServiceClient,
	provider PaymentProviderClient,
	txManager TransactionManager,
	timeProvider TimeProvider,
	currency string,
	defaultFee int64,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointments: appointments,
		payments:     payments,
		profileSvc:   profileSvc,
		provider:     provider,
		txManager:    txManager,
		timeProvider: timeProvider,
		currency:     currency,
		defaultFee:   defaultFee,
		logger:       logger,
	}
}

// Execute создает запись на консультацию и платежный заказ.
//
// Запись создается в статусе PENDING внутри SERIALIZABLE-транзакции,
// которая гарантирует отсутствие двойного бронирования. Платежный заказ
// у провайдера создается после коммита: при сбое провайдера запись
// остается в PENDING и возвращается ErrPaymentUnavailable.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	now := uc.timeProvider.Now()
	if !req.ScheduledAt.After(now) {
		return nil, fmt.Errorf("%w: scheduledAt must be in the future", ErrInvalidInput)
	}

	// 2. Разрешаем идентификатор юриста в канонический userID
	lawyerUserID, err := uc.profileSvc.ResolveLawyerUserID(ctx, req.LawyerID)
	if err != nil {
		if errors.Is(err, profileservice.ErrLawyerNotFound) || errors.Is(err, profileservice.ErrUserNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrLawyerNotFound, req.LawyerID)
		}
		uc.logger.Error("book_appointment: Execute - failed to resolve lawyer %s: %v", req.LawyerID, err)
		return nil, fmt.Errorf("%w: Execute - resolve lawyer: %v", ErrInternal, err)
	}

	// 3. Проверка конфликтов и создание записи атомарно
	var appointment *domain.Appointment
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		dayStart := time.Date(req.ScheduledAt.Year(), req.ScheduledAt.Month(), req.ScheduledAt.Day(),
			0, 0, 0, 0, req.ScheduledAt.Location())
		dayEnd := dayStart.Add(24 * time.Hour)

		existing, txErr := uc.appointments.GetByLawyerWithFilter(txCtx, domain.LawyerAppointmentsFilter{
			LawyerID: lawyerUserID,
			From:     &dayStart,
			To:       &dayEnd,
			Statuses: domain.BlockingStatuses,
		})
		if txErr != nil {
			return fmt.Errorf("%w: Execute - load appointments: %v", ErrInternal, txErr)
		}

		candidateEnd := req.ScheduledAt.Add(time.Duration(req.DurationMinutes) * time.Minute)
		for _, appt := range existing {
			if appt.Overlaps(req.ScheduledAt, candidateEnd, 0) {
				return fmt.Errorf("%w: %s at %s", ErrSlotNotAvailable,
					lawyerUserID, req.ScheduledAt.Format(time.RFC3339))
			}
		}

		created, txErr := uc.appointments.Create(txCtx, &domain.Appointment{
			LawyerID:        lawyerUserID,
			ClientID:        req.ClientID,
			ScheduledAt:     req.ScheduledAt,
			DurationMinutes: req.DurationMinutes,
			Status:          domain.StatusPending,
			Notes:           req.Notes,
		})
		if txErr != nil {
			return fmt.Errorf("%w: Execute - create appointment: %v", ErrInternal, txErr)
		}

		appointment = created
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrSlotNotAvailable) || errors.Is(err, ErrInternal) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: Execute - transaction: %v", ErrInternal, err)
	}

	uc.logger.Info("book_appointment: created appointment %s for lawyer %s", appointment.ID, lawyerUserID)

	// 4. Стоимость консультации из профиля юриста
	amount := uc.defaultFee
	fee, err := uc.profileSvc.GetConsultationFeeWithGracefulDegradation(ctx, lawyerUserID)
	if err != nil {
		uc.logger.Warn("book_appointment: Execute - fee lookup degraded for lawyer %s, using default: %v", lawyerUserID, err)
	} else if fee != nil {
		amount = *fee
	}

	// 5. Платежный заказ в локальном хранилище
	payment, err := uc.payments.Create(ctx, &domain.PaymentOrder{
		UserID:        req.ClientID,
		AppointmentID: ptr.Ptr(appointment.ID),
		Amount:        amount,
		Currency:      uc.currency,
		Provider:      domain.ProviderRazorpay,
		Status:        domain.PaymentPending,
	})
	if err != nil {
		uc.logger.Error("book_appointment: Execute - failed to create payment order for appointment %s: %v", appointment.ID, err)
		return nil, fmt.Errorf("%w: Execute - create payment order: %v", ErrInternal, err)
	}

	// 6. Заказ у платежного провайдера
	order, err := uc.provider.CreateOrder(ctx, &razorpay.CreateOrderRequest{
		Amount:   amount,
		Currency: uc.currency,
		Receipt:  payment.ID,
		Notes:    map[string]string{"appointment_id": appointment.ID},
	})
	if err != nil {
		// Запись остается в PENDING: клиент может повторить оплату позже
		uc.logger.Error("book_appointment: Execute - provider order failed for payment %s: %v", payment.ID, err)
		return nil, fmt.Errorf("%w: Execute - create provider order: %v", ErrPaymentUnavailable, err)
	}

	if err := uc.payments.SetProviderOrder(ctx, payment.ID, order.ID, map[string]string{
		"receipt": order.Receipt,
	}); err != nil {
		uc.logger.Error("book_appointment: Execute - failed to persist provider order %s: %v", order.ID, err)
		return nil, fmt.Errorf("%w: Execute - persist provider order: %v", ErrInternal, err)
	}

	payment.ProviderOrderID = ptr.Ptr(order.ID)

	uc.logger.Info("book_appointment: payment order %s (provider %s) created for appointment %s",
		payment.ID, order.ID, appointment.ID)

	return &Response{
		Appointment: appointment,
		Payment:     payment,
	}, nil
}
