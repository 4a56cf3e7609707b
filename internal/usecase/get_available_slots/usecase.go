package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/LCP-AppointmentService/internal/domain"
	profileClient "github.com/m04kA/LCP-AppointmentService/internal/integrations/profileservice"
)

// UseCase use case расчета доступных слотов для записи к юристу
type UseCase struct {
	appointmentRepo AppointmentRepository
	profileClient   ProfileServiceClient
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	profileClient ProfileServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		profileClient:   profileClient,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case расчета доступных слотов.
// Не имеет побочных эффектов: читает снапшот записей и считает слоты.
// Устаревший снапшот допустим - бронирование перепроверит конфликт атомарно.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: lawyer=%s, date=%s",
		req.LawyerID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	opts := req.Options.normalized()

	// 2. Разрешаем идентификатор юриста в канонический user id
	lawyerID, err := uc.profileClient.ResolveLawyerUserID(ctx, req.LawyerID)
	if err != nil {
		if errors.Is(err, profileClient.ErrLawyerNotFound) || errors.Is(err, profileClient.ErrUserNotFound) {
			uc.logger.Warn("GetAvailableSlots: lawyer id=%s not found", req.LawyerID)
			return nil, ErrLawyerNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to resolve lawyer id=%s: %v", req.LawyerID, err)
		return nil, fmt.Errorf("%w: failed to resolve lawyer: %v", ErrInternal, err)
	}

	// 3. Загружаем записи юриста на целевой день.
	// Отмененные записи слоты не занимают.
	dayStart, dayEnd := dayBounds(req.Date)
	filter := domain.LawyerAppointmentsFilter{
		LawyerID: lawyerID,
		From:     &dayStart,
		To:       &dayEnd,
		Statuses: domain.BlockingStatuses,
	}

	appointments, err := uc.appointmentRepo.GetByLawyerWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	// 4. Генерируем и фильтруем кандидатов
	now := uc.timeProvider.Now()
	slots, err := generateSlots(dayStart, opts, appointments, now)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}

	uc.logger.Info("GetAvailableSlots: generated %d slots for lawyer=%s, date=%s",
		len(slots), lawyerID, req.Date.Format(domain.DateFormat))

	return &Response{
		LawyerID: lawyerID,
		Date:     dayStart,
		Slots:    slots,
	}, nil
}
