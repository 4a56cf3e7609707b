package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/LCP-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/LCP-AppointmentService/internal/infra/storage/appointment"
	"github.com/m04kA/LCP-AppointmentService/internal/service/appointments/models"
)

// roleLawyer роль юриста в заголовке X-User-Role
const roleLawyer = "LAWYER"

// Config правила переходов статусов записи
type Config struct {
	// AllowCancelCompleted разрешает отмену завершенной записи
	AllowCancelCompleted bool
	// RequireConfirmedForAttend требует подтвержденной оплаты перед завершением
	RequireConfirmedForAttend bool
}

// Service сервис для работы с записями на консультации
type Service struct {
	appointmentRepo AppointmentRepository
	txManager       TransactionManager
	cfg             Config
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	txManager TransactionManager,
	cfg Config,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		txManager:       txManager,
		cfg:             cfg,
		logger:          logger,
	}
}

// GetByID получает запись по ID
// Пользователь может видеть только свою запись: как клиент или как юрист
func (s *Service) GetByID(ctx context.Context, id string, userID string) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%s for user=%s", id, userID)

	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%s not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if appointment.ClientID != userID && appointment.LawyerID != userID {
		s.logger.Warn("GetByID: access denied for user=%s to appointment id=%s", userID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainAppointment(appointment), nil
}

// GetUserAppointments получает историю записей пользователя.
// Для юриста возвращаются записи, где он исполнитель, для остальных —
// записи, где пользователь клиент. Опционально фильтрует по статусу.
func (s *Service) GetUserAppointments(ctx context.Context, req *models.GetUserAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetUserAppointments: fetching appointments for user=%s, role=%s, status=%v",
		req.UserID, req.Role, req.Status)

	var statuses []domain.AppointmentStatus
	if req.Status != nil {
		status, err := models.ToDomainAppointmentStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserAppointments: invalid status=%s for user=%s", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		statuses = []domain.AppointmentStatus{status}
	}

	var (
		appointments []*domain.Appointment
		err          error
	)
	if req.Role == roleLawyer {
		appointments, err = s.appointmentRepo.GetByLawyerWithFilter(ctx, domain.LawyerAppointmentsFilter{
			LawyerID: req.UserID,
			Statuses: statuses,
		})
	} else {
		appointments, err = s.appointmentRepo.GetByClientID(ctx, req.UserID, statuses)
	}
	if err != nil {
		s.logger.Error("GetUserAppointments: repository error for user=%s: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserAppointments: successfully fetched %d appointments for user=%s", len(appointments), req.UserID)
	return models.FromDomainAppointmentList(appointments), nil
}

// Cancel отменяет запись на консультацию.
// Отменить может клиент или юрист записи. Проверка статуса и переход
// выполняются в одной транзакции.
func (s *Service) Cancel(ctx context.Context, appointmentID string, userID string) error {
	s.logger.Info("Cancel: cancelling appointment id=%s by user=%s", appointmentID, userID)

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		appointment, txErr := s.getForUpdate(txCtx, appointmentID)
		if txErr != nil {
			return txErr
		}

		if appointment.ClientID != userID && appointment.LawyerID != userID {
			s.logger.Warn("Cancel: access denied for user=%s to appointment id=%s", userID, appointmentID)
			return ErrAccessDenied
		}

		if !appointment.CanBeCancelled(s.cfg.AllowCancelCompleted) {
			s.logger.Warn("Cancel: appointment id=%s cannot be cancelled, status=%s", appointmentID, appointment.Status)
			return ErrCannotCancel
		}

		if txErr := s.appointmentRepo.UpdateStatus(txCtx, appointmentID, domain.StatusCancelled); txErr != nil {
			s.logger.Error("Cancel: repository error for appointment id=%s: %v", appointmentID, txErr)
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, txErr)
		}

		return nil
	})
	if err != nil {
		return s.mapTxError(err, "Cancel")
	}

	s.logger.Info("Cancel: successfully cancelled appointment id=%s", appointmentID)
	return nil
}

// MarkAttended помечает консультацию состоявшейся.
// Доступно только юристу записи.
func (s *Service) MarkAttended(ctx context.Context, appointmentID string, userID string) error {
	s.logger.Info("MarkAttended: completing appointment id=%s by user=%s", appointmentID, userID)

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		appointment, txErr := s.getForUpdate(txCtx, appointmentID)
		if txErr != nil {
			return txErr
		}

		if appointment.LawyerID != userID {
			s.logger.Warn("MarkAttended: access denied for user=%s to appointment id=%s", userID, appointmentID)
			return ErrAccessDenied
		}

		if !appointment.CanBeAttended(s.cfg.RequireConfirmedForAttend) {
			s.logger.Warn("MarkAttended: appointment id=%s cannot be completed, status=%s", appointmentID, appointment.Status)
			return ErrCannotAttend
		}

		if txErr := s.appointmentRepo.UpdateStatus(txCtx, appointmentID, domain.StatusCompleted); txErr != nil {
			s.logger.Error("MarkAttended: repository error for appointment id=%s: %v", appointmentID, txErr)
			return fmt.Errorf("%w: MarkAttended - repository error: %v", ErrInternal, txErr)
		}

		return nil
	})
	if err != nil {
		return s.mapTxError(err, "MarkAttended")
	}

	s.logger.Info("MarkAttended: successfully completed appointment id=%s", appointmentID)
	return nil
}

// Вспомогательные методы

// getForUpdate читает запись внутри транзакции (репозиторий добавляет FOR UPDATE)
func (s *Service) getForUpdate(ctx context.Context, id string) (*domain.Appointment, error) {
	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("getForUpdate: appointment id=%s not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("getForUpdate: repository error for appointment id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: getForUpdate - repository error: %v", ErrInternal, err)
	}
	return appointment, nil
}

// mapTxError пропускает доменные ошибки наружу как есть
func (s *Service) mapTxError(err error, method string) error {
	if errors.Is(err, ErrAppointmentNotFound) ||
		errors.Is(err, ErrAccessDenied) ||
		errors.Is(err, ErrCannotCancel) ||
		errors.Is(err, ErrCannotAttend) ||
		errors.Is(err, ErrInternal) {
		return err
	}
	return fmt.Errorf("%w: %s - transaction error: %v", ErrInternal, method, err)
}
