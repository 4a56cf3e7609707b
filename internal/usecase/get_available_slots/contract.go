package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/LCP-AppointmentService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	// GetByLawyerWithFilter получает записи юриста за период (read-only снапшот)
	GetByLawyerWithFilter(ctx context.Context, filter domain.LawyerAppointmentsFilter) ([]*domain.Appointment, error)
}

// ProfileServiceClient интерфейс клиента для ProfileService
type ProfileServiceClient interface {
	// ResolveLawyerUserID приводит user id или id профиля юриста к каноническому user id
	ResolveLawyerUserID(ctx context.Context, idOrProfileID string) (string, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
