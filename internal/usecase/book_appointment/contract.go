package book_appointment

import (
	"context"
	"time"

	"github.com/m04kA/LCP-AppointmentService/internal/domain"
	"github.com/m04kA/LCP-AppointmentService/internal/integrations/razorpay"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
	GetByLawyerWithFilter(ctx context.Context, filter domain.LawyerAppointmentsFilter) ([]*domain.Appointment, error)
}

// PaymentRepository интерфейс репозитория платежных заказов
type PaymentRepository interface {
	Create(ctx context.Context, order *domain.PaymentOrder) (*domain.PaymentOrder, error)
	SetProviderOrder(ctx context.Context, id string, providerOrderID string, metadata map[string]string) error
}

// ProfileServiceClient интерфейс клиента для ProfileService
type ProfileServiceClient interface {
	ResolveLawyerUserID(ctx context.Context, idOrProfileID string) (string, error)
	GetConsultationFeeWithGracefulDegradation(ctx context.Context, lawyerUserID string) (*int64, error)
}

// PaymentProviderClient интерфейс платежного провайдера
type PaymentProviderClient interface {
	CreateOrder(ctx context.Context, req *razorpay.CreateOrderRequest) (*razorpay.Order, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
