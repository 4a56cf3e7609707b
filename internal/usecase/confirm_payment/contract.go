package confirm_payment

import (
	"context"

	"github.com/m04kA/LCP-AppointmentService/internal/domain"
)

// PaymentRepository интерфейс репозитория платежных заказов
type PaymentRepository interface {
	GetByAppointmentID(ctx context.Context, appointmentID string) (*domain.PaymentOrder, error)
	MarkCompleted(ctx context.Context, id string, providerPaymentID string, signature *string) error
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Appointment, error)
	Confirm(ctx context.Context, id string, paymentID string) error
}

// SignatureVerifier интерфейс проверки подписи платежа
type SignatureVerifier interface {
	VerifyPaymentSignature(orderID, paymentID, signature string) bool
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
