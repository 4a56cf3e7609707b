package book_appointment

import (
	"time"

	"github.com/m04kA/LCP-AppointmentService/internal/domain"
)

// Request запрос на создание записи на консультацию
type Request struct {
	LawyerID        string
	ClientID        string
	ScheduledAt     time.Time
	DurationMinutes int
	Notes           *string
}

// Response результат создания записи: запись и платежный заказ
type Response struct {
	Appointment *domain.Appointment
	Payment     *domain.PaymentOrder
}
