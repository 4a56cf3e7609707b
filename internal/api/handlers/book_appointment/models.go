package book_appointment

import (
	"time"

	"github.com/m04kA/LCP-AppointmentService/internal/domain"
	apptModels "github.com/m04kA/LCP-AppointmentService/internal/service/appointments/models"
	bookAppointment "github.com/m04kA/LCP-AppointmentService/internal/usecase/book_appointment"
)

// CreateAppointmentRequest HTTP запрос на создание записи
type CreateAppointmentRequest struct {
	LawyerID        string  `json:"lawyerId"`
	ScheduledAt     string  `json:"scheduledAt"` // ISO 8601 format
	DurationMinutes int     `json:"durationMinutes,omitempty"`
	Notes           *string `json:"notes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest(clientID string) (*bookAppointment.Request, error) {
	scheduledAt, err := time.Parse(time.RFC3339, r.ScheduledAt)
	if err != nil {
		return nil, err
	}

	duration := r.DurationMinutes
	if duration == 0 {
		duration = domain.DefaultDurationMinutes
	}

	return &bookAppointment.Request{
		LawyerID:        r.LawyerID,
		ClientID:        clientID,
		ScheduledAt:     scheduledAt,
		DurationMinutes: duration,
		Notes:           r.Notes,
	}, nil
}

// CreateAppointmentResponse HTTP ответ с созданной записью и платежом
type CreateAppointmentResponse struct {
	Appointment *apptModels.AppointmentResponse `json:"appointment"`
	Payment     *PaymentOrderResponse           `json:"payment"`
}

// PaymentOrderResponse модель платежного заказа в ответе
type PaymentOrderResponse struct {
	ID              string  `json:"id"`
	Amount          int64   `json:"amount"`
	Currency        string  `json:"currency"`
	Status          string  `json:"status"`
	ProviderOrderID *string `json:"providerOrderId,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *bookAppointment.Response) *CreateAppointmentResponse {
	out := &CreateAppointmentResponse{
		Appointment: apptModels.FromDomainAppointment(resp.Appointment),
	}

	if resp.Payment != nil {
		out.Payment = &PaymentOrderResponse{
			ID:              resp.Payment.ID,
			Amount:          resp.Payment.Amount,
			Currency:        resp.Payment.Currency,
			Status:          string(resp.Payment.Status),
			ProviderOrderID: resp.Payment.ProviderOrderID,
		}
	}

	return out
}
