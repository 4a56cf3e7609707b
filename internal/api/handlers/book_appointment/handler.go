package book_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/LCP-AppointmentService/internal/api/handlers"
	"github.com/m04kA/LCP-AppointmentService/internal/api/middleware"
	bookAppointment "github.com/m04kA/LCP-AppointmentService/internal/usecase/book_appointment"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidScheduledAt = "некорректный формат scheduledAt, ожидается ISO 8601"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgLawyerNotFound     = "юрист не найден"
	msgSlotNotAvailable   = "выбранный временной слот недоступен"
	msgInvalidInput       = "некорректные данные записи"
	msgPaymentUnavailable = "платежный сервис временно недоступен, попробуйте позже"
)

type Handler struct {
	useCase BookAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase BookAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	clientID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /appointments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(clientID)
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse scheduledAt: %v", err)
		handlers.RespondBadRequest(w, msgInvalidScheduledAt)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, bookAppointment.ErrSlotNotAvailable):
			h.logger.Warn("POST /appointments - Slot not available: lawyer_id=%s, client_id=%s", req.LawyerID, clientID)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, bookAppointment.ErrLawyerNotFound):
			h.logger.Warn("POST /appointments - Lawyer not found: lawyer_id=%s", req.LawyerID)
			handlers.RespondNotFound(w, msgLawyerNotFound)

		case errors.Is(err, bookAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: client_id=%s, error=%v", clientID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, bookAppointment.ErrPaymentUnavailable):
			h.logger.Error("POST /appointments - Payment provider unavailable: client_id=%s, error=%v", clientID, err)
			handlers.RespondBadGateway(w, msgPaymentUnavailable)

		default:
			h.logger.Error("POST /appointments - Failed to book appointment: lawyer_id=%s, client_id=%s, error=%v",
				req.LawyerID, clientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created successfully: appointment_id=%s, lawyer_id=%s, client_id=%s",
		result.Appointment.ID, result.Appointment.LawyerID, clientID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
