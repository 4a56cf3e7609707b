package mark_attended

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/LCP-AppointmentService/internal/api/handlers"
	"github.com/m04kA/LCP-AppointmentService/internal/api/middleware"
	"github.com/m04kA/LCP-AppointmentService/internal/service/appointments"
)

const (
	msgNotFound      = "запись не найдена"
	msgMissingUserID = "отсутствует ID пользователя"
	msgForbidden     = "доступ запрещен"
	msgCannotAttend  = "запись не может быть завершена в текущем статусе"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/appointments/{appointmentId}/attend
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	appointmentID := vars["appointmentId"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /appointments/{id}/attend - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if err := h.service.MarkAttended(r.Context(), appointmentID, userID); err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /appointments/{id}/attend - Appointment not found: appointment_id=%s", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, appointments.ErrAccessDenied):
			h.logger.Warn("PATCH /appointments/{id}/attend - Access denied: appointment_id=%s, user_id=%s", appointmentID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, appointments.ErrCannotAttend):
			h.logger.Warn("PATCH /appointments/{id}/attend - Cannot complete: appointment_id=%s", appointmentID)
			handlers.RespondConflict(w, msgCannotAttend)

		default:
			h.logger.Error("PATCH /appointments/{id}/attend - Failed to complete: appointment_id=%s, error=%v", appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /appointments/{id}/attend - Appointment completed successfully: appointment_id=%s, user_id=%s",
		appointmentID, userID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
