package get_user_appointments

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/LCP-AppointmentService/internal/api/handlers"
	"github.com/m04kA/LCP-AppointmentService/internal/api/middleware"
	"github.com/m04kA/LCP-AppointmentService/internal/service/appointments"
	"github.com/m04kA/LCP-AppointmentService/internal/service/appointments/models"
	"github.com/m04kA/LCP-AppointmentService/pkg/ptr"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
	msgForbidden     = "доступ запрещен"
	msgInvalidStatus = "некорректный статус записи"
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

// Handle GET /api/v1/users/{userId}/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	targetUserID := vars["userId"]

	authUserID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /users/{id}/appointments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Пользователь видит только свои записи
	if authUserID != targetUserID {
		h.logger.Warn("GET /users/{id}/appointments - Access denied: auth_user=%s, target_user=%s", authUserID, targetUserID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	req := &models.GetUserAppointmentsRequest{UserID: targetUserID}
	if role, ok := middleware.GetUserRole(r.Context()); ok {
		req.Role = role
	}
	if status := r.URL.Query().Get("status"); status != "" {
		req.Status = ptr.Ptr(status)
	}

	result, err := h.service.GetUserAppointments(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /users/{id}/appointments - Invalid status filter: user_id=%s", targetUserID)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /users/{id}/appointments - Failed to list appointments: user_id=%s, error=%v", targetUserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /users/{id}/appointments - Retrieved %d appointments: user_id=%s",
		len(result.Appointments), targetUserID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
