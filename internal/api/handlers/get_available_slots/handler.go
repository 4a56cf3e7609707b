package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/LCP-AppointmentService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/LCP-AppointmentService/internal/usecase/get_available_slots"
)

const (
	msgInvalidQuery   = "некорректные параметры запроса, ожидается date=YYYY-MM-DD"
	msgLawyerNotFound = "юрист не найден"
	msgInvalidInput   = "некорректные параметры расчета слотов"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/lawyers/{lawyerId}/available-slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	lawyerID := vars["lawyerId"]

	useCaseReq, err := ToUseCaseRequest(lawyerID, r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /lawyers/{id}/available-slots - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrLawyerNotFound):
			h.logger.Warn("GET /lawyers/{id}/available-slots - Lawyer not found: lawyer_id=%s", lawyerID)
			handlers.RespondNotFound(w, msgLawyerNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /lawyers/{id}/available-slots - Invalid input: lawyer_id=%s, error=%v", lawyerID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /lawyers/{id}/available-slots - Failed to compute slots: lawyer_id=%s, error=%v", lawyerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /lawyers/{id}/available-slots - Computed %d slots: lawyer_id=%s, date=%s",
		len(result.Slots), result.LawyerID, useCaseReq.Date.Format("2006-01-02"))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
