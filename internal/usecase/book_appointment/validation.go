package book_appointment

import (
	"fmt"

	"github.com/m04kA/LCP-AppointmentService/internal/domain"
)

// validateRequest проверяет корректность входных данных запроса
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is nil", ErrInvalidInput)
	}

	if req.LawyerID == "" {
		return fmt.Errorf("%w: lawyerID is required", ErrInvalidInput)
	}

	if req.ClientID == "" {
		return fmt.Errorf("%w: clientID is required", ErrInvalidInput)
	}

	if req.ScheduledAt.IsZero() {
		return fmt.Errorf("%w: scheduledAt is required", ErrInvalidInput)
	}

	if req.DurationMinutes < domain.MinDurationMinutes || req.DurationMinutes > domain.MaxDurationMinutes {
		return fmt.Errorf("%w: durationMinutes must be between %d and %d", ErrInvalidInput,
			domain.MinDurationMinutes, domain.MaxDurationMinutes)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceeds %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}
