package get_available_slots

import (
	"fmt"

	"github.com/m04kA/LCP-AppointmentService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.LawyerID == "" {
		return fmt.Errorf("%w: lawyerID is required", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return validateOptions(req.Options)
}

// validateOptions валидирует параметры расчета (после подстановки дефолтов
// нулевые значения означают "не задано")
func validateOptions(opts Options) error {
	if opts.DurationMinutes < 0 || (opts.DurationMinutes > 0 && opts.DurationMinutes < domain.MinDurationMinutes) || opts.DurationMinutes > domain.MaxDurationMinutes {
		return fmt.Errorf("%w: durationMins must be between %d and %d", ErrInvalidInput, domain.MinDurationMinutes, domain.MaxDurationMinutes)
	}

	if opts.IntervalMinutes < 0 {
		return fmt.Errorf("%w: intervalMins must be positive", ErrInvalidInput)
	}

	if opts.BufferMinutes < 0 {
		return fmt.Errorf("%w: bufferMins must not be negative", ErrInvalidInput)
	}

	if !opts.WorkStart.IsZero() {
		if err := opts.WorkStart.Validate(); err != nil {
			return fmt.Errorf("%w: invalid workStart: %v", ErrInvalidInput, err)
		}
	}
	if !opts.WorkEnd.IsZero() {
		if err := opts.WorkEnd.Validate(); err != nil {
			return fmt.Errorf("%w: invalid workEnd: %v", ErrInvalidInput, err)
		}
	}
	if !opts.WorkStart.IsZero() && !opts.WorkEnd.IsZero() && !opts.WorkStart.IsBefore(opts.WorkEnd) {
		return fmt.Errorf("%w: workStart must be before workEnd", ErrInvalidInput)
	}

	// Перерыв задается либо целиком, либо никак
	if opts.BreakStart.IsZero() != opts.BreakEnd.IsZero() {
		return fmt.Errorf("%w: break window requires both breakStart and breakEnd", ErrInvalidInput)
	}
	if opts.hasBreak() {
		if err := opts.BreakStart.Validate(); err != nil {
			return fmt.Errorf("%w: invalid breakStart: %v", ErrInvalidInput, err)
		}
		if err := opts.BreakEnd.Validate(); err != nil {
			return fmt.Errorf("%w: invalid breakEnd: %v", ErrInvalidInput, err)
		}
		if !opts.BreakStart.IsBefore(opts.BreakEnd) {
			return fmt.Errorf("%w: breakStart must be before breakEnd", ErrInvalidInput)
		}
	}

	return nil
}
