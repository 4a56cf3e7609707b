package confirm_payment

import "fmt"

// validateRequest проверяет корректность входных данных запроса
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is nil", ErrInvalidInput)
	}

	if req.AppointmentID == "" {
		return fmt.Errorf("%w: appointmentID is required", ErrInvalidInput)
	}

	if req.ProviderOrderID == "" {
		return fmt.Errorf("%w: providerOrderID is required", ErrInvalidInput)
	}

	if req.ProviderPaymentID == "" {
		return fmt.Errorf("%w: providerPaymentID is required", ErrInvalidInput)
	}

	if req.Signature == "" {
		return fmt.Errorf("%w: signature is required", ErrInvalidInput)
	}

	return nil
}
