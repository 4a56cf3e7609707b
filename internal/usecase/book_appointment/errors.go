package book_appointment

import "errors"

var (
	// ErrInvalidInput невалидные данные запроса
	ErrInvalidInput = errors.New("book_appointment: invalid input")

	// ErrLawyerNotFound юрист не найден
	ErrLawyerNotFound = errors.New("book_appointment: lawyer not found")

	// ErrSlotNotAvailable запрошенный слот уже занят
	ErrSlotNotAvailable = errors.New("book_appointment: slot not available")

	// ErrPaymentUnavailable платежный провайдер недоступен
	ErrPaymentUnavailable = errors.New("book_appointment: payment provider unavailable")

	// ErrInternal внутренняя ошибка
	ErrInternal = errors.New("book_appointment: internal error")
)
