package confirm_payment

import "errors"

var (
	// ErrInvalidInput невалидные данные запроса
	ErrInvalidInput = errors.New("confirm_payment: invalid input")

	// ErrInvalidSignature подпись платежа не прошла проверку
	ErrInvalidSignature = errors.New("confirm_payment: invalid signature")

	// ErrPaymentNotFound платежный заказ не найден
	ErrPaymentNotFound = errors.New("confirm_payment: payment not found")

	// ErrPaymentFailed платежный заказ уже помечен как неуспешный
	ErrPaymentFailed = errors.New("confirm_payment: payment already failed")

	// ErrAppointmentNotConfirmable запись отменена или завершена и не ожидает оплаты
	ErrAppointmentNotConfirmable = errors.New("confirm_payment: appointment is not awaiting payment")

	// ErrInternal внутренняя ошибка
	ErrInternal = errors.New("confirm_payment: internal error")
)
