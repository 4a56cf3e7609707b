package payment_webhook

import "errors"

var (
	// ErrInvalidSignature подпись вебхука не прошла проверку
	ErrInvalidSignature = errors.New("payment_webhook: invalid signature")

	// ErrInvalidPayload тело вебхука не распарсилось
	ErrInvalidPayload = errors.New("payment_webhook: invalid payload")

	// ErrInternal внутренняя ошибка
	ErrInternal = errors.New("payment_webhook: internal error")
)
