package razorpay

import "errors"

var (
	// ErrProviderUnavailable возвращается, когда провайдер недоступен
	// или отклонил создание заказа
	ErrProviderUnavailable = errors.New("razorpay client: provider unavailable")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("razorpay client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе провайдера
	ErrInvalidResponse = errors.New("razorpay client: invalid response")
)
