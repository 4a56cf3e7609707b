package profileservice

import "errors"

var (
	// ErrUserNotFound возвращается, когда пользователь не найден
	ErrUserNotFound = errors.New("user not found")

	// ErrLawyerNotFound возвращается, когда профиль юриста не найден
	ErrLawyerNotFound = errors.New("lawyer profile not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("profileservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("profileservice client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation
	// Указывает, что ProfileService недоступен и следует использовать дефолтный тариф
	ErrServiceDegraded = errors.New("profileservice unavailable: graceful degradation applied")
)
