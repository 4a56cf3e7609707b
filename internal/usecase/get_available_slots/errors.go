package get_available_slots

import "errors"

var (
	// ErrLawyerNotFound возвращается, когда идентификатор юриста не разрешается
	// ни в пользователя, ни в профиль
	ErrLawyerNotFound = errors.New("get_available_slots: lawyer not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
