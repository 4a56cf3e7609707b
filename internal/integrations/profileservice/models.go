package profileservice

// User модель пользователя из ProfileService
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"` // CLIENT, LAWYER, ADMIN
}

// LawyerProfile модель профиля юриста из ProfileService
type LawyerProfile struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
	// FeePerConsultation стоимость консультации в минорных единицах валюты.
	// nil, если юрист не задал тариф.
	FeePerConsultation *int64 `json:"fee_per_consultation"`
}

// ErrorResponse модель ошибки от ProfileService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
