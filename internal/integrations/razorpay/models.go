package razorpay

// CreateOrderRequest запрос на создание заказа у провайдера
type CreateOrderRequest struct {
	Amount   int64             `json:"amount"` // в минорных единицах (пайсы)
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"` // локальный id платежного заказа
	Notes    map[string]string `json:"notes,omitempty"`
}

// Order заказ, созданный провайдером
type Order struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// ErrorResponse модель ошибки от провайдера
type ErrorResponse struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}
