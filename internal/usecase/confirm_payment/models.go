package confirm_payment

// Request запрос на подтверждение оплаты консультации
type Request struct {
	AppointmentID     string
	ProviderOrderID   string
	ProviderPaymentID string
	Signature         string
}

// Response результат подтверждения оплаты
type Response struct {
	PaymentID     string
	AppointmentID string
	// AlreadyCompleted повторный вызов для уже завершенного платежа
	AlreadyCompleted bool
}
