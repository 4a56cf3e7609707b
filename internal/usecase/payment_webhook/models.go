package payment_webhook

// Request сырое тело вебхука и подпись из заголовка
type Request struct {
	Body      []byte
	Signature string
}

// Response результат обработки вебхука
type Response struct {
	Event string
	// Processed вебхук привел к изменению состояния платежа
	Processed bool
}

// webhookEnvelope конверт события Razorpay
type webhookEnvelope struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity paymentEntity `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`
}

// paymentEntity платежная сущность внутри конверта
type paymentEntity struct {
	ID      string `json:"id"`
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
}
