package confirm_payment

import (
	confirmPayment "github.com/m04kA/LCP-AppointmentService/internal/usecase/confirm_payment"
)

// ConfirmPaymentRequest HTTP запрос на подтверждение оплаты.
// Имена полей следуют формату чекаута Razorpay.
type ConfirmPaymentRequest struct {
	AppointmentID     string `json:"appointmentId"`
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ConfirmPaymentRequest) ToUseCaseRequest() *confirmPayment.Request {
	return &confirmPayment.Request{
		AppointmentID:     r.AppointmentID,
		ProviderOrderID:   r.RazorpayOrderID,
		ProviderPaymentID: r.RazorpayPaymentID,
		Signature:         r.RazorpaySignature,
	}
}

// ConfirmPaymentResponse HTTP ответ подтверждения оплаты
type ConfirmPaymentResponse struct {
	PaymentID     string `json:"paymentId"`
	AppointmentID string `json:"appointmentId"`
	Status        string `json:"status"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *confirmPayment.Response) *ConfirmPaymentResponse {
	return &ConfirmPaymentResponse{
		PaymentID:     resp.PaymentID,
		AppointmentID: resp.AppointmentID,
		Status:        "COMPLETED",
	}
}
