package domain

import "time"

// PaymentStatus represents the settlement status of a payment order
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentCompleted PaymentStatus = "COMPLETED"
	PaymentFailed    PaymentStatus = "FAILED"
)

// PaymentProvider enumerates supported settlement backends
type PaymentProvider string

const (
	ProviderRazorpay PaymentProvider = "razorpay"
)

// PaymentOrder represents an external settlement attempt, usually tied to one appointment
type PaymentOrder struct {
	ID            string
	UserID        string
	AppointmentID *string // nil для платежей, не привязанных к записи
	Amount        int64   // в минорных единицах валюты, фиксируется при создании
	Currency      string
	Provider      PaymentProvider
	Status        PaymentStatus

	ProviderOrderID   *string
	ProviderPaymentID *string
	Signature         *string
	Metadata          map[string]string // провайдеро-специфичные данные (эхо заказа)

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsTerminal returns true if the payment has reached a final state
func (p *PaymentOrder) IsTerminal() bool {
	return p.Status == PaymentCompleted || p.Status == PaymentFailed
}
