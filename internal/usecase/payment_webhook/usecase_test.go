package payment_webhook

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/LCP-AppointmentService/internal/domain"
	apptstorage "github.com/m04kA/LCP-AppointmentService/internal/infra/storage/appointment"
	storage "github.com/m04kA/LCP-AppointmentService/internal/infra/storage/payment"
	"github.com/m04kA/LCP-AppointmentService/pkg/ptr"
)

type fakePaymentRepo struct {
	byOrderID     map[string]*domain.PaymentOrder
	byPaymentID   map[string]*domain.PaymentOrder
	markCompleted int
	markFailed    int
}

func (f *fakePaymentRepo) GetByProviderOrderID(_ context.Context, providerOrderID string) (*domain.PaymentOrder, error) {
	if payment, ok := f.byOrderID[providerOrderID]; ok {
		return payment, nil
	}
	return nil, storage.ErrPaymentNotFound
}

func (f *fakePaymentRepo) GetByProviderPaymentID(_ context.Context, providerPaymentID string) (*domain.PaymentOrder, error) {
	if payment, ok := f.byPaymentID[providerPaymentID]; ok {
		return payment, nil
	}
	return nil, storage.ErrPaymentNotFound
}

func (f *fakePaymentRepo) MarkCompleted(_ context.Context, _ string, _ string, _ *string) error {
	f.markCompleted++
	return nil
}

func (f *fakePaymentRepo) MarkFailed(_ context.Context, _ string) error {
	f.markFailed++
	return nil
}

type fakeAppointmentRepo struct {
	appointment  *domain.Appointment
	confirmCalls int
	gotID        string
}

func (f *fakeAppointmentRepo) GetByID(_ context.Context, id string) (*domain.Appointment, error) {
	if f.appointment == nil {
		return &domain.Appointment{ID: id, Status: domain.StatusPending}, nil
	}
	if f.appointment.ID != id {
		return nil, apptstorage.ErrAppointmentNotFound
	}
	return f.appointment, nil
}

func (f *fakeAppointmentRepo) Confirm(_ context.Context, id string, _ string) error {
	f.confirmCalls++
	f.gotID = id
	return nil
}

type fakeVerifier struct {
	valid bool
}

func (f *fakeVerifier) VerifyWebhookSignature(_ []byte, _ string) bool {
	return f.valid
}

type passthroughTxManager struct{}

func (passthroughTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func webhookBody(event, paymentID, orderID string) []byte {
	return []byte(fmt.Sprintf(
		`{"event":%q,"payload":{"payment":{"entity":{"id":%q,"order_id":%q,"status":"captured"}}}}`,
		event, paymentID, orderID,
	))
}

func newTestUseCase(payments *fakePaymentRepo, appointments *fakeAppointmentRepo, valid bool) *UseCase {
	return NewUseCase(payments, appointments, &fakeVerifier{valid: valid}, passthroughTxManager{}, nopLogger{})
}

func TestExecute_InvalidSignature(t *testing.T) {
	uc := newTestUseCase(&fakePaymentRepo{}, &fakeAppointmentRepo{}, false)

	_, err := uc.Execute(context.Background(), &Request{
		Body:      webhookBody("payment.captured", "pay_xyz", "order_abc"),
		Signature: "bad",
	})
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestExecute_InvalidPayload(t *testing.T) {
	uc := newTestUseCase(&fakePaymentRepo{}, &fakeAppointmentRepo{}, true)

	_, err := uc.Execute(context.Background(), &Request{Body: []byte("{not json"), Signature: "sig"})
	assert.ErrorIs(t, err, ErrInvalidPayload)

	_, err = uc.Execute(context.Background(), &Request{Body: []byte(`{"payload":{}}`), Signature: "sig"})
	assert.ErrorIs(t, err, ErrInvalidPayload)
}

func TestExecute_CapturedEventCompletesPayment(t *testing.T) {
	payment := &domain.PaymentOrder{
		ID:            "pay-1",
		AppointmentID: ptr.Ptr("appt-1"),
		Status:        domain.PaymentPending,
	}
	payments := &fakePaymentRepo{byOrderID: map[string]*domain.PaymentOrder{"order_abc": payment}}
	appointments := &fakeAppointmentRepo{}

	resp, err := newTestUseCase(payments, appointments, true).Execute(context.Background(), &Request{
		Body:      webhookBody("payment.captured", "pay_xyz", "order_abc"),
		Signature: "sig",
	})
	require.NoError(t, err)

	assert.True(t, resp.Processed)
	assert.Equal(t, 1, payments.markCompleted)
	assert.Equal(t, 1, appointments.confirmCalls)
	assert.Equal(t, "appt-1", appointments.gotID)
}

// Клиент отменяет запись до доставки вебхука: захват средств фиксируется,
// но отмененная запись не возвращается в CONFIRMED
func TestExecute_CapturedEventDoesNotResurrectCancelledAppointment(t *testing.T) {
	payment := &domain.PaymentOrder{
		ID:            "pay-1",
		AppointmentID: ptr.Ptr("appt-1"),
		Status:        domain.PaymentPending,
	}
	payments := &fakePaymentRepo{byOrderID: map[string]*domain.PaymentOrder{"order_abc": payment}}
	appointments := &fakeAppointmentRepo{
		appointment: &domain.Appointment{ID: "appt-1", Status: domain.StatusCancelled},
	}

	resp, err := newTestUseCase(payments, appointments, true).Execute(context.Background(), &Request{
		Body:      webhookBody("payment.captured", "pay_xyz", "order_abc"),
		Signature: "sig",
	})
	require.NoError(t, err)

	assert.True(t, resp.Processed)
	assert.Equal(t, 1, payments.markCompleted)
	assert.Zero(t, appointments.confirmCalls)
}

// Платеж ссылается на исчезнувшую запись: завершаем платеж, подтверждать нечего
func TestExecute_CapturedEventWithMissingAppointment(t *testing.T) {
	payment := &domain.PaymentOrder{
		ID:            "pay-1",
		AppointmentID: ptr.Ptr("appt-gone"),
		Status:        domain.PaymentPending,
	}
	payments := &fakePaymentRepo{byOrderID: map[string]*domain.PaymentOrder{"order_abc": payment}}
	appointments := &fakeAppointmentRepo{
		appointment: &domain.Appointment{ID: "appt-other", Status: domain.StatusPending},
	}

	resp, err := newTestUseCase(payments, appointments, true).Execute(context.Background(), &Request{
		Body:      webhookBody("payment.captured", "pay_xyz", "order_abc"),
		Signature: "sig",
	})
	require.NoError(t, err)

	assert.True(t, resp.Processed)
	assert.Equal(t, 1, payments.markCompleted)
	assert.Zero(t, appointments.confirmCalls)
}

func TestExecute_FallbackLookupByProviderPaymentID(t *testing.T) {
	payment := &domain.PaymentOrder{
		ID:     "pay-1",
		Status: domain.PaymentPending,
	}
	payments := &fakePaymentRepo{byPaymentID: map[string]*domain.PaymentOrder{"pay_xyz": payment}}
	appointments := &fakeAppointmentRepo{}

	resp, err := newTestUseCase(payments, appointments, true).Execute(context.Background(), &Request{
		Body:      webhookBody("payment.captured", "pay_xyz", "order_unknown"),
		Signature: "sig",
	})
	require.NoError(t, err)

	assert.True(t, resp.Processed)
	assert.Equal(t, 1, payments.markCompleted)
	// Платеж без привязки к записи: подтверждать нечего
	assert.Zero(t, appointments.confirmCalls)
}

func TestExecute_UnknownEventAcknowledged(t *testing.T) {
	payments := &fakePaymentRepo{}
	appointments := &fakeAppointmentRepo{}

	resp, err := newTestUseCase(payments, appointments, true).Execute(context.Background(), &Request{
		Body:      webhookBody("refund.created", "pay_xyz", "order_abc"),
		Signature: "sig",
	})
	require.NoError(t, err)

	assert.False(t, resp.Processed)
	assert.Equal(t, "refund.created", resp.Event)
	assert.Zero(t, payments.markCompleted)
}

func TestExecute_UnmatchedPaymentAcknowledged(t *testing.T) {
	payments := &fakePaymentRepo{}

	resp, err := newTestUseCase(payments, &fakeAppointmentRepo{}, true).Execute(context.Background(), &Request{
		Body:      webhookBody("payment.captured", "pay_unknown", "order_unknown"),
		Signature: "sig",
	})
	require.NoError(t, err)

	assert.False(t, resp.Processed)
	assert.Zero(t, payments.markCompleted)
}

func TestExecute_RedeliveryIsNoOp(t *testing.T) {
	payment := &domain.PaymentOrder{
		ID:            "pay-1",
		AppointmentID: ptr.Ptr("appt-1"),
		Status:        domain.PaymentCompleted,
	}
	payments := &fakePaymentRepo{byOrderID: map[string]*domain.PaymentOrder{"order_abc": payment}}
	appointments := &fakeAppointmentRepo{}

	resp, err := newTestUseCase(payments, appointments, true).Execute(context.Background(), &Request{
		Body:      webhookBody("payment.captured", "pay_xyz", "order_abc"),
		Signature: "sig",
	})
	require.NoError(t, err)

	assert.False(t, resp.Processed)
	assert.Zero(t, payments.markCompleted)
	assert.Zero(t, appointments.confirmCalls)
}

func TestExecute_FailedEventMarksPaymentFailed(t *testing.T) {
	payment := &domain.PaymentOrder{
		ID:     "pay-1",
		Status: domain.PaymentPending,
	}
	payments := &fakePaymentRepo{byOrderID: map[string]*domain.PaymentOrder{"order_abc": payment}}

	resp, err := newTestUseCase(payments, &fakeAppointmentRepo{}, true).Execute(context.Background(), &Request{
		Body:      webhookBody("payment.failed", "pay_xyz", "order_abc"),
		Signature: "sig",
	})
	require.NoError(t, err)

	assert.True(t, resp.Processed)
	assert.Equal(t, 1, payments.markFailed)
}

func TestExecute_FailedEventDoesNotRevertCompleted(t *testing.T) {
	payment := &domain.PaymentOrder{
		ID:     "pay-1",
		Status: domain.PaymentCompleted,
	}
	payments := &fakePaymentRepo{byOrderID: map[string]*domain.PaymentOrder{"order_abc": payment}}

	resp, err := newTestUseCase(payments, &fakeAppointmentRepo{}, true).Execute(context.Background(), &Request{
		Body:      webhookBody("payment.failed", "pay_xyz", "order_abc"),
		Signature: "sig",
	})
	require.NoError(t, err)

	assert.False(t, resp.Processed)
	assert.Zero(t, payments.markFailed)
}
