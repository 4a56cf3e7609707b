package book_appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/LCP-AppointmentService/internal/domain"
	profileClient "github.com/m04kA/LCP-AppointmentService/internal/integrations/profileservice"
	"github.com/m04kA/LCP-AppointmentService/internal/integrations/razorpay"
	"github.com/m04kA/LCP-AppointmentService/pkg/ptr"
)

type fakeAppointmentRepo struct {
	existing  []*domain.Appointment
	created   *domain.Appointment
	createErr error
}

func (f *fakeAppointmentRepo) Create(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	created := *appt
	created.ID = "appt-new"
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	f.created = &created
	return &created, nil
}

func (f *fakeAppointmentRepo) GetByLawyerWithFilter(_ context.Context, _ domain.LawyerAppointmentsFilter) ([]*domain.Appointment, error) {
	return f.existing, nil
}

type fakePaymentRepo struct {
	created          *domain.PaymentOrder
	providerOrderID  string
	createErr        error
	setProviderErr   error
	setProviderCalls int
}

func (f *fakePaymentRepo) Create(_ context.Context, order *domain.PaymentOrder) (*domain.PaymentOrder, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	created := *order
	created.ID = "pay-new"
	f.created = &created
	return &created, nil
}

func (f *fakePaymentRepo) SetProviderOrder(_ context.Context, _ string, providerOrderID string, _ map[string]string) error {
	f.setProviderCalls++
	f.providerOrderID = providerOrderID
	return f.setProviderErr
}

type fakeProfileClient struct {
	userID     string
	resolveErr error
	fee        *int64
	feeErr     error
}

func (f *fakeProfileClient) ResolveLawyerUserID(_ context.Context, _ string) (string, error) {
	return f.userID, f.resolveErr
}

func (f *fakeProfileClient) GetConsultationFeeWithGracefulDegradation(_ context.Context, _ string) (*int64, error) {
	return f.fee, f.feeErr
}

type fakeProvider struct {
	order *razorpay.Order
	err   error
	got   *razorpay.CreateOrderRequest
}

func (f *fakeProvider) CreateOrder(_ context.Context, req *razorpay.CreateOrderRequest) (*razorpay.Order, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return f.order, nil
}

type passthroughTxManager struct{}

func (passthroughTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTimeProvider struct {
	now time.Time
}

func (f *fixedTimeProvider) Now() time.Time {
	return f.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testScheduledAt() time.Time {
	return time.Date(2025, 11, 10, 11, 0, 0, 0, time.UTC)
}

func newTestUseCase(
	appointments *fakeAppointmentRepo,
	payments *fakePaymentRepo,
	profile *fakeProfileClient,
	provider *fakeProvider,
) *UseCase {
	return NewUseCase(
		appointments,
		payments,
		profile,
		provider,
		passthroughTxManager{},
		&fixedTimeProvider{now: testScheduledAt().Add(-24 * time.Hour)},
		"INR",
		1000,
		nopLogger{},
	)
}

func validRequest() *Request {
	return &Request{
		LawyerID:        "lawyer-profile-7",
		ClientID:        "client-1",
		ScheduledAt:     testScheduledAt(),
		DurationMinutes: 60,
	}
}

func TestExecute_HappyPath(t *testing.T) {
	appointments := &fakeAppointmentRepo{}
	payments := &fakePaymentRepo{}
	profile := &fakeProfileClient{userID: "user-42", fee: ptr.Ptr(int64(15000))}
	provider := &fakeProvider{order: &razorpay.Order{ID: "order_abc", Receipt: "pay-new"}}

	resp, err := newTestUseCase(appointments, payments, profile, provider).
		Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// Запись в PENDING для канонического id юриста
	assert.Equal(t, domain.StatusPending, resp.Appointment.Status)
	assert.Equal(t, "user-42", resp.Appointment.LawyerID)
	assert.Equal(t, "client-1", resp.Appointment.ClientID)

	// Платеж в PENDING со стоимостью из профиля
	require.NotNil(t, resp.Payment)
	assert.Equal(t, domain.PaymentPending, resp.Payment.Status)
	assert.Equal(t, int64(15000), resp.Payment.Amount)
	assert.Equal(t, "INR", resp.Payment.Currency)
	require.NotNil(t, resp.Payment.AppointmentID)
	assert.Equal(t, "appt-new", *resp.Payment.AppointmentID)
	require.NotNil(t, resp.Payment.ProviderOrderID)
	assert.Equal(t, "order_abc", *resp.Payment.ProviderOrderID)

	// Заказ у провайдера привязан к платежу через receipt
	require.NotNil(t, provider.got)
	assert.Equal(t, "pay-new", provider.got.Receipt)
	assert.Equal(t, int64(15000), provider.got.Amount)
	assert.Equal(t, 1, payments.setProviderCalls)
}

func TestExecute_SlotConflict(t *testing.T) {
	appointments := &fakeAppointmentRepo{
		existing: []*domain.Appointment{
			{
				ID:              "appt-busy",
				LawyerID:        "user-42",
				ScheduledAt:     testScheduledAt().Add(-30 * time.Minute),
				DurationMinutes: 60,
				Status:          domain.StatusConfirmed,
			},
		},
	}
	payments := &fakePaymentRepo{}
	profile := &fakeProfileClient{userID: "user-42"}
	provider := &fakeProvider{}

	_, err := newTestUseCase(appointments, payments, profile, provider).
		Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Nil(t, appointments.created)
	assert.Nil(t, payments.created)
}

func TestExecute_BackToBackNoConflict(t *testing.T) {
	appointments := &fakeAppointmentRepo{
		existing: []*domain.Appointment{
			{
				ID:              "appt-before",
				LawyerID:        "user-42",
				ScheduledAt:     testScheduledAt().Add(-time.Hour),
				DurationMinutes: 60,
				Status:          domain.StatusConfirmed,
			},
		},
	}
	profile := &fakeProfileClient{userID: "user-42"}
	provider := &fakeProvider{order: &razorpay.Order{ID: "order_abc"}}

	_, err := newTestUseCase(appointments, &fakePaymentRepo{}, profile, provider).
		Execute(context.Background(), validRequest())
	assert.NoError(t, err)
}

func TestExecute_LawyerNotFound(t *testing.T) {
	profile := &fakeProfileClient{resolveErr: profileClient.ErrLawyerNotFound}

	_, err := newTestUseCase(&fakeAppointmentRepo{}, &fakePaymentRepo{}, profile, &fakeProvider{}).
		Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrLawyerNotFound)
}

func TestExecute_ScheduledAtInPast(t *testing.T) {
	profile := &fakeProfileClient{userID: "user-42"}
	uc := newTestUseCase(&fakeAppointmentRepo{}, &fakePaymentRepo{}, profile, &fakeProvider{})

	req := validRequest()
	req.ScheduledAt = testScheduledAt().Add(-48 * time.Hour)

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_FeeFallbackOnDegradedProfileService(t *testing.T) {
	appointments := &fakeAppointmentRepo{}
	payments := &fakePaymentRepo{}
	profile := &fakeProfileClient{userID: "user-42", feeErr: profileClient.ErrServiceDegraded}
	provider := &fakeProvider{order: &razorpay.Order{ID: "order_abc"}}

	resp, err := newTestUseCase(appointments, payments, profile, provider).
		Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(1000), resp.Payment.Amount)
}

func TestExecute_ProviderFailureKeepsAppointment(t *testing.T) {
	appointments := &fakeAppointmentRepo{}
	payments := &fakePaymentRepo{}
	profile := &fakeProfileClient{userID: "user-42"}
	provider := &fakeProvider{err: errors.New("connection refused")}

	_, err := newTestUseCase(appointments, payments, profile, provider).
		Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrPaymentUnavailable)
	// Запись и локальный платеж уже созданы и остаются в PENDING
	require.NotNil(t, appointments.created)
	assert.Equal(t, domain.StatusPending, appointments.created.Status)
	require.NotNil(t, payments.created)
	assert.Equal(t, domain.PaymentPending, payments.created.Status)
	assert.Zero(t, payments.setProviderCalls)
}

func TestExecute_Validation(t *testing.T) {
	profile := &fakeProfileClient{userID: "user-42"}
	uc := newTestUseCase(&fakeAppointmentRepo{}, &fakePaymentRepo{}, profile, &fakeProvider{})

	tests := []struct {
		name   string
		mutate func(req *Request)
	}{
		{"missing lawyer", func(req *Request) { req.LawyerID = "" }},
		{"missing client", func(req *Request) { req.ClientID = "" }},
		{"zero scheduledAt", func(req *Request) { req.ScheduledAt = time.Time{} }},
		{"duration too short", func(req *Request) { req.DurationMinutes = 1 }},
		{"duration too long", func(req *Request) { req.DurationMinutes = 600 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
