package appointments

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/LCP-AppointmentService/internal/domain"
	storage "github.com/m04kA/LCP-AppointmentService/internal/infra/storage/appointment"
	"github.com/m04kA/LCP-AppointmentService/internal/service/appointments/models"
)

type fakeAppointmentRepo struct {
	appointment *domain.Appointment
	getErr      error

	byClient []*domain.Appointment
	byLawyer []*domain.Appointment

	updatedStatus *domain.AppointmentStatus
	gotClientID   string
	gotFilter     domain.LawyerAppointmentsFilter
}

func (f *fakeAppointmentRepo) GetByID(_ context.Context, _ string) (*domain.Appointment, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.appointment, nil
}

func (f *fakeAppointmentRepo) GetByClientID(_ context.Context, clientID string, _ []domain.AppointmentStatus) ([]*domain.Appointment, error) {
	f.gotClientID = clientID
	return f.byClient, nil
}

func (f *fakeAppointmentRepo) GetByLawyerWithFilter(_ context.Context, filter domain.LawyerAppointmentsFilter) ([]*domain.Appointment, error) {
	f.gotFilter = filter
	return f.byLawyer, nil
}

func (f *fakeAppointmentRepo) UpdateStatus(_ context.Context, _ string, status domain.AppointmentStatus) error {
	f.updatedStatus = &status
	return nil
}

type passthroughTxManager struct{}

func (passthroughTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func appointmentWithStatus(status domain.AppointmentStatus) *domain.Appointment {
	return &domain.Appointment{
		ID:       "appt-1",
		LawyerID: "lawyer-1",
		ClientID: "client-1",
		Status:   status,
	}
}

func newTestService(repo *fakeAppointmentRepo, cfg Config) *Service {
	return NewService(repo, passthroughTxManager{}, cfg, nopLogger{})
}

func TestGetByID_AccessControl(t *testing.T) {
	repo := &fakeAppointmentRepo{appointment: appointmentWithStatus(domain.StatusPending)}
	svc := newTestService(repo, Config{})

	resp, err := svc.GetByID(context.Background(), "appt-1", "client-1")
	require.NoError(t, err)
	assert.Equal(t, "appt-1", resp.ID)

	_, err = svc.GetByID(context.Background(), "appt-1", "lawyer-1")
	assert.NoError(t, err)

	_, err = svc.GetByID(context.Background(), "appt-1", "stranger")
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_NotFound(t *testing.T) {
	repo := &fakeAppointmentRepo{getErr: storage.ErrAppointmentNotFound}
	svc := newTestService(repo, Config{})

	_, err := svc.GetByID(context.Background(), "missing", "client-1")
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestGetUserAppointments_RoleRouting(t *testing.T) {
	repo := &fakeAppointmentRepo{
		byClient: []*domain.Appointment{appointmentWithStatus(domain.StatusPending)},
		byLawyer: []*domain.Appointment{
			appointmentWithStatus(domain.StatusPending),
			appointmentWithStatus(domain.StatusConfirmed),
		},
	}
	svc := newTestService(repo, Config{})

	resp, err := svc.GetUserAppointments(context.Background(), &models.GetUserAppointmentsRequest{UserID: "user-1"})
	require.NoError(t, err)
	assert.Len(t, resp.Appointments, 1)
	assert.Equal(t, "user-1", repo.gotClientID)

	resp, err = svc.GetUserAppointments(context.Background(), &models.GetUserAppointmentsRequest{UserID: "user-1", Role: "LAWYER"})
	require.NoError(t, err)
	assert.Len(t, resp.Appointments, 2)
	assert.Equal(t, "user-1", repo.gotFilter.LawyerID)
}

func TestGetUserAppointments_InvalidStatus(t *testing.T) {
	svc := newTestService(&fakeAppointmentRepo{}, Config{})

	badStatus := "SOMETIMES"
	_, err := svc.GetUserAppointments(context.Background(), &models.GetUserAppointmentsRequest{
		UserID: "user-1",
		Status: &badStatus,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCancel_TransitionMatrix(t *testing.T) {
	tests := []struct {
		name    string
		status  domain.AppointmentStatus
		cfg     Config
		wantErr error
	}{
		{"pending ok", domain.StatusPending, Config{}, nil},
		{"confirmed ok", domain.StatusConfirmed, Config{}, nil},
		{"cancelled is terminal", domain.StatusCancelled, Config{}, ErrCannotCancel},
		{"completed rejected by default", domain.StatusCompleted, Config{}, ErrCannotCancel},
		{"completed allowed by config", domain.StatusCompleted, Config{AllowCancelCompleted: true}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeAppointmentRepo{appointment: appointmentWithStatus(tt.status)}
			svc := newTestService(repo, tt.cfg)

			err := svc.Cancel(context.Background(), "appt-1", "client-1")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, repo.updatedStatus)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, repo.updatedStatus)
			assert.Equal(t, domain.StatusCancelled, *repo.updatedStatus)
		})
	}
}

func TestCancel_AccessDenied(t *testing.T) {
	repo := &fakeAppointmentRepo{appointment: appointmentWithStatus(domain.StatusPending)}
	svc := newTestService(repo, Config{})

	err := svc.Cancel(context.Background(), "appt-1", "stranger")
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestMarkAttended_TransitionMatrix(t *testing.T) {
	tests := []struct {
		name    string
		status  domain.AppointmentStatus
		cfg     Config
		wantErr error
	}{
		{"pending ok by default", domain.StatusPending, Config{}, nil},
		{"confirmed ok", domain.StatusConfirmed, Config{}, nil},
		{"pending rejected when confirmation required", domain.StatusPending, Config{RequireConfirmedForAttend: true}, ErrCannotAttend},
		{"confirmed ok when confirmation required", domain.StatusConfirmed, Config{RequireConfirmedForAttend: true}, nil},
		{"cancelled is terminal", domain.StatusCancelled, Config{}, ErrCannotAttend},
		{"completed is terminal", domain.StatusCompleted, Config{}, ErrCannotAttend},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeAppointmentRepo{appointment: appointmentWithStatus(tt.status)}
			svc := newTestService(repo, tt.cfg)

			err := svc.MarkAttended(context.Background(), "appt-1", "lawyer-1")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, repo.updatedStatus)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, repo.updatedStatus)
			assert.Equal(t, domain.StatusCompleted, *repo.updatedStatus)
		})
	}
}

func TestMarkAttended_OnlyLawyer(t *testing.T) {
	repo := &fakeAppointmentRepo{appointment: appointmentWithStatus(domain.StatusConfirmed)}
	svc := newTestService(repo, Config{})

	err := svc.MarkAttended(context.Background(), "appt-1", "client-1")
	assert.ErrorIs(t, err, ErrAccessDenied)
}
