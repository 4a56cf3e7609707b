package mark_attended

import "context"

type AppointmentService interface {
	MarkAttended(ctx context.Context, appointmentID string, userID string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
