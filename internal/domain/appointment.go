package domain

import "time"

// AppointmentStatus represents the status of a consultation appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "PENDING"
	StatusConfirmed AppointmentStatus = "CONFIRMED"
	StatusCancelled AppointmentStatus = "CANCELLED"
	StatusCompleted AppointmentStatus = "COMPLETED"
)

// Appointment represents a one-on-one consultation between a lawyer and a client
type Appointment struct {
	ID              string
	LawyerID        string // канонический user id юриста (не id профиля)
	ClientID        string
	ScheduledAt     time.Time
	DurationMinutes int
	Status          AppointmentStatus
	Notes           *string
	PaymentID       *string // заполняется только при успешной оплате

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsTerminal returns true if the appointment is in a terminal state
func (a *Appointment) IsTerminal() bool {
	return a.Status == StatusCancelled || a.Status == StatusCompleted
}

// IsBlocking returns true if the appointment occupies its time slot.
// Только отмененные записи освобождают слот.
func (a *Appointment) IsBlocking() bool {
	return a.Status != StatusCancelled
}

// CanBeCancelled returns true if the appointment can be cancelled.
// allowCompleted разрешает отмену завершенной консультации (конфигурируемо).
func (a *Appointment) CanBeCancelled(allowCompleted bool) bool {
	if a.Status == StatusCancelled {
		return false
	}
	if a.Status == StatusCompleted {
		return allowCompleted
	}
	return true
}

// CanBeAttended returns true if the appointment can be marked as attended.
// requireConfirmed требует подтвержденной оплаты перед посещением (конфигурируемо).
func (a *Appointment) CanBeAttended(requireConfirmed bool) bool {
	if a.IsTerminal() {
		return false
	}
	if requireConfirmed {
		return a.Status == StatusConfirmed
	}
	return true
}

// End returns the instant the appointment ends
func (a *Appointment) End() time.Time {
	return a.ScheduledAt.Add(time.Duration(a.DurationMinutes) * time.Minute)
}

// Overlaps проверяет пересечение записи с интервалом [start, end).
// bufferMinutes добавляется после записи перед следующим возможным слотом.
// Полуоткрытые интервалы: граничащие интервалы не пересекаются.
func (a *Appointment) Overlaps(start, end time.Time, bufferMinutes int) bool {
	existingEnd := a.End().Add(time.Duration(bufferMinutes) * time.Minute)
	return start.Before(existingEnd) && a.ScheduledAt.Before(end)
}

// LawyerAppointmentsFilter фильтр для получения записей юриста
type LawyerAppointmentsFilter struct {
	LawyerID     string
	From         *time.Time          // Начало периода (включительно)
	To           *time.Time          // Конец периода (не включительно)
	Statuses     []AppointmentStatus // Фильтр по статусам (nil - все)
	OnlyBlocking bool                // Только записи, занимающие слот
}
