package get_available_slots

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/LCP-AppointmentService/internal/domain"
	"github.com/m04kA/LCP-AppointmentService/pkg/types"
)

func testDay() time.Time {
	return time.Date(2025, 11, 10, 0, 0, 0, 0, time.UTC)
}

// opts с выключенным excludePastSlots, чтобы тесты не зависели от "сейчас"
func baseOptions() Options {
	excludePast := false
	return Options{
		DurationMinutes:  60,
		IntervalMinutes:  60,
		WorkStart:        types.TimeString("09:00"),
		WorkEnd:          types.TimeString("17:00"),
		ExcludePastSlots: &excludePast,
	}
}

func appointmentAt(day time.Time, hour, durationMinutes int, status domain.AppointmentStatus) *domain.Appointment {
	return &domain.Appointment{
		ID:              "appt-1",
		LawyerID:        "lawyer-1",
		ClientID:        "client-1",
		ScheduledAt:     day.Add(time.Duration(hour) * time.Hour),
		DurationMinutes: durationMinutes,
		Status:          status,
	}
}

func TestGenerateSlots_EmptyDay(t *testing.T) {
	day := testDay()

	slots, err := generateSlots(day, baseOptions(), nil, day)
	require.NoError(t, err)

	// 09:00-17:00 с шагом 60 минут: 8 слотов, последний начинается в 16:00
	require.Len(t, slots, 8)
	assert.Equal(t, day.Add(9*time.Hour), slots[0].StartAt)
	assert.Equal(t, day.Add(16*time.Hour), slots[len(slots)-1].StartAt)
}

func TestGenerateSlots_BusyHourExcluded(t *testing.T) {
	day := testDay()
	busy := []*domain.Appointment{
		appointmentAt(day, 11, 60, domain.StatusConfirmed),
	}

	slots, err := generateSlots(day, baseOptions(), busy, day)
	require.NoError(t, err)

	require.Len(t, slots, 7)
	for _, slot := range slots {
		assert.NotEqual(t, day.Add(11*time.Hour), slot.StartAt)
	}
}

func TestGenerateSlots_CancelledAppointmentDoesNotBlock(t *testing.T) {
	day := testDay()
	cancelled := []*domain.Appointment{
		appointmentAt(day, 11, 60, domain.StatusCancelled),
	}

	slots, err := generateSlots(day, baseOptions(), cancelled, day)
	require.NoError(t, err)
	assert.Len(t, slots, 8)
}

func TestGenerateSlots_StrictlyIncreasing(t *testing.T) {
	day := testDay()

	slots, err := generateSlots(day, baseOptions(), nil, day)
	require.NoError(t, err)

	for i := 1; i < len(slots); i++ {
		assert.True(t, slots[i-1].StartAt.Before(slots[i].StartAt))
	}
}

func TestGenerateSlots_Idempotent(t *testing.T) {
	day := testDay()
	busy := []*domain.Appointment{
		appointmentAt(day, 10, 90, domain.StatusPending),
	}

	first, err := generateSlots(day, baseOptions(), busy, day)
	require.NoError(t, err)
	second, err := generateSlots(day, baseOptions(), busy, day)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGenerateSlots_SlotMustFitInWorkDay(t *testing.T) {
	day := testDay()
	opts := baseOptions()
	opts.DurationMinutes = 90
	opts.IntervalMinutes = 60

	slots, err := generateSlots(day, opts, nil, day)
	require.NoError(t, err)

	// Последний влезающий кандидат 15:00-16:30; 16:00-17:30 выходит за 17:00
	require.NotEmpty(t, slots)
	assert.Equal(t, day.Add(15*time.Hour), slots[len(slots)-1].StartAt)
}

func TestGenerateSlots_BreakWindowExcluded(t *testing.T) {
	day := testDay()
	opts := baseOptions()
	opts.BreakStart = types.TimeString("13:00")
	opts.BreakEnd = types.TimeString("14:00")

	slots, err := generateSlots(day, opts, nil, day)
	require.NoError(t, err)

	require.Len(t, slots, 7)
	for _, slot := range slots {
		assert.NotEqual(t, day.Add(13*time.Hour), slot.StartAt)
	}
}

func TestGenerateSlots_BufferAfterAppointment(t *testing.T) {
	day := testDay()
	opts := baseOptions()
	opts.BufferMinutes = 30
	busy := []*domain.Appointment{
		// 11:00-12:00, с буфером блокирует до 12:30
		appointmentAt(day, 11, 60, domain.StatusConfirmed),
	}

	slots, err := generateSlots(day, opts, busy, day)
	require.NoError(t, err)

	// Кандидат 12:00-13:00 пересекается с буфером, 13:00 уже свободен
	for _, slot := range slots {
		assert.NotEqual(t, day.Add(11*time.Hour), slot.StartAt)
		assert.NotEqual(t, day.Add(12*time.Hour), slot.StartAt)
	}
	assert.Contains(t, slots, domain.Slot{StartAt: day.Add(13 * time.Hour), DurationMinutes: 60})
}

func TestGenerateSlots_ExcludePastSlots(t *testing.T) {
	day := testDay()
	opts := baseOptions()
	excludePast := true
	opts.ExcludePastSlots = &excludePast

	// "Сейчас" 11:30: слот 10:00-11:00 прошел, 11:00-12:00 еще идет (конец позже now)
	now := day.Add(11*time.Hour + 30*time.Minute)

	slots, err := generateSlots(day, opts, nil, now)
	require.NoError(t, err)

	require.NotEmpty(t, slots)
	assert.Equal(t, day.Add(11*time.Hour), slots[0].StartAt)
}

func TestGenerateSlots_BackToBackAppointmentsNoFalseConflict(t *testing.T) {
	day := testDay()
	busy := []*domain.Appointment{
		// Запись 10:00-11:00: полуоткрытые интервалы, слот 11:00 доступен
		appointmentAt(day, 10, 60, domain.StatusConfirmed),
	}

	slots, err := generateSlots(day, baseOptions(), busy, day)
	require.NoError(t, err)

	assert.Contains(t, slots, domain.Slot{StartAt: day.Add(11 * time.Hour), DurationMinutes: 60})
	assert.NotContains(t, slots, domain.Slot{StartAt: day.Add(10 * time.Hour), DurationMinutes: 60})
}
