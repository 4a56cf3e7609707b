package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAppointment_Overlaps(t *testing.T) {
	base := time.Date(2025, 11, 10, 10, 0, 0, 0, time.UTC)
	appt := &Appointment{
		ScheduledAt:     base,
		DurationMinutes: 60,
		Status:          StatusConfirmed,
	}

	tests := []struct {
		name   string
		start  time.Time
		end    time.Time
		buffer int
		want   bool
	}{
		{"identical interval", base, base.Add(time.Hour), 0, true},
		{"partial overlap at start", base.Add(-30 * time.Minute), base.Add(30 * time.Minute), 0, true},
		{"partial overlap at end", base.Add(30 * time.Minute), base.Add(90 * time.Minute), 0, true},
		{"contained", base.Add(15 * time.Minute), base.Add(45 * time.Minute), 0, true},
		{"adjacent before", base.Add(-time.Hour), base, 0, false},
		{"adjacent after", base.Add(time.Hour), base.Add(2 * time.Hour), 0, false},
		{"adjacent after blocked by buffer", base.Add(time.Hour), base.Add(2 * time.Hour), 15, true},
		{"after buffer", base.Add(75 * time.Minute), base.Add(2 * time.Hour), 15, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, appt.Overlaps(tt.start, tt.end, tt.buffer))
		})
	}
}

func TestAppointment_IsBlocking(t *testing.T) {
	for status, want := range map[AppointmentStatus]bool{
		StatusPending:   true,
		StatusConfirmed: true,
		StatusCompleted: true,
		StatusCancelled: false,
	} {
		appt := &Appointment{Status: status}
		assert.Equal(t, want, appt.IsBlocking(), "status %s", status)
	}
}

func TestAppointment_End(t *testing.T) {
	base := time.Date(2025, 11, 10, 10, 0, 0, 0, time.UTC)
	appt := &Appointment{ScheduledAt: base, DurationMinutes: 45}
	assert.Equal(t, base.Add(45*time.Minute), appt.End())
}
