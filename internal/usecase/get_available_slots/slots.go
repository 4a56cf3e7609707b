package get_available_slots

import (
	"time"

	"github.com/m04kA/LCP-AppointmentService/internal/domain"
)

// generateSlots перебирает кандидатов от начала рабочего дня до конца
// с шагом interval и отбрасывает недоступные. Чистая функция: одинаковые
// входы и одинаковый набор записей дают одинаковый результат.
//
// Кандидат отбрасывается, если:
//   - его конец выходит за пределы рабочего дня;
//   - его начало попадает в окно перерыва;
//   - excludePastSlots включен и конец кандидата не позже now;
//   - интервал кандидата пересекается с интервалом существующей записи
//     [scheduledAt, scheduledAt + duration + buffer).
func generateSlots(
	day time.Time,
	opts Options,
	appointments []*domain.Appointment,
	now time.Time,
) ([]domain.Slot, error) {
	workStart, err := opts.WorkStart.AtDate(day)
	if err != nil {
		return nil, err
	}
	workEnd, err := opts.WorkEnd.AtDate(day)
	if err != nil {
		return nil, err
	}

	var breakStart, breakEnd time.Time
	if opts.hasBreak() {
		breakStart, err = opts.BreakStart.AtDate(day)
		if err != nil {
			return nil, err
		}
		breakEnd, err = opts.BreakEnd.AtDate(day)
		if err != nil {
			return nil, err
		}
	}

	duration := time.Duration(opts.DurationMinutes) * time.Minute
	interval := time.Duration(opts.IntervalMinutes) * time.Minute

	slots := make([]domain.Slot, 0)

	for current := workStart; current.Before(workEnd); current = current.Add(interval) {
		slotEnd := current.Add(duration)

		// Кандидаты идут по возрастанию - дальше все тоже не влезут
		if slotEnd.After(workEnd) {
			break
		}

		// Окно перерыва исключается независимо от занятости
		if opts.hasBreak() && !current.Before(breakStart) && current.Before(breakEnd) {
			continue
		}

		// Прошедшие слоты (конец не позже "сейчас")
		if *opts.ExcludePastSlots && !slotEnd.After(now) {
			continue
		}

		if hasConflict(current, slotEnd, appointments, opts.BufferMinutes) {
			continue
		}

		slots = append(slots, domain.Slot{
			StartAt:         current,
			DurationMinutes: opts.DurationMinutes,
		})
	}

	return slots, nil
}

// hasConflict проверяет пересечение кандидата с существующими записями.
// Интервалы полуоткрытые: запись, заканчивающаяся ровно в начале кандидата
// (с учетом буфера), не считается конфликтом.
func hasConflict(slotStart, slotEnd time.Time, appointments []*domain.Appointment, bufferMinutes int) bool {
	for _, appt := range appointments {
		if !appt.IsBlocking() {
			continue
		}
		if appt.Overlaps(slotStart, slotEnd, bufferMinutes) {
			return true
		}
	}
	return false
}

// dayBounds нормализует дату к границам календарного дня [00:00, 24:00)
// в её локальном времени
func dayBounds(date time.Time) (time.Time, time.Time) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return start, start.AddDate(0, 0, 1)
}
