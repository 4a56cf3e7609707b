package domain

import "time"

// Slot кандидат на бронирование: момент начала плюс подразумеваемая длительность.
// Никогда не сохраняется - живет только в ответе расчета доступности.
type Slot struct {
	StartAt         time.Time
	DurationMinutes int
}

// End returns the instant the slot ends
func (s *Slot) End() time.Time {
	return s.StartAt.Add(time.Duration(s.DurationMinutes) * time.Minute)
}
