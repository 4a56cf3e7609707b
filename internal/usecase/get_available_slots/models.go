package get_available_slots

import (
	"time"

	"github.com/m04kA/LCP-AppointmentService/internal/domain"
	"github.com/m04kA/LCP-AppointmentService/pkg/ptr"
	"github.com/m04kA/LCP-AppointmentService/pkg/types"
)

// Options параметры расчета доступности. Все поля опциональны,
// незаполненные подставляются из дефолтов домена.
type Options struct {
	DurationMinutes  int              // Длительность консультации (по умолчанию 30)
	IntervalMinutes  int              // Шаг между кандидатами (по умолчанию 30)
	WorkStart        types.TimeString // Начало рабочего дня (по умолчанию 06:00)
	WorkEnd          types.TimeString // Конец рабочего дня (по умолчанию 19:00)
	ExcludePastSlots *bool            // Исключать прошедшие слоты (по умолчанию true)
	BufferMinutes    int              // Буфер после каждой существующей записи (по умолчанию 0)
	BreakStart       types.TimeString // Начало перерыва (опционально)
	BreakEnd         types.TimeString // Конец перерыва (опционально)
}

// normalized возвращает копию опций с подставленными дефолтами
func (o Options) normalized() Options {
	if o.DurationMinutes == 0 {
		o.DurationMinutes = domain.DefaultDurationMinutes
	}
	if o.IntervalMinutes == 0 {
		o.IntervalMinutes = domain.DefaultIntervalMinutes
	}
	if o.WorkStart.IsZero() {
		o.WorkStart = types.TimeString(domain.DefaultWorkStart)
	}
	if o.WorkEnd.IsZero() {
		o.WorkEnd = types.TimeString(domain.DefaultWorkEnd)
	}
	if o.ExcludePastSlots == nil {
		o.ExcludePastSlots = ptr.Ptr(true)
	}
	return o
}

// hasBreak проверяет, что окно перерыва задано полностью
func (o Options) hasBreak() bool {
	return !o.BreakStart.IsZero() && !o.BreakEnd.IsZero()
}

// Request модель запроса на расчет доступных слотов
type Request struct {
	LawyerID string    // user id или id профиля юриста
	Date     time.Time // Целевая дата (без времени)
	Options  Options
}

// Response модель ответа со списком доступных слотов
type Response struct {
	LawyerID string        // Канонический user id юриста
	Date     time.Time     // Дата, на которую запрашивались слоты
	Slots    []domain.Slot // Доступные слоты в хронологическом порядке
}
