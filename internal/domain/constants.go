package domain

// Default slot computation values
const (
	DefaultDurationMinutes = 30
	DefaultIntervalMinutes = 30
	DefaultWorkStart       = "06:00"
	DefaultWorkEnd         = "19:00"
	DefaultBufferMinutes   = 0
)

// Default payment values
const (
	DefaultCurrency = "INR"
	// DefaultFeeMinor фоллбек стоимости консультации, если у юриста не задан тариф
	DefaultFeeMinor int64 = 1000
)

// Business validation constants
const (
	MinDurationMinutes = 5
	MaxDurationMinutes = 480 // 8 часов
	MaxNotesLength     = 2000
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// BlockingStatuses статусы записей, занимающих временной слот.
// Используются при расчете доступности и проверке конфликтов.
var BlockingStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
}
