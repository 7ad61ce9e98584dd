package domain

// Значения по умолчанию
const (
	DefaultSlotStepMinutes         = 30
	DefaultMinBookingNoticeMinutes = 60 // 1 час
	DefaultAdvanceBookingDays      = 0  // 0 = без ограничений
)

// Ограничения бизнес-валидации
const (
	MaxNotesLength              = 1000
	MaxCancellationReasonLength = 500
	MaxPhotosPerOperation       = 20
	MaxCommissionPercent        = 100
	MaxReportPeriodDays         = 366
	TopServicesLimit            = 10
)

// Форматы даты и времени
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses статусы, при которых запись не занимает слот
var InactiveStatuses = []AppointmentStatus{
	StatusCanceled,
	StatusCompleted,
}

// ActiveStatuses статусы записей, занимающих слот мастера
var ActiveStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
}

// AllStatuses все статусы записи
var AllStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
	StatusCanceled,
	StatusCompleted,
}

// ParseAppointmentStatus проверяет строку статуса
func ParseAppointmentStatus(s string) (AppointmentStatus, bool) {
	for _, st := range AllStatuses {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}
