package domain

// Availability engine defaults
const (
	// SlotGranularityMinutes шаг сетки слотов (24 слота в сутки: 00:00 - 23:00)
	SlotGranularityMinutes = 60

	// BufferMinutes обязательный перерыв между бронированиями на одной дате
	// Применяется симметрично: интервал [s,e) блокирует [s-buffer, e+buffer)
	BufferMinutes = 60

	// AvailabilityWindowDays скользящее окно доступных дат начиная с сегодня
	AvailabilityWindowDays = 90
)

// Business validation constants
const (
	MinBookingDurationMinutes   = 60
	MaxSelectedServices         = 20
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxSearchQueryLength        = 100
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses список статусов неактивных бронирований
// Используется для фильтрации при расчете доступности
var InactiveStatuses = []BookingStatus{
	StatusCancelledByUser,
	StatusCancelledByVendor,
	StatusNoShow,
}

// ActiveStatuses список статусов активных бронирований
var ActiveStatuses = []BookingStatus{
	StatusPendingPayment,
	StatusConfirmed,
	StatusCompleted,
}
