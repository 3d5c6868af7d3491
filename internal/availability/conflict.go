package availability

import (
	"github.com/d4nchik/VH-BookingService/internal/domain"
	"github.com/d4nchik/VH-BookingService/pkg/types"
)

// IsConflicting проверяет, попадает ли слот в конфликт с существующими интервалами
// Каждый интервал [s, e) расширяется буфером с обеих сторон: [s-buffer, e+buffer)
// Буфер обрезается по границам суток и никогда не переносится на соседнюю дату -
// бронирование у полуночи не блокирует слоты следующего дня (осознанное ограничение модели)
// Пустой список интервалов никогда не конфликтует
func IsConflicting(slot types.TimeString, intervals []domain.TimeInterval, bufferMinutes int) (bool, error) {
	point, err := slot.MinutesFromMidnight()
	if err != nil {
		return false, err
	}

	for _, interval := range intervals {
		start, err := interval.Start.MinutesFromMidnight()
		if err != nil {
			return false, err
		}
		end, err := interval.End.MinutesFromMidnight()
		if err != nil {
			return false, err
		}

		bufferedStart := start - bufferMinutes
		if bufferedStart < 0 {
			bufferedStart = 0
		}
		bufferedEnd := end + bufferMinutes
		if bufferedEnd > types.MinutesPerDay-1 {
			bufferedEnd = types.MinutesPerDay - 1
		}

		if bufferedStart <= point && point < bufferedEnd {
			return true, nil
		}
	}

	return false, nil
}

// ActiveIntervalsByDate группирует занятые интервалы активных бронирований по датам
// Отмененные и no-show бронирования пропускаются, их слоты снова свободны
func ActiveIntervalsByDate(bookings []*domain.Booking) map[string][]domain.TimeInterval {
	byDate := make(map[string][]domain.TimeInterval)

	for _, booking := range bookings {
		if booking == nil || !booking.IsActive() {
			continue
		}
		date := booking.BookingDate.Format(domain.DateFormat)
		byDate[date] = append(byDate[date], booking.Timeslots...)
	}

	return byDate
}
