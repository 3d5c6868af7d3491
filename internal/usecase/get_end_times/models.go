package get_end_times

import (
	"time"

	"github.com/d4nchik/VH-BookingService/pkg/types"
)

// Request модель запроса на получение допустимых времен окончания
type Request struct {
	VenueID   int64            // ID площадки
	Date      time.Time        // Дата бронирования (без времени)
	StartTime types.TimeString // Выбранное время начала
}

// Response модель ответа со списком допустимых времен окончания
type Response struct {
	VenueID   int64              // ID площадки
	Date      time.Time          // Дата бронирования
	StartTime types.TimeString   // Время начала, для которого рассчитаны окончания
	EndTimes  []types.TimeString // Допустимые времена окончания, по возрастанию
}
