package get_availability

import (
	"github.com/d4nchik/VH-BookingService/pkg/types"
)

// Request модель запроса на расчет доступности площадки
type Request struct {
	VenueID int64 // ID площадки
}

// Response модель ответа с доступными датами и слотами
type Response struct {
	VenueID     int64                         // ID площадки
	VenueName   string                        // Название площадки
	WindowDays  int                           // Размер окна дат
	Dates       []string                      // Даты со свободными слотами, хронологически
	SlotsByDate map[string][]types.TimeString // Свободные слоты по каждой дате
}
