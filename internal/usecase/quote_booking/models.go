package quote_booking

import (
	"github.com/d4nchik/VH-BookingService/pkg/types"
)

// Request модель запроса на расчет стоимости бронирования
type Request struct {
	VenueID    int64            // ID площадки
	StartTime  types.TimeString // Время начала
	EndTime    types.TimeString // Время окончания
	ServiceIDs []int64          // Выбранные дополнительные услуги
}

// Response модель ответа с расшифровкой стоимости
type Response struct {
	VenueID         int64            // ID площадки
	StartTime       types.TimeString // Время начала
	EndTime         types.TimeString // Время окончания
	DurationMinutes int              // Длительность бронирования
	PricePerHour    float64          // Почасовая ставка площадки
	BasePrice       float64          // Стоимость аренды без услуг
	Services        []QuotedService  // Расшифровка по услугам
	TotalPrice      float64          // Итоговая стоимость
}

// QuotedService услуга в расшифровке стоимости
type QuotedService struct {
	ServiceID int64   // ID услуги
	Name      string  // Название услуги
	Price     float64 // Фиксированная цена услуги
}
