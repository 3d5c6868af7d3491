package create_booking

import (
	"time"

	"github.com/d4nchik/VH-BookingService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID     int64            // ID пользователя (из заголовка авторизации)
	VenueID    int64            // ID площадки
	Date       time.Time        // Дата бронирования (без времени)
	StartTime  types.TimeString // Время начала
	EndTime    types.TimeString // Время окончания
	ServiceIDs []int64          // Выбранные дополнительные услуги
	Notes      *string          // Заметки пользователя
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID         int64            // ID бронирования
	UserID     int64            // ID пользователя
	VenueID    int64            // ID площадки
	VenueName  string           // Название площадки на момент создания
	Date       time.Time        // Дата бронирования
	StartTime  types.TimeString // Время начала
	EndTime    types.TimeString // Время окончания
	Status     string           // Статус бронирования
	Services   []BookedService  // Зафиксированные услуги
	TotalPrice float64          // Итоговая стоимость, рассчитанная сервером
	PaymentRef *string          // Референс платежа
	PaymentURL *string          // Ссылка на оплату (nil при недоступности платежного сервиса)
	Notes      *string          // Заметки пользователя
	CreatedAt  time.Time        // Время создания
}

// BookedService зафиксированная услуга в ответе
type BookedService struct {
	ServiceID int64   // ID услуги
	Name      string  // Название на момент создания
	Price     float64 // Цена на момент создания
}
