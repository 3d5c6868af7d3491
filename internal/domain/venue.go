package domain

import "time"

// Venue represents a bookable venue in the marketplace
type Venue struct {
	ID           int64
	OwnerID      int64
	Name         string
	City         string
	Address      string
	Description  *string
	Capacity     int
	PricePerHour float64
	Services     []ServiceOption

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ServiceOption дополнительная услуга площадки с фиксированной ценой
// Цена не масштабируется по длительности бронирования
type ServiceOption struct {
	ID      int64
	VenueID int64
	Name    string
	Price   float64
}

// ServiceByID возвращает услугу площадки по ID
func (v *Venue) ServiceByID(serviceID int64) (ServiceOption, bool) {
	for _, s := range v.Services {
		if s.ID == serviceID {
			return s, true
		}
	}
	return ServiceOption{}, false
}

// VenueFilter фильтр каталога площадок
type VenueFilter struct {
	Query           *string  // Префиксный поиск по названию или городу
	City            *string  // Точное совпадение города
	MinCapacity     *int     // Минимальная вместимость
	MaxPricePerHour *float64 // Максимальная цена за час
}
