package availability

import (
	"fmt"

	"github.com/d4nchik/VH-BookingService/internal/domain"
	"github.com/d4nchik/VH-BookingService/pkg/types"
)

// BasePrice считает стоимость аренды за интервал [start, end) по часовой ставке
// Интервал в пределах одних суток, end должен быть строго позже start
// Для интервалов, не кратных часу, результат дробный
func BasePrice(start, end types.TimeString, pricePerHour float64) (float64, error) {
	startMin, err := start.MinutesFromMidnight()
	if err != nil {
		return 0, fmt.Errorf("invalid start time: %v", err)
	}
	endMin, err := end.MinutesFromMidnight()
	if err != nil {
		return 0, fmt.Errorf("invalid end time: %v", err)
	}
	if endMin <= startMin {
		return 0, fmt.Errorf("end time %s must be after start time %s", end, start)
	}

	hours := float64(endMin-startMin) / 60.0
	return hours * pricePerHour, nil
}

// TotalPrice считает полную стоимость бронирования:
// аренда за интервал плюс фиксированные цены выбранных услуг
// Цены услуг не масштабируются по длительности
// Пустой список услуг дает только стоимость аренды
func TotalPrice(start, end types.TimeString, pricePerHour float64, services []domain.ServiceOption) (float64, error) {
	total, err := BasePrice(start, end, pricePerHour)
	if err != nil {
		return 0, err
	}

	for _, service := range services {
		total += service.Price
	}

	return total, nil
}
