package availability

import (
	"github.com/d4nchik/VH-BookingService/internal/domain"
	"github.com/d4nchik/VH-BookingService/pkg/types"
)

// DaySlots генерирует полную сетку слотов на календарный день
// Слоты идут с начала суток с фиксированным шагом granularityMinutes
// Для шага 60 минут получается ровно 24 слота: "00:00" ... "23:00"
// Сетка не зависит от даты
func DaySlots(granularityMinutes int) []types.TimeString {
	if granularityMinutes <= 0 {
		granularityMinutes = domain.SlotGranularityMinutes
	}

	slots := make([]types.TimeString, 0, types.MinutesPerDay/granularityMinutes)
	for m := 0; m < types.MinutesPerDay; m += granularityMinutes {
		slot, err := types.NewTimeStringFromMinutes(m)
		if err != nil {
			// m всегда в пределах суток, сюда не попадаем
			break
		}
		slots = append(slots, slot)
	}

	return slots
}
