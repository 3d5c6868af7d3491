package availability

import (
	"fmt"
	"time"

	"github.com/d4nchik/VH-BookingService/internal/domain"
	"github.com/d4nchik/VH-BookingService/pkg/types"
)

// Options параметры расчета доступности
// Нулевые значения заменяются дефолтами движка
type Options struct {
	WindowDays         int       // Размер скользящего окна дат (по умолчанию 90)
	GranularityMinutes int       // Шаг сетки слотов (по умолчанию 60)
	BufferMinutes      int       // Обязательный перерыв между бронированиями (по умолчанию 60)
	Now                time.Time // Текущий момент, начало окна (по умолчанию time.Now())
}

func (o Options) withDefaults() Options {
	if o.WindowDays <= 0 {
		o.WindowDays = domain.AvailabilityWindowDays
	}
	if o.GranularityMinutes <= 0 {
		o.GranularityMinutes = domain.SlotGranularityMinutes
	}
	if o.BufferMinutes <= 0 {
		o.BufferMinutes = domain.BufferMinutes
	}
	if o.Now.IsZero() {
		o.Now = time.Now()
	}
	return o
}

// Index результат расчета доступности: производное, неизменяемое состояние
// Пересчитывается целиком при каждом изменении списка бронирований -
// частичное обновление не поддерживается (риск показать занятый слот свободным)
type Index struct {
	// Dates даты окна, имеющие хотя бы один свободный слот, в хронологическом порядке
	Dates []string
	// SlotsByDate свободные слоты по каждой дате из Dates
	SlotsByDate map[string][]types.TimeString
}

// IsDateAvailable возвращает true, если на дате есть хотя бы один свободный слот
func (idx *Index) IsDateAvailable(date string) bool {
	_, ok := idx.SlotsByDate[date]
	return ok
}

// HasSlot возвращает true, если слот свободен на указанной дате
func (idx *Index) HasSlot(date string, slot types.TimeString) bool {
	for _, s := range idx.SlotsByDate[date] {
		if s == slot {
			return true
		}
	}
	return false
}

// Compute рассчитывает доступность площадки на скользящем окне дат
//
// Для каждой из WindowDays дат начиная с сегодняшней генерируется полная сетка
// слотов, из неё исключаются слоты, конфликтующие (с учетом буфера) с занятыми
// интервалами активных бронирований на этой дате. Даты без единого свободного
// слота в результат не попадают
//
// Чистая функция от (bookings, opts): повторный вызов с теми же входами дает
// тот же результат. Площадка без бронирований дает WindowDays дат с полной сеткой
func Compute(bookings []*domain.Booking, opts Options) (*Index, error) {
	opts = opts.withDefaults()

	intervalsByDate := ActiveIntervalsByDate(bookings)
	grid := DaySlots(opts.GranularityMinutes)

	today := time.Date(opts.Now.Year(), opts.Now.Month(), opts.Now.Day(), 0, 0, 0, 0, opts.Now.Location())

	index := &Index{
		Dates:       make([]string, 0, opts.WindowDays),
		SlotsByDate: make(map[string][]types.TimeString, opts.WindowDays),
	}

	for day := 0; day < opts.WindowDays; day++ {
		date := today.AddDate(0, 0, day).Format(domain.DateFormat)
		intervals := intervalsByDate[date]

		free := make([]types.TimeString, 0, len(grid))
		for _, slot := range grid {
			conflicting, err := IsConflicting(slot, intervals, opts.BufferMinutes)
			if err != nil {
				return nil, fmt.Errorf("compute availability for %s: %w", date, err)
			}
			if !conflicting {
				free = append(free, slot)
			}
		}

		if len(free) == 0 {
			continue
		}

		index.Dates = append(index.Dates, date)
		index.SlotsByDate[date] = free
	}

	return index, nil
}
