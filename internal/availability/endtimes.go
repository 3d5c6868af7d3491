package availability

import (
	"github.com/d4nchik/VH-BookingService/internal/domain"
	"github.com/d4nchik/VH-BookingService/pkg/types"
)

// ValidEndTimes вычисляет допустимые времена окончания для выбранного начала
//
// Кандидаты берутся из полной дневной сетки candidates (не из отфильтрованной
// доступности: время окончания может совпадать с началом чужого бронирования)
// Кандидат t допустим, если:
//   - t строго позже startTime
//   - интервал (startTime, t) не пересекает начало ни одного занятого интервала:
//     кандидат, равный началу следующего бронирования, допустим, всё что дальше - нет
//
// Буфер здесь намеренно не применяется - грубая фильтрация дат/слотов использует
// буфер, точный выбор конца не использует (поведение исходной системы сохранено)
//
// Если startTime не задан, невалиден или уже попадает внутрь занятого интервала,
// результат пуст. Кандидаты возвращаются в хронологическом порядке
func ValidEndTimes(candidates []types.TimeString, startTime types.TimeString, intervals []domain.TimeInterval) ([]types.TimeString, error) {
	result := make([]types.TimeString, 0, len(candidates))

	if startTime.IsZero() {
		return result, nil
	}
	start, err := startTime.MinutesFromMidnight()
	if err != nil {
		return result, nil
	}

	starts := make([]int, 0, len(intervals))
	for _, interval := range intervals {
		s, err := interval.Start.MinutesFromMidnight()
		if err != nil {
			return nil, err
		}
		e, err := interval.End.MinutesFromMidnight()
		if err != nil {
			return nil, err
		}
		// Начало внутри занятого интервала - допустимых окончаний нет
		if s <= start && start < e {
			return result, nil
		}
		if s > start {
			starts = append(starts, s)
		}
	}

	for _, candidate := range candidates {
		t, err := candidate.MinutesFromMidnight()
		if err != nil {
			return nil, err
		}
		if t <= start {
			continue
		}

		crossesBooking := false
		for _, s := range starts {
			if t > s {
				crossesBooking = true
				break
			}
		}
		if crossesBooking {
			continue
		}

		result = append(result, candidate)
	}

	return result, nil
}
