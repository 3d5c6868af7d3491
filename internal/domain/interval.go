package domain

import (
	"fmt"

	"github.com/d4nchik/VH-BookingService/pkg/types"
)

// TimeInterval занятый интервал времени [Start, End) в пределах одной даты
// Инвариант: Start строго раньше End, переход через полночь не поддерживается
type TimeInterval struct {
	Start types.TimeString
	End   types.TimeString
}

// Validate проверяет формат границ и инвариант Start < End
func (i TimeInterval) Validate() error {
	if err := i.Start.Validate(); err != nil {
		return fmt.Errorf("invalid interval start: %v", err)
	}
	if err := i.End.Validate(); err != nil {
		return fmt.Errorf("invalid interval end: %v", err)
	}
	if !i.Start.IsBefore(i.End) {
		return fmt.Errorf("interval start %s must be before end %s", i.Start, i.End)
	}
	return nil
}

// DurationMinutes возвращает длительность интервала в минутах
func (i TimeInterval) DurationMinutes() (int, error) {
	start, err := i.Start.MinutesFromMidnight()
	if err != nil {
		return 0, err
	}
	end, err := i.End.MinutesFromMidnight()
	if err != nil {
		return 0, err
	}
	return end - start, nil
}
