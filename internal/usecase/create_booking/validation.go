package create_booking

import (
	"fmt"
	"time"

	"github.com/d4nchik/VH-BookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.VenueID <= 0 {
		return fmt.Errorf("%w: venueID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: startTime: %v", ErrInvalidInput, err)
	}

	if err := req.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: endTime: %v", ErrInvalidInput, err)
	}

	startMin, err := req.StartTime.MinutesFromMidnight()
	if err != nil {
		return fmt.Errorf("%w: startTime: %v", ErrInvalidInput, err)
	}

	endMin, err := req.EndTime.MinutesFromMidnight()
	if err != nil {
		return fmt.Errorf("%w: endTime: %v", ErrInvalidInput, err)
	}

	// Времена должны лежать на сетке слотов
	if startMin%domain.SlotGranularityMinutes != 0 {
		return fmt.Errorf("%w: startTime must be aligned to %d minute grid", ErrInvalidInput, domain.SlotGranularityMinutes)
	}

	if endMin%domain.SlotGranularityMinutes != 0 {
		return fmt.Errorf("%w: endTime must be aligned to %d minute grid", ErrInvalidInput, domain.SlotGranularityMinutes)
	}

	if endMin-startMin < domain.MinBookingDurationMinutes {
		return fmt.Errorf("%w: booking must be at least %d minutes", ErrInvalidInput, domain.MinBookingDurationMinutes)
	}

	if len(req.ServiceIDs) > domain.MaxSelectedServices {
		return fmt.Errorf("%w: too many services selected", ErrInvalidInput)
	}

	seen := make(map[int64]struct{}, len(req.ServiceIDs))
	for _, serviceID := range req.ServiceIDs {
		if serviceID <= 0 {
			return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
		}
		if _, ok := seen[serviceID]; ok {
			return fmt.Errorf("%w: duplicate service id=%d", ErrInvalidInput, serviceID)
		}
		seen[serviceID] = struct{}{}
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateDate проверяет, что дата попадает в окно бронирования
func validateDate(requestDate time.Time, now time.Time) error {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	requestDateOnly := time.Date(requestDate.Year(), requestDate.Month(), requestDate.Day(), 0, 0, 0, 0, requestDate.Location())

	if requestDateOnly.Before(today) {
		return ErrInvalidDate
	}

	maxDate := today.AddDate(0, 0, domain.AvailabilityWindowDays-1)
	if requestDateOnly.After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, domain.AvailabilityWindowDays)
	}

	return nil
}
