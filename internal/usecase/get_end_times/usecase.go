package get_end_times

import (
	"context"
	"errors"
	"fmt"

	"github.com/d4nchik/VH-BookingService/internal/availability"
	"github.com/d4nchik/VH-BookingService/internal/domain"
	venueRepo "github.com/d4nchik/VH-BookingService/internal/infra/storage/venue"
)

// UseCase use case для получения допустимых времен окончания бронирования
type UseCase struct {
	bookingRepo BookingRepository
	venueRepo   VenueRepository
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, venueRepo VenueRepository, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		venueRepo:   venueRepo,
		logger:      logger,
	}
}

// Execute выполняет use case получения времен окончания
//
// Кандидаты берутся из полной суточной сетки, а не из свободных слотов:
// буфер ограничивает только времена НАЧАЛА. Окончание может совпадать с
// началом следующего бронирования, но не пересекать его
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetEndTimes: venue=%d, date=%s, start=%s",
		req.VenueID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetEndTimes: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем существование площадки
	if _, err := uc.venueRepo.GetByID(ctx, req.VenueID); err != nil {
		if errors.Is(err, venueRepo.ErrVenueNotFound) {
			uc.logger.Warn("GetEndTimes: venue id=%d not found", req.VenueID)
			return nil, ErrVenueNotFound
		}
		uc.logger.Error("GetEndTimes: failed to get venue id=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: failed to get venue: %v", ErrInternal, err)
	}

	// 3. Читаем активные бронирования на дату
	filter := domain.VenueBookingsFilter{
		VenueID:         req.VenueID,
		StartDate:       &req.Date,
		EndDate:         &req.Date,
		IncludeInactive: false,
	}

	bookings, err := uc.bookingRepo.GetByVenueWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetEndTimes: failed to get bookings for venue=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	intervals := availability.ActiveIntervalsByDate(bookings)[req.Date.Format(domain.DateFormat)]

	// 4. Фильтруем полную сетку по выбранному началу
	candidates := availability.DaySlots(domain.SlotGranularityMinutes)
	endTimes, err := availability.ValidEndTimes(candidates, req.StartTime, intervals)
	if err != nil {
		uc.logger.Error("GetEndTimes: failed to compute end times for venue=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: failed to compute end times: %v", ErrInternal, err)
	}

	uc.logger.Info("GetEndTimes: venue=%d, date=%s, start=%s, %d end times",
		req.VenueID, req.Date.Format(domain.DateFormat), req.StartTime, len(endTimes))

	return &Response{
		VenueID:   req.VenueID,
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTimes:  endTimes,
	}, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.VenueID <= 0 {
		return fmt.Errorf("%w: venueID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: startTime: %v", ErrInvalidInput, err)
	}

	return nil
}
