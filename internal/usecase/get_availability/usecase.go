package get_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/d4nchik/VH-BookingService/internal/availability"
	"github.com/d4nchik/VH-BookingService/internal/domain"
	venueRepo "github.com/d4nchik/VH-BookingService/internal/infra/storage/venue"
)

// UseCase use case для расчета доступности площадки на скользящем окне дат
type UseCase struct {
	bookingRepo  BookingRepository
	venueRepo    VenueRepository
	venueCache   VenueCache
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	venueRepo VenueRepository,
	venueCache VenueCache,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		venueRepo:    venueRepo,
		venueCache:   venueCache,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case расчета доступности
//
// Бронирования всегда читаются из БД заново: доступность - производное
// состояние и пересчитывается целиком на каждый запрос
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: venue=%d", req.VenueID)

	// 1. Валидация входных данных
	if req.VenueID <= 0 {
		uc.logger.Warn("GetAvailability: validation failed: venueID must be positive")
		return nil, fmt.Errorf("%w: venueID must be positive", ErrInvalidInput)
	}

	// 2. Получаем профиль площадки (через кеш)
	venue, err := uc.getVenue(ctx, req.VenueID)
	if err != nil {
		return nil, err
	}

	// 3. Читаем активные бронирования окна
	now := uc.timeProvider.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	windowEnd := today.AddDate(0, 0, domain.AvailabilityWindowDays-1)

	filter := domain.VenueBookingsFilter{
		VenueID:         req.VenueID,
		StartDate:       &today,
		EndDate:         &windowEnd,
		IncludeInactive: false, // Отмененные бронирования слоты не занимают
	}

	bookings, err := uc.bookingRepo.GetByVenueWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get bookings for venue=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 4. Полный пересчет доступности
	index, err := availability.Compute(bookings, availability.Options{Now: now})
	if err != nil {
		uc.logger.Error("GetAvailability: failed to compute availability for venue=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: failed to compute availability: %v", ErrInternal, err)
	}

	uc.logger.Info("GetAvailability: venue=%d, %d dates available", req.VenueID, len(index.Dates))

	return &Response{
		VenueID:     venue.ID,
		VenueName:   venue.Name,
		WindowDays:  domain.AvailabilityWindowDays,
		Dates:       index.Dates,
		SlotsByDate: index.SlotsByDate,
	}, nil
}

// getVenue получает профиль площадки, используя кеш статических снимков
func (uc *UseCase) getVenue(ctx context.Context, venueID int64) (*domain.Venue, error) {
	if uc.venueCache != nil {
		venue, err := uc.venueCache.Get(ctx, venueID)
		if err == nil {
			return venue, nil
		}
	}

	venue, err := uc.venueRepo.GetByID(ctx, venueID)
	if err != nil {
		if errors.Is(err, venueRepo.ErrVenueNotFound) {
			uc.logger.Warn("GetAvailability: venue id=%d not found", venueID)
			return nil, ErrVenueNotFound
		}
		uc.logger.Error("GetAvailability: failed to get venue id=%d: %v", venueID, err)
		return nil, fmt.Errorf("%w: failed to get venue: %v", ErrInternal, err)
	}

	if uc.venueCache != nil {
		if err := uc.venueCache.Set(ctx, venue); err != nil {
			uc.logger.Warn("GetAvailability: failed to cache venue id=%d: %v", venueID, err)
		}
	}

	return venue, nil
}
