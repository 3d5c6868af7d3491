package quote_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/d4nchik/VH-BookingService/internal/availability"
	"github.com/d4nchik/VH-BookingService/internal/domain"
	venueRepo "github.com/d4nchik/VH-BookingService/internal/infra/storage/venue"
)

// UseCase use case для расчета стоимости бронирования
type UseCase struct {
	venueRepo  VenueRepository
	venueCache VenueCache
	logger     Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(venueRepo VenueRepository, venueCache VenueCache, logger Logger) *UseCase {
	return &UseCase{
		venueRepo:  venueRepo,
		venueCache: venueCache,
		logger:     logger,
	}
}

// Execute выполняет use case расчета стоимости
//
// Цена всегда считается на сервере по текущим тарифам площадки:
// присланная клиентом сумма никогда не используется
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("QuoteBooking: venue=%d, start=%s, end=%s, services=%d",
		req.VenueID, req.StartTime, req.EndTime, len(req.ServiceIDs))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("QuoteBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем профиль площадки (через кеш)
	venue, err := uc.getVenue(ctx, req.VenueID)
	if err != nil {
		return nil, err
	}

	// 3. Проверяем принадлежность услуг площадке
	services := make([]domain.ServiceOption, 0, len(req.ServiceIDs))
	quoted := make([]QuotedService, 0, len(req.ServiceIDs))
	for _, serviceID := range req.ServiceIDs {
		service, ok := venue.ServiceByID(serviceID)
		if !ok {
			uc.logger.Warn("QuoteBooking: service id=%d not found in venue id=%d", serviceID, req.VenueID)
			return nil, fmt.Errorf("%w: service id=%d", ErrServiceNotFound, serviceID)
		}
		services = append(services, service)
		quoted = append(quoted, QuotedService{
			ServiceID: service.ID,
			Name:      service.Name,
			Price:     service.Price,
		})
	}

	// 4. Считаем стоимость
	basePrice, err := availability.BasePrice(req.StartTime, req.EndTime, venue.PricePerHour)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to calculate base price: %v", ErrInternal, err)
	}

	totalPrice, err := availability.TotalPrice(req.StartTime, req.EndTime, venue.PricePerHour, services)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to calculate total price: %v", ErrInternal, err)
	}

	startMin, _ := req.StartTime.MinutesFromMidnight()
	endMin, _ := req.EndTime.MinutesFromMidnight()

	uc.logger.Info("QuoteBooking: venue=%d, total=%.2f", req.VenueID, totalPrice)

	return &Response{
		VenueID:         venue.ID,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		DurationMinutes: endMin - startMin,
		PricePerHour:    venue.PricePerHour,
		BasePrice:       basePrice,
		Services:        quoted,
		TotalPrice:      totalPrice,
	}, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.VenueID <= 0 {
		return fmt.Errorf("%w: venueID must be positive", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: startTime: %v", ErrInvalidInput, err)
	}

	if err := req.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: endTime: %v", ErrInvalidInput, err)
	}

	if !req.StartTime.IsBefore(req.EndTime) {
		return ErrInvalidTimeRange
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

	return nil
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
			uc.logger.Warn("QuoteBooking: venue id=%d not found", venueID)
			return nil, ErrVenueNotFound
		}
		uc.logger.Error("QuoteBooking: failed to get venue id=%d: %v", venueID, err)
		return nil, fmt.Errorf("%w: failed to get venue: %v", ErrInternal, err)
	}

	if uc.venueCache != nil {
		if err := uc.venueCache.Set(ctx, venue); err != nil {
			uc.logger.Warn("QuoteBooking: failed to cache venue id=%d: %v", venueID, err)
		}
	}

	return venue, nil
}
