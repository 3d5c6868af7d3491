package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/d4nchik/VH-BookingService/internal/domain"
	bookingRepo "github.com/d4nchik/VH-BookingService/internal/infra/storage/booking"
	venueRepo "github.com/d4nchik/VH-BookingService/internal/infra/storage/venue"
	"github.com/d4nchik/VH-BookingService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo BookingRepository
	venueRepo   VenueRepository
	venueCache  VenueCache
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(bookingRepo BookingRepository, venueRepo VenueRepository, venueCache VenueCache, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		venueRepo:   venueRepo,
		venueCache:  venueCache,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
// Проверяет права доступа - пользователь может видеть только свое бронирование
// или бронирование принадлежащей ему площадки
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	// Проверяем права доступа
	if err := s.checkUserAccess(ctx, booking, userID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает историю бронирований пользователя
// Опционально фильтрует по статусу
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d, status=%v", req.UserID, req.Status)

	// Конвертируем статус из строки в domain.BookingStatus
	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByUserID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%d", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// GetVenueBookings получает бронирования площадки с гибкой фильтрацией
// Поддерживает фильтрацию по периоду, статусу и включению неактивных бронирований
// Доступно только владельцу площадки
func (s *Service) GetVenueBookings(ctx context.Context, req *models.GetVenueBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetVenueBookings: fetching bookings for venue=%d, user=%d", req.VenueID, req.UserID)

	// Проверяем права владельца площадки
	if err := s.checkOwnerAccess(ctx, req.VenueID, req.UserID); err != nil {
		return nil, err
	}

	// Конвертируем request в domain фильтр
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetVenueBookings: invalid filter for venue=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByVenueWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetVenueBookings: repository error for venue=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: GetVenueBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetVenueBookings: successfully fetched %d bookings for venue=%d", len(bookings), req.VenueID)
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование
// Пользователь может отменить только свое бронирование (cancelled_by_user)
// Владелец площадки может отменить любое бронирование площадки (cancelled_by_vendor)
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d", bookingID, req.UserID)

	// Получаем бронирование
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	// Проверяем, можно ли отменить бронирование
	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
		return ErrCannotCancel
	}

	// Определяем статус отмены в зависимости от прав доступа
	var cancelStatus domain.BookingStatus

	if booking.UserID == req.UserID {
		cancelStatus = domain.StatusCancelledByUser
	} else {
		// Проверяем, является ли пользователь владельцем площадки
		if err := s.checkOwnerAccess(ctx, booking.VenueID, req.UserID); err != nil {
			s.logger.Warn("Cancel: access denied for user=%d to cancel booking id=%d", req.UserID, bookingID)
			return ErrAccessDenied
		}
		cancelStatus = domain.StatusCancelledByVendor
	}

	// Отменяем бронирование
	if err := s.bookingRepo.Cancel(ctx, bookingID, cancelStatus, req.CancellationReason); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found during cancellation", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	// Сбрасываем кешированный снимок площадки
	if s.venueCache != nil {
		if err := s.venueCache.Invalidate(ctx, booking.VenueID); err != nil {
			s.logger.Warn("Cancel: failed to invalidate venue cache id=%d: %v", booking.VenueID, err)
		}
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d with status=%s", bookingID, cancelStatus)
	return nil
}

// Вспомогательные методы

// checkUserAccess проверяет, что пользователь имеет доступ к бронированию
// Доступ есть у автора бронирования и у владельца площадки
func (s *Service) checkUserAccess(ctx context.Context, booking *domain.Booking, userID int64) error {
	if booking.UserID == userID {
		return nil
	}

	if err := s.checkOwnerAccess(ctx, booking.VenueID, userID); err != nil {
		// Ошибка уже залогирована в checkOwnerAccess
		return ErrAccessDenied
	}

	return nil
}

// checkOwnerAccess проверяет, что пользователь является владельцем площадки
func (s *Service) checkOwnerAccess(ctx context.Context, venueID int64, userID int64) error {
	venue, err := s.venueRepo.GetByID(ctx, venueID)
	if err != nil {
		if errors.Is(err, venueRepo.ErrVenueNotFound) {
			s.logger.Warn("checkOwnerAccess: venue id=%d not found", venueID)
			return ErrVenueNotFound
		}
		s.logger.Error("checkOwnerAccess: failed to get venue id=%d: %v", venueID, err)
		return fmt.Errorf("%w: failed to get venue: %v", ErrInternal, err)
	}

	if venue.OwnerID != userID {
		s.logger.Warn("checkOwnerAccess: user=%d is not the owner of venue id=%d", userID, venueID)
		return ErrAccessDenied
	}

	return nil
}
