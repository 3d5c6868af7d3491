package create_booking

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/d4nchik/VH-BookingService/internal/availability"
	"github.com/d4nchik/VH-BookingService/internal/domain"
	venueRepo "github.com/d4nchik/VH-BookingService/internal/infra/storage/venue"
	"github.com/d4nchik/VH-BookingService/internal/integrations/paymentservice"
	"github.com/d4nchik/VH-BookingService/pkg/types"
)

// paymentCurrency валюта платежей, сумма передается в минорных единицах
const paymentCurrency = "RUB"

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo   BookingRepository
	venueRepo     VenueRepository
	venueCache    VenueCache
	paymentClient PaymentClient
	txManager     TransactionManager
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	venueRepo VenueRepository,
	venueCache VenueCache,
	paymentClient PaymentClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		venueRepo:     venueRepo,
		venueCache:    venueCache,
		paymentClient: paymentClient,
		txManager:     txManager,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет use case создания бронирования
//
// Проверка конфликтов и запись выполняются в одной сериализуемой транзакции:
// бронирования даты читаются заново с блокировкой FOR UPDATE, результаты
// ранее показанной пользователю доступности не переиспользуются.
// Стоимость всегда пересчитывается сервером по текущим тарифам площадки
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, venue=%d, date=%s, time=%s-%s",
		req.UserID, req.VenueID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Валидация даты относительно окна бронирования
	now := uc.timeProvider.Now()
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}

	// 3. Получаем площадку напрямую из БД: цены для расчета должны быть актуальными
	venue, err := uc.venueRepo.GetByID(ctx, req.VenueID)
	if err != nil {
		if errors.Is(err, venueRepo.ErrVenueNotFound) {
			uc.logger.Warn("CreateBooking: venue id=%d not found", req.VenueID)
			return nil, ErrVenueNotFound
		}
		uc.logger.Error("CreateBooking: failed to get venue id=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: failed to get venue: %v", ErrInternal, err)
	}

	// 4. Проверяем принадлежность услуг площадке и фиксируем их цены
	services := make([]domain.ServiceOption, 0, len(req.ServiceIDs))
	bookedServices := make([]domain.BookedService, 0, len(req.ServiceIDs))
	for _, serviceID := range req.ServiceIDs {
		service, ok := venue.ServiceByID(serviceID)
		if !ok {
			uc.logger.Warn("CreateBooking: service id=%d not found in venue id=%d", serviceID, req.VenueID)
			return nil, fmt.Errorf("%w: service id=%d", ErrServiceNotFound, serviceID)
		}
		services = append(services, service)
		bookedServices = append(bookedServices, domain.BookedService{
			ServiceID: service.ID,
			Name:      service.Name,
			Price:     service.Price,
		})
	}

	// 5. Серверный расчет стоимости
	totalPrice, err := availability.TotalPrice(req.StartTime, req.EndTime, venue.PricePerHour, services)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to calculate price: %v", err)
		return nil, fmt.Errorf("%w: failed to calculate price: %v", ErrInternal, err)
	}

	paymentRef := paymentservice.NewPaymentRef()

	// Переменная для хранения результата
	var result *domain.Booking

	// 6. Проверка конфликтов и запись в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Читаем активные бронирования даты с блокировкой (FOR UPDATE)
		filter := domain.VenueBookingsFilter{
			VenueID:         req.VenueID,
			StartDate:       &req.Date,
			EndDate:         &req.Date,
			IncludeInactive: false,
		}

		bookings, err := uc.bookingRepo.GetByVenueWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		intervals := availability.ActiveIntervalsByDate(bookings)[req.Date.Format(domain.DateFormat)]

		// 6.2. Время начала должно быть свободно с учетом буфера
		conflicting, err := availability.IsConflicting(req.StartTime, intervals, domain.BufferMinutes)
		if err != nil {
			return fmt.Errorf("%w: failed to check start time: %v", ErrInternal, err)
		}
		if conflicting {
			uc.logger.Warn("CreateBooking: start time %s is not available on %s",
				req.StartTime, req.Date.Format(domain.DateFormat))
			return ErrSlotNotAvailable
		}

		// 6.3. Интервал до окончания не должен пересекать чужие бронирования
		endTimes, err := availability.ValidEndTimes(
			availability.DaySlots(domain.SlotGranularityMinutes), req.StartTime, intervals)
		if err != nil {
			return fmt.Errorf("%w: failed to check end time: %v", ErrInternal, err)
		}
		if !containsTime(endTimes, req.EndTime) {
			uc.logger.Warn("CreateBooking: end time %s is not available on %s",
				req.EndTime, req.Date.Format(domain.DateFormat))
			return ErrEndTimeNotAvailable
		}

		// 6.4. Создаем бронирование с денормализацией данных площадки
		booking := &domain.Booking{
			UserID:      req.UserID,
			VenueID:     req.VenueID,
			BookingDate: req.Date,
			Timeslots: []domain.TimeInterval{
				{Start: req.StartTime, End: req.EndTime},
			},
			Status:     domain.StatusPendingPayment,
			VenueName:  venue.Name,
			TotalPrice: totalPrice,
			Services:   bookedServices,
			Notes:      req.Notes,
			PaymentRef: &paymentRef,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d, total=%.2f", result.ID, result.TotalPrice)

	// 7. Инициируем платеж уже вне транзакции
	// При недоступности платежного сервиса бронирование остается в статусе
	// ожидания оплаты, счет будет выставлен позже
	var paymentURL *string
	payment, err := uc.paymentClient.InitiatePaymentWithGracefulDegradation(ctx, paymentservice.InitiatePaymentRequest{
		PaymentRef: paymentRef,
		BookingID:  result.ID,
		UserID:     req.UserID,
		Amount:     int(math.Round(totalPrice * 100)),
		Currency:   paymentCurrency,
	})
	switch {
	case err == nil:
		paymentURL = &payment.PaymentURL
	case errors.Is(err, paymentservice.ErrPaymentRejected):
		uc.logger.Warn("CreateBooking: payment rejected for booking id=%d", result.ID)
		return nil, ErrPaymentRejected
	default:
		uc.logger.Warn("CreateBooking: payment initiation degraded for booking id=%d: %v", result.ID, err)
	}

	// 8. Сбрасываем кеш профиля площадки
	if uc.venueCache != nil {
		if err := uc.venueCache.Invalidate(ctx, req.VenueID); err != nil {
			uc.logger.Warn("CreateBooking: failed to invalidate venue cache id=%d: %v", req.VenueID, err)
		}
	}

	return toResponse(result, paymentURL), nil
}

// containsTime проверяет вхождение времени в отсортированный список
func containsTime(times []types.TimeString, t types.TimeString) bool {
	for _, candidate := range times {
		if candidate == t {
			return true
		}
	}
	return false
}

// toResponse конвертирует доменную модель в response
func toResponse(booking *domain.Booking, paymentURL *string) *Response {
	services := make([]BookedService, 0, len(booking.Services))
	for _, s := range booking.Services {
		services = append(services, BookedService{
			ServiceID: s.ServiceID,
			Name:      s.Name,
			Price:     s.Price,
		})
	}

	resp := &Response{
		ID:         booking.ID,
		UserID:     booking.UserID,
		VenueID:    booking.VenueID,
		VenueName:  booking.VenueName,
		Date:       booking.BookingDate,
		Status:     string(booking.Status),
		Services:   services,
		TotalPrice: booking.TotalPrice,
		PaymentRef: booking.PaymentRef,
		PaymentURL: paymentURL,
		Notes:      booking.Notes,
		CreatedAt:  booking.CreatedAt,
	}

	if len(booking.Timeslots) > 0 {
		resp.StartTime = booking.Timeslots[0].Start
		resp.EndTime = booking.Timeslots[len(booking.Timeslots)-1].End
	}

	return resp
}
