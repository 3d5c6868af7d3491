package create_booking

import (
	"errors"
	"net/http"

	"github.com/d4nchik/VH-BookingService/internal/api/handlers"
	"github.com/d4nchik/VH-BookingService/internal/api/middleware"
	createBooking "github.com/d4nchik/VH-BookingService/internal/usecase/create_booking"
)

const (
	msgInvalidBody         = "некорректное тело запроса"
	msgInvalidDateOrTime   = "некорректный формат даты или времени"
	msgMissingUserID       = "отсутствует ID пользователя"
	msgVenueNotFound       = "площадка не найдена"
	msgServiceNotFound     = "услуга не найдена"
	msgSlotNotAvailable    = "выбранное время начала недоступно"
	msgEndTimeNotAvailable = "выбранное время окончания недоступно"
	msgInvalidDate         = "некорректная дата бронирования"
	msgDateTooFar          = "дата за пределами окна бронирования"
	msgPaymentRejected     = "платеж отклонен"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings - Invalid date or time format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrVenueNotFound):
			h.logger.Warn("POST /bookings - Venue not found: venue_id=%d", req.VenueID)
			handlers.RespondNotFound(w, msgVenueNotFound)

		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /bookings - Service not found: venue_id=%d, error=%v", req.VenueID, err)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: venue_id=%d, user_id=%d", req.VenueID, userID)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrEndTimeNotAvailable):
			h.logger.Warn("POST /bookings - End time not available: venue_id=%d, user_id=%d", req.VenueID, userID)
			handlers.RespondConflict(w, msgEndTimeNotAvailable)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Invalid booking date: venue_id=%d", req.VenueID)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, createBooking.ErrDateTooFarInFuture):
			h.logger.Warn("POST /bookings - Date too far in future: venue_id=%d", req.VenueID)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, createBooking.ErrPaymentRejected):
			h.logger.Warn("POST /bookings - Payment rejected: venue_id=%d, user_id=%d", req.VenueID, userID)
			handlers.RespondUnprocessable(w, msgPaymentRejected)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidBody)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: venue_id=%d, user_id=%d, error=%v",
				req.VenueID, userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, venue_id=%d, user_id=%d",
		result.ID, result.VenueID, userID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
