package quote_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/d4nchik/VH-BookingService/internal/api/handlers"
	quoteBooking "github.com/d4nchik/VH-BookingService/internal/usecase/quote_booking"
)

const (
	msgInvalidVenueID   = "некорректный ID площадки"
	msgInvalidBody      = "некорректное тело запроса"
	msgInvalidTime      = "некорректный формат времени, ожидается HH:MM"
	msgInvalidTimeRange = "время окончания должно быть позже времени начала"
	msgVenueNotFound    = "площадка не найдена"
	msgServiceNotFound  = "услуга не найдена"
)

type Handler struct {
	useCase QuoteBookingUseCase
	logger  Logger
}

func NewHandler(useCase QuoteBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/venues/{venueId}/quote
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	venueIDStr := vars["venueId"]

	venueID, err := strconv.ParseInt(venueIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /venues/{id}/quote - Invalid venue ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidVenueID)
		return
	}

	var req QuoteRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /venues/{id}/quote - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(venueID)
	if err != nil {
		h.logger.Warn("POST /venues/{id}/quote - Invalid time format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, quoteBooking.ErrVenueNotFound):
			h.logger.Warn("POST /venues/{id}/quote - Venue not found: venue_id=%d", venueID)
			handlers.RespondNotFound(w, msgVenueNotFound)

		case errors.Is(err, quoteBooking.ErrServiceNotFound):
			h.logger.Warn("POST /venues/{id}/quote - Service not found: venue_id=%d, error=%v", venueID, err)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, quoteBooking.ErrInvalidTimeRange):
			h.logger.Warn("POST /venues/{id}/quote - Invalid time range: venue_id=%d", venueID)
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, quoteBooking.ErrInvalidInput):
			h.logger.Warn("POST /venues/{id}/quote - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidBody)

		default:
			h.logger.Error("POST /venues/{id}/quote - Failed to quote booking: venue_id=%d, error=%v", venueID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /venues/{id}/quote - Quote calculated successfully: venue_id=%d, total=%.2f",
		venueID, result.TotalPrice)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
