package get_venue_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/d4nchik/VH-BookingService/internal/api/handlers"
	"github.com/d4nchik/VH-BookingService/internal/api/middleware"
	"github.com/d4nchik/VH-BookingService/internal/service/bookings"
)

const (
	msgInvalidVenueID = "некорректный ID площадки"
	msgInvalidDate    = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidFilter  = "некорректные параметры фильтрации"
	msgMissingUserID  = "отсутствует ID пользователя"
	msgVenueNotFound  = "площадка не найдена"
	msgForbidden      = "доступ запрещен"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/venues/{venueId}/bookings
// Query params: startDate, endDate, status, includeInactive (все опциональны)
// Доступно только владельцу площадки
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	venueIDStr := vars["venueId"]

	venueID, err := strconv.ParseInt(venueIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /venues/{id}/bookings - Invalid venue ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidVenueID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /venues/{id}/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	serviceReq, err := ToServiceRequest(venueID, userID, r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /venues/{id}/bookings - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.GetVenueBookings(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrVenueNotFound):
			h.logger.Warn("GET /venues/{id}/bookings - Venue not found: venue_id=%d", venueID)
			handlers.RespondNotFound(w, msgVenueNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /venues/{id}/bookings - Access denied: venue_id=%d, user_id=%d", venueID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /venues/{id}/bookings - Invalid filter: venue_id=%d, error=%v", venueID, err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /venues/{id}/bookings - Failed to get bookings: venue_id=%d, error=%v",
				venueID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /venues/{id}/bookings - Bookings retrieved successfully: venue_id=%d, count=%d",
		venueID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
