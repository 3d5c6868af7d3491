package get_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/d4nchik/VH-BookingService/internal/api/handlers"
	getAvailability "github.com/d4nchik/VH-BookingService/internal/usecase/get_availability"
)

const (
	msgInvalidVenueID = "некорректный ID площадки"
	msgVenueNotFound  = "площадка не найдена"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/venues/{venueId}/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	venueIDStr := vars["venueId"]

	venueID, err := strconv.ParseInt(venueIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /venues/{id}/availability - Invalid venue ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidVenueID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailability.Request{VenueID: venueID})
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrVenueNotFound):
			h.logger.Warn("GET /venues/{id}/availability - Venue not found: venue_id=%d", venueID)
			handlers.RespondNotFound(w, msgVenueNotFound)

		case errors.Is(err, getAvailability.ErrInvalidInput):
			h.logger.Warn("GET /venues/{id}/availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidVenueID)

		default:
			h.logger.Error("GET /venues/{id}/availability - Failed to get availability: venue_id=%d, error=%v", venueID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /venues/{id}/availability - Availability retrieved successfully: venue_id=%d, dates_count=%d",
		venueID, len(result.Dates))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
