package get_venue

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/d4nchik/VH-BookingService/internal/api/handlers"
	"github.com/d4nchik/VH-BookingService/internal/service/venues"
)

const (
	msgInvalidVenueID = "некорректный ID площадки"
	msgNotFound       = "площадка не найдена"
)

type Handler struct {
	service VenueService
	logger  Logger
}

func NewHandler(service VenueService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/venues/{venueId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	venueIDStr := vars["venueId"]

	venueID, err := strconv.ParseInt(venueIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /venues/{id} - Invalid venue ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidVenueID)
		return
	}

	venue, err := h.service.GetByID(r.Context(), venueID)
	if err != nil {
		switch {
		case errors.Is(err, venues.ErrVenueNotFound):
			h.logger.Warn("GET /venues/{id} - Venue not found: venue_id=%d", venueID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, venues.ErrInvalidInput):
			h.logger.Warn("GET /venues/{id} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidVenueID)

		default:
			h.logger.Error("GET /venues/{id} - Failed to get venue: venue_id=%d, error=%v", venueID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /venues/{id} - Venue retrieved successfully: venue_id=%d", venueID)
	handlers.RespondJSON(w, http.StatusOK, venue)
}
