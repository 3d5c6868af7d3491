package list_venues

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/d4nchik/VH-BookingService/internal/api/handlers"
	"github.com/d4nchik/VH-BookingService/internal/service/venues"
	"github.com/d4nchik/VH-BookingService/internal/service/venues/models"
)

const (
	msgInvalidMinCapacity = "некорректное значение minCapacity"
	msgInvalidMaxPrice    = "некорректное значение maxPricePerHour"
	msgInvalidQuery       = "некорректный поисковый запрос"
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

// Handle GET /api/v1/venues
// Query params: query, city, minCapacity, maxPricePerHour (все опциональны)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req := &models.ListVenuesRequest{}

	query := r.URL.Query()

	if q := query.Get("query"); q != "" {
		req.Query = &q
	}

	if city := query.Get("city"); city != "" {
		req.City = &city
	}

	if minCapacityStr := query.Get("minCapacity"); minCapacityStr != "" {
		minCapacity, err := strconv.Atoi(minCapacityStr)
		if err != nil || minCapacity < 0 {
			h.logger.Warn("GET /venues - Invalid minCapacity: %s", minCapacityStr)
			handlers.RespondBadRequest(w, msgInvalidMinCapacity)
			return
		}
		req.MinCapacity = &minCapacity
	}

	if maxPriceStr := query.Get("maxPricePerHour"); maxPriceStr != "" {
		maxPrice, err := strconv.ParseFloat(maxPriceStr, 64)
		if err != nil || maxPrice < 0 {
			h.logger.Warn("GET /venues - Invalid maxPricePerHour: %s", maxPriceStr)
			handlers.RespondBadRequest(w, msgInvalidMaxPrice)
			return
		}
		req.MaxPricePerHour = &maxPrice
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, venues.ErrInvalidInput):
			h.logger.Warn("GET /venues - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidQuery)

		default:
			h.logger.Error("GET /venues - Failed to list venues: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /venues - Venues retrieved successfully: count=%d", len(result.Venues))
	handlers.RespondJSON(w, http.StatusOK, result)
}
