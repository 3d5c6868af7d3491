package get_end_times

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/d4nchik/VH-BookingService/internal/api/handlers"
	"github.com/d4nchik/VH-BookingService/internal/domain"
	getEndTimes "github.com/d4nchik/VH-BookingService/internal/usecase/get_end_times"
	"github.com/d4nchik/VH-BookingService/pkg/types"
)

const (
	msgInvalidVenueID   = "некорректный ID площадки"
	msgMissingDate      = "дата обязательна"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingStartTime = "время начала обязательно"
	msgInvalidStartTime = "некорректный формат времени, ожидается HH:MM"
	msgVenueNotFound    = "площадка не найдена"
)

type Handler struct {
	useCase GetEndTimesUseCase
	logger  Logger
}

func NewHandler(useCase GetEndTimesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/venues/{venueId}/end-times
// Query params: date (required, YYYY-MM-DD), startTime (required, HH:MM)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	venueIDStr := vars["venueId"]

	venueID, err := strconv.ParseInt(venueIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /venues/{id}/end-times - Invalid venue ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidVenueID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /venues/{id}/end-times - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	startTimeStr := r.URL.Query().Get("startTime")
	if startTimeStr == "" {
		h.logger.Warn("GET /venues/{id}/end-times - Missing start time")
		handlers.RespondBadRequest(w, msgMissingStartTime)
		return
	}

	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		h.logger.Warn("GET /venues/{id}/end-times - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	startTime, err := types.NewTimeStringFromString(startTimeStr)
	if err != nil {
		h.logger.Warn("GET /venues/{id}/end-times - Invalid start time format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartTime)
		return
	}

	useCaseReq := &getEndTimes.Request{
		VenueID:   venueID,
		Date:      date,
		StartTime: startTime,
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getEndTimes.ErrVenueNotFound):
			h.logger.Warn("GET /venues/{id}/end-times - Venue not found: venue_id=%d", venueID)
			handlers.RespondNotFound(w, msgVenueNotFound)

		case errors.Is(err, getEndTimes.ErrInvalidInput):
			h.logger.Warn("GET /venues/{id}/end-times - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStartTime)

		default:
			h.logger.Error("GET /venues/{id}/end-times - Failed to get end times: venue_id=%d, error=%v", venueID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /venues/{id}/end-times - End times retrieved successfully: venue_id=%d, count=%d",
		venueID, len(result.EndTimes))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
