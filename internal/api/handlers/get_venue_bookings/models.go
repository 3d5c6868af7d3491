package get_venue_bookings

import (
	"net/url"
	"time"

	"github.com/d4nchik/VH-BookingService/internal/domain"
	"github.com/d4nchik/VH-BookingService/internal/service/bookings/models"
)

// ToServiceRequest собирает запрос к сервису из path и query параметров
func ToServiceRequest(venueID, userID int64, query url.Values) (*models.GetVenueBookingsRequest, error) {
	req := &models.GetVenueBookingsRequest{
		UserID:  userID,
		VenueID: venueID,
	}

	if startDateStr := query.Get("startDate"); startDateStr != "" {
		startDate, err := time.Parse(domain.DateFormat, startDateStr)
		if err != nil {
			return nil, err
		}
		req.StartDate = &startDate
	}

	if endDateStr := query.Get("endDate"); endDateStr != "" {
		endDate, err := time.Parse(domain.DateFormat, endDateStr)
		if err != nil {
			return nil, err
		}
		req.EndDate = &endDate
	}

	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	if query.Get("includeInactive") == "true" {
		req.IncludeInactive = true
	}

	return req, nil
}
